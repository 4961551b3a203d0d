package navigation

import "context"

type (
	// Store reads and replaces the full content of documents.
	Store interface {
		Read(ctx context.Context, doc *Document) (string, error)
		Modify(ctx context.Context, doc *Document, content string) error
	}

	// Workspace exposes the editable surface that currently has focus.
	Workspace interface {
		// ActiveEditor returns nil when nothing is open for editing.
		ActiveEditor() Editor
	}

	// Editor is a full-text buffer of an open document.
	Editor interface {
		Value(ctx context.Context) (string, error)
		SetValue(ctx context.Context, content string) error
	}
)
