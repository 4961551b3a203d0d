package navigation

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// BacklinkInserter fills a brand-new note with a link back to the note the
// user came from.
type BacklinkInserter struct {
	workspace Workspace
	log       *logrus.Entry
}

// NewBacklinkInserter creates an inserter writing into the active editor of ws.
func NewBacklinkInserter(ws Workspace, log *logrus.Entry) *BacklinkInserter {
	if log == nil {
		log = discardLogger()
	}
	return &BacklinkInserter{
		workspace: ws,
		log:       log.WithField("component", "backlink"),
	}
}

// RenderBacklink returns the full content given to a new note created from previous.
func RenderBacklink(previous string) string {
	return Render(Links{Parent: previous}) + "\n"
}

// Insert overwrites the active editor with a backlink to previous. It does
// nothing when there is no previous note or no active editor.
func (b *BacklinkInserter) Insert(ctx context.Context, previous string) (bool, error) {
	if previous == "" {
		return false, nil
	}
	editor := b.workspace.ActiveEditor()
	if editor == nil {
		b.log.Debug("no active editor")
		return false, nil
	}
	if err := editor.SetValue(ctx, RenderBacklink(previous)); err != nil {
		return false, fmt.Errorf("insert backlink: %w", err)
	}
	b.log.WithField("previous", previous).Info("backlink inserted")
	return true, nil
}
