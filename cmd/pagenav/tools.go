package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/taigrr/obsidian-pagenav/internal/types"
)

type (
	// PathInput names a note relative to the vault root.
	PathInput struct {
		Path string `json:"path" jsonschema:"Path to the note relative to vault root"`
	}

	// OpenOutput contains the result of opening a note.
	OpenOutput struct {
		Path     string       `json:"path"`
		Action   types.Action `json:"action"`
		Current  string       `json:"current,omitempty"`
		Previous string       `json:"previous,omitempty"`
		URI      string       `json:"uri"`
	}

	// CreateOutput contains the result of creating a note.
	CreateOutput struct {
		Path    string       `json:"path"`
		Action  types.Action `json:"action"`
		Content string       `json:"content"`
		URI     string       `json:"uri"`
	}

	// NavigationOutput describes the navigation section a note would get.
	NavigationOutput struct {
		Path     string   `json:"path"`
		Parent   string   `json:"parent"`
		Children []string `json:"children"`
		Block    string   `json:"block"`
	}

	// SyncInput contains parameters for rewriting navigation sections.
	SyncInput struct {
		Path string `json:"path,omitempty" jsonschema:"Note to sync (default: every note in the vault)"`
	}

	// SyncOutput contains the result of a sync.
	SyncOutput struct {
		Scanned int      `json:"scanned"`
		Updated []string `json:"updated"`
		Failed  []string `json:"failed,omitempty"`
	}

	// ReadInput contains parameters for reading a note.
	ReadInput struct {
		Path   string `json:"path" jsonschema:"Path to the note relative to vault root"`
		Offset int    `json:"offset,omitempty" jsonschema:"Line offset to start reading from (default: 0)"`
		Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of lines to return (default: all)"`
	}

	// ReadOutput contains the result of reading a note.
	ReadOutput struct {
		Frontmatter map[string]any `json:"fm,omitempty"`
		Content     string         `json:"content"`
		TotalLines  int            `json:"totalLines"`
		Truncated   bool           `json:"truncated,omitempty"`
	}
)

func registerTools(server *mcp.Server, h *toolHandlers) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "open",
		Description: "Open a note as if the user navigated to it. Refreshes its navigation section with links to its parent and child notes, and remembers it as the note new notes link back to.",
	}, h.handleOpen)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create",
		Description: "Create a new empty note and open it. The note starts with a navigation section linking back to the previously opened note.",
	}, h.handleCreate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "navigation",
		Description: "Show the navigation section a note would get, without changing the note.",
	}, h.handleNavigation)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sync",
		Description: "Rewrite the navigation section of one note, or of every note in the vault when path is omitted. Notes already up to date are left untouched.",
	}, h.handleSync)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "read",
		Description: "Read a note from the vault. Returns frontmatter and content. Supports pagination with offset/limit for large files.",
	}, h.handleRead)
}
