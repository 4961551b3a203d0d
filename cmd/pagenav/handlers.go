package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/taigrr/obsidian-pagenav/internal/frontmatter"
	"github.com/taigrr/obsidian-pagenav/internal/navigation"
	"github.com/taigrr/obsidian-pagenav/internal/uri"
)

type toolHandlers struct {
	app *app
}

func (h *toolHandlers) handleOpen(ctx context.Context, req *mcp.CallToolRequest, input PathInput) (*mcp.CallToolResult, OpenOutput, error) {
	path := strings.TrimSpace(input.Path)
	doc, action, err := h.app.open(ctx, path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, OpenOutput{Path: path}, err
	}

	return nil, OpenOutput{
		Path:     doc.Path,
		Action:   action,
		Current:  h.app.tracker.Current(),
		Previous: h.app.tracker.Previous(),
		URI:      uri.Open(h.app.vault.Name(), doc.Path),
	}, nil
}

func (h *toolHandlers) handleCreate(ctx context.Context, req *mcp.CallToolRequest, input PathInput) (*mcp.CallToolResult, CreateOutput, error) {
	path := strings.TrimSpace(input.Path)
	if path == "" {
		return &mcp.CallToolResult{IsError: true}, CreateOutput{}, fmt.Errorf("path cannot be empty")
	}

	created, err := h.app.vault.Create(path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, CreateOutput{Path: path}, err
	}
	doc, action, err := h.app.open(ctx, created.Path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, CreateOutput{Path: created.Path}, err
	}
	content, err := h.app.vault.Read(ctx, doc)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, CreateOutput{Path: doc.Path}, err
	}

	return nil, CreateOutput{
		Path:    doc.Path,
		Action:  action,
		Content: content,
		URI:     uri.Open(h.app.vault.Name(), doc.Path),
	}, nil
}

func (h *toolHandlers) handleNavigation(ctx context.Context, req *mcp.CallToolRequest, input PathInput) (*mcp.CallToolResult, NavigationOutput, error) {
	path := strings.TrimSpace(input.Path)
	doc, err := h.app.vault.Document(path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, NavigationOutput{Path: path}, err
	}

	links, ok := h.app.synth.Plan(doc)
	if !ok {
		return &mcp.CallToolResult{IsError: true}, NavigationOutput{Path: doc.Path},
			fmt.Errorf("%s gets no navigation section", doc.Path)
	}
	children := links.Children
	if children == nil {
		children = []string{}
	}

	return nil, NavigationOutput{
		Path:     doc.Path,
		Parent:   links.Parent,
		Children: children,
		Block:    navigation.Render(links),
	}, nil
}

func (h *toolHandlers) handleSync(ctx context.Context, req *mcp.CallToolRequest, input SyncInput) (*mcp.CallToolResult, SyncOutput, error) {
	var paths []string
	if path := strings.TrimSpace(input.Path); path != "" {
		paths = append(paths, path)
	}

	report, err := h.app.syncNotes(ctx, paths)
	output := SyncOutput{
		Scanned: report.Scanned,
		Updated: report.Updated,
		Failed:  report.Failed,
	}
	if output.Updated == nil {
		output.Updated = []string{}
	}
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, output, err
	}
	return nil, output, nil
}

func (h *toolHandlers) handleRead(ctx context.Context, req *mcp.CallToolRequest, input ReadInput) (*mcp.CallToolResult, ReadOutput, error) {
	path := strings.TrimSpace(input.Path)
	raw, err := h.app.vault.ReadPath(path)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ReadOutput{}, err
	}
	note := frontmatter.New().Parse(raw)

	lines := strings.Split(note.Content, "\n")
	totalLines := len(lines)

	offset := max(input.Offset, 0)
	if offset >= totalLines {
		return nil, ReadOutput{
			Frontmatter: note.Frontmatter,
			TotalLines:  totalLines,
			Truncated:   true,
		}, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = totalLines
	}
	endIdx := min(offset+limit, totalLines)

	return nil, ReadOutput{
		Frontmatter: note.Frontmatter,
		Content:     strings.Join(lines[offset:endIdx], "\n"),
		TotalLines:  totalLines,
		Truncated:   endIdx < totalLines,
	}, nil
}
