package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/obsidian-pagenav/internal/config"
	"github.com/taigrr/obsidian-pagenav/internal/types"
	"github.com/taigrr/obsidian-pagenav/internal/vault"
)

func newTestHandlers(t *testing.T, files map[string]string) (string, *toolHandlers) {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}

	cfg, err := config.Load(dir, "", nil)
	require.NoError(t, err)
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.ErrorLevel)
	return dir, &toolHandlers{app: buildApp(cfg, logger)}
}

func readNote(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func TestHandlers_OpenThenCreate(t *testing.T) {
	dir, h := newTestHandlers(t, map[string]string{
		"README.md":        "# Home\n",
		"Topics.md":        "# Topics\n",
		"Topics/go.md":     "Go notes\n",
		"Topics/python.md": "Python notes\n",
	})
	ctx := context.Background()

	_, out, err := h.handleOpen(ctx, nil, PathInput{Path: "Topics.md"})
	require.NoError(t, err)
	assert.Equal(t, types.ActionSynthesized, out.Action)
	assert.Equal(t, "Topics", out.Current)
	assert.Contains(t, out.URI, "file=Topics")
	assert.Equal(t, "### Navigation\n[[README]]\n[[go]]\n[[python]]\n\n# Topics\n", readNote(t, dir, "Topics.md"))

	_, created, err := h.handleCreate(ctx, nil, PathInput{Path: "Inbox/idea.md"})
	require.NoError(t, err)
	assert.Equal(t, types.ActionBacklink, created.Action)
	assert.Equal(t, "### Navigation\n[[Topics]]\n\n", created.Content)
	assert.Equal(t, created.Content, readNote(t, dir, "Inbox/idea.md"))

	_, _, err = h.handleCreate(ctx, nil, PathInput{Path: "Inbox/idea.md"})
	assert.True(t, errors.Is(err, vault.ErrExists))
}

func TestHandlers_OpenRootIndexIsSkipped(t *testing.T) {
	dir, h := newTestHandlers(t, map[string]string{"README.md": "# Home\n"})

	_, out, err := h.handleOpen(context.Background(), nil, PathInput{Path: "README.md"})
	require.NoError(t, err)
	assert.Equal(t, types.ActionSkipped, out.Action)
	assert.Empty(t, out.Current)
	assert.Equal(t, "# Home\n", readNote(t, dir, "README.md"))
}

func TestHandlers_NavigationPreviewDoesNotWrite(t *testing.T) {
	dir, h := newTestHandlers(t, map[string]string{
		"A.md":     "a\n",
		"A/b2.md":  "",
		"A/b10.md": "",
	})

	_, out, err := h.handleNavigation(context.Background(), nil, PathInput{Path: "A.md"})
	require.NoError(t, err)
	assert.Equal(t, "README", out.Parent)
	assert.Equal(t, []string{"b2", "b10"}, out.Children)
	assert.Equal(t, "### Navigation\n[[README]]\n[[b2]]\n[[b10]]\n", out.Block)
	assert.Equal(t, "a\n", readNote(t, dir, "A.md"))
}

func TestHandlers_Sync(t *testing.T) {
	dir, h := newTestHandlers(t, map[string]string{
		"README.md": "# Home\n",
		"A.md":      "a\n",
		"A/b.md":    "b\n",
	})
	ctx := context.Background()

	_, out, err := h.handleSync(ctx, nil, SyncInput{})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Scanned)
	assert.Equal(t, []string{"A.md", "A/b.md"}, out.Updated)
	assert.Equal(t, "### Navigation\n[[A]]\n\nb\n", readNote(t, dir, "A/b.md"))
	assert.Equal(t, "# Home\n", readNote(t, dir, "README.md"))

	_, out, err = h.handleSync(ctx, nil, SyncInput{Path: "README.md"})
	require.NoError(t, err)
	assert.Empty(t, out.Updated)
	assert.Equal(t, "# Home\n", readNote(t, dir, "README.md"))

	_, out, err = h.handleSync(ctx, nil, SyncInput{Path: "A.md"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Scanned)
	assert.Empty(t, out.Updated)

	res, _, err := h.handleSync(ctx, nil, SyncInput{Path: "missing.md"})
	assert.Error(t, err)
	require.NotNil(t, res)
	assert.True(t, res.IsError)
}

func TestHandlers_Read(t *testing.T) {
	_, h := newTestHandlers(t, map[string]string{
		"n.md": "---\ntitle: N\n---\nl1\nl2\nl3",
	})
	ctx := context.Background()

	_, out, err := h.handleRead(ctx, nil, ReadInput{Path: "n.md", Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, "l2", out.Content)
	assert.Equal(t, 3, out.TotalLines)
	assert.True(t, out.Truncated)
	assert.Equal(t, "N", out.Frontmatter["title"])

	_, out, err = h.handleRead(ctx, nil, ReadInput{Path: "n.md"})
	require.NoError(t, err)
	assert.Equal(t, "l1\nl2\nl3", out.Content)
	assert.False(t, out.Truncated)
}
