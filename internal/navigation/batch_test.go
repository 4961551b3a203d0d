package navigation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allDocuments(root *Folder) []*Document {
	var docs []*Document
	root.Walk(func(doc *Document) bool {
		docs = append(docs, doc)
		return true
	})
	return docs
}

func TestSynthesizer_SynthesizeAll(t *testing.T) {
	root := sampleTree()
	store := newMemStore(nil)
	synth := NewSynthesizer(store)
	ctx := context.Background()

	report, err := synth.SynthesizeAll(ctx, allDocuments(root))
	require.NoError(t, err)
	assert.Equal(t, 8, report.Scanned)
	assert.Len(t, report.Updated, 7)
	assert.NotContains(t, report.Updated, "README.md")
	assert.Empty(t, report.Failed)
	assert.Equal(t, "### Navigation\n[[item1]]\n\n", store.get("Projects/item1/task.md"))
	assert.Empty(t, store.get("README.md"))

	report, err = synth.SynthesizeAll(ctx, allDocuments(root))
	require.NoError(t, err)
	assert.Empty(t, report.Updated)
}

func TestSynthesizer_SynthesizeAllReportsFailures(t *testing.T) {
	root := sampleTree()
	store := newMemStore(nil)
	store.writeErr = errors.New("read-only vault")

	report, err := NewSynthesizer(store).SynthesizeAll(context.Background(), allDocuments(root))
	require.ErrorIs(t, err, store.writeErr)
	assert.NotEmpty(t, report.Failed)
	assert.Empty(t, report.Updated)
}
