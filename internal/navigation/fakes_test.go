package navigation

import (
	"context"
	"sync"
)

type memStore struct {
	mu       sync.Mutex
	contents map[string]string
	reads    int
	writes   int
	readErr  error
	writeErr error
}

func newMemStore(contents map[string]string) *memStore {
	if contents == nil {
		contents = map[string]string{}
	}
	return &memStore{contents: contents}
}

func (m *memStore) Read(_ context.Context, doc *Document) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.readErr != nil {
		return "", m.readErr
	}
	return m.contents[doc.Path], nil
}

func (m *memStore) Modify(_ context.Context, doc *Document, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.writeErr != nil {
		return m.writeErr
	}
	m.contents[doc.Path] = content
	return nil
}

func (m *memStore) get(path string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.contents[path]
}

type memEditor struct {
	value string
	sets  int
	err   error
}

func (e *memEditor) Value(context.Context) (string, error) { return e.value, nil }

func (e *memEditor) SetValue(_ context.Context, content string) error {
	e.sets++
	if e.err != nil {
		return e.err
	}
	e.value = content
	return nil
}

type memWorkspace struct {
	editor *memEditor
}

func (w *memWorkspace) ActiveEditor() Editor {
	if w.editor == nil {
		return nil
	}
	return w.editor
}

// sampleTree builds:
//
//	README.md
//	Projects.md
//	Projects/
//	  item10.md item2.md item1.md
//	  item1/        (companion of item1.md)
//	    task.md
//	    deeper/nested.md
//	  item2         (a folder-less document sharing nothing)
//	Loose.md
func sampleTree() *Folder {
	root := NewFolder("")
	root.AddDocument(NewDocument("README.md", 10))
	root.AddDocument(NewDocument("Projects.md", 10))
	root.AddDocument(NewDocument("Loose.md", 10))

	projects := root.AddFolder(NewFolder("Projects"))
	projects.AddDocument(NewDocument("item10.md", 4))
	projects.AddDocument(NewDocument("item2.md", 4))
	projects.AddDocument(NewDocument("item1.md", 4))

	item1 := projects.AddFolder(NewFolder("item1"))
	item1.AddDocument(NewDocument("task.md", 4))
	deeper := item1.AddFolder(NewFolder("deeper"))
	deeper.AddDocument(NewDocument("nested.md", 4))
	return root
}

func mustFind(root *Folder, path string) *Document {
	doc, ok := root.Find(path)
	if !ok {
		panic("no document at " + path)
	}
	return doc
}
