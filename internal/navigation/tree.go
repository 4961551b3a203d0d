// Package navigation maintains the generated navigation section of vault notes.
package navigation

import "strings"

// Kind tags the variant held by an Entry.
type Kind int

const (
	// KindDocument marks an entry holding a Document.
	KindDocument Kind = iota
	// KindFolder marks an entry holding a Folder.
	KindFolder
)

type (
	// Document is a note in the vault tree.
	Document struct {
		Name      string // file name including extension
		Basename  string // file name without extension
		Extension string // extension without the dot
		Path      string // vault-relative, forward slashes
		Size      int64
		Parent    *Folder
	}

	// Folder is a directory in the vault tree. The root has no parent.
	Folder struct {
		Name     string
		Path     string
		Parent   *Folder
		Children []Entry
	}

	// Entry is a child of a folder: exactly one of Document or Folder is set,
	// as indicated by Kind.
	Entry struct {
		Kind     Kind
		Document *Document
		Folder   *Folder
	}
)

// NewDocument builds a document from its file name, splitting off the extension.
func NewDocument(name string, size int64) *Document {
	base, ext := name, ""
	if i := strings.LastIndex(name, "."); i > 0 {
		base, ext = name[:i], name[i+1:]
	}
	return &Document{
		Name:      name,
		Basename:  base,
		Extension: ext,
		Path:      name,
		Size:      size,
	}
}

// NewFolder builds a detached folder.
func NewFolder(name string) *Folder {
	return &Folder{Name: name, Path: name}
}

// IsRoot reports whether f is the tree root.
func (f *Folder) IsRoot() bool {
	return f.Parent == nil
}

// AddDocument attaches doc as a child of f and fixes up its parent and path.
func (f *Folder) AddDocument(doc *Document) *Document {
	doc.Parent = f
	doc.Path = joinPath(f, doc.Name)
	f.Children = append(f.Children, Entry{Kind: KindDocument, Document: doc})
	return doc
}

// AddFolder attaches sub as a child of f and fixes up its parent and path.
func (f *Folder) AddFolder(sub *Folder) *Folder {
	sub.Parent = f
	sub.Path = joinPath(f, sub.Name)
	f.Children = append(f.Children, Entry{Kind: KindFolder, Folder: sub})
	return sub
}

// Subfolder returns the direct child folder with the given name. Documents
// sharing the name are ignored.
func (f *Folder) Subfolder(name string) (*Folder, bool) {
	for _, child := range f.Children {
		if child.Kind == KindFolder && child.Folder.Name == name {
			return child.Folder, true
		}
	}
	return nil, false
}

// Documents returns the documents directly inside f, in stored order.
func (f *Folder) Documents() []*Document {
	var docs []*Document
	for _, child := range f.Children {
		if child.Kind == KindDocument {
			docs = append(docs, child.Document)
		}
	}
	return docs
}

// Find looks up the document at a vault-relative path below f.
func (f *Folder) Find(path string) (*Document, bool) {
	var found *Document
	f.Walk(func(doc *Document) bool {
		if doc.Path == path {
			found = doc
			return false
		}
		return true
	})
	return found, found != nil
}

// FindFolder looks up the folder at a vault-relative path below f. The empty
// path is f itself.
func (f *Folder) FindFolder(path string) (*Folder, bool) {
	if path == f.Path || path == "" && f.IsRoot() {
		return f, true
	}
	for _, child := range f.Children {
		if child.Kind != KindFolder {
			continue
		}
		if found, ok := child.Folder.FindFolder(path); ok {
			return found, true
		}
	}
	return nil, false
}

// Representative returns the document whose companion folder is f: the
// sibling document named like f. The root has none.
func (f *Folder) Representative() (*Document, bool) {
	if f.IsRoot() {
		return nil, false
	}
	for _, doc := range f.Parent.Documents() {
		if doc.Basename == f.Name {
			return doc, true
		}
	}
	return nil, false
}

// Walk visits every document below f depth-first until fn returns false.
func (f *Folder) Walk(fn func(*Document) bool) bool {
	for _, child := range f.Children {
		switch child.Kind {
		case KindDocument:
			if !fn(child.Document) {
				return false
			}
		case KindFolder:
			if !child.Folder.Walk(fn) {
				return false
			}
		}
	}
	return true
}

func joinPath(parent *Folder, name string) string {
	if parent.IsRoot() {
		return name
	}
	return parent.Path + "/" + name
}
