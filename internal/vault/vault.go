// Package vault exposes an Obsidian vault on disk as the host of the
// navigation engine: folder tree, note content and the focused note.
package vault

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/renameio/v2"
	"github.com/sirupsen/logrus"
	"github.com/taigrr/obsidian-pagenav/internal/navigation"
	"github.com/taigrr/obsidian-pagenav/internal/pathfilter"
)

var (
	// ErrPathEscape is returned when a path resolves outside the vault.
	ErrPathEscape = errors.New("path escapes vault")
	// ErrNotFound is returned when no note exists at a path.
	ErrNotFound = errors.New("note not found")
	// ErrExists is returned when creating a note over an existing file.
	ErrExists = errors.New("note already exists")
)

// Service provides tree, content and focus operations on a vault.
type Service struct {
	vaultPath  string
	pathFilter *pathfilter.PathFilter
	log        *logrus.Entry

	mu      sync.Mutex
	active  string              // vault-relative path of the focused note
	written map[string][32]byte // content hash of our last write per note
}

// New creates a Service rooted at vaultPath.
func New(vaultPath string, pf *pathfilter.PathFilter, log *logrus.Entry) *Service {
	absPath, _ := filepath.Abs(vaultPath)
	if pf == nil {
		pf = pathfilter.New(nil)
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Service{
		vaultPath:  absPath,
		pathFilter: pf,
		log:        log.WithField("component", "vault"),
		written:    make(map[string][32]byte),
	}
}

// Path returns the absolute vault path.
func (s *Service) Path() string {
	return s.vaultPath
}

// Name returns the vault name, which is the name of its directory.
func (s *Service) Name() string {
	return filepath.Base(s.vaultPath)
}

// Filter returns the path filter deciding which files are notes.
func (s *Service) Filter() *pathfilter.PathFilter {
	return s.pathFilter
}

// ResolvePath resolves a vault-relative path and rejects escapes.
func (s *Service) ResolvePath(relativePath string) (string, error) {
	relativePath = strings.TrimPrefix(strings.TrimSpace(relativePath), "/")

	absPath, err := filepath.Abs(filepath.Join(s.vaultPath, filepath.FromSlash(relativePath)))
	if err != nil {
		return "", err
	}
	relPath, err := filepath.Rel(s.vaultPath, absPath)
	if err != nil {
		return "", err
	}
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathEscape, relativePath)
	}
	return absPath, nil
}

// RelPath converts an absolute path inside the vault to a vault-relative one
// with forward slashes.
func (s *Service) RelPath(absPath string) (string, error) {
	rel, err := filepath.Rel(s.vaultPath, absPath)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrPathEscape, absPath)
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}

// Tree reads the current folder tree from disk. Ignored directories and
// files that are not notes are left out.
func (s *Service) Tree() (*navigation.Folder, error) {
	root := navigation.NewFolder("")
	if err := s.readFolder(root, s.vaultPath); err != nil {
		return nil, err
	}
	return root, nil
}

func (s *Service) readFolder(folder *navigation.Folder, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			s.log.WithField("dir", dir).Warn("permission denied, skipping")
			return nil
		}
		return fmt.Errorf("failed to list directory: %s - %w", dir, err)
	}

	for _, entry := range entries {
		rel := path.Join(folder.Path, entry.Name())
		switch {
		case entry.IsDir():
			if s.pathFilter.IsIgnoredDir(rel) {
				continue
			}
			sub := folder.AddFolder(navigation.NewFolder(entry.Name()))
			if err := s.readFolder(sub, filepath.Join(dir, entry.Name())); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if !s.pathFilter.IsDocument(rel) {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				// Removed between listing and stat.
				continue
			}
			folder.AddDocument(navigation.NewDocument(entry.Name(), info.Size()))
		}
	}
	return nil
}

// Document reads the tree and returns the note at a vault-relative path.
func (s *Service) Document(relPath string) (*navigation.Document, error) {
	relPath, err := s.normalize(relPath)
	if err != nil {
		return nil, err
	}
	tree, err := s.Tree()
	if err != nil {
		return nil, err
	}
	doc, ok := tree.Find(relPath)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, relPath)
	}
	return doc, nil
}

// Documents returns every note of the current tree.
func (s *Service) Documents() ([]*navigation.Document, error) {
	tree, err := s.Tree()
	if err != nil {
		return nil, err
	}
	var docs []*navigation.Document
	tree.Walk(func(doc *navigation.Document) bool {
		docs = append(docs, doc)
		return true
	})
	return docs, nil
}

// Read returns the full content of doc.
func (s *Service) Read(_ context.Context, doc *navigation.Document) (string, error) {
	return s.ReadPath(doc.Path)
}

// ReadPath returns the full content of the note at a vault-relative path.
func (s *Service) ReadPath(relPath string) (string, error) {
	fullPath, err := s.ResolvePath(relPath)
	if err != nil {
		return "", err
	}
	if !s.pathFilter.IsAllowed(relPath) {
		return "", fmt.Errorf("access denied: %s", relPath)
	}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, relPath)
		}
		if errors.Is(err, fs.ErrPermission) {
			return "", fmt.Errorf("permission denied: %s", relPath)
		}
		return "", fmt.Errorf("failed to read file: %s - %w", relPath, err)
	}
	return string(content), nil
}

// Modify replaces the full content of doc atomically, keeping the note's
// file mode.
func (s *Service) Modify(_ context.Context, doc *navigation.Document, content string) error {
	return s.writeAtomic(doc.Path, content)
}

func (s *Service) writeAtomic(relPath, content string) error {
	fullPath, err := s.ResolvePath(relPath)
	if err != nil {
		return err
	}
	if !s.pathFilter.IsAllowed(relPath) {
		return fmt.Errorf("access denied: %s", relPath)
	}

	// The temp file lives next to the note, hidden, so the rename stays on
	// one file system and watchers skip it.
	err = renameio.WriteFile(fullPath, []byte(content), 0o644,
		renameio.WithTempDir(filepath.Dir(fullPath)),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return fmt.Errorf("failed to write file: %s - %w", relPath, err)
	}

	if rel, err := s.RelPath(fullPath); err == nil {
		s.mu.Lock()
		s.written[rel] = sha256.Sum256([]byte(content))
		s.mu.Unlock()
	}
	return nil
}

// IsOwnWrite reports whether the note at relPath still holds exactly what
// this service last wrote to it. Watchers use it to ignore their own echoes.
func (s *Service) IsOwnWrite(relPath string) bool {
	s.mu.Lock()
	sum, ok := s.written[relPath]
	s.mu.Unlock()
	if !ok {
		return false
	}
	content, err := s.ReadPath(relPath)
	if err != nil {
		return false
	}
	return sha256.Sum256([]byte(content)) == sum
}

// Create makes a new empty note, creating parent directories as needed.
func (s *Service) Create(relPath string) (*navigation.Document, error) {
	relPath, err := s.normalize(relPath)
	if err != nil {
		return nil, err
	}
	fullPath, err := s.ResolvePath(relPath)
	if err != nil {
		return nil, err
	}
	if !s.pathFilter.IsDocument(relPath) {
		return nil, fmt.Errorf("not a note path: %s", relPath)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrExists, relPath)
		}
		return nil, fmt.Errorf("failed to create file: %s - %w", relPath, err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.written[relPath] = sha256.Sum256(nil)
	s.mu.Unlock()

	s.log.WithField("path", relPath).Debug("note created")
	return s.Document(relPath)
}

// Focus marks doc as the note open for editing. A nil doc clears the focus.
func (s *Service) Focus(doc *navigation.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc == nil {
		s.active = ""
		return
	}
	s.active = doc.Path
}

// ActiveEditor returns an editor over the focused note, or nil.
func (s *Service) ActiveEditor() navigation.Editor {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == "" {
		return nil
	}
	return &fileEditor{svc: s, path: s.active}
}

// fileEditor edits a note by reading and replacing its file.
type fileEditor struct {
	svc  *Service
	path string
}

func (e *fileEditor) Value(context.Context) (string, error) {
	return e.svc.ReadPath(e.path)
}

func (e *fileEditor) SetValue(_ context.Context, content string) error {
	return e.svc.writeAtomic(e.path, content)
}

// normalize turns a user-supplied path into the clean vault-relative form
// used by tree nodes.
func (s *Service) normalize(relPath string) (string, error) {
	fullPath, err := s.ResolvePath(strings.ReplaceAll(relPath, "\\", "/"))
	if err != nil {
		return "", err
	}
	return s.RelPath(fullPath)
}
