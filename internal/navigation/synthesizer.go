package navigation

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/taigrr/obsidian-pagenav/internal/frontmatter"
)

// DefaultRootIndex is the note root-level documents link to as their parent.
const DefaultRootIndex = "README"

// Synthesizer computes navigation blocks and writes them into documents.
type Synthesizer struct {
	store       Store
	rootIndex   string
	frontmatter *frontmatter.Handler
	log         *logrus.Entry

	locks sync.Map // document path -> *sync.Mutex
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithRootIndex sets the basename linked from documents directly under the root.
func WithRootIndex(name string) Option {
	return func(s *Synthesizer) {
		if name != "" {
			s.rootIndex = name
		}
	}
}

// WithLogger sets the log entry used for write and skip events.
func WithLogger(log *logrus.Entry) Option {
	return func(s *Synthesizer) {
		if log != nil {
			s.log = log
		}
	}
}

// NewSynthesizer creates a Synthesizer writing through store.
func NewSynthesizer(store Store, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		store:       store,
		rootIndex:   DefaultRootIndex,
		frontmatter: frontmatter.New(),
		log:         discardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("component", "synthesizer")
	return s
}

// RootIndex returns the configured root-index basename.
func (s *Synthesizer) RootIndex() string {
	return s.rootIndex
}

// Plan computes the links for doc from the current tree. It returns false when
// doc has no parent folder or is the root index itself, which never links to
// itself.
func (s *Synthesizer) Plan(doc *Document) (Links, bool) {
	if doc == nil || doc.Parent == nil {
		return Links{}, false
	}
	if doc.Parent.IsRoot() && doc.Basename == s.rootIndex {
		return Links{}, false
	}

	links := Links{Parent: s.rootIndex}
	if !doc.Parent.IsRoot() {
		links.Parent = doc.Parent.Name
	}

	if companion, ok := doc.Parent.Subfolder(doc.Basename); ok {
		for _, child := range sortDocuments(companion.Documents()) {
			links.Children = append(links.Children, child.Basename)
		}
	}
	return links, true
}

// Synthesize rewrites the navigation block of doc. It reports whether the
// document was written; documents without a parent, documents that opted out
// and documents already up to date are left untouched.
func (s *Synthesizer) Synthesize(ctx context.Context, doc *Document) (bool, error) {
	links, ok := s.Plan(doc)
	if !ok {
		s.log.WithField("path", pathOf(doc)).Debug("no parent link, skipping")
		return false, nil
	}
	block := Render(links)

	mu := s.lock(doc.Path)
	mu.Lock()
	defer mu.Unlock()

	content, err := s.store.Read(ctx, doc)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", doc.Path, err)
	}
	if !s.frontmatter.NavigationEnabled(content) {
		s.log.WithField("path", doc.Path).Debug("navigation disabled in frontmatter")
		return false, nil
	}

	updated := Merge(content, block, s.frontmatter.BodyOffset(content))
	if updated == content {
		return false, nil
	}
	if err := s.store.Modify(ctx, doc, updated); err != nil {
		return false, fmt.Errorf("modify %s: %w", doc.Path, err)
	}

	s.log.WithFields(logrus.Fields{
		"path":     doc.Path,
		"parent":   links.Parent,
		"children": len(links.Children),
	}).Info("navigation updated")
	return true, nil
}

func (s *Synthesizer) lock(path string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(path, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func pathOf(doc *Document) string {
	if doc == nil {
		return ""
	}
	return doc.Path
}

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}
