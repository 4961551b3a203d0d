package navigation

import (
	"context"
	"regexp"
	"sync"

	"github.com/taigrr/obsidian-pagenav/internal/types"
)

const (
	// DefaultExtension is the managed note format.
	DefaultExtension = "md"
	// DefaultUntitledName is the name the host gives notes it just created.
	DefaultUntitledName = "Untitled"
)

// TrackerConfig holds the names the tracker treats specially.
type TrackerConfig struct {
	RootIndex    string // never tracked nor synthesized
	UntitledName string // new notes still carrying this name are left to the host
	Extension    string
}

// Tracker remembers the last two opened notes and routes open events to the
// backlink inserter or the synthesizer.
type Tracker struct {
	cfg       TrackerConfig
	untitled  *regexp.Regexp
	synth     *Synthesizer
	backlinks *BacklinkInserter

	mu       sync.Mutex
	current  string
	previous string
}

// NewTracker creates a Tracker. Empty config fields take their defaults.
func NewTracker(cfg TrackerConfig, synth *Synthesizer, backlinks *BacklinkInserter) *Tracker {
	if cfg.RootIndex == "" {
		cfg.RootIndex = synth.RootIndex()
	}
	if cfg.UntitledName == "" {
		cfg.UntitledName = DefaultUntitledName
	}
	if cfg.Extension == "" {
		cfg.Extension = DefaultExtension
	}
	return &Tracker{
		cfg: cfg,
		// The host numbers duplicates: "Untitled", "Untitled 1", "Untitled 2".
		untitled:  regexp.MustCompile(`^` + regexp.QuoteMeta(cfg.UntitledName) + `( \d+)?$`),
		synth:     synth,
		backlinks: backlinks,
	}
}

// OnOpen handles a document-open event. A nil document or the root index
// leaves the state untouched.
func (t *Tracker) OnOpen(ctx context.Context, doc *Document) (types.Action, error) {
	if doc == nil || doc.Basename == t.cfg.RootIndex {
		return types.ActionSkipped, nil
	}

	previous := t.shift(doc.Basename)

	if t.IsNewNote(doc) {
		_, err := t.backlinks.Insert(ctx, previous)
		return types.ActionBacklink, err
	}
	_, err := t.synth.Synthesize(ctx, doc)
	return types.ActionSynthesized, err
}

// IsNewNote reports whether doc is an empty note the user has already named.
func (t *Tracker) IsNewNote(doc *Document) bool {
	return doc.Extension == t.cfg.Extension &&
		doc.Size == 0 &&
		!t.IsUntitled(doc.Basename)
}

// IsUntitled reports whether basename is a name the host gives notes before
// the user renames them.
func (t *Tracker) IsUntitled(basename string) bool {
	return t.untitled.MatchString(basename)
}

func (t *Tracker) shift(basename string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.previous = t.current
	t.current = basename
	return t.previous
}

// Current returns the basename of the most recently opened note.
func (t *Tracker) Current() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Previous returns the basename of the note opened before Current.
func (t *Tracker) Previous() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.previous
}

// Reset forgets both remembered notes.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current, t.previous = "", ""
}
