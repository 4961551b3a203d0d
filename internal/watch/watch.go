// Package watch turns file system events in a vault into navigation updates.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/taigrr/obsidian-pagenav/internal/navigation"
	"github.com/taigrr/obsidian-pagenav/internal/vault"
)

// Watcher feeds vault changes to the tracker and synthesizer.
//
// A newly created note is treated as opened: empty ones get a backlink to
// the previously opened note. Empty notes still carrying the host's untitled
// name are skipped until renamed. Any entry appearing or disappearing inside a
// folder refreshes the folder's representative note, whose child list just
// changed. Writes made by the vault service itself are ignored.
type Watcher struct {
	vault   *vault.Service
	tracker *navigation.Tracker
	synth   *navigation.Synthesizer
	log     *logrus.Entry

	fsw *fsnotify.Watcher
}

// New registers a watcher on every non-ignored directory of the vault.
func New(v *vault.Service, tracker *navigation.Tracker, synth *navigation.Synthesizer, log *logrus.Entry) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	w := &Watcher{
		vault:   v,
		tracker: tracker,
		synth:   synth,
		log:     log.WithField("component", "watch"),
		fsw:     fsw,
	}
	if err := w.addDirs(v.Path()); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add directories to watcher: %w", err)
	}
	return w, nil
}

func (w *Watcher) addDirs(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Vanished or unreadable, nothing to watch.
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root {
			rel, err := w.vault.RelPath(p)
			if err != nil || w.vault.Filter().IsIgnoredDir(rel) {
				return filepath.SkipDir
			}
		}
		return w.fsw.Add(p)
	})
}

// Run processes events until ctx is done or the watcher is closed. Errors
// from handling a single event are logged, not returned.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if err := w.Handle(ctx, event); err != nil {
				w.log.WithError(err).WithField("event", event.String()).Error("handle event")
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watcher error")
		}
	}
}

// Close unregisters every watch.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Handle applies a single file system event.
func (w *Watcher) Handle(ctx context.Context, event fsnotify.Event) error {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return nil
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		// Hidden entries, including our own temp files.
		return nil
	}
	rel, err := w.vault.RelPath(event.Name)
	if err != nil || rel == "" {
		return nil
	}

	var errs []error
	if event.Has(fsnotify.Create) {
		info, err := os.Stat(event.Name)
		switch {
		case err != nil:
			// Gone again before we got to it.
			return nil
		case info.IsDir():
			if w.vault.Filter().IsIgnoredDir(rel) {
				return nil
			}
			if err := w.addDirs(event.Name); err != nil {
				errs = append(errs, fmt.Errorf("watch %s: %w", rel, err))
			}
			errs = append(errs, w.refreshOwner(ctx, rel))
		default:
			if !w.vault.Filter().IsDocument(rel) || w.vault.IsOwnWrite(rel) {
				return nil
			}
			errs = append(errs, w.created(ctx, rel))
		}
	} else {
		// Removed or renamed away: a deleted folder leaves its owner with
		// no children.
		errs = append(errs, w.refreshOwner(ctx, rel))
	}

	errs = append(errs, w.refreshOwner(ctx, path.Dir(rel)))
	return errors.Join(errs...)
}

// created handles a note that appeared in the vault.
func (w *Watcher) created(ctx context.Context, rel string) error {
	doc, err := w.vault.Document(rel)
	if err != nil {
		if errors.Is(err, vault.ErrNotFound) {
			return nil
		}
		return err
	}

	if doc.Size == 0 && w.tracker.IsUntitled(doc.Basename) {
		// Left empty until the user names it; the rename arrives as a create.
		w.log.WithField("path", rel).Debug("untitled note, waiting for rename")
		return nil
	}
	if doc.Size == 0 {
		w.vault.Focus(doc)
		action, err := w.tracker.OnOpen(ctx, doc)
		w.log.WithFields(logrus.Fields{"path": rel, "action": action}).Debug("new note")
		return err
	}
	_, err = w.synth.Synthesize(ctx, doc)
	return err
}

// refreshOwner re-synthesizes the note whose companion folder is at rel.
func (w *Watcher) refreshOwner(ctx context.Context, rel string) error {
	if rel == "." || rel == "" {
		return nil
	}
	tree, err := w.vault.Tree()
	if err != nil {
		return err
	}

	var owner *navigation.Document
	if folder, ok := tree.FindFolder(rel); ok {
		owner, ok = folder.Representative()
		if !ok {
			return nil
		}
	} else {
		// The folder itself is gone; its owner may still be there.
		parent, ok := tree.FindFolder(parentDir(rel))
		if !ok {
			return nil
		}
		base := path.Base(rel)
		for _, doc := range parent.Documents() {
			if doc.Basename == base {
				owner = doc
				break
			}
		}
		if owner == nil {
			return nil
		}
	}

	_, err = w.synth.Synthesize(ctx, owner)
	return err
}

func parentDir(rel string) string {
	dir := path.Dir(rel)
	if dir == "." {
		return ""
	}
	return dir
}
