// Package main implements pagenav, which keeps the navigation section of
// Obsidian notes in step with the vault's folder tree.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/taigrr/obsidian-pagenav/internal/config"
	"github.com/taigrr/obsidian-pagenav/internal/navigation"
	"github.com/taigrr/obsidian-pagenav/internal/pathfilter"
	"github.com/taigrr/obsidian-pagenav/internal/types"
	"github.com/taigrr/obsidian-pagenav/internal/vault"
)

var (
	cfgFile   string
	vaultFlag string
)

func main() {
	cmd := &cobra.Command{
		Use:   "pagenav",
		Short: "Navigation sections for Obsidian vaults",
		Long: `pagenav maintains a "### Navigation" section at the top of every note in an
Obsidian vault. Each note links to its folder's note and to the notes in
its companion folder (the folder named like the note). Notes created
empty get a link back to the note opened before them.

The section is rewritten in place and only when its links change, so
running pagenav repeatedly is safe.`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is <vault>/.pagenav.yaml)")
	flags.StringVar(&vaultFlag, "vault", "", "vault directory (default is the current directory)")
	flags.String("root-index", "", "note linked from root-level notes (default README)")
	flags.String("untitled-name", "", "name the editor gives fresh notes (default Untitled)")
	flags.StringSlice("ignore", nil, "extra glob patterns to leave out of the tree")
	flags.String("log-level", "", "log level: debug, info, warn, error (default warn)")

	cmd.AddCommand(
		newServeCmd(),
		newWatchCmd(),
		newSyncCmd(),
		newPreviewCmd(),
	)

	if err := fang.Execute(
		context.Background(),
		cmd,
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}

// app wires the vault host to the navigation engine.
type app struct {
	cfg     *config.Config
	log     *logrus.Logger
	vault   *vault.Service
	synth   *navigation.Synthesizer
	tracker *navigation.Tracker
}

func newApp(cmd *cobra.Command, vaultPath string) (*app, error) {
	if vaultPath == "" {
		vaultPath = vaultFlag
	}
	if vaultPath == "" {
		var err error
		vaultPath, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
	}
	info, err := os.Stat(vaultPath)
	if err != nil {
		return nil, fmt.Errorf("vault %s: %w", vaultPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault %s is not a directory", vaultPath)
	}

	cfg, err := config.Load(vaultPath, cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	logger, err := cfg.Logger()
	if err != nil {
		return nil, err
	}
	return buildApp(cfg, logger), nil
}

func buildApp(cfg *config.Config, logger *logrus.Logger) *app {
	log := logrus.NewEntry(logger)

	pf := pathfilter.New(&types.PathFilterConfig{IgnoredPatterns: cfg.Ignore})
	v := vault.New(cfg.VaultPath, pf, log)
	synth := navigation.NewSynthesizer(v,
		navigation.WithRootIndex(cfg.RootIndex),
		navigation.WithLogger(log),
	)
	tracker := navigation.NewTracker(navigation.TrackerConfig{
		RootIndex:    cfg.RootIndex,
		UntitledName: cfg.UntitledName,
		Extension:    cfg.Extension,
	}, synth, navigation.NewBacklinkInserter(v, log))

	return &app{
		cfg:     cfg,
		log:     logger,
		vault:   v,
		synth:   synth,
		tracker: tracker,
	}
}

// open delivers an open event for the note at relPath.
func (a *app) open(ctx context.Context, relPath string) (*navigation.Document, types.Action, error) {
	doc, err := a.vault.Document(relPath)
	if err != nil {
		return nil, types.ActionSkipped, err
	}
	a.vault.Focus(doc)
	action, err := a.tracker.OnOpen(ctx, doc)
	return doc, action, err
}

// syncNotes synthesizes the given notes, or the whole vault when none are given.
func (a *app) syncNotes(ctx context.Context, paths []string) (types.SyncReport, error) {
	var docs []*navigation.Document
	if len(paths) == 0 {
		all, err := a.vault.Documents()
		if err != nil {
			return types.SyncReport{}, err
		}
		docs = all
	} else {
		for _, p := range paths {
			doc, err := a.vault.Document(p)
			if err != nil {
				return types.SyncReport{}, err
			}
			docs = append(docs, doc)
		}
	}
	return a.synth.SynthesizeAll(ctx, docs)
}

// unload forgets the tracker state, as when the plugin is switched off.
func (a *app) unload() {
	a.tracker.Reset()
	a.vault.Focus(nil)
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
