package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/taigrr/obsidian-pagenav/internal/navigation"
	"github.com/taigrr/obsidian-pagenav/internal/watch"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [vault-path]",
		Short: "Run the MCP server over stdio",
		Long: `serve runs a Model Context Protocol server on stdin/stdout. Opening a
note through the server's "open" tool updates its navigation section the
same way opening it in the editor would.`,
		Example: `pagenav serve ~/obsidian --watch`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runServe,
	}
	cmd.Flags().Bool("watch", false, "also watch the vault for new and moved notes")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, firstArg(args))
	if err != nil {
		return err
	}
	defer a.unload()

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	if a.cfg.Watch {
		w, err := watch.New(a.vault, a.tracker, a.synth, a.log.WithField("vault", a.vault.Name()))
		if err != nil {
			return err
		}
		defer w.Close()
		go func() {
			if err := w.Run(ctx); err != nil && !errors.Is(err, ctx.Err()) {
				a.log.WithError(err).Error("watcher stopped")
			}
		}()
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "pagenav",
		Version: version,
	}, nil)
	registerTools(server, &toolHandlers{app: a})

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return fmt.Errorf("error running server: %w", err)
	}
	return nil
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "watch [vault-path]",
		Short:   "Update navigation as notes are created, moved and deleted",
		Example: `pagenav watch ~/obsidian --log-level info`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, firstArg(args))
			if err != nil {
				return err
			}
			defer a.unload()

			w, err := watch.New(a.vault, a.tracker, a.synth, a.log.WithField("vault", a.vault.Name()))
			if err != nil {
				return err
			}
			defer w.Close()

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			a.log.WithField("vault", a.vault.Path()).Info("watching")
			if err := w.Run(ctx); err != nil && !errors.Is(err, ctx.Err()) {
				return err
			}
			return nil
		},
	}
}

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync [note...]",
		Short: "Rewrite navigation sections now",
		Long: `sync rewrites the navigation section of the given notes, or of every
note in the vault when none are given. Notes already up to date are not
touched.`,
		Example: `pagenav sync --vault ~/obsidian
pagenav sync --vault ~/obsidian Projects.md Projects/item1.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, "")
			if err != nil {
				return err
			}

			report, err := a.syncNotes(cmd.Context(), args)
			out := cmd.OutOrStdout()
			for _, p := range report.Updated {
				fmt.Fprintf(out, "updated %s\n", p)
			}
			for _, p := range report.Failed {
				fmt.Fprintf(out, "failed  %s\n", p)
			}
			fmt.Fprintf(out, "%d of %d notes updated\n", len(report.Updated), report.Scanned)
			return err
		},
	}
}

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "preview <note>",
		Short:   "Print the navigation section a note would get",
		Example: `pagenav preview --vault ~/obsidian Projects/item1.md`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, "")
			if err != nil {
				return err
			}
			doc, err := a.vault.Document(args[0])
			if err != nil {
				return err
			}
			links, ok := a.synth.Plan(doc)
			if !ok {
				return fmt.Errorf("%s gets no navigation section", doc.Path)
			}
			fmt.Fprint(cmd.OutOrStdout(), navigation.Render(links))
			return nil
		},
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return strings.TrimSpace(args[0])
}
