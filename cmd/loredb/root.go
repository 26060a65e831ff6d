package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/hyperengineering/loredb/internal/archive"
	"github.com/hyperengineering/loredb/internal/config"
	"github.com/hyperengineering/loredb/internal/store"
	"github.com/hyperengineering/loredb/internal/types"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var (
	cfg            *config.Config
	dbPathOverride string
)

var rootCmd = &cobra.Command{
	Use:          "loredb",
	Short:        "loredb - community quote archive",
	Long:         "Store, search, tag, and rank short attributed quotes (\"lore\") in a single-file archive.",
	Version:      Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		setupLogger(cfg)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPathOverride, "db", "",
		"Path to the lore database (overrides config and LOREDB_DB_PATH)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(randomCmd)
	rootCmd.AddCommand(topCmd)
	rootCmd.AddCommand(bestCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(upvoteCmd)
	rootCmd.AddCommand(downvoteCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(getTagCmd)
	rootCmd.AddCommand(deleteTagCmd)
}

// setupLogger routes slog to stderr so command output on stdout stays
// clean.
func setupLogger(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Log.Level)}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// newArchive opens the configured store and wraps it in the archive
// service. The returned closer must be called when the command finishes.
func newArchive() (*archive.Service, io.Closer, error) {
	path := dbPathOverride
	if path == "" {
		path = cfg.Database.Path
	}

	st, err := store.NewSQLiteStore(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open lore database: %w", err)
	}

	return archive.New(st, slog.Default()), st, nil
}

// parseID parses a numeric lore id from a CLI argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid lore id %q", arg)
	}
	return id, nil
}

// printEntries renders entries as formatted blocks separated by blank
// lines. When oldestFirst is set the slice is walked in reverse, turning
// the store's newest-first order into chronological reading order.
func printEntries(ctx context.Context, cmd *cobra.Command, svc *archive.Service, entries []types.Lore, oldestFirst bool) error {
	w := cmd.OutOrStdout()

	order := make([]int, len(entries))
	for i := range entries {
		if oldestFirst {
			order[i] = len(entries) - 1 - i
		} else {
			order[i] = i
		}
	}

	for n, idx := range order {
		if n > 0 {
			fmt.Fprintln(w)
		}
		tags, err := svc.Tags(ctx, entries[idx].ID)
		if err != nil {
			return err
		}
		if err := archive.FormatLore(w, &entries[idx], tags); err != nil {
			return err
		}
	}

	return nil
}

// printJSON marshals v to JSON and writes to the given writer.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTabWriter returns a configured tabwriter for aligned columns.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}
