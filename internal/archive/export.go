package archive

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hyperengineering/loredb/internal/types"
)

// displayTime is the human-readable timestamp layout used in rendered
// blocks.
const displayTime = "2006-01-02 15:04:05"

// FormatLore writes the block form of an entry: a header with id, time,
// rating to three decimals, author, and tags, then the body text.
// Defaults for missing fields ([unknown] time, [blank] author) are purely
// presentational; the record itself is never touched.
func FormatLore(w io.Writer, entry *types.Lore, tags []string) error {
	header := fmt.Sprintf("#%d [%s] (%.3f) [%s]",
		entry.ID, renderTime(entry.Time), entry.Rating, renderAuthor(entry.Author))
	for _, tag := range tags {
		header += " #" + tag
	}

	_, err := fmt.Fprintf(w, "%s\n%s\n", header, entry.Text)
	return err
}

func renderTime(t *time.Time) string {
	if t == nil {
		return "unknown"
	}
	return t.Format(displayTime)
}

// renderAuthor fills the header's author slot; the header wraps it in
// brackets, so an unknown author renders as "[blank]".
func renderAuthor(author string) string {
	if strings.TrimSpace(author) == "" {
		return "blank"
	}
	return author
}

// Dump writes every entry as a formatted block in ascending time order
// (untimed entries first), blocks separated by blank lines.
func (s *Service) Dump(ctx context.Context, w io.Writer) error {
	entries, err := s.store.All(ctx)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	for i := range entries {
		tags, err := s.store.TagsFor(ctx, entries[i].ID)
		if err != nil {
			return fmt.Errorf("load tags for %d: %w", entries[i].ID, err)
		}
		if err := FormatLore(w, &entries[i], tags); err != nil {
			return fmt.Errorf("write entry %d: %w", entries[i].ID, err)
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}

// DumpPipe writes every entry as a `time|author|text` line in the same
// order, the format Import consumes. The round trip is lossy: vote
// counters reset to the priors and tags are not carried.
func (s *Service) DumpPipe(ctx context.Context, w io.Writer) error {
	entries, err := s.store.All(ctx)
	if err != nil {
		return fmt.Errorf("load entries: %w", err)
	}

	writer := csv.NewWriter(w)
	writer.Comma = '|'

	for _, entry := range entries {
		var ts string
		if entry.Time != nil {
			ts = entry.Time.UTC().Format(time.RFC3339)
		}
		if err := writer.Write([]string{ts, entry.Author, entry.Text}); err != nil {
			return fmt.Errorf("write entry %d: %w", entry.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
