package archive

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/hyperengineering/loredb/internal/types"
)

// Import ingests pipe-separated `time|author|text` lines. Timestamps are
// parsed leniently (legacy exports carry forms like "Mon Sep 12 15:21:27
// EDT 2016"); an unparseable timestamp is stored as null rather than
// rejecting the row. Rows flow through add-or-reinforce, so duplicate
// lines strengthen the existing entry instead of inserting twice.
func (s *Service) Import(ctx context.Context, r io.Reader) (*types.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.Comma = '|'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	result := &types.ImportResult{}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result, fmt.Errorf("read import record: %w", err)
		}
		if len(record) < 3 {
			s.logger.Warn("skipping short import record", "fields", len(record))
			continue
		}

		var t *time.Time
		if raw := strings.TrimSpace(record[0]); raw != "" {
			parsed, err := dateparse.ParseAny(raw)
			if err != nil {
				s.logger.Debug("unparseable timestamp, storing null", "raw", raw)
				result.BadTimestamps++
			} else {
				t = &parsed
			}
		}

		author := record[1]
		// Unquoted pipes inside the quote body split into extra fields;
		// stitch them back together.
		text := strings.Join(record[2:], "|")

		_, created, err := s.store.AddOrReinforce(ctx, author, text, t)
		if err != nil {
			return result, fmt.Errorf("import lore by %q: %w", author, err)
		}
		if created {
			result.Imported++
		} else {
			result.Reinforced++
		}
	}

	s.logger.Info("import finished",
		"imported", result.Imported,
		"reinforced", result.Reinforced,
		"bad_timestamps", result.BadTimestamps)

	return result, nil
}
