package store

import (
	"context"
	"fmt"

	"github.com/hyperengineering/loredb/internal/rating"
	"github.com/hyperengineering/loredb/internal/types"
)

// TopAuthors groups entries by author (case-insensitive) and ranks authors
// by the sum of their entries' ratings. Entries at or below the cutoff do
// not contribute: after two real downvotes from the prior baseline an entry
// sits exactly at the cutoff and drops out of the ranking.
func (s *SQLiteStore) TopAuthors(ctx context.Context, limit int) ([]types.AuthorScore, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT author, COUNT(*), SUM(rating) AS score
		FROM lore
		WHERE rating > ?
		GROUP BY lower(author)
		ORDER BY score DESC
		LIMIT ?
	`, rating.TopCutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("query top authors: %w", err)
	}
	defer rows.Close()

	var scores []types.AuthorScore
	for rows.Next() {
		var as types.AuthorScore
		if err := rows.Scan(&as.Author, &as.Count, &as.Score); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		scores = append(scores, as)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return scores, nil
}
