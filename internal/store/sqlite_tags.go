package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hyperengineering/loredb/internal/types"
)

// AddTags associates each named tag with the entry, creating tags on
// first use. Associating an already-associated tag is a no-op, so the
// whole operation is idempotent.
func (s *SQLiteStore) AddTags(ctx context.Context, id int64, names []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := loreExistsTx(ctx, tx, id); err != nil {
		return err
	}

	for _, name := range names {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tags (name) VALUES (?) ON CONFLICT(name) DO NOTHING
		`, name); err != nil {
			return fmt.Errorf("create tag %q: %w", name, err)
		}

		var tagID int64
		if err := tx.QueryRowContext(ctx, `
			SELECT id FROM tags WHERE name = ?
		`, name).Scan(&tagID); err != nil {
			return fmt.Errorf("look up tag %q: %w", name, err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO lore_tags (lore_id, tag_id) VALUES (?, ?)
		`, id, tagID); err != nil {
			return fmt.Errorf("associate tag %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// RemoveTag removes the association between the entry and the named tag.
// The entry and the tag must exist; an absent association is not an error.
// Tags are never deleted, even when nothing references them anymore.
func (s *SQLiteStore) RemoveTag(ctx context.Context, id int64, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := loreExistsTx(ctx, tx, id); err != nil {
		return err
	}

	var tagID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM tags WHERE name = ?`, name).Scan(&tagID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTagNotFound
		}
		return fmt.Errorf("look up tag %q: %w", name, err)
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM lore_tags WHERE lore_id = ? AND tag_id = ?
	`, id, tagID); err != nil {
		return fmt.Errorf("remove association: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// TagsFor returns the entry's tag names, sorted.
func (s *SQLiteStore) TagsFor(ctx context.Context, id int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.name
		FROM tags t
		JOIN lore_tags lt ON lt.tag_id = t.id
		WHERE lt.lore_id = ?
		ORDER BY t.name
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return names, nil
}

// EntriesForTag returns entries carrying the named tag, newest first.
func (s *SQLiteStore) EntriesForTag(ctx context.Context, name string, limit int) ([]types.Lore, error) {
	var tagID int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM tags WHERE name = ?`, name).Scan(&tagID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("look up tag %q: %w", name, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+loreColumns+`
		FROM lore
		JOIN lore_tags lt ON lt.lore_id = lore.id
		WHERE lt.tag_id = ?
		ORDER BY time DESC
		LIMIT ?
	`, tagID, limit)
	if err != nil {
		return nil, fmt.Errorf("query tagged entries: %w", err)
	}

	return collectLore(rows)
}

// loreExistsTx fails with ErrNotFound when no entry has the given id.
func loreExistsTx(ctx context.Context, tx *sql.Tx, id int64) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM lore WHERE id = ?`, id).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("look up lore %d: %w", id, err)
	}
	return nil
}
