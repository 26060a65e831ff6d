package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hyperengineering/loredb/internal/rating"
	"github.com/hyperengineering/loredb/internal/types"
	_ "modernc.org/sqlite"
)

// loreColumns is the canonical column list scanned by scanLore.
const loreColumns = "id, time, author, text, upvotes, downvotes, rating"

// SQLiteStore is the SQLite-backed lore archive.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if necessary) the archive at dbPath.
// It enables WAL mode, applies pragmas, and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure parent directory exists
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single connection: serializes writers in-process so the dedup
	// check-then-act cannot race past itself. Cross-process writers are
	// serialized by SQLite's own locking plus busy_timeout.
	db.SetMaxOpenConns(1)

	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// enablePragmas sets SQLite pragmas for optimal performance and safety.
func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanLore scans a row into a Lore entry, parsing the nullable timestamp.
func scanLore(scanner interface{ Scan(...any) error }) (*types.Lore, error) {
	var entry types.Lore
	var timeStr sql.NullString

	err := scanner.Scan(
		&entry.ID,
		&timeStr,
		&entry.Author,
		&entry.Text,
		&entry.Upvotes,
		&entry.Downvotes,
		&entry.Rating,
	)
	if err != nil {
		return nil, err
	}

	if timeStr.Valid {
		if t, err := time.Parse(time.RFC3339, timeStr.String); err == nil {
			entry.Time = &t
		}
	}

	return &entry, nil
}

// timeValue converts an optional timestamp to its stored form.
func timeValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// collectLore drains rows into a slice.
func collectLore(rows *sql.Rows) ([]types.Lore, error) {
	defer rows.Close()

	var entries []types.Lore
	for rows.Next() {
		entry, err := scanLore(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return entries, nil
}

// Create inserts a new entry seeded with the prior vote counters.
func (s *SQLiteStore) Create(ctx context.Context, author, text string, t *time.Time) (*types.Lore, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO lore (time, author, text, upvotes, downvotes, rating)
		VALUES (?, ?, ?, ?, ?, ?)
	`, timeValue(t), author, text, rating.PriorUpvotes, rating.PriorDownvotes, rating.Initial())
	if err != nil {
		return nil, fmt.Errorf("insert lore: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return &types.Lore{
		ID:        id,
		Time:      t,
		Author:    author,
		Text:      text,
		Upvotes:   rating.PriorUpvotes,
		Downvotes: rating.PriorDownvotes,
		Rating:    rating.Initial(),
	}, nil
}

// Get retrieves an entry by id.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (*types.Lore, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+loreColumns+` FROM lore WHERE id = ?
	`, id)

	entry, err := scanLore(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan row: %w", err)
	}

	return entry, nil
}

// Update replaces author and text in place. Votes, rating, and the
// creation timestamp are untouched.
func (s *SQLiteStore) Update(ctx context.Context, id int64, author, text string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE lore SET author = ?, text = ? WHERE id = ?
	`, author, text, id)
	if err != nil {
		return fmt.Errorf("update lore: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes the addressed entry. Tag associations cascade.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM lore WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete lore: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// FindByAuthorAndText is the exact compound dedup lookup. Both fields
// must match; returns ErrNotFound on a miss.
func (s *SQLiteStore) FindByAuthorAndText(ctx context.Context, author, text string) (*types.Lore, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+loreColumns+` FROM lore WHERE author = ? AND text = ?
	`, author, text)

	entry, err := scanLore(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan row: %w", err)
	}

	return entry, nil
}

// filterContains returns entries whose column contains pattern, newest
// first. instr() keeps the match case-sensitive, unlike LIKE; an empty
// pattern matches everything.
func (s *SQLiteStore) filterContains(ctx context.Context, column, pattern string, limit int) ([]types.Lore, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM lore
		WHERE (? = '' OR instr(%s, ?) > 0)
		ORDER BY time DESC
		LIMIT ?
	`, loreColumns, column)

	rows, err := s.db.QueryContext(ctx, query, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("query %s filter: %w", column, err)
	}

	return collectLore(rows)
}

// SearchText returns entries whose body contains pattern, newest first.
func (s *SQLiteStore) SearchText(ctx context.Context, pattern string, limit int) ([]types.Lore, error) {
	return s.filterContains(ctx, "text", pattern, limit)
}

// SearchAuthor returns entries whose author contains pattern, newest first.
func (s *SQLiteStore) SearchAuthor(ctx context.Context, pattern string, limit int) ([]types.Lore, error) {
	return s.filterContains(ctx, "author", pattern, limit)
}

// Recent returns the newest entries. Entries without a timestamp sort
// last.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]types.Lore, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+loreColumns+` FROM lore ORDER BY time DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}

	return collectLore(rows)
}

// Best returns the highest-rated entries.
func (s *SQLiteStore) Best(ctx context.Context, limit int) ([]types.Lore, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+loreColumns+` FROM lore ORDER BY rating DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query best: %w", err)
	}

	return collectLore(rows)
}

// Random returns a uniform sample, without replacement, of entries whose
// body contains pattern.
func (s *SQLiteStore) Random(ctx context.Context, pattern string, count int) ([]types.Lore, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+loreColumns+` FROM lore
		WHERE (? = '' OR instr(text, ?) > 0)
		ORDER BY RANDOM()
		LIMIT ?
	`, pattern, pattern, count)
	if err != nil {
		return nil, fmt.Errorf("query random: %w", err)
	}

	return collectLore(rows)
}

// All returns every entry in ascending time order, untimed entries first.
// This is the dump order.
func (s *SQLiteStore) All(ctx context.Context) ([]types.Lore, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ` + loreColumns + ` FROM lore ORDER BY time ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query all: %w", err)
	}

	return collectLore(rows)
}

// Count returns the number of stored entries.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM lore").Scan(&count)
	return count, err
}

// Vote applies a single vote to the addressed entry. The counter
// increment and the recomputed rating are persisted in one transaction so
// they are never observable apart.
func (s *SQLiteStore) Vote(ctx context.Context, id int64, dir rating.Direction) (*types.Lore, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT `+loreColumns+` FROM lore WHERE id = ?
	`, id)
	entry, err := scanLore(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan row: %w", err)
	}

	if err := applyVoteTx(ctx, tx, entry, dir); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return entry, nil
}

// applyVoteTx increments one counter on entry, recomputes the rating, and
// persists both inside the caller's transaction.
func applyVoteTx(ctx context.Context, tx *sql.Tx, entry *types.Lore, dir rating.Direction) error {
	if dir == rating.Up {
		entry.Upvotes++
	} else {
		entry.Downvotes++
	}
	entry.Rating = rating.Compute(entry.Upvotes, entry.Downvotes)

	_, err := tx.ExecContext(ctx, `
		UPDATE lore SET upvotes = ?, downvotes = ?, rating = ? WHERE id = ?
	`, entry.Upvotes, entry.Downvotes, entry.Rating, entry.ID)
	if err != nil {
		return fmt.Errorf("update votes: %w", err)
	}

	return nil
}

// AddOrReinforce inserts a new entry, or upvotes the existing one when the
// (author, text) pair is already stored. The lookup and the write share a
// transaction, so two simultaneous adds of the same pair cannot both
// insert. The bool reports whether a new row was created.
func (s *SQLiteStore) AddOrReinforce(ctx context.Context, author, text string, t *time.Time) (*types.Lore, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT `+loreColumns+` FROM lore WHERE author = ? AND text = ?
	`, author, text)
	entry, err := scanLore(row)

	switch {
	case err == nil:
		// Duplicate submission counts as a vote of confidence.
		if err := applyVoteTx(ctx, tx, entry, rating.Up); err != nil {
			return nil, false, err
		}
		if err := tx.Commit(); err != nil {
			return nil, false, fmt.Errorf("commit transaction: %w", err)
		}
		return entry, false, nil

	case errors.Is(err, sql.ErrNoRows):
		result, err := tx.ExecContext(ctx, `
			INSERT INTO lore (time, author, text, upvotes, downvotes, rating)
			VALUES (?, ?, ?, ?, ?, ?)
		`, timeValue(t), author, text, rating.PriorUpvotes, rating.PriorDownvotes, rating.Initial())
		if err != nil {
			return nil, false, fmt.Errorf("insert lore: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, false, fmt.Errorf("last insert id: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return nil, false, fmt.Errorf("commit transaction: %w", err)
		}
		return &types.Lore{
			ID:        id,
			Time:      t,
			Author:    author,
			Text:      text,
			Upvotes:   rating.PriorUpvotes,
			Downvotes: rating.PriorDownvotes,
			Rating:    rating.Initial(),
		}, true, nil

	default:
		return nil, false, fmt.Errorf("scan row: %w", err)
	}
}
