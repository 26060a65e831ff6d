// Package archive coordinates the lore operations behind the CLI: ingest
// with dedup-as-reinforcement, batch voting, ranking queries, and the
// import/export formats. It holds no state of its own; the injected Store
// is the single source of truth.
package archive

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hyperengineering/loredb/internal/rating"
	"github.com/hyperengineering/loredb/internal/store"
	"github.com/hyperengineering/loredb/internal/types"
)

// Service exposes the archive operations over an injected store.
type Service struct {
	store  store.Store
	logger *slog.Logger
}

// New creates a Service. A nil logger falls back to slog.Default().
func New(st store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: st, logger: logger}
}

// Add stores new lore, or reinforces the existing entry when the same
// (author, text) pair is already archived. Resubmission is never an
// error: it becomes an upvote. The bool reports whether a row was created.
func (s *Service) Add(ctx context.Context, author, text string) (*types.Lore, bool, error) {
	now := time.Now()
	entry, created, err := s.store.AddOrReinforce(ctx, author, text, &now)
	if err != nil {
		return nil, false, fmt.Errorf("add lore: %w", err)
	}

	if created {
		s.logger.Debug("lore added", "id", entry.ID, "author", author)
	} else {
		s.logger.Debug("duplicate reinforced", "id", entry.ID, "upvotes", entry.Upvotes)
	}
	return entry, created, nil
}

// Vote applies the same direction to each id independently, failing fast
// on the first miss. Votes already applied for earlier ids stay committed;
// there is no cross-batch rollback.
func (s *Service) Vote(ctx context.Context, ids []int64, dir rating.Direction) error {
	for _, id := range ids {
		if _, err := s.store.Vote(ctx, id, dir); err != nil {
			return fmt.Errorf("%svote lore %d: %w", dir, id, err)
		}
		s.logger.Debug("vote applied", "id", id, "direction", dir.String())
	}
	return nil
}

// Get returns a single entry by id.
func (s *Service) Get(ctx context.Context, id int64) (*types.Lore, error) {
	return s.store.Get(ctx, id)
}

// Update replaces an entry's author and text, leaving votes intact.
func (s *Service) Update(ctx context.Context, id int64, author, text string) error {
	if err := s.store.Update(ctx, id, author, text); err != nil {
		return fmt.Errorf("update lore %d: %w", id, err)
	}
	s.logger.Debug("lore updated", "id", id)
	return nil
}

// Delete removes an entry by id.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete lore %d: %w", id, err)
	}
	s.logger.Debug("lore deleted", "id", id)
	return nil
}

// Recent returns the newest entries, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]types.Lore, error) {
	return s.store.Recent(ctx, limit)
}

// Best returns the highest-rated entries.
func (s *Service) Best(ctx context.Context, limit int) ([]types.Lore, error) {
	return s.store.Best(ctx, limit)
}

// Search returns entries containing pattern in their text, or their author
// when byAuthor is set, newest first.
func (s *Service) Search(ctx context.Context, pattern string, byAuthor bool, limit int) ([]types.Lore, error) {
	if byAuthor {
		return s.store.SearchAuthor(ctx, pattern, limit)
	}
	return s.store.SearchText(ctx, pattern, limit)
}

// Random returns a uniform sample without replacement among entries whose
// text contains pattern.
func (s *Service) Random(ctx context.Context, pattern string, count int) ([]types.Lore, error) {
	return s.store.Random(ctx, pattern, count)
}

// TopAuthors ranks authors by summed rating of their qualifying entries.
func (s *Service) TopAuthors(ctx context.Context, limit int) ([]types.AuthorScore, error) {
	return s.store.TopAuthors(ctx, limit)
}

// AddTags labels an entry, creating tags on first use.
func (s *Service) AddTags(ctx context.Context, id int64, names []string) error {
	return s.store.AddTags(ctx, id, names)
}

// RemoveTag detaches a tag from an entry.
func (s *Service) RemoveTag(ctx context.Context, id int64, name string) error {
	return s.store.RemoveTag(ctx, id, name)
}

// Tags returns the entry's tag names.
func (s *Service) Tags(ctx context.Context, id int64) ([]string, error) {
	return s.store.TagsFor(ctx, id)
}

// Count returns the number of archived entries.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// EntriesForTag returns entries carrying the tag, newest first.
func (s *Service) EntriesForTag(ctx context.Context, name string, limit int) ([]types.Lore, error) {
	return s.store.EntriesForTag(ctx, name, limit)
}
