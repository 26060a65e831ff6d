package store

import (
	"context"
	"time"

	"github.com/hyperengineering/loredb/internal/rating"
	"github.com/hyperengineering/loredb/internal/types"
)

// Store defines the interface contract for all lore storage operations.
// Implementations must keep the stored rating equal to
// upvotes/(upvotes+downvotes) on every mutation path.
type Store interface {
	// Record store.
	Create(ctx context.Context, author, text string, t *time.Time) (*types.Lore, error)
	Get(ctx context.Context, id int64) (*types.Lore, error)
	Update(ctx context.Context, id int64, author, text string) error
	Delete(ctx context.Context, id int64) error
	FindByAuthorAndText(ctx context.Context, author, text string) (*types.Lore, error)
	SearchText(ctx context.Context, pattern string, limit int) ([]types.Lore, error)
	SearchAuthor(ctx context.Context, pattern string, limit int) ([]types.Lore, error)
	Recent(ctx context.Context, limit int) ([]types.Lore, error)
	Best(ctx context.Context, limit int) ([]types.Lore, error)
	Random(ctx context.Context, pattern string, count int) ([]types.Lore, error)
	All(ctx context.Context) ([]types.Lore, error)
	Count(ctx context.Context) (int, error)

	// Voting and dedup. Both run as single transactions.
	Vote(ctx context.Context, id int64, dir rating.Direction) (*types.Lore, error)
	AddOrReinforce(ctx context.Context, author, text string, t *time.Time) (*types.Lore, bool, error)

	// Aggregation.
	TopAuthors(ctx context.Context, limit int) ([]types.AuthorScore, error)

	// Tag index.
	AddTags(ctx context.Context, id int64, names []string) error
	RemoveTag(ctx context.Context, id int64, name string) error
	TagsFor(ctx context.Context, id int64) ([]string, error)
	EntriesForTag(ctx context.Context, name string, limit int) ([]types.Lore, error)

	Close() error
}
