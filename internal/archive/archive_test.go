package archive

import (
	"context"
	"testing"

	"github.com/hyperengineering/loredb/internal/rating"
	"github.com/hyperengineering/loredb/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, store.Store) {
	t.Helper()

	st, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return New(st, nil), st
}

func TestAdd_CreatesWithPriors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	entry, created, err := svc.Add(ctx, "bob", "lore 1")
	require.NoError(t, err)

	assert.True(t, created)
	assert.Equal(t, int64(4), entry.Upvotes)
	assert.Equal(t, int64(10), entry.Downvotes)
	assert.InDelta(t, 4.0/14.0, entry.Rating, 1e-12)
	assert.NotNil(t, entry.Time)
}

func TestAdd_DuplicateReinforces(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	first, created, err := svc.Add(ctx, "bob", "lore")
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := svc.Add(ctx, "bob", "lore")
	require.NoError(t, err)

	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(5), second.Upvotes)
	assert.InDelta(t, 5.0/15.0, second.Rating, 1e-12)

	count, err := st.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "duplicate add must not create a second row")
}

func TestVote_Batch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, _, err := svc.Add(ctx, "bob", "lore a")
	require.NoError(t, err)
	b, _, err := svc.Add(ctx, "alice", "lore b")
	require.NoError(t, err)

	require.NoError(t, svc.Vote(ctx, []int64{a.ID, b.ID}, rating.Up))

	for _, id := range []int64{a.ID, b.ID} {
		entry, err := svc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(5), entry.Upvotes)
		assert.InDelta(t, 5.0/15.0, entry.Rating, 1e-12)
	}
}

func TestVote_Downvote(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	entry, _, err := svc.Add(ctx, "bob", "lore")
	require.NoError(t, err)

	require.NoError(t, svc.Vote(ctx, []int64{entry.ID}, rating.Down))

	got, err := svc.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.Downvotes)
	assert.InDelta(t, 4.0/15.0, got.Rating, 1e-12)
}

func TestVote_FailFastKeepsEarlierCommits(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	a, _, err := svc.Add(ctx, "bob", "lore a")
	require.NoError(t, err)
	b, _, err := svc.Add(ctx, "alice", "lore b")
	require.NoError(t, err)

	err = svc.Vote(ctx, []int64{a.ID, 999, b.ID}, rating.Up)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Contains(t, err.Error(), "999")

	// The vote before the failure stays committed; the one after was never
	// attempted.
	gotA, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), gotA.Upvotes)

	gotB, err := svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), gotB.Upvotes)
}

func TestSearch_ByTextAndAuthor(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Add(ctx, "bob", "the lasagna incident")
	require.NoError(t, err)
	_, _, err = svc.Add(ctx, "lasagna-fan", "quiet day")
	require.NoError(t, err)

	byText, err := svc.Search(ctx, "lasagna", false, 10)
	require.NoError(t, err)
	require.Len(t, byText, 1)
	assert.Equal(t, "bob", byText[0].Author)

	byAuthor, err := svc.Search(ctx, "lasagna", true, 10)
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "lasagna-fan", byAuthor[0].Author)
}

func TestTopAuthors_ExcludesSunkEntries(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Add(ctx, "bob", "good lore")
	require.NoError(t, err)
	bad, _, err := svc.Add(ctx, "alice", "bad lore")
	require.NoError(t, err)

	require.NoError(t, svc.Vote(ctx, []int64{bad.ID}, rating.Down))
	require.NoError(t, svc.Vote(ctx, []int64{bad.ID}, rating.Down))

	scores, err := svc.TopAuthors(ctx, 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "bob", scores[0].Author)
}

func TestTags_Lifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	entry, _, err := svc.Add(ctx, "bob", "lore")
	require.NoError(t, err)

	require.NoError(t, svc.AddTags(ctx, entry.ID, []string{"lasagna", "classic"}))
	require.NoError(t, svc.AddTags(ctx, entry.ID, []string{"lasagna"}))

	tags, err := svc.Tags(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"classic", "lasagna"}, tags)

	require.NoError(t, svc.RemoveTag(ctx, entry.ID, "classic"))

	entries, err := svc.EntriesForTag(ctx, "lasagna", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
}

func TestDelete_UnknownID(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Delete(context.Background(), 12345)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
