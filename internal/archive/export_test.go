package archive

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hyperengineering/loredb/internal/store"
	"github.com/hyperengineering/loredb/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLore(t *testing.T) {
	ts := time.Date(2016, 9, 12, 15, 21, 27, 0, time.UTC)
	entry := &types.Lore{
		ID:     3,
		Time:   &ts,
		Author: "bob",
		Text:   "the lasagna incident",
		Rating: 4.0 / 14.0,
	}

	var buf bytes.Buffer
	require.NoError(t, FormatLore(&buf, entry, []string{"classic", "lasagna"}))

	assert.Equal(t,
		"#3 [2016-09-12 15:21:27] (0.286) [bob] #classic #lasagna\nthe lasagna incident\n",
		buf.String())
}

func TestFormatLore_Defaults(t *testing.T) {
	entry := &types.Lore{ID: 7, Author: "", Text: "mystery lore", Rating: 0.25}

	var buf bytes.Buffer
	require.NoError(t, FormatLore(&buf, entry, nil))

	assert.Equal(t, "#7 [unknown] (0.250) [blank]\nmystery lore\n", buf.String())
	// Presentation defaults never leak back into the record.
	assert.Equal(t, "", entry.Author)
	assert.Nil(t, entry.Time)
}

func TestDump_BlocksInAscendingTimeOrder(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	later := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	second, _, err := st.AddOrReinforce(ctx, "bob", "second lore", &later)
	require.NoError(t, err)
	_, _, err = st.AddOrReinforce(ctx, "alice", "first lore", &earlier)
	require.NoError(t, err)
	require.NoError(t, svc.AddTags(ctx, second.ID, []string{"finale"}))

	var buf bytes.Buffer
	require.NoError(t, svc.Dump(ctx, &buf))

	out := buf.String()
	assert.Less(t, strings.Index(out, "first lore"), strings.Index(out, "second lore"))
	assert.Contains(t, out, "#finale")
	assert.Contains(t, out, "(0.286)")

	blocks := strings.Split(strings.TrimRight(out, "\n"), "\n\n")
	assert.Len(t, blocks, 2)
}

func TestDumpPipe_RoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	ts := time.Date(2019, 4, 1, 12, 0, 0, 0, time.UTC)
	for _, l := range []struct{ author, text string }{
		{"bob", "lore one"},
		{"alice", "lore two"},
		{"", "anonymous lore"},
	} {
		_, _, err := svc.store.AddOrReinforce(ctx, l.author, l.text, &ts)
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	require.NoError(t, svc.DumpPipe(ctx, &buf))

	// Re-import into a fresh archive: count and (author, text) content
	// survive; vote state legitimately resets to the priors.
	other, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer other.Close()
	otherSvc := New(other, nil)

	result, err := otherSvc.Import(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Imported)
	assert.Equal(t, 0, result.BadTimestamps)

	count, err := other.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	entry, err := other.FindByAuthorAndText(ctx, "bob", "lore one")
	require.NoError(t, err)
	assert.Equal(t, int64(4), entry.Upvotes)
	require.NotNil(t, entry.Time)
	assert.True(t, entry.Time.Equal(ts))
}
