package store

import (
	"context"
	"testing"

	"github.com/hyperengineering/loredb/internal/rating"
)

func TestTopAuthors_RanksBySummedRating(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// bob: two entries, one upvoted. alice: one entry at baseline.
	b1, err := s.Create(ctx, "bob", "bob lore 1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Create(ctx, "bob", "bob lore 2", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Create(ctx, "alice", "alice lore", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Vote(ctx, b1.ID, rating.Up); err != nil {
		t.Fatal(err)
	}

	scores, err := s.TopAuthors(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 authors, got %d", len(scores))
	}
	if scores[0].Author != "bob" || scores[0].Count != 2 {
		t.Errorf("expected bob first with 2 entries, got %+v", scores[0])
	}
	wantScore := 5.0/15.0 + 4.0/14.0
	if diff := scores[0].Score - wantScore; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected bob score %v, got %v", wantScore, scores[0].Score)
	}
}

func TestTopAuthors_ExcludesTwiceDownvoted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Create(ctx, "bob", "good lore", nil); err != nil {
		t.Fatal(err)
	}
	bad, err := s.Create(ctx, "alice", "bad lore", nil)
	if err != nil {
		t.Fatal(err)
	}

	// Two downvotes put the entry exactly at the cutoff; it no longer
	// contributes, and alice disappears from the ranking entirely.
	if _, err := s.Vote(ctx, bad.ID, rating.Down); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Vote(ctx, bad.ID, rating.Down); err != nil {
		t.Fatal(err)
	}

	scores, err := s.TopAuthors(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected 1 author after filtering, got %d", len(scores))
	}
	if scores[0].Author != "bob" {
		t.Errorf("expected bob, got %q", scores[0].Author)
	}
}

func TestTopAuthors_GroupsCaseInsensitively(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Create(ctx, "Bob", "lore 1", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Create(ctx, "bob", "lore 2", nil); err != nil {
		t.Fatal(err)
	}

	scores, err := s.TopAuthors(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected Bob and bob to group, got %d rows", len(scores))
	}
	if scores[0].Count != 2 {
		t.Errorf("expected count 2, got %d", scores[0].Count)
	}
}

func TestTopAuthors_Limit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, author := range []string{"a", "b", "c"} {
		if _, err := s.Create(ctx, author, author+" lore", nil); err != nil {
			t.Fatal(err)
		}
	}

	scores, err := s.TopAuthors(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 2 {
		t.Errorf("expected limit to cap at 2, got %d", len(scores))
	}
}
