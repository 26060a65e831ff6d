package types

import "time"

// Lore represents a single attributed quote in the archive.
//
// Time is nil when provenance is unknown (legacy imports with unparseable
// timestamps). Author may be the empty string, meaning "unknown"; the pair
// (Author, Text) is the deduplication key and is unique across the store.
type Lore struct {
	ID        int64      `json:"id"`
	Time      *time.Time `json:"time,omitempty"`
	Author    string     `json:"author"`
	Text      string     `json:"text"`
	Upvotes   int64      `json:"upvotes"`
	Downvotes int64      `json:"downvotes"`
	Rating    float64    `json:"rating"`
}

// AuthorScore is one row of the top-authors ranking: how many qualifying
// entries an author has and the sum of their ratings.
type AuthorScore struct {
	Author string  `json:"author"`
	Count  int64   `json:"count"`
	Score  float64 `json:"score"`
}

// ImportResult summarizes a bulk import run.
type ImportResult struct {
	Imported      int `json:"imported"`
	Reinforced    int `json:"reinforced"`
	BadTimestamps int `json:"bad_timestamps"`
}
