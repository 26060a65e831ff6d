// Package rating implements the Bayesian-smoothed scoring model.
//
// Every entry is born with fake prior votes so that the first few real
// votes move the score gradually instead of pinning it to 0.0 or 1.0.
package rating

// Bayesian smoothing priors seeded into every new entry's vote counters.
const (
	PriorUpvotes   int64 = 4
	PriorDownvotes int64 = 10
)

// TopCutoff is the minimum rating an entry must exceed to contribute to
// author ranking. It equals the rating after exactly two real downvotes
// from the prior baseline (4/16), so twice-downvoted entries drop out.
const TopCutoff = 0.25

// Direction is the polarity of a vote.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// Compute returns upvotes / (upvotes + downvotes).
//
// It does not guard against a zero sum: the priors guarantee a non-zero
// denominator for every row the store creates, and external tampering that
// zeroes both counters is undefined behavior.
func Compute(upvotes, downvotes int64) float64 {
	return float64(upvotes) / float64(upvotes+downvotes)
}

// Initial returns the rating of a freshly created entry, derived from the
// priors alone (4/14).
func Initial() float64 {
	return Compute(PriorUpvotes, PriorDownvotes)
}
