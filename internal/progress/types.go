package progress

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
)

// ErrInvalidAttempt is returned by Validate for records that break the
// count invariants.
var ErrInvalidAttempt = errors.New("invalid attempt record")

// AttemptRecord is one submitted quiz. Records are created once and never
// mutated.
type AttemptRecord struct {
	UserID    string     `json:"userId"`
	Topic     string     `json:"topic"`
	Correct   int        `json:"correct"`
	Attempted int        `json:"attempted"`
	Date      civil.Date `json:"date"`
}

// Validate checks the invariants a record must hold before it is stored:
// non-negative counts, Correct <= Attempted, and a set date and user.
func (r AttemptRecord) Validate() error {
	switch {
	case r.UserID == "":
		return fmt.Errorf("%w: empty user id", ErrInvalidAttempt)
	case r.Correct < 0 || r.Attempted < 0:
		return fmt.Errorf("%w: negative count", ErrInvalidAttempt)
	case r.Correct > r.Attempted:
		return fmt.Errorf("%w: correct %d exceeds attempted %d", ErrInvalidAttempt, r.Correct, r.Attempted)
	case !r.Date.IsValid():
		return fmt.Errorf("%w: invalid date", ErrInvalidAttempt)
	}
	return nil
}

// TopicResult is one attempt's contribution to a day, shown under that day.
type TopicResult struct {
	Topic     string  `json:"topic"`
	Correct   int     `json:"correct"`
	Attempted int     `json:"attempted"`
	Accuracy  float64 `json:"accuracy"`
}

// DailySummary aggregates all attempts made on one calendar date.
type DailySummary struct {
	Date      civil.Date    `json:"date"`
	Correct   int           `json:"correct"`
	Attempted int           `json:"attempted"`
	Accuracy  float64       `json:"accuracy"` // 0 when Attempted is 0
	Topics    []TopicResult `json:"topics"`
}

// OverallSummary aggregates every attempt in a history.
type OverallSummary struct {
	Attempts  int `json:"attempts"`
	Correct   int `json:"correct"`
	Attempted int `json:"attempted"`

	// Accuracy is nil when Attempted is 0: there is nothing to divide by,
	// and 0% would be a false claim.
	Accuracy *float64 `json:"accuracy,omitempty"`
}

// HasAttempts reports whether the history contained any attempt at all.
func (s OverallSummary) HasAttempts() bool {
	return s.Attempts > 0
}
