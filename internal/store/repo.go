package store

import (
	"context"
	"time"

	"github.com/abhisek/permitpal/internal/progress"
)

// ErrInvalidAttempt is returned when an attempt breaks the count invariants.
var ErrInvalidAttempt = progress.ErrInvalidAttempt

// AttemptRepo stores submitted quiz attempts.
type AttemptRepo interface {
	// InsertAttempt validates and appends one attempt.
	InsertAttempt(ctx context.Context, rec progress.AttemptRecord) error

	// QueryAttempts returns a user's attempts in insertion order.
	QueryAttempts(ctx context.Context, userID string) ([]progress.AttemptRecord, error)
}

// AccessRepo tracks which users have paid.
type AccessRepo interface {
	// HasPaidAccess reports whether userID holds a grant.
	HasPaidAccess(ctx context.Context, userID string) (bool, error)

	// GrantAccess records a grant for userID. Granting twice keeps the
	// first payment reference.
	GrantAccess(ctx context.Context, userID, paymentRef string) error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // id > After
	Before  int64     // id < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID           int64     `db:"id"`
	Timestamp    time.Time `db:"created_at"`
	Provider     string    `db:"provider"`
	Model        string    `db:"model"`
	Purpose      string    `db:"purpose"`
	InputTokens  int       `db:"input_tokens"`
	OutputTokens int       `db:"output_tokens"`
	LatencyMs    int64     `db:"latency_ms"`
	Success      bool      `db:"success"`
	ErrorMessage string    `db:"error_message"`
	RequestBody  string    `db:"request_body"`
	ResponseBody string    `db:"response_body"`
}

// LLMUsageStats aggregates calls grouped by purpose or by model; only the
// grouping key of the query is set.
type LLMUsageStats struct {
	Purpose      string `db:"purpose"`
	Model        string `db:"model"`
	Calls        int    `db:"calls"`
	InputTokens  int    `db:"input_tokens"`
	OutputTokens int    `db:"output_tokens"`
	AvgLatencyMs int64  `db:"avg_latency_ms"`
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsageStats, error)

	// PruneLLMEvents deletes events recorded before the cutoff and returns
	// how many were removed.
	PruneLLMEvents(ctx context.Context, before time.Time) (int64, error)
}
