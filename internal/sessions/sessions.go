// Package sessions keeps short-lived, per-user state between requests:
// tutoring conversations and quizzes that are open for submission.
package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/permitpal/internal/llm"
	"github.com/abhisek/permitpal/internal/parser"
)

// ErrNotFound is returned for missing or expired entries.
var ErrNotFound = errors.New("session not found")

// Conversation is one tutoring chat, oldest turn first.
type Conversation struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	Turns     []llm.Message `json:"turns"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// OpenQuiz is a generated quiz waiting for its submission.
type OpenQuiz struct {
	ID        string                `json:"id"`
	UserID    string                `json:"userId"`
	Topic     string                `json:"topic"`
	Questions []parser.QuizQuestion `json:"questions"`
	CreatedAt time.Time             `json:"createdAt"`
}

// Store abstracts where session state lives (in-process or Redis).
type Store interface {
	SaveConversation(ctx context.Context, c *Conversation) error
	Conversation(ctx context.Context, id string) (*Conversation, error)
	DeleteConversation(ctx context.Context, id string) error

	SaveQuiz(ctx context.Context, q *OpenQuiz) error
	Quiz(ctx context.Context, id string) (*OpenQuiz, error)
	DeleteQuiz(ctx context.Context, id string) error

	// TakeQuiz reads and removes a quiz in one step. Of several concurrent
	// callers only one gets the quiz; the rest get ErrNotFound.
	TakeQuiz(ctx context.Context, id string) (*OpenQuiz, error)
}

// NewID returns a fresh random identifier for a conversation or quiz.
func NewID() string {
	return uuid.NewString()
}

func conversationKey(id string) string { return "chat:" + id }

func quizKey(id string) string { return "quiz:" + id }
