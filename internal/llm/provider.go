// Package llm is the generation-service adapter. Every model backend sits
// behind Provider, and callers only ever see plain text (or, when a Schema
// is requested, schema-validated JSON text).
package llm

import (
	"context"
	"fmt"
)

// Provider sends a conversation to a language model and returns its reply.
type Provider interface {
	// Generate sends req and returns the model's reply. Text is free-form
	// unless req.Schema is set, in which case it is JSON validated against
	// the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	// System sets the tutor persona and output-format rules.
	System string

	// Messages is the conversation so far, oldest first. Quiz and flashcard
	// generation send a single user turn; tutoring chat sends the whole
	// history.
	Messages []Message

	// Schema, when set, asks the provider for JSON conforming to it.
	Schema *Schema

	// MaxTokens caps the reply length.
	MaxTokens int

	// Temperature controls randomness (0.0 - 1.0). Zero leaves the provider
	// default in place.
	Temperature float64
}

// Message is one turn of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Role is the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is a role providers accept in Messages.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Validate checks that the request carries at least one message and that
// every message has a known role.
func (r Request) Validate() error {
	if len(r.Messages) == 0 {
		return fmt.Errorf("request has no messages")
	}
	for i, m := range r.Messages {
		if !m.Role.Valid() {
			return fmt.Errorf("message %d: unknown role %q", i, m.Role)
		}
	}
	return nil
}

// Schema is the JSON structure expected back from the model.
type Schema struct {
	// Name identifies the schema, kebab-case, e.g. "study-plan".
	Name string

	// Description tells the model what the object represents.
	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any
}

// Response is the model's reply.
type Response struct {
	// Text is the reply exactly as the model produced it.
	Text string

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage is the token accounting for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
