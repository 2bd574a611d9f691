package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/abhisek/permitpal/internal/llm"
	"github.com/abhisek/permitpal/internal/payment"
	"github.com/abhisek/permitpal/internal/sessions"
	"github.com/abhisek/permitpal/internal/store"
	"github.com/abhisek/permitpal/internal/tutor"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// decodeJSON reads a JSON body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// statusFor maps domain errors onto HTTP statuses.
func statusFor(err error) int {
	var (
		rateLimit   *llm.ErrRateLimit
		unavailable *llm.ErrProviderUnavailable
		invalid     *llm.ErrInvalidResponse
		maxTokens   *llm.ErrMaxTokensExceeded
	)
	switch {
	case errors.Is(err, tutor.ErrUnknownTopic),
		errors.Is(err, tutor.ErrIncompleteSubmission),
		errors.Is(err, tutor.ErrEmptyConversation),
		errors.Is(err, store.ErrInvalidAttempt):
		return http.StatusBadRequest
	case errors.Is(err, sessions.ErrNotFound),
		errors.Is(err, payment.ErrUnknownSession):
		return http.StatusNotFound
	case errors.Is(err, payment.ErrSessionMismatch):
		return http.StatusForbidden
	case errors.Is(err, payment.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.As(err, &rateLimit):
		return http.StatusTooManyRequests
	case errors.Is(err, tutor.ErrNoQuestions),
		errors.Is(err, tutor.ErrNoFlashcards),
		errors.As(err, &unavailable),
		errors.As(err, &invalid),
		errors.As(err, &maxTokens):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
