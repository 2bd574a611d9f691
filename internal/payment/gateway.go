// Package payment sells the one-time lifetime access that unlocks quizzes
// and flashcards.
package payment

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured is returned when no payment gateway is set up.
	ErrNotConfigured = errors.New("payment gateway not configured")

	// ErrUnknownSession is returned for a checkout token the gateway does
	// not recognise.
	ErrUnknownSession = errors.New("unknown checkout session")

	// ErrSessionMismatch is returned when a paid session belongs to a
	// different user than the one confirming it.
	ErrSessionMismatch = errors.New("checkout session belongs to another user")
)

// Verification is the gateway's view of one checkout session.
type Verification struct {
	SessionID string
	UserID    string
	Paid      bool

	// Reference identifies the payment, stored with the access grant.
	Reference string
}

// Gateway starts and verifies hosted checkouts.
type Gateway interface {
	// CreateCheckout starts a checkout for userID and returns the URL the
	// user should be redirected to.
	CreateCheckout(ctx context.Context, userID, email string) (string, error)

	// VerifyPaid looks up a checkout session by the token handed back on
	// the success redirect.
	VerifyPaid(ctx context.Context, token string) (Verification, error)
}
