package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/abhisek/permitpal/internal/store"
)

// DefaultVerifyTimeout bounds one shared gateway lookup in Confirm.
const DefaultVerifyTimeout = 30 * time.Second

// Paywall decides who may use premium features and turns completed
// checkouts into access grants.
type Paywall struct {
	gateway Gateway
	access  store.AccessRepo
	logger  *slog.Logger

	// confirms collapses concurrent confirmations of the same token into
	// one gateway lookup.
	confirms      singleflight.Group
	verifyTimeout time.Duration
}

// NewPaywall creates a Paywall. gateway may be nil, in which case checkout
// and confirmation return ErrNotConfigured while access checks still work.
func NewPaywall(gateway Gateway, access store.AccessRepo, logger *slog.Logger) *Paywall {
	if logger == nil {
		logger = slog.Default()
	}
	return &Paywall{gateway: gateway, access: access, logger: logger, verifyTimeout: DefaultVerifyTimeout}
}

// HasAccess reports whether userID has paid.
func (p *Paywall) HasAccess(ctx context.Context, userID string) (bool, error) {
	ok, err := p.access.HasPaidAccess(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("check access: %w", err)
	}
	return ok, nil
}

// Checkout returns a hosted checkout URL for userID.
func (p *Paywall) Checkout(ctx context.Context, userID, email string) (string, error) {
	if p.gateway == nil {
		return "", ErrNotConfigured
	}
	url, err := p.gateway.CreateCheckout(ctx, userID, email)
	if err != nil {
		return "", err
	}
	p.logger.Info("checkout started", slog.String("user", userID))
	return url, nil
}

// Confirm verifies the checkout identified by token and grants access when
// it is paid and belongs to userID. It reports whether the user now has
// access.
func (p *Paywall) Confirm(ctx context.Context, userID, token string) (bool, error) {
	if p.gateway == nil {
		return false, ErrNotConfigured
	}

	// The lookup is shared by every waiting caller, so it must not die with
	// the first caller's context. Each caller still stops waiting on its own.
	ch := p.confirms.DoChan(token, func() (any, error) {
		vctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.verifyTimeout)
		defer cancel()
		return p.gateway.VerifyPaid(vctx, token)
	})
	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return false, ctx.Err()
	}
	if res.Err != nil {
		return false, res.Err
	}
	v := res.Val.(Verification)
	shared := res.Shared

	if v.UserID != userID {
		return false, ErrSessionMismatch
	}
	if !v.Paid {
		return false, nil
	}

	if err := p.access.GrantAccess(ctx, userID, v.Reference); err != nil {
		return false, fmt.Errorf("grant access: %w", err)
	}
	p.logger.Info("access granted",
		slog.String("user", userID),
		slog.String("reference", v.Reference),
		slog.Bool("shared", shared),
	)
	return true, nil
}
