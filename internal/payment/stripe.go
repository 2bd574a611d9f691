package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeConfig configures the Stripe gateway.
type StripeConfig struct {
	SecretKey  string
	PriceID    string
	SuccessURL string // {CHECKOUT_SESSION_ID} is appended as session_id
	CancelURL  string

	// BackendURL overrides the API endpoint; empty uses Stripe's.
	BackendURL string

	// MaxNetworkRetries bounds Stripe's own retry of failed calls.
	MaxNetworkRetries int64
}

// StripeGateway sells access through Stripe Checkout in payment mode with
// a single price.
type StripeGateway struct {
	api *client.API
	cfg StripeConfig
}

// NewStripeGateway returns ErrNotConfigured when the key or price is
// missing.
func NewStripeGateway(cfg StripeConfig) (*StripeGateway, error) {
	if cfg.SecretKey == "" || cfg.PriceID == "" {
		return nil, ErrNotConfigured
	}

	backendCfg := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(cfg.MaxNetworkRetries),
	}
	if cfg.BackendURL != "" {
		backendCfg.URL = stripe.String(cfg.BackendURL)
	}

	api := &client.API{}
	api.Init(cfg.SecretKey, &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendCfg),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendCfg),
	})
	return &StripeGateway{api: api, cfg: cfg}, nil
}

func (g *StripeGateway) CreateCheckout(ctx context.Context, userID, email string) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(g.cfg.PriceID),
			Quantity: stripe.Int64(1),
		}},
		SuccessURL:        stripe.String(g.cfg.SuccessURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(g.cfg.CancelURL),
		ClientReferenceID: stripe.String(userID),
	}
	if email != "" {
		params.CustomerEmail = stripe.String(email)
	}
	params.Context = ctx

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.URL, nil
}

func (g *StripeGateway) VerifyPaid(ctx context.Context, token string) (Verification, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := g.api.CheckoutSessions.Get(token, params)
	if err != nil {
		var serr *stripe.Error
		if errors.As(err, &serr) && serr.HTTPStatusCode == http.StatusNotFound {
			return Verification{}, ErrUnknownSession
		}
		return Verification{}, fmt.Errorf("get checkout session: %w", err)
	}

	v := Verification{
		SessionID: sess.ID,
		UserID:    sess.ClientReferenceID,
		Paid:      sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		Reference: sess.ID,
	}
	if sess.PaymentIntent != nil && sess.PaymentIntent.ID != "" {
		v.Reference = sess.PaymentIntent.ID
	}
	return v, nil
}
