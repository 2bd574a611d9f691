package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type accessRepo struct {
	db  *sqlx.DB
	now func() time.Time
}

func (r *accessRepo) HasPaidAccess(ctx context.Context, userID string) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(
		`SELECT COUNT(*) FROM paid_access WHERE user_id = ?`), userID)
	if err != nil {
		return false, fmt.Errorf("check access: %w", err)
	}
	return n > 0, nil
}

func (r *accessRepo) GrantAccess(ctx context.Context, userID, paymentRef string) error {
	if userID == "" {
		return fmt.Errorf("grant access: empty user id")
	}
	_, err := r.db.ExecContext(ctx, r.db.Rebind(
		`INSERT INTO paid_access (user_id, payment_ref, granted_at) VALUES (?, ?, ?)
		 ON CONFLICT (user_id) DO NOTHING`),
		userID, paymentRef, r.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("grant access: %w", err)
	}
	return nil
}
