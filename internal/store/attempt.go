package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jmoiron/sqlx"

	"github.com/abhisek/permitpal/internal/progress"
)

type attemptRepo struct {
	db  *sqlx.DB
	now func() time.Time
}

type attemptRow struct {
	UserID    string `db:"user_id"`
	Topic     string `db:"topic"`
	Correct   int    `db:"correct"`
	Attempted int    `db:"attempted"`
	Date      string `db:"attempt_date"`
}

func (r *attemptRepo) InsertAttempt(ctx context.Context, rec progress.AttemptRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx, r.db.Rebind(
		`INSERT INTO attempts (user_id, topic, correct, attempted, attempt_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`),
		rec.UserID, rec.Topic, rec.Correct, rec.Attempted, rec.Date.String(), r.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) QueryAttempts(ctx context.Context, userID string) ([]progress.AttemptRecord, error) {
	var rows []attemptRow
	err := r.db.SelectContext(ctx, &rows, r.db.Rebind(
		`SELECT user_id, topic, correct, attempted, attempt_date
		 FROM attempts WHERE user_id = ? ORDER BY id`), userID)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}

	out := make([]progress.AttemptRecord, 0, len(rows))
	for _, row := range rows {
		d, err := civil.ParseDate(row.Date)
		if err != nil {
			return nil, fmt.Errorf("attempt date %q: %w", row.Date, err)
		}
		out = append(out, progress.AttemptRecord{
			UserID:    row.UserID,
			Topic:     row.Topic,
			Correct:   row.Correct,
			Attempted: row.Attempted,
			Date:      d,
		})
	}
	return out, nil
}
