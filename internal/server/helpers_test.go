package server

import (
	"cloud.google.com/go/civil"

	"github.com/abhisek/permitpal/internal/progress"
)

func progressRecord(user string) progress.AttemptRecord {
	return progress.AttemptRecord{
		UserID:    user,
		Topic:     "Alcohol Laws",
		Correct:   2,
		Attempted: 5,
		Date:      civil.Date{Year: 2024, Month: 4, Day: 30},
	}
}
