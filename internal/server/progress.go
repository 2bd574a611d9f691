package server

import (
	"bytes"
	"net/http"

	"github.com/abhisek/permitpal/internal/document"
	"github.com/abhisek/permitpal/internal/progress"
)

type progressResponse struct {
	Overall     progress.OverallSummary `json:"overall"`
	OverallText string                  `json:"overallText"`
	Days        []dayView               `json:"days"`
}

type dayView struct {
	progress.DailySummary
	Text string `json:"text"`
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	records, err := s.attempts(r, user.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	overall := progress.SummarizeOverall(records)
	days := progress.SummarizeByDay(records)
	views := make([]dayView, len(days))
	for i, d := range days {
		views[i] = dayView{DailySummary: d, Text: progress.FormatDay(d)}
	}
	writeJSON(w, http.StatusOK, progressResponse{
		Overall:     overall,
		OverallText: progress.FormatAccuracy(overall),
		Days:        views,
	})
}

func (s *Server) handleProgressExport(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	records, err := s.attempts(r, user.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := document.WriteProgressXLSX(&buf, progress.SummarizeByDay(records), progress.SummarizeOverall(records)); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="progress.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) attempts(r *http.Request, userID string) ([]progress.AttemptRecord, error) {
	ctx, cancel := s.callContext(r)
	defer cancel()
	return s.Attempts.QueryAttempts(ctx, userID)
}
