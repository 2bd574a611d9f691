package server

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abhisek/permitpal/internal/document"
	"github.com/abhisek/permitpal/internal/parser"
	"github.com/abhisek/permitpal/internal/progress"
	"github.com/abhisek/permitpal/internal/studyplan"
	"github.com/abhisek/permitpal/internal/tutor"
)

type flashcardsRequest struct {
	Topic string `json:"topic"`
}

type flashcardsResponse struct {
	Topic string             `json:"topic"`
	Cards []parser.Flashcard `json:"cards"`
}

type flashcardsPDFRequest struct {
	Title string             `json:"title"`
	Cards []parser.Flashcard `json:"cards"`
}

type planResponse struct {
	studyplan.Plan
	Text     string `json:"text"`
	Fallback bool   `json:"fallback,omitempty"`
}

func (s *Server) handleFlashcards(w http.ResponseWriter, r *http.Request) {
	var req flashcardsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cards, err := s.Tutor.GenerateFlashcards(r.Context(), req.Topic)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	topic, _ := tutor.NormalizeTopic(req.Topic)
	writeJSON(w, http.StatusOK, flashcardsResponse{Topic: topic, Cards: cards})
}

func (s *Server) handleFlashcardsPDF(w http.ResponseWriter, r *http.Request) {
	var req flashcardsPDFRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Cards) == 0 {
		writeError(w, http.StatusBadRequest, "no flashcards to export")
		return
	}
	title := req.Title
	if title == "" {
		title = "Flashcards"
	}
	s.writePDF(w, r, "flashcards.pdf", title, document.FlashcardsText(req.Cards))
}

func (s *Server) handleStudyPlan(w http.ResponseWriter, _ *http.Request) {
	plan := studyplan.DefaultPlan()
	writeJSON(w, http.StatusOK, planResponse{Plan: plan, Text: plan.Text()})
}

func (s *Server) handleStudyPlanPDF(w http.ResponseWriter, r *http.Request) {
	plan := studyplan.DefaultPlan()
	s.writePDF(w, r, "study_plan.pdf", plan.Title, plan.Text())
}

// handlePersonalize builds a plan from the caller's history. When the
// model fails the default plan is returned with fallback set.
func (s *Server) handlePersonalize(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())

	records, err := s.attempts(r, user.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	plan, err := s.Planner.Personalize(r.Context(), progress.SummarizeOverall(records), progress.SummarizeByDay(records))
	if err != nil {
		s.Logger.Warn("study plan personalization failed, using default", slog.String("user", user.ID), slog.Any("error", err))
		plan = studyplan.DefaultPlan()
		writeJSON(w, http.StatusOK, planResponse{Plan: plan, Text: plan.Text(), Fallback: true})
		return
	}
	writeJSON(w, http.StatusOK, planResponse{Plan: plan, Text: plan.Text()})
}

func (s *Server) writePDF(w http.ResponseWriter, r *http.Request, filename, title, text string) {
	var buf bytes.Buffer
	if err := document.RenderPDF(&buf, title, text); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
