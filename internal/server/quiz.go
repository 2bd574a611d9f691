package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/gorilla/mux"

	"github.com/abhisek/permitpal/internal/parser"
	"github.com/abhisek/permitpal/internal/progress"
	"github.com/abhisek/permitpal/internal/sessions"
	"github.com/abhisek/permitpal/internal/tutor"
)

type quizRequest struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// quizItem is a question as shown before submission, without its answer.
type quizItem struct {
	Number  int                     `json:"number"`
	Text    string                  `json:"text"`
	Options map[parser.Label]string `json:"options"`
}

type quizResponse struct {
	QuizID    string     `json:"quizId"`
	Topic     string     `json:"topic"`
	Questions []quizItem `json:"questions"`
}

type submitRequest struct {
	Answers []string `json:"answers"`
}

type questionResult struct {
	Number  int          `json:"number"`
	Chosen  parser.Label `json:"chosen"`
	Answer  parser.Label `json:"answer"`
	Correct bool         `json:"correct"`
}

type submitResponse struct {
	Topic     string           `json:"topic"`
	Correct   int              `json:"correct"`
	Attempted int              `json:"attempted"`
	Accuracy  float64          `json:"accuracy"`
	Date      civil.Date       `json:"date"`
	Results   []questionResult `json:"results"`
}

func (s *Server) handleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())

	var req quizRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	quiz, err := s.Tutor.GenerateQuiz(r.Context(), req.Topic, req.Count)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	open := &sessions.OpenQuiz{
		ID:        sessions.NewID(),
		UserID:    user.ID,
		Topic:     quiz.Topic,
		Questions: quiz.Questions,
		CreatedAt: s.Now().UTC(),
	}
	if err := s.Sessions.SaveQuiz(r.Context(), open); err != nil {
		s.fail(w, r, err)
		return
	}

	items := make([]quizItem, len(quiz.Questions))
	for i, q := range quiz.Questions {
		items[i] = quizItem{Number: i + 1, Text: q.Text, Options: q.Options}
	}
	writeJSON(w, http.StatusCreated, quizResponse{QuizID: open.ID, Topic: open.Topic, Questions: items})
}

// handleSubmitQuiz grades an open quiz, records the attempt and closes the
// quiz so it cannot be submitted twice.
func (s *Server) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	id := mux.Vars(r)["id"]

	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	answers := make([]parser.Label, len(req.Answers))
	for i, a := range req.Answers {
		answers[i] = parser.Label(strings.ToUpper(strings.TrimSpace(a)))
	}

	// An invalid submission leaves the quiz open for another try.
	quiz, err := s.Sessions.Quiz(r.Context(), id)
	if err == nil && quiz.UserID != user.ID {
		err = sessions.ErrNotFound
	}
	if err == nil {
		_, err = tutor.Grade(quiz.Questions, answers)
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	// Only the request that takes the quiz records an attempt.
	quiz, err = s.Sessions.TakeQuiz(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	result, err := tutor.Grade(quiz.Questions, answers)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	rec := progress.AttemptRecord{
		UserID:    user.ID,
		Topic:     quiz.Topic,
		Correct:   result.Correct,
		Attempted: result.Attempted,
		Date:      civil.DateOf(s.Now()),
	}
	if err := s.recordAttempt(r.Context(), rec); err != nil {
		if rerr := s.Sessions.SaveQuiz(context.WithoutCancel(r.Context()), quiz); rerr != nil {
			s.Logger.Warn("failed to reopen quiz", slog.String("quiz", id), slog.Any("error", rerr))
		}
		s.fail(w, r, err)
		return
	}

	results := make([]questionResult, len(answers))
	for i := range answers {
		results[i] = questionResult{Number: i + 1, Chosen: answers[i], Answer: result.Key[i], Correct: result.Marks[i]}
	}
	day := progress.SummarizeByDay([]progress.AttemptRecord{rec})[0]
	writeJSON(w, http.StatusOK, submitResponse{
		Topic:     rec.Topic,
		Correct:   rec.Correct,
		Attempted: rec.Attempted,
		Accuracy:  day.Accuracy,
		Date:      rec.Date,
		Results:   results,
	})
}

func (s *Server) recordAttempt(ctx context.Context, rec progress.AttemptRecord) error {
	ctx, cancel := context.WithTimeout(ctx, s.CallTimeout)
	defer cancel()
	return s.Attempts.InsertAttempt(ctx, rec)
}
