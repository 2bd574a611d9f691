// Package server exposes the tutor over a JSON HTTP API and a websocket
// chat endpoint.
package server

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/abhisek/permitpal/internal/payment"
	"github.com/abhisek/permitpal/internal/sessions"
	"github.com/abhisek/permitpal/internal/store"
	"github.com/abhisek/permitpal/internal/studyplan"
	"github.com/abhisek/permitpal/internal/tutor"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Deps are the collaborators the handlers call.
type Deps struct {
	Tutor    *tutor.Service
	Planner  *studyplan.Planner
	Sessions sessions.Store
	Attempts store.AttemptRepo
	Paywall  *payment.Paywall
	Auth     *Authenticator
	Logger   *slog.Logger

	// Health checks run by /healthz, by name.
	Health map[string]HealthCheck

	// CallTimeout bounds store and payment calls made by one handler.
	CallTimeout time.Duration

	// Now returns the current time; attempts are dated by it.
	Now func() time.Time
}

// Server routes requests to handlers.
type Server struct {
	Deps
	router *mux.Router
}

// New builds the router.
func New(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.CallTimeout <= 0 {
		deps.CallTimeout = 15 * time.Second
	}

	s := &Server{Deps: deps, router: mux.NewRouter()}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := s.router
	r.Use(s.logRequests)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/topics", s.handleTopics).Methods(http.MethodGet)

	auth := api.PathPrefix("").Subrouter()
	auth.Use(s.Auth.Middleware)

	auth.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)
	auth.HandleFunc("/chat/{id}", s.handleGetChat).Methods(http.MethodGet)
	auth.HandleFunc("/chat/{id}", s.handleClearChat).Methods(http.MethodDelete)

	auth.HandleFunc("/flashcards/pdf", s.handleFlashcardsPDF).Methods(http.MethodPost)
	auth.HandleFunc("/studyplan", s.handleStudyPlan).Methods(http.MethodGet)
	auth.HandleFunc("/studyplan/pdf", s.handleStudyPlanPDF).Methods(http.MethodGet)
	auth.HandleFunc("/studyplan/personalize", s.handlePersonalize).Methods(http.MethodPost)
	auth.HandleFunc("/progress", s.handleProgress).Methods(http.MethodGet)
	auth.HandleFunc("/progress/export.xlsx", s.handleProgressExport).Methods(http.MethodGet)
	auth.HandleFunc("/access", s.handleAccess).Methods(http.MethodGet)
	auth.HandleFunc("/checkout", s.handleCheckout).Methods(http.MethodPost)
	auth.HandleFunc("/checkout/confirm", s.handleConfirm).Methods(http.MethodGet)

	paid := auth.PathPrefix("").Subrouter()
	paid.Use(s.requirePaid)
	paid.HandleFunc("/quiz", s.handleCreateQuiz).Methods(http.MethodPost)
	paid.HandleFunc("/quiz/{id}/submit", s.handleSubmitQuiz).Methods(http.MethodPost)
	paid.HandleFunc("/flashcards", s.handleFlashcards).Methods(http.MethodPost)

	ws := r.PathPrefix("/ws").Subrouter()
	ws.Use(s.Auth.Middleware)
	ws.HandleFunc("/chat", s.handleChatWS).Methods(http.MethodGet)
}

// fail writes err as a JSON error. Server-side failures are logged and
// reported without detail.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			slog.Any("error", err),
		)
	}
	if status == http.StatusInternalServerError {
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}

// callContext bounds a store or payment call made on behalf of r.
func (s *Server) callContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.CallTimeout)
}

func (s *Server) requirePaid(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFrom(r.Context())
		ctx, cancel := s.callContext(r)
		ok, err := s.Paywall.HasAccess(ctx, user.ID)
		cancel()
		if err != nil {
			s.fail(w, r, err)
			return
		}
		if !ok {
			writeError(w, http.StatusPaymentRequired, "lifetime access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.Logger.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

// statusRecorder captures the response status. It passes Hijack through
// so websocket upgrades still work behind the logger.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.callContext(r)
	defer cancel()

	failed := map[string]string{}
	for name, check := range s.Health {
		if err := check(ctx); err != nil {
			failed[name] = err.Error()
		}
	}
	if len(failed) > 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "degraded", "failed": failed})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTopics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"topics":           tutor.Topics,
		"minQuestions":     tutor.MinQuestions,
		"maxQuestions":     tutor.MaxQuestions,
		"defaultQuestions": tutor.DefaultQuestions,
	})
}
