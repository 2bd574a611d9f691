package server

import (
	"net/http"
	"strings"
)

type accessResponse struct {
	Paid bool `json:"paid"`
}

type checkoutResponse struct {
	URL string `json:"url"`
}

func (s *Server) handleAccess(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	ctx, cancel := s.callContext(r)
	defer cancel()

	paid, err := s.Paywall.HasAccess(ctx, user.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accessResponse{Paid: paid})
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	ctx, cancel := s.callContext(r)
	defer cancel()

	paid, err := s.Paywall.HasAccess(ctx, user.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if paid {
		writeError(w, http.StatusConflict, "lifetime access already granted")
		return
	}

	url, err := s.Paywall.Checkout(ctx, user.ID, user.Email)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, checkoutResponse{URL: url})
}

// handleConfirm is called after the checkout redirect with the session id
// the gateway appended.
func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	token := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if token == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	ctx, cancel := s.callContext(r)
	defer cancel()

	paid, err := s.Paywall.Confirm(ctx, user.ID, token)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accessResponse{Paid: paid})
}
