package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/abhisek/permitpal/internal/llm"
	"github.com/abhisek/permitpal/internal/sessions"
)

var errEmptyMessage = errors.New("message must not be empty")

type chatRequest struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message"`
}

type chatResponse struct {
	ConversationID string        `json:"conversationId"`
	Reply          string        `json:"reply"`
	Turns          []llm.Message `json:"turns"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())

	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conv, reply, err := s.converse(r.Context(), user.ID, req.ConversationID, req.Message)
	if err != nil {
		if errors.Is(err, errEmptyMessage) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{ConversationID: conv.ID, Reply: reply, Turns: conv.Turns})
}

func (s *Server) handleGetChat(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	conv, err := s.ownConversation(r.Context(), user.ID, mux.Vars(r)["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

func (s *Server) handleClearChat(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	id := mux.Vars(r)["id"]
	if _, err := s.ownConversation(r.Context(), user.ID, id); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.Sessions.DeleteConversation(r.Context(), id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// converse appends message to the conversation (a new one when id is
// empty), asks the tutor and stores both turns. Nothing is stored when the
// tutor fails.
func (s *Server) converse(ctx context.Context, userID, id, message string) (*sessions.Conversation, string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, "", errEmptyMessage
	}

	var conv *sessions.Conversation
	if id == "" {
		conv = &sessions.Conversation{ID: sessions.NewID(), UserID: userID}
	} else {
		var err error
		if conv, err = s.ownConversation(ctx, userID, id); err != nil {
			return nil, "", err
		}
	}

	turns := append(conv.Turns, llm.Message{Role: llm.RoleUser, Content: message})
	reply, err := s.Tutor.Reply(ctx, turns)
	if err != nil {
		return nil, "", err
	}

	conv.Turns = append(turns, llm.Message{Role: llm.RoleAssistant, Content: reply})
	conv.UpdatedAt = s.Now().UTC()
	if err := s.Sessions.SaveConversation(ctx, conv); err != nil {
		return nil, "", err
	}
	return conv, reply, nil
}

// ownConversation loads a conversation, hiding other users' conversations
// behind ErrNotFound.
func (s *Server) ownConversation(ctx context.Context, userID, id string) (*sessions.Conversation, error) {
	conv, err := s.Sessions.Conversation(ctx, id)
	if err != nil {
		return nil, err
	}
	if conv.UserID != userID {
		return nil, sessions.ErrNotFound
	}
	return conv, nil
}
