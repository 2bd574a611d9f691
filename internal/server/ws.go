package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type wsInbound struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type wsOutbound struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type wsText struct {
	Text string `json:"text"`
}

type wsReady struct {
	ConversationID string `json:"conversationId"`
}

type wsError struct {
	Message string `json:"message"`
}

// handleChatWS runs a tutoring conversation over a websocket. Clients send
// {"type":"message","payload":{"text":...}} or {"type":"clear"}; every
// reply arrives as {"type":"reply","payload":{"text":...}}.
func (s *Server) handleChatWS(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFrom(r.Context())
	id := r.URL.Query().Get("conversationId")
	if id != "" {
		if _, err := s.ownConversation(r.Context(), user.ID, id); err != nil {
			s.fail(w, r, err)
			return
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Logger.Warn("ws upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	out := newWSSender(conn.WriteJSON, func(err error) {
		s.Logger.Debug("ws write failed", slog.Any("error", err))
		conn.Close()
	})
	defer out.close()

	if !out.push(wsOutbound{Type: "ready", Payload: wsReady{ConversationID: id}}) {
		return
	}

	for {
		var in wsInbound
		if err := conn.ReadJSON(&in); err != nil {
			return
		}

		var msgs []wsOutbound
		switch in.Type {
		case "message":
			var p wsText
			if err := json.Unmarshal(in.Payload, &p); err != nil {
				msgs = append(msgs, wsOutbound{Type: "error", Payload: wsError{Message: "invalid message payload"}})
				break
			}
			conv, reply, err := s.converse(r.Context(), user.ID, id, p.Text)
			if err != nil {
				msgs = append(msgs, wsOutbound{Type: "error", Payload: wsError{Message: err.Error()}})
				break
			}
			if id == "" {
				id = conv.ID
				msgs = append(msgs, wsOutbound{Type: "ready", Payload: wsReady{ConversationID: id}})
			}
			msgs = append(msgs, wsOutbound{Type: "reply", Payload: wsText{Text: reply}})
		case "clear":
			if id != "" {
				if err := s.Sessions.DeleteConversation(r.Context(), id); err != nil {
					msgs = append(msgs, wsOutbound{Type: "error", Payload: wsError{Message: err.Error()}})
					break
				}
			}
			id = ""
			msgs = append(msgs, wsOutbound{Type: "cleared"})
		default:
			msgs = append(msgs, wsOutbound{Type: "error", Payload: wsError{Message: "unsupported message type"}})
		}

		for _, m := range msgs {
			if !out.push(m) {
				return
			}
		}
	}
}

// wsSender owns the only goroutine that writes to a websocket connection.
type wsSender struct {
	send chan wsOutbound
	done chan struct{}
}

// newWSSender starts the writer. After the first failed write it calls
// onFail and stops; later pushes report false instead of blocking.
func newWSSender(write func(v any) error, onFail func(error)) *wsSender {
	ws := &wsSender{send: make(chan wsOutbound, 16), done: make(chan struct{})}
	go func() {
		defer close(ws.done)
		for msg := range ws.send {
			if err := write(msg); err != nil {
				onFail(err)
				return
			}
		}
	}()
	return ws
}

func (ws *wsSender) push(msg wsOutbound) bool {
	select {
	case <-ws.done:
		return false
	default:
	}
	select {
	case ws.send <- msg:
		return true
	case <-ws.done:
		return false
	}
}

// close flushes queued messages and waits for the writer to exit.
func (ws *wsSender) close() {
	close(ws.send)
	<-ws.done
}
