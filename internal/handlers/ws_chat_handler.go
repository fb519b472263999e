package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Dias221467/tagwish/internal/hub"
	"github.com/Dias221467/tagwish/internal/services"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// WSMessage is what a client sends over the chat socket.
type WSMessage struct {
	Text string `json:"text"`
}

// wsError is pushed back to the sender when a message is rejected.
type wsError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

type ChatHandler struct {
	Service *services.ChatService
	Hub     *hub.Hub

	upgrader websocket.Upgrader
}

// NewChatHandler creates a chat handler that accepts websocket upgrades from the given
// origins. "*" allows any origin.
func NewChatHandler(service *services.ChatService, h *hub.Hub, allowedOrigins []string) *ChatHandler {
	return &ChatHandler{
		Service: service,
		Hub:     h,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// GetChatHistory returns the chat thread of a wish
func (h *ChatHandler) GetChatHistory(w http.ResponseWriter, r *http.Request) {
	messages, err := h.Service.GetChat(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

// SendMessageHandler appends a message from the current user
func (h *ChatHandler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	var req WSMessage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	msg, err := h.Service.SendMessage(r.Context(), mux.Vars(r)["id"], req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// ======== WebSocket Chat ========

// ChatWebSocketHandler streams the events of one wish and accepts chat messages.
func (h *ChatHandler) ChatWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	wishID := mux.Vars(r)["id"]
	if _, err := h.Service.GetChat(r.Context(), wishID); err != nil {
		writeServiceError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).WithField("wishID", wishID).Warn("WebSocket upgrade failed")
		return
	}

	sub := h.Hub.Subscribe(wishID)
	replies := make(chan interface{}, 8)
	done := make(chan struct{})
	log := logrus.WithFields(logrus.Fields{"wishID": wishID, "subscriptionID": sub.ID})
	log.Info("WebSocket connected")

	go h.writePump(conn, sub, replies, done)

	defer func() {
		h.Hub.Unsubscribe(sub)
		close(done)
		conn.Close()
		log.Info("WebSocket disconnected")
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Warn("WebSocket read error")
			}
			return
		}

		// the stored message reaches this socket through the hub like any other subscriber
		if _, err := h.Service.SendMessage(r.Context(), wishID, msg.Text); err != nil {
			select {
			case replies <- wsError{Type: "error", Error: err.Error()}:
			default:
			}
		}
	}
}

// writePump is the only goroutine writing to conn.
func (h *ChatHandler) writePump(conn *websocket.Conn, sub *hub.Subscription, replies <-chan interface{}, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-sub.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case reply := <-replies:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(reply); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
