package realtime

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/jobfinder/api/data"
	"github.com/jobfinder/api/metrics"
	"github.com/jobfinder/api/models"
)

const (
	sendBufferSize = 8
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 45 * time.Second
	maxMessageSize = 8 * 1024
)

// TokenVerifier authenticates the connection handshake. Implemented by the
// auth handler.
type TokenVerifier interface {
	VerifyToken(token string) (*data.User, error)
}

// MessageStore is the slice of the message repo the socket needs to relay
// inbound sendMessage frames.
type MessageStore interface {
	IsParticipant(conversationID int64, userID uuid.UUID) (bool, error)
	InsertMessage(m data.Message) (*data.Message, error)
	GetParticipants(conversationID int64) ([]data.User, error)
}

// Client is one user's live connection.
type Client struct {
	userID uuid.UUID
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{}
	once   sync.Once
}

func (c *Client) shutdown() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// Hub upgrades connections, keeps the registry current, and pushes events.
type Hub struct {
	registry *Registry
	verifier TokenVerifier
	messages MessageStore
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewHub(verifier TokenVerifier, messages MessageStore, logger *slog.Logger) *Hub {
	return &Hub{
		registry: NewRegistry(),
		verifier: verifier,
		messages: messages,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients send an Origin header; the API is CORS-open,
			// so the upgrade is too.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Hub) Registry() *Registry {
	return h.registry
}

// ServeWS is the /ws endpoint. Authentication happens before the upgrade:
// a missing or invalid token never reaches the registry.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	user, err := h.verifier.VerifyToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		userID: user.ID,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		done:   make(chan struct{}),
	}

	if prev := h.registry.Bind(user.ID, client); prev != nil {
		prev.shutdown()
	}
	metrics.WSConnectionsActive.Set(float64(h.registry.Count()))
	h.logger.Info("user connected", "userId", user.ID, "name", user.Name)

	go h.writePump(client)
	h.readPump(client)
}

func (h *Hub) readPump(c *Client) {
	defer func() {
		h.registry.Unbind(c.userID, c)
		c.shutdown()
		metrics.WSConnectionsActive.Set(float64(h.registry.Count()))
		h.logger.Info("user disconnected", "userId", c.userID)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var envelope Envelope
		if err := c.conn.ReadJSON(&envelope); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read failed", "userId", c.userID, "error", err)
			}
			return
		}

		switch envelope.Event {
		case EventSendMessage:
			var payload SendMessagePayload
			if err := json.Unmarshal(envelope.Data, &payload); err != nil {
				h.logger.Debug("malformed sendMessage payload", "userId", c.userID, "error", err)
				continue
			}
			h.relayMessage(c.userID, payload)
		default:
			h.logger.Debug("unknown socket event", "event", envelope.Event, "userId", c.userID)
		}
	}
}

func (h *Hub) writePump(c *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.shutdown()
	}()

	for {
		select {
		case frame := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// Push delivers an event to the user's connection if one is bound. Returns
// false on a registry miss or a full send buffer; either way the event is
// gone, which is the intended best-effort behavior.
func (h *Hub) Push(userID uuid.UUID, event string, payload any) bool {
	client, ok := h.registry.Lookup(userID)
	if !ok {
		return false
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("marshal socket payload", "event", event, "error", err)
		return false
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: raw})
	if err != nil {
		h.logger.Error("marshal socket envelope", "event", event, "error", err)
		return false
	}

	select {
	case client.send <- frame:
		return true
	case <-client.done:
		return false
	default:
		h.logger.Debug("send buffer full, dropping event", "userId", userID, "event", event)
		return false
	}
}

// relayMessage persists an inbound socket message and fans it out to every
// conversation participant, sender included.
func (h *Hub) relayMessage(senderID uuid.UUID, payload SendMessagePayload) {
	if payload.Content == "" {
		return
	}

	ok, err := h.messages.IsParticipant(payload.ConversationID, senderID)
	if err != nil {
		h.logger.Error("relay message: check participant", "error", err)
		return
	}
	if !ok {
		return
	}

	saved, err := h.messages.InsertMessage(data.Message{
		ConversationID: payload.ConversationID,
		SenderID:       senderID,
		Content:        payload.Content,
	})
	if err != nil {
		h.logger.Error("relay message: insert", "error", err)
		return
	}

	participants, err := h.messages.GetParticipants(payload.ConversationID)
	if err != nil {
		h.logger.Error("relay message: get participants", "error", err)
		return
	}

	event := NewMessageEvent{Message: models.FromDataMessage(*saved)}
	for _, p := range participants {
		if h.Push(p.ID, EventNewMessage, event) {
			metrics.MessagesRelayedTotal.Inc()
		}
	}
}
