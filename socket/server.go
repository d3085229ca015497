package socket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"campuslink_server/models"

	"github.com/gorilla/websocket"
)

// Event types on the realtime channel
const (
	EventTypeChatMessage = "chat_message"
	EventTypeNewMessage  = "new_message"
)

// ChatEvent is the inbound frame: one JSON object per event.
type ChatEvent struct {
	Type    string `json:"type"`
	MatchID int    `json:"matchId"`
	Content string `json:"content"`
}

// DeliveryEvent is the outbound frame pushed to the recipient's connection.
type DeliveryEvent struct {
	Type    string                   `json:"type"`
	Message models.MessageWithSender `json:"message"`
}

// SessionResolver validates the session token presented at connection time.
type SessionResolver interface {
	Resolve(token string) (models.SessionIdentity, bool)
}

// MessageStore persists inbound chat messages.
type MessageStore interface {
	CreateMessage(ctx context.Context, matchID, senderID int, content string) (models.Message, error)
}

// MatchStore resolves match records for routing.
type MatchStore interface {
	GetMatchByID(ctx context.Context, matchID int) (models.Match, error)
}

// UserStore looks up sender profiles attached to deliveries.
type UserStore interface {
	GetUserByID(ctx context.Context, userID int) (models.User, error)
}

// Server terminates the realtime channel endpoint: it validates the session
// token, registers the connection and routes chat events to the recipient.
// Handler errors never close the channel; only transport errors do.
type Server struct {
	Registry *Registry
	Sessions SessionResolver
	Chat     MessageStore
	Matches  MatchStore
	Users    UserStore

	upgrader websocket.Upgrader
}

// NewServer wires the realtime router against its collaborators
func NewServer(registry *Registry, sessions SessionResolver, chat MessageStore, matches MatchStore, users UserStore) *Server {
	return &Server{
		Registry: registry,
		Sessions: sessions,
		Chat:     chat,
		Matches:  matches,
		Users:    users,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// HandleConnection upgrades the request and runs the connection's lifecycle.
// The session token arrives as the sessionId query parameter; an invalid
// token closes the channel with a policy-violation close code and no
// registration side effect.
func (s *Server) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	token := r.URL.Query().Get("sessionId")
	identity, ok := s.Sessions.Resolve(token)
	if !ok {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "Unauthorized"),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}

	client := newClient(s, conn, identity.UserID)
	s.Registry.Register(identity.UserID, client)
	log.Printf("user %d connected, %d users online", identity.UserID, s.Registry.Count())

	go client.writePump()
	client.readPump()

	log.Printf("user %d disconnected, %d users online", identity.UserID, s.Registry.Count())
}

// handleInbound processes one frame from an open connection. Malformed or
// failing events are logged and dropped; the connection stays open.
func (s *Server) handleInbound(c *Client, raw []byte) {
	var event ChatEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		log.Printf("dropping malformed frame from user %d: %v", c.UserID, err)
		return
	}
	if event.Type != EventTypeChatMessage {
		log.Printf("dropping frame with unknown type %q from user %d", event.Type, c.UserID)
		return
	}
	if event.MatchID == 0 || event.Content == "" {
		log.Printf("dropping chat_message with missing matchId or content from user %d", c.UserID)
		return
	}

	ctx := context.Background()

	match, err := s.Matches.GetMatchByID(ctx, event.MatchID)
	if err != nil {
		log.Printf("dropping chat_message from user %d: %v", c.UserID, err)
		return
	}
	otherUserID, ok := match.OtherUserID(c.UserID)
	if !ok {
		log.Printf("dropping chat_message from user %d: not a participant of match %d", c.UserID, event.MatchID)
		return
	}

	// Persist first: the message must survive even when delivery cannot
	// happen. Sender identity comes from the channel, never the payload.
	message, err := s.Chat.CreateMessage(ctx, event.MatchID, c.UserID, event.Content)
	if err != nil {
		log.Printf("failed to persist message from user %d in match %d: %v", c.UserID, event.MatchID, err)
		return
	}

	peer, ok := s.Registry.Lookup(otherUserID)
	if !ok {
		// Peer offline; the message is durable and shows up on their next fetch.
		return
	}

	sender, err := s.Users.GetUserByID(ctx, c.UserID)
	if err != nil {
		log.Printf("skipping delivery for message %d, missing sender profile: %v", message.ID, err)
		return
	}

	payload, err := json.Marshal(DeliveryEvent{
		Type:    EventTypeNewMessage,
		Message: models.MessageWithSender{Message: message, Sender: sender},
	})
	if err != nil {
		log.Printf("failed to marshal delivery for message %d: %v", message.ID, err)
		return
	}

	if !peer.Deliver(payload) {
		log.Printf("dropping delivery of message %d, connection of user %d is saturated", message.ID, otherUserID)
	}
}
