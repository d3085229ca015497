package socket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"campuslink_server/models"

	"github.com/gorilla/websocket"
)

type fakeSessions map[string]models.SessionIdentity

func (f fakeSessions) Resolve(token string) (models.SessionIdentity, bool) {
	identity, ok := f[token]
	return identity, ok
}

type fakeMessageStore struct {
	mu       sync.Mutex
	messages []models.Message
}

func (f *fakeMessageStore) CreateMessage(ctx context.Context, matchID, senderID int, content string) (models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	message := models.Message{
		MatchID:   matchID,
		ID:        len(f.messages) + 1,
		SenderID:  senderID,
		Content:   content,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	f.messages = append(f.messages, message)
	return message, nil
}

func (f *fakeMessageStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

type fakeMatchStore map[int]models.Match

func (f fakeMatchStore) GetMatchByID(ctx context.Context, matchID int) (models.Match, error) {
	match, ok := f[matchID]
	if !ok {
		return models.Match{}, fmt.Errorf("match %d not found", matchID)
	}
	return match, nil
}

type fakeUserStore map[int]models.User

func (f fakeUserStore) GetUserByID(ctx context.Context, userID int) (models.User, error) {
	user, ok := f[userID]
	if !ok {
		return models.User{}, fmt.Errorf("user %d not found", userID)
	}
	return user, nil
}

// chatFixture is a running websocket endpoint over fake collaborators, with a
// match between users 1 and 2.
type chatFixture struct {
	server   *Server
	messages *fakeMessageStore
	ts       *httptest.Server
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	sessions := fakeSessions{
		"alice-token":   {UserID: 1, Email: "alice@campus.edu"},
		"bob-token":     {UserID: 2, Email: "bob@campus.edu"},
		"charlie-token": {UserID: 3, Email: "charlie@campus.edu"},
	}
	messages := &fakeMessageStore{}
	matches := fakeMatchStore{
		10: {PairKey: "1#2", ID: 10, User1ID: 1, User2ID: 2},
	}
	users := fakeUserStore{
		1: {ID: 1, Name: "Alice"},
		2: {ID: 2, Name: "Bob"},
		3: {ID: 3, Name: "Charlie"},
	}

	server := NewServer(NewRegistry(), sessions, messages, matches, users)
	ts := httptest.NewServer(http.HandlerFunc(server.HandleConnection))
	t.Cleanup(ts.Close)

	return &chatFixture{server: server, messages: messages, ts: ts}
}

func (f *chatFixture) dial(t *testing.T, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.ts.URL, "http") + "/?sessionId=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial websocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendChat(t *testing.T, conn *websocket.Conn, matchID int, content string) {
	t.Helper()
	frame, _ := json.Marshal(ChatEvent{Type: EventTypeChatMessage, MatchID: matchID, Content: content})
	if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		t.Fatalf("failed to send frame: %v", err)
	}
}

func readDelivery(t *testing.T, conn *websocket.Conn) DeliveryEvent {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read delivery: %v", err)
	}
	var event DeliveryEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		t.Fatalf("failed to unmarshal delivery: %v", err)
	}
	return event
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestConnectionRejectsInvalidToken(t *testing.T) {
	f := newChatFixture(t)
	conn := f.dial(t, "bogus-token")

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	closeErr, ok := err.(*websocket.CloseError)
	if !ok {
		t.Fatalf("expected a close error, got %v", err)
	}
	if closeErr.Code != websocket.ClosePolicyViolation {
		t.Fatalf("expected close code %d, got %d", websocket.ClosePolicyViolation, closeErr.Code)
	}
	if f.server.Registry.Count() != 0 {
		t.Fatal("a rejected connection must not be registered")
	}
}

func TestChatMessageRoutedToPeer(t *testing.T) {
	f := newChatFixture(t)
	alice := f.dial(t, "alice-token")
	bob := f.dial(t, "bob-token")

	waitFor(t, "both users online", func() bool { return f.server.Registry.Count() == 2 })

	sendChat(t, alice, 10, "hey!")

	delivery := readDelivery(t, bob)
	if delivery.Type != EventTypeNewMessage {
		t.Fatalf("expected %q event, got %q", EventTypeNewMessage, delivery.Type)
	}
	if delivery.Message.Content != "hey!" || delivery.Message.SenderID != 1 {
		t.Fatalf("unexpected delivery %+v", delivery.Message)
	}
	if delivery.Message.Sender.Name != "Alice" {
		t.Fatalf("expected the sender profile attached, got %+v", delivery.Message.Sender)
	}
	if f.messages.count() != 1 {
		t.Fatalf("expected 1 persisted message, got %d", f.messages.count())
	}
}

func TestOfflinePeerStillPersists(t *testing.T) {
	f := newChatFixture(t)
	alice := f.dial(t, "alice-token")

	waitFor(t, "alice online", func() bool { return f.server.Registry.Count() == 1 })

	sendChat(t, alice, 10, "are you there?")

	waitFor(t, "message persisted", func() bool { return f.messages.count() == 1 })
}

func TestMalformedFramesKeepChannelOpen(t *testing.T) {
	f := newChatFixture(t)
	alice := f.dial(t, "alice-token")
	bob := f.dial(t, "bob-token")

	waitFor(t, "both users online", func() bool { return f.server.Registry.Count() == 2 })

	// None of these close the channel or persist anything.
	alice.WriteMessage(websocket.TextMessage, []byte("not json"))
	alice.WriteMessage(websocket.TextMessage, []byte(`{"type":"unknown_event"}`))
	alice.WriteMessage(websocket.TextMessage, []byte(`{"type":"chat_message","matchId":10}`))

	sendChat(t, alice, 10, "still here")

	delivery := readDelivery(t, bob)
	if delivery.Message.Content != "still here" {
		t.Fatalf("unexpected delivery %+v", delivery.Message)
	}
	if f.messages.count() != 1 {
		t.Fatalf("only the valid frame should persist, got %d messages", f.messages.count())
	}
}

func TestNonParticipantCannotSend(t *testing.T) {
	f := newChatFixture(t)
	charlie := f.dial(t, "charlie-token")
	bob := f.dial(t, "bob-token")

	waitFor(t, "both users online", func() bool { return f.server.Registry.Count() == 2 })

	// Charlie is not part of match 10; the frame is dropped before persisting.
	sendChat(t, charlie, 10, "let me in")

	// Prove ordering by sending a valid message afterwards and seeing only it.
	alice := f.dial(t, "alice-token")
	waitFor(t, "alice online", func() bool { return f.server.Registry.Count() == 3 })
	sendChat(t, alice, 10, "just us")

	delivery := readDelivery(t, bob)
	if delivery.Message.Content != "just us" || delivery.Message.SenderID != 1 {
		t.Fatalf("unexpected delivery %+v", delivery.Message)
	}
	if f.messages.count() != 1 {
		t.Fatalf("the non-participant frame must not persist, got %d messages", f.messages.count())
	}
}

func TestReconnectReplacesConnection(t *testing.T) {
	f := newChatFixture(t)
	stale := f.dial(t, "bob-token")
	_ = stale

	waitFor(t, "bob online", func() bool { return f.server.Registry.Count() == 1 })

	fresh := f.dial(t, "bob-token")
	alice := f.dial(t, "alice-token")

	waitFor(t, "both users online", func() bool { return f.server.Registry.Count() == 2 })

	sendChat(t, alice, 10, "new phone who dis")

	delivery := readDelivery(t, fresh)
	if delivery.Message.Content != "new phone who dis" {
		t.Fatalf("expected delivery on the fresh connection, got %+v", delivery.Message)
	}
}
