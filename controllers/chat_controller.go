package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"campuslink_server/models"
	"campuslink_server/services"

	"github.com/gorilla/mux"
)

// ChatController serves message history and the HTTP fallback send path
type ChatController struct {
	Chat    *services.ChatService
	Matches *services.MatchService
	Users   *services.UserService
}

// NewChatController creates a new ChatController instance
func NewChatController(chat *services.ChatService, matches *services.MatchService, users *services.UserService) *ChatController {
	return &ChatController{Chat: chat, Matches: matches, Users: users}
}

// HandleGetMessages returns a match's messages in creation order
func (cc *ChatController) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromRequest(r)

	match, ok := cc.requireParticipant(w, r, identity.UserID)
	if !ok {
		return
	}

	messages, err := cc.Chat.GetMessagesByMatchID(r.Context(), match.ID)
	if err != nil {
		log.Printf("failed to fetch messages for match %d: %v", match.ID, err)
		http.Error(w, "Failed to get messages", http.StatusInternalServerError)
		return
	}
	if messages == nil {
		messages = []models.MessageWithSender{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messages)
}

// HandleSendMessage persists a message over HTTP; used as the fallback when
// the realtime channel is unavailable.
func (cc *ChatController) HandleSendMessage(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromRequest(r)

	match, ok := cc.requireParticipant(w, r, identity.UserID)
	if !ok {
		return
	}

	var request struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Content == "" {
		http.Error(w, "content is required", http.StatusBadRequest)
		return
	}

	message, err := cc.Chat.CreateMessage(r.Context(), match.ID, identity.UserID, request.Content)
	if err != nil {
		log.Printf("failed to create message in match %d: %v", match.ID, err)
		http.Error(w, "Failed to create message", http.StatusInternalServerError)
		return
	}

	sender, err := cc.Users.GetUserByID(r.Context(), identity.UserID)
	if err != nil {
		log.Printf("failed to fetch sender %d: %v", identity.UserID, err)
		http.Error(w, "Failed to create message", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.MessageWithSender{Message: message, Sender: sender})
}

// requireParticipant resolves the matchId path variable and enforces that the
// caller is one of the match's two users.
func (cc *ChatController) requireParticipant(w http.ResponseWriter, r *http.Request, userID int) (models.Match, bool) {
	matchID, err := strconv.Atoi(mux.Vars(r)["matchId"])
	if err != nil {
		http.Error(w, "Invalid match id", http.StatusBadRequest)
		return models.Match{}, false
	}

	match, err := cc.Matches.GetMatchByID(r.Context(), matchID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "Match not found", http.StatusNotFound)
			return models.Match{}, false
		}
		log.Printf("failed to fetch match %d: %v", matchID, err)
		http.Error(w, "Failed to get match", http.StatusInternalServerError)
		return models.Match{}, false
	}

	if !match.HasParticipant(userID) {
		http.Error(w, "Not a participant of this match", http.StatusForbidden)
		return models.Match{}, false
	}
	return match, true
}
