package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"campuslink_server/models"
	"campuslink_server/services"
)

// ComplimentController handles anonymous compliments between students
type ComplimentController struct {
	Compliments *services.ComplimentService
	Users       *services.UserService
}

// NewComplimentController creates a new ComplimentController instance
func NewComplimentController(compliments *services.ComplimentService, users *services.UserService) *ComplimentController {
	return &ComplimentController{Compliments: compliments, Users: users}
}

// HandleGetCompliments lists the user's received compliments, newest first
func (cc *ComplimentController) HandleGetCompliments(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromRequest(r)

	compliments, err := cc.Compliments.GetComplimentsForUser(r.Context(), identity.UserID)
	if err != nil {
		log.Printf("failed to fetch compliments for user %d: %v", identity.UserID, err)
		http.Error(w, "Failed to get compliments", http.StatusInternalServerError)
		return
	}
	if compliments == nil {
		compliments = []models.ComplimentWithSender{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(compliments)
}

// HandleGetComplimentUsers returns the students the user can compliment
func (cc *ComplimentController) HandleGetComplimentUsers(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromRequest(r)

	user, err := cc.Users.GetUserByID(r.Context(), identity.UserID)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	candidates, err := cc.Compliments.GetUsersForCompliments(r.Context(), user.College, identity.UserID)
	if err != nil {
		log.Printf("failed to fetch compliment targets for user %d: %v", identity.UserID, err)
		http.Error(w, "Failed to get users", http.StatusInternalServerError)
		return
	}
	if candidates == nil {
		candidates = []models.User{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(candidates)
}

// HandleCreateCompliment sends a compliment to another student
func (cc *ComplimentController) HandleCreateCompliment(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromRequest(r)

	var request struct {
		ToUserID   int    `json:"toUserId"`
		Message    string `json:"message"`
		IsRevealed bool   `json:"isRevealed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.ToUserID <= 0 || request.Message == "" {
		http.Error(w, "toUserId and message are required", http.StatusBadRequest)
		return
	}
	if request.ToUserID == identity.UserID {
		http.Error(w, "Cannot compliment yourself", http.StatusBadRequest)
		return
	}

	compliment, err := cc.Compliments.CreateCompliment(r.Context(), identity.UserID, request.ToUserID, request.Message, request.IsRevealed)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "Recipient not found", http.StatusNotFound)
			return
		}
		log.Printf("failed to create compliment from user %d: %v", identity.UserID, err)
		http.Error(w, "Failed to create compliment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(compliment)
}
