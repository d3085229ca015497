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

// SwipeController handles the discovery feed and swipe submissions
type SwipeController struct {
	Matches *services.MatchService
	Users   *services.UserService
}

// NewSwipeController creates a new SwipeController instance
func NewSwipeController(matches *services.MatchService, users *services.UserService) *SwipeController {
	return &SwipeController{Matches: matches, Users: users}
}

// HandlePotentialMatches returns swipe candidates for the authenticated user
func (sc *SwipeController) HandlePotentialMatches(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromRequest(r)

	candidates, err := sc.Users.GetPotentialMatches(r.Context(), identity.UserID)
	if err != nil {
		log.Printf("failed to fetch potential matches for user %d: %v", identity.UserID, err)
		http.Error(w, "Failed to get potential matches", http.StatusInternalServerError)
		return
	}
	if candidates == nil {
		candidates = []models.User{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(candidates)
}

// HandleSwipe records a swipe on the target user and reports whether it
// completed a match.
func (sc *SwipeController) HandleSwipe(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromRequest(r)

	targetUserID, err := strconv.Atoi(mux.Vars(r)["targetUserId"])
	if err != nil {
		http.Error(w, "Invalid target user id", http.StatusBadRequest)
		return
	}

	var request struct {
		IsRightSwipe bool `json:"isRightSwipe"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	match, err := sc.Matches.RecordSwipe(r.Context(), identity.UserID, targetUserID, request.IsRightSwipe)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			http.Error(w, "User not found", http.StatusNotFound)
		case errors.Is(err, services.ErrForbidden):
			http.Error(w, "Cannot swipe on yourself", http.StatusBadRequest)
		default:
			log.Printf("swipe by user %d on %d failed: %v", identity.UserID, targetUserID, err)
			http.Error(w, "Swipe failed", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if match != nil {
		json.NewEncoder(w).Encode(map[string]interface{}{"match": true, "matchId": match.ID})
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{"match": false})
}
