package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"campuslink_server/models"
	"campuslink_server/services"
)

// MatchController serves the authenticated user's match list
type MatchController struct {
	Matches *services.MatchService
}

// NewMatchController creates a new MatchController instance
func NewMatchController(matches *services.MatchService) *MatchController {
	return &MatchController{Matches: matches}
}

// HandleGetMatches lists the user's matches with the other participant attached
func (mc *MatchController) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromRequest(r)

	matches, err := mc.Matches.GetMatchesForUser(r.Context(), identity.UserID)
	if err != nil {
		log.Printf("failed to fetch matches for user %d: %v", identity.UserID, err)
		http.Error(w, "Failed to get matches", http.StatusInternalServerError)
		return
	}
	if matches == nil {
		matches = []models.MatchWithUser{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(matches)
}
