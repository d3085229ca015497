package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"campuslink_server/services"
)

// UserProfileController handles profile reads and updates
type UserProfileController struct {
	Users *services.UserService
}

// NewUserProfileController creates a new UserProfileController instance
func NewUserProfileController(users *services.UserService) *UserProfileController {
	return &UserProfileController{Users: users}
}

// HandleUpdateProfile applies a partial update to the user's profile. Absent
// fields are left untouched.
func (uc *UserProfileController) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromRequest(r)

	var updates services.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	user, err := uc.Users.UpdateProfile(r.Context(), identity.UserID, updates)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Printf("failed to update profile for user %d: %v", identity.UserID, err)
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}
