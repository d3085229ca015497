package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"campuslink_server/models"
	"campuslink_server/services"

	"golang.org/x/crypto/bcrypt"
)

// AuthController handles registration, login and session lifecycle
type AuthController struct {
	Users    *services.UserService
	Sessions *services.SessionService
}

// NewAuthController creates a new AuthController instance
func NewAuthController(users *services.UserService, sessions *services.SessionService) *AuthController {
	return &AuthController{Users: users, Sessions: sessions}
}

type authResponse struct {
	User      interface{} `json:"user"`
	SessionID string      `json:"sessionId"`
}

// HandleRegister creates a user, hashes the password and opens a session
func (ac *AuthController) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var request registerRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if request.Email == "" || request.Password == "" || request.Name == "" || request.College == "" || request.Age <= 0 {
		http.Error(w, "email, password, name, age and college are required", http.StatusBadRequest)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash password: %v", err)
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}

	user := request.toUser(string(hashed))
	created, err := ac.Users.CreateUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			http.Error(w, "Email already registered", http.StatusConflict)
			return
		}
		log.Printf("failed to create user: %v", err)
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}

	token := ac.Sessions.CreateSession(created.ID, created.Email)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(authResponse{User: created, SessionID: token})
}

// HandleLogin verifies credentials and opens a fresh session
func (ac *AuthController) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	user, err := ac.Users.GetUserByEmail(r.Context(), request.Email)
	if err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)) != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	token := ac.Sessions.CreateSession(user.ID, user.Email)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(authResponse{User: user, SessionID: token})
}

// HandleLogout revokes the presented session token
func (ac *AuthController) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ac.Sessions.Revoke(BearerToken(r))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Logged out successfully"})
}

// HandleMe returns the authenticated user's profile
func (ac *AuthController) HandleMe(w http.ResponseWriter, r *http.Request) {
	identity, _ := IdentityFromRequest(r)
	user, err := ac.Users.GetUserByID(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		log.Printf("failed to fetch user %d: %v", identity.UserID, err)
		http.Error(w, "Failed to get user", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

type registerRequest struct {
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Name      string   `json:"name"`
	Age       int      `json:"age"`
	College   string   `json:"college"`
	Major     string   `json:"major"`
	Year      string   `json:"year"`
	Bio       string   `json:"bio"`
	Interests []string `json:"interests"`
}

func (rr registerRequest) toUser(hashedPassword string) models.User {
	return models.User{
		Email:     rr.Email,
		Password:  hashedPassword,
		Name:      rr.Name,
		Age:       rr.Age,
		College:   rr.College,
		Major:     rr.Major,
		Year:      rr.Year,
		Bio:       rr.Bio,
		Interests: rr.Interests,
	}
}
