package routes

import (
	"campuslink_server/controllers"
	"campuslink_server/services"

	"github.com/gorilla/mux"
)

// RegisterSwipeRoutes registers the discovery feed and swipe routes
func RegisterSwipeRoutes(r *mux.Router, matches *services.MatchService, users *services.UserService, sessions *services.SessionService) {
	controller := controllers.NewSwipeController(matches, users)

	swipeRouter := r.PathPrefix("/api/swipe").Subrouter()
	swipeRouter.HandleFunc("/potential-matches", controllers.RequireAuth(sessions, controller.HandlePotentialMatches)).Methods("GET")
	swipeRouter.HandleFunc("/{targetUserId}", controllers.RequireAuth(sessions, controller.HandleSwipe)).Methods("POST")
}
