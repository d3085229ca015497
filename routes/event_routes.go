package routes

import (
	"campuslink_server/controllers"
	"campuslink_server/services"

	"github.com/gorilla/mux"
)

// RegisterEventRoutes registers campus event routes
func RegisterEventRoutes(r *mux.Router, events *services.EventService, users *services.UserService, sessions *services.SessionService) {
	controller := controllers.NewEventController(events, users)

	eventRouter := r.PathPrefix("/api/events").Subrouter()
	eventRouter.HandleFunc("", controllers.RequireAuth(sessions, controller.HandleGetEvents)).Methods("GET")
	eventRouter.HandleFunc("", controllers.RequireAuth(sessions, controller.HandleCreateEvent)).Methods("POST")
	eventRouter.HandleFunc("/{eventId}/join", controllers.RequireAuth(sessions, controller.HandleJoinEvent)).Methods("POST")
	eventRouter.HandleFunc("/{eventId}/leave", controllers.RequireAuth(sessions, controller.HandleLeaveEvent)).Methods("POST")
}
