package routes

import (
	"campuslink_server/controllers"
	"campuslink_server/services"

	"github.com/gorilla/mux"
)

// RegisterComplimentRoutes registers anonymous compliment routes
func RegisterComplimentRoutes(r *mux.Router, compliments *services.ComplimentService, users *services.UserService, sessions *services.SessionService) {
	controller := controllers.NewComplimentController(compliments, users)

	complimentRouter := r.PathPrefix("/api/compliments").Subrouter()
	complimentRouter.HandleFunc("", controllers.RequireAuth(sessions, controller.HandleGetCompliments)).Methods("GET")
	complimentRouter.HandleFunc("", controllers.RequireAuth(sessions, controller.HandleCreateCompliment)).Methods("POST")
	complimentRouter.HandleFunc("/users", controllers.RequireAuth(sessions, controller.HandleGetComplimentUsers)).Methods("GET")
}
