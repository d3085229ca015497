package routes

import (
	"campuslink_server/controllers"
	"campuslink_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserProfileRoutes registers profile update routes
func RegisterUserProfileRoutes(r *mux.Router, users *services.UserService, sessions *services.SessionService) {
	controller := controllers.NewUserProfileController(users)

	userRouter := r.PathPrefix("/api/users").Subrouter()
	userRouter.HandleFunc("/profile", controllers.RequireAuth(sessions, controller.HandleUpdateProfile)).Methods("PUT")
}
