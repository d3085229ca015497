package routes

import (
	"campuslink_server/controllers"
	"campuslink_server/services"

	"github.com/gorilla/mux"
)

// RegisterAuthRoutes registers registration, login and session routes
func RegisterAuthRoutes(r *mux.Router, users *services.UserService, sessions *services.SessionService) {
	controller := controllers.NewAuthController(users, sessions)

	authRouter := r.PathPrefix("/api/auth").Subrouter()
	authRouter.HandleFunc("/register", controller.HandleRegister).Methods("POST")
	authRouter.HandleFunc("/login", controller.HandleLogin).Methods("POST")
	authRouter.HandleFunc("/logout", controllers.RequireAuth(sessions, controller.HandleLogout)).Methods("POST")
	authRouter.HandleFunc("/me", controllers.RequireAuth(sessions, controller.HandleMe)).Methods("GET")
}
