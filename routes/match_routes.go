package routes

import (
	"campuslink_server/controllers"
	"campuslink_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes registers match listing and per-match message routes
func RegisterMatchRoutes(r *mux.Router, matches *services.MatchService, chat *services.ChatService, users *services.UserService, sessions *services.SessionService) {
	matchController := controllers.NewMatchController(matches)
	chatController := controllers.NewChatController(chat, matches, users)

	matchRouter := r.PathPrefix("/api/matches").Subrouter()
	matchRouter.HandleFunc("", controllers.RequireAuth(sessions, matchController.HandleGetMatches)).Methods("GET")
	matchRouter.HandleFunc("/{matchId}/messages", controllers.RequireAuth(sessions, chatController.HandleGetMessages)).Methods("GET")
	matchRouter.HandleFunc("/{matchId}/messages", controllers.RequireAuth(sessions, chatController.HandleSendMessage)).Methods("POST")
}
