package routes

import (
	"campuslink_server/controllers"
	"campuslink_server/services"

	"github.com/gorilla/mux"
)

// RegisterS3Routes registers presigned photo URL routes
func RegisterS3Routes(r *mux.Router, s3Service *services.S3Service, sessions *services.SessionService) {
	controller := controllers.NewS3Controller(s3Service)

	s3Router := r.PathPrefix("/api/s3").Subrouter()
	s3Router.HandleFunc("/upload-url", controllers.RequireAuth(sessions, controller.HandleGenerateUploadURL)).Methods("POST")
	s3Router.HandleFunc("/read-url", controllers.RequireAuth(sessions, controller.HandleGenerateReadURL)).Methods("POST")
}
