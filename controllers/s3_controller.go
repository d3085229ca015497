package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"campuslink_server/services"
)

// S3Controller issues presigned URLs for profile photo uploads and reads
type S3Controller struct {
	S3 *services.S3Service
}

// NewS3Controller creates a new S3Controller instance
func NewS3Controller(s3Service *services.S3Service) *S3Controller {
	return &S3Controller{S3: s3Service}
}

// HandleGenerateUploadURL returns a presigned PUT URL for a profile photo
func (sc *S3Controller) HandleGenerateUploadURL(w http.ResponseWriter, r *http.Request) {
	var request struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.FileName == "" || request.FileType == "" {
		http.Error(w, "fileName and fileType are required", http.StatusBadRequest)
		return
	}

	url, key, err := sc.S3.GenerateUploadURL(r.Context(), request.FileName, request.FileType)
	if err != nil {
		log.Printf("failed to presign upload for %q: %v", request.FileName, err)
		http.Error(w, "Failed to generate upload URL", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"uploadUrl": url, "key": key})
}

// HandleGenerateReadURL returns a presigned GET URL for a stored photo
func (sc *S3Controller) HandleGenerateReadURL(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.Key == "" {
		http.Error(w, "key is required", http.StatusBadRequest)
		return
	}

	url, err := sc.S3.GenerateReadURL(r.Context(), request.Key)
	if err != nil {
		log.Printf("failed to presign read for %q: %v", request.Key, err)
		http.Error(w, "Failed to generate read URL", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"url": url})
}
