package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"campuslink_server/config"
	"campuslink_server/routes"
	"campuslink_server/services"
	"campuslink_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient(cfg.AWSRegion)
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Initialize services
	sessionService := services.NewSessionService()
	userService := &services.UserService{Dynamo: dynamoService}
	matchService := &services.MatchService{Dynamo: dynamoService, Users: userService}
	chatService := &services.ChatService{Dynamo: dynamoService, Users: userService}
	eventService := &services.EventService{Dynamo: dynamoService, Users: userService}
	complimentService := &services.ComplimentService{Dynamo: dynamoService, Users: userService}

	s3Service, err := services.NewS3Service(cfg.AWSRegion, cfg.S3Bucket)
	if err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}

	// Initialize the realtime layer
	registry := socket.NewRegistry()
	socketServer := socket.NewServer(registry, sessionService, chatService, matchService, userService)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to CampusLink")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}).Methods("GET")

	// Websocket endpoint; authenticated via ?sessionId=
	r.HandleFunc("/ws", socketServer.HandleConnection)

	// Register routes
	routes.RegisterAuthRoutes(r, userService, sessionService)
	routes.RegisterUserProfileRoutes(r, userService, sessionService)
	routes.RegisterSwipeRoutes(r, matchService, userService, sessionService)
	routes.RegisterMatchRoutes(r, matchService, chatService, userService, sessionService)
	routes.RegisterEventRoutes(r, eventService, userService, sessionService)
	routes.RegisterComplimentRoutes(r, complimentService, userService, sessionService)
	routes.RegisterS3Routes(r, s3Service, sessionService)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}
