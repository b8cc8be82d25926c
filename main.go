package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"social_server/routes"
	"social_server/services"
	"social_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize DynamoDB client and store
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	store := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Socket server carries fire-and-forget notifications to subscribed users
	socketServer := socket.NewSocketServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Printf("socket server stopped: %v", err)
		}
	}()
	defer socketServer.Close()

	// Initialize Services
	guard := &services.GuardService{Store: store}
	notifier := &services.NotificationService{Server: socketServer}
	friendshipService := &services.FriendshipService{Store: store, Guard: guard, Notifier: notifier}
	blockService := &services.BlockService{Store: store, Guard: guard}
	followerService := &services.FollowerService{Store: store, Guard: guard}
	groupService := &services.GroupService{Store: store, Guard: guard, Notifier: notifier}

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to the social graph API")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterFriendshipRoutes(r, friendshipService)
	routes.RegisterBlockRoutes(r, blockService)
	routes.RegisterFollowerRoutes(r, followerService)
	routes.RegisterGroupRoutes(r, groupService)
	routes.RegisterS3Routes(r)
	r.Handle("/socket.io/", socketServer)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
