package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"gathr_server/middleware"
	"gathr_server/routes"
	"gathr_server/services"

	"github.com/gorilla/mux"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func main() {
	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(log)

	authSecret := os.Getenv("AUTH_SECRET")
	if authSecret == "" {
		log.Error("AUTH_SECRET is required")
		os.Exit(1)
	}

	// Initialize DynamoDB client and service
	log.Info("initializing DynamoDB client")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient, Log: log}
	stores := services.NewDynamoStores(dynamoService)

	// Initialize Services
	feedService := &services.FeedService{
		Friendships:   stores.Friendships,
		Memberships:   stores.Memberships,
		Posts:         stores.Posts,
		PersonalPosts: stores.PersonalPosts,
		Users:         stores.Users,
		Groups:        stores.Groups,
		Log:           log,
	}
	suggestionService := &services.SuggestionService{
		Users:       stores.Users,
		Friendships: stores.Friendships,
		Memberships: stores.Memberships,
		Log:         log,
	}
	friendshipService := &services.FriendshipService{
		Friendships: stores.Friendships,
		Users:       stores.Users,
		Log:         log,
	}
	groupService := &services.GroupService{
		Groups:      stores.Groups,
		Memberships: stores.Memberships,
		Users:       stores.Users,
		Log:         log,
	}
	postService := &services.PostService{
		Posts:       stores.Posts,
		Comments:    stores.Comments,
		Groups:      stores.Groups,
		Memberships: stores.Memberships,
		Users:       stores.Users,
		Log:         log,
	}
	personalPostService := &services.PersonalPostService{
		PersonalPosts: stores.PersonalPosts,
		Friendships:   stores.Friendships,
		Users:         stores.Users,
		Log:           log,
	}
	eventService := &services.EventService{
		Events:      stores.Events,
		Attendance:  stores.Attendance,
		Memberships: stores.Memberships,
		Groups:      stores.Groups,
		Users:       stores.Users,
		Log:         log,
	}
	messageService := &services.MessageService{
		Conversations: stores.Conversations,
		Messages:      stores.Messages,
		Friendships:   stores.Friendships,
		Users:         stores.Users,
		Log:           log,
	}
	userService := &services.UserService{
		Users: stores.Users,
		Log:   log,
	}

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Initialize the router
	r := mux.NewRouter()
	r.Use(middleware.Metrics)

	// Health check and metrics stay outside the identity gate
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Everything under /api requires a verified identity
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.RequireAuth([]byte(authSecret)))

	// Register routes
	routes.RegisterFeedRoutes(api, feedService, log)
	routes.RegisterFriendRoutes(api, friendshipService, suggestionService, log)
	routes.RegisterGroupRoutes(api, groupService, postService, log)
	routes.RegisterPostRoutes(api, postService, personalPostService, log)
	routes.RegisterEventRoutes(api, eventService, log)
	routes.RegisterMessageRoutes(api, messageService, log)
	routes.RegisterUserRoutes(api, userService, log)
	routes.RegisterMaintenanceRoutes(api, eventService, groupService, log)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	log.Info("starting server", "port", port)
	if err := http.ListenAndServe(":"+port, corsHandler); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
