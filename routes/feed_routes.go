package routes

import (
	"log/slog"

	"gathr_server/controllers"
	"gathr_server/services"

	"github.com/gorilla/mux"
)

// RegisterFeedRoutes sets up routes for the unified feed under /api/feed
func RegisterFeedRoutes(r *mux.Router, feedService *services.FeedService, log *slog.Logger) {
	controller := controllers.NewFeedController(feedService, log)

	feedRouter := r.PathPrefix("/feed").Subrouter()
	feedRouter.HandleFunc("/unified", controller.GetUnifiedFeed).Methods("GET")
}
