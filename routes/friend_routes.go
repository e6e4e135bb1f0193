package routes

import (
	"log/slog"

	"gathr_server/controllers"
	"gathr_server/services"

	"github.com/gorilla/mux"
)

// RegisterFriendRoutes sets up routes for friendships and suggestions under /api/friends
func RegisterFriendRoutes(r *mux.Router, friendshipService *services.FriendshipService, suggestionService *services.SuggestionService, log *slog.Logger) {
	controller := controllers.NewFriendController(friendshipService, suggestionService, log)

	friendRouter := r.PathPrefix("/friends").Subrouter()
	friendRouter.HandleFunc("", controller.ListFriends).Methods("GET")
	friendRouter.HandleFunc("", controller.SendRequest).Methods("POST")
	friendRouter.HandleFunc("/requests", controller.ListRequests).Methods("GET")
	friendRouter.HandleFunc("/requests/{id}", controller.RespondToRequest).Methods("PUT")
	friendRouter.HandleFunc("/requests/{id}", controller.CancelRequest).Methods("DELETE")
	friendRouter.HandleFunc("/suggestions", controller.GetSuggestions).Methods("GET")
	friendRouter.HandleFunc("/{id}", controller.Unfriend).Methods("DELETE")
}
