package routes

import (
	"log/slog"

	"gathr_server/controllers"
	"gathr_server/services"

	"github.com/gorilla/mux"
)

// RegisterMessageRoutes sets up routes for conversations and messages under /api/conversations
func RegisterMessageRoutes(r *mux.Router, messageService *services.MessageService, log *slog.Logger) {
	controller := controllers.NewMessageController(messageService, log)

	conversationRouter := r.PathPrefix("/conversations").Subrouter()
	conversationRouter.HandleFunc("", controller.ListConversations).Methods("GET")
	conversationRouter.HandleFunc("", controller.CreateOrGetConversation).Methods("POST")
	conversationRouter.HandleFunc("/{id}/messages", controller.ListMessages).Methods("GET")
	conversationRouter.HandleFunc("/{id}/messages", controller.SendMessage).Methods("POST")
	conversationRouter.HandleFunc("/{id}/read", controller.MarkConversationRead).Methods("POST")
}
