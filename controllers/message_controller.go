package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"gathr_server/middleware"
	"gathr_server/services"
	"gathr_server/utils"

	"github.com/gorilla/mux"
)

// MessageController handles HTTP requests for conversations and messages
type MessageController struct {
	MessageService *services.MessageService
	Log            *slog.Logger
}

// NewMessageController creates a new MessageController instance
func NewMessageController(messageService *services.MessageService, log *slog.Logger) *MessageController {
	return &MessageController{MessageService: messageService, Log: log}
}

// CreateOrGetConversation handles POST /api/conversations
func (mc *MessageController) CreateOrGetConversation(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	var body struct {
		RecipientID string `json:"recipientId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, mc.Log, services.InvalidInputError("Invalid request body"))
		return
	}
	conversation, err := mc.MessageService.CreateOrGetConversation(r.Context(), userID, body.RecipientID)
	if err != nil {
		utils.WriteError(w, mc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, conversation)
}

// ListConversations handles GET /api/conversations
func (mc *MessageController) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	conversations, err := mc.MessageService.ListConversations(r.Context(), userID)
	if err != nil {
		utils.WriteError(w, mc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"conversations": conversations,
		"total":         len(conversations),
	})
}

// SendMessage handles POST /api/conversations/{id}/messages
func (mc *MessageController) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	conversationID := mux.Vars(r)["id"]
	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, mc.Log, services.InvalidInputError("Invalid request body"))
		return
	}
	message, err := mc.MessageService.SendMessage(r.Context(), userID, conversationID, body.Content)
	if err != nil {
		utils.WriteError(w, mc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Message sent successfully",
		"data":    message,
	})
}

// ListMessages handles GET /api/conversations/{id}/messages
func (mc *MessageController) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	conversationID := mux.Vars(r)["id"]
	page := utils.QueryInt(r, "page", 1)
	limit := utils.QueryInt(r, "limit", 50)

	messages, pagination, err := mc.MessageService.ListMessages(r.Context(), userID, conversationID, page, limit)
	if err != nil {
		utils.WriteError(w, mc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"messages":   messages,
		"pagination": pagination,
	})
}

// MarkConversationRead handles POST /api/conversations/{id}/read
func (mc *MessageController) MarkConversationRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if err := mc.MessageService.MarkConversationRead(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		utils.WriteError(w, mc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Conversation marked as read",
	})
}
