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

// FriendController handles HTTP requests for friendships and suggestions
type FriendController struct {
	FriendshipService *services.FriendshipService
	SuggestionService *services.SuggestionService
	Log               *slog.Logger
}

// NewFriendController creates a new FriendController instance
func NewFriendController(friendshipService *services.FriendshipService, suggestionService *services.SuggestionService, log *slog.Logger) *FriendController {
	return &FriendController{FriendshipService: friendshipService, SuggestionService: suggestionService, Log: log}
}

// ListFriends handles GET /api/friends
func (fc *FriendController) ListFriends(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	friends, err := fc.FriendshipService.ListFriends(r.Context(), userID)
	if err != nil {
		utils.WriteError(w, fc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"friends": friends,
		"total":   len(friends),
	})
}

// SendRequest handles POST /api/friends
func (fc *FriendController) SendRequest(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	var body struct {
		RecipientID string `json:"recipientId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, fc.Log, services.InvalidInputError("Invalid request body"))
		return
	}
	friendship, err := fc.FriendshipService.SendRequest(r.Context(), userID, body.RecipientID)
	if err != nil {
		utils.WriteError(w, fc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":    "Friend request sent successfully",
		"friendship": friendship,
	})
}

// ListRequests handles GET /api/friends/requests
func (fc *FriendController) ListRequests(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	requests, err := fc.FriendshipService.ListPendingRequests(r.Context(), userID)
	if err != nil {
		utils.WriteError(w, fc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"requests": requests,
		"total":    len(requests),
	})
}

// RespondToRequest handles PUT /api/friends/requests/{id}
func (fc *FriendController) RespondToRequest(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	requestID := mux.Vars(r)["id"]
	var body struct {
		Action string `json:"action"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, fc.Log, services.InvalidInputError("Invalid request body"))
		return
	}
	friendship, err := fc.FriendshipService.RespondToRequest(r.Context(), userID, requestID, body.Action)
	if err != nil {
		utils.WriteError(w, fc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Friend request " + body.Action + "ed successfully",
		"friendship": friendship,
	})
}

// CancelRequest handles DELETE /api/friends/requests/{id}
func (fc *FriendController) CancelRequest(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	requestID := mux.Vars(r)["id"]
	if err := fc.FriendshipService.CancelRequest(r.Context(), userID, requestID); err != nil {
		utils.WriteError(w, fc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Friend request cancelled successfully",
	})
}

// Unfriend handles DELETE /api/friends/{id}
func (fc *FriendController) Unfriend(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	friendUserID := mux.Vars(r)["id"]
	if err := fc.FriendshipService.Unfriend(r.Context(), userID, friendUserID); err != nil {
		utils.WriteError(w, fc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Friend removed successfully",
	})
}

// GetSuggestions handles GET /api/friends/suggestions
func (fc *FriendController) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	limit := utils.QueryInt(r, "limit", services.DefaultSuggestionLimit)
	suggestions, err := fc.SuggestionService.GetSuggestions(r.Context(), userID, limit)
	if err != nil {
		utils.WriteError(w, fc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions": suggestions,
		"total":       len(suggestions),
	})
}
