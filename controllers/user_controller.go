package controllers

import (
	"log/slog"
	"net/http"

	"gathr_server/middleware"
	"gathr_server/services"
	"gathr_server/utils"

	"github.com/gorilla/mux"
)

// UserController handles HTTP requests for user lookup and search
type UserController struct {
	UserService *services.UserService
	Log         *slog.Logger
}

// NewUserController creates a new UserController instance
func NewUserController(userService *services.UserService, log *slog.Logger) *UserController {
	return &UserController{UserService: userService, Log: log}
}

// GetUser handles GET /api/users/{id}
func (uc *UserController) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := uc.UserService.GetUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, uc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, user)
}

// SearchUsers handles GET /api/users/search
func (uc *UserController) SearchUsers(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.UserID(r.Context())
	query := r.URL.Query().Get("q")
	limit := utils.QueryInt(r, "limit", 20)

	users, err := uc.UserService.SearchUsers(r.Context(), viewerID, query, limit)
	if err != nil {
		utils.WriteError(w, uc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"total": len(users),
	})
}
