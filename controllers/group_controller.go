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

// GroupController handles HTTP requests for groups and membership
type GroupController struct {
	GroupService *services.GroupService
	Log          *slog.Logger
}

// NewGroupController creates a new GroupController instance
func NewGroupController(groupService *services.GroupService, log *slog.Logger) *GroupController {
	return &GroupController{GroupService: groupService, Log: log}
}

// ListGroups handles GET /api/groups
func (gc *GroupController) ListGroups(w http.ResponseWriter, r *http.Request) {
	limit := utils.QueryInt(r, "limit", 50)
	groups, err := gc.GroupService.ListGroups(r.Context(), limit)
	if err != nil {
		utils.WriteError(w, gc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"groups": groups,
		"total":  len(groups),
	})
}

// CreateGroup handles POST /api/groups
func (gc *GroupController) CreateGroup(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, gc.Log, services.InvalidInputError("Invalid request body"))
		return
	}
	group, err := gc.GroupService.CreateGroup(r.Context(), userID, body.Name, body.Description)
	if err != nil {
		utils.WriteError(w, gc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Group created successfully",
		"group":   group,
	})
}

// GetGroup handles GET /api/groups/{id}
func (gc *GroupController) GetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := gc.GroupService.GetGroup(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, gc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, group)
}

// UpdateGroup handles PUT /api/groups/{id}
func (gc *GroupController) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, gc.Log, services.InvalidInputError("Invalid request body"))
		return
	}
	group, err := gc.GroupService.UpdateGroup(r.Context(), userID, mux.Vars(r)["id"], body.Name, body.Description)
	if err != nil {
		utils.WriteError(w, gc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Group updated successfully",
		"group":   group,
	})
}

// DeleteGroup handles DELETE /api/groups/{id}
func (gc *GroupController) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if err := gc.GroupService.DeleteGroup(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		utils.WriteError(w, gc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Group deleted successfully",
	})
}

// JoinGroup handles POST /api/groups/{id}/join
func (gc *GroupController) JoinGroup(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if err := gc.GroupService.JoinGroup(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		utils.WriteError(w, gc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Joined group successfully",
	})
}

// LeaveGroup handles DELETE /api/groups/{id}/join
func (gc *GroupController) LeaveGroup(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if err := gc.GroupService.LeaveGroup(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		utils.WriteError(w, gc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Left group successfully",
	})
}
