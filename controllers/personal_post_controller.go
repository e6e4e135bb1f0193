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

// PersonalPostController handles HTTP requests for profile-wall posts
type PersonalPostController struct {
	PersonalPostService *services.PersonalPostService
	Log                 *slog.Logger
}

// NewPersonalPostController creates a new PersonalPostController instance
func NewPersonalPostController(personalPostService *services.PersonalPostService, log *slog.Logger) *PersonalPostController {
	return &PersonalPostController{PersonalPostService: personalPostService, Log: log}
}

// CreatePersonalPost handles POST /api/posts/personal
func (pc *PersonalPostController) CreatePersonalPost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	var body struct {
		TargetUserID string `json:"targetUserId"`
		Content      string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, pc.Log, services.InvalidInputError("Invalid request body"))
		return
	}
	post, err := pc.PersonalPostService.CreatePersonalPost(r.Context(), userID, body.TargetUserID, body.Content)
	if err != nil {
		utils.WriteError(w, pc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Post created successfully",
		"post":    post,
	})
}

// ListProfileFeed handles GET /api/posts/personal. The userId query
// parameter selects whose feed to read; it defaults to the viewer's own.
func (pc *PersonalPostController) ListProfileFeed(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.UserID(r.Context())
	targetUserID := r.URL.Query().Get("userId")
	if targetUserID == "" {
		targetUserID = viewerID
	}
	page := utils.QueryInt(r, "page", 1)
	limit := utils.QueryInt(r, "limit", services.DefaultFeedPageSize)

	posts, pagination, err := pc.PersonalPostService.ListProfileFeed(r.Context(), viewerID, targetUserID, page, limit)
	if err != nil {
		utils.WriteError(w, pc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"posts":      posts,
		"pagination": pagination,
	})
}

// LikePersonalPost handles POST /api/posts/personal/{id}/like
func (pc *PersonalPostController) LikePersonalPost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	likeCount, err := pc.PersonalPostService.LikePersonalPost(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, pc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Post liked successfully",
		"likeCount": likeCount,
	})
}

// UnlikePersonalPost handles DELETE /api/posts/personal/{id}/like
func (pc *PersonalPostController) UnlikePersonalPost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	likeCount, err := pc.PersonalPostService.UnlikePersonalPost(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, pc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Post unliked successfully",
		"likeCount": likeCount,
	})
}
