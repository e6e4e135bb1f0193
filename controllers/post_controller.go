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

// PostController handles HTTP requests for group posts, likes and comments
type PostController struct {
	PostService *services.PostService
	Log         *slog.Logger
}

// NewPostController creates a new PostController instance
func NewPostController(postService *services.PostService, log *slog.Logger) *PostController {
	return &PostController{PostService: postService, Log: log}
}

// CreatePost handles POST /api/groups/{id}/posts
func (pc *PostController) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	groupID := mux.Vars(r)["id"]
	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, pc.Log, services.InvalidInputError("Invalid request body"))
		return
	}
	post, err := pc.PostService.CreatePost(r.Context(), userID, groupID, body.Content)
	if err != nil {
		utils.WriteError(w, pc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Post created successfully",
		"post":    post,
	})
}

// ListGroupPosts handles GET /api/groups/{id}/posts
func (pc *PostController) ListGroupPosts(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	groupID := mux.Vars(r)["id"]
	page := utils.QueryInt(r, "page", 1)
	limit := utils.QueryInt(r, "limit", services.DefaultFeedPageSize)

	posts, pagination, err := pc.PostService.ListGroupPosts(r.Context(), userID, groupID, page, limit)
	if err != nil {
		utils.WriteError(w, pc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"posts":      posts,
		"pagination": pagination,
	})
}

// UpdatePost handles PUT /api/posts/{id}
func (pc *PostController) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	postID := mux.Vars(r)["id"]
	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, pc.Log, services.InvalidInputError("Invalid request body"))
		return
	}
	post, err := pc.PostService.UpdatePost(r.Context(), userID, postID, body.Content)
	if err != nil {
		utils.WriteError(w, pc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Post updated successfully",
		"post":    post,
	})
}

// DeletePost handles DELETE /api/posts/{id}
func (pc *PostController) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	if err := pc.PostService.DeletePost(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		utils.WriteError(w, pc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Post deleted successfully",
	})
}

// LikePost handles POST /api/posts/{id}/like
func (pc *PostController) LikePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	likeCount, err := pc.PostService.LikePost(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, pc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Post liked successfully",
		"likeCount": likeCount,
	})
}

// UnlikePost handles DELETE /api/posts/{id}/like
func (pc *PostController) UnlikePost(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	likeCount, err := pc.PostService.UnlikePost(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		utils.WriteError(w, pc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "Post unliked successfully",
		"likeCount": likeCount,
	})
}

// CreateComment handles POST /api/posts/{id}/comments
func (pc *PostController) CreateComment(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())
	postID := mux.Vars(r)["id"]
	var body struct {
		Content         string `json:"content"`
		ParentCommentID string `json:"parentCommentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, pc.Log, services.InvalidInputError("Invalid request body"))
		return
	}
	comment, err := pc.PostService.CreateComment(r.Context(), userID, postID, body.Content, body.ParentCommentID)
	if err != nil {
		utils.WriteError(w, pc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Comment created successfully",
		"comment": comment,
	})
}

// ListComments handles GET /api/posts/{id}/comments
func (pc *PostController) ListComments(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]
	page := utils.QueryInt(r, "page", 1)
	limit := utils.QueryInt(r, "limit", services.DefaultFeedPageSize)

	comments, pagination, err := pc.PostService.ListComments(r.Context(), postID, page, limit)
	if err != nil {
		utils.WriteError(w, pc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"comments":   comments,
		"pagination": pagination,
	})
}
