package controllers

import (
	"log/slog"
	"net/http"

	"gathr_server/middleware"
	"gathr_server/services"
	"gathr_server/utils"
)

// FeedController handles HTTP requests for the unified feed
type FeedController struct {
	FeedService *services.FeedService
	Log         *slog.Logger
}

// NewFeedController creates a new FeedController instance
func NewFeedController(feedService *services.FeedService, log *slog.Logger) *FeedController {
	return &FeedController{FeedService: feedService, Log: log}
}

// GetUnifiedFeed handles GET /api/feed/unified
func (fc *FeedController) GetUnifiedFeed(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.UserID(r.Context())
	page := utils.QueryInt(r, "page", 1)
	limit := utils.QueryInt(r, "limit", services.DefaultFeedPageSize)

	posts, pagination, err := fc.FeedService.GetUnifiedFeed(r.Context(), viewerID, page, limit)
	if err != nil {
		utils.WriteError(w, fc.Log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"posts":      posts,
		"pagination": pagination,
	})
}
