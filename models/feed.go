package models

import "time"

// Feed item types.
const (
	FeedItemGroup    = "group"
	FeedItemPersonal = "personal"
)

// FeedItem is the read-time projection unifying group posts and personal
// posts into one timeline shape. It is never persisted. Type discriminates
// the payload: Group is set for group posts, TargetUser for personal posts.
type FeedItem struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Content      string    `json:"content"`
	Author       UserRef   `json:"author"`
	Group        *GroupRef `json:"group,omitempty"`
	TargetUser   *UserRef  `json:"targetUser,omitempty"`
	Likes        []string  `json:"likes"`
	LikeCount    int       `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	IsEdited     bool      `json:"isEdited"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Pagination describes a page of a larger result set.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// NewPagination derives page metadata from a true total count.
func NewPagination(page, limit, total int) Pagination {
	totalPages := (total + limit - 1) / limit
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
