package models

import "time"

// GroupPost is a post on a group wall. Likes holds the liking user ids;
// LikeCount is always written together with Likes so the two cannot drift.
// CommentCount is maintained by delta when comments are created.
type GroupPost struct {
	ID           string    `dynamodbav:"id" json:"id"`
	GroupID      string    `dynamodbav:"groupId" json:"groupId"`
	AuthorID     string    `dynamodbav:"authorId" json:"authorId"`
	Content      string    `dynamodbav:"content" json:"content"`
	Likes        []string  `dynamodbav:"likes" json:"likes"`
	LikeCount    int       `dynamodbav:"likeCount" json:"likeCount"`
	CommentCount int       `dynamodbav:"commentCount" json:"commentCount"`
	IsEdited     bool      `dynamodbav:"isEdited" json:"isEdited"`
	CreatedAt    time.Time `dynamodbav:"createdAt" json:"createdAt"`
}

// HasLike reports whether userID already liked the post.
func (p *GroupPost) HasLike(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// GroupPostsTable is the DynamoDB table name for group posts
const GroupPostsTable = "GroupPosts"
