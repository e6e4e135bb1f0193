package models

import "time"

// Comment belongs to a group post. ParentCommentID is empty for top-level
// comments and references another comment on the same post for replies.
type Comment struct {
	ID              string    `dynamodbav:"id" json:"id"`
	PostID          string    `dynamodbav:"postId" json:"postId"`
	AuthorID        string    `dynamodbav:"authorId" json:"authorId"`
	ParentCommentID string    `dynamodbav:"parentCommentId,omitempty" json:"parentCommentId,omitempty"`
	Content         string    `dynamodbav:"content" json:"content"`
	Likes           []string  `dynamodbav:"likes" json:"likes"`
	LikeCount       int       `dynamodbav:"likeCount" json:"likeCount"`
	IsEdited        bool      `dynamodbav:"isEdited" json:"isEdited"`
	CreatedAt       time.Time `dynamodbav:"createdAt" json:"createdAt"`
}

// CommentsTable is the DynamoDB table name for comments
const CommentsTable = "Comments"
