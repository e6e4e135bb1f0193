package models

import "time"

// PersonalPost is a post on a user's personal feed. TargetUserID is the
// feed owner; a post is visible only to the target, the author, and the
// target's accepted friends.
type PersonalPost struct {
	ID           string    `dynamodbav:"id" json:"id"`
	AuthorID     string    `dynamodbav:"authorId" json:"authorId"`
	TargetUserID string    `dynamodbav:"targetUserId" json:"targetUserId"`
	Content      string    `dynamodbav:"content" json:"content"`
	Likes        []string  `dynamodbav:"likes" json:"likes"`
	LikeCount    int       `dynamodbav:"likeCount" json:"likeCount"`
	CommentCount int       `dynamodbav:"commentCount" json:"commentCount"`
	IsEdited     bool      `dynamodbav:"isEdited" json:"isEdited"`
	CreatedAt    time.Time `dynamodbav:"createdAt" json:"createdAt"`
}

// HasLike reports whether userID already liked the post.
func (p *PersonalPost) HasLike(userID string) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// PersonalPostsTable is the DynamoDB table name for personal-feed posts
const PersonalPostsTable = "PersonalPosts"
