package models

import "time"

// Friendship statuses. A declined or blocked edge still counts as a
// connection for suggestion exclusion.
const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
	FriendshipDeclined = "declined"
	FriendshipBlocked  = "blocked"
)

// Friendship is a directional request between two users. At most one
// document exists per unordered pair; requester and recipient are never the
// same user.
type Friendship struct {
	ID          string    `dynamodbav:"id" json:"id"`
	RequesterID string    `dynamodbav:"requesterId" json:"requesterId"`
	RecipientID string    `dynamodbav:"recipientId" json:"recipientId"`
	Status      string    `dynamodbav:"status" json:"status"`
	CreatedAt   time.Time `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `dynamodbav:"updatedAt" json:"updatedAt"`
}

// OtherUser returns the peer of userID on this edge.
func (f *Friendship) OtherUser(userID string) string {
	if f.RequesterID == userID {
		return f.RecipientID
	}
	return f.RequesterID
}

// Involves reports whether userID is on either side of the edge.
func (f *Friendship) Involves(userID string) bool {
	return f.RequesterID == userID || f.RecipientID == userID
}

// FriendshipsTable is the DynamoDB table name for friendship edges
const FriendshipsTable = "Friendships"
