package models

import "time"

// Membership roles.
const (
	RoleOwner     = "owner"
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleMember    = "member"
)

// GroupMembership links a user to a group. At most one document exists per
// (group, user) pair; leaving a group flips IsActive instead of deleting, so
// rejoining reactivates the same document.
type GroupMembership struct {
	ID       string    `dynamodbav:"id" json:"id"`
	GroupID  string    `dynamodbav:"groupId" json:"groupId"`
	UserID   string    `dynamodbav:"userId" json:"userId"`
	Role     string    `dynamodbav:"role" json:"role"`
	IsActive bool      `dynamodbav:"isActive" json:"isActive"`
	JoinedAt time.Time `dynamodbav:"joinedAt" json:"joinedAt"`
}

// GroupMembershipsTable is the DynamoDB table name for group memberships
const GroupMembershipsTable = "GroupMemberships"
