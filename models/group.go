package models

import "time"

// Group is a community container. MemberCount is denormalized from active
// GroupMembership documents and kept in sync by GroupService.
type Group struct {
	ID          string    `dynamodbav:"id" json:"id"`
	Name        string    `dynamodbav:"name" json:"name"`
	Description string    `dynamodbav:"description" json:"description"`
	CreatorID   string    `dynamodbav:"creatorId" json:"creatorId"`
	MemberCount int       `dynamodbav:"memberCount" json:"memberCount"`
	CreatedAt   time.Time `dynamodbav:"createdAt" json:"createdAt"`
}

// GroupRef is the projection embedded in feed items and events.
type GroupRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (g *Group) Ref() GroupRef {
	return GroupRef{ID: g.ID, Name: g.Name}
}

// GroupsTable is the DynamoDB table name for groups
const GroupsTable = "Groups"
