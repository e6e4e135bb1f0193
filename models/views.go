package models

import "time"

// Read-time projections returned by the API. Like FeedItem and Suggestion
// they are never persisted; services assemble them from documents plus the
// referenced users and groups.

// FriendView is one entry of a friends list.
type FriendView struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	FriendshipID string    `json:"friendshipId"`
	FriendedAt   time.Time `json:"friendedAt"`
}

// FriendRequestView is one incoming pending request.
type FriendRequestView struct {
	ID        string    `json:"id"`
	Requester UserRef   `json:"requester"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// GroupPostView is a group post with its author resolved.
type GroupPostView struct {
	GroupPost
	Author UserRef `json:"author"`
}

// PersonalPostView is a personal post with author and feed owner resolved.
type PersonalPostView struct {
	PersonalPost
	Author     UserRef `json:"author"`
	TargetUser UserRef `json:"targetUser"`
}

// CommentView is a comment with its author resolved.
type CommentView struct {
	Comment
	Author UserRef `json:"author"`
}

// EventView is an event with organizer and group resolved.
type EventView struct {
	Event
	Organizer UserRef  `json:"organizer"`
	Group     GroupRef `json:"group"`
}

// MessageView is a message with its sender resolved.
type MessageView struct {
	Message
	Sender UserRef `json:"sender"`
}

// ConversationView is a conversation with participants, the last message
// and the viewer's unread count resolved.
type ConversationView struct {
	ID               string       `json:"id"`
	Participants     []UserRef    `json:"participants"`
	OtherParticipant *UserRef     `json:"otherParticipant,omitempty"`
	LastMessage      *MessageView `json:"lastMessage,omitempty"`
	LastActivity     time.Time    `json:"lastActivity"`
	UnreadCount      int          `json:"unreadCount"`
	CreatedAt        time.Time    `json:"createdAt"`
}
