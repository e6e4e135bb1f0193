package services

import (
	"context"
	"time"

	"gathr_server/models"
)

// The store interfaces isolate the aggregation, ranking and counter logic
// from the storage engine. The Dynamo-backed implementations live in
// dynamo_stores.go; tests substitute in-memory fakes.
//
// Every method that misses returns ErrItemNotFound so services can attach
// entity-specific messages.

// UserStore reads and writes user accounts.
type UserStore interface {
	Get(ctx context.Context, id string) (*models.User, error)
	BatchGet(ctx context.Context, ids []string) (map[string]models.User, error)
	Put(ctx context.Context, user *models.User) error
	// ListRecent returns up to limit users not in exclude, most recently
	// created first.
	ListRecent(ctx context.Context, exclude map[string]bool, limit int) ([]models.User, error)
	// Search matches a name substring or an email prefix, case-insensitive,
	// excluding excludeID.
	Search(ctx context.Context, query, excludeID string, limit int) ([]models.User, error)
}

// FriendshipStore reads and writes friendship edges.
type FriendshipStore interface {
	Get(ctx context.Context, id string) (*models.Friendship, error)
	// FindByPair finds the edge between two users in either direction.
	FindByPair(ctx context.Context, userA, userB string) (*models.Friendship, error)
	// ListByUser returns every edge touching userID, any status.
	ListByUser(ctx context.Context, userID string) ([]models.Friendship, error)
	ListPendingForRecipient(ctx context.Context, userID string) ([]models.Friendship, error)
	// ListAcceptedByUsers returns accepted edges touching any of userIDs.
	ListAcceptedByUsers(ctx context.Context, userIDs []string) ([]models.Friendship, error)
	Put(ctx context.Context, friendship *models.Friendship) error
	Delete(ctx context.Context, id string) error
}

// MembershipStore reads and writes group memberships.
type MembershipStore interface {
	// Find returns the membership document for (groupID, userID), active or
	// not.
	Find(ctx context.Context, groupID, userID string) (*models.GroupMembership, error)
	ListActiveByUser(ctx context.Context, userID string) ([]models.GroupMembership, error)
	ListActiveByGroups(ctx context.Context, groupIDs []string) ([]models.GroupMembership, error)
	CountActiveByGroup(ctx context.Context, groupID string) (int, error)
	Put(ctx context.Context, membership *models.GroupMembership) error
	// DeleteByGroup removes every membership document of the group, active
	// or not. Used when a group is deleted.
	DeleteByGroup(ctx context.Context, groupID string) error
}

// GroupStore reads and writes groups and their denormalized member count.
type GroupStore interface {
	Get(ctx context.Context, id string) (*models.Group, error)
	Put(ctx context.Context, group *models.Group) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit int) ([]models.Group, error)
	// AddMemberCount applies a signed delta as one atomic document update.
	AddMemberCount(ctx context.Context, groupID string, delta int) error
	// SetMemberCount overwrites the counter with a recomputed true count.
	SetMemberCount(ctx context.Context, groupID string, count int) error
}

// PostStore reads and writes group posts.
type PostStore interface {
	Get(ctx context.Context, id string) (*models.GroupPost, error)
	Put(ctx context.Context, post *models.GroupPost) error
	Delete(ctx context.Context, id string) error
	// ListByGroup returns one page, newest first, plus the true total.
	ListByGroup(ctx context.Context, groupID string, page, limit int) ([]models.GroupPost, int, error)
	// ListByGroups returns a newest-first candidate window across groups.
	ListByGroups(ctx context.Context, groupIDs []string, limit int) ([]models.GroupPost, error)
	CountByGroups(ctx context.Context, groupIDs []string) (int, error)
	// SetLikes persists the likes set and likeCount = len(likes) in a single
	// document write.
	SetLikes(ctx context.Context, id string, likes []string) error
	AddCommentCount(ctx context.Context, id string, delta int) error
}

// PersonalPostStore reads and writes personal-feed posts.
type PersonalPostStore interface {
	Get(ctx context.Context, id string) (*models.PersonalPost, error)
	Put(ctx context.Context, post *models.PersonalPost) error
	// ListFeedWindow returns a newest-first candidate window of posts
	// visible to the viewer: posts on the viewer's own feed, plus posts on
	// accepted friends' feeds authored by a friend or the viewer. A post
	// matches at most one branch, so no document is returned twice.
	ListFeedWindow(ctx context.Context, viewerID string, friendIDs []string, limit int) ([]models.PersonalPost, error)
	CountFeed(ctx context.Context, viewerID string, friendIDs []string) (int, error)
	// ListByTarget returns one page of a profile feed, newest first, plus
	// the true total. A limit of 0 or less returns every post.
	ListByTarget(ctx context.Context, targetID string, page, limit int) ([]models.PersonalPost, int, error)
	SetLikes(ctx context.Context, id string, likes []string) error
}

// CommentStore reads and writes comments on group posts.
type CommentStore interface {
	Get(ctx context.Context, id string) (*models.Comment, error)
	Put(ctx context.Context, comment *models.Comment) error
	// ListTopLevelByPost returns one page of top-level comments, oldest
	// first, plus the true total.
	ListTopLevelByPost(ctx context.Context, postID string, page, limit int) ([]models.Comment, int, error)
}

// EventStore reads and writes events and their denormalized counters.
type EventStore interface {
	Get(ctx context.Context, id string) (*models.Event, error)
	Put(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
	// ListByGroups returns one page ordered by start date ascending, plus
	// the true total. When upcomingOnly is set, events whose start date has
	// passed are skipped.
	ListByGroups(ctx context.Context, groupIDs []string, upcomingOnly bool, page, limit int) ([]models.Event, int, error)
	// ApplyAttendanceDeltas applies signed deltas to the per-status counters
	// and overwrites attendeeCount with a freshly counted value, all in one
	// atomic document update.
	ApplyAttendanceDeltas(ctx context.Context, eventID string, deltas map[string]int, attendeeCount int) error
	// SetCounters overwrites every counter with recomputed true counts.
	SetCounters(ctx context.Context, eventID string, going, maybe, notGoing, attendee int) error
}

// AttendanceStore reads and writes per-user RSVP records.
type AttendanceStore interface {
	Find(ctx context.Context, eventID, userID string) (*models.EventAttendance, error)
	Put(ctx context.Context, attendance *models.EventAttendance) error
	Delete(ctx context.Context, id string) error
	// DeleteByEvent removes every attendance record of the event. Used when
	// an event is deleted.
	DeleteByEvent(ctx context.Context, eventID string) error
	// CountByStatuses counts records for the event whose status is any of
	// statuses.
	CountByStatuses(ctx context.Context, eventID string, statuses ...string) (int, error)
}

// ConversationStore reads and writes direct-message threads.
type ConversationStore interface {
	Get(ctx context.Context, id string) (*models.Conversation, error)
	FindByParticipants(ctx context.Context, userA, userB string) (*models.Conversation, error)
	ListByUser(ctx context.Context, userID string) ([]models.Conversation, error)
	Put(ctx context.Context, conversation *models.Conversation) error
	SetLastMessage(ctx context.Context, conversationID, messageID string, at time.Time) error
}

// MessageStore reads and writes direct messages.
type MessageStore interface {
	Get(ctx context.Context, id string) (*models.Message, error)
	Put(ctx context.Context, message *models.Message) error
	// ListByConversation returns one page, newest first, plus the true
	// total.
	ListByConversation(ctx context.Context, conversationID string, page, limit int) ([]models.Message, int, error)
	// CountUnread counts messages in the conversation not yet read by
	// userID, excluding the user's own messages.
	CountUnread(ctx context.Context, conversationID, userID string) (int, error)
	// MarkRead adds userID to the readBy set of every unread message.
	MarkRead(ctx context.Context, conversationID, userID string) error
}
