package services

import (
	"context"
	"time"

	"gathr_server/models"

	"github.com/google/uuid"
)

// fixture bundles the in-memory fakes and seeds documents for service
// tests.
type fixture struct {
	users         *fakeUserStore
	friendships   *fakeFriendshipStore
	memberships   *fakeMembershipStore
	groups        *fakeGroupStore
	posts         *fakePostStore
	personalPosts *fakePersonalPostStore
	comments      *fakeCommentStore
	events        *fakeEventStore
	attendance    *fakeAttendanceStore
	conversations *fakeConversationStore
	messages      *fakeMessageStore

	clock time.Time
}

func newFixture() *fixture {
	return &fixture{
		users:         newFakeUserStore(),
		friendships:   newFakeFriendshipStore(),
		memberships:   newFakeMembershipStore(),
		groups:        newFakeGroupStore(),
		posts:         newFakePostStore(),
		personalPosts: newFakePersonalPostStore(),
		comments:      newFakeCommentStore(),
		events:        newFakeEventStore(),
		attendance:    newFakeAttendanceStore(),
		conversations: newFakeConversationStore(),
		messages:      newFakeMessageStore(),
		clock:         time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so seeded documents have a
// well-defined order.
func (f *fixture) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fixture) addUser(id, name string) models.User {
	user := models.User{ID: id, Name: name, Email: id + "@example.com", CreatedAt: f.tick()}
	f.users.users[id] = user
	return user
}

func (f *fixture) addFriendship(requester, recipient, status string) models.Friendship {
	edge := models.Friendship{
		ID:          uuid.NewString(),
		RequesterID: requester,
		RecipientID: recipient,
		Status:      status,
		CreatedAt:   f.tick(),
		UpdatedAt:   f.clock,
	}
	f.friendships.edges[edge.ID] = edge
	return edge
}

func (f *fixture) addGroup(id, name, creatorID string) models.Group {
	group := models.Group{ID: id, Name: name, CreatorID: creatorID, CreatedAt: f.tick()}
	f.groups.groups[id] = group
	return group
}

func (f *fixture) addMembership(groupID, userID, role string, active bool) models.GroupMembership {
	m := models.GroupMembership{
		ID:       uuid.NewString(),
		GroupID:  groupID,
		UserID:   userID,
		Role:     role,
		IsActive: active,
		JoinedAt: f.tick(),
	}
	f.memberships.memberships[m.ID] = m
	if active {
		group := f.groups.groups[groupID]
		group.MemberCount++
		f.groups.groups[groupID] = group
	}
	return m
}

func (f *fixture) addGroupPost(id, groupID, authorID, content string) models.GroupPost {
	post := models.GroupPost{
		ID:        id,
		GroupID:   groupID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: f.tick(),
	}
	f.posts.posts[id] = post
	return post
}

func (f *fixture) addPersonalPost(id, authorID, targetID, content string) models.PersonalPost {
	post := models.PersonalPost{
		ID:           id,
		AuthorID:     authorID,
		TargetUserID: targetID,
		Content:      content,
		CreatedAt:    f.tick(),
	}
	f.personalPosts.posts[id] = post
	return post
}

func (f *fixture) addEvent(id, groupID, organizerID string, maxAttendees int) models.Event {
	start := f.events.now.Add(24 * time.Hour)
	event := models.Event{
		ID:           id,
		GroupID:      groupID,
		OrganizerID:  organizerID,
		Title:        "Event " + id,
		Description:  "desc",
		StartDate:    start,
		EndDate:      start.Add(2 * time.Hour),
		Location:     "somewhere",
		MaxAttendees: maxAttendees,
		CreatedAt:    f.tick(),
	}
	f.events.events[id] = event
	return event
}

func (f *fixture) feedService() *FeedService {
	return &FeedService{
		Friendships:   f.friendships,
		Memberships:   f.memberships,
		Posts:         f.posts,
		PersonalPosts: f.personalPosts,
		Users:         f.users,
		Groups:        f.groups,
	}
}

func (f *fixture) suggestionService() *SuggestionService {
	return &SuggestionService{Users: f.users, Friendships: f.friendships, Memberships: f.memberships}
}

func (f *fixture) friendshipService() *FriendshipService {
	return &FriendshipService{Friendships: f.friendships, Users: f.users}
}

func (f *fixture) groupService() *GroupService {
	return &GroupService{Groups: f.groups, Memberships: f.memberships, Users: f.users}
}

func (f *fixture) postService() *PostService {
	return &PostService{
		Posts:       f.posts,
		Comments:    f.comments,
		Groups:      f.groups,
		Memberships: f.memberships,
		Users:       f.users,
	}
}

func (f *fixture) personalPostService() *PersonalPostService {
	return &PersonalPostService{PersonalPosts: f.personalPosts, Friendships: f.friendships, Users: f.users}
}

func (f *fixture) eventService() *EventService {
	return &EventService{
		Events:      f.events,
		Attendance:  f.attendance,
		Memberships: f.memberships,
		Groups:      f.groups,
		Users:       f.users,
	}
}

func (f *fixture) messageService() *MessageService {
	return &MessageService{
		Conversations: f.conversations,
		Messages:      f.messages,
		Friendships:   f.friendships,
		Users:         f.users,
	}
}

func (f *fixture) userService() *UserService {
	return &UserService{Users: f.users}
}

func ctx() context.Context { return context.Background() }
