package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"gathr_server/models"
)

// In-memory store fakes. They mirror the Dynamo-backed implementations'
// contracts, including ErrItemNotFound on misses and the documented sort
// orders, so the services under test cannot tell them apart.

type fakeUserStore struct {
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{}}
}

func (s *fakeUserStore) Get(_ context.Context, id string) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &user, nil
}

func (s *fakeUserStore) BatchGet(_ context.Context, ids []string) (map[string]models.User, error) {
	out := map[string]models.User{}
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			out[id] = user
		}
	}
	return out, nil
}

func (s *fakeUserStore) Put(_ context.Context, user *models.User) error {
	s.users[user.ID] = *user
	return nil
}

func (s *fakeUserStore) ListRecent(_ context.Context, exclude map[string]bool, limit int) ([]models.User, error) {
	var out []models.User
	for _, user := range s.users {
		if !exclude[user.ID] {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeUserStore) Search(_ context.Context, query, excludeID string, limit int) ([]models.User, error) {
	q := strings.ToLower(query)
	var out []models.User
	for _, user := range s.users {
		if user.ID == excludeID {
			continue
		}
		if strings.Contains(strings.ToLower(user.Name), q) || strings.HasPrefix(strings.ToLower(user.Email), q) {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeFriendshipStore struct {
	edges map[string]models.Friendship
}

func newFakeFriendshipStore() *fakeFriendshipStore {
	return &fakeFriendshipStore{edges: map[string]models.Friendship{}}
}

func (s *fakeFriendshipStore) Get(_ context.Context, id string) (*models.Friendship, error) {
	edge, ok := s.edges[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &edge, nil
}

func (s *fakeFriendshipStore) FindByPair(_ context.Context, userA, userB string) (*models.Friendship, error) {
	for _, edge := range s.edges {
		if (edge.RequesterID == userA && edge.RecipientID == userB) ||
			(edge.RequesterID == userB && edge.RecipientID == userA) {
			e := edge
			return &e, nil
		}
	}
	return nil, ErrItemNotFound
}

func (s *fakeFriendshipStore) ListByUser(_ context.Context, userID string) ([]models.Friendship, error) {
	var out []models.Friendship
	for _, edge := range s.edges {
		if edge.Involves(userID) {
			out = append(out, edge)
		}
	}
	sortFriendships(out)
	return out, nil
}

func (s *fakeFriendshipStore) ListPendingForRecipient(_ context.Context, userID string) ([]models.Friendship, error) {
	var out []models.Friendship
	for _, edge := range s.edges {
		if edge.RecipientID == userID && edge.Status == models.FriendshipPending {
			out = append(out, edge)
		}
	}
	sortFriendships(out)
	return out, nil
}

func (s *fakeFriendshipStore) ListAcceptedByUsers(_ context.Context, userIDs []string) ([]models.Friendship, error) {
	ids := map[string]bool{}
	for _, id := range userIDs {
		ids[id] = true
	}
	var out []models.Friendship
	for _, edge := range s.edges {
		if edge.Status == models.FriendshipAccepted && (ids[edge.RequesterID] || ids[edge.RecipientID]) {
			out = append(out, edge)
		}
	}
	sortFriendships(out)
	return out, nil
}

func (s *fakeFriendshipStore) Put(_ context.Context, friendship *models.Friendship) error {
	s.edges[friendship.ID] = *friendship
	return nil
}

func (s *fakeFriendshipStore) Delete(_ context.Context, id string) error {
	delete(s.edges, id)
	return nil
}

func sortFriendships(edges []models.Friendship) {
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })
}

type fakeMembershipStore struct {
	memberships map[string]models.GroupMembership
}

func newFakeMembershipStore() *fakeMembershipStore {
	return &fakeMembershipStore{memberships: map[string]models.GroupMembership{}}
}

func (s *fakeMembershipStore) Find(_ context.Context, groupID, userID string) (*models.GroupMembership, error) {
	for _, m := range s.memberships {
		if m.GroupID == groupID && m.UserID == userID {
			mm := m
			return &mm, nil
		}
	}
	return nil, ErrItemNotFound
}

func (s *fakeMembershipStore) ListActiveByUser(_ context.Context, userID string) ([]models.GroupMembership, error) {
	var out []models.GroupMembership
	for _, m := range s.memberships {
		if m.UserID == userID && m.IsActive {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeMembershipStore) ListActiveByGroups(_ context.Context, groupIDs []string) ([]models.GroupMembership, error) {
	ids := map[string]bool{}
	for _, id := range groupIDs {
		ids[id] = true
	}
	var out []models.GroupMembership
	for _, m := range s.memberships {
		if ids[m.GroupID] && m.IsActive {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeMembershipStore) CountActiveByGroup(_ context.Context, groupID string) (int, error) {
	count := 0
	for _, m := range s.memberships {
		if m.GroupID == groupID && m.IsActive {
			count++
		}
	}
	return count, nil
}

func (s *fakeMembershipStore) Put(_ context.Context, membership *models.GroupMembership) error {
	s.memberships[membership.ID] = *membership
	return nil
}

func (s *fakeMembershipStore) DeleteByGroup(_ context.Context, groupID string) error {
	for id, m := range s.memberships {
		if m.GroupID == groupID {
			delete(s.memberships, id)
		}
	}
	return nil
}

type fakeGroupStore struct {
	groups map[string]models.Group
}

func newFakeGroupStore() *fakeGroupStore {
	return &fakeGroupStore{groups: map[string]models.Group{}}
}

func (s *fakeGroupStore) Get(_ context.Context, id string) (*models.Group, error) {
	group, ok := s.groups[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &group, nil
}

func (s *fakeGroupStore) Put(_ context.Context, group *models.Group) error {
	s.groups[group.ID] = *group
	return nil
}

func (s *fakeGroupStore) Delete(_ context.Context, id string) error {
	delete(s.groups, id)
	return nil
}

func (s *fakeGroupStore) List(_ context.Context, limit int) ([]models.Group, error) {
	var out []models.Group
	for _, group := range s.groups {
		out = append(out, group)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeGroupStore) AddMemberCount(_ context.Context, groupID string, delta int) error {
	group, ok := s.groups[groupID]
	if !ok {
		return ErrItemNotFound
	}
	group.MemberCount += delta
	s.groups[groupID] = group
	return nil
}

func (s *fakeGroupStore) SetMemberCount(_ context.Context, groupID string, count int) error {
	group, ok := s.groups[groupID]
	if !ok {
		return ErrItemNotFound
	}
	group.MemberCount = count
	s.groups[groupID] = group
	return nil
}

type fakePostStore struct {
	posts map[string]models.GroupPost
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{posts: map[string]models.GroupPost{}}
}

func (s *fakePostStore) Get(_ context.Context, id string) (*models.GroupPost, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &post, nil
}

func (s *fakePostStore) Put(_ context.Context, post *models.GroupPost) error {
	s.posts[post.ID] = *post
	return nil
}

func (s *fakePostStore) Delete(_ context.Context, id string) error {
	delete(s.posts, id)
	return nil
}

func (s *fakePostStore) ListByGroup(_ context.Context, groupID string, page, limit int) ([]models.GroupPost, int, error) {
	var out []models.GroupPost
	for _, post := range s.posts {
		if post.GroupID == groupID {
			out = append(out, post)
		}
	}
	sortGroupPostsNewestFirst(out)
	return pageSlice(out, page, limit), len(out), nil
}

func (s *fakePostStore) ListByGroups(_ context.Context, groupIDs []string, limit int) ([]models.GroupPost, error) {
	ids := map[string]bool{}
	for _, id := range groupIDs {
		ids[id] = true
	}
	var out []models.GroupPost
	for _, post := range s.posts {
		if ids[post.GroupID] {
			out = append(out, post)
		}
	}
	sortGroupPostsNewestFirst(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakePostStore) CountByGroups(_ context.Context, groupIDs []string) (int, error) {
	ids := map[string]bool{}
	for _, id := range groupIDs {
		ids[id] = true
	}
	count := 0
	for _, post := range s.posts {
		if ids[post.GroupID] {
			count++
		}
	}
	return count, nil
}

func (s *fakePostStore) SetLikes(_ context.Context, id string, likes []string) error {
	post, ok := s.posts[id]
	if !ok {
		return ErrItemNotFound
	}
	post.Likes = likes
	post.LikeCount = len(likes)
	s.posts[id] = post
	return nil
}

func (s *fakePostStore) AddCommentCount(_ context.Context, id string, delta int) error {
	post, ok := s.posts[id]
	if !ok {
		return ErrItemNotFound
	}
	post.CommentCount += delta
	s.posts[id] = post
	return nil
}

type fakePersonalPostStore struct {
	posts map[string]models.PersonalPost
}

func newFakePersonalPostStore() *fakePersonalPostStore {
	return &fakePersonalPostStore{posts: map[string]models.PersonalPost{}}
}

func (s *fakePersonalPostStore) Get(_ context.Context, id string) (*models.PersonalPost, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &post, nil
}

func (s *fakePersonalPostStore) Put(_ context.Context, post *models.PersonalPost) error {
	s.posts[post.ID] = *post
	return nil
}

// feedVisible mirrors the storage filter: a post is in the viewer's feed
// window when it sits on the viewer's own feed, or on a friend's feed and
// was authored by a friend or the viewer. The branches are mutually
// exclusive per post.
func feedVisible(post models.PersonalPost, viewerID string, friendIDs []string) bool {
	if post.TargetUserID == viewerID {
		return true
	}
	friends := map[string]bool{}
	for _, id := range friendIDs {
		friends[id] = true
	}
	return friends[post.TargetUserID] && (friends[post.AuthorID] || post.AuthorID == viewerID)
}

func (s *fakePersonalPostStore) ListFeedWindow(_ context.Context, viewerID string, friendIDs []string, limit int) ([]models.PersonalPost, error) {
	var out []models.PersonalPost
	for _, post := range s.posts {
		if feedVisible(post, viewerID, friendIDs) {
			out = append(out, post)
		}
	}
	sortPersonalPostsNewestFirst(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakePersonalPostStore) CountFeed(_ context.Context, viewerID string, friendIDs []string) (int, error) {
	count := 0
	for _, post := range s.posts {
		if feedVisible(post, viewerID, friendIDs) {
			count++
		}
	}
	return count, nil
}

func (s *fakePersonalPostStore) ListByTarget(_ context.Context, targetID string, page, limit int) ([]models.PersonalPost, int, error) {
	var out []models.PersonalPost
	for _, post := range s.posts {
		if post.TargetUserID == targetID {
			out = append(out, post)
		}
	}
	sortPersonalPostsNewestFirst(out)
	if limit <= 0 {
		return out, len(out), nil
	}
	return pageSlice(out, page, limit), len(out), nil
}

func (s *fakePersonalPostStore) SetLikes(_ context.Context, id string, likes []string) error {
	post, ok := s.posts[id]
	if !ok {
		return ErrItemNotFound
	}
	post.Likes = likes
	post.LikeCount = len(likes)
	s.posts[id] = post
	return nil
}

type fakeCommentStore struct {
	comments map[string]models.Comment
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{comments: map[string]models.Comment{}}
}

func (s *fakeCommentStore) Get(_ context.Context, id string) (*models.Comment, error) {
	comment, ok := s.comments[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &comment, nil
}

func (s *fakeCommentStore) Put(_ context.Context, comment *models.Comment) error {
	s.comments[comment.ID] = *comment
	return nil
}

func (s *fakeCommentStore) ListTopLevelByPost(_ context.Context, postID string, page, limit int) ([]models.Comment, int, error) {
	var out []models.Comment
	for _, comment := range s.comments {
		if comment.PostID == postID && comment.ParentCommentID == "" {
			out = append(out, comment)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return pageSlice(out, page, limit), len(out), nil
}

type fakeEventStore struct {
	events map[string]models.Event
	now    time.Time
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: map[string]models.Event{}, now: time.Now().UTC()}
}

func (s *fakeEventStore) Get(_ context.Context, id string) (*models.Event, error) {
	event, ok := s.events[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &event, nil
}

func (s *fakeEventStore) Put(_ context.Context, event *models.Event) error {
	s.events[event.ID] = *event
	return nil
}

func (s *fakeEventStore) Delete(_ context.Context, id string) error {
	delete(s.events, id)
	return nil
}

func (s *fakeEventStore) ListByGroups(_ context.Context, groupIDs []string, upcomingOnly bool, page, limit int) ([]models.Event, int, error) {
	ids := map[string]bool{}
	for _, id := range groupIDs {
		ids[id] = true
	}
	var out []models.Event
	for _, event := range s.events {
		if !ids[event.GroupID] {
			continue
		}
		if upcomingOnly && event.StartDate.Before(s.now) {
			continue
		}
		out = append(out, event)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	return pageSlice(out, page, limit), len(out), nil
}

func (s *fakeEventStore) ApplyAttendanceDeltas(_ context.Context, eventID string, deltas map[string]int, attendeeCount int) error {
	event, ok := s.events[eventID]
	if !ok {
		return ErrItemNotFound
	}
	for field, delta := range deltas {
		switch field {
		case "goingCount":
			event.GoingCount += delta
		case "maybeCount":
			event.MaybeCount += delta
		case "notGoingCount":
			event.NotGoingCount += delta
		}
	}
	event.AttendeeCount = attendeeCount
	s.events[eventID] = event
	return nil
}

func (s *fakeEventStore) SetCounters(_ context.Context, eventID string, going, maybe, notGoing, attendee int) error {
	event, ok := s.events[eventID]
	if !ok {
		return ErrItemNotFound
	}
	event.GoingCount = going
	event.MaybeCount = maybe
	event.NotGoingCount = notGoing
	event.AttendeeCount = attendee
	s.events[eventID] = event
	return nil
}

type fakeAttendanceStore struct {
	records map[string]models.EventAttendance
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{records: map[string]models.EventAttendance{}}
}

func (s *fakeAttendanceStore) Find(_ context.Context, eventID, userID string) (*models.EventAttendance, error) {
	for _, record := range s.records {
		if record.EventID == eventID && record.UserID == userID {
			r := record
			return &r, nil
		}
	}
	return nil, ErrItemNotFound
}

func (s *fakeAttendanceStore) Put(_ context.Context, attendance *models.EventAttendance) error {
	s.records[attendance.ID] = *attendance
	return nil
}

func (s *fakeAttendanceStore) Delete(_ context.Context, id string) error {
	delete(s.records, id)
	return nil
}

func (s *fakeAttendanceStore) DeleteByEvent(_ context.Context, eventID string) error {
	for id, record := range s.records {
		if record.EventID == eventID {
			delete(s.records, id)
		}
	}
	return nil
}

func (s *fakeAttendanceStore) CountByStatuses(_ context.Context, eventID string, statuses ...string) (int, error) {
	count := 0
	for _, record := range s.records {
		if record.EventID != eventID {
			continue
		}
		for _, status := range statuses {
			if record.Status == status {
				count++
				break
			}
		}
	}
	return count, nil
}

type fakeConversationStore struct {
	conversations map[string]models.Conversation
}

func newFakeConversationStore() *fakeConversationStore {
	return &fakeConversationStore{conversations: map[string]models.Conversation{}}
}

func (s *fakeConversationStore) Get(_ context.Context, id string) (*models.Conversation, error) {
	conversation, ok := s.conversations[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &conversation, nil
}

func (s *fakeConversationStore) FindByParticipants(_ context.Context, userA, userB string) (*models.Conversation, error) {
	for _, c := range s.conversations {
		if c.HasParticipant(userA) && c.HasParticipant(userB) {
			cc := c
			return &cc, nil
		}
	}
	return nil, ErrItemNotFound
}

func (s *fakeConversationStore) ListByUser(_ context.Context, userID string) ([]models.Conversation, error) {
	var out []models.Conversation
	for _, c := range s.conversations {
		if c.HasParticipant(userID) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastActivity.After(out[j].LastActivity) })
	return out, nil
}

func (s *fakeConversationStore) Put(_ context.Context, conversation *models.Conversation) error {
	s.conversations[conversation.ID] = *conversation
	return nil
}

func (s *fakeConversationStore) SetLastMessage(_ context.Context, conversationID, messageID string, at time.Time) error {
	c, ok := s.conversations[conversationID]
	if !ok {
		return ErrItemNotFound
	}
	c.LastMessageID = messageID
	c.LastActivity = at
	s.conversations[conversationID] = c
	return nil
}

type fakeMessageStore struct {
	messages map[string]models.Message
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{messages: map[string]models.Message{}}
}

func (s *fakeMessageStore) Get(_ context.Context, id string) (*models.Message, error) {
	message, ok := s.messages[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &message, nil
}

func (s *fakeMessageStore) Put(_ context.Context, message *models.Message) error {
	s.messages[message.ID] = *message
	return nil
}

func (s *fakeMessageStore) ListByConversation(_ context.Context, conversationID string, page, limit int) ([]models.Message, int, error) {
	var out []models.Message
	for _, message := range s.messages {
		if message.ConversationID == conversationID {
			out = append(out, message)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return pageSlice(out, page, limit), len(out), nil
}

func (s *fakeMessageStore) CountUnread(_ context.Context, conversationID, userID string) (int, error) {
	count := 0
	for _, message := range s.messages {
		if message.ConversationID == conversationID && message.SenderID != userID && !message.ReadByUser(userID) {
			count++
		}
	}
	return count, nil
}

func (s *fakeMessageStore) MarkRead(_ context.Context, conversationID, userID string) error {
	for id, message := range s.messages {
		if message.ConversationID != conversationID || message.SenderID == userID || message.ReadByUser(userID) {
			continue
		}
		message.ReadBy = append(message.ReadBy, userID)
		s.messages[id] = message
	}
	return nil
}
