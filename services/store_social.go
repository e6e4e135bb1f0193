package services

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"gathr_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type dynamoUserStore struct {
	ds *DynamoService
}

func (s *dynamoUserStore) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.ds.GetItem(ctx, models.UsersTable, idKey(id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *dynamoUserStore) BatchGet(ctx context.Context, ids []string) (map[string]models.User, error) {
	users := make(map[string]models.User, len(ids))
	for _, id := range ids {
		if _, ok := users[id]; ok {
			continue
		}
		user, err := s.Get(ctx, id)
		if errors.Is(err, ErrItemNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		users[id] = *user
	}
	return users, nil
}

func (s *dynamoUserStore) Put(ctx context.Context, user *models.User) error {
	return s.ds.PutItem(ctx, models.UsersTable, user)
}

func (s *dynamoUserStore) ListRecent(ctx context.Context, exclude map[string]bool, limit int) ([]models.User, error) {
	var all []models.User
	if err := s.ds.ScanItems(ctx, models.UsersTable, "", nil, nil, &all); err != nil {
		return nil, err
	}
	users := all[:0]
	for _, u := range all {
		if !exclude[u.ID] {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		}
		return users[i].ID > users[j].ID
	})
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (s *dynamoUserStore) Search(ctx context.Context, query, excludeID string, limit int) ([]models.User, error) {
	var all []models.User
	if err := s.ds.ScanItems(ctx, models.UsersTable, "", nil, nil, &all); err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var matches []models.User
	for _, u := range all {
		if u.ID == excludeID {
			continue
		}
		if strings.Contains(strings.ToLower(u.Name), q) || strings.HasPrefix(strings.ToLower(u.Email), q) {
			matches = append(matches, u)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

type dynamoFriendshipStore struct {
	ds *DynamoService
}

func (s *dynamoFriendshipStore) Get(ctx context.Context, id string) (*models.Friendship, error) {
	var friendship models.Friendship
	if err := s.ds.GetItem(ctx, models.FriendshipsTable, idKey(id), &friendship); err != nil {
		return nil, err
	}
	return &friendship, nil
}

func (s *dynamoFriendshipStore) FindByPair(ctx context.Context, userA, userB string) (*models.Friendship, error) {
	filter := "(#req = :a AND #rec = :b) OR (#req = :b AND #rec = :a)"
	values := map[string]types.AttributeValue{
		":a": &types.AttributeValueMemberS{Value: userA},
		":b": &types.AttributeValueMemberS{Value: userB},
	}
	names := map[string]string{"#req": "requesterId", "#rec": "recipientId"}
	var edges []models.Friendship
	if err := s.ds.ScanItems(ctx, models.FriendshipsTable, filter, values, names, &edges); err != nil {
		return nil, err
	}
	if len(edges) == 0 {
		return nil, ErrItemNotFound
	}
	return &edges[0], nil
}

func (s *dynamoFriendshipStore) ListByUser(ctx context.Context, userID string) ([]models.Friendship, error) {
	filter := "#req = :u OR #rec = :u"
	values := map[string]types.AttributeValue{
		":u": &types.AttributeValueMemberS{Value: userID},
	}
	names := map[string]string{"#req": "requesterId", "#rec": "recipientId"}
	var edges []models.Friendship
	if err := s.ds.ScanItems(ctx, models.FriendshipsTable, filter, values, names, &edges); err != nil {
		return nil, err
	}
	return edges, nil
}

func (s *dynamoFriendshipStore) ListPendingForRecipient(ctx context.Context, userID string) ([]models.Friendship, error) {
	filter := "#rec = :u AND #s = :pending"
	values := map[string]types.AttributeValue{
		":u":       &types.AttributeValueMemberS{Value: userID},
		":pending": &types.AttributeValueMemberS{Value: models.FriendshipPending},
	}
	names := map[string]string{"#rec": "recipientId", "#s": "status"}
	var edges []models.Friendship
	if err := s.ds.ScanItems(ctx, models.FriendshipsTable, filter, values, names, &edges); err != nil {
		return nil, err
	}
	return edges, nil
}

func (s *dynamoFriendshipStore) ListAcceptedByUsers(ctx context.Context, userIDs []string) ([]models.Friendship, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	values := map[string]types.AttributeValue{
		":accepted": &types.AttributeValueMemberS{Value: models.FriendshipAccepted},
	}
	names := map[string]string{"#req": "requesterId", "#rec": "recipientId", "#s": "status"}
	reqIn := inClause("req", "q", userIDs, values)
	recIn := inClause("rec", "r", userIDs, values)
	filter := "(" + reqIn + " OR " + recIn + ") AND #s = :accepted"
	var edges []models.Friendship
	if err := s.ds.ScanItems(ctx, models.FriendshipsTable, filter, values, names, &edges); err != nil {
		return nil, err
	}
	return edges, nil
}

func (s *dynamoFriendshipStore) Put(ctx context.Context, friendship *models.Friendship) error {
	return s.ds.PutItem(ctx, models.FriendshipsTable, friendship)
}

func (s *dynamoFriendshipStore) Delete(ctx context.Context, id string) error {
	return s.ds.DeleteItem(ctx, models.FriendshipsTable, idKey(id))
}

type dynamoMembershipStore struct {
	ds *DynamoService
}

func (s *dynamoMembershipStore) Find(ctx context.Context, groupID, userID string) (*models.GroupMembership, error) {
	filter := "#g = :g AND #u = :u"
	values := map[string]types.AttributeValue{
		":g": &types.AttributeValueMemberS{Value: groupID},
		":u": &types.AttributeValueMemberS{Value: userID},
	}
	names := map[string]string{"#g": "groupId", "#u": "userId"}
	var memberships []models.GroupMembership
	if err := s.ds.ScanItems(ctx, models.GroupMembershipsTable, filter, values, names, &memberships); err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, ErrItemNotFound
	}
	return &memberships[0], nil
}

func (s *dynamoMembershipStore) ListActiveByUser(ctx context.Context, userID string) ([]models.GroupMembership, error) {
	filter := "#u = :u AND #a = :true"
	values := map[string]types.AttributeValue{
		":u":    &types.AttributeValueMemberS{Value: userID},
		":true": &types.AttributeValueMemberBOOL{Value: true},
	}
	names := map[string]string{"#u": "userId", "#a": "isActive"}
	var memberships []models.GroupMembership
	if err := s.ds.ScanItems(ctx, models.GroupMembershipsTable, filter, values, names, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

func (s *dynamoMembershipStore) ListActiveByGroups(ctx context.Context, groupIDs []string) ([]models.GroupMembership, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	values := map[string]types.AttributeValue{
		":true": &types.AttributeValueMemberBOOL{Value: true},
	}
	names := map[string]string{"#g": "groupId", "#a": "isActive"}
	filter := inClause("g", "g", groupIDs, values) + " AND #a = :true"
	var memberships []models.GroupMembership
	if err := s.ds.ScanItems(ctx, models.GroupMembershipsTable, filter, values, names, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

func (s *dynamoMembershipStore) CountActiveByGroup(ctx context.Context, groupID string) (int, error) {
	filter := "#g = :g AND #a = :true"
	values := map[string]types.AttributeValue{
		":g":    &types.AttributeValueMemberS{Value: groupID},
		":true": &types.AttributeValueMemberBOOL{Value: true},
	}
	names := map[string]string{"#g": "groupId", "#a": "isActive"}
	return s.ds.CountItems(ctx, models.GroupMembershipsTable, filter, values, names)
}

func (s *dynamoMembershipStore) Put(ctx context.Context, membership *models.GroupMembership) error {
	return s.ds.PutItem(ctx, models.GroupMembershipsTable, membership)
}

func (s *dynamoMembershipStore) DeleteByGroup(ctx context.Context, groupID string) error {
	filter := "#g = :g"
	values := map[string]types.AttributeValue{
		":g": &types.AttributeValueMemberS{Value: groupID},
	}
	names := map[string]string{"#g": "groupId"}
	var memberships []models.GroupMembership
	if err := s.ds.ScanItems(ctx, models.GroupMembershipsTable, filter, values, names, &memberships); err != nil {
		return err
	}
	for _, m := range memberships {
		if err := s.ds.DeleteItem(ctx, models.GroupMembershipsTable, idKey(m.ID)); err != nil {
			return err
		}
	}
	return nil
}

type dynamoGroupStore struct {
	ds *DynamoService
}

func (s *dynamoGroupStore) Get(ctx context.Context, id string) (*models.Group, error) {
	var group models.Group
	if err := s.ds.GetItem(ctx, models.GroupsTable, idKey(id), &group); err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *dynamoGroupStore) Put(ctx context.Context, group *models.Group) error {
	return s.ds.PutItem(ctx, models.GroupsTable, group)
}

func (s *dynamoGroupStore) Delete(ctx context.Context, id string) error {
	return s.ds.DeleteItem(ctx, models.GroupsTable, idKey(id))
}

func (s *dynamoGroupStore) List(ctx context.Context, limit int) ([]models.Group, error) {
	var groups []models.Group
	if err := s.ds.ScanItems(ctx, models.GroupsTable, "", nil, nil, &groups); err != nil {
		return nil, err
	}
	sort.Slice(groups, func(i, j int) bool {
		if !groups[i].CreatedAt.Equal(groups[j].CreatedAt) {
			return groups[i].CreatedAt.After(groups[j].CreatedAt)
		}
		return groups[i].ID > groups[j].ID
	})
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups, nil
}

func (s *dynamoGroupStore) AddMemberCount(ctx context.Context, groupID string, delta int) error {
	values := map[string]types.AttributeValue{
		":d": &types.AttributeValueMemberN{Value: strconv.Itoa(delta)},
	}
	return s.ds.UpdateItem(ctx, models.GroupsTable, idKey(groupID), "ADD memberCount :d", values, nil)
}

func (s *dynamoGroupStore) SetMemberCount(ctx context.Context, groupID string, count int) error {
	values := map[string]types.AttributeValue{
		":n": &types.AttributeValueMemberN{Value: strconv.Itoa(count)},
	}
	return s.ds.UpdateItem(ctx, models.GroupsTable, idKey(groupID), "SET memberCount = :n", values, nil)
}
