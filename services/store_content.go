package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"gathr_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type dynamoPostStore struct {
	ds *DynamoService
}

func (s *dynamoPostStore) Get(ctx context.Context, id string) (*models.GroupPost, error) {
	var post models.GroupPost
	if err := s.ds.GetItem(ctx, models.GroupPostsTable, idKey(id), &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *dynamoPostStore) Put(ctx context.Context, post *models.GroupPost) error {
	return s.ds.PutItem(ctx, models.GroupPostsTable, post)
}

func (s *dynamoPostStore) Delete(ctx context.Context, id string) error {
	return s.ds.DeleteItem(ctx, models.GroupPostsTable, idKey(id))
}

func (s *dynamoPostStore) ListByGroup(ctx context.Context, groupID string, page, limit int) ([]models.GroupPost, int, error) {
	filter := "#g = :g"
	values := map[string]types.AttributeValue{
		":g": &types.AttributeValueMemberS{Value: groupID},
	}
	names := map[string]string{"#g": "groupId"}
	var posts []models.GroupPost
	if err := s.ds.ScanItems(ctx, models.GroupPostsTable, filter, values, names, &posts); err != nil {
		return nil, 0, err
	}
	sortGroupPostsNewestFirst(posts)
	return pageSlice(posts, page, limit), len(posts), nil
}

func (s *dynamoPostStore) ListByGroups(ctx context.Context, groupIDs []string, limit int) ([]models.GroupPost, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	values := map[string]types.AttributeValue{}
	names := map[string]string{"#g": "groupId"}
	filter := inClause("g", "g", groupIDs, values)
	var posts []models.GroupPost
	if err := s.ds.ScanItems(ctx, models.GroupPostsTable, filter, values, names, &posts); err != nil {
		return nil, err
	}
	sortGroupPostsNewestFirst(posts)
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (s *dynamoPostStore) CountByGroups(ctx context.Context, groupIDs []string) (int, error) {
	if len(groupIDs) == 0 {
		return 0, nil
	}
	values := map[string]types.AttributeValue{}
	names := map[string]string{"#g": "groupId"}
	filter := inClause("g", "g", groupIDs, values)
	return s.ds.CountItems(ctx, models.GroupPostsTable, filter, values, names)
}

func (s *dynamoPostStore) SetLikes(ctx context.Context, id string, likes []string) error {
	return setLikesAndCount(ctx, s.ds, models.GroupPostsTable, id, likes)
}

func (s *dynamoPostStore) AddCommentCount(ctx context.Context, id string, delta int) error {
	values := map[string]types.AttributeValue{
		":d": &types.AttributeValueMemberN{Value: strconv.Itoa(delta)},
	}
	return s.ds.UpdateItem(ctx, models.GroupPostsTable, idKey(id), "ADD commentCount :d", values, nil)
}

func sortGroupPostsNewestFirst(posts []models.GroupPost) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
}

// setLikesAndCount writes the likes set together with likeCount = len(likes)
// in one document update, so the derived counter can never drift from the
// set it is derived from.
func setLikesAndCount(ctx context.Context, ds *DynamoService, table, id string, likes []string) error {
	if likes == nil {
		likes = []string{}
	}
	likesAttr, err := attributevalue.Marshal(likes)
	if err != nil {
		return fmt.Errorf("failed to marshal likes: %w", err)
	}
	values := map[string]types.AttributeValue{
		":l": likesAttr,
		":n": &types.AttributeValueMemberN{Value: strconv.Itoa(len(likes))},
	}
	return ds.UpdateItem(ctx, table, idKey(id), "SET likes = :l, likeCount = :n", values, nil)
}

type dynamoPersonalPostStore struct {
	ds *DynamoService
}

func (s *dynamoPersonalPostStore) Get(ctx context.Context, id string) (*models.PersonalPost, error) {
	var post models.PersonalPost
	if err := s.ds.GetItem(ctx, models.PersonalPostsTable, idKey(id), &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *dynamoPersonalPostStore) Put(ctx context.Context, post *models.PersonalPost) error {
	return s.ds.PutItem(ctx, models.PersonalPostsTable, post)
}

// feedFilter builds the visibility filter for a viewer's unified feed:
// posts on the viewer's own feed, or posts on an accepted friend's feed
// written by a friend or by the viewer. The two branches are mutually
// exclusive for any document because a post's target is either the viewer
// or not.
func feedFilter(viewerID string, friendIDs []string) (string, map[string]types.AttributeValue, map[string]string) {
	values := map[string]types.AttributeValue{
		":viewer": &types.AttributeValueMemberS{Value: viewerID},
	}
	names := map[string]string{"#t": "targetUserId", "#a": "authorId"}
	filter := "#t = :viewer"
	if len(friendIDs) > 0 {
		targetIn := inClause("t", "t", friendIDs, values)
		authorIn := inClause("a", "f", friendIDs, values)
		filter = fmt.Sprintf("#t = :viewer OR (%s AND (%s OR #a = :viewer))", targetIn, authorIn)
	}
	return filter, values, names
}

func (s *dynamoPersonalPostStore) ListFeedWindow(ctx context.Context, viewerID string, friendIDs []string, limit int) ([]models.PersonalPost, error) {
	filter, values, names := feedFilter(viewerID, friendIDs)
	var posts []models.PersonalPost
	if err := s.ds.ScanItems(ctx, models.PersonalPostsTable, filter, values, names, &posts); err != nil {
		return nil, err
	}
	sortPersonalPostsNewestFirst(posts)
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func (s *dynamoPersonalPostStore) CountFeed(ctx context.Context, viewerID string, friendIDs []string) (int, error) {
	filter, values, names := feedFilter(viewerID, friendIDs)
	return s.ds.CountItems(ctx, models.PersonalPostsTable, filter, values, names)
}

func (s *dynamoPersonalPostStore) ListByTarget(ctx context.Context, targetID string, page, limit int) ([]models.PersonalPost, int, error) {
	filter := "#t = :t"
	values := map[string]types.AttributeValue{
		":t": &types.AttributeValueMemberS{Value: targetID},
	}
	names := map[string]string{"#t": "targetUserId"}
	var posts []models.PersonalPost
	if err := s.ds.ScanItems(ctx, models.PersonalPostsTable, filter, values, names, &posts); err != nil {
		return nil, 0, err
	}
	sortPersonalPostsNewestFirst(posts)
	if limit <= 0 {
		return posts, len(posts), nil
	}
	return pageSlice(posts, page, limit), len(posts), nil
}

func (s *dynamoPersonalPostStore) SetLikes(ctx context.Context, id string, likes []string) error {
	return setLikesAndCount(ctx, s.ds, models.PersonalPostsTable, id, likes)
}

func sortPersonalPostsNewestFirst(posts []models.PersonalPost) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
}

type dynamoCommentStore struct {
	ds *DynamoService
}

func (s *dynamoCommentStore) Get(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := s.ds.GetItem(ctx, models.CommentsTable, idKey(id), &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *dynamoCommentStore) Put(ctx context.Context, comment *models.Comment) error {
	return s.ds.PutItem(ctx, models.CommentsTable, comment)
}

func (s *dynamoCommentStore) ListTopLevelByPost(ctx context.Context, postID string, page, limit int) ([]models.Comment, int, error) {
	filter := "#p = :p AND attribute_not_exists(parentCommentId)"
	values := map[string]types.AttributeValue{
		":p": &types.AttributeValueMemberS{Value: postID},
	}
	names := map[string]string{"#p": "postId"}
	var comments []models.Comment
	if err := s.ds.ScanItems(ctx, models.CommentsTable, filter, values, names, &comments); err != nil {
		return nil, 0, err
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
	return pageSlice(comments, page, limit), len(comments), nil
}
