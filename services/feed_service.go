package services

import (
	"context"
	"log/slog"
	"sort"

	"gathr_server/models"
)

// DefaultFeedPageSize is used when the caller does not pass a limit.
const DefaultFeedPageSize = 10

// FeedService merges group posts and personal posts into one ranked,
// paginated timeline for a viewer.
type FeedService struct {
	Friendships   FriendshipStore
	Memberships   MembershipStore
	Posts         PostStore
	PersonalPosts PersonalPostStore
	Users         UserStore
	Groups        GroupStore
	Log           *slog.Logger
}

// GetUnifiedFeed returns one page of the viewer's unified feed plus
// pagination metadata computed from true totals.
//
// Both sources are over-fetched (twice the page size each) because the
// merged order is decided here, not by the store; a window equal to the page
// size could drop items that belong on the requested page after the merge.
// The output order is a deterministic total order: createdAt descending,
// ties broken by id descending.
func (fs *FeedService) GetUnifiedFeed(ctx context.Context, viewerID string, page, limit int) ([]models.FeedItem, models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultFeedPageSize
	}

	edges, err := fs.Friendships.ListByUser(ctx, viewerID)
	if err != nil {
		return nil, models.Pagination{}, InternalError(err, "Internal server error")
	}
	friendIDs := acceptedFriendIDs(edges, viewerID)

	memberships, err := fs.Memberships.ListActiveByUser(ctx, viewerID)
	if err != nil {
		return nil, models.Pagination{}, InternalError(err, "Internal server error")
	}
	groupIDs := make([]string, 0, len(memberships))
	for _, m := range memberships {
		groupIDs = append(groupIDs, m.GroupID)
	}

	window := limit * 2
	groupPosts, err := fs.Posts.ListByGroups(ctx, groupIDs, window)
	if err != nil {
		return nil, models.Pagination{}, InternalError(err, "Internal server error")
	}
	personalPosts, err := fs.PersonalPosts.ListFeedWindow(ctx, viewerID, friendIDs, window)
	if err != nil {
		return nil, models.Pagination{}, InternalError(err, "Internal server error")
	}

	items, err := fs.project(ctx, groupPosts, personalPosts)
	if err != nil {
		return nil, models.Pagination{}, InternalError(err, "Internal server error")
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
	pageItems := pageSlice(items, page, limit)

	groupTotal, err := fs.Posts.CountByGroups(ctx, groupIDs)
	if err != nil {
		return nil, models.Pagination{}, InternalError(err, "Internal server error")
	}
	personalTotal, err := fs.PersonalPosts.CountFeed(ctx, viewerID, friendIDs)
	if err != nil {
		return nil, models.Pagination{}, InternalError(err, "Internal server error")
	}

	pagination := models.NewPagination(page, limit, groupTotal+personalTotal)
	if fs.Log != nil {
		fs.Log.Debug("unified feed assembled",
			"viewer", viewerID, "page", page, "items", len(pageItems), "total", pagination.Total)
	}
	return pageItems, pagination, nil
}

// project converts both candidate windows into the common FeedItem shape,
// resolving authors, groups and target users. Each post id appears at most
// once: a self-post (author == target == viewer) matches a single store
// query branch, and the seen set guards the merge.
func (fs *FeedService) project(ctx context.Context, groupPosts []models.GroupPost, personalPosts []models.PersonalPost) ([]models.FeedItem, error) {
	userIDs := make([]string, 0, len(groupPosts)+2*len(personalPosts))
	for _, p := range groupPosts {
		userIDs = append(userIDs, p.AuthorID)
	}
	for _, p := range personalPosts {
		userIDs = append(userIDs, p.AuthorID, p.TargetUserID)
	}
	users, err := fs.Users.BatchGet(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	groups := make(map[string]models.Group)
	for _, p := range groupPosts {
		if _, ok := groups[p.GroupID]; ok {
			continue
		}
		group, err := fs.Groups.Get(ctx, p.GroupID)
		if err != nil {
			continue
		}
		groups[p.GroupID] = *group
	}

	seen := make(map[string]bool, len(groupPosts)+len(personalPosts))
	items := make([]models.FeedItem, 0, len(groupPosts)+len(personalPosts))
	for _, p := range groupPosts {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		author := users[p.AuthorID]
		item := models.FeedItem{
			ID:           p.ID,
			Type:         models.FeedItemGroup,
			Content:      p.Content,
			Author:       author.Ref(),
			Likes:        p.Likes,
			LikeCount:    p.LikeCount,
			CommentCount: p.CommentCount,
			IsEdited:     p.IsEdited,
			CreatedAt:    p.CreatedAt,
		}
		if group, ok := groups[p.GroupID]; ok {
			ref := group.Ref()
			item.Group = &ref
		}
		items = append(items, item)
	}
	for _, p := range personalPosts {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		author := users[p.AuthorID]
		target := users[p.TargetUserID]
		targetRef := target.Ref()
		items = append(items, models.FeedItem{
			ID:           p.ID,
			Type:         models.FeedItemPersonal,
			Content:      p.Content,
			Author:       author.Ref(),
			TargetUser:   &targetRef,
			Likes:        p.Likes,
			LikeCount:    p.LikeCount,
			CommentCount: p.CommentCount,
			IsEdited:     p.IsEdited,
			CreatedAt:    p.CreatedAt,
		})
	}
	return items, nil
}

// acceptedFriendIDs extracts the peer of every accepted edge touching
// userID.
func acceptedFriendIDs(edges []models.Friendship, userID string) []string {
	var ids []string
	for _, e := range edges {
		if e.Status == models.FriendshipAccepted {
			ids = append(ids, e.OtherUser(userID))
		}
	}
	return ids
}
