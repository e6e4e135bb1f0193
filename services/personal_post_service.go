package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gathr_server/models"

	"github.com/google/uuid"
)

// PersonalPostService owns posts on personal feeds. Writing to someone
// else's feed requires an accepted friendship; reading a feed is limited to
// the feed owner, their accepted friends, and — for posts they authored —
// the author.
type PersonalPostService struct {
	PersonalPosts PersonalPostStore
	Friendships   FriendshipStore
	Users         UserStore
	Log           *slog.Logger
}

// CreatePersonalPost stores a post on targetUserID's feed.
func (ps *PersonalPostService) CreatePersonalPost(ctx context.Context, authorID, targetUserID, content string) (*models.PersonalPost, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, InvalidInputError("Post content is required")
	}
	if targetUserID == "" {
		targetUserID = authorID
	}
	if _, err := ps.Users.Get(ctx, targetUserID); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, NotFoundError("User not found")
		}
		return nil, InternalError(err, "Internal server error")
	}
	if targetUserID != authorID {
		if err := ps.requireAcceptedFriendship(ctx, authorID, targetUserID); err != nil {
			return nil, err
		}
	}
	post := &models.PersonalPost{
		ID:           uuid.NewString(),
		AuthorID:     authorID,
		TargetUserID: targetUserID,
		Content:      content,
		Likes:        []string{},
		CreatedAt:    time.Now().UTC(),
	}
	if err := ps.PersonalPosts.Put(ctx, post); err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	if ps.Log != nil {
		ps.Log.Info("personal post created", "post", post.ID, "author", authorID, "target", targetUserID)
	}
	return post, nil
}

// ListProfileFeed returns one page of targetUserID's personal feed. The
// feed owner and their accepted friends see every post; any other viewer
// sees only the posts they authored themselves.
func (ps *PersonalPostService) ListProfileFeed(ctx context.Context, viewerID, targetUserID string, page, limit int) ([]models.PersonalPostView, models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultFeedPageSize
	}
	if _, err := ps.Users.Get(ctx, targetUserID); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, models.Pagination{}, NotFoundError("User not found")
		}
		return nil, models.Pagination{}, InternalError(err, "Internal server error")
	}

	fullAccess := viewerID == targetUserID
	if !fullAccess {
		err := ps.requireAcceptedFriendship(ctx, viewerID, targetUserID)
		if err == nil {
			fullAccess = true
		} else if KindOf(err) == KindInternal {
			return nil, models.Pagination{}, err
		}
	}

	if fullAccess {
		posts, total, err := ps.PersonalPosts.ListByTarget(ctx, targetUserID, page, limit)
		if err != nil {
			return nil, models.Pagination{}, InternalError(err, "Internal server error")
		}
		views, err := ps.views(ctx, posts)
		if err != nil {
			return nil, models.Pagination{}, InternalError(err, "Internal server error")
		}
		return views, models.NewPagination(page, limit, total), nil
	}

	// Non-friends keep access to posts they authored on this feed.
	all, _, err := ps.PersonalPosts.ListByTarget(ctx, targetUserID, 1, 0)
	if err != nil {
		return nil, models.Pagination{}, InternalError(err, "Internal server error")
	}
	authored := make([]models.PersonalPost, 0)
	for _, p := range all {
		if p.AuthorID == viewerID {
			authored = append(authored, p)
		}
	}
	views, err := ps.views(ctx, pageSlice(authored, page, limit))
	if err != nil {
		return nil, models.Pagination{}, InternalError(err, "Internal server error")
	}
	return views, models.NewPagination(page, limit, len(authored)), nil
}

// LikePersonalPost adds the viewer to the likes set, persisting the
// recomputed count in the same write.
func (ps *PersonalPostService) LikePersonalPost(ctx context.Context, userID, postID string) (int, error) {
	post, err := ps.getPost(ctx, postID)
	if err != nil {
		return 0, err
	}
	if post.HasLike(userID) {
		return 0, ConflictError("You have already liked this post")
	}
	likes := append(post.Likes, userID)
	if err := ps.PersonalPosts.SetLikes(ctx, postID, likes); err != nil {
		return 0, InternalError(err, "Internal server error")
	}
	return len(likes), nil
}

// UnlikePersonalPost removes the viewer from the likes set.
func (ps *PersonalPostService) UnlikePersonalPost(ctx context.Context, userID, postID string) (int, error) {
	post, err := ps.getPost(ctx, postID)
	if err != nil {
		return 0, err
	}
	if !post.HasLike(userID) {
		return 0, InvalidInputError("You have not liked this post")
	}
	likes := make([]string, 0, len(post.Likes)-1)
	for _, id := range post.Likes {
		if id != userID {
			likes = append(likes, id)
		}
	}
	if err := ps.PersonalPosts.SetLikes(ctx, postID, likes); err != nil {
		return 0, InternalError(err, "Internal server error")
	}
	return len(likes), nil
}

func (ps *PersonalPostService) getPost(ctx context.Context, postID string) (*models.PersonalPost, error) {
	post, err := ps.PersonalPosts.Get(ctx, postID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, NotFoundError("Post not found")
		}
		return nil, InternalError(err, "Internal server error")
	}
	return post, nil
}

func (ps *PersonalPostService) requireAcceptedFriendship(ctx context.Context, userA, userB string) error {
	edge, err := ps.Friendships.FindByPair(ctx, userA, userB)
	if err != nil && !errors.Is(err, ErrItemNotFound) {
		return InternalError(err, "Internal server error")
	}
	if err != nil || edge.Status != models.FriendshipAccepted {
		return ForbiddenError("You can only post on feeds of users you are friends with")
	}
	return nil
}

func (ps *PersonalPostService) views(ctx context.Context, posts []models.PersonalPost) ([]models.PersonalPostView, error) {
	ids := make([]string, 0, 2*len(posts))
	for _, p := range posts {
		ids = append(ids, p.AuthorID, p.TargetUserID)
	}
	users, err := ps.Users.BatchGet(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]models.PersonalPostView, 0, len(posts))
	for _, p := range posts {
		view := models.PersonalPostView{PersonalPost: p}
		if u, ok := users[p.AuthorID]; ok {
			view.Author = u.Ref()
		}
		if u, ok := users[p.TargetUserID]; ok {
			view.TargetUser = u.Ref()
		}
		views = append(views, view)
	}
	return views, nil
}
