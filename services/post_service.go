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

// PostService owns group posts, their likes and their comments. likeCount
// is derived on write: the likes set and its length are persisted in the
// same document update. commentCount moves by delta when a comment is
// created.
type PostService struct {
	Posts       PostStore
	Comments    CommentStore
	Groups      GroupStore
	Memberships MembershipStore
	Users       UserStore
	Log         *slog.Logger
}

// CreatePost stores a post on a group wall. Only active members may post.
func (ps *PostService) CreatePost(ctx context.Context, authorID, groupID, content string) (*models.GroupPost, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, InvalidInputError("Post content is required")
	}
	if _, err := ps.Groups.Get(ctx, groupID); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, NotFoundError("Group not found")
		}
		return nil, InternalError(err, "Internal server error")
	}
	if err := ps.requireActiveMember(ctx, groupID, authorID); err != nil {
		return nil, err
	}
	post := &models.GroupPost{
		ID:        uuid.NewString(),
		GroupID:   groupID,
		AuthorID:  authorID,
		Content:   content,
		Likes:     []string{},
		CreatedAt: time.Now().UTC(),
	}
	if err := ps.Posts.Put(ctx, post); err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	if ps.Log != nil {
		ps.Log.Info("group post created", "post", post.ID, "group", groupID, "author", authorID)
	}
	return post, nil
}

// ListGroupPosts returns one page of a group wall, newest first. Only
// active members may read it.
func (ps *PostService) ListGroupPosts(ctx context.Context, viewerID, groupID string, page, limit int) ([]models.GroupPostView, models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultFeedPageSize
	}
	if _, err := ps.Groups.Get(ctx, groupID); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, models.Pagination{}, NotFoundError("Group not found")
		}
		return nil, models.Pagination{}, InternalError(err, "Internal server error")
	}
	if err := ps.requireActiveMember(ctx, groupID, viewerID); err != nil {
		return nil, models.Pagination{}, err
	}
	posts, total, err := ps.Posts.ListByGroup(ctx, groupID, page, limit)
	if err != nil {
		return nil, models.Pagination{}, InternalError(err, "Internal server error")
	}
	views, err := ps.postViews(ctx, posts)
	if err != nil {
		return nil, models.Pagination{}, InternalError(err, "Internal server error")
	}
	return views, models.NewPagination(page, limit, total), nil
}

// UpdatePost replaces the post content and marks the document edited. Only
// the author may edit.
func (ps *PostService) UpdatePost(ctx context.Context, userID, postID, content string) (*models.GroupPost, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, InvalidInputError("Post content is required")
	}
	post, err := ps.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, ForbiddenError("You can only edit your own posts")
	}
	post.Content = content
	post.IsEdited = true
	if err := ps.Posts.Put(ctx, post); err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	if ps.Log != nil {
		ps.Log.Info("group post updated", "post", post.ID, "author", userID)
	}
	return post, nil
}

// DeletePost removes the post. Only the author may delete.
func (ps *PostService) DeletePost(ctx context.Context, userID, postID string) error {
	post, err := ps.getPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return ForbiddenError("You can only delete your own posts")
	}
	if err := ps.Posts.Delete(ctx, postID); err != nil {
		return InternalError(err, "Internal server error")
	}
	if ps.Log != nil {
		ps.Log.Info("group post deleted", "post", postID, "author", userID)
	}
	return nil
}

// LikePost adds the viewer to the post's likes set and persists the
// recomputed count in the same write.
func (ps *PostService) LikePost(ctx context.Context, userID, postID string) (int, error) {
	post, err := ps.getPost(ctx, postID)
	if err != nil {
		return 0, err
	}
	if post.HasLike(userID) {
		return 0, ConflictError("You have already liked this post")
	}
	likes := append(post.Likes, userID)
	if err := ps.Posts.SetLikes(ctx, postID, likes); err != nil {
		return 0, InternalError(err, "Internal server error")
	}
	return len(likes), nil
}

// UnlikePost removes the viewer from the post's likes set.
func (ps *PostService) UnlikePost(ctx context.Context, userID, postID string) (int, error) {
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
	if err := ps.Posts.SetLikes(ctx, postID, likes); err != nil {
		return 0, InternalError(err, "Internal server error")
	}
	return len(likes), nil
}

// CreateComment stores a comment and bumps the post's commentCount. A reply
// must reference a parent comment on the same post.
func (ps *PostService) CreateComment(ctx context.Context, authorID, postID, content, parentCommentID string) (*models.CommentView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, InvalidInputError("Comment content is required")
	}
	if _, err := ps.getPost(ctx, postID); err != nil {
		return nil, err
	}
	if parentCommentID != "" {
		parent, err := ps.Comments.Get(ctx, parentCommentID)
		if err != nil || parent.PostID != postID {
			if err != nil && !errors.Is(err, ErrItemNotFound) {
				return nil, InternalError(err, "Internal server error")
			}
			return nil, NotFoundError("Parent comment not found")
		}
	}
	comment := &models.Comment{
		ID:              uuid.NewString(),
		PostID:          postID,
		AuthorID:        authorID,
		ParentCommentID: parentCommentID,
		Content:         content,
		Likes:           []string{},
		CreatedAt:       time.Now().UTC(),
	}
	if err := ps.Comments.Put(ctx, comment); err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	if err := ps.Posts.AddCommentCount(ctx, postID, 1); err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	view := &models.CommentView{Comment: *comment}
	if author, err := ps.Users.Get(ctx, authorID); err == nil {
		view.Author = author.Ref()
	}
	return view, nil
}

// ListComments returns one page of top-level comments, oldest first.
func (ps *PostService) ListComments(ctx context.Context, postID string, page, limit int) ([]models.CommentView, models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if _, err := ps.getPost(ctx, postID); err != nil {
		return nil, models.Pagination{}, err
	}
	comments, total, err := ps.Comments.ListTopLevelByPost(ctx, postID, page, limit)
	if err != nil {
		return nil, models.Pagination{}, InternalError(err, "Internal server error")
	}
	ids := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.AuthorID)
	}
	users, err := ps.Users.BatchGet(ctx, ids)
	if err != nil {
		return nil, models.Pagination{}, InternalError(err, "Internal server error")
	}
	views := make([]models.CommentView, 0, len(comments))
	for _, c := range comments {
		view := models.CommentView{Comment: c}
		if u, ok := users[c.AuthorID]; ok {
			view.Author = u.Ref()
		}
		views = append(views, view)
	}
	return views, models.NewPagination(page, limit, total), nil
}

func (ps *PostService) getPost(ctx context.Context, postID string) (*models.GroupPost, error) {
	post, err := ps.Posts.Get(ctx, postID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, NotFoundError("Post not found")
		}
		return nil, InternalError(err, "Internal server error")
	}
	return post, nil
}

func (ps *PostService) postViews(ctx context.Context, posts []models.GroupPost) ([]models.GroupPostView, error) {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.AuthorID)
	}
	users, err := ps.Users.BatchGet(ctx, ids)
	if err != nil {
		return nil, err
	}
	views := make([]models.GroupPostView, 0, len(posts))
	for _, p := range posts {
		view := models.GroupPostView{GroupPost: p}
		if u, ok := users[p.AuthorID]; ok {
			view.Author = u.Ref()
		}
		views = append(views, view)
	}
	return views, nil
}

func (ps *PostService) requireActiveMember(ctx context.Context, groupID, userID string) error {
	membership, err := ps.Memberships.Find(ctx, groupID, userID)
	if err != nil && !errors.Is(err, ErrItemNotFound) {
		return InternalError(err, "Internal server error")
	}
	if err != nil || !membership.IsActive {
		return ForbiddenError("You must be a member of the group")
	}
	return nil
}
