package services

import (
	"context"
	"errors"
	"log/slog"

	"gathr_server/models"
)

// UserService exposes public profile reads and user search.
type UserService struct {
	Users UserStore
	Log   *slog.Logger
}

// GetUser returns a user's public projection.
func (us *UserService) GetUser(ctx context.Context, id string) (*models.UserRef, error) {
	user, err := us.Users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, NotFoundError("User not found")
		}
		return nil, InternalError(err, "Internal server error")
	}
	ref := user.Ref()
	return &ref, nil
}

// SearchUsers matches users on a name substring or email prefix, excluding the
// viewer.
func (us *UserService) SearchUsers(ctx context.Context, viewerID, query string, limit int) ([]models.UserRef, error) {
	if query == "" {
		return nil, InvalidInputError("Search query is required")
	}
	if limit < 1 {
		limit = 20
	}
	users, err := us.Users.Search(ctx, query, viewerID, limit)
	if err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	refs := make([]models.UserRef, 0, len(users))
	for _, u := range users {
		refs = append(refs, u.Ref())
	}
	return refs, nil
}
