package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"gathr_server/models"

	"github.com/google/uuid"
)

// FriendshipService owns the friendship edge lifecycle: request, respond,
// list, cancel and unfriend.
type FriendshipService struct {
	Friendships FriendshipStore
	Users       UserStore
	Log         *slog.Logger
}

// SendRequest creates a pending edge from requester to recipient. A
// declined edge between the pair is reset to pending in the new direction;
// any other existing edge rejects the request.
func (fs *FriendshipService) SendRequest(ctx context.Context, requesterID, recipientID string) (*models.Friendship, error) {
	if recipientID == "" {
		return nil, InvalidInputError("Recipient ID is required")
	}
	if recipientID == requesterID {
		return nil, InvalidInputError("Cannot send friend request to yourself")
	}
	if _, err := fs.Users.Get(ctx, recipientID); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, NotFoundError("User not found")
		}
		return nil, InternalError(err, "Internal server error")
	}

	now := time.Now().UTC()
	existing, err := fs.Friendships.FindByPair(ctx, requesterID, recipientID)
	switch {
	case err == nil:
		switch existing.Status {
		case models.FriendshipAccepted:
			return nil, ConflictError("You are already friends with this user")
		case models.FriendshipPending:
			return nil, ConflictError("Friend request already pending")
		case models.FriendshipBlocked:
			return nil, ForbiddenError("Cannot send friend request to this user")
		}
		existing.RequesterID = requesterID
		existing.RecipientID = recipientID
		existing.Status = models.FriendshipPending
		existing.UpdatedAt = now
		if err := fs.Friendships.Put(ctx, existing); err != nil {
			return nil, InternalError(err, "Internal server error")
		}
		return existing, nil
	case errors.Is(err, ErrItemNotFound):
		friendship := &models.Friendship{
			ID:          uuid.NewString(),
			RequesterID: requesterID,
			RecipientID: recipientID,
			Status:      models.FriendshipPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := fs.Friendships.Put(ctx, friendship); err != nil {
			return nil, InternalError(err, "Internal server error")
		}
		if fs.Log != nil {
			fs.Log.Info("friend request sent", "requester", requesterID, "recipient", recipientID)
		}
		return friendship, nil
	default:
		return nil, InternalError(err, "Internal server error")
	}
}

// RespondToRequest accepts or declines a pending request. Only the
// recipient may respond, and only while the request is pending.
func (fs *FriendshipService) RespondToRequest(ctx context.Context, userID, requestID, action string) (*models.Friendship, error) {
	if action != "accept" && action != "decline" {
		return nil, InvalidInputError("Valid action is required (accept or decline)")
	}
	friendship, err := fs.Friendships.Get(ctx, requestID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, NotFoundError("Friend request not found")
		}
		return nil, InternalError(err, "Internal server error")
	}
	if friendship.RecipientID != userID {
		return nil, ForbiddenError("You can only respond to friend requests sent to you")
	}
	if friendship.Status != models.FriendshipPending {
		return nil, InvalidInputError("This friend request has already been responded to")
	}
	if action == "accept" {
		friendship.Status = models.FriendshipAccepted
	} else {
		friendship.Status = models.FriendshipDeclined
	}
	friendship.UpdatedAt = time.Now().UTC()
	if err := fs.Friendships.Put(ctx, friendship); err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	if fs.Log != nil {
		fs.Log.Info("friend request "+action+"ed", "request", requestID, "recipient", userID)
	}
	return friendship, nil
}

// ListFriends returns the viewer's accepted friends, most recently accepted
// first.
func (fs *FriendshipService) ListFriends(ctx context.Context, userID string) ([]models.FriendView, error) {
	edges, err := fs.Friendships.ListByUser(ctx, userID)
	if err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	var accepted []models.Friendship
	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		if e.Status == models.FriendshipAccepted {
			accepted = append(accepted, e)
			ids = append(ids, e.OtherUser(userID))
		}
	}
	users, err := fs.Users.BatchGet(ctx, ids)
	if err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	friends := make([]models.FriendView, 0, len(accepted))
	for _, e := range accepted {
		friendID := e.OtherUser(userID)
		u, ok := users[friendID]
		if !ok {
			continue
		}
		friends = append(friends, models.FriendView{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			FriendshipID: e.ID,
			FriendedAt:   e.UpdatedAt,
		})
	}
	sort.Slice(friends, func(i, j int) bool {
		if !friends[i].FriendedAt.Equal(friends[j].FriendedAt) {
			return friends[i].FriendedAt.After(friends[j].FriendedAt)
		}
		return friends[i].ID > friends[j].ID
	})
	return friends, nil
}

// ListPendingRequests returns requests awaiting the viewer's response,
// newest first.
func (fs *FriendshipService) ListPendingRequests(ctx context.Context, userID string) ([]models.FriendRequestView, error) {
	edges, err := fs.Friendships.ListPendingForRecipient(ctx, userID)
	if err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	ids := make([]string, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.RequesterID)
	}
	users, err := fs.Users.BatchGet(ctx, ids)
	if err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	requests := make([]models.FriendRequestView, 0, len(edges))
	for _, e := range edges {
		u, ok := users[e.RequesterID]
		if !ok {
			continue
		}
		requests = append(requests, models.FriendRequestView{
			ID:        e.ID,
			Requester: u.Ref(),
			Status:    e.Status,
			CreatedAt: e.CreatedAt,
		})
	}
	sort.Slice(requests, func(i, j int) bool {
		if !requests[i].CreatedAt.Equal(requests[j].CreatedAt) {
			return requests[i].CreatedAt.After(requests[j].CreatedAt)
		}
		return requests[i].ID > requests[j].ID
	})
	return requests, nil
}

// CancelRequest deletes a pending request. Only the requester may cancel.
func (fs *FriendshipService) CancelRequest(ctx context.Context, userID, requestID string) error {
	friendship, err := fs.Friendships.Get(ctx, requestID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return NotFoundError("Friend request not found")
		}
		return InternalError(err, "Internal server error")
	}
	if friendship.Status != models.FriendshipPending {
		return InvalidInputError("Only pending requests can be cancelled")
	}
	if friendship.RequesterID != userID {
		return ForbiddenError("You can only cancel requests you sent")
	}
	if err := fs.Friendships.Delete(ctx, friendship.ID); err != nil {
		return InternalError(err, "Internal server error")
	}
	return nil
}

// Unfriend deletes the accepted edge between the viewer and friendUserID.
// Either side may unfriend.
func (fs *FriendshipService) Unfriend(ctx context.Context, userID, friendUserID string) error {
	friendship, err := fs.Friendships.FindByPair(ctx, userID, friendUserID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return NotFoundError("Friendship not found")
		}
		return InternalError(err, "Internal server error")
	}
	if friendship.Status != models.FriendshipAccepted {
		return InvalidInputError("You are not friends with this user")
	}
	if !friendship.Involves(userID) {
		return ForbiddenError("You are not part of this friendship")
	}
	if err := fs.Friendships.Delete(ctx, friendship.ID); err != nil {
		return InternalError(err, "Internal server error")
	}
	if fs.Log != nil {
		fs.Log.Info("unfriended", "user", userID, "friend", friendUserID)
	}
	return nil
}
