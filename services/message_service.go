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

// MessageService owns direct-message conversations. One conversation exists
// per participant pair; clients poll for new messages on a fixed interval,
// there is no push transport.
type MessageService struct {
	Conversations ConversationStore
	Messages      MessageStore
	Friendships   FriendshipStore
	Users         UserStore
	Log           *slog.Logger
}

// CreateOrGetConversation returns the conversation between the viewer and
// recipientID, creating it if absent. Messaging requires an accepted
// friendship.
func (ms *MessageService) CreateOrGetConversation(ctx context.Context, userID, recipientID string) (*models.Conversation, error) {
	if recipientID == "" {
		return nil, InvalidInputError("Recipient ID is required")
	}
	if recipientID == userID {
		return nil, InvalidInputError("Cannot create conversation with yourself")
	}
	if _, err := ms.Users.Get(ctx, recipientID); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, NotFoundError("User not found")
		}
		return nil, InternalError(err, "Internal server error")
	}
	edge, err := ms.Friendships.FindByPair(ctx, userID, recipientID)
	if err != nil && !errors.Is(err, ErrItemNotFound) {
		return nil, InternalError(err, "Internal server error")
	}
	if err != nil || edge.Status != models.FriendshipAccepted {
		return nil, ForbiddenError("You can only message users you are friends with")
	}

	existing, err := ms.Conversations.FindByParticipants(ctx, userID, recipientID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrItemNotFound) {
		return nil, InternalError(err, "Internal server error")
	}
	now := time.Now().UTC()
	conversation := &models.Conversation{
		ID:           uuid.NewString(),
		Participants: []string{userID, recipientID},
		LastActivity: now,
		CreatedAt:    now,
	}
	if err := ms.Conversations.Put(ctx, conversation); err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	if ms.Log != nil {
		ms.Log.Info("conversation created", "conversation", conversation.ID, "user", userID, "recipient", recipientID)
	}
	return conversation, nil
}

// ListConversations returns the viewer's conversations, most recent
// activity first, each with the last message and the viewer's unread count.
func (ms *MessageService) ListConversations(ctx context.Context, userID string) ([]models.ConversationView, error) {
	conversations, err := ms.Conversations.ListByUser(ctx, userID)
	if err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	views := make([]models.ConversationView, 0, len(conversations))
	for i := range conversations {
		c := &conversations[i]
		view := models.ConversationView{
			ID:           c.ID,
			LastActivity: c.LastActivity,
			CreatedAt:    c.CreatedAt,
		}
		users, err := ms.Users.BatchGet(ctx, c.Participants)
		if err != nil {
			return nil, InternalError(err, "Internal server error")
		}
		for _, p := range c.Participants {
			if u, ok := users[p]; ok {
				view.Participants = append(view.Participants, u.Ref())
			}
		}
		if other, ok := users[c.OtherParticipant(userID)]; ok {
			ref := other.Ref()
			view.OtherParticipant = &ref
		}
		if c.LastMessageID != "" {
			if message, err := ms.Messages.Get(ctx, c.LastMessageID); err == nil {
				mv := models.MessageView{Message: *message}
				if sender, ok := users[message.SenderID]; ok {
					mv.Sender = sender.Ref()
				}
				view.LastMessage = &mv
			}
		}
		unread, err := ms.Messages.CountUnread(ctx, c.ID, userID)
		if err != nil {
			return nil, InternalError(err, "Internal server error")
		}
		view.UnreadCount = unread
		views = append(views, view)
	}
	return views, nil
}

// SendMessage appends a message to the conversation and bumps its
// lastActivity.
func (ms *MessageService) SendMessage(ctx context.Context, userID, conversationID, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, InvalidInputError("Message content is required")
	}
	conversation, err := ms.requireParticipant(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}
	message := &models.Message{
		ID:             uuid.NewString(),
		ConversationID: conversation.ID,
		SenderID:       userID,
		Content:        content,
		ReadBy:         []string{userID},
		CreatedAt:      time.Now().UTC(),
	}
	if err := ms.Messages.Put(ctx, message); err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	if err := ms.Conversations.SetLastMessage(ctx, conversation.ID, message.ID, message.CreatedAt); err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	return message, nil
}

// ListMessages returns one page of the conversation, newest first.
func (ms *MessageService) ListMessages(ctx context.Context, userID, conversationID string, page, limit int) ([]models.MessageView, models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if _, err := ms.requireParticipant(ctx, userID, conversationID); err != nil {
		return nil, models.Pagination{}, err
	}
	messages, total, err := ms.Messages.ListByConversation(ctx, conversationID, page, limit)
	if err != nil {
		return nil, models.Pagination{}, InternalError(err, "Internal server error")
	}
	ids := make([]string, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.SenderID)
	}
	users, err := ms.Users.BatchGet(ctx, ids)
	if err != nil {
		return nil, models.Pagination{}, InternalError(err, "Internal server error")
	}
	views := make([]models.MessageView, 0, len(messages))
	for _, m := range messages {
		view := models.MessageView{Message: m}
		if u, ok := users[m.SenderID]; ok {
			view.Sender = u.Ref()
		}
		views = append(views, view)
	}
	return views, models.NewPagination(page, limit, total), nil
}

// MarkConversationRead marks every message in the conversation read by the
// viewer.
func (ms *MessageService) MarkConversationRead(ctx context.Context, userID, conversationID string) error {
	if _, err := ms.requireParticipant(ctx, userID, conversationID); err != nil {
		return err
	}
	if err := ms.Messages.MarkRead(ctx, conversationID, userID); err != nil {
		return InternalError(err, "Internal server error")
	}
	return nil
}

func (ms *MessageService) requireParticipant(ctx context.Context, userID, conversationID string) (*models.Conversation, error) {
	conversation, err := ms.Conversations.Get(ctx, conversationID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, NotFoundError("Conversation not found")
		}
		return nil, InternalError(err, "Internal server error")
	}
	if !conversation.HasParticipant(userID) {
		return nil, ForbiddenError("You are not part of this conversation")
	}
	return conversation, nil
}
