package services

import (
	"context"
	"sort"
	"time"

	"gathr_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type dynamoConversationStore struct {
	ds *DynamoService
}

func (s *dynamoConversationStore) Get(ctx context.Context, id string) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := s.ds.GetItem(ctx, models.ConversationsTable, idKey(id), &conversation); err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (s *dynamoConversationStore) FindByParticipants(ctx context.Context, userA, userB string) (*models.Conversation, error) {
	filter := "contains(participants, :a) AND contains(participants, :b)"
	values := map[string]types.AttributeValue{
		":a": &types.AttributeValueMemberS{Value: userA},
		":b": &types.AttributeValueMemberS{Value: userB},
	}
	var conversations []models.Conversation
	if err := s.ds.ScanItems(ctx, models.ConversationsTable, filter, values, nil, &conversations); err != nil {
		return nil, err
	}
	if len(conversations) == 0 {
		return nil, ErrItemNotFound
	}
	return &conversations[0], nil
}

func (s *dynamoConversationStore) ListByUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	filter := "contains(participants, :u)"
	values := map[string]types.AttributeValue{
		":u": &types.AttributeValueMemberS{Value: userID},
	}
	var conversations []models.Conversation
	if err := s.ds.ScanItems(ctx, models.ConversationsTable, filter, values, nil, &conversations); err != nil {
		return nil, err
	}
	sort.Slice(conversations, func(i, j int) bool {
		if !conversations[i].LastActivity.Equal(conversations[j].LastActivity) {
			return conversations[i].LastActivity.After(conversations[j].LastActivity)
		}
		return conversations[i].ID > conversations[j].ID
	})
	return conversations, nil
}

func (s *dynamoConversationStore) Put(ctx context.Context, conversation *models.Conversation) error {
	return s.ds.PutItem(ctx, models.ConversationsTable, conversation)
}

func (s *dynamoConversationStore) SetLastMessage(ctx context.Context, conversationID, messageID string, at time.Time) error {
	values := map[string]types.AttributeValue{
		":m": &types.AttributeValueMemberS{Value: messageID},
		":t": &types.AttributeValueMemberS{Value: at.UTC().Format(time.RFC3339Nano)},
	}
	expr := "SET lastMessageId = :m, lastActivity = :t"
	return s.ds.UpdateItem(ctx, models.ConversationsTable, idKey(conversationID), expr, values, nil)
}

type dynamoMessageStore struct {
	ds *DynamoService
}

func (s *dynamoMessageStore) Get(ctx context.Context, id string) (*models.Message, error) {
	var message models.Message
	if err := s.ds.GetItem(ctx, models.MessagesTable, idKey(id), &message); err != nil {
		return nil, err
	}
	return &message, nil
}

func (s *dynamoMessageStore) Put(ctx context.Context, message *models.Message) error {
	return s.ds.PutItem(ctx, models.MessagesTable, message)
}

func (s *dynamoMessageStore) listAll(ctx context.Context, conversationID string) ([]models.Message, error) {
	filter := "#c = :c"
	values := map[string]types.AttributeValue{
		":c": &types.AttributeValueMemberS{Value: conversationID},
	}
	names := map[string]string{"#c": "conversationId"}
	var messages []models.Message
	if err := s.ds.ScanItems(ctx, models.MessagesTable, filter, values, names, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *dynamoMessageStore) ListByConversation(ctx context.Context, conversationID string, page, limit int) ([]models.Message, int, error) {
	messages, err := s.listAll(ctx, conversationID)
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(messages, func(i, j int) bool {
		if !messages[i].CreatedAt.Equal(messages[j].CreatedAt) {
			return messages[i].CreatedAt.After(messages[j].CreatedAt)
		}
		return messages[i].ID > messages[j].ID
	})
	return pageSlice(messages, page, limit), len(messages), nil
}

func (s *dynamoMessageStore) CountUnread(ctx context.Context, conversationID, userID string) (int, error) {
	filter := "#c = :c AND #snd <> :u AND NOT contains(readBy, :u)"
	values := map[string]types.AttributeValue{
		":c": &types.AttributeValueMemberS{Value: conversationID},
		":u": &types.AttributeValueMemberS{Value: userID},
	}
	names := map[string]string{"#c": "conversationId", "#snd": "senderId"}
	return s.ds.CountItems(ctx, models.MessagesTable, filter, values, names)
}

func (s *dynamoMessageStore) MarkRead(ctx context.Context, conversationID, userID string) error {
	messages, err := s.listAll(ctx, conversationID)
	if err != nil {
		return err
	}
	for i := range messages {
		m := &messages[i]
		if m.SenderID == userID || m.ReadByUser(userID) {
			continue
		}
		m.ReadBy = append(m.ReadBy, userID)
		if err := s.Put(ctx, m); err != nil {
			return err
		}
	}
	return nil
}
