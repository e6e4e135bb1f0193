package models

import "time"

// Conversation is a direct-message thread between exactly two users. One
// document exists per participant pair; creating an existing conversation
// returns the original.
type Conversation struct {
	ID            string    `dynamodbav:"id" json:"id"`
	Participants  []string  `dynamodbav:"participants" json:"participants"`
	LastMessageID string    `dynamodbav:"lastMessageId,omitempty" json:"lastMessageId,omitempty"`
	LastActivity  time.Time `dynamodbav:"lastActivity" json:"lastActivity"`
	CreatedAt     time.Time `dynamodbav:"createdAt" json:"createdAt"`
}

// HasParticipant reports whether userID belongs to the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the peer of userID, or "" when userID is not a
// participant.
func (c *Conversation) OtherParticipant(userID string) string {
	for _, p := range c.Participants {
		if p != userID {
			return p
		}
	}
	return ""
}

// ConversationsTable is the DynamoDB table name for conversations
const ConversationsTable = "Conversations"
