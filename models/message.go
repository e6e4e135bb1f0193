package models

import "time"

// Message is a direct message inside a conversation. ReadBy accumulates the
// ids of participants who have seen it; clients poll for new messages.
type Message struct {
	ID             string    `dynamodbav:"id" json:"id"`
	ConversationID string    `dynamodbav:"conversationId" json:"conversationId"`
	SenderID       string    `dynamodbav:"senderId" json:"senderId"`
	Content        string    `dynamodbav:"content" json:"content"`
	ReadBy         []string  `dynamodbav:"readBy" json:"readBy"`
	CreatedAt      time.Time `dynamodbav:"createdAt" json:"createdAt"`
}

// ReadByUser reports whether userID has read the message.
func (m *Message) ReadByUser(userID string) bool {
	for _, id := range m.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}

// MessagesTable is the DynamoDB table name for direct messages
const MessagesTable = "Messages"
