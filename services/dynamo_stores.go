package services

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Stores bundles every Dynamo-backed store over one shared DynamoService.
type Stores struct {
	Users         UserStore
	Friendships   FriendshipStore
	Memberships   MembershipStore
	Groups        GroupStore
	Posts         PostStore
	PersonalPosts PersonalPostStore
	Comments      CommentStore
	Events        EventStore
	Attendance    AttendanceStore
	Conversations ConversationStore
	Messages      MessageStore
}

// NewDynamoStores wires every store to the given DynamoService.
func NewDynamoStores(ds *DynamoService) *Stores {
	return &Stores{
		Users:         &dynamoUserStore{ds},
		Friendships:   &dynamoFriendshipStore{ds},
		Memberships:   &dynamoMembershipStore{ds},
		Groups:        &dynamoGroupStore{ds},
		Posts:         &dynamoPostStore{ds},
		PersonalPosts: &dynamoPersonalPostStore{ds},
		Comments:      &dynamoCommentStore{ds},
		Events:        &dynamoEventStore{ds},
		Attendance:    &dynamoAttendanceStore{ds},
		Conversations: &dynamoConversationStore{ds},
		Messages:      &dynamoMessageStore{ds},
	}
}

// idKey builds the primary key for tables keyed by "id".
func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

// inClause renders "#attr IN (:p0, :p1, ...)" and merges the placeholder
// values into values. DynamoDB has no native set-membership operator for
// arbitrary lists in filter expressions beyond IN.
func inClause(attr, placeholder string, ids []string, values map[string]types.AttributeValue) string {
	placeholders := make([]string, len(ids))
	for i, id := range ids {
		p := fmt.Sprintf(":%s%d", placeholder, i)
		placeholders[i] = p
		values[p] = &types.AttributeValueMemberS{Value: id}
	}
	return fmt.Sprintf("#%s IN (%s)", attr, strings.Join(placeholders, ", "))
}

// pageSlice slices one page out of a fully sorted result set.
func pageSlice[T any](items []T, page, limit int) []T {
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
