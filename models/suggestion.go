package models

// Suggestion reason codes, in strategy order.
const (
	ReasonMutualGroups    = "mutual_groups"
	ReasonFriendsOfFriend = "friends_of_friends"
	ReasonNewUsers        = "new_users"
)

// Suggestion is a read-time friend candidate. It is never persisted.
type Suggestion struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Reason      string `json:"reason"`
	ReasonLabel string `json:"reasonLabel"`
}

var reasonLabels = map[string]string{
	ReasonMutualGroups:    "In your groups",
	ReasonFriendsOfFriend: "Friend of a friend",
	ReasonNewUsers:        "New to the platform",
}

// ReasonLabel maps a reason code to its display label. Unknown codes fall
// back to a generic label.
func ReasonLabel(reason string) string {
	if label, ok := reasonLabels[reason]; ok {
		return label
	}
	return "Suggested for you"
}
