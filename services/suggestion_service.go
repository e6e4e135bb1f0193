package services

import (
	"context"
	"log/slog"

	"gathr_server/models"
)

// DefaultSuggestionLimit is used when the caller does not pass a limit.
const DefaultSuggestionLimit = 10

// SuggestionService produces friend candidates using three fallthrough
// strategies: shared groups, friends of friends, then recently joined
// users. The merge order is strictly A-then-B-then-C and the final list is
// truncated to the limit after concatenation, so later strategies never
// displace earlier ones.
type SuggestionService struct {
	Users       UserStore
	Friendships FriendshipStore
	Memberships MembershipStore
	Log         *slog.Logger
}

// GetSuggestions returns up to limit candidates the viewer is not already
// connected to. Any existing edge suppresses a candidate, including
// declined and blocked ones.
func (ss *SuggestionService) GetSuggestions(ctx context.Context, viewerID string, limit int) ([]models.Suggestion, error) {
	if limit < 1 {
		limit = DefaultSuggestionLimit
	}

	edges, err := ss.Friendships.ListByUser(ctx, viewerID)
	if err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	excluded := map[string]bool{viewerID: true}
	for _, e := range edges {
		excluded[e.OtherUser(viewerID)] = true
	}

	mutualIDs, err := ss.mutualGroupCandidates(ctx, viewerID, excluded)
	if err != nil {
		return nil, InternalError(err, "Internal server error")
	}

	chosen := make(map[string]bool, len(mutualIDs))
	for _, id := range mutualIDs {
		chosen[id] = true
	}
	fofIDs, err := ss.friendOfFriendCandidates(ctx, viewerID, edges, excluded, chosen)
	if err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	for _, id := range fofIDs {
		chosen[id] = true
	}

	suggestions := make([]models.Suggestion, 0, limit)
	users, err := ss.Users.BatchGet(ctx, append(append([]string{}, mutualIDs...), fofIDs...))
	if err != nil {
		return nil, InternalError(err, "Internal server error")
	}
	for _, id := range mutualIDs {
		if u, ok := users[id]; ok {
			suggestions = append(suggestions, newSuggestion(u, models.ReasonMutualGroups))
		}
	}
	for _, id := range fofIDs {
		if u, ok := users[id]; ok {
			suggestions = append(suggestions, newSuggestion(u, models.ReasonFriendsOfFriend))
		}
	}

	// Strategy C only fills whatever room A and B left.
	if len(suggestions) < limit {
		exclude := make(map[string]bool, len(excluded)+len(chosen))
		for id := range excluded {
			exclude[id] = true
		}
		for id := range chosen {
			exclude[id] = true
		}
		recent, err := ss.Users.ListRecent(ctx, exclude, limit-len(suggestions))
		if err != nil {
			return nil, InternalError(err, "Internal server error")
		}
		for _, u := range recent {
			suggestions = append(suggestions, newSuggestion(u, models.ReasonNewUsers))
		}
	}

	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	if ss.Log != nil {
		ss.Log.Debug("friend suggestions computed", "viewer", viewerID, "count", len(suggestions))
	}
	return suggestions, nil
}

// mutualGroupCandidates returns active members of the viewer's active
// groups, deduplicated, in membership order.
func (ss *SuggestionService) mutualGroupCandidates(ctx context.Context, viewerID string, excluded map[string]bool) ([]string, error) {
	memberships, err := ss.Memberships.ListActiveByUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	groupIDs := make([]string, 0, len(memberships))
	for _, m := range memberships {
		groupIDs = append(groupIDs, m.GroupID)
	}
	members, err := ss.Memberships.ListActiveByGroups(ctx, groupIDs)
	if err != nil {
		return nil, err
	}
	var ids []string
	seen := make(map[string]bool)
	for _, m := range members {
		if excluded[m.UserID] || seen[m.UserID] {
			continue
		}
		seen[m.UserID] = true
		ids = append(ids, m.UserID)
	}
	return ids, nil
}

// friendOfFriendCandidates returns users sharing an accepted edge with any
// of the viewer's accepted friends, skipping excluded users and anyone the
// mutual-groups strategy already chose.
func (ss *SuggestionService) friendOfFriendCandidates(ctx context.Context, viewerID string, edges []models.Friendship, excluded, chosen map[string]bool) ([]string, error) {
	friendIDs := acceptedFriendIDs(edges, viewerID)
	if len(friendIDs) == 0 {
		return nil, nil
	}
	friendSet := make(map[string]bool, len(friendIDs))
	for _, id := range friendIDs {
		friendSet[id] = true
	}
	fofEdges, err := ss.Friendships.ListAcceptedByUsers(ctx, friendIDs)
	if err != nil {
		return nil, err
	}
	var ids []string
	seen := make(map[string]bool)
	for _, e := range fofEdges {
		candidate := e.RecipientID
		if friendSet[e.RecipientID] && !friendSet[e.RequesterID] {
			candidate = e.RequesterID
		}
		if excluded[candidate] || chosen[candidate] || seen[candidate] {
			continue
		}
		seen[candidate] = true
		ids = append(ids, candidate)
	}
	return ids, nil
}

func newSuggestion(u models.User, reason string) models.Suggestion {
	return models.Suggestion{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Reason:      reason,
		ReasonLabel: models.ReasonLabel(reason),
	}
}
