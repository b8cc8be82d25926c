package models

import (
	"sort"
	"strings"
)

// FriendRequest represents a pending friend request between two users.
// The table is keyed by the sorted-pair key, so the store itself guarantees
// at most one outstanding request per unordered pair regardless of direction.
// Resolved requests (accepted, declined, canceled) are deleted, never kept.
type FriendRequest struct {
	PairKey   string `dynamodbav:"pairKey" json:"requestId"`
	Sender    string `dynamodbav:"sender" json:"sender"`
	SentTo    string `dynamodbav:"sentTo" json:"sentTo"`
	Status    string `dynamodbav:"status" json:"status"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`

	// Counterpart is attached on listings only, never stored.
	Counterpart *PublicProfile `dynamodbav:"-" json:"counterpart,omitempty"`
}

// PairKey builds the canonical key for an unordered user pair: the two ids
// sorted and joined, so (A,B) and (B,A) collide.
func PairKey(userA, userB string) string {
	ids := []string{userA, userB}
	sort.Strings(ids)
	return strings.Join(ids, "#")
}

// FriendRequestsTable is the DynamoDB table name for friend requests
const FriendRequestsTable = "FriendRequests"

// GSI Index Names
const (
	FriendRequestSenderIndex = "sender-index" // requests sent by a user
	FriendRequestSentToIndex = "sentTo-index" // requests received by a user
)
