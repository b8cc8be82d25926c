package models

// Friendship is the directional storage of a symmetric relation: a friendship
// between A and B is stored once, keyed by the sorted-pair key, with User and
// Friend recording who accepted whom. Lookups for "all friendships of X" go
// through both GSIs since X may sit on either side.
type Friendship struct {
	PairKey   string `dynamodbav:"pairKey" json:"friendshipId"`
	User      string `dynamodbav:"user" json:"user"`
	Friend    string `dynamodbav:"friend" json:"friend"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// FriendshipsTable is the DynamoDB table name for friendships
const FriendshipsTable = "Friendships"

// GSI Index Names
const (
	FriendshipUserIndex   = "user-index"
	FriendshipFriendIndex = "friend-index"
)
