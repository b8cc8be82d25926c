package models

// Follower is a follow edge from a user to a user or a page. The edge id is
// deterministic (follower#following) so the conditional put on the key is
// what enforces at most one edge per pair, even under concurrent follows.
type Follower struct {
	FollowID   string `dynamodbav:"followId" json:"followId"`
	Follower   string `dynamodbav:"follower" json:"follower"`
	Following  string `dynamodbav:"following" json:"following"`
	FollowType string `dynamodbav:"followType" json:"followType"` // "user" or "page"
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt"`

	// FollowerProfile is attached on listings only, never stored.
	FollowerProfile *PublicProfile `dynamodbav:"-" json:"followerProfile,omitempty"`
}

// FollowID builds the deterministic edge id for a (follower, following) pair.
func FollowID(followerID, followingID string) string {
	return followerID + "#" + followingID
}

// FollowersTable is the DynamoDB table name for follow edges
const FollowersTable = "Followers"

// GSI Index Names
const (
	FollowerIndex  = "follower-index"  // edges created by a user
	FollowingIndex = "following-index" // edges pointing at a target
)
