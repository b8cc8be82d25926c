package models

// Block is a directional edge: only User (the blocker) may remove it. Both
// directions of a pair may hold their own Block row. PairKey is stored so a
// single GSI query answers "is there a block between this pair either way".
type Block struct {
	BlockID     string `dynamodbav:"blockId" json:"blockId"`
	User        string `dynamodbav:"user" json:"user"` // the blocker
	BlockedUser string `dynamodbav:"blockedUser" json:"blockedUser"`
	PairKey     string `dynamodbav:"pairKey" json:"-"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
}

// BlocksTable is the DynamoDB table name for blocks
const BlocksTable = "Blocks"

// GSI Index Names
const (
	BlockPairIndex = "pairKey-index" // blocks between a pair, either direction
	BlockUserIndex = "user-index"    // blocks created by a user
)
