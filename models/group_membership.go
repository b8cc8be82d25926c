package models

// GroupMembership is keyed by (groupId, userId), so one membership per user
// per group is a property of the table itself. The group creator receives an
// admin membership at group-creation time.
type GroupMembership struct {
	GroupID  string `dynamodbav:"groupId" json:"groupId"`
	UserID   string `dynamodbav:"userId" json:"userId"`
	Role     string `dynamodbav:"role" json:"role"` // "admin" or "member"
	JoinedAt string `dynamodbav:"joinedAt" json:"joinedAt"`

	// MemberProfile is attached on listings only, never stored.
	MemberProfile *PublicProfile `dynamodbav:"-" json:"memberProfile,omitempty"`
}

// GroupMembershipsTable is the DynamoDB table name for group memberships
const GroupMembershipsTable = "GroupMemberships"

// GroupMembershipUserIndex is the GSI keyed by userId
const GroupMembershipUserIndex = "user-index"
