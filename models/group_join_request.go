package models

// GroupJoinRequest is created when a user asks to join a private group.
// Resolved requests are retained with a terminal status plus respondedBy and
// respondedAt, which keeps an audit trail and makes a second review fail on
// state rather than absence.
type GroupJoinRequest struct {
	RequestID   string `dynamodbav:"requestId" json:"requestId"`
	GroupID     string `dynamodbav:"groupId" json:"groupId"`
	UserID      string `dynamodbav:"userId" json:"userId"`
	Status      string `dynamodbav:"status" json:"status"`
	RequestedAt string `dynamodbav:"requestedAt" json:"requestedAt"`
	RespondedBy string `dynamodbav:"respondedBy,omitempty" json:"respondedBy,omitempty"`
	RespondedAt string `dynamodbav:"respondedAt,omitempty" json:"respondedAt,omitempty"`
}

// GroupJoinRequestsTable is the DynamoDB table name for group join requests
const GroupJoinRequestsTable = "GroupJoinRequests"

// GroupJoinRequestGroupIndex is the GSI keyed by groupId
const GroupJoinRequestGroupIndex = "group-index"
