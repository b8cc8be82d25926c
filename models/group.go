package models

// Group defines the structure for groups
type Group struct {
	GroupID    string `dynamodbav:"groupId" json:"groupId"`
	GroupName  string `dynamodbav:"groupName" json:"groupName"`
	CreatedBy  string `dynamodbav:"createdBy" json:"createdBy"`
	IsPrivate  bool   `dynamodbav:"isPrivate" json:"isPrivate"`
	GroupCover string `dynamodbav:"groupCover,omitempty" json:"groupCover,omitempty"` // opaque media key
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt"`
}

// GroupsTable is the DynamoDB table name for groups
const GroupsTable = "Groups"
