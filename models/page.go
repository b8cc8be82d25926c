package models

// Page defines the structure for pages users can follow
type Page struct {
	PageID         string `dynamodbav:"pageId" json:"pageId"`
	PageName       string `dynamodbav:"pageName" json:"pageName"`
	CreatedBy      string `dynamodbav:"createdBy" json:"createdBy"`
	PageCover      string `dynamodbav:"pageCover,omitempty" json:"pageCover,omitempty"` // opaque media key
	FollowersCount int    `dynamodbav:"followersCount" json:"followersCount"`
}

// PagesTable is the DynamoDB table name for pages
const PagesTable = "Pages"
