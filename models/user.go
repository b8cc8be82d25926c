package models

// User defines the structure for user accounts
type User struct {
	UserID         string `dynamodbav:"userId" json:"userId"`
	Username       string `dynamodbav:"username" json:"username"`
	EmailID        string `dynamodbav:"emailId,omitempty" json:"emailId,omitempty"`
	Bio            string `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	ProfilePicture string `dynamodbav:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	Role           string `dynamodbav:"role" json:"role"` // "user" or "admin"
	FollowersCount int    `dynamodbav:"followersCount" json:"followersCount"`
}

// PublicProfile is the subset of user fields attached to populated listings
// (friend requests, follower lists, group member lists).
type PublicProfile struct {
	UserID         string `json:"userId"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// Public returns the user's public profile fields.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		UserID:         u.UserID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
	}
}

// UsersTable is the DynamoDB table name for users
const UsersTable = "Users"
