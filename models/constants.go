package models

// Request Statuses (friend requests and group join requests share the shape)
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
)

// User Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Group Membership Roles
const (
	MembershipRoleAdmin  = "admin"
	MembershipRoleMember = "member"
)

// Follow Target Types (a follow edge points at a user or a page)
const (
	FollowTargetUser = "user"
	FollowTargetPage = "page"
)

// Join Outcomes returned by the group join flow
const (
	JoinOutcomeJoined  = "joined"
	JoinOutcomePending = "pending"
)

// MaxFriendCount caps the friend list on both sides of a friend request.
const MaxFriendCount = 500
