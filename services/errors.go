package services

import "errors"

// Workflow error kinds. Callers match these with errors.Is; the HTTP layer
// maps them to status codes without inspecting messages.
var (
	// ErrNotFound means a referenced entity (user, request, block, group,
	// membership, edge) does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrNotAuthorized means the caller is not the required party.
	ErrNotAuthorized = errors.New("you are not authorized to perform this action")

	// ErrSelfAction means the action targets the caller where disallowed.
	ErrSelfAction = errors.New("you can't perform this action on yourself")

	// ErrInvalidState means a transition was attempted on a record that is
	// no longer pending.
	ErrInvalidState = errors.New("this request has already been handled")

	// ErrAlreadyExists means the edge or relationship already exists.
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrAlreadyMember means the user already holds a group membership.
	ErrAlreadyMember = errors.New("you are already a member of this group")

	// ErrAlreadyRequested means a pending join request already exists.
	ErrAlreadyRequested = errors.New("you have already made a join request to this group")

	// ErrCapacityExceeded means a friend list reached its cap.
	ErrCapacityExceeded = errors.New("friend list limit reached")

	// ErrOwnerCannotLeave means the group owner tried to leave their group.
	ErrOwnerCannotLeave = errors.New("group owner can't leave the group")

	// ErrBlocked means a block between the pair forbids the action.
	ErrBlocked = errors.New("you can't perform this action on this user")

	// ErrConflict means a concurrent write took the same unique key first.
	ErrConflict = errors.New("conflicting write, please retry")
)
