package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"social_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// GroupService runs group creation, the join/leave workflow, and the
// join-request review workflow for private groups. Join requests are kept
// after resolution with a terminal status, respondedBy and respondedAt, so a
// second review fails on state rather than absence.
type GroupService struct {
	Store    EntityStore
	Guard    *GuardService
	Notifier *NotificationService
}

// MemberPage is one page of a group member listing.
type MemberPage struct {
	Members []models.GroupMembership        `json:"members"`
	NextKey map[string]types.AttributeValue `json:"-"`
}

// CreateGroup creates a group and, in the same transaction, the creator's
// admin membership — the owner invariant holds from the first write on.
func (s *GroupService) CreateGroup(ctx context.Context, userID, groupName string, isPrivate bool, groupCover string) (*models.Group, error) {
	if _, err := s.Guard.RequireUser(ctx, userID); err != nil {
		return nil, err
	}

	now := time.Now().Format(time.RFC3339)
	group := models.Group{
		GroupID:    uuid.New().String(),
		GroupName:  groupName,
		CreatedBy:  userID,
		IsPrivate:  isPrivate,
		GroupCover: groupCover,
		CreatedAt:  now,
	}
	membership := models.GroupMembership{
		GroupID:  group.GroupID,
		UserID:   userID,
		Role:     models.MembershipRoleAdmin,
		JoinedAt: now,
	}
	err := s.Store.TransactWrite(ctx,
		Write{Table: models.GroupsTable, Put: group, IfAbsent: "groupId"},
		Write{Table: models.GroupMembershipsTable, Put: membership},
	)
	if err != nil {
		return nil, err
	}

	log.Printf("group %s created by %s", group.GroupID, userID)
	return &group, nil
}

// GetGroup loads a group, failing with ErrNotFound when absent.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	item, err := s.Store.GetItem(ctx, models.GroupsTable, stringKey("groupId", groupID))
	if err != nil {
		return nil, err
	}
	var group models.Group
	if err := attributevalue.UnmarshalMap(item, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// JoinGroup joins a public group directly, or files a pending join request
// for a private one. The returned outcome is "joined" or "pending".
func (s *GroupService) JoinGroup(ctx context.Context, userID, groupID string) (string, error) {
	if _, err := s.Guard.RequireUser(ctx, userID); err != nil {
		return "", err
	}
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return "", err
	}

	_, err = s.Guard.GetMembership(ctx, groupID, userID)
	if err == nil {
		return "", ErrAlreadyMember
	}
	if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	if !group.IsPrivate {
		membership := models.GroupMembership{
			GroupID:  groupID,
			UserID:   userID,
			Role:     models.MembershipRoleMember,
			JoinedAt: time.Now().Format(time.RFC3339),
		}
		// Conditional on the composite key: a racing double join collapses
		// into one membership and a Conflict for the loser.
		if err := s.Store.PutNewItem(ctx, models.GroupMembershipsTable, membership, "groupId"); err != nil {
			return "", err
		}
		return models.JoinOutcomeJoined, nil
	}

	pending, err := s.pendingJoinRequest(ctx, groupID, userID)
	if err != nil {
		return "", err
	}
	if pending != nil {
		return "", ErrAlreadyRequested
	}

	request := models.GroupJoinRequest{
		RequestID:   uuid.New().String(),
		GroupID:     groupID,
		UserID:      userID,
		Status:      models.StatusPending,
		RequestedAt: time.Now().Format(time.RFC3339),
	}
	if err := s.Store.PutNewItem(ctx, models.GroupJoinRequestsTable, request, "requestId"); err != nil {
		return "", err
	}

	s.Notifier.Notify(group.CreatedBy, "groupJoinRequested", request)
	return models.JoinOutcomePending, nil
}

// ReviewJoinRequest accepts or declines a pending join request. The reviewer
// must hold an admin membership in the request's group. Acceptance creates
// the requester's membership and resolves the request in one transaction.
func (s *GroupService) ReviewJoinRequest(ctx context.Context, reviewerID, requestID, decision string) error {
	request, err := s.getJoinRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if request.Status != models.StatusPending {
		return ErrInvalidState
	}
	if err := s.Guard.RequireGroupAdmin(ctx, request.GroupID, reviewerID); err != nil {
		return err
	}

	resolve := Write{
		Table: models.GroupJoinRequestsTable,
		Key:   stringKey("requestId", requestID),
		Set: map[string]types.AttributeValue{
			"status":      &types.AttributeValueMemberS{Value: decision},
			"respondedBy": &types.AttributeValueMemberS{Value: reviewerID},
			"respondedAt": &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
		},
	}

	switch decision {
	case models.StatusAccepted:
		membership := models.GroupMembership{
			GroupID:  request.GroupID,
			UserID:   request.UserID,
			Role:     models.MembershipRoleMember,
			JoinedAt: time.Now().Format(time.RFC3339),
		}
		err := s.Store.TransactWrite(ctx,
			Write{Table: models.GroupMembershipsTable, Put: membership, IfAbsent: "groupId"},
			resolve,
		)
		if err != nil {
			return err
		}
		log.Printf("join request %s accepted by %s", requestID, reviewerID)
		s.Notifier.Notify(request.UserID, "groupJoinAccepted", membership)
		return nil

	case models.StatusDeclined:
		return s.Store.TransactWrite(ctx, resolve)

	default:
		return fmt.Errorf("invalid join request decision %q", decision)
	}
}

// CancelJoinRequest deletes a join request; only its author may do so.
func (s *GroupService) CancelJoinRequest(ctx context.Context, userID, requestID string) error {
	request, err := s.getJoinRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if err := AssertSameUser(request.UserID, userID); err != nil {
		return err
	}
	return s.Store.DeleteItem(ctx, models.GroupJoinRequestsTable, stringKey("requestId", requestID))
}

// LeaveGroup removes the caller's membership. The owner cannot leave their
// own group. Any pending join request for the pair is cleaned up as well,
// covering a user who re-requested mid-flight; the cleanup and the
// notification to the owner are best-effort.
func (s *GroupService) LeaveGroup(ctx context.Context, userID, groupID string) error {
	user, err := s.Guard.RequireUser(ctx, userID)
	if err != nil {
		return err
	}
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if userID == group.CreatedBy {
		return ErrOwnerCannotLeave
	}
	if _, err := s.Guard.GetMembership(ctx, groupID, userID); err != nil {
		return err
	}

	membershipKey := map[string]types.AttributeValue{
		"groupId": &types.AttributeValueMemberS{Value: groupID},
		"userId":  &types.AttributeValueMemberS{Value: userID},
	}
	if err := s.Store.DeleteItem(ctx, models.GroupMembershipsTable, membershipKey); err != nil {
		return err
	}

	if pending, err := s.pendingJoinRequest(ctx, groupID, userID); err == nil && pending != nil {
		if err := s.Store.DeleteItem(ctx, models.GroupJoinRequestsTable, stringKey("requestId", pending.RequestID)); err != nil {
			log.Printf("failed to clean up join request %s after leave: %v", pending.RequestID, err)
		}
	}

	log.Printf("user %s left group %s", userID, groupID)
	s.Notifier.Notify(group.CreatedBy, "memberLeftGroup", map[string]string{
		"groupId":   groupID,
		"groupName": group.GroupName,
		"username":  user.Username,
	})
	return nil
}

// ListMembers returns one page of the group's members, populated with
// public profiles.
func (s *GroupService) ListMembers(ctx context.Context, groupID string, limit int32, startKey map[string]types.AttributeValue) (*MemberPage, error) {
	if _, err := s.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	items, nextKey, err := s.Store.QueryItems(ctx, models.GroupMembershipsTable, "", []KeyCond{
		{Name: "groupId", Value: &types.AttributeValueMemberS{Value: groupID}},
	}, limit, startKey)
	if err != nil {
		return nil, err
	}

	var members []models.GroupMembership
	if err := attributevalue.UnmarshalListOfMaps(items, &members); err != nil {
		return nil, err
	}
	for i := range members {
		members[i].MemberProfile = s.Guard.PublicProfileOf(ctx, members[i].UserID)
	}
	return &MemberPage{Members: members, NextKey: nextKey}, nil
}

// ListJoinRequests returns the group's join requests, optionally filtered by
// status. Only group admins may list, and only for private groups.
func (s *GroupService) ListJoinRequests(ctx context.Context, callerID, groupID, status string) ([]models.GroupJoinRequest, error) {
	group, err := s.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsPrivate {
		return nil, fmt.Errorf("group %s is public and has no join requests", groupID)
	}
	if err := s.Guard.RequireGroupAdmin(ctx, groupID, callerID); err != nil {
		return nil, err
	}

	items, _, err := s.Store.QueryItems(ctx, models.GroupJoinRequestsTable, models.GroupJoinRequestGroupIndex, []KeyCond{
		{Name: "groupId", Value: &types.AttributeValueMemberS{Value: groupID}},
	}, 0, nil)
	if err != nil {
		return nil, err
	}

	var all []models.GroupJoinRequest
	if err := attributevalue.UnmarshalListOfMaps(items, &all); err != nil {
		return nil, err
	}
	if status == "" {
		return all, nil
	}
	requests := make([]models.GroupJoinRequest, 0, len(all))
	for _, r := range all {
		if r.Status == status {
			requests = append(requests, r)
		}
	}
	return requests, nil
}

func (s *GroupService) getJoinRequest(ctx context.Context, requestID string) (*models.GroupJoinRequest, error) {
	item, err := s.Store.GetItem(ctx, models.GroupJoinRequestsTable, stringKey("requestId", requestID))
	if err != nil {
		return nil, err
	}
	var request models.GroupJoinRequest
	if err := attributevalue.UnmarshalMap(item, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// pendingJoinRequest finds the user's pending request for a group, nil when
// none exists. Resolved requests are retained but never count as
// outstanding, so a declined user may request again.
func (s *GroupService) pendingJoinRequest(ctx context.Context, groupID, userID string) (*models.GroupJoinRequest, error) {
	items, _, err := s.Store.QueryItems(ctx, models.GroupJoinRequestsTable, models.GroupJoinRequestGroupIndex, []KeyCond{
		{Name: "groupId", Value: &types.AttributeValueMemberS{Value: groupID}},
	}, 0, nil)
	if err != nil {
		return nil, err
	}
	var requests []models.GroupJoinRequest
	if err := attributevalue.UnmarshalListOfMaps(items, &requests); err != nil {
		return nil, err
	}
	for _, r := range requests {
		if r.UserID == userID && r.Status == models.StatusPending {
			request := r
			return &request, nil
		}
	}
	return nil, nil
}
