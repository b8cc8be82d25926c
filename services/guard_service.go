package services

import (
	"context"
	"errors"

	"social_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// GuardService holds the invariant checks shared by every workflow: entity
// existence, self-action prevention, ownership and role assertions. Checks
// fail fast with the typed error kinds from errors.go.
type GuardService struct {
	Store EntityStore
}

func stringKey(attr, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{attr: &types.AttributeValueMemberS{Value: value}}
}

// PreventSelfAction fails with ErrSelfAction when both ids are the same user.
func PreventSelfAction(actorID, targetID string) error {
	if actorID == targetID {
		return ErrSelfAction
	}
	return nil
}

// AssertSameUser fails with ErrNotAuthorized unless the caller is the
// required party.
func AssertSameUser(requiredID, callerID string) error {
	if requiredID != callerID {
		return ErrNotAuthorized
	}
	return nil
}

// RequireUser loads a user, failing with ErrNotFound when absent.
func (g *GuardService) RequireUser(ctx context.Context, userID string) (*models.User, error) {
	item, err := g.Store.GetItem(ctx, models.UsersTable, stringKey("userId", userID))
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// RequirePage loads a page, failing with ErrNotFound when absent.
func (g *GuardService) RequirePage(ctx context.Context, pageID string) (*models.Page, error) {
	item, err := g.Store.GetItem(ctx, models.PagesTable, stringKey("pageId", pageID))
	if err != nil {
		return nil, err
	}
	var page models.Page
	if err := attributevalue.UnmarshalMap(item, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// RequireNotBlocked fails with ErrBlocked when a block exists between the
// pair in either direction.
func (g *GuardService) RequireNotBlocked(ctx context.Context, userA, userB string) error {
	pairKey := models.PairKey(userA, userB)
	count, err := g.Store.CountItems(ctx, models.BlocksTable, models.BlockPairIndex, []KeyCond{
		{Name: "pairKey", Value: &types.AttributeValueMemberS{Value: pairKey}},
	})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrBlocked
	}
	return nil
}

// RequireGroupAdmin fails with ErrNotAuthorized unless the user holds an
// admin membership in the group.
func (g *GuardService) RequireGroupAdmin(ctx context.Context, groupID, userID string) error {
	membership, err := g.GetMembership(ctx, groupID, userID)
	if errors.Is(err, ErrNotFound) {
		return ErrNotAuthorized
	}
	if err != nil {
		return err
	}
	if membership.Role != models.MembershipRoleAdmin {
		return ErrNotAuthorized
	}
	return nil
}

// GetMembership loads a group membership, failing with ErrNotFound when the
// user is not a member.
func (g *GuardService) GetMembership(ctx context.Context, groupID, userID string) (*models.GroupMembership, error) {
	key := map[string]types.AttributeValue{
		"groupId": &types.AttributeValueMemberS{Value: groupID},
		"userId":  &types.AttributeValueMemberS{Value: userID},
	}
	item, err := g.Store.GetItem(ctx, models.GroupMembershipsTable, key)
	if err != nil {
		return nil, err
	}
	var membership models.GroupMembership
	if err := attributevalue.UnmarshalMap(item, &membership); err != nil {
		return nil, err
	}
	return &membership, nil
}

// PublicProfileOf returns the public profile of a user, or nil when the user
// no longer exists. Listing population never fails a read over a missing
// counterpart.
func (g *GuardService) PublicProfileOf(ctx context.Context, userID string) *models.PublicProfile {
	user, err := g.RequireUser(ctx, userID)
	if err != nil {
		return nil
	}
	profile := user.Public()
	return &profile
}
