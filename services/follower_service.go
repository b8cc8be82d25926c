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
)

// FollowerService maintains follow edges against users and pages, together
// with the target's denormalized followersCount. The counter update rides in
// the same transaction as the edge write, so the counter can't drift from a
// crash between the two.
type FollowerService struct {
	Store EntityStore
	Guard *GuardService
}

// FollowerPage is one page of a follower listing. FollowersCount is the
// target's authoritative denormalized counter.
type FollowerPage struct {
	Followers      []models.Follower               `json:"followers"`
	FollowersCount int                             `json:"followersCount"`
	NextKey        map[string]types.AttributeValue `json:"-"`
}

// Follow creates a follow edge to a user or a page. The deterministic edge
// id makes the conditional put the real uniqueness guard; the pre-check only
// gives sequential callers the friendlier ErrAlreadyExists.
func (s *FollowerService) Follow(ctx context.Context, followerID, targetID, targetType string) (*models.Follower, error) {
	if err := PreventSelfAction(followerID, targetID); err != nil {
		return nil, err
	}
	if _, err := s.Guard.RequireUser(ctx, followerID); err != nil {
		return nil, err
	}
	counterTable, counterKey, err := s.counterTarget(ctx, targetID, targetType)
	if err != nil {
		return nil, err
	}

	followID := models.FollowID(followerID, targetID)
	_, err = s.Store.GetItem(ctx, models.FollowersTable, stringKey("followId", followID))
	if err == nil {
		return nil, ErrAlreadyExists
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	edge := models.Follower{
		FollowID:   followID,
		Follower:   followerID,
		Following:  targetID,
		FollowType: targetType,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}
	err = s.Store.TransactWrite(ctx,
		Write{Table: models.FollowersTable, Put: edge, IfAbsent: "followId"},
		Write{Table: counterTable, Key: counterKey, Add: map[string]int{"followersCount": 1}},
	)
	if err != nil {
		return nil, err
	}

	log.Printf("%s now follows %s %s", followerID, targetType, targetID)
	return &edge, nil
}

// Unfollow removes a follow edge; only the edge owner may do so. The counter
// decrement rides in the same transaction as the edge delete.
func (s *FollowerService) Unfollow(ctx context.Context, followerID, followID, targetType string) error {
	item, err := s.Store.GetItem(ctx, models.FollowersTable, stringKey("followId", followID))
	if err != nil {
		return err
	}
	var edge models.Follower
	if err := attributevalue.UnmarshalMap(item, &edge); err != nil {
		return err
	}
	if edge.FollowType != targetType {
		return ErrNotFound
	}
	if err := AssertSameUser(edge.Follower, followerID); err != nil {
		return err
	}

	counterTable, counterKey, err := s.counterTarget(ctx, edge.Following, edge.FollowType)
	if err != nil {
		return err
	}
	return s.Store.TransactWrite(ctx,
		Write{Table: models.FollowersTable, Key: stringKey("followId", followID)},
		Write{Table: counterTable, Key: counterKey, Add: map[string]int{"followersCount": -1}},
	)
}

// ListFollowers returns one page of the target's followers, populated with
// public profiles, plus the target's followersCount.
func (s *FollowerService) ListFollowers(ctx context.Context, targetID, targetType string, limit int32, startKey map[string]types.AttributeValue) (*FollowerPage, error) {
	count, err := s.followersCount(ctx, targetID, targetType)
	if err != nil {
		return nil, err
	}

	items, nextKey, err := s.Store.QueryItems(ctx, models.FollowersTable, models.FollowingIndex, []KeyCond{
		{Name: "following", Value: &types.AttributeValueMemberS{Value: targetID}},
	}, limit, startKey)
	if err != nil {
		return nil, err
	}

	var followers []models.Follower
	if err := attributevalue.UnmarshalListOfMaps(items, &followers); err != nil {
		return nil, err
	}
	for i := range followers {
		followers[i].FollowerProfile = s.Guard.PublicProfileOf(ctx, followers[i].Follower)
	}

	return &FollowerPage{Followers: followers, FollowersCount: count, NextKey: nextKey}, nil
}

func (s *FollowerService) counterTarget(ctx context.Context, targetID, targetType string) (string, map[string]types.AttributeValue, error) {
	switch targetType {
	case models.FollowTargetUser:
		if _, err := s.Guard.RequireUser(ctx, targetID); err != nil {
			return "", nil, err
		}
		return models.UsersTable, stringKey("userId", targetID), nil
	case models.FollowTargetPage:
		if _, err := s.Guard.RequirePage(ctx, targetID); err != nil {
			return "", nil, err
		}
		return models.PagesTable, stringKey("pageId", targetID), nil
	default:
		return "", nil, fmt.Errorf("invalid follow target type %q", targetType)
	}
}

func (s *FollowerService) followersCount(ctx context.Context, targetID, targetType string) (int, error) {
	switch targetType {
	case models.FollowTargetUser:
		user, err := s.Guard.RequireUser(ctx, targetID)
		if err != nil {
			return 0, err
		}
		return user.FollowersCount, nil
	case models.FollowTargetPage:
		page, err := s.Guard.RequirePage(ctx, targetID)
		if err != nil {
			return 0, err
		}
		return page.FollowersCount, nil
	default:
		return 0, fmt.Errorf("invalid follow target type %q", targetType)
	}
}
