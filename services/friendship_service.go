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

// FriendshipService runs the friend-request workflow and owns the resulting
// friendships. A friend request lives only while pending: acceptance turns it
// into a friendship and deletes it in the same transaction, decline and
// cancel just delete it.
type FriendshipService struct {
	Store    EntityStore
	Guard    *GuardService
	Notifier *NotificationService
}

// SendFriendRequest creates a pending friend request from sender to
// recipient. The sorted-pair key is the table key, so a second outstanding
// request for the pair — in either direction — fails with ErrConflict even
// when two sends race.
func (s *FriendshipService) SendFriendRequest(ctx context.Context, senderID, recipientID string) (*models.FriendRequest, error) {
	if err := PreventSelfAction(senderID, recipientID); err != nil {
		return nil, err
	}
	if _, err := s.Guard.RequireUser(ctx, senderID); err != nil {
		return nil, err
	}
	if _, err := s.Guard.RequireUser(ctx, recipientID); err != nil {
		return nil, err
	}
	if err := s.Guard.RequireNotBlocked(ctx, senderID, recipientID); err != nil {
		return nil, err
	}

	pairKey := models.PairKey(senderID, recipientID)

	_, err := s.Store.GetItem(ctx, models.FriendshipsTable, stringKey("pairKey", pairKey))
	if err == nil {
		return nil, ErrAlreadyExists
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	for _, userID := range []string{senderID, recipientID} {
		count, err := s.friendCount(ctx, userID)
		if err != nil {
			return nil, err
		}
		if count >= models.MaxFriendCount {
			return nil, ErrCapacityExceeded
		}
	}

	request := models.FriendRequest{
		PairKey:   pairKey,
		Sender:    senderID,
		SentTo:    recipientID,
		Status:    models.StatusPending,
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	if err := s.Store.PutNewItem(ctx, models.FriendRequestsTable, request, "pairKey"); err != nil {
		return nil, err
	}

	log.Printf("friend request sent: %s -> %s", senderID, recipientID)
	s.Notifier.Notify(recipientID, "friendRequestReceived", request)
	return &request, nil
}

// RespondFriendRequest accepts or declines a pending friend request. Only
// the recipient may respond. Acceptance creates the friendship and deletes
// the request in one transaction, so neither can exist without the other
// having been handled.
func (s *FriendshipService) RespondFriendRequest(ctx context.Context, responderID, requestID, decision string) error {
	request, err := s.getFriendRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if err := AssertSameUser(request.SentTo, responderID); err != nil {
		return err
	}
	if request.Status != models.StatusPending {
		return ErrInvalidState
	}

	requestKey := stringKey("pairKey", request.PairKey)

	switch decision {
	case models.StatusAccepted:
		friendship := models.Friendship{
			PairKey:   request.PairKey,
			User:      responderID,
			Friend:    request.Sender,
			CreatedAt: time.Now().Format(time.RFC3339),
		}
		err := s.Store.TransactWrite(ctx,
			Write{Table: models.FriendshipsTable, Put: friendship, IfAbsent: "pairKey"},
			Write{Table: models.FriendRequestsTable, Key: requestKey},
		)
		if err != nil {
			return err
		}
		log.Printf("friend request accepted: %s and %s are now friends", responderID, request.Sender)
		s.Notifier.Notify(request.Sender, "friendRequestAccepted", friendship)
		return nil

	case models.StatusDeclined:
		return s.Store.DeleteItem(ctx, models.FriendRequestsTable, requestKey)

	default:
		return fmt.Errorf("invalid friend request decision %q", decision)
	}
}

// CancelFriendRequest deletes a request the caller sent.
func (s *FriendshipService) CancelFriendRequest(ctx context.Context, senderID, requestID string) error {
	request, err := s.getFriendRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if err := AssertSameUser(request.Sender, senderID); err != nil {
		return err
	}
	return s.Store.DeleteItem(ctx, models.FriendRequestsTable, stringKey("pairKey", request.PairKey))
}

// ListFriendRequests returns the user's outstanding requests in one
// direction, each populated with the counterpart's public profile.
func (s *FriendshipService) ListFriendRequests(ctx context.Context, userID, direction string) ([]models.FriendRequest, error) {
	if _, err := s.Guard.RequireUser(ctx, userID); err != nil {
		return nil, err
	}

	var index, attr string
	switch direction {
	case "sent":
		index, attr = models.FriendRequestSenderIndex, "sender"
	case "received":
		index, attr = models.FriendRequestSentToIndex, "sentTo"
	default:
		return nil, fmt.Errorf("invalid friend request direction %q", direction)
	}

	items, _, err := s.Store.QueryItems(ctx, models.FriendRequestsTable, index, []KeyCond{
		{Name: attr, Value: &types.AttributeValueMemberS{Value: userID}},
	}, 0, nil)
	if err != nil {
		return nil, err
	}

	var requests []models.FriendRequest
	if err := attributevalue.UnmarshalListOfMaps(items, &requests); err != nil {
		return nil, err
	}
	for i := range requests {
		counterpart := requests[i].SentTo
		if direction == "received" {
			counterpart = requests[i].Sender
		}
		requests[i].Counterpart = s.Guard.PublicProfileOf(ctx, counterpart)
	}
	return requests, nil
}

// ListFriendships returns every friendship the user is part of, on either
// side of the stored direction.
func (s *FriendshipService) ListFriendships(ctx context.Context, userID string) ([]models.Friendship, error) {
	if _, err := s.Guard.RequireUser(ctx, userID); err != nil {
		return nil, err
	}

	var friendships []models.Friendship
	for index, attr := range map[string]string{
		models.FriendshipUserIndex:   "user",
		models.FriendshipFriendIndex: "friend",
	} {
		items, _, err := s.Store.QueryItems(ctx, models.FriendshipsTable, index, []KeyCond{
			{Name: attr, Value: &types.AttributeValueMemberS{Value: userID}},
		}, 0, nil)
		if err != nil {
			return nil, err
		}
		var batch []models.Friendship
		if err := attributevalue.UnmarshalListOfMaps(items, &batch); err != nil {
			return nil, err
		}
		friendships = append(friendships, batch...)
	}
	return friendships, nil
}

// DeleteFriendship removes a friendship; either participant may do so.
func (s *FriendshipService) DeleteFriendship(ctx context.Context, userID, friendshipID string) error {
	item, err := s.Store.GetItem(ctx, models.FriendshipsTable, stringKey("pairKey", friendshipID))
	if err != nil {
		return err
	}
	var friendship models.Friendship
	if err := attributevalue.UnmarshalMap(item, &friendship); err != nil {
		return err
	}
	if friendship.User != userID && friendship.Friend != userID {
		return ErrNotAuthorized
	}
	return s.Store.DeleteItem(ctx, models.FriendshipsTable, stringKey("pairKey", friendship.PairKey))
}

func (s *FriendshipService) getFriendRequest(ctx context.Context, requestID string) (*models.FriendRequest, error) {
	item, err := s.Store.GetItem(ctx, models.FriendRequestsTable, stringKey("pairKey", requestID))
	if err != nil {
		return nil, err
	}
	var request models.FriendRequest
	if err := attributevalue.UnmarshalMap(item, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

func (s *FriendshipService) friendCount(ctx context.Context, userID string) (int, error) {
	total := 0
	for index, attr := range map[string]string{
		models.FriendshipUserIndex:   "user",
		models.FriendshipFriendIndex: "friend",
	} {
		count, err := s.Store.CountItems(ctx, models.FriendshipsTable, index, []KeyCond{
			{Name: attr, Value: &types.AttributeValueMemberS{Value: userID}},
		})
		if err != nil {
			return 0, err
		}
		total += count
	}
	return total, nil
}
