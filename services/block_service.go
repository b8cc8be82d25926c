package services

import (
	"context"
	"log"
	"time"

	"social_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// BlockService creates and removes block edges. Blocking cascades: the block
// row, the deletion of any friendship for the pair, and the deletion of any
// outstanding friend request between them land in one transaction, so a
// half-applied block can never leave a friendship dangling.
type BlockService struct {
	Store EntityStore
	Guard *GuardService
}

// BlockUser blocks the target on behalf of the blocker.
func (s *BlockService) BlockUser(ctx context.Context, blockerID, targetID string) (*models.Block, error) {
	if err := PreventSelfAction(blockerID, targetID); err != nil {
		return nil, err
	}
	if _, err := s.Guard.RequireUser(ctx, blockerID); err != nil {
		return nil, err
	}
	if _, err := s.Guard.RequireUser(ctx, targetID); err != nil {
		return nil, err
	}

	pairKey := models.PairKey(blockerID, targetID)

	existing, err := s.blocksForPair(ctx, pairKey)
	if err != nil {
		return nil, err
	}
	for _, b := range existing {
		if b.User == blockerID {
			return nil, ErrAlreadyExists
		}
	}

	block := models.Block{
		BlockID:     uuid.New().String(),
		User:        blockerID,
		BlockedUser: targetID,
		PairKey:     pairKey,
		CreatedAt:   time.Now().Format(time.RFC3339),
	}

	// Friendship and friend request share the pair key with the block, so
	// both possible orderings and directions collapse into two deletes.
	err = s.Store.TransactWrite(ctx,
		Write{Table: models.BlocksTable, Put: block},
		Write{Table: models.FriendshipsTable, Key: stringKey("pairKey", pairKey)},
		Write{Table: models.FriendRequestsTable, Key: stringKey("pairKey", pairKey)},
	)
	if err != nil {
		return nil, err
	}

	log.Printf("user %s blocked %s", blockerID, targetID)
	return &block, nil
}

// Unblock removes a block; only the blocker may do so. Nothing cascaded away
// by the block is restored.
func (s *BlockService) Unblock(ctx context.Context, blockerID, blockID string) error {
	item, err := s.Store.GetItem(ctx, models.BlocksTable, stringKey("blockId", blockID))
	if err != nil {
		return err
	}
	var block models.Block
	if err := attributevalue.UnmarshalMap(item, &block); err != nil {
		return err
	}
	if err := AssertSameUser(block.User, blockerID); err != nil {
		return err
	}
	return s.Store.DeleteItem(ctx, models.BlocksTable, stringKey("blockId", blockID))
}

// ListBlocks returns the blocks the user has created.
func (s *BlockService) ListBlocks(ctx context.Context, blockerID string) ([]models.Block, error) {
	if _, err := s.Guard.RequireUser(ctx, blockerID); err != nil {
		return nil, err
	}

	items, _, err := s.Store.QueryItems(ctx, models.BlocksTable, models.BlockUserIndex, []KeyCond{
		{Name: "user", Value: &types.AttributeValueMemberS{Value: blockerID}},
	}, 0, nil)
	if err != nil {
		return nil, err
	}
	var blocks []models.Block
	if err := attributevalue.UnmarshalListOfMaps(items, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

func (s *BlockService) blocksForPair(ctx context.Context, pairKey string) ([]models.Block, error) {
	items, _, err := s.Store.QueryItems(ctx, models.BlocksTable, models.BlockPairIndex, []KeyCond{
		{Name: "pairKey", Value: &types.AttributeValueMemberS{Value: pairKey}},
	}, 0, nil)
	if err != nil {
		return nil, err
	}
	var blocks []models.Block
	if err := attributevalue.UnmarshalListOfMaps(items, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}
