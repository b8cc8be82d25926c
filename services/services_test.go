package services

import (
	"context"
	"errors"
	"testing"

	"social_server/models"
)

// testEnv wires every workflow against one in-memory store, the same way
// main.go wires them against DynamoDB.
type testEnv struct {
	store       *MemoryStore
	guard       *GuardService
	friendships *FriendshipService
	blocks      *BlockService
	followers   *FollowerService
	groups      *GroupService
}

func newTestEnv() *testEnv {
	store := NewMemoryStore()
	guard := &GuardService{Store: store}
	notifier := &NotificationService{} // no socket server: notifications are dropped
	return &testEnv{
		store:       store,
		guard:       guard,
		friendships: &FriendshipService{Store: store, Guard: guard, Notifier: notifier},
		blocks:      &BlockService{Store: store, Guard: guard},
		followers:   &FollowerService{Store: store, Guard: guard},
		groups:      &GroupService{Store: store, Guard: guard, Notifier: notifier},
	}
}

func (e *testEnv) addUser(t *testing.T, userID string) {
	t.Helper()
	user := models.User{UserID: userID, Username: userID + "-name", Role: models.RoleUser}
	if err := e.store.PutItem(context.Background(), models.UsersTable, user); err != nil {
		t.Fatalf("failed to seed user %s: %v", userID, err)
	}
}

func (e *testEnv) addPage(t *testing.T, pageID string) {
	t.Helper()
	page := models.Page{PageID: pageID, PageName: pageID + "-page", CreatedBy: "owner"}
	if err := e.store.PutItem(context.Background(), models.PagesTable, page); err != nil {
		t.Fatalf("failed to seed page %s: %v", pageID, err)
	}
}

func (e *testEnv) friendshipExists(t *testing.T, userA, userB string) bool {
	t.Helper()
	_, err := e.store.GetItem(context.Background(), models.FriendshipsTable, stringKey("pairKey", models.PairKey(userA, userB)))
	if err != nil && !errors.Is(err, ErrNotFound) {
		t.Fatalf("unexpected error checking friendship: %v", err)
	}
	return err == nil
}

func (e *testEnv) friendRequestExists(t *testing.T, userA, userB string) bool {
	t.Helper()
	_, err := e.store.GetItem(context.Background(), models.FriendRequestsTable, stringKey("pairKey", models.PairKey(userA, userB)))
	if err != nil && !errors.Is(err, ErrNotFound) {
		t.Fatalf("unexpected error checking friend request: %v", err)
	}
	return err == nil
}

func (e *testEnv) followersCountOfUser(t *testing.T, userID string) int {
	t.Helper()
	user, err := e.guard.RequireUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("failed to load user %s: %v", userID, err)
	}
	return user.FollowersCount
}
