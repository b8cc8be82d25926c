package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"social_server/models"
)

func TestSendFriendRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending request keyed by the sorted pair", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(t, "bob")
		env.addUser(t, "alice")

		request, err := env.friendships.SendFriendRequest(ctx, "bob", "alice")
		if err != nil {
			t.Fatalf("SendFriendRequest() error = %v", err)
		}
		if request.Status != models.StatusPending {
			t.Errorf("status = %q, want %q", request.Status, models.StatusPending)
		}
		if want := models.PairKey("alice", "bob"); request.PairKey != want {
			t.Errorf("pairKey = %q, want %q", request.PairKey, want)
		}
	})

	t.Run("rejects a self request", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(t, "alice")

		if _, err := env.friendships.SendFriendRequest(ctx, "alice", "alice"); !errors.Is(err, ErrSelfAction) {
			t.Errorf("error = %v, want ErrSelfAction", err)
		}
	})

	t.Run("rejects missing participants", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(t, "alice")

		if _, err := env.friendships.SendFriendRequest(ctx, "ghost", "alice"); !errors.Is(err, ErrNotFound) {
			t.Errorf("missing sender: error = %v, want ErrNotFound", err)
		}
		if _, err := env.friendships.SendFriendRequest(ctx, "alice", "ghost"); !errors.Is(err, ErrNotFound) {
			t.Errorf("missing recipient: error = %v, want ErrNotFound", err)
		}
	})

	t.Run("one outstanding request per pair in either direction", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(t, "alice")
		env.addUser(t, "bob")

		if _, err := env.friendships.SendFriendRequest(ctx, "alice", "bob"); err != nil {
			t.Fatalf("first send: %v", err)
		}
		if _, err := env.friendships.SendFriendRequest(ctx, "alice", "bob"); !errors.Is(err, ErrConflict) {
			t.Errorf("same direction: error = %v, want ErrConflict", err)
		}
		if _, err := env.friendships.SendFriendRequest(ctx, "bob", "alice"); !errors.Is(err, ErrConflict) {
			t.Errorf("reverse direction: error = %v, want ErrConflict", err)
		}
	})

	t.Run("rejects a blocked pair in either direction", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(t, "alice")
		env.addUser(t, "bob")

		if _, err := env.blocks.BlockUser(ctx, "alice", "bob"); err != nil {
			t.Fatalf("BlockUser() error = %v", err)
		}
		if _, err := env.friendships.SendFriendRequest(ctx, "alice", "bob"); !errors.Is(err, ErrBlocked) {
			t.Errorf("blocker sends: error = %v, want ErrBlocked", err)
		}
		if _, err := env.friendships.SendFriendRequest(ctx, "bob", "alice"); !errors.Is(err, ErrBlocked) {
			t.Errorf("blocked sends: error = %v, want ErrBlocked", err)
		}
	})

	t.Run("rejects an existing friendship", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(t, "alice")
		env.addUser(t, "bob")

		if _, err := env.friendships.SendFriendRequest(ctx, "alice", "bob"); err != nil {
			t.Fatalf("send: %v", err)
		}
		if err := env.friendships.RespondFriendRequest(ctx, "bob", models.PairKey("alice", "bob"), models.StatusAccepted); err != nil {
			t.Fatalf("respond: %v", err)
		}
		if _, err := env.friendships.SendFriendRequest(ctx, "alice", "bob"); !errors.Is(err, ErrAlreadyExists) {
			t.Errorf("error = %v, want ErrAlreadyExists", err)
		}
	})

	t.Run("enforces the friend list cap on both sides", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(t, "alice")
		env.addUser(t, "bob")

		for i := 0; i < models.MaxFriendCount; i++ {
			friendship := models.Friendship{
				PairKey: models.PairKey("bob", fmt.Sprintf("friend-%04d", i)),
				User:    "bob",
				Friend:  fmt.Sprintf("friend-%04d", i),
			}
			if err := env.store.PutItem(ctx, models.FriendshipsTable, friendship); err != nil {
				t.Fatalf("seeding friendships: %v", err)
			}
		}

		if _, err := env.friendships.SendFriendRequest(ctx, "bob", "alice"); !errors.Is(err, ErrCapacityExceeded) {
			t.Errorf("full sender: error = %v, want ErrCapacityExceeded", err)
		}
		if _, err := env.friendships.SendFriendRequest(ctx, "alice", "bob"); !errors.Is(err, ErrCapacityExceeded) {
			t.Errorf("full recipient: error = %v, want ErrCapacityExceeded", err)
		}
	})
}

func TestRespondFriendRequest(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*testEnv, string) {
		env := newTestEnv()
		env.addUser(t, "alice")
		env.addUser(t, "bob")
		request, err := env.friendships.SendFriendRequest(ctx, "alice", "bob")
		if err != nil {
			t.Fatalf("send: %v", err)
		}
		return env, request.PairKey
	}

	t.Run("acceptance creates the friendship and deletes the request", func(t *testing.T) {
		env, requestID := setup(t)

		if err := env.friendships.RespondFriendRequest(ctx, "bob", requestID, models.StatusAccepted); err != nil {
			t.Fatalf("RespondFriendRequest() error = %v", err)
		}
		if !env.friendshipExists(t, "alice", "bob") {
			t.Error("friendship was not created")
		}
		if env.friendRequestExists(t, "alice", "bob") {
			t.Error("friend request still exists after acceptance")
		}
	})

	t.Run("decline deletes the request without a friendship", func(t *testing.T) {
		env, requestID := setup(t)

		if err := env.friendships.RespondFriendRequest(ctx, "bob", requestID, models.StatusDeclined); err != nil {
			t.Fatalf("RespondFriendRequest() error = %v", err)
		}
		if env.friendshipExists(t, "alice", "bob") {
			t.Error("friendship was created on decline")
		}
		if env.friendRequestExists(t, "alice", "bob") {
			t.Error("friend request still exists after decline")
		}
	})

	t.Run("only the recipient may respond", func(t *testing.T) {
		env, requestID := setup(t)

		if err := env.friendships.RespondFriendRequest(ctx, "alice", requestID, models.StatusAccepted); !errors.Is(err, ErrNotAuthorized) {
			t.Errorf("error = %v, want ErrNotAuthorized", err)
		}
	})

	t.Run("missing request", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(t, "bob")

		if err := env.friendships.RespondFriendRequest(ctx, "bob", "nope", models.StatusAccepted); !errors.Is(err, ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestCancelFriendRequest(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.addUser(t, "alice")
	env.addUser(t, "bob")

	request, err := env.friendships.SendFriendRequest(ctx, "alice", "bob")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if err := env.friendships.CancelFriendRequest(ctx, "bob", request.PairKey); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("recipient cancels: error = %v, want ErrNotAuthorized", err)
	}
	if err := env.friendships.CancelFriendRequest(ctx, "alice", request.PairKey); err != nil {
		t.Fatalf("CancelFriendRequest() error = %v", err)
	}
	if env.friendRequestExists(t, "alice", "bob") {
		t.Error("friend request still exists after cancel")
	}
}

func TestListFriendRequests(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.addUser(t, "alice")
	env.addUser(t, "bob")
	env.addUser(t, "carol")

	if _, err := env.friendships.SendFriendRequest(ctx, "alice", "bob"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := env.friendships.SendFriendRequest(ctx, "carol", "alice"); err != nil {
		t.Fatalf("send: %v", err)
	}

	sent, err := env.friendships.ListFriendRequests(ctx, "alice", "sent")
	if err != nil {
		t.Fatalf("ListFriendRequests(sent) error = %v", err)
	}
	if len(sent) != 1 || sent[0].SentTo != "bob" {
		t.Errorf("sent = %+v, want one request to bob", sent)
	}
	if sent[0].Counterpart == nil || sent[0].Counterpart.Username != "bob-name" {
		t.Errorf("sent counterpart = %+v, want bob's public profile", sent[0].Counterpart)
	}

	received, err := env.friendships.ListFriendRequests(ctx, "alice", "received")
	if err != nil {
		t.Fatalf("ListFriendRequests(received) error = %v", err)
	}
	if len(received) != 1 || received[0].Sender != "carol" {
		t.Errorf("received = %+v, want one request from carol", received)
	}

	if _, err := env.friendships.ListFriendRequests(ctx, "alice", "sideways"); err == nil {
		t.Error("invalid direction accepted")
	}
}

func TestDeleteFriendship(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.addUser(t, "alice")
	env.addUser(t, "bob")
	env.addUser(t, "carol")

	if _, err := env.friendships.SendFriendRequest(ctx, "alice", "bob"); err != nil {
		t.Fatalf("send: %v", err)
	}
	pairKey := models.PairKey("alice", "bob")
	if err := env.friendships.RespondFriendRequest(ctx, "bob", pairKey, models.StatusAccepted); err != nil {
		t.Fatalf("respond: %v", err)
	}

	if err := env.friendships.DeleteFriendship(ctx, "carol", pairKey); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("outsider unfriends: error = %v, want ErrNotAuthorized", err)
	}
	if err := env.friendships.DeleteFriendship(ctx, "alice", pairKey); err != nil {
		t.Fatalf("DeleteFriendship() error = %v", err)
	}
	if env.friendshipExists(t, "alice", "bob") {
		t.Error("friendship still exists after unfriend")
	}
}
