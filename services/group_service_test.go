package services

import (
	"context"
	"errors"
	"testing"

	"social_server/models"
)

func TestCreateGroup(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.addUser(t, "alice")

	group, err := env.groups.CreateGroup(ctx, "alice", "book club", false, "")
	if err != nil {
		t.Fatalf("CreateGroup() error = %v", err)
	}
	if group.CreatedBy != "alice" || group.IsPrivate {
		t.Errorf("group = %+v, want public group created by alice", group)
	}

	membership, err := env.guard.GetMembership(ctx, group.GroupID, "alice")
	if err != nil {
		t.Fatalf("creator membership missing: %v", err)
	}
	if membership.Role != models.MembershipRoleAdmin {
		t.Errorf("creator role = %q, want %q", membership.Role, models.MembershipRoleAdmin)
	}

	if _, err := env.groups.CreateGroup(ctx, "ghost", "haunt", false, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing creator: error = %v, want ErrNotFound", err)
	}
}

func TestJoinGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("a public group is joined directly", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(t, "alice")
		env.addUser(t, "bob")
		group, err := env.groups.CreateGroup(ctx, "alice", "book club", false, "")
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		outcome, err := env.groups.JoinGroup(ctx, "bob", group.GroupID)
		if err != nil {
			t.Fatalf("JoinGroup() error = %v", err)
		}
		if outcome != models.JoinOutcomeJoined {
			t.Errorf("outcome = %q, want %q", outcome, models.JoinOutcomeJoined)
		}
		membership, err := env.guard.GetMembership(ctx, group.GroupID, "bob")
		if err != nil {
			t.Fatalf("membership missing: %v", err)
		}
		if membership.Role != models.MembershipRoleMember {
			t.Errorf("role = %q, want %q", membership.Role, models.MembershipRoleMember)
		}

		if _, err := env.groups.JoinGroup(ctx, "bob", group.GroupID); !errors.Is(err, ErrAlreadyMember) {
			t.Errorf("rejoin: error = %v, want ErrAlreadyMember", err)
		}
	})

	t.Run("a private group files one pending request", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(t, "alice")
		env.addUser(t, "bob")
		group, err := env.groups.CreateGroup(ctx, "alice", "secret club", true, "")
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		outcome, err := env.groups.JoinGroup(ctx, "bob", group.GroupID)
		if err != nil {
			t.Fatalf("JoinGroup() error = %v", err)
		}
		if outcome != models.JoinOutcomePending {
			t.Errorf("outcome = %q, want %q", outcome, models.JoinOutcomePending)
		}
		if _, err := env.guard.GetMembership(ctx, group.GroupID, "bob"); !errors.Is(err, ErrNotFound) {
			t.Errorf("membership before review: error = %v, want ErrNotFound", err)
		}

		if _, err := env.groups.JoinGroup(ctx, "bob", group.GroupID); !errors.Is(err, ErrAlreadyRequested) {
			t.Errorf("second request: error = %v, want ErrAlreadyRequested", err)
		}
	})

	t.Run("the owner already holds a membership", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(t, "alice")
		group, err := env.groups.CreateGroup(ctx, "alice", "book club", true, "")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := env.groups.JoinGroup(ctx, "alice", group.GroupID); !errors.Is(err, ErrAlreadyMember) {
			t.Errorf("error = %v, want ErrAlreadyMember", err)
		}
	})

	t.Run("missing group and missing user", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(t, "alice")

		if _, err := env.groups.JoinGroup(ctx, "alice", "nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("missing group: error = %v, want ErrNotFound", err)
		}
		if _, err := env.groups.JoinGroup(ctx, "ghost", "nope"); !errors.Is(err, ErrNotFound) {
			t.Errorf("missing user: error = %v, want ErrNotFound", err)
		}
	})
}

func TestReviewJoinRequest(t *testing.T) {
	ctx := context.Background()

	// Private group owned by alice, with a pending request from bob.
	setup := func(t *testing.T) (*testEnv, *models.Group, *models.GroupJoinRequest) {
		env := newTestEnv()
		env.addUser(t, "alice")
		env.addUser(t, "bob")
		env.addUser(t, "carol")
		group, err := env.groups.CreateGroup(ctx, "alice", "secret club", true, "")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := env.groups.JoinGroup(ctx, "bob", group.GroupID); err != nil {
			t.Fatalf("join: %v", err)
		}
		request, err := env.groups.pendingJoinRequest(ctx, group.GroupID, "bob")
		if err != nil || request == nil {
			t.Fatalf("pending request missing: %v", err)
		}
		return env, group, request
	}

	t.Run("acceptance creates the membership and resolves the request", func(t *testing.T) {
		env, group, request := setup(t)

		if err := env.groups.ReviewJoinRequest(ctx, "alice", request.RequestID, models.StatusAccepted); err != nil {
			t.Fatalf("ReviewJoinRequest() error = %v", err)
		}
		if _, err := env.guard.GetMembership(ctx, group.GroupID, "bob"); err != nil {
			t.Errorf("membership missing after acceptance: %v", err)
		}

		resolved, err := env.groups.getJoinRequest(ctx, request.RequestID)
		if err != nil {
			t.Fatalf("resolved request missing: %v", err)
		}
		if resolved.Status != models.StatusAccepted || resolved.RespondedBy != "alice" || resolved.RespondedAt == "" {
			t.Errorf("resolved request = %+v, want accepted by alice with a timestamp", resolved)
		}

		// A resolved request cannot be reviewed again.
		if err := env.groups.ReviewJoinRequest(ctx, "alice", request.RequestID, models.StatusDeclined); !errors.Is(err, ErrInvalidState) {
			t.Errorf("re-review: error = %v, want ErrInvalidState", err)
		}
	})

	t.Run("decline resolves without a membership, and the user may ask again", func(t *testing.T) {
		env, group, request := setup(t)

		if err := env.groups.ReviewJoinRequest(ctx, "alice", request.RequestID, models.StatusDeclined); err != nil {
			t.Fatalf("ReviewJoinRequest() error = %v", err)
		}
		if _, err := env.guard.GetMembership(ctx, group.GroupID, "bob"); !errors.Is(err, ErrNotFound) {
			t.Errorf("membership after decline: error = %v, want ErrNotFound", err)
		}

		outcome, err := env.groups.JoinGroup(ctx, "bob", group.GroupID)
		if err != nil || outcome != models.JoinOutcomePending {
			t.Errorf("re-request: outcome = %q, err = %v; want pending", outcome, err)
		}
	})

	t.Run("only a group admin may review", func(t *testing.T) {
		env, _, request := setup(t)

		if err := env.groups.ReviewJoinRequest(ctx, "carol", request.RequestID, models.StatusAccepted); !errors.Is(err, ErrNotAuthorized) {
			t.Errorf("outsider: error = %v, want ErrNotAuthorized", err)
		}
		// The requester can't approve themselves either.
		if err := env.groups.ReviewJoinRequest(ctx, "bob", request.RequestID, models.StatusAccepted); !errors.Is(err, ErrNotAuthorized) {
			t.Errorf("requester: error = %v, want ErrNotAuthorized", err)
		}
	})

	t.Run("invalid decision and missing request", func(t *testing.T) {
		env, _, request := setup(t)

		if err := env.groups.ReviewJoinRequest(ctx, "alice", request.RequestID, "maybe"); err == nil {
			t.Error("invalid decision accepted")
		}
		if err := env.groups.ReviewJoinRequest(ctx, "alice", "nope", models.StatusAccepted); !errors.Is(err, ErrNotFound) {
			t.Errorf("missing request: error = %v, want ErrNotFound", err)
		}
	})
}

func TestCancelJoinRequest(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.addUser(t, "alice")
	env.addUser(t, "bob")
	group, err := env.groups.CreateGroup(ctx, "alice", "secret club", true, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := env.groups.JoinGroup(ctx, "bob", group.GroupID); err != nil {
		t.Fatalf("join: %v", err)
	}
	request, err := env.groups.pendingJoinRequest(ctx, group.GroupID, "bob")
	if err != nil || request == nil {
		t.Fatalf("pending request missing: %v", err)
	}

	if err := env.groups.CancelJoinRequest(ctx, "alice", request.RequestID); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("non-author cancels: error = %v, want ErrNotAuthorized", err)
	}
	if err := env.groups.CancelJoinRequest(ctx, "bob", request.RequestID); err != nil {
		t.Fatalf("CancelJoinRequest() error = %v", err)
	}
	if _, err := env.groups.getJoinRequest(ctx, request.RequestID); !errors.Is(err, ErrNotFound) {
		t.Errorf("request after cancel: error = %v, want ErrNotFound", err)
	}
}

func TestLeaveGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("a member leaves and any pending request goes with them", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(t, "alice")
		env.addUser(t, "bob")
		group, err := env.groups.CreateGroup(ctx, "alice", "book club", false, "")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := env.groups.JoinGroup(ctx, "bob", group.GroupID); err != nil {
			t.Fatalf("join: %v", err)
		}

		if err := env.groups.LeaveGroup(ctx, "bob", group.GroupID); err != nil {
			t.Fatalf("LeaveGroup() error = %v", err)
		}
		if _, err := env.guard.GetMembership(ctx, group.GroupID, "bob"); !errors.Is(err, ErrNotFound) {
			t.Errorf("membership after leave: error = %v, want ErrNotFound", err)
		}
	})

	t.Run("the owner cannot leave their own group", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(t, "alice")
		group, err := env.groups.CreateGroup(ctx, "alice", "book club", false, "")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := env.groups.LeaveGroup(ctx, "alice", group.GroupID); !errors.Is(err, ErrOwnerCannotLeave) {
			t.Errorf("error = %v, want ErrOwnerCannotLeave", err)
		}
	})

	t.Run("a non-member cannot leave", func(t *testing.T) {
		env := newTestEnv()
		env.addUser(t, "alice")
		env.addUser(t, "bob")
		group, err := env.groups.CreateGroup(ctx, "alice", "book club", false, "")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := env.groups.LeaveGroup(ctx, "bob", group.GroupID); !errors.Is(err, ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestListMembers(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.addUser(t, "alice")
	env.addUser(t, "bob")
	group, err := env.groups.CreateGroup(ctx, "alice", "book club", false, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := env.groups.JoinGroup(ctx, "bob", group.GroupID); err != nil {
		t.Fatalf("join: %v", err)
	}

	page, err := env.groups.ListMembers(ctx, group.GroupID, 0, nil)
	if err != nil {
		t.Fatalf("ListMembers() error = %v", err)
	}
	if len(page.Members) != 2 {
		t.Fatalf("members = %+v, want alice and bob", page.Members)
	}
	for _, m := range page.Members {
		if m.MemberProfile == nil || m.MemberProfile.Username != m.UserID+"-name" {
			t.Errorf("member %s profile = %+v, want populated public profile", m.UserID, m.MemberProfile)
		}
	}

	if _, err := env.groups.ListMembers(ctx, "nope", 0, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing group: error = %v, want ErrNotFound", err)
	}
}

func TestListJoinRequests(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.addUser(t, "alice")
	env.addUser(t, "bob")
	env.addUser(t, "carol")
	group, err := env.groups.CreateGroup(ctx, "alice", "secret club", true, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := env.groups.JoinGroup(ctx, "bob", group.GroupID); err != nil {
		t.Fatalf("join: %v", err)
	}
	if _, err := env.groups.JoinGroup(ctx, "carol", group.GroupID); err != nil {
		t.Fatalf("join: %v", err)
	}
	bobRequest, err := env.groups.pendingJoinRequest(ctx, group.GroupID, "bob")
	if err != nil || bobRequest == nil {
		t.Fatalf("pending request missing: %v", err)
	}
	if err := env.groups.ReviewJoinRequest(ctx, "alice", bobRequest.RequestID, models.StatusDeclined); err != nil {
		t.Fatalf("review: %v", err)
	}

	all, err := env.groups.ListJoinRequests(ctx, "alice", group.GroupID, "")
	if err != nil {
		t.Fatalf("ListJoinRequests() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all requests = %+v, want both of them", all)
	}

	pending, err := env.groups.ListJoinRequests(ctx, "alice", group.GroupID, models.StatusPending)
	if err != nil {
		t.Fatalf("ListJoinRequests(pending) error = %v", err)
	}
	if len(pending) != 1 || pending[0].UserID != "carol" {
		t.Errorf("pending = %+v, want only carol's request", pending)
	}

	if _, err := env.groups.ListJoinRequests(ctx, "bob", group.GroupID, ""); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("non-admin lists: error = %v, want ErrNotAuthorized", err)
	}

	public, err := env.groups.CreateGroup(ctx, "alice", "open club", false, "")
	if err != nil {
		t.Fatalf("create public: %v", err)
	}
	if _, err := env.groups.ListJoinRequests(ctx, "alice", public.GroupID, ""); err == nil {
		t.Error("listing join requests for a public group succeeded")
	}
}
