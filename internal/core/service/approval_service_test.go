package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/taskdesk/task-system/internal/core/domain"
	"github.com/taskdesk/task-system/internal/core/ports"
)

func seedUser(t *testing.T, repo *stubUserRepo, email string, approved bool) *domain.User {
	t.Helper()
	u, err := repo.Create(context.Background(), &domain.User{
		Email:    email,
		Role:     domain.RoleCustomer,
		Approved: approved,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

func TestApprovalService_ListPending(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewApprovalService(repo, nil, zerolog.Nop())

	first := seedUser(t, repo, "first@example.com", false)
	seedUser(t, repo, "approved@example.com", true)
	second := seedUser(t, repo, "second@example.com", false)

	pending, err := svc.ListPending(context.Background())
	if err != nil {
		t.Fatalf("ListPending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending users, got %d", len(pending))
	}
	// insertion order
	if pending[0].ID != first.ID || pending[1].ID != second.ID {
		t.Fatalf("unexpected order: %+v", pending)
	}
	if pending[0].Email != "first@example.com" {
		t.Fatalf("unexpected email: %s", pending[0].Email)
	}
}

func TestApprovalService_Approve(t *testing.T) {
	repo := newStubUserRepo()
	notify := &stubEnqueuer{}
	svc := NewApprovalService(repo, notify, zerolog.Nop())

	u := seedUser(t, repo, "pending@example.com", false)

	if err := svc.Approve(context.Background(), u.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	got, _ := repo.FindByID(context.Background(), u.ID)
	if !got.Approved {
		t.Fatalf("expected user to be approved")
	}
	if len(notify.sent) != 1 || notify.sent[0].Kind != ports.NotificationApproved {
		t.Fatalf("expected one approval notification, got %+v", notify.sent)
	}
}

func TestApprovalService_Approve_Idempotent(t *testing.T) {
	repo := newStubUserRepo()
	notify := &stubEnqueuer{}
	svc := NewApprovalService(repo, notify, zerolog.Nop())

	u := seedUser(t, repo, "twice@example.com", false)

	if err := svc.Approve(context.Background(), u.ID); err != nil {
		t.Fatalf("first approve failed: %v", err)
	}
	if err := svc.Approve(context.Background(), u.ID); err != nil {
		t.Fatalf("second approve should be a no-op success: %v", err)
	}

	got, _ := repo.FindByID(context.Background(), u.ID)
	if !got.Approved {
		t.Fatalf("expected user to remain approved")
	}
	// second approve must not re-notify
	if len(notify.sent) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(notify.sent))
	}
}

func TestApprovalService_Approve_NotFound(t *testing.T) {
	svc := NewApprovalService(newStubUserRepo(), nil, zerolog.Nop())

	if err := svc.Approve(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
