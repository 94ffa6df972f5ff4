package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskdesk/task-system/internal/api/metrics"
	"github.com/taskdesk/task-system/internal/core/ports"
)

// ApprovalService lists pending users and flips their approval flag.
// RBAC (admin only) is enforced at the routing layer; this service
// assumes the caller is already authorized.
type ApprovalService struct {
	repo   ports.UserRepository
	notify NotificationEnqueuer
	log    zerolog.Logger
}

func NewApprovalService(repo ports.UserRepository, notify NotificationEnqueuer, log zerolog.Logger) *ApprovalService {
	return &ApprovalService{repo: repo, notify: notify, log: log}
}

// ListPending returns unapproved users in insertion order.
func (s *ApprovalService) ListPending(ctx context.Context) ([]ports.PendingUser, error) {
	users, err := s.repo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending users: %w", err)
	}

	pending := make([]ports.PendingUser, 0, len(users))
	for _, u := range users {
		pending = append(pending, ports.PendingUser{ID: u.ID, Email: u.Email})
	}
	return pending, nil
}

// Approve sets approved = true on the user. Approving twice is a no-op
// success; the single one-way transition makes last-writer-wins safe
// under concurrent admin actions.
func (s *ApprovalService) Approve(ctx context.Context, userID string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Approved {
		return nil
	}

	if err := s.repo.SetApproved(ctx, userID, true); err != nil {
		return err
	}

	metrics.ApprovalsTotal.Inc()
	s.log.Info().Str("user_id", userID).Str("email", user.Email).Msg("user approved")

	if s.notify != nil {
		s.notify.Enqueue(ports.NotificationInput{
			Recipient: user.Email,
			Kind:      ports.NotificationApproved,
			Subject:   "Your account was approved",
			Body:      "An administrator approved your account. You can now create tasks.",
		})
	}

	return nil
}
