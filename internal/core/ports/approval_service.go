package ports

import (
	"context"
)

// PendingUser is the listing item surfaced to admins.
type PendingUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ApprovalService lists unapproved users and approves them.
// Both operations are reachable only through the admin-gated routes.
type ApprovalService interface {
	// ListPending returns unapproved users in insertion order.
	ListPending(ctx context.Context) ([]PendingUser, error)
	// Approve marks the user approved. Idempotent: approving an
	// already-approved user is a success. Fails with
	// domain.ErrUserNotFound on an unknown id.
	Approve(ctx context.Context, userID string) error
}
