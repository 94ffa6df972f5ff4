package ports

import (
	"context"

	"github.com/taskdesk/task-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
//
// Create must fail with domain.ErrUserExists on a duplicate email without
// mutating stored state; the uniqueness guarantee lives in the storage
// layer (unique index), not in application-level locking.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// SetApproved flips the approval flag. Returns domain.ErrUserNotFound
	// when no user has the given id; setting an already-set flag is a no-op.
	SetApproved(ctx context.Context, id string, approved bool) error
	// ListPending returns all unapproved users in insertion order.
	ListPending(ctx context.Context) ([]*domain.User, error)
}
