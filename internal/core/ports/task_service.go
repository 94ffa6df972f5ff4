package ports

import (
	"context"

	"github.com/taskdesk/task-system/internal/core/domain"
)

// Caller identifies the authenticated actor behind a request, as
// extracted from the bearer token by the auth middleware.
type Caller struct {
	UserID string
	Role   domain.Role
}

// CreateTaskInput carries all data needed to create a new task.
type CreateTaskInput struct {
	Title       string
	Description string
}

// UpdateTaskInput carries the mutable task fields. Empty strings leave
// the corresponding field untouched.
type UpdateTaskInput struct {
	Title       string
	Description string
	Status      string
}

// TaskPage is a single page of a task listing.
type TaskPage struct {
	Tasks []*domain.Task
	Total int64
	Page  int
	Limit int
}

// TaskService implements the approval-gated task operations.
type TaskService interface {
	// Create stores a new task owned by the caller. The caller must be
	// approved; authenticated-but-unapproved users fail with
	// domain.ErrNotApproved.
	Create(ctx context.Context, caller Caller, in CreateTaskInput) (*domain.Task, error)
	// Get returns a task. Non-managing callers only see their own.
	Get(ctx context.Context, caller Caller, id string) (*domain.Task, error)
	// List returns a page of tasks, scoped to the caller unless the
	// caller's role can manage all records.
	List(ctx context.Context, caller Caller, filter ListTasksFilter) (*TaskPage, error)
	// Update mutates a task. Restricted to the owner or managing roles;
	// a disallowed status change fails with domain.ErrInvalidTransition.
	Update(ctx context.Context, caller Caller, id string, in UpdateTaskInput) (*domain.Task, error)
	// Delete removes a task. Restricted to the owner or managing roles.
	Delete(ctx context.Context, caller Caller, id string) error
}
