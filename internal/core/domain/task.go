package domain

import (
	"errors"
	"time"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	StatusOpen       TaskStatus = "open"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
	StatusArchived   TaskStatus = "archived"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[TaskStatus][]TaskStatus{
	StatusOpen:       {StatusInProgress, StatusArchived},
	StatusInProgress: {StatusDone, StatusArchived},
	StatusDone:       {StatusArchived},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrTaskNotFound = errors.New("task not found")
var ErrForbidden = errors.New("access forbidden")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Task is the generic work record gated by the approval flow.
type Task struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Status      TaskStatus `json:"status" bson:"status"`
	OwnerID     string     `json:"owner_id" bson:"owner_id"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// CanMutate reports whether a caller with the given id and role may
// update or delete this task. Owners always may; admins and managers
// may act on any task.
func (t *Task) CanMutate(callerID string, role Role) bool {
	return t.OwnerID == callerID || role.CanManage()
}
