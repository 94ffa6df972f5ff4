package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdesk/task-system/internal/api/metrics"
	"github.com/taskdesk/task-system/internal/core/domain"
	"github.com/taskdesk/task-system/internal/core/ports"
)

const maxPageLimit = 100

// TaskService implements approval-gated task CRUD.
type TaskService struct {
	tasks  ports.TaskRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, users ports.UserRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, users: users, logger: logger}
}

// Create stores a new open task owned by the caller. The approval flag
// is read from the store at call time, not from the token: a user
// approved after login becomes able to create tasks with the same token.
func (s *TaskService) Create(ctx context.Context, caller ports.Caller, in ports.CreateTaskInput) (*domain.Task, error) {
	user, err := s.users.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve caller: %w", err)
	}
	if !user.Approved && user.Role != domain.RoleAdmin {
		return nil, domain.ErrNotApproved
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      domain.StatusOpen,
		OwnerID:     caller.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", caller.UserID).Msg("failed to create task")
		return nil, err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(caller.Role)).Inc()
	s.logger.Info().Str("task_id", created.ID).Str("owner_id", caller.UserID).Msg("task created")

	return created, nil
}

// Get returns a task, enforcing ownership for non-managing roles.
func (s *TaskService) Get(ctx context.Context, caller ports.Caller, id string) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != caller.UserID && !caller.Role.CanManage() {
		return nil, domain.ErrForbidden
	}
	return task, nil
}

// List returns a page of tasks. Non-managing callers are always scoped
// to their own records regardless of the requested filter.
func (s *TaskService) List(ctx context.Context, caller ports.Caller, filter ports.ListTasksFilter) (*ports.TaskPage, error) {
	if !caller.Role.CanManage() {
		filter.OwnerID = caller.UserID
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	tasks, total, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return &ports.TaskPage{Tasks: tasks, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// Update mutates title, description, and status. Status changes must
// follow the task state machine.
func (s *TaskService) Update(ctx context.Context, caller ports.Caller, id string, in ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !task.CanMutate(caller.UserID, caller.Role) {
		return nil, domain.ErrForbidden
	}

	if in.Title != "" {
		task.Title = in.Title
	}
	if in.Description != "" {
		task.Description = in.Description
	}
	if in.Status != "" {
		next := domain.TaskStatus(in.Status)
		if next != task.Status {
			if !task.Status.CanTransitionTo(next) {
				return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, task.Status, next)
			}
			task.Status = next
		}
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("task_id", id).Msg("failed to update task")
		return nil, err
	}

	s.logger.Info().Str("task_id", id).Str("status", string(task.Status)).Msg("task updated")
	return task, nil
}

// Delete removes a task after the same ownership check as Update.
func (s *TaskService) Delete(ctx context.Context, caller ports.Caller, id string) error {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !task.CanMutate(caller.UserID, caller.Role) {
		return domain.ErrForbidden
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("task_id", id).Str("deleted_by", caller.UserID).Msg("task deleted")
	return nil
}
