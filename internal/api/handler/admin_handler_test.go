package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskdesk/task-system/internal/core/domain"
	"github.com/taskdesk/task-system/internal/core/ports"
)

type stubApprovalService struct {
	listFn    func(ctx context.Context) ([]ports.PendingUser, error)
	approveFn func(ctx context.Context, userID string) error
}

func (s *stubApprovalService) ListPending(ctx context.Context) ([]ports.PendingUser, error) {
	return s.listFn(ctx)
}

func (s *stubApprovalService) Approve(ctx context.Context, userID string) error {
	return s.approveFn(ctx, userID)
}

func TestAdminHandler_Pending(t *testing.T) {
	h := NewAdminHandler(&stubApprovalService{
		listFn: func(ctx context.Context) ([]ports.PendingUser, error) {
			return []ports.PendingUser{
				{ID: "u1", Email: "first@example.com"},
				{ID: "u2", Email: "second@example.com"},
			}, nil
		},
	})

	c, rec := newTestContext(t, http.MethodGet, "/admin/pending", "")

	if err := h.Pending(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0]["email"] != "first@example.com" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAdminHandler_Approve_Success(t *testing.T) {
	approved := ""
	h := NewAdminHandler(&stubApprovalService{
		approveFn: func(ctx context.Context, userID string) error {
			approved = userID
			return nil
		},
	})

	c, rec := newTestContext(t, http.MethodPost, "/admin/approve", `{"user_id":"u42"}`)

	if err := h.Approve(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if approved != "u42" {
		t.Fatalf("expected approve call with u42, got %q", approved)
	}
}

func TestAdminHandler_Approve_MissingUserID(t *testing.T) {
	h := NewAdminHandler(&stubApprovalService{
		approveFn: func(ctx context.Context, userID string) error {
			t.Fatalf("service must not be called on invalid input")
			return nil
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/admin/approve", `{}`)

	err := h.Approve(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAdminHandler_Approve_NotFound(t *testing.T) {
	h := NewAdminHandler(&stubApprovalService{
		approveFn: func(ctx context.Context, userID string) error {
			return domain.ErrUserNotFound
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/admin/approve", `{"user_id":"missing"}`)

	if err := h.Approve(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound to propagate, got %v", err)
	}
}
