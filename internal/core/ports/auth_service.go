package ports

import (
	"context"
	"time"

	"github.com/taskdesk/task-system/internal/core/domain"
)

// AuthService implements signup, login, and token revocation.
type AuthService interface {
	// Signup registers a new unapproved user with the default role.
	Signup(ctx context.Context, email, password string) (*domain.User, error)
	// Login verifies credentials and mints a bearer token. It fails with
	// domain.ErrInvalidCredentials whether the email is unknown or the
	// password mismatches, so callers cannot probe for registered emails.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Revoke denylists the token identified by jti until expiresAt.
	// Revoking an already-revoked token succeeds.
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
}
