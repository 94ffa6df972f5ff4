package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdesk/task-system/internal/core/domain"
	"github.com/taskdesk/task-system/internal/core/ports"
)

// ProvisionService seeds the bootstrap admin account. It runs from a
// dedicated deployment-time command, never on API process start, and is
// idempotent: re-running against a provisioned store is a no-op.
type ProvisionService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewProvisionService(repo ports.UserRepository, log zerolog.Logger) *ProvisionService {
	return &ProvisionService{repo: repo, log: log}
}

// EnsureAdmin creates the pre-approved admin user if it does not exist.
// Returns the admin user either way.
func (s *ProvisionService) EnsureAdmin(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, errors.New("provision: admin email and password are required")
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		s.log.Info().Str("email", email).Msg("admin already provisioned")
		return existing, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("provision: lookup admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("provision: hash password: %w", err)
	}

	now := time.Now().UTC()
	admin, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		Approved:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// A concurrent provision run may have won the unique-index race.
		if errors.Is(err, domain.ErrUserExists) {
			return s.repo.FindByEmail(ctx, email)
		}
		return nil, fmt.Errorf("provision: create admin: %w", err)
	}

	s.log.Info().Str("user_id", admin.ID).Str("email", email).Msg("admin provisioned")
	return admin, nil
}
