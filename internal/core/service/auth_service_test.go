package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskdesk/task-system/internal/core/domain"
	"github.com/taskdesk/task-system/internal/core/ports"
)

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	r.nextID++
	copy.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) SetApproved(_ context.Context, id string, approved bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Approved = approved
	return nil
}

func (r *stubUserRepo) ListPending(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var pending []*domain.User
	for i := 1; i <= r.nextID; i++ {
		if u, ok := r.users[fmt.Sprintf("u%d", i)]; ok && !u.Approved {
			pending = append(pending, cloneUser(u))
		}
	}
	return pending, nil
}

type stubDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]time.Duration)}
}

func (d *stubDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[jti] = ttl
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[jti]
	return ok, nil
}

type stubEnqueuer struct {
	mu   sync.Mutex
	sent []ports.NotificationInput
}

func (e *stubEnqueuer) Enqueue(n ports.NotificationInput) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sent = append(e.sent, n)
}

func newAuthService(repo ports.UserRepository, denylist TokenDenylist, notify NotificationEnqueuer) *AuthService {
	return NewAuthService(repo, denylist, notify, "secret", time.Hour, zerolog.Nop())
}

func TestAuthService_Signup_Success(t *testing.T) {
	repo := newStubUserRepo()
	notify := &stubEnqueuer{}
	svc := newAuthService(repo, newStubDenylist(), notify)

	user, err := svc.Signup(context.Background(), "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.DefaultRole {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if user.Approved {
		t.Fatalf("new user must start unapproved")
	}
	if len(notify.sent) != 1 || notify.sent[0].Kind != ports.NotificationWelcome {
		t.Fatalf("expected one welcome notification, got %+v", notify.sent)
	}
}

func TestAuthService_Signup_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubDenylist(), nil)

	if _, err := svc.Signup(context.Background(), "bob@example.com", "pass"); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.Signup(context.Background(), "bob@example.com", "pass2"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	// second attempt must not mutate the stored secret
	if _, _, err := svc.Login(context.Background(), "bob@example.com", "pass"); err != nil {
		t.Fatalf("original credentials no longer valid: %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubDenylist(), nil)

	created, err := svc.Signup(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.ID != created.ID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["email"] != "carol@example.com" {
		t.Fatalf("token email mismatch: %v", claims["email"])
	}
	if claims["sub"] != created.ID {
		t.Fatalf("token subject mismatch: %v", claims["sub"])
	}
	if claims["role"] != string(domain.DefaultRole) {
		t.Fatalf("token role mismatch: %v", claims["role"])
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Fatalf("token missing jti")
	}
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubDenylist(), nil)

	if _, err := svc.Signup(context.Background(), "dave@example.com", "right"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	// unknown email and wrong password must be indistinguishable
	_, _, errUnknown := svc.Login(context.Background(), "nobody@example.com", "whatever")
	_, _, errWrong := svc.Login(context.Background(), "dave@example.com", "wrong")

	if !errors.Is(errUnknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrong, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrong)
	}
}

func TestAuthService_Login_UnapprovedStillAuthenticates(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo, newStubDenylist(), nil)

	if _, err := svc.Signup(context.Background(), "eve@example.com", "pw"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "eve@example.com", "pw")
	if err != nil {
		t.Fatalf("unapproved login should succeed: %v", err)
	}
	if token == "" || user.Approved {
		t.Fatalf("expected token for unapproved user, token=%q approved=%v", token, user.Approved)
	}
}

func TestAuthService_Revoke(t *testing.T) {
	denylist := newStubDenylist()
	svc := newAuthService(newStubUserRepo(), denylist, nil)

	if err := svc.Revoke(context.Background(), "jti-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	revoked, _ := denylist.IsRevoked(context.Background(), "jti-1")
	if !revoked {
		t.Fatalf("expected jti-1 to be revoked")
	}

	// expired tokens need no denylist entry
	if err := svc.Revoke(context.Background(), "jti-2", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("revoking expired token should be a no-op: %v", err)
	}
	revoked, _ = denylist.IsRevoked(context.Background(), "jti-2")
	if revoked {
		t.Fatalf("expired token should not be denylisted")
	}
}
