package domain

import (
	"errors"
	"time"
)

// Role is the permission tier assigned to a user.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
	RoleCustomer Role = "customer"
)

// DefaultRole is assigned to self-registered users.
const DefaultRole = RoleCustomer

var roles = map[Role]struct{}{
	RoleAdmin:    {},
	RoleManager:  {},
	RoleEmployee: {},
	RoleCustomer: {},
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	_, ok := roles[r]
	return ok
}

// CanManage reports whether the role may act on records it does not own.
func (r Role) CanManage() bool {
	return r == RoleAdmin || r == RoleManager
}

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotApproved        = errors.New("user not approved")
	ErrTokenRevoked       = errors.New("token revoked")
)

// User models an authenticated actor in the system.
//
// Approved gates what a user may do, not whether it may log in: an
// unapproved user can authenticate but cannot create tasks until an
// admin flips the flag.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Approved     bool      `json:"approved"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
