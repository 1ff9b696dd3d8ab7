package domain

import (
	"context"
	"errors"
	"time"
)

// User is a back-office operator. Transactions record their creator.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role represents a user's access level
type Role string

const (
	// RoleAdmin manages accounts and interest configurations
	RoleAdmin Role = "admin"

	// RoleFinance posts transactions, transfers and payments
	RoleFinance Role = "finance"

	// RoleViewer can only read
	RoleViewer Role = "viewer"
)

var validRoles = map[Role]bool{
	RoleAdmin:   true,
	RoleFinance: true,
	RoleViewer:  true,
}

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanPost checks if the role can write ledger transactions
func (r Role) CanPost() bool {
	return r == RoleAdmin || r == RoleFinance
}

// CanAdminister checks if the role can manage accounts and configurations
func (r Role) CanAdminister() bool {
	return r == RoleAdmin
}

// Authentication errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)

type userContextKey struct{}

// ContextWithUser returns a copy of ctx carrying the authenticated user.
func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*User)
	return user, ok && user != nil
}

// ActorID returns explicit when set, otherwise the authenticated user's id.
func ActorID(ctx context.Context, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if user, ok := UserFromContext(ctx); ok {
		return user.ID
	}
	return ""
}
