package ports

import (
	"context"

	"github.com/unimag/portal/internal/core/domain"
)

// RegisterInput carries the profile fields collected at registration.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	FacultyID string
	Password  string
}

// Session is returned on successful registration or login.
type Session struct {
	Token     string
	User      *domain.User
	ExpiresIn int64 // seconds until the token expires
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*Session, error)
	Login(ctx context.Context, email, password string) (*Session, error)
}
