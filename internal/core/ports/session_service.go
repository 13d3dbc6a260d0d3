package ports

import (
	"context"

	"github.com/selim-ammari/user-management/internal/core/domain"
)

// SessionResult is returned by SessionService.Resolve.
type SessionResult struct {
	User domain.User
	// Matched is false when User was fabricated as a guest.
	Matched bool
	// Token is a signed session token, empty when token signing is disabled.
	Token string
}

// SessionService resolves a name pair to a session identity.
type SessionService interface {
	Resolve(ctx context.Context, lastname, firstname string) (*SessionResult, error)
}
