package ports

import (
	"context"

	"github.com/selim-ammari/user-management/internal/core/domain"
)

// UserRepository is the typed user directory layered over a RecordStore.
// It enforces the directory invariants (required names, superadmin protection)
// and holds no state between calls.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, lastname, firstname string) (domain.User, error)
	// Update changes the names of the record with id. Unknown ids are a no-op.
	Update(ctx context.Context, id, lastname, firstname string) error
	// Delete removes the record with id. Unknown ids are a no-op.
	Delete(ctx context.Context, id string) error
	// SetRole changes the role of the record with id. Unknown ids are a no-op.
	SetRole(ctx context.Context, id string, role domain.Role) error
	// EnsureSuperadmin seeds the superadmin record when it is missing.
	EnsureSuperadmin(ctx context.Context) error
}
