package ports

import (
	"context"

	"github.com/selim-ammari/user-management/internal/core/domain"
)

// RecordStore owns the persisted user collection as a single document.
//
// Every write replaces the whole document; there are no partial updates,
// transactions or versions. Implementations must recover from a missing or
// corrupt document by returning an empty collection from Load.
type RecordStore interface {
	// Init creates the backing document with an empty collection when absent.
	Init(ctx context.Context) error
	Load(ctx context.Context) ([]domain.User, error)
	Save(ctx context.Context, users []domain.User) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}
