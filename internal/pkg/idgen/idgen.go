// Package idgen generates user ids.
//
// Ids are ULIDs: the first 48 bits are the creation time in milliseconds, so
// ids are timestamp-derived and sort by creation order. A monotonic entropy
// source keeps ids generated within the same millisecond distinct.
package idgen

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator safely produces ULIDs from concurrent goroutines.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// New returns a Generator reading the wall clock.
func New() *Generator {
	return NewWithClock(time.Now)
}

// NewWithClock returns a Generator reading time from now. Useful in tests.
func NewWithClock(now func() time.Time) *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     now,
	}
}

// NewID returns a new id string.
func (g *Generator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(g.now().UTC()), g.entropy).String()
}

// Time extracts the creation time embedded in id. It returns the zero time
// for ids that are not ULIDs, such as the reserved superadmin id.
func Time(id string) time.Time {
	u, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time()).UTC()
}
