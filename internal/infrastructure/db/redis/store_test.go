package redis

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/selim-ammari/user-management/internal/core/domain"
	"github.com/selim-ammari/user-management/internal/testutil/containers"
)

func TestStore_Integration(t *testing.T) {
	addr := containers.Start(t, "redis:7-alpine", "6379/tcp", nil, nil)

	ctx := context.Background()
	s, err := Open(ctx, Options{Addr: addr}, zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	users, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load before init: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty collection, got %d", len(users))
	}

	if err := s.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	want := []domain.User{domain.Superadmin()}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Init(ctx); err != nil {
		t.Fatalf("second init: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0] != want[0] {
		t.Fatalf("unexpected collection: %+v", got)
	}

	if err := s.client.Set(ctx, DefaultKey, "garbage", 0).Err(); err != nil {
		t.Fatalf("corrupt: %v", err)
	}
	got, err = s.Load(ctx)
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty collection for corrupt key, got %+v, %v", got, err)
	}
}

func TestOpen_Unreachable(t *testing.T) {
	if _, err := Open(context.Background(), Options{Addr: "127.0.0.1:1", Timeout: 500 * time.Millisecond}, zerolog.Nop()); err == nil {
		t.Fatalf("expected connection error")
	}
}

func TestNewStore_DefaultKey(t *testing.T) {
	s := NewStore(nil, "", zerolog.Nop())
	if s.key != DefaultKey {
		t.Fatalf("expected %s, got %s", DefaultKey, s.key)
	}
}
