package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/selim-ammari/user-management/internal/core/domain"
	"github.com/selim-ammari/user-management/internal/testutil/containers"
)

func TestStore_Integration(t *testing.T) {
	addr := containers.Start(t, "postgres:16-alpine", "5432/tcp",
		map[string]string{
			"POSTGRES_USER":     "users",
			"POSTGRES_PASSWORD": "users",
			"POSTGRES_DB":       "users",
		},
		wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(90*time.Second),
	)

	ctx := context.Background()
	s, err := Connect(ctx, fmt.Sprintf("postgres://users:users@%s/users?sslmode=disable", addr), zerolog.Nop())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer s.Close()

	if err := s.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	users, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty collection, got %d", len(users))
	}

	want := []domain.User{domain.Superadmin(), {ID: "1", Lastname: "Dupont", Firstname: "Jean"}}
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
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("unexpected collection: %+v", got)
	}
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestConnect_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := Connect(ctx, "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1", zerolog.Nop()); err == nil {
		t.Fatalf("expected connection error")
	}
}
