package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/selim-ammari/user-management/internal/core/domain"
)

func newSessionFixture(t *testing.T, secret string) (*SessionService, *stubRecordStore) {
	t.Helper()
	store := &stubRecordStore{users: []domain.User{domain.Superadmin()}}
	repo := NewUserRepository(store, zerolog.Nop())
	return NewSessionService(repo, secret, time.Hour, zerolog.Nop()), store
}

func TestSessionService_ResolveStoredUser(t *testing.T) {
	svc, store := newSessionFixture(t, "")
	repo := NewUserRepository(store, zerolog.Nop())

	created, err := repo.Create(context.Background(), "Dupont", "Jean")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	res, err := svc.Resolve(context.Background(), "Dupont", "Jean")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !res.Matched {
		t.Fatalf("expected a stored match")
	}
	if res.User != created {
		t.Fatalf("expected %+v, got %+v", created, res.User)
	}
	if res.Token != "" {
		t.Fatalf("token must be empty when signing is disabled")
	}
}

func TestSessionService_ResolveFabricatesGuest(t *testing.T) {
	svc, store := newSessionFixture(t, "")

	res, err := svc.Resolve(context.Background(), "Unknown", "Person")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Matched || res.User.Persisted() {
		t.Fatalf("expected fabricated guest, got %+v", res)
	}
	if res.User.Role != domain.RoleUser {
		t.Fatalf("guest role must be user, got %s", res.User.Role)
	}
	if len(store.snapshot()) != 1 {
		t.Fatalf("resolve must not persist guests")
	}
}

func TestSessionService_ResolveRequiresNames(t *testing.T) {
	svc, _ := newSessionFixture(t, "")

	if _, err := svc.Resolve(context.Background(), "", "Jean"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSessionService_SignsToken(t *testing.T) {
	svc, _ := newSessionFixture(t, "secret")

	res, err := svc.Resolve(context.Background(), "Admin", "Super")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token")
	}

	claims, err := ParseSessionToken(res.Token, "secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Subject != domain.SuperadminID || claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := ParseSessionToken(res.Token, "other"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong secret, got %v", err)
	}
}

func TestSessionService_ExpiredToken(t *testing.T) {
	svc, _ := newSessionFixture(t, "secret")
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	res, err := svc.Resolve(context.Background(), "Unknown", "Person")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, err := ParseSessionToken(res.Token, "secret"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}
