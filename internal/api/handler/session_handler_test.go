package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/selim-ammari/user-management/internal/core/domain"
	"github.com/selim-ammari/user-management/internal/core/ports"
)

type stubSessionService struct {
	resolveFn func(ctx context.Context, lastname, firstname string) (*ports.SessionResult, error)
}

func (s *stubSessionService) Resolve(ctx context.Context, lastname, firstname string) (*ports.SessionResult, error) {
	return s.resolveFn(ctx, lastname, firstname)
}

func TestSessionHandler_Create_Guest(t *testing.T) {
	stub := &stubSessionService{
		resolveFn: func(ctx context.Context, lastname, firstname string) (*ports.SessionResult, error) {
			return &ports.SessionResult{User: domain.User{Lastname: lastname, Firstname: firstname, Role: domain.RoleUser}}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/api/session", `{"lastname":"Nobody","firstname":"Here"}`)

	if err := NewSessionHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if _, hasID := user["id"]; hasID {
		t.Fatalf("guest identity must not carry an id: %v", user)
	}
	if _, hasToken := resp["token"]; hasToken {
		t.Fatalf("token must be omitted when not issued")
	}
	if resp["matched"] != false {
		t.Fatalf("expected matched=false")
	}
}

func TestSessionHandler_Create_WithToken(t *testing.T) {
	stub := &stubSessionService{
		resolveFn: func(ctx context.Context, lastname, firstname string) (*ports.SessionResult, error) {
			return &ports.SessionResult{User: domain.Superadmin(), Matched: true, Token: "tok"}, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/api/session", `{"lastname":"Admin","firstname":"Super"}`)

	if err := NewSessionHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		User    domain.User `json:"user"`
		Matched bool        `json:"matched"`
		Token   string      `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Matched || resp.Token != "tok" || resp.User != domain.Superadmin() {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestSessionHandler_Create_InvalidPayload(t *testing.T) {
	stub := &stubSessionService{
		resolveFn: func(ctx context.Context, lastname, firstname string) (*ports.SessionResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, rec := newJSONContext(http.MethodPost, "/api/session", "[")

	_ = NewSessionHandler(stub).Create(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
