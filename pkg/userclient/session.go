package userclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/selim-ammari/user-management/internal/core/domain"
)

// Keys used in the SessionStore.
const (
	SessionKey = "auth_user"
	TokenKey   = "auth_token"
)

var (
	// ErrNamesRequired is returned by Login before contacting the server.
	ErrNamesRequired = errors.New("lastname and firstname are required")
	// ErrNotLoggedIn is returned when an operation needs a session.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrAdminRequired is returned by RequireAdmin for non-admin sessions.
	ErrAdminRequired = errors.New("admin role required")
)

// Session is the identity of the current operator. It is restored from its
// SessionStore when created and written back on every Login and Logout.
type Session struct {
	client *Client
	store  SessionStore

	// IssueTokens makes Login also call IssueSession and attach the returned
	// token to the client.
	IssueTokens bool

	mu    sync.RWMutex
	user  *User
	token string
}

// NewSession restores any persisted identity from store. Absent, null,
// nameless or unparsable state yields a logged-out session.
func NewSession(client *Client, store SessionStore) (*Session, error) {
	s := &Session{client: client, store: store}

	data, err := store.Get(SessionKey)
	switch {
	case errors.Is(err, ErrNoEntry):
		return s, nil
	case err != nil:
		return nil, err
	}

	var u *User
	if err := json.Unmarshal(data, &u); err != nil || u == nil {
		return s, nil
	}
	if u.Lastname == "" && u.Firstname == "" {
		return s, nil
	}
	s.user = u

	if tok, err := store.Get(TokenKey); err == nil {
		s.token = string(tok)
		client.Token = s.token
	}
	return s, nil
}

// Login resolves the name pair against the stored users. The first exact,
// case-sensitive match wins; otherwise a guest identity with role "user" is
// fabricated. The result is persisted under SessionKey.
func (s *Session) Login(ctx context.Context, lastname, firstname string) (User, error) {
	if lastname == "" || firstname == "" {
		return User{}, ErrNamesRequired
	}

	users, err := s.client.ListUsers(ctx)
	if err != nil {
		return User{}, err
	}
	user, _ := domain.MatchUser(users, lastname, firstname)

	var token string
	if s.IssueTokens {
		res, err := s.client.IssueSession(ctx, lastname, firstname)
		if err != nil {
			return User{}, fmt.Errorf("issue session: %w", err)
		}
		token = res.Token
	}

	data, err := json.Marshal(user)
	if err != nil {
		return User{}, fmt.Errorf("encode session: %w", err)
	}
	if err := s.persist(data, token); err != nil {
		return User{}, err
	}

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.client.Token = token
	s.mu.Unlock()

	return user, nil
}

// persist writes the token before the identity. When the identity write
// fails the previous token is put back so the store keeps the old session.
func (s *Session) persist(identity []byte, token string) error {
	prev, prevErr := s.store.Get(TokenKey)
	if prevErr != nil && !errors.Is(prevErr, ErrNoEntry) {
		return prevErr
	}

	if err := s.writeToken(token); err != nil {
		return err
	}
	if err := s.store.Set(SessionKey, identity); err != nil {
		restore := ""
		if prevErr == nil {
			restore = string(prev)
		}
		if rerr := s.writeToken(restore); rerr != nil {
			return errors.Join(err, fmt.Errorf("restore token: %w", rerr))
		}
		return err
	}
	return nil
}

func (s *Session) writeToken(token string) error {
	if token == "" {
		return s.store.Delete(TokenKey)
	}
	return s.store.Set(TokenKey, []byte(token))
}

// Logout clears the identity in memory and in the store.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.client.Token = ""
	s.mu.Unlock()

	if err := s.store.Delete(SessionKey); err != nil {
		return err
	}
	return s.store.Delete(TokenKey)
}

// User returns the current identity and whether there is one.
func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// IsAdmin reports whether the current identity has the admin role.
func (s *Session) IsAdmin() bool {
	u, ok := s.User()
	return ok && u.IsAdmin()
}

// RequireAdmin returns ErrNotLoggedIn or ErrAdminRequired unless the current
// identity is an admin. This is a presentation guard; the server does not
// rely on it.
func (s *Session) RequireAdmin() error {
	u, ok := s.User()
	if !ok {
		return ErrNotLoggedIn
	}
	if !u.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}

// Token returns the bearer token obtained at login, if any.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}
