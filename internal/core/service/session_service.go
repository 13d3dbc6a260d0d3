package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/selim-ammari/user-management/internal/core/domain"
	"github.com/selim-ammari/user-management/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// SessionClaims is the payload of a signed session token.
type SessionClaims struct {
	Lastname  string      `json:"lastname"`
	Firstname string      `json:"firstname"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// SessionService resolves logins by name and optionally signs a token for the
// resolved identity.
type SessionService struct {
	users     ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
	log       zerolog.Logger
}

// NewSessionService returns a SessionService. An empty jwtSecret disables
// token signing; Resolve then returns identities only.
func NewSessionService(users ports.UserRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *SessionService {
	if tokenTTL <= 0 {
		tokenTTL = defaultSessionTTL
	}
	return &SessionService{
		users:     users,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		now:       time.Now,
		log:       log,
	}
}

// Resolve matches the name pair against the directory, fabricating a guest
// identity when nothing matches. It never fails for an unknown name.
func (s *SessionService) Resolve(ctx context.Context, lastname, firstname string) (*ports.SessionResult, error) {
	if lastname == "" || firstname == "" {
		return nil, domain.Validation(domain.MsgNamesRequired)
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	user, matched := domain.MatchUser(users, lastname, firstname)
	result := &ports.SessionResult{User: user, Matched: matched}

	if s.jwtSecret != "" {
		token, err := s.sign(user)
		if err != nil {
			return nil, fmt.Errorf("resolve session: sign token: %w", err)
		}
		result.Token = token
	}

	s.log.Debug().
		Str("user_id", user.ID).
		Bool("matched", matched).
		Msg("session resolved")

	return result, nil
}

func (s *SessionService) sign(user domain.User) (string, error) {
	now := s.now()
	claims := SessionClaims{
		Lastname:  user.Lastname,
		Firstname: user.Firstname,
		Role:      user.EffectiveRole(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// ParseSessionToken verifies a token produced by SessionService and returns
// its claims.
func ParseSessionToken(token, jwtSecret string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.Unauthorized("invalid token")
	}
	return claims, nil
}
