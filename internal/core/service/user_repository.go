package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/selim-ammari/user-management/internal/core/domain"
	"github.com/selim-ammari/user-management/internal/core/ports"
	"github.com/selim-ammari/user-management/internal/pkg/idgen"
)

const defaultStoreTimeout = 5 * time.Second

// IDGenerator produces ids for new records.
type IDGenerator interface {
	NewID() string
}

type nameInput struct {
	Lastname  string `validate:"required"`
	Firstname string `validate:"required"`
}

type roleInput struct {
	Role string `validate:"required,oneof=user admin"`
}

// userRepository implements ports.UserRepository over a ports.RecordStore.
//
// Every operation is a full load, compute, full save cycle. The mutex
// serializes these cycles within the process so concurrent writers cannot
// overwrite each other's changes. Writers in other processes sharing the same
// document are not coordinated.
type userRepository struct {
	store    ports.RecordStore
	ids      IDGenerator
	validate *validator.Validate
	timeout  time.Duration
	log      zerolog.Logger

	mu sync.RWMutex
}

// Option customizes a repository built by NewUserRepository.
type Option func(*userRepository)

// WithIDGenerator overrides the id source.
func WithIDGenerator(g IDGenerator) Option {
	return func(r *userRepository) { r.ids = g }
}

// WithStoreTimeout bounds each load/save cycle.
func WithStoreTimeout(d time.Duration) Option {
	return func(r *userRepository) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewUserRepository returns a ports.UserRepository backed by store.
func NewUserRepository(store ports.RecordStore, log zerolog.Logger, opts ...Option) ports.UserRepository {
	r := &userRepository{
		store:    store,
		ids:      idgen.New(),
		validate: validator.New(),
		timeout:  defaultStoreTimeout,
		log:      log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	users, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, lastname, firstname string) (domain.User, error) {
	if err := r.validateNames(lastname, firstname); err != nil {
		return domain.User{}, err
	}

	var created domain.User
	err := r.mutate(ctx, "create user", func(users []domain.User) ([]domain.User, error) {
		created = domain.User{
			ID:        r.uniqueID(users),
			Lastname:  lastname,
			Firstname: firstname,
			Role:      domain.RoleUser,
		}
		return append(users, created), nil
	})
	if err != nil {
		return domain.User{}, err
	}

	r.log.Info().Str("user_id", created.ID).Msg("user created")
	return created, nil
}

func (r *userRepository) Update(ctx context.Context, id, lastname, firstname string) error {
	if err := r.validateNames(lastname, firstname); err != nil {
		return err
	}

	err := r.mutate(ctx, "update user", func(users []domain.User) ([]domain.User, error) {
		for i := range users {
			if users[i].ID == id {
				users[i].Lastname = lastname
				users[i].Firstname = firstname
			}
		}
		return users, nil
	})
	if err != nil {
		return err
	}

	r.log.Info().Str("user_id", id).Msg("user updated")
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	if id == domain.SuperadminID {
		return domain.Forbidden(domain.MsgDeleteSuperadmin)
	}

	err := r.mutate(ctx, "delete user", func(users []domain.User) ([]domain.User, error) {
		kept := make([]domain.User, 0, len(users))
		for _, u := range users {
			if u.ID != id {
				kept = append(kept, u)
			}
		}
		return kept, nil
	})
	if err != nil {
		return err
	}

	r.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (r *userRepository) SetRole(ctx context.Context, id string, role domain.Role) error {
	// Superadmin protection is checked before role validity, so any
	// non-admin value for the superadmin is reported as forbidden.
	if id == domain.SuperadminID && role != domain.RoleAdmin {
		return domain.Forbidden(domain.MsgSuperadminRole)
	}
	if err := r.validate.Struct(roleInput{Role: string(role)}); err != nil {
		return domain.Validation(domain.MsgInvalidRole)
	}

	err := r.mutate(ctx, "set user role", func(users []domain.User) ([]domain.User, error) {
		for i := range users {
			if users[i].ID == id {
				users[i].Role = role
			}
		}
		return users, nil
	})
	if err != nil {
		return err
	}

	r.log.Info().Str("user_id", id).Str("role", string(role)).Msg("user role changed")
	return nil
}

func (r *userRepository) EnsureSuperadmin(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	users, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("seed superadmin: load: %w", err)
	}

	for i, u := range users {
		if !u.IsSuperadmin() {
			continue
		}
		if u.Role == domain.RoleAdmin {
			return nil
		}
		r.log.Warn().Str("role", string(u.Role)).Msg("superadmin found without admin role, restoring")
		users[i].Role = domain.RoleAdmin
		if err := r.store.Save(ctx, users); err != nil {
			return fmt.Errorf("seed superadmin: save: %w", err)
		}
		return nil
	}

	users = append(users, domain.Superadmin())
	if err := r.store.Save(ctx, users); err != nil {
		return fmt.Errorf("seed superadmin: save: %w", err)
	}
	r.log.Info().Msg("superadmin seeded")
	return nil
}

// mutate runs one serialized load, fn, save cycle.
func (r *userRepository) mutate(ctx context.Context, op string, fn func([]domain.User) ([]domain.User, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	users, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("%s: load: %w", op, err)
	}

	next, err := fn(users)
	if err != nil {
		return err
	}

	if err := r.store.Save(ctx, next); err != nil {
		return fmt.Errorf("%s: save: %w", op, err)
	}
	return nil
}

func (r *userRepository) validateNames(lastname, firstname string) error {
	if err := r.validate.Struct(nameInput{Lastname: lastname, Firstname: firstname}); err != nil {
		return domain.Validation(domain.MsgNamesRequired)
	}
	return nil
}

// uniqueID draws ids until one is not already present in users.
func (r *userRepository) uniqueID(users []domain.User) string {
	taken := make(map[string]struct{}, len(users))
	for _, u := range users {
		taken[u.ID] = struct{}{}
	}
	for {
		id := r.ids.NewID()
		if _, exists := taken[id]; !exists {
			return id
		}
	}
}
