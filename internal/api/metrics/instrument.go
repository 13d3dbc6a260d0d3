package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/selim-ammari/user-management/internal/core/domain"
	"github.com/selim-ammari/user-management/internal/core/ports"
)

type instrumentedRepository struct {
	next ports.UserRepository
}

// InstrumentRepository wraps repo so that every call is counted and timed.
func InstrumentRepository(repo ports.UserRepository) ports.UserRepository {
	return &instrumentedRepository{next: repo}
}

func (r *instrumentedRepository) List(ctx context.Context) ([]domain.User, error) {
	defer observe("list", time.Now())
	users, err := r.next.List(ctx)
	count("list", err)
	return users, err
}

func (r *instrumentedRepository) Create(ctx context.Context, lastname, firstname string) (domain.User, error) {
	defer observe("create", time.Now())
	user, err := r.next.Create(ctx, lastname, firstname)
	count("create", err)
	return user, err
}

func (r *instrumentedRepository) Update(ctx context.Context, id, lastname, firstname string) error {
	defer observe("update", time.Now())
	err := r.next.Update(ctx, id, lastname, firstname)
	count("update", err)
	return err
}

func (r *instrumentedRepository) Delete(ctx context.Context, id string) error {
	defer observe("delete", time.Now())
	err := r.next.Delete(ctx, id)
	count("delete", err)
	return err
}

func (r *instrumentedRepository) SetRole(ctx context.Context, id string, role domain.Role) error {
	defer observe("set_role", time.Now())
	err := r.next.SetRole(ctx, id, role)
	count("set_role", err)
	return err
}

func (r *instrumentedRepository) EnsureSuperadmin(ctx context.Context) error {
	defer observe("ensure_superadmin", time.Now())
	err := r.next.EnsureSuperadmin(ctx)
	count("ensure_superadmin", err)
	return err
}

type instrumentedSessions struct {
	next ports.SessionService
}

// InstrumentSessions wraps svc so that every resolution is counted.
func InstrumentSessions(svc ports.SessionService) ports.SessionService {
	return &instrumentedSessions{next: svc}
}

func (s *instrumentedSessions) Resolve(ctx context.Context, lastname, firstname string) (*ports.SessionResult, error) {
	res, err := s.next.Resolve(ctx, lastname, firstname)
	switch {
	case err != nil:
		SessionsResolvedTotal.WithLabelValues("error").Inc()
	case res.Matched:
		SessionsResolvedTotal.WithLabelValues("matched").Inc()
	default:
		SessionsResolvedTotal.WithLabelValues("guest").Inc()
	}
	return res, err
}

func observe(op string, start time.Time) {
	RepositoryOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func count(op string, err error) {
	RepositoryOperationsTotal.WithLabelValues(op, result(err)).Inc()
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}
