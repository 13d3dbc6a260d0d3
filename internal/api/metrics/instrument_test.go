package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/selim-ammari/user-management/internal/core/domain"
	"github.com/selim-ammari/user-management/internal/core/ports"
)

type stubRepo struct {
	err error
}

func (s stubRepo) List(context.Context) ([]domain.User, error) { return nil, s.err }
func (s stubRepo) Create(context.Context, string, string) (domain.User, error) {
	return domain.User{}, s.err
}
func (s stubRepo) Update(context.Context, string, string, string) error { return s.err }
func (s stubRepo) Delete(context.Context, string) error                 { return s.err }
func (s stubRepo) SetRole(context.Context, string, domain.Role) error   { return s.err }
func (s stubRepo) EnsureSuperadmin(context.Context) error               { return s.err }

type stubSessions struct {
	res *ports.SessionResult
	err error
}

func (s stubSessions) Resolve(context.Context, string, string) (*ports.SessionResult, error) {
	return s.res, s.err
}

func TestInstrumentRepository_CountsResults(t *testing.T) {
	cases := []struct {
		err    error
		result string
	}{
		{nil, "ok"},
		{domain.Validation(domain.MsgNamesRequired), "validation"},
		{domain.Forbidden(domain.MsgDeleteSuperadmin), "forbidden"},
		{errors.New("disk"), "error"},
	}

	for _, tc := range cases {
		counter := RepositoryOperationsTotal.WithLabelValues("delete", tc.result)
		before := testutil.ToFloat64(counter)

		_ = InstrumentRepository(stubRepo{err: tc.err}).Delete(context.Background(), "x")

		if got := testutil.ToFloat64(counter) - before; got != 1 {
			t.Fatalf("result %s: expected +1, got %v", tc.result, got)
		}
	}
}

func TestInstrumentSessions(t *testing.T) {
	matched := SessionsResolvedTotal.WithLabelValues("matched")
	guest := SessionsResolvedTotal.WithLabelValues("guest")
	m0, g0 := testutil.ToFloat64(matched), testutil.ToFloat64(guest)

	_, _ = InstrumentSessions(stubSessions{res: &ports.SessionResult{Matched: true}}).Resolve(context.Background(), "a", "b")
	_, _ = InstrumentSessions(stubSessions{res: &ports.SessionResult{}}).Resolve(context.Background(), "a", "b")

	if testutil.ToFloat64(matched)-m0 != 1 || testutil.ToFloat64(guest)-g0 != 1 {
		t.Fatalf("unexpected counter deltas")
	}
}
