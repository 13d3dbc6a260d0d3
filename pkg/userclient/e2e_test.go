package userclient_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selim-ammari/user-management/internal/api"
	"github.com/selim-ammari/user-management/internal/core/service"
	"github.com/selim-ammari/user-management/internal/infrastructure/config"
	"github.com/selim-ammari/user-management/internal/infrastructure/db/jsonfile"
	"github.com/selim-ammari/user-management/pkg/userclient"
)

func startServer(t *testing.T, auth config.AuthConfig) *userclient.Client {
	t.Helper()
	log := zerolog.Nop()
	ctx := context.Background()

	store := jsonfile.NewStore(filepath.Join(t.TempDir(), "users.json"), log)
	require.NoError(t, store.Init(ctx))
	users := service.NewUserRepository(store, log)
	require.NoError(t, users.EnsureSuperadmin(ctx))

	e := api.NewRouter(api.Deps{
		Users:    users,
		Sessions: service.NewSessionService(users, auth.JWTSecret, time.Hour, log),
		Store:    store,
		Log:      log,
		HTTP:     config.HTTPConfig{CORSOrigins: []string{"*"}},
		Auth:     auth,
		Registry: prometheus.NewRegistry(),
	})
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return userclient.NewClient(srv.URL)
}

func TestEndToEnd_DirectoryAndSession(t *testing.T) {
	client := startServer(t, config.AuthConfig{})
	ctx := context.Background()

	created, err := client.CreateUser(ctx, "Dupont", "Jean")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, userclient.RoleUser, created.Role)

	session, err := userclient.NewSession(client, userclient.NewMemoryStore())
	require.NoError(t, err)
	user, err := session.Login(ctx, "Dupont", "Jean")
	require.NoError(t, err)
	assert.Equal(t, *created, user)

	guest, err := session.Login(ctx, "Nobody", "Here")
	require.NoError(t, err)
	assert.Empty(t, guest.ID)
	assert.Equal(t, userclient.RoleUser, guest.Role)

	err = client.DeleteUser(ctx, userclient.SuperadminID)
	require.Error(t, err)
	assert.Equal(t, 403, userclient.StatusCode(err))
	assert.EqualError(t, err, "403: Cannot delete superadmin")

	err = client.UpdateUserRole(ctx, userclient.SuperadminID, userclient.RoleUser)
	assert.EqualError(t, err, "403: Cannot change superadmin role")

	err = client.UpdateUserRole(ctx, created.ID, "root")
	assert.EqualError(t, err, "400: Invalid role")

	_, err = client.CreateUser(ctx, "", "Jean")
	assert.EqualError(t, err, "400: Name and firstname are required")
}

func TestEndToEnd_ConcurrentCreates(t *testing.T) {
	client := startServer(t, config.AuthConfig{})
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := client.CreateUser(ctx, fmt.Sprintf("L%d", i), fmt.Sprintf("F%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	users, err := client.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, n+1)
}

func TestEndToEnd_AdminGuard(t *testing.T) {
	client := startServer(t, config.AuthConfig{JWTSecret: "secret", AdminGuard: true})
	ctx := context.Background()

	created, err := client.CreateUser(ctx, "Dupont", "Jean")
	require.NoError(t, err)

	err = client.DeleteUser(ctx, created.ID)
	assert.Equal(t, 401, userclient.StatusCode(err))

	session, err := userclient.NewSession(client, userclient.NewMemoryStore())
	require.NoError(t, err)
	session.IssueTokens = true

	_, err = session.Login(ctx, "Dupont", "Jean")
	require.NoError(t, err)
	err = client.DeleteUser(ctx, created.ID)
	assert.Equal(t, 403, userclient.StatusCode(err))

	_, err = session.Login(ctx, "Admin", "Super")
	require.NoError(t, err)
	require.NoError(t, client.DeleteUser(ctx, created.ID))
}
