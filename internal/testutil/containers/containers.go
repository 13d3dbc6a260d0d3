// Package containers starts throwaway backend containers for integration
// tests. Tests using it are skipped unless INTEGRATION=1.
package containers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Enabled reports whether integration tests were requested.
func Enabled() bool { return os.Getenv("INTEGRATION") == "1" }

// Start runs image, waits until port accepts connections and returns its
// host:port address. The container is terminated when the test ends.
func Start(t *testing.T, image, port string, env map[string]string, strategy wait.Strategy) string {
	t.Helper()
	if !Enabled() {
		t.Skip("set INTEGRATION=1 to run container-backed tests")
	}

	ctx := context.Background()
	if strategy == nil {
		strategy = wait.ForListeningPort(nat.Port(port)).WithStartupTimeout(90 * time.Second)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{port},
			Env:          env,
			WaitingFor:   strategy,
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start %s: %v", image, err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	mapped, err := container.MappedPort(ctx, nat.Port(port))
	if err != nil {
		t.Fatalf("container port: %v", err)
	}
	return fmt.Sprintf("%s:%s", host, mapped.Port())
}
