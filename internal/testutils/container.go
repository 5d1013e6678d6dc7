package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// RedisImage is the image started by CreateRedisContainerClient
const RedisImage = "redis:7-alpine"

// CreateRedisContainerClient starts a throwaway Redis container and returns a
// client for it. The test is skipped when no container runtime is available.
func CreateRedisContainerClient(t *testing.T) redis.UniversalClient {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        RedisImage,
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("Redis container not available: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("failed to resolve Redis container endpoint: %v", err)
	}

	if err := WaitForRedis(endpoint, 10*time.Second); err != nil {
		t.Fatalf("Redis container never became ready: %v", err)
	}

	return CreateTestRedisClient(t, &TestRedisConfig{Addr: endpoint, DB: 15})
}
