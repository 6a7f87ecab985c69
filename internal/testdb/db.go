// Package testdb starts throwaway journal backends in containers for tests.
package testdb

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pageza/mealmate/backend/config"
)

// RequireDocker skips the test in short mode or when docker is missing
func RequireDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}
}

// StartPostgres runs PostgreSQL and returns a config pointing the journal at it
func StartPostgres(t *testing.T) *config.Config {
	t.Helper()
	RequireDocker(t)

	container := start(t, testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "mealmate",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithStartupTimeout(60 * time.Second),
	})

	host, port := endpoint(t, container, "5432")
	return &config.Config{
		JournalDriver: config.JournalPostgres,
		DBHost:        host,
		DBPort:        port,
		DBUser:        "test",
		DBPassword:    "test",
		DBName:        "mealmate",
		DBSSLMode:     "disable",
	}
}

// StartRedis runs Redis and returns a config pointing the journal at it
func StartRedis(t *testing.T) *config.Config {
	t.Helper()
	RequireDocker(t)

	container := start(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
	})

	host, port := endpoint(t, container, "6379")
	return &config.Config{
		JournalDriver: config.JournalRedis,
		JournalTTL:    time.Minute,
		RedisHost:     host,
		RedisPort:     port,
	}
}

func start(t *testing.T, req testcontainers.ContainerRequest) testcontainers.Container {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Error cleaning up test container: %v", err)
		}
	})
	return container
}

func endpoint(t *testing.T, container testcontainers.Container, port string) (string, string) {
	t.Helper()
	ctx := context.Background()

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mapped, err := container.MappedPort(ctx, nat.Port(port+"/tcp"))
	require.NoError(t, err)
	return host, mapped.Port()
}
