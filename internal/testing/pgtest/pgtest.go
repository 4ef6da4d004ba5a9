// Package pgtest starts a throwaway PostgreSQL container for integration tests.
package pgtest

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	image    = "postgres:16-alpine"
	database = "darkframe_test"
	username = "testuser"
	password = "testpass"
)

// Start launches a container and returns its connection string and a terminate func.
// When docker is unavailable it returns an empty string, so callers can skip.
func Start(ctx context.Context) (connString string, terminate func()) {
	// testcontainers panics when no docker host can be found
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("WARNING: postgres container unavailable: %v\n", r)
			connString, terminate = "", func() {}
		}
	}()

	container, err := postgres.Run(ctx, image,
		postgres.WithDatabase(database),
		postgres.WithUsername(username),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", func() {}
	}

	connString, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		_ = container.Terminate(ctx)
		return "", func() {}
	}

	return connString, func() {
		if err := container.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}
