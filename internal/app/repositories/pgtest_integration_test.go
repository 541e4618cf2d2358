//go:build integration

package repositories

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/trungle/unidocs/internal/app/migrations"
	"github.com/trungle/unidocs/internal/app/models"
)

// skipIfNoDocker skips the test when no Docker daemon is reachable, so the
// integration suite degrades gracefully on machines without Docker.
func skipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := exec.CommandContext(ctx, "docker", "info").Run(); err != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

// startTestDatabase boots a throwaway Postgres container, applies the schema
// migrations and returns a connected pool. The container and the pool are torn
// down with the test.
func startTestDatabase(t *testing.T) *pgxpool.Pool {
	t.Helper()
	skipIfNoDocker(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "unidocs",
				"POSTGRES_PASSWORD": "unidocs",
				"POSTGRES_DB":       "unidocs_test",
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort("5432/tcp"),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to resolve container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("Failed to resolve mapped postgres port: %v", err)
	}

	connString := fmt.Sprintf("postgres://unidocs:unidocs@%s:%s/unidocs_test?sslmode=disable",
		host, port.Port())
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := migrations.NewMigrator(pool).MigrateFromDirectory("../../../migrations"); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}
	return pool
}

func seedUser(t *testing.T, pool *pgxpool.Pool, email string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO users (email, first_name, last_name, password_hash)
		 VALUES ($1, 'Test', 'User', 'x') RETURNING id`, email,
	).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to seed user %s: %v", email, err)
	}
	return id
}

func seedDocument(t *testing.T, pool *pgxpool.Pool, userID int64, title string, status models.DocumentStatus) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO documents (title, file_path, original_file_name, file_type, file_size, user_id, status)
		 VALUES ($1, 'uploads/test.pdf', 'test.pdf', 'pdf', 1024, $2, $3) RETURNING id`,
		title, userID, status,
	).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to seed document %q: %v", title, err)
	}
	return id
}
