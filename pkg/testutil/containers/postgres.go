//go:build integration

package containers

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/crypto/bcrypt"

	"github.com/glide-ceylon/gidz-uni-path-sub001/internal/platform/database"
	id "github.com/glide-ceylon/gidz-uni-path-sub001/pkg/domain"
)

// PostgresContainer wraps a testcontainers Postgres instance with the schema applied.
type PostgresContainer struct {
	Container testcontainers.Container
	DSN       string
	DB        *sql.DB
}

// NewPostgresContainer starts Postgres and applies the goose migrations.
// Ryuk removes the container when the test process exits.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("visa_admin_test"),
		postgres.WithUsername("visa"),
		postgres.WithPassword("visa_test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get postgres connection string: %v", err)
	}

	pool, err := database.New(ctx, database.Config{
		URL:             dsn,
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
	})
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to connect to postgres: %v", err)
	}

	if err := database.Migrate(ctx, pool.DB()); err != nil {
		_ = pool.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("failed to run migrations: %v", err)
	}

	return &PostgresContainer{Container: container, DSN: dsn, DB: pool.DB()}
}

// TruncateTables clears the given tables with CASCADE.
func (p *PostgresContainer) TruncateTables(ctx context.Context, tables ...string) error {
	for _, table := range tables {
		if _, err := p.DB.ExecContext(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			return fmt.Errorf("truncate %s: %w", table, err)
		}
	}
	return nil
}

// TruncateAll empties every application table.
func (p *PostgresContainer) TruncateAll(ctx context.Context) error {
	return p.TruncateTables(ctx,
		"timeline_event_notes",
		"timeline_events",
		"feedback",
		"checklist_items",
		"admin_sessions",
		"admin_users",
	)
}

// CreateTestAdmin inserts an active admin with the given role and returns its ID.
func (p *PostgresContainer) CreateTestAdmin(ctx context.Context, t testing.TB, role string) id.AdminID {
	t.Helper()
	adminID := id.NewAdminID()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("CreateTestAdmin: hash: %v", err)
	}
	_, err = p.DB.ExecContext(ctx, `
		INSERT INTO admin_users (id, email, password_hash, first_name, last_name, role, is_active)
		VALUES ($1, $2, $3, 'Test', 'Admin', $4, true)
	`, uuid.UUID(adminID), "admin-"+uuid.NewString()+"@example.com", string(hash), role)
	if err != nil {
		t.Fatalf("CreateTestAdmin: %v", err)
	}
	return adminID
}
