package postgresqltest

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/daystatus-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/daystatus-backend-go/migrations"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup holds a migrated connection to the integration database
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema.
// The calling test is skipped when the variable is not set.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping PostgreSQL integration test")
	}

	require.NoError(t, migrations.Up(dsn))

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err, "failed to connect to test database")

	setup := &TestDatabaseSetup{DB: db}
	require.NoError(t, setup.TruncateAllTables(context.Background()))
	t.Cleanup(setup.Close)
	return setup
}

// TruncateAllTables removes all rows, children first
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := s.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"day_statuses",
		"attendances",
		"leaves",
		"employees",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// SeedEmployees inserts bare employee rows
func (s *TestDatabaseSetup) SeedEmployees(t *testing.T, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := s.DB.Exec(context.Background(),
			`INSERT INTO employees (id, name) VALUES ($1, $2)`, id, "Employee "+id)
		require.NoError(t, err)
	}
}

func (s *TestDatabaseSetup) Close() {
	s.DB.Close()
}
