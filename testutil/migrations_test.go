package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-log/migrations"
	"github.com/pkordes/travel-log/testutil"
)

// TestMigrations runs the full round trip against a real Postgres database:
// reset to zero, apply everything, check the schema, roll everything back.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)
	ctx := context.Background()

	provider, err := migrations.NewProvider(db)
	require.NoError(t, err, "create goose provider")

	// Another package's TestMain may already have migrated this shared DB.
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "initial reset")

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.NotEmpty(t, results, "expected at least one migration to be applied")
	assertTablePresence(t, db, "travels", true)

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")
	assertTablePresence(t, db, "travels", false)

	// Leave the schema in place for packages that run after this one.
	_, err = migrations.Up(ctx, db)
	require.NoError(t, err, "re-apply migrations")
}

// TestMigrations_Constraints checks that the schema itself refuses rows the
// service would never write.
func TestMigrations_Constraints(t *testing.T) {
	db := testutil.NewSQLDB(t)
	ctx := context.Background()

	_, err := migrations.Up(ctx, db)
	require.NoError(t, err)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback() })

	tests := []struct {
		name string
		sql  string
	}{
		{"latitude without longitude", `INSERT INTO travels (city, country, year, latitude) VALUES ('a', 'b', 2000, 1.0)`},
		{"year below range", `INSERT INTO travels (city, country, year) VALUES ('a', 'b', 999)`},
		{"latitude above range", `INSERT INTO travels (city, country, year, latitude, longitude) VALUES ('a', 'b', 2000, 90.5, 0)`},
		{"missing city", `INSERT INTO travels (country, year) VALUES ('b', 2000)`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tx.ExecContext(ctx, "SAVEPOINT sp")
			require.NoError(t, err)

			_, err = tx.ExecContext(ctx, tc.sql)
			assert.Error(t, err)

			_, err = tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT sp")
			require.NoError(t, err)
		})
	}
}

// assertTablePresence fails the test unless the named table's presence in the
// public schema matches shouldExist.
func assertTablePresence(t *testing.T, db *sql.DB, table string, shouldExist bool) {
	t.Helper()

	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public'
			AND   table_name   = $1
		)`
	var exists bool
	err := db.QueryRowContext(context.Background(), q, table).Scan(&exists)
	require.NoError(t, err, "check table existence for %q", table)

	if shouldExist {
		assert.True(t, exists, "expected table %q to exist", table)
	} else {
		assert.False(t, exists, "expected table %q to not exist", table)
	}
}
