package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkordes/travel-log/migrations"
	"github.com/pkordes/travel-log/testutil"
)

// TestMain applies all pending migrations once for the whole test binary.
// Without TEST_DATABASE_URL every test in the package skips itself.
func TestMain(m *testing.M) {
	dsn := os.Getenv(testutil.DSNEnv)
	if dsn == "" {
		os.Exit(m.Run())
	}

	db := testutil.MustOpenSQLDB(dsn)
	if _, err := migrations.Up(context.Background(), db); err != nil {
		log.Fatalf("TestMain: run migrations: %v", err)
	}
	db.Close()

	os.Exit(m.Run())
}
