// Package persistencetest provides an in-memory database for repository and service tests.
package persistencetest

import (
	"database/sql"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// NewDB opens a private in-memory SQLite database with every model migrated.
// The database is closed when the test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dbSQL, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// A single connection keeps the in-memory database alive and shared.
	dbSQL.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = dbSQL.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}
