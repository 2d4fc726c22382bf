// Package testdb opens a migrated in-memory SQLite database for service tests.
package testdb

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "kntista_backend/internals/databases"
)

// Open returns a fresh database per call. A single connection keeps every
// query on the same in-memory database, so transaction callbacks must use
// their tx and never the outer handle.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	// SQLite compares timestamps as text; keep every stored time in one zone.
	time.Local = time.UTC

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	// fixtures may point events at placeholder reference ids
	if err := db.Exec("PRAGMA foreign_keys = OFF").Error; err != nil {
		t.Fatalf("pragma: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
