// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"testing"

	"booking_system/internal/db"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory SQLite database that lives for the test
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.OpenWith(sqlite.Open(":memory:"), true)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	// each connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}
