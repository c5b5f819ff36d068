// Package dbtest provides a throwaway database for tests.
package dbtest

import (
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"stratify/internal/db"
)

// New opens a migrated in-memory SQLite database that lives for the
// duration of the test. The pool is pinned to one connection so every query
// sees the same in-memory database.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := db.Open("sqlite", ":memory:", db.Options{MaxOpenConns: 1, MaxIdleConns: 1, LogLevel: logger.Silent})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}
