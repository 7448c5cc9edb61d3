// Package dbtest opens throwaway migrated databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/Ibrohimov-Zafar/DevVibe/internal/config"
	"github.com/Ibrohimov-Zafar/DevVibe/internal/database"
)

// New returns a migrated SQLite database that lives for the duration of t.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DatabaseURL:    "sqlite:" + filepath.Join(t.TempDir(), "portfolio.db") + "?_busy_timeout=5000",
		DBMaxOpenConns: 4,
		DBMaxIdleConns: 4,
	}

	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
