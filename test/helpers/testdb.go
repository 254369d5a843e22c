// Package helpers contains shared test fixtures.
package helpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/grzesiek-galezowski/smartschedule-go/internal/adapters/persistence"
	"github.com/grzesiek-galezowski/smartschedule-go/internal/infrastructure/database"
)

// NewTestDB opens a migrated in-memory database scoped to the test.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewTestConnection()
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := persistence.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
