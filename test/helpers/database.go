package helpers

import (
	"testing"

	"gorm.io/gorm"

	"github.com/andrescamacho/devempire-go/internal/infrastructure/database"
)

// NewTestDB opens a migrated in-memory database holding the snapshot and
// ledger tables, closed when t finishes
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	if err != nil {
		t.Fatalf("failed to open game database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
