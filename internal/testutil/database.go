// Package testutil provides shared helpers for tests that need real storage.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/worth-it/internal/model"
	"github.com/Veraticus/worth-it/internal/storage"
)

// SetupTestDB creates a migrated in-memory database that is closed when the test ends.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// SeedProfiles stores the given profiles or fails the test.
func SeedProfiles(t *testing.T, store *storage.SQLiteStorage, profiles map[string]model.FinancialProfile) {
	t.Helper()

	ctx := context.Background()
	for name, p := range profiles {
		if err := store.SaveProfile(ctx, name, p); err != nil {
			t.Fatalf("failed to seed profile %q: %v", name, err)
		}
	}
}
