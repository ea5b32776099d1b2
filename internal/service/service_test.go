package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"divvy/internal/models"
	"divvy/internal/storage/sqlite"
)

// newTestStore creates a temp SQLite database that is cleaned up with the test.
func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "divvy-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func createTestUser(t *testing.T, store *sqlite.SQLiteStore, name, email string) *models.User {
	t.Helper()
	user := models.NewUser(name, email, "hashed-password")
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return user
}

// wantKind asserts that err is a service error of the given kind.
func wantKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var svcErr *Error
	if !errors.As(err, &svcErr) {
		t.Fatalf("err = %v, want *service.Error", err)
	}
	if svcErr.Kind != kind {
		t.Fatalf("kind = %d (%q), want %d", svcErr.Kind, svcErr.Message, kind)
	}
}
