package store

import (
	"testing"

	"larder/internal/database"
)

func setupUserTestDB(t *testing.T) *UserStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewUserStore(db)
}

func TestUserCreate(t *testing.T) {
	us := setupUserTestDB(t)

	u, err := us.Create("alice@example.com", "hashed-pw")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.Email != "alice@example.com" {
		t.Errorf("email = %q, want %q", u.Email, "alice@example.com")
	}
	if u.PasswordHash != "hashed-pw" {
		t.Errorf("password hash = %q, want %q", u.PasswordHash, "hashed-pw")
	}
	if u.ID == 0 {
		t.Error("expected non-zero ID")
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	us := setupUserTestDB(t)

	first, err := us.Create("alice@example.com", "hash-1")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := us.Create("alice@example.com", "hash-2"); err == nil {
		t.Fatal("expected error for duplicate email, got nil")
	}

	// The original record is unchanged.
	got, err := us.GetByID(first.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.PasswordHash != "hash-1" {
		t.Errorf("password hash = %q, want %q", got.PasswordHash, "hash-1")
	}
}

func TestUserGetByEmail(t *testing.T) {
	us := setupUserTestDB(t)

	created, err := us.Create("bob@example.com", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	got, err := us.GetByEmail("bob@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Fatalf("got %+v, want user %d", got, created.ID)
	}

	// Email lookups are case-sensitive.
	got, err = us.GetByEmail("BOB@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for differently-cased email, got %+v", got)
	}

	got, err = us.GetByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown email, got %+v", got)
	}
}
