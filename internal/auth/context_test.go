package auth

import (
	"context"
	"testing"
)

func TestWithUserRoundTrip(t *testing.T) {
	ctx := WithUser(context.Background(), 42)

	id, ok := UserID(ctx)
	if !ok {
		t.Fatal("expected user id in context")
	}
	if id != 42 {
		t.Errorf("user id = %d, want 42", id)
	}
}

func TestUserIDMissing(t *testing.T) {
	if id, ok := UserID(context.Background()); ok {
		t.Errorf("expected no user id, got %d", id)
	}
}
