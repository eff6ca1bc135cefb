package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"voucherdesk/internal/remote"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, err := s.Current(ctx); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
	if tok, err := s.Token(ctx); err != nil || tok != "" {
		t.Fatalf("expected empty token without session, got %q (%v)", tok, err)
	}

	sess := remote.Session{Token: "tok-1", UserID: "u1", Email: "user@example.com"}
	if err := s.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Current(ctx)
	if err != nil || got != sess {
		t.Fatalf("expected %+v, got %+v (%v)", sess, got, err)
	}
	if tok, _ := s.Token(ctx); tok != "tok-1" {
		t.Fatalf("expected token tok-1, got %q", tok)
	}

	// a new login replaces the previous session
	next := remote.Session{Token: "tok-2", UserID: "u1", Email: "user@example.com"}
	if err := s.Save(ctx, next); err != nil {
		t.Fatalf("save replacement: %v", err)
	}
	if tok, _ := s.Token(ctx); tok != "tok-2" {
		t.Fatalf("expected token tok-2, got %q", tok)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := s.Current(ctx); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after clear, got %v", err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := s1.Save(context.Background(), remote.Session{Token: "tok"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()
	if tok, _ := s2.Token(context.Background()); tok != "tok" {
		t.Fatalf("session did not survive reopen, got %q", tok)
	}
}
