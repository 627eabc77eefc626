package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := New(filepath.Join(t.TempDir(), "guardian.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	if _, ok, err := s.Get(ctx, "financial_transactions"); err != nil || ok {
		t.Fatalf("Get before Set = ok=%v err=%v, want absent", ok, err)
	}

	if err := s.Set(ctx, "financial_transactions", "[]"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "financial_transactions", `[{"id":"t1"}]`); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	v, ok, err := s.Get(ctx, "financial_transactions")
	if err != nil || !ok || v != `[{"id":"t1"}]` {
		t.Fatalf("Get = %q ok=%v err=%v", v, ok, err)
	}
}

func TestStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "guardian.db")

	s1, err := New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s1.Set(ctx, "financial_streak", "7"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s1.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopening re-runs migrations, which must be a no-op.
	s2, err := New(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	v, ok, err := s2.Get(ctx, "financial_streak")
	if err != nil || !ok || v != "7" {
		t.Fatalf("Get after reopen = %q ok=%v err=%v", v, ok, err)
	}
}
