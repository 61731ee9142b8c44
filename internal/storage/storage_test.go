package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store: err = %v, want ErrNotFound", err)
	}

	if err := s.Set(ctx, "k", "v1"); err != nil {
		t.Fatal(err)
	}
	if got, err := s.Get(ctx, "k"); err != nil || got != "v1" {
		t.Fatalf("Get = %q, %v", got, err)
	}

	if err := s.Set(ctx, "k", "v2"); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Get(ctx, "k"); got != "v2" {
		t.Fatalf("Get after overwrite = %q, want v2", got)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete: err = %v, want ErrNotFound", err)
	}

	// Deleting a missing key is not an error.
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Fatalf("Delete on missing key: %v", err)
	}
}
