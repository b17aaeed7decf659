package storage

import (
	"context"
	"errors"
	"testing"

	"toyshop/internal/domain"
)

func TestMemoryGetMissing(t *testing.T) {
	repo := NewMemory()
	if _, err := repo.Get(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryPutGetDelete(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	if err := repo.Put(ctx, CartKey("s1"), []byte(`{"lines":[]}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := repo.Get(ctx, CartKey("s1"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"lines":[]}` {
		t.Fatalf("unexpected value %q", got)
	}

	if err := repo.Delete(ctx, CartKey("s1")); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, CartKey("s1")); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	repo := NewMemory()
	ctx := context.Background()

	in := []byte("abc")
	if err := repo.Put(ctx, "k", in); err != nil {
		t.Fatalf("put: %v", err)
	}
	in[0] = 'x'

	got, err := repo.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "abc" {
		t.Fatalf("stored value shares memory with caller: %q", got)
	}
	got[0] = 'y'

	again, _ := repo.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("returned value shares memory with store: %q", again)
	}
}
