package memory

import (
	"context"
	"testing"

	"trivia-client/internal/domain"
)

func TestProfileStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewProfileStore()

	if _, err := store.Load(ctx); err != domain.ErrProfileNotFound {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}

	if err := store.Save(ctx, domain.Profile{UserID: "u1", DisplayName: "Alice"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.DisplayName != "Alice" {
		t.Fatalf("expected Alice, got %+v", loaded)
	}

	if err := store.Delete(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Load(ctx); err != domain.ErrProfileNotFound {
		t.Fatalf("expected profile cleared, got %v", err)
	}
}
