package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"trivia-client/internal/domain"
)

func TestProfileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewProfileStore(client, "kiosk-1", time.Minute)

	if _, err := store.Load(ctx); err != domain.ErrProfileNotFound {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}

	saved := domain.Profile{UserID: "abc-123", DisplayName: "Alice"}
	if err := store.Save(ctx, saved); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("trivia:profile:kiosk-1") {
		t.Fatalf("expected profile key set")
	}
	if ttl := mr.TTL("trivia:profile:kiosk-1"); ttl != time.Minute {
		t.Fatalf("expected TTL applied, got %v", ttl)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != saved {
		t.Fatalf("expected %+v, got %+v", saved, loaded)
	}

	if err := store.Delete(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("trivia:profile:kiosk-1") {
		t.Fatalf("expected profile key removed")
	}
}
