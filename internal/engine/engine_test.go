package engine

import (
	"context"
	"testing"
	"time"

	"github.com/myaiRhys/Lifer/internal/config"
	"github.com/myaiRhys/Lifer/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	cfg := config.TestConfig(dir)
	store, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := storage.Seed(ctx, store); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return NewService(store, cfg)
}

// setClock pins the service clock to a fixed instant.
func setClock(svc *Service, at time.Time) {
	svc.now = func() time.Time { return at }
}

func mustUserState(t *testing.T, svc *Service) *storage.UserState {
	t.Helper()
	state, err := svc.UserState(context.Background())
	if err != nil {
		t.Fatalf("user state: %v", err)
	}
	if state == nil {
		t.Fatal("user state missing after seed")
	}
	return state
}
