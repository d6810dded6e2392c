package root

import (
	"context"

	"github.com/myaiRhys/Lifer/internal/config"
	"github.com/myaiRhys/Lifer/internal/engine"
	"github.com/myaiRhys/Lifer/internal/storage"
)

func openService(ctx context.Context) (*engine.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.EnsureHome(); err != nil {
		return nil, nil, err
	}

	store, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = store.Close()
	}

	if err := storage.Seed(ctx, store); err != nil {
		cleanup()
		return nil, nil, err
	}

	svc := engine.NewService(store, cfg)
	if err := svc.EnsureMidnightReset(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}
