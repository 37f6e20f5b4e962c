package cmd

import (
	"context"

	"github.com/canardconfit/gns3-inventory/internal/cache"
	"github.com/canardconfit/gns3-inventory/internal/config"
	"github.com/canardconfit/gns3-inventory/internal/gns3"
	"github.com/canardconfit/gns3-inventory/internal/inventory"
	"github.com/canardconfit/gns3-inventory/internal/log"
)

// newCacheBackend builds the configured cache backend. Only the valkey
// backend involves I/O at construction time.
func newCacheBackend(ctx context.Context, cfg *config.Config) (cache.Cache, func(), error) {
	if cfg.Cache.Backend == config.BackendValkey {
		store, err := cache.NewValkeyCache(ctx, cfg.Cache.URL, cfg.Cache.Password, cfg.Cache.TTL)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	store := cache.NewFileCache(cfg.Cache.Dir, cfg.Cache.TTL, nil)
	return store, func() {}, nil
}

// newBuilder wires the full pipeline for one run.
func newBuilder(ctx context.Context, cfg *config.Config) (*inventory.Builder, func(), error) {
	client, err := gns3.NewClient(cfg.URL, cfg.ValidateCerts)
	if err != nil {
		return nil, nil, err
	}

	var store cache.Cache
	closeFn := func() {}
	if cfg.Cache.Enabled {
		store, closeFn, err = newCacheBackend(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
	}

	return &inventory.Builder{
		Config: cfg,
		API:    client,
		Cache:  store,
		Log:    log.Logger(),
	}, closeFn, nil
}
