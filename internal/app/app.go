// Package app wires the configured article source, caches, sitemap builder
// and object storage together.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/bilgisen/newsnexus/internal/cache"
	"github.com/bilgisen/newsnexus/internal/config"
	"github.com/bilgisen/newsnexus/internal/feed"
	"github.com/bilgisen/newsnexus/internal/logger"
	"github.com/bilgisen/newsnexus/internal/sitemap"
	"github.com/bilgisen/newsnexus/internal/storage"
)

// Services is everything the HTTP handlers and the CLI read from.
type Services struct {
	Source  feed.Source
	IDs     *sitemap.IDCache
	Sitemap *sitemap.Builder
	Storage storage.Storage
	Cache   cache.Store
	Now     func() time.Time
}

// New builds the services described by cfg. A Redis URL that cannot be
// reached downgrades the response cache to process memory.
func New(ctx context.Context, cfg *config.Config) (*Services, error) {
	store := newCacheStore(ctx, cfg)

	remote := feed.NewRemoteSource(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	source := feed.NewFallbackSource(
		feed.NewCachedSource(remote, store, cfg.CacheTTL),
		feed.NewMockSource(),
	)

	objects, err := newStorage(ctx, cfg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return NewServices(cfg, source, store, objects, time.Now), nil
}

// NewServices assembles Services around an existing source and store.
func NewServices(cfg *config.Config, source feed.Source, store cache.Store, objects storage.Storage, now func() time.Time) *Services {
	ids := sitemap.NewIDCache(
		sitemap.NewCollector(source, now),
		sitemap.Options{
			Limit:          cfg.SitemapMaxURLs,
			MaxDaysToScan:  cfg.SitemapMaxDays,
			PageSize:       cfg.SitemapPageSize,
			MaxPagesPerDay: cfg.SitemapMaxPagesPerDay,
		},
		cfg.SitemapCacheTTL,
	)

	return &Services{
		Source:  source,
		IDs:     ids,
		Sitemap: sitemap.NewBuilder(ids, cfg.SiteURL, cfg.SitemapChunkSize),
		Storage: objects,
		Cache:   store,
		Now:     now,
	}
}

// Close releases the cache connection.
func (s *Services) Close() error {
	if s.Cache == nil {
		return nil
	}
	return s.Cache.Close()
}

func newCacheStore(ctx context.Context, cfg *config.Config) cache.Store {
	log := logger.Component("app")

	if cfg.RedisURL != "" {
		store, err := cache.NewRedisStore(ctx, cfg.RedisURL, cfg.RedisPrefix)
		if err == nil {
			log.Info().Str("prefix", cfg.RedisPrefix).Msg("Using Redis response cache")
			return store
		}
		log.Warn().Err(err).Msg("Redis unavailable, using in-memory response cache")
	}

	return cache.NewMemoryStore(cfg.CacheSize, cfg.CacheTTL)
}

func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if cfg.R2Enabled() {
		r2, err := storage.NewR2Storage(ctx, storage.R2Config{
			Endpoint:  cfg.R2EndpointURL(),
			AccessKey: cfg.R2AccessKey,
			SecretKey: cfg.R2SecretKey,
			Bucket:    cfg.R2Bucket,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize R2 storage: %w", err)
		}
		return r2, nil
	}

	local, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize local storage: %w", err)
	}
	return local, nil
}
