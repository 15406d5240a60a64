package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bilgisen/newsnexus/internal/cache"
	"github.com/bilgisen/newsnexus/internal/logger"
	"github.com/bilgisen/newsnexus/internal/models"
	"github.com/bilgisen/newsnexus/internal/utils"
)

// CachedSource keeps successful upstream responses in a shared Store for ttl.
// Errors are never cached.
type CachedSource struct {
	next  Source
	store cache.Store
	ttl   time.Duration
	log   zerolog.Logger
}

// NewCachedSource wraps next with store.
func NewCachedSource(next Source, store cache.Store, ttl time.Duration) *CachedSource {
	return &CachedSource{
		next:  next,
		store: store,
		ttl:   ttl,
		log:   logger.Component("feed-cache"),
	}
}

func listKey(date models.IsoDate, cursor string, size int) string {
	// Cursors are opaque upstream tokens of unbounded length.
	return fmt.Sprintf("list:%s:%s:%d", models.ToAPIDate(date), utils.ShortHash(cursor, 16), size)
}

func detailKey(id int64) string {
	return fmt.Sprintf("detail:%d", id)
}

func (c *CachedSource) ListByDate(ctx context.Context, date models.IsoDate, cursor string, size int) (*models.ArticleListResponse, error) {
	if size <= 0 {
		size = DefaultPageSize
	}
	key := listKey(date, cursor, size)

	var cached models.ArticleListResponse
	if c.lookup(ctx, "list", key, &cached) {
		return &cached, nil
	}

	resp, err := c.next.ListByDate(ctx, date, cursor, size)
	if err != nil {
		return nil, err
	}
	c.save(ctx, key, resp)
	return resp, nil
}

func (c *CachedSource) GetDetail(ctx context.Context, id int64) (*models.ArticleDetail, error) {
	key := detailKey(id)

	var cached models.ArticleDetail
	if c.lookup(ctx, "detail", key, &cached) {
		return &cached, nil
	}

	detail, err := c.next.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	c.save(ctx, key, detail)
	return detail, nil
}

// lookup decodes a cached value into out. Store errors count as misses.
func (c *CachedSource) lookup(ctx context.Context, operation, key string, out any) bool {
	data, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache lookup failed")
		CacheLookups.WithLabelValues(operation, "error").Inc()
		return false
	}
	if !ok {
		CacheLookups.WithLabelValues(operation, "miss").Inc()
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Discarding undecodable cache entry")
		_ = c.store.Delete(ctx, key)
		CacheLookups.WithLabelValues(operation, "error").Inc()
		return false
	}
	CacheLookups.WithLabelValues(operation, "hit").Inc()
	return true
}

func (c *CachedSource) save(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Failed to encode cache entry")
		return
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Failed to write cache entry")
	}
}
