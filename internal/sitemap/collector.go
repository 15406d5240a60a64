// Package sitemap collects the article ids worth indexing and renders the
// sitemap index and its chunks.
package sitemap

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bilgisen/newsnexus/internal/feed"
	"github.com/bilgisen/newsnexus/internal/logger"
	"github.com/bilgisen/newsnexus/internal/models"
)

// Options bound a collection run.
type Options struct {
	// Limit is the maximum number of unique ids to collect.
	Limit int
	// MaxDaysToScan is how many calendar days back from today to walk.
	MaxDaysToScan int
	// PageSize is the list page size requested per call.
	PageSize int
	// MaxPagesPerDay caps pagination within one day even if the source keeps
	// reporting more pages.
	MaxPagesPerDay int
}

// DefaultOptions are used for zero fields.
var DefaultOptions = Options{
	Limit:          200,
	MaxDaysToScan:  31,
	PageSize:       50,
	MaxPagesPerDay: 10,
}

func (o Options) withDefaults() Options {
	if o.Limit <= 0 {
		o.Limit = DefaultOptions.Limit
	}
	if o.MaxDaysToScan <= 0 {
		o.MaxDaysToScan = DefaultOptions.MaxDaysToScan
	}
	if o.PageSize <= 0 {
		o.PageSize = DefaultOptions.PageSize
	}
	if o.MaxPagesPerDay <= 0 {
		o.MaxPagesPerDay = DefaultOptions.MaxPagesPerDay
	}
	return o
}

// Collector walks a feed.Source backwards from today.
type Collector struct {
	source feed.Source
	now    func() time.Time
	log    zerolog.Logger
}

// NewCollector returns a Collector over source. A nil now uses time.Now.
func NewCollector(source feed.Source, now func() time.Time) *Collector {
	if now == nil {
		now = time.Now
	}
	return &Collector{
		source: source,
		now:    now,
		log:    logger.Component("sitemap"),
	}
}

// CollectArticleIDs returns up to opts.Limit unique article ids, newest day
// first, in the order the source lists them. Items without an id are
// skipped. The walk stops at whichever bound is reached first.
func (c *Collector) CollectArticleIDs(ctx context.Context, opts Options) ([]int64, error) {
	opts = opts.withDefaults()
	start := time.Now()
	now := c.now()

	ids := make([]int64, 0, opts.Limit)
	seen := make(map[int64]struct{}, opts.Limit)
	days, pages := 0, 0

	for day := 0; day < opts.MaxDaysToScan && len(ids) < opts.Limit; day++ {
		date := models.DaysBefore(now, day)
		days++
		cursor := ""

		for page := 0; page < opts.MaxPagesPerDay && len(ids) < opts.Limit; page++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			resp, err := c.source.ListByDate(ctx, date, cursor, opts.PageSize)
			if err != nil {
				return nil, fmt.Errorf("failed to list %s for sitemap: %w", date, err)
			}
			pages++

			for _, item := range resp.Items {
				if item.ID == nil {
					continue
				}
				if _, dup := seen[*item.ID]; dup {
					continue
				}
				seen[*item.ID] = struct{}{}
				ids = append(ids, *item.ID)
				if len(ids) >= opts.Limit {
					break
				}
			}

			if resp.NextCursor == nil {
				break
			}
			cursor = *resp.NextCursor
		}
	}

	CollectedIDs.Set(float64(len(ids)))
	CollectDuration.Observe(time.Since(start).Seconds())
	c.log.Info().
		Int("ids", len(ids)).
		Int("days_scanned", days).
		Int("pages_fetched", pages).
		Dur("duration", time.Since(start)).
		Msg("Collected sitemap article ids")

	return ids, nil
}
