package sitemap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilgisen/newsnexus/internal/feed"
	"github.com/bilgisen/newsnexus/internal/feed/feedtest"
	"github.com/bilgisen/newsnexus/internal/models"
)

var mockToday = time.Date(2026, 2, 7, 12, 0, 0, 0, time.Local)

func fixedClock() time.Time { return mockToday }

func TestCollectRespectsPagesPerDay(t *testing.T) {
	mock := feed.NewMockSource()
	src := &feedtest.FuncSource{ListFunc: mock.ListByDate}
	c := NewCollector(src, fixedClock)

	ids, err := c.CollectArticleIDs(context.Background(), Options{Limit: 5, MaxDaysToScan: 31, PageSize: 2, MaxPagesPerDay: 1})
	require.NoError(t, err)

	// One page of today, then both items of the previous day; nothing else
	// falls within 31 days.
	assert.Equal(t, []int64{1738886400000001, 1738886400000002, 1738800000000001, 1738800000000002}, ids)

	calls := src.ListCalls()
	require.Len(t, calls, 31)
	assert.Equal(t, feedtest.ListCall{Date: "2026-02-07", Cursor: "", Size: 2}, calls[0])
	assert.Equal(t, feedtest.ListCall{Date: "2026-02-06", Cursor: "", Size: 2}, calls[1])
	assert.Equal(t, "2026-01-08", calls[30].Date)
}

func TestCollectStopsAtLimit(t *testing.T) {
	mock := feed.NewMockSource()
	src := &feedtest.FuncSource{ListFunc: mock.ListByDate}
	c := NewCollector(src, fixedClock)

	ids, err := c.CollectArticleIDs(context.Background(), Options{Limit: 5, MaxDaysToScan: 60, PageSize: 2, MaxPagesPerDay: 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{1738886400000001, 1738886400000002, 1738800000000001, 1738800000000002, 1734998400000001}, ids)
	assert.Equal(t, "2025-12-24", src.ListCalls()[len(src.ListCalls())-1].Date)

	ids, err = c.CollectArticleIDs(context.Background(), Options{Limit: 3, MaxDaysToScan: 60, PageSize: 50, MaxPagesPerDay: 10})
	require.NoError(t, err)
	assert.Len(t, ids, 3)
}

func TestCollectPaginatesWithinDay(t *testing.T) {
	mock := feed.NewMockSource()
	src := &feedtest.FuncSource{ListFunc: mock.ListByDate}
	c := NewCollector(src, fixedClock)

	ids, err := c.CollectArticleIDs(context.Background(), Options{Limit: 100, MaxDaysToScan: 1, PageSize: 10, MaxPagesPerDay: 10})
	require.NoError(t, err)
	assert.Len(t, ids, 26)
	assert.Len(t, src.ListCalls(), 3)
}

func TestCollectGuardsEndlessPagination(t *testing.T) {
	id := int64(0)
	src := &feedtest.FuncSource{
		ListFunc: func(ctx context.Context, date models.IsoDate, cursor string, size int) (*models.ArticleListResponse, error) {
			id++
			return &models.ArticleListResponse{
				HasNext:    true,
				NextCursor: models.StringPtr("again"),
				Items:      []models.ArticleListItem{{ID: models.Int64Ptr(id)}, {ID: nil}, {ID: models.Int64Ptr(1)}},
			}, nil
		},
	}
	c := NewCollector(src, fixedClock)

	ids, err := c.CollectArticleIDs(context.Background(), Options{Limit: 1000, MaxDaysToScan: 2, PageSize: 3, MaxPagesPerDay: 4})
	require.NoError(t, err)
	assert.Len(t, src.ListCalls(), 8)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8}, ids)
}

func TestCollectDefaults(t *testing.T) {
	src := &feedtest.FuncSource{ListFunc: feed.NewMockSource().ListByDate}
	c := NewCollector(src, fixedClock)

	_, err := c.CollectArticleIDs(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 50, src.ListCalls()[0].Size)
}

func TestCollectPropagatesErrors(t *testing.T) {
	c := NewCollector(feedtest.FailingSource(), fixedClock)
	_, err := c.CollectArticleIDs(context.Background(), Options{})
	assert.ErrorIs(t, err, feedtest.ErrUnavailable)
}

func TestCollectHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCollector(feed.NewMockSource(), fixedClock)
	_, err := c.CollectArticleIDs(ctx, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}
