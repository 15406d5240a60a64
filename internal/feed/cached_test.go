package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilgisen/newsnexus/internal/cache"
	"github.com/bilgisen/newsnexus/internal/feed/feedtest"
	"github.com/bilgisen/newsnexus/internal/models"
)

func TestCachedSourceServesRepeatsFromStore(t *testing.T) {
	inner := &feedtest.FuncSource{
		ListFunc: func(ctx context.Context, date models.IsoDate, cursor string, size int) (*models.ArticleListResponse, error) {
			return &models.ArticleListResponse{Date: models.ToAPIDate(date), Size: size, Items: []models.ArticleListItem{{Title: cursor}}}, nil
		},
		DetailFunc: func(ctx context.Context, id int64) (*models.ArticleDetail, error) {
			return &models.ArticleDetail{ID: id, Title: "cached", Sentiment: models.StringPtr("중립")}, nil
		},
	}
	src := NewCachedSource(inner, cache.NewMemoryStore(16, time.Minute), time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		resp, err := src.ListByDate(ctx, "2026-02-07", "c1", 20)
		require.NoError(t, err)
		assert.Equal(t, "c1", resp.Items[0].Title)
	}
	_, err := src.ListByDate(ctx, "2026-02-07", "c2", 20)
	require.NoError(t, err)
	assert.Len(t, inner.ListCalls(), 2)

	for i := 0; i < 2; i++ {
		detail, err := src.GetDetail(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, "중립", *detail.Sentiment)
	}
	assert.Equal(t, []int64{5}, inner.DetailCalls())
}

func TestCachedSourceDoesNotCacheErrors(t *testing.T) {
	inner := feedtest.FailingSource()
	src := NewCachedSource(inner, cache.NewMemoryStore(16, time.Minute), time.Minute)

	for i := 0; i < 2; i++ {
		_, err := src.GetDetail(context.Background(), 5)
		assert.ErrorIs(t, err, feedtest.ErrUnavailable)
	}
	assert.Len(t, inner.DetailCalls(), 2)
}

func TestCachedSourceDropsCorruptEntries(t *testing.T) {
	store := cache.NewMemoryStore(16, time.Minute)
	require.NoError(t, store.Set(context.Background(), detailKey(5), []byte("{broken"), 0))

	inner := &feedtest.FuncSource{
		DetailFunc: func(ctx context.Context, id int64) (*models.ArticleDetail, error) {
			return &models.ArticleDetail{ID: id}, nil
		},
	}
	src := NewCachedSource(inner, store, time.Minute)

	detail, err := src.GetDetail(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), detail.ID)
	assert.Len(t, inner.DetailCalls(), 1)
}
