package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilgisen/newsnexus/internal/models"
)

// Dates returns the dates that have mock articles, most recent first.
func (m *MockSource) Dates() []models.IsoDate {
	out := make([]models.IsoDate, len(m.dates))
	copy(out, m.dates)
	return out
}

func TestMockListFirstAndSecondPage(t *testing.T) {
	src := NewMockSource()
	ctx := context.Background()

	first, err := src.ListByDate(ctx, "2026-02-07", "", 20)
	require.NoError(t, err)
	assert.Len(t, first.Items, 20)
	require.NotNil(t, first.NextCursor)
	assert.Equal(t, "20", *first.NextCursor)
	assert.True(t, first.HasNext)
	assert.Equal(t, "20260207", first.Date)
	assert.Equal(t, 26, first.TotalCount)
	assert.Equal(t, "오늘의 카카오뱅크", first.Items[0].SourceName)
	assert.Equal(t, "2026-02-07", first.Items[0].PublishedDate)

	second, err := src.ListByDate(ctx, "2026-02-07", *first.NextCursor, 20)
	require.NoError(t, err)
	assert.Len(t, second.Items, 6)
	assert.Nil(t, second.NextCursor)
	assert.False(t, second.HasNext)
	assert.Equal(t, 20, second.Offset)
}

func TestMockPaginationIsComplete(t *testing.T) {
	src := NewMockSource()
	ctx := context.Background()

	for _, date := range src.Dates() {
		for size := 1; size <= 30; size++ {
			var ids []int64
			seen := make(map[int64]bool)
			cursor := ""
			for {
				page, err := src.ListByDate(ctx, date, cursor, size)
				require.NoError(t, err)
				assert.Equal(t, page.NextCursor != nil, page.HasNext)
				for _, item := range page.Items {
					require.NotNil(t, item.ID)
					assert.False(t, seen[*item.ID], "duplicate id %d", *item.ID)
					seen[*item.ID] = true
					ids = append(ids, *item.ID)
				}
				if page.NextCursor == nil {
					break
				}
				cursor = *page.NextCursor
			}

			all, err := src.ListByDate(ctx, date, "", 1000)
			require.NoError(t, err)
			require.Len(t, ids, len(all.Items), "date %s size %d", date, size)
			for i, item := range all.Items {
				assert.Equal(t, *item.ID, ids[i])
			}
		}
	}
}

func TestMockListUnknownDateAndBadCursor(t *testing.T) {
	src := NewMockSource()
	ctx := context.Background()

	empty, err := src.ListByDate(ctx, "2001-01-01", "", 20)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
	assert.NotNil(t, empty.Items)
	assert.False(t, empty.HasNext)
	assert.Equal(t, 0, empty.TotalCount)

	garbage, err := src.ListByDate(ctx, "2026-02-06", "not-a-number", 20)
	require.NoError(t, err)
	assert.Len(t, garbage.Items, 2)

	past, err := src.ListByDate(ctx, "2026-02-06", "99", 20)
	require.NoError(t, err)
	assert.Empty(t, past.Items)
	assert.Nil(t, past.NextCursor)

	defaulted, err := src.ListByDate(ctx, "2026-02-07", "", 0)
	require.NoError(t, err)
	assert.Len(t, defaulted.Items, DefaultPageSize)
}

func TestMockGetDetail(t *testing.T) {
	src := NewMockSource()

	detail, err := src.GetDetail(context.Background(), 1738886400000001)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-07 주요 기사 1", detail.Title)
	require.NotNil(t, detail.Sentiment)
	assert.Equal(t, "POSITIVE", *detail.Sentiment)
	assert.Equal(t, "2026-02-07", detail.PublishedDate)

	third, err := src.GetDetail(context.Background(), 1738886400000003)
	require.NoError(t, err)
	assert.Equal(t, models.SentimentNegative, models.NormalizeSentiment(third.Sentiment))

	_, err = src.GetDetail(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMockSourceIsImmutable(t *testing.T) {
	src := NewMockSource()

	detail, err := src.GetDetail(context.Background(), 1759449600000001)
	require.NoError(t, err)
	detail.Title = "changed"

	again, err := src.GetDetail(context.Background(), 1759449600000001)
	require.NoError(t, err)
	assert.Equal(t, "2025-10-03 정책 브리핑", again.Title)
	assert.Equal(t, []string{"2026-02-07", "2026-02-06", "2025-12-24", "2025-10-03"}, src.Dates())
}
