package feed

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/bilgisen/newsnexus/internal/models"
)

const (
	mockSourceName = "오늘의 카카오뱅크"
	mockSourceURL  = "https://example.com/mock-article"
	mockIDBase     = int64(1738886400000000)
)

// MockSource serves a fixed in-memory dataset with the same shapes as the
// remote gateway. It never fails and is immutable after construction.
type MockSource struct {
	byDate map[models.IsoDate][]models.ArticleDetail
	// dates keeps GetDetail's scan order stable.
	dates []models.IsoDate
}

// NewMockSource returns the built-in fallback dataset.
func NewMockSource() *MockSource {
	return NewMockSourceFrom(defaultMockArticles())
}

// NewMockSourceFrom builds a MockSource over the given articles per date.
func NewMockSourceFrom(byDate map[models.IsoDate][]models.ArticleDetail) *MockSource {
	m := &MockSource{byDate: make(map[models.IsoDate][]models.ArticleDetail, len(byDate))}
	for date, articles := range byDate {
		copied := make([]models.ArticleDetail, len(articles))
		copy(copied, articles)
		m.byDate[date] = copied
		m.dates = append(m.dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(m.dates)))
	return m
}

// ListByDate pages through date's articles. The cursor is the decimal offset
// of the first item to return; an empty or unparsable cursor starts at 0.
func (m *MockSource) ListByDate(ctx context.Context, date models.IsoDate, cursor string, size int) (*models.ArticleListResponse, error) {
	if size <= 0 {
		size = DefaultPageSize
	}

	articles := m.byDate[date]
	offset := 0
	if cursor != "" {
		if parsed, err := strconv.Atoi(cursor); err == nil && parsed > 0 {
			offset = parsed
		}
	}
	if offset > len(articles) {
		offset = len(articles)
	}
	end := offset + size
	if end > len(articles) {
		end = len(articles)
	}

	items := make([]models.ArticleListItem, 0, end-offset)
	for _, article := range articles[offset:end] {
		items = append(items, models.ArticleListItem{
			ID:            models.Int64Ptr(article.ID),
			Title:         article.Title,
			Link:          article.Link,
			PublishedDate: date,
			SourceName:    mockSourceName,
		})
	}

	var next *string
	if end < len(articles) {
		next = models.StringPtr(strconv.Itoa(end))
	}

	resp := &models.ArticleListResponse{
		Date:        models.ToAPIDate(date),
		TotalCount:  len(articles),
		UniqueCount: len(articles),
		Offset:      offset,
		Size:        size,
		NextCursor:  next,
		Items:       items,
	}
	resp.Normalize()
	return resp, nil
}

// GetDetail scans every date for id and returns ErrNotFound when absent.
func (m *MockSource) GetDetail(ctx context.Context, id int64) (*models.ArticleDetail, error) {
	for _, date := range m.dates {
		for _, article := range m.byDate[date] {
			if article.ID == id {
				detail := article
				detail.PublishedDate = date
				return &detail, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
}

func defaultMockArticles() map[models.IsoDate][]models.ArticleDetail {
	headlines := make([]models.ArticleDetail, 0, 26)
	for n := 1; n <= 26; n++ {
		sentiment := "POSITIVE"
		switch {
		case n%3 == 0:
			sentiment = "NEGATIVE"
		case n%2 == 0:
			sentiment = "NEUTRAL"
		}
		headlines = append(headlines, models.ArticleDetail{
			ID:        mockIDBase + int64(n),
			Title:     fmt.Sprintf("2026-02-07 주요 기사 %d", n),
			Link:      fmt.Sprintf("%s/%d", mockSourceURL, n),
			Summary:   models.StringPtr(fmt.Sprintf("%d번째 목 기사 요약입니다. 백엔드 연결 전 UI 흐름 검증을 위한 데이터입니다.", n)),
			Sentiment: models.StringPtr(sentiment),
		})
	}

	return map[models.IsoDate][]models.ArticleDetail{
		"2026-02-07": headlines,
		"2026-02-06": {
			{
				ID:        1738800000000001,
				Title:     "2026-02-06 경제 동향",
				Link:      mockSourceURL + "/economy",
				Summary:   models.StringPtr("국내외 경제 지표 변화에 대한 요약입니다."),
				Sentiment: models.StringPtr("NEUTRAL"),
			},
			{
				ID:        1738800000000002,
				Title:     "2026-02-06 기술 트렌드",
				Link:      mockSourceURL + "/tech",
				Summary:   models.StringPtr("AI 제품화와 개발 생산성 도구의 최신 트렌드입니다."),
				Sentiment: models.StringPtr("POSITIVE"),
			},
		},
		"2025-12-24": {
			{
				ID:        1734998400000001,
				Title:     "2025-12-24 연말 특집",
				Link:      mockSourceURL + "/year-end",
				Summary:   models.StringPtr("연말 주요 이슈를 정리한 특집 기사입니다."),
				Sentiment: models.StringPtr("NEUTRAL"),
			},
		},
		"2025-10-03": {
			{
				ID:        1759449600000001,
				Title:     "2025-10-03 정책 브리핑",
				Link:      mockSourceURL + "/policy",
				Summary:   models.StringPtr("정책 발표 내용을 핵심만 정리했습니다."),
				Sentiment: models.StringPtr("NEGATIVE"),
			},
		},
	}
}
