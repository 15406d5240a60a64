package feed

import "github.com/bilgisen/newsnexus/internal/models"

// listItem and listResponse mirror the upstream list payload.
type listItem struct {
	ID    *int64 `json:"id"`
	Title string `json:"title"`
	Link  string `json:"link"`
}

type listResponse struct {
	Date        string     `json:"date"`
	TotalCount  int        `json:"totalCount"`
	UniqueCount int        `json:"uniqueCount"`
	Offset      int        `json:"offset"`
	Size        int        `json:"size"`
	HasNext     bool       `json:"hasNext"`
	NextCursor  *string    `json:"nextCursor"`
	Items       []listItem `json:"items"`
}

type detailResponse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Link          string  `json:"link"`
	Summary       *string `json:"summary"`
	Sentiment     *string `json:"sentiment"`
	Date          *string `json:"date"`
	PublishedDate *string `json:"publishedDate"`
}

// toListResponse attaches the echoed date and link hostname to every item.
func (r *listResponse) toListResponse() *models.ArticleListResponse {
	published := models.FromAPIDate(r.Date)
	items := make([]models.ArticleListItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, models.ArticleListItem{
			ID:            item.ID,
			Title:         item.Title,
			Link:          item.Link,
			PublishedDate: published,
			SourceName:    models.SourceName(item.Link),
		})
	}

	out := &models.ArticleListResponse{
		Date:        r.Date,
		TotalCount:  r.TotalCount,
		UniqueCount: r.UniqueCount,
		Offset:      r.Offset,
		Size:        r.Size,
		HasNext:     r.HasNext,
		NextCursor:  r.NextCursor,
		Items:       items,
	}
	out.Normalize()
	return out
}

// toDetail prefers publishedDate over date when both are present.
func (r *detailResponse) toDetail() *models.ArticleDetail {
	detail := &models.ArticleDetail{
		ID:        r.ID,
		Title:     r.Title,
		Link:      r.Link,
		Summary:   r.Summary,
		Sentiment: r.Sentiment,
	}
	switch {
	case r.PublishedDate != nil && *r.PublishedDate != "":
		detail.PublishedDate = models.FromAPIDate(*r.PublishedDate)
	case r.Date != nil && *r.Date != "":
		detail.PublishedDate = models.FromAPIDate(*r.Date)
	}
	return detail
}
