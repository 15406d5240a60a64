package models

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// ErrInvalidArticleID is returned for ids that are not positive integers.
var ErrInvalidArticleID = errors.New("invalid article id")

// UnknownSource is the source name used when an article link has no host.
const UnknownSource = "unknown"

// ArticleListItem is a single row of a date's article list.
// A nil ID marks an article that has no stable upstream id yet.
type ArticleListItem struct {
	ID            *int64  `json:"id"`
	Title         string  `json:"title"`
	Link          string  `json:"link"`
	PublishedDate IsoDate `json:"publishedDate"`
	SourceName    string  `json:"sourceName"`
}

// Key identifies an item within a list even when it has no id.
func (a ArticleListItem) Key() string {
	id := "null"
	if a.ID != nil {
		id = strconv.FormatInt(*a.ID, 10)
	}
	return id + ":" + a.Link
}

// ArticleListResponse is one cursor page of a date's articles.
type ArticleListResponse struct {
	Date        string            `json:"date"`
	TotalCount  int               `json:"totalCount"`
	UniqueCount int               `json:"uniqueCount"`
	Offset      int               `json:"offset"`
	Size        int               `json:"size"`
	HasNext     bool              `json:"hasNext"`
	NextCursor  *string           `json:"nextCursor"`
	Items       []ArticleListItem `json:"items"`
}

// Normalize enforces HasNext == (NextCursor != nil) and a non-nil Items slice.
func (r *ArticleListResponse) Normalize() {
	if r.NextCursor != nil && *r.NextCursor == "" {
		r.NextCursor = nil
	}
	r.HasNext = r.NextCursor != nil
	if r.Items == nil {
		r.Items = []ArticleListItem{}
	}
}

// ArticleDetail is the full view of one article.
type ArticleDetail struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Link          string  `json:"link"`
	Summary       *string `json:"summary"`
	Sentiment     *string `json:"sentiment"`
	PublishedDate IsoDate `json:"publishedDate,omitempty"`
}

// SourceName returns the hostname of link, or UnknownSource when link is not
// a valid absolute URL.
func SourceName(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Scheme == "" || u.Hostname() == "" {
		return UnknownSource
	}
	return u.Hostname()
}

// ParseArticleID parses a route parameter into a positive article id.
func ParseArticleID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidArticleID, raw)
	}
	return id, nil
}

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 { return &v }

// StringPtr returns a pointer to v.
func StringPtr(v string) *string { return &v }
