// Package feed talks to the article feed: the remote gateway, the static
// fallback dataset and the decorators that combine them.
package feed

import (
	"context"
	"errors"

	"github.com/bilgisen/newsnexus/internal/models"
)

// ErrNotFound is returned by GetDetail when no article has the given id.
var ErrNotFound = errors.New("article not found")

// DefaultPageSize is the list page size used when callers pass size <= 0.
const DefaultPageSize = 20

// Source lists a date's articles page by page and fetches single articles.
// An empty cursor requests the first page.
type Source interface {
	ListByDate(ctx context.Context, date models.IsoDate, cursor string, size int) (*models.ArticleListResponse, error)
	GetDetail(ctx context.Context, id int64) (*models.ArticleDetail, error)
}
