package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/bilgisen/newsnexus/internal/models"
)

// RemoteSource is the gateway to the upstream feed API.
type RemoteSource struct {
	client  *resty.Client
	baseURL string
}

// NewRemoteSource returns a gateway for baseURL. Requests are attempted once;
// callers fall back instead of retrying.
func NewRemoteSource(baseURL string, timeout time.Duration) *RemoteSource {
	return &RemoteSource{
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
		baseURL: baseURL,
	}
}

// ListByDate fetches one page of date's articles.
func (r *RemoteSource) ListByDate(ctx context.Context, date models.IsoDate, cursor string, size int) (*models.ArticleListResponse, error) {
	if size <= 0 {
		size = DefaultPageSize
	}

	params := map[string]string{
		"date": models.ToAPIDate(date),
		"size": strconv.Itoa(size),
	}
	if cursor != "" {
		params["cursor"] = cursor
	}

	var body listResponse
	start := time.Now()
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(r.baseURL)
	observeUpstream("list", resp, err, start)

	if err != nil {
		return nil, fmt.Errorf("failed to list articles for %s: %w", date, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("unexpected status code %d listing articles for %s", resp.StatusCode(), date)
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to parse article list for %s: %w", date, err)
	}

	return body.toListResponse(), nil
}

// GetDetail fetches a single article by id.
func (r *RemoteSource) GetDetail(ctx context.Context, id int64) (*models.ArticleDetail, error) {
	var body detailResponse
	start := time.Now()
	resp, err := r.client.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Get(r.baseURL + "/{id}")
	observeUpstream("detail", resp, err, start)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch article %d: %w", id, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("unexpected status code %d fetching article %d", resp.StatusCode(), id)
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to parse article %d: %w", id, err)
	}

	return body.toDetail(), nil
}
