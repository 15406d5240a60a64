// Package browse holds the list/detail state machine behind the article
// browser: date selection, cursor pagination and article selection.
package browse

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bilgisen/newsnexus/internal/feed"
	"github.com/bilgisen/newsnexus/internal/models"
)

// ErrStale is returned by a load whose triggering selection changed before
// it finished. Its result was discarded.
var ErrStale = errors.New("selection changed while loading")

// View is which pane a compact (single-pane) layout shows.
type View string

const (
	ViewList   View = "list"
	ViewDetail View = "detail"
)

// State is a point-in-time copy of a Session.
type State struct {
	SelectedDate       models.IsoDate
	SelectedArticleKey string
	SelectedArticleID  *int64

	Articles   []models.ArticleListItem
	NextCursor *string
	HasMore    bool

	Detail         *models.ArticleDetail
	PendingArticle *models.ArticleListItem
	DetailNotFound bool

	ListLoading   bool
	FetchingMore  bool
	DetailLoading bool

	View View
}

// Session is one reader's browsing state. Loads run on the caller's
// goroutine without holding the lock, so calls may overlap; each load checks
// that its selection is still current before applying its result.
type Session struct {
	source   feed.Source
	pageSize int
	now      func() time.Time
	compact  bool

	mu    sync.Mutex
	state State
	// listGen and detailGen identify the current date and article selection.
	listGen   uint64
	detailGen uint64
}

// Option configures a Session.
type Option func(*Session)

// WithPageSize sets the list page size.
func WithPageSize(size int) Option {
	return func(s *Session) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithClock overrides the clock used to decide what "today" is.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithCompactLayout marks the session as rendering one pane at a time.
func WithCompactLayout(compact bool) Option {
	return func(s *Session) { s.compact = compact }
}

// New returns an empty session reading from source.
func New(source feed.Source, opts ...Option) *Session {
	s := &Session{
		source:   source,
		pageSize: feed.DefaultPageSize,
		now:      time.Now,
		state:    State{View: ViewList},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state
	out.Articles = append([]models.ArticleListItem(nil), s.state.Articles...)
	return out
}

// SetCompactLayout switches between single-pane and split layouts.
func (s *Session) SetCompactLayout(compact bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compact = compact
}

// ShowList returns a compact layout to the list pane.
func (s *Session) ShowList() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.View = ViewList
}

// SelectDate switches to date, clearing the list and any selection, and loads
// the date's first page. Selecting the current date is a no-op.
func (s *Session) SelectDate(ctx context.Context, date models.IsoDate) error {
	if !models.ValidIsoDate(date) {
		return fmt.Errorf("%w: %q", models.ErrInvalidDate, date)
	}

	s.mu.Lock()
	if date == s.state.SelectedDate {
		s.mu.Unlock()
		return nil
	}
	s.state = State{
		SelectedDate: date,
		ListLoading:  true,
		View:         ViewList,
	}
	s.listGen++
	s.detailGen++
	gen := s.listGen
	s.mu.Unlock()

	resp, err := s.source.ListByDate(ctx, date, "", s.pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.listGen {
		return ErrStale
	}
	s.state.ListLoading = false
	s.state.FetchingMore = false
	if err != nil {
		s.state.Articles = nil
		s.state.NextCursor = nil
		s.state.HasMore = false
		return fmt.Errorf("failed to list articles for %s: %w", date, err)
	}
	s.state.Articles = append([]models.ArticleListItem(nil), resp.Items...)
	s.state.NextCursor = resp.NextCursor
	s.state.HasMore = resp.HasNext
	return nil
}

// LoadMore appends the next page of the selected date. It does nothing when
// no date is selected, there is no next page, or a list load is in flight.
func (s *Session) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	if s.state.SelectedDate == "" || s.state.NextCursor == nil || s.state.ListLoading || s.state.FetchingMore {
		s.mu.Unlock()
		return nil
	}
	s.state.FetchingMore = true
	gen := s.listGen
	date, cursor := s.state.SelectedDate, *s.state.NextCursor
	s.mu.Unlock()

	resp, err := s.source.ListByDate(ctx, date, cursor, s.pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.listGen {
		return ErrStale
	}
	s.state.FetchingMore = false
	if err != nil {
		// Loaded items stay; pagination stops.
		s.state.HasMore = false
		s.state.NextCursor = nil
		return fmt.Errorf("failed to load more articles for %s: %w", date, err)
	}
	s.state.Articles = append(s.state.Articles, resp.Items...)
	s.state.NextCursor = resp.NextCursor
	s.state.HasMore = resp.HasNext
	return nil
}

// SelectArticle opens item. Re-selecting the open article only switches a
// compact layout to the detail pane. An item without an id can only be
// opened while today's date is selected; it is shown as pending without a
// fetch, and otherwise the call changes nothing.
func (s *Session) SelectArticle(ctx context.Context, item models.ArticleListItem) error {
	key := item.Key()

	s.mu.Lock()
	if key == s.state.SelectedArticleKey {
		if s.compact {
			s.state.View = ViewDetail
		}
		s.mu.Unlock()
		return nil
	}

	if item.ID == nil {
		defer s.mu.Unlock()
		if s.state.SelectedDate != models.Today(s.now()) {
			return nil
		}
		pending := item
		s.detailGen++
		s.state.SelectedArticleKey = key
		s.state.SelectedArticleID = nil
		s.state.PendingArticle = &pending
		s.state.Detail = nil
		s.state.DetailNotFound = false
		s.state.DetailLoading = false
		if s.compact {
			s.state.View = ViewDetail
		}
		return nil
	}

	id := *item.ID
	s.detailGen++
	gen := s.detailGen
	s.state.SelectedArticleKey = key
	s.state.SelectedArticleID = models.Int64Ptr(id)
	s.state.PendingArticle = nil
	s.state.Detail = nil
	s.state.DetailNotFound = false
	s.state.DetailLoading = true
	if s.compact {
		s.state.View = ViewDetail
	}
	s.mu.Unlock()

	detail, err := s.source.GetDetail(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.detailGen {
		return ErrStale
	}
	s.state.DetailLoading = false
	if err != nil {
		s.state.Detail = nil
		s.state.DetailNotFound = true
		return fmt.Errorf("failed to load article %d: %w", id, err)
	}
	s.state.Detail = detail
	return nil
}

// Open marks an already fetched article as selected and shown, the way a
// deep link into an article page starts.
func (s *Session) Open(detail *models.ArticleDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := models.ArticleListItem{ID: models.Int64Ptr(detail.ID), Link: detail.Link}
	s.detailGen++
	s.state.SelectedArticleKey = item.Key()
	s.state.SelectedArticleID = models.Int64Ptr(detail.ID)
	s.state.PendingArticle = nil
	s.state.Detail = detail
	s.state.DetailNotFound = false
	s.state.DetailLoading = false
	if s.compact {
		s.state.View = ViewDetail
	}
}
