// Package feedtest provides feed.Source doubles for tests.
package feedtest

import (
	"context"
	"errors"
	"sync"

	"github.com/bilgisen/newsnexus/internal/models"
)

// ErrUnavailable is what FailingSource returns for every call.
var ErrUnavailable = errors.New("upstream unavailable")

// FuncSource adapts plain functions to feed.Source and records calls.
type FuncSource struct {
	ListFunc   func(ctx context.Context, date models.IsoDate, cursor string, size int) (*models.ArticleListResponse, error)
	DetailFunc func(ctx context.Context, id int64) (*models.ArticleDetail, error)

	mu          sync.Mutex
	listCalls   []ListCall
	detailCalls []int64
}

// ListCall is one recorded ListByDate invocation.
type ListCall struct {
	Date   models.IsoDate
	Cursor string
	Size   int
}

func (f *FuncSource) ListByDate(ctx context.Context, date models.IsoDate, cursor string, size int) (*models.ArticleListResponse, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, ListCall{Date: date, Cursor: cursor, Size: size})
	f.mu.Unlock()
	if f.ListFunc == nil {
		return nil, ErrUnavailable
	}
	return f.ListFunc(ctx, date, cursor, size)
}

func (f *FuncSource) GetDetail(ctx context.Context, id int64) (*models.ArticleDetail, error) {
	f.mu.Lock()
	f.detailCalls = append(f.detailCalls, id)
	f.mu.Unlock()
	if f.DetailFunc == nil {
		return nil, ErrUnavailable
	}
	return f.DetailFunc(ctx, id)
}

// ListCalls returns a copy of the recorded ListByDate calls.
func (f *FuncSource) ListCalls() []ListCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]ListCall(nil), f.listCalls...)
}

// DetailCalls returns a copy of the recorded GetDetail ids.
func (f *FuncSource) DetailCalls() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.detailCalls...)
}

// FailingSource returns a FuncSource whose every call fails.
func FailingSource() *FuncSource {
	return &FuncSource{}
}
