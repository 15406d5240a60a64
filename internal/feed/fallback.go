package feed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/bilgisen/newsnexus/internal/logger"
	"github.com/bilgisen/newsnexus/internal/models"
)

// FallbackSource serves every call from Primary and, when Primary fails for
// any reason, from Fallback instead. Each substitution is logged and counted
// so an upstream outage stays visible to operators even though readers never
// see it.
type FallbackSource struct {
	primary  Source
	fallback Source
	log      zerolog.Logger
}

// NewFallbackSource wraps primary with fallback.
func NewFallbackSource(primary, fallback Source) *FallbackSource {
	return &FallbackSource{
		primary:  primary,
		fallback: fallback,
		log:      logger.Component("feed"),
	}
}

func (f *FallbackSource) ListByDate(ctx context.Context, date models.IsoDate, cursor string, size int) (*models.ArticleListResponse, error) {
	resp, err := f.primary.ListByDate(ctx, date, cursor, size)
	if err == nil {
		return resp, nil
	}

	FallbackTotal.WithLabelValues("list").Inc()
	f.log.Warn().
		Err(err).
		Str("date", date).
		Str("cursor", cursor).
		Int("size", size).
		Msg("Upstream list failed, serving fallback dataset")

	return f.fallback.ListByDate(ctx, date, cursor, size)
}

func (f *FallbackSource) GetDetail(ctx context.Context, id int64) (*models.ArticleDetail, error) {
	detail, err := f.primary.GetDetail(ctx, id)
	if err == nil {
		return detail, nil
	}

	FallbackTotal.WithLabelValues("detail").Inc()
	f.log.Warn().
		Err(err).
		Int64("id", id).
		Msg("Upstream detail failed, serving fallback dataset")

	detail, err = f.fallback.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, errors.Join(ErrNotFound, err)
	}
	return detail, nil
}
