package sitemap

import (
	"context"
	"fmt"
	"strings"

	"github.com/bilgisen/newsnexus/internal/logger"
)

const xmlContentType = "application/xml; charset=utf-8"

// ObjectWriter stores rendered documents under a key.
type ObjectWriter interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// PublishResult lists the keys written by Publish.
type PublishResult struct {
	Keys   []string `json:"keys"`
	Chunks int      `json:"chunks"`
}

// Publish renders the index and every chunk from one id list and writes
// them to w under the same paths the HTTP routes serve.
func (b *Builder) Publish(ctx context.Context, w ObjectWriter) (*PublishResult, error) {
	log := logger.Component("sitemap")

	ids, err := b.ids.IDs(ctx)
	if err != nil {
		return nil, err
	}
	n := ChunkCount(len(ids), b.chunkSize)
	now := b.now()

	index, err := b.renderIndex(ids)
	if err != nil {
		return nil, err
	}
	result := &PublishResult{Chunks: n}
	if err := w.Put(ctx, "sitemap.xml", index, xmlContentType); err != nil {
		return nil, fmt.Errorf("failed to publish sitemap index: %w", err)
	}
	result.Keys = append(result.Keys, "sitemap.xml")

	for i := 0; i < n; i++ {
		body, err := b.renderChunk(ids, i, now)
		if err != nil {
			return nil, err
		}
		key := strings.TrimPrefix(ChunkPath(i), "/")
		if err := w.Put(ctx, key, body, xmlContentType); err != nil {
			return nil, fmt.Errorf("failed to publish sitemap chunk %d: %w", i, err)
		}
		result.Keys = append(result.Keys, key)
	}

	log.Info().
		Int("chunks", n).
		Strs("keys", result.Keys).
		Msg("Published sitemap")

	return result, nil
}
