// Package feed abstracts where raw news items come from.
package feed

import (
	"context"

	"github.com/samirsalman/notiziario/core"
)

// Source provides the current top news for an ingestion partition.
// Implementations must be thread-safe for concurrent use.
type Source interface {
	// TopNews fetches the current top stories for the given country, in feed
	// order. Every returned item carries a stable ID.
	TopNews(ctx context.Context, country core.Country) ([]core.NewsItem, error)
}
