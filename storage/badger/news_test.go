package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirsalman/notiziario/core"
)

func newsRecord(id, country string, vector []float32) *core.EnrichedNews {
	record := core.FromNews(core.NewsItem{
		ID:      id,
		Title:   "Title " + id,
		Summary: "Summary " + id,
	})
	record.Keywords = []string{"economy"}
	record.Sentiment = core.SentimentNeutral
	record.Vector = vector
	record.Metadata[core.MetaCountry] = country
	return record
}

func TestNewsRepository_UpsertAndExists(t *testing.T) {
	news, _, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	exists, err := news.Exists(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, exists)

	stored, err := news.Upsert(ctx, newsRecord("a1", "US", nil))
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.False(t, stored[0].InsertedAt.IsZero())
	assert.False(t, stored[0].UpdatedAt.IsZero())

	exists, err = news.Exists(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestNewsRepository_UpsertPreservesInsertedAt(t *testing.T) {
	news, _, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	first, err := news.Upsert(ctx, newsRecord("a1", "US", nil))
	require.NoError(t, err)
	insertedAt := first[0].InsertedAt

	replacement := newsRecord("a1", "US", nil)
	replacement.Summary = "rewritten"
	second, err := news.Upsert(ctx, replacement)
	require.NoError(t, err)

	assert.True(t, insertedAt.Equal(second[0].InsertedAt))

	listed, err := news.List(ctx, core.Filter{ID: "a1"}, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "rewritten", listed[0].Summary)
	assert.True(t, insertedAt.Equal(listed[0].InsertedAt))
}

func TestNewsRepository_ListAndCount(t *testing.T) {
	news, _, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	_, err = news.Upsert(ctx,
		newsRecord("a1", "US", nil),
		newsRecord("a2", "US", nil),
		newsRecord("a3", "IT", nil),
	)
	require.NoError(t, err)

	count, err := news.Count(ctx, core.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	usCount, err := news.Count(ctx, core.Filter{Country: "US"})
	require.NoError(t, err)
	assert.Equal(t, 2, usCount)

	frCount, err := news.Count(ctx, core.Filter{Country: "FR"})
	require.NoError(t, err)
	assert.Zero(t, frCount)

	all, err := news.List(ctx, core.Filter{}, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	us, err := news.List(ctx, core.Filter{Country: "US"}, 0)
	require.NoError(t, err)
	assert.Len(t, us, 2)

	limited, err := news.List(ctx, core.Filter{}, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	none, err := news.List(ctx, core.Filter{Country: "FR"}, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNewsRepository_FindSimilar(t *testing.T) {
	news, _, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	_, err = news.Upsert(ctx,
		newsRecord("close", "US", []float32{1, 0, 0}),
		newsRecord("mid", "US", []float32{0.5, 0.5, 0}),
		newsRecord("far", "US", []float32{0, 0, 1}),
		newsRecord("novector", "US", nil),
		newsRecord("other", "IT", []float32{1, 0, 0}),
	)
	require.NoError(t, err)

	results, err := news.FindSimilar(ctx, []float32{1, 0, 0}, core.Filter{Country: "US"}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "close", results[0].Record.ID)
	assert.Equal(t, "mid", results[1].Record.ID)
	assert.Greater(t, results[0].Score, results[1].Score)
}
