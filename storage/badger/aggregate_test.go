package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirsalman/notiziario/core"
	"github.com/samirsalman/notiziario/storage"
)

func keywordsSnapshot(at time.Time, counts map[string]int) *core.KeywordsAggregation {
	agg := core.NewKeywordsAggregation(nil)
	agg.DateTime = at
	agg.Keywords = counts
	return agg
}

func sentimentSnapshot(at time.Time, counts map[string]int) *core.SentimentAggregation {
	agg := core.NewSentimentAggregation(nil)
	agg.DateTime = at
	agg.Sentiment = counts
	return agg
}

func TestAggregateRepository_WindowIsHalfOpen(t *testing.T) {
	_, _, aggs, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	t0 := time.Date(2025, 8, 25, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)
	t2 := t0.Add(2 * time.Hour)

	require.NoError(t, aggs.AddKeywords(ctx, keywordsSnapshot(t0, map[string]int{"a": 1})))
	require.NoError(t, aggs.AddKeywords(ctx, keywordsSnapshot(t1, map[string]int{"b": 1})))
	require.NoError(t, aggs.AddKeywords(ctx, keywordsSnapshot(t2, map[string]int{"c": 1})))

	// snapshot exactly at start is included, exactly at end is excluded
	window, err := aggs.KeywordsByDateRange(ctx, t0, t2)
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.Equal(t, 1, window[0].Count("a"))
	assert.Equal(t, 1, window[1].Count("b"))

	tail, err := aggs.KeywordsByDateRange(ctx, t1, t2.Add(time.Second))
	require.NoError(t, err)
	require.Len(t, tail, 2)
	assert.Equal(t, 1, tail[0].Count("b"))
	assert.Equal(t, 1, tail[1].Count("c"))

	empty, err := aggs.KeywordsByDateRange(ctx, t2.Add(time.Second), t2.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAggregateRepository_SentimentRoundTrip(t *testing.T) {
	_, _, aggs, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	at := time.Date(2025, 8, 25, 10, 0, 0, 0, time.UTC)

	snapshot := sentimentSnapshot(at, map[string]int{"positive": 3, "negative": 1})
	snapshot.Metadata[core.MetaCountry] = "IT"
	require.NoError(t, aggs.AddSentiment(ctx, snapshot))

	loaded, err := aggs.SentimentByDateRange(ctx, at, at.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	assert.Equal(t, snapshot.ID, loaded[0].ID)
	assert.Equal(t, 3, loaded[0].Count(core.SentimentPositive))
	assert.Equal(t, 1, loaded[0].Count(core.SentimentNegative))
	assert.Equal(t, "IT", loaded[0].Metadata[core.MetaCountry])
}

func TestAggregateRepository_SnapshotsAreAppendOnly(t *testing.T) {
	_, _, aggs, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	at := time.Date(2025, 8, 25, 10, 0, 0, 0, time.UTC)

	// two batches in the same window stay separate snapshots
	require.NoError(t, aggs.AddKeywords(ctx, keywordsSnapshot(at, map[string]int{"a": 3, "b": 1})))
	require.NoError(t, aggs.AddKeywords(ctx, keywordsSnapshot(at.Add(time.Minute), map[string]int{"a": 2, "c": 4})))

	loaded, err := aggs.KeywordsByDateRange(ctx, at, at.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}

func TestRunRepository_AddAndGet(t *testing.T) {
	_, runs, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	run := core.NewRunDetail("news-agent")
	run.RetrievedDataSize = 7
	run.Finalize(nil)
	require.NoError(t, runs.AddRun(ctx, run))

	loaded, err := runs.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, loaded.ID)
	assert.Equal(t, core.RunStatusSuccess, loaded.Status)
	assert.Equal(t, 7, loaded.RetrievedDataSize)

	_, err = runs.GetRun(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRunRepository_RunsByDateRange(t *testing.T) {
	_, runs, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	base := time.Date(2025, 8, 25, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		run := core.NewRunDetail("news-agent")
		run.StartTime = base.Add(time.Duration(i) * time.Hour)
		run.Finalize(nil)
		require.NoError(t, runs.AddRun(ctx, run))
	}

	window, err := runs.RunsByDateRange(ctx, base, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.True(t, window[0].StartTime.Before(window[1].StartTime))
}
