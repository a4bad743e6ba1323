package aggregate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirsalman/notiziario/core"
	"github.com/samirsalman/notiziario/storage"
	"github.com/samirsalman/notiziario/storage/badger"
)

func testRepos(t *testing.T) storage.AggregateRepository {
	t.Helper()
	_, _, aggs, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return aggs
}

func batch() []*core.EnrichedNews {
	a := core.FromNews(core.NewsItem{ID: "a", Title: "A"})
	a.Keywords = []string{"economy", "rates"}
	a.Sentiment = core.SentimentPositive

	b := core.FromNews(core.NewsItem{ID: "b", Title: "B"})
	b.Keywords = []string{"economy"}
	b.Sentiment = core.SentimentNegative

	return []*core.EnrichedNews{a, b}
}

func TestKeywordsAggregator(t *testing.T) {
	aggs := testRepos(t)
	ctx := context.Background()
	before := time.Now().UTC().Add(-time.Minute)

	agg := NewKeywordsAggregator(aggs)
	require.NoError(t, agg.Aggregate(ctx, batch(), map[string]string{core.MetaCountry: "IT"}))

	snapshots, err := aggs.KeywordsByDateRange(ctx, before, time.Now().UTC().Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, snapshots, 1)

	assert.Equal(t, 2, snapshots[0].Count("economy"))
	assert.Equal(t, 1, snapshots[0].Count("rates"))
	assert.Equal(t, "IT", snapshots[0].Metadata[core.MetaCountry])
}

func TestSentimentAggregator(t *testing.T) {
	aggs := testRepos(t)
	ctx := context.Background()
	before := time.Now().UTC().Add(-time.Minute)

	agg := NewSentimentAggregator(aggs)
	require.NoError(t, agg.Aggregate(ctx, batch(), nil))

	snapshots, err := aggs.SentimentByDateRange(ctx, before, time.Now().UTC().Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, snapshots, 1)

	assert.Equal(t, 1, snapshots[0].Count(core.SentimentPositive))
	assert.Equal(t, 1, snapshots[0].Count(core.SentimentNegative))
	assert.Equal(t, 0, snapshots[0].Count(core.SentimentNeutral))
}

func TestAggregator_EmptyBatchPersistsNothing(t *testing.T) {
	aggs := testRepos(t)
	ctx := context.Background()
	before := time.Now().UTC().Add(-time.Minute)

	require.NoError(t, NewKeywordsAggregator(aggs).Aggregate(ctx, nil, nil))
	require.NoError(t, NewSentimentAggregator(aggs).Aggregate(ctx, nil, nil))

	kw, err := aggs.KeywordsByDateRange(ctx, before, time.Now().UTC().Add(time.Minute))
	require.NoError(t, err)
	assert.Empty(t, kw)

	sn, err := aggs.SentimentByDateRange(ctx, before, time.Now().UTC().Add(time.Minute))
	require.NoError(t, err)
	assert.Empty(t, sn)
}

func TestSet_RunsEveryAggregator(t *testing.T) {
	aggs := testRepos(t)
	ctx := context.Background()
	before := time.Now().UTC().Add(-time.Minute)

	set, err := NewSet([]Aggregator{
		NewKeywordsAggregator(aggs),
		NewSentimentAggregator(aggs),
	}, WithPoolSize(2))
	require.NoError(t, err)
	defer set.Release()

	require.NoError(t, set.Run(ctx, batch(), map[string]string{core.MetaCountry: "US"}))

	kw, err := aggs.KeywordsByDateRange(ctx, before, time.Now().UTC().Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, kw, 1)
	assert.Equal(t, "US", kw[0].Metadata[core.MetaCountry])

	sn, err := aggs.SentimentByDateRange(ctx, before, time.Now().UTC().Add(time.Minute))
	require.NoError(t, err)
	assert.Len(t, sn, 1)
}

type failingAggregator struct{ err error }

func (f *failingAggregator) Name() string { return "failing" }
func (f *failingAggregator) Aggregate(context.Context, []*core.EnrichedNews, map[string]string) error {
	return f.err
}

func TestSet_ReportsFailuresWithoutStoppingOthers(t *testing.T) {
	aggs := testRepos(t)
	ctx := context.Background()
	before := time.Now().UTC().Add(-time.Minute)

	boom := errors.New("boom")
	set, err := NewSet([]Aggregator{
		&failingAggregator{err: boom},
		NewKeywordsAggregator(aggs),
	})
	require.NoError(t, err)
	defer set.Release()

	err = set.Run(ctx, batch(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	// the healthy aggregator still persisted its snapshot
	kw, err := aggs.KeywordsByDateRange(ctx, before, time.Now().UTC().Add(time.Minute))
	require.NoError(t, err)
	assert.Len(t, kw, 1)
}
