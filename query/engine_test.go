package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirsalman/notiziario/ai/mock"
	"github.com/samirsalman/notiziario/core"
	"github.com/samirsalman/notiziario/knowledge"
	"github.com/samirsalman/notiziario/storage"
	"github.com/samirsalman/notiziario/storage/badger"
)

func newTestEngine(t *testing.T) (*Engine, *knowledge.Knowledge, storage.AggregateRepository) {
	t.Helper()

	news, runs, aggs, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	know := knowledge.New(news, mock.NewMockEmbedder())
	engine, err := NewEngine(know, aggs, runs)
	require.NoError(t, err)

	return engine, know, aggs
}

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

func TestNewEngine_RequiresStores(t *testing.T) {
	_, err := NewEngine(nil, nil, nil)
	assert.ErrorIs(t, err, ErrKnowledgeRequired)
}

func TestTopKeywords_MergesWindow(t *testing.T) {
	engine, _, aggs := newTestEngine(t)
	ctx := context.Background()

	t0 := time.Date(2025, 8, 25, 10, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)
	t2 := t0.Add(2 * time.Hour)

	require.NoError(t, aggs.AddKeywords(ctx, keywordsSnapshot(t0, map[string]int{"rates": 3, "budget": 1})))
	require.NoError(t, aggs.AddKeywords(ctx, keywordsSnapshot(t1, map[string]int{"rates": 2, "energy": 4})))
	// outside the window: snapshot at the end bound is excluded
	require.NoError(t, aggs.AddKeywords(ctx, keywordsSnapshot(t2, map[string]int{"rates": 100})))

	top, err := engine.TopKeywords(ctx, t0, t2, 2)
	require.NoError(t, err)

	require.Len(t, top, 2)
	assert.Equal(t, core.LabelCount{Label: "rates", Count: 5}, top[0])
	assert.Equal(t, core.LabelCount{Label: "energy", Count: 4}, top[1])
}

func TestTopKeywords_TiesBreakLexicographically(t *testing.T) {
	engine, _, aggs := newTestEngine(t)
	ctx := context.Background()

	t0 := time.Date(2025, 8, 25, 10, 0, 0, 0, time.UTC)
	require.NoError(t, aggs.AddKeywords(ctx, keywordsSnapshot(t0, map[string]int{"zebra": 2, "apple": 2, "mango": 2})))

	top, err := engine.TopKeywords(ctx, t0, t0.Add(time.Hour), 0)
	require.NoError(t, err)

	require.Len(t, top, 3)
	assert.Equal(t, "apple", top[0].Label)
	assert.Equal(t, "mango", top[1].Label)
	assert.Equal(t, "zebra", top[2].Label)
}

func TestTopKeywords_EmptyWindow(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	t0 := time.Date(2025, 8, 25, 10, 0, 0, 0, time.UTC)
	top, err := engine.TopKeywords(context.Background(), t0, t0.Add(time.Hour), 5)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestTopSentiments_MergesWindow(t *testing.T) {
	engine, _, aggs := newTestEngine(t)
	ctx := context.Background()

	t0 := time.Date(2025, 8, 25, 10, 0, 0, 0, time.UTC)
	require.NoError(t, aggs.AddSentiment(ctx, sentimentSnapshot(t0, map[string]int{"positive": 2, "negative": 1})))
	require.NoError(t, aggs.AddSentiment(ctx, sentimentSnapshot(t0.Add(time.Minute), map[string]int{"positive": 1, "neutral": 3})))

	top, err := engine.TopSentiments(ctx, t0, t0.Add(time.Hour), 0)
	require.NoError(t, err)

	require.Len(t, top, 3)
	assert.Equal(t, core.LabelCount{Label: "neutral", Count: 3}, top[0])
	assert.Equal(t, core.LabelCount{Label: "positive", Count: 3}, top[1])
	assert.Equal(t, core.LabelCount{Label: "negative", Count: 1}, top[2])
}

func TestSearch_FiltersByCountry(t *testing.T) {
	engine, know, _ := newTestEngine(t)
	ctx := context.Background()

	italian := &core.EnrichedNews{
		NewsItem: core.NewsItem{
			ID:      "it-1",
			Title:   "Parliament passes budget",
			Summary: "The chamber approved the annual budget law.",
		},
		Sentiment: core.SentimentNeutral,
		Keywords:  []string{"budget"},
	}
	american := &core.EnrichedNews{
		NewsItem: core.NewsItem{
			ID:      "us-1",
			Title:   "Congress passes budget",
			Summary: "The house approved the annual budget bill.",
		},
		Sentiment: core.SentimentNeutral,
		Keywords:  []string{"budget"},
	}

	require.NoError(t, know.Store(ctx, []*core.EnrichedNews{italian}, map[string]string{core.MetaCountry: "IT"}))
	require.NoError(t, know.Store(ctx, []*core.EnrichedNews{american}, map[string]string{core.MetaCountry: "US"}))

	results, err := engine.Search(ctx, "budget approval", core.Filter{Country: "IT"}, 10)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "it-1", results[0].Record.ID)

	// the same query against the identical stored text scores highest
	results, err = engine.Search(ctx, american.Summary, core.Filter{}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "us-1", results[0].Record.ID)
}

func TestRuns_ReturnsWindow(t *testing.T) {
	news, runs, aggs, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	engine, err := NewEngine(knowledge.New(news, mock.NewMockEmbedder()), aggs, runs)
	require.NoError(t, err)

	run := core.NewRunDetail("agent-1")
	run.Finalize(nil)
	require.NoError(t, runs.AddRun(context.Background(), run))

	listed, err := engine.Runs(context.Background(),
		run.StartTime.Add(-time.Minute), run.StartTime.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, run.ID, listed[0].ID)
}
