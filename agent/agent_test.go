package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirsalman/notiziario/aggregate"
	"github.com/samirsalman/notiziario/ai/mock"
	"github.com/samirsalman/notiziario/core"
	"github.com/samirsalman/notiziario/enrich"
	"github.com/samirsalman/notiziario/knowledge"
	"github.com/samirsalman/notiziario/storage"
	"github.com/samirsalman/notiziario/storage/badger"
)

// stubSource serves a fixed batch per region.
type stubSource struct {
	items map[string][]core.NewsItem
	err   error
}

func (s *stubSource) TopNews(ctx context.Context, country core.Country) ([]core.NewsItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.items[country.Region], nil
}

func testNewsItem(id int) core.NewsItem {
	return core.NewsItem{
		ID:      fmt.Sprintf("item-%d", id),
		Title:   fmt.Sprintf("Headline %d", id),
		Link:    fmt.Sprintf("https://example.com/%d", id),
		Summary: fmt.Sprintf("Summary %d", id),
	}
}

// scriptCompleter answers every stage with valid output, so whole items
// enrich end to end. Five calls per item.
func scriptCompleter(completer *mock.MockCompleter) {
	completer.CompleteFunc = func(ctx context.Context, instruction, input string) (string, error) {
		switch {
		case strings.Contains(instruction, "Clean the summary"):
			return `{"summary": "clean summary"}`, nil
		case strings.Contains(instruction, "Extract the entities"):
			return `{"entities": ["ECB"]}`, nil
		case strings.Contains(instruction, "Extract the sentiment"):
			return `{"sentiment": "positive", "sentiment_score": 4.0}`, nil
		case strings.Contains(instruction, "Extract the categories"):
			return `{"categories": ["economy"]}`, nil
		case strings.Contains(instruction, "Extract the keywords"):
			return `{"keywords": ["rates", "markets"]}`, nil
		}
		return "", fmt.Errorf("unexpected instruction: %s", instruction)
	}
}

type testHarness struct {
	agent     *PeriodicAgent
	source    *stubSource
	completer *mock.MockCompleter
	know      *knowledge.Knowledge
	runs      storage.RunRepository
	aggs      storage.AggregateRepository
}

func newTestHarness(t *testing.T, source *stubSource, countries []core.Country, cap int) *testHarness {
	t.Helper()

	news, runs, aggs, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	completer := mock.NewMockCompleter()
	scriptCompleter(completer)

	know := knowledge.New(news, mock.NewMockEmbedder())
	chain := enrich.DefaultChain(completer)

	set, err := aggregate.NewSet([]aggregate.Aggregator{
		aggregate.NewKeywordsAggregator(aggs),
		aggregate.NewSentimentAggregator(aggs),
	})
	require.NoError(t, err)
	t.Cleanup(set.Release)

	a, err := NewPeriodicAgent("test-agent", source, know, chain, set, runs,
		WithCountries(countries), WithCap(cap))
	require.NoError(t, err)

	return &testHarness{
		agent:     a,
		source:    source,
		completer: completer,
		know:      know,
		runs:      runs,
		aggs:      aggs,
	}
}

func TestNewPeriodicAgent_RequiresCollaborators(t *testing.T) {
	_, err := NewPeriodicAgent("a", nil, nil, nil, nil, nil)
	assert.ErrorIs(t, err, ErrSourceRequired)
}

func TestRunOnce_ItalyCapTwo(t *testing.T) {
	source := &stubSource{items: map[string][]core.NewsItem{
		"IT": {testNewsItem(1), testNewsItem(2), testNewsItem(3)},
	}}
	h := newTestHarness(t, source, []core.Country{core.Italy}, 2)
	ctx := context.Background()

	run, err := h.agent.RunOnce(ctx)
	require.NoError(t, err)

	assert.Equal(t, core.RunStatusSuccess, run.Status)
	assert.Equal(t, 2, run.RetrievedDataSize)
	assert.True(t, run.Finalized())

	// the first two items in fetch order are stored, the third is discarded
	count, err := h.know.Count(ctx, core.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	exists, err := h.know.Exists(ctx, "item-1")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = h.know.Exists(ctx, "item-3")
	require.NoError(t, err)
	assert.False(t, exists)

	// stored records carry the partition tag
	records, err := h.know.List(ctx, core.Filter{Country: "IT"}, 0)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	// one snapshot per aggregator, tagged with the country
	start := run.StartTime.Add(-time.Minute)
	end := run.EndTime.Add(time.Minute)

	keywords, err := h.aggs.KeywordsByDateRange(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, keywords, 1)
	assert.Equal(t, "IT", keywords[0].Metadata[core.MetaCountry])
	assert.Equal(t, 2, keywords[0].Count("rates"))

	sentiments, err := h.aggs.SentimentByDateRange(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, sentiments, 1)
	assert.Equal(t, "IT", sentiments[0].Metadata[core.MetaCountry])
	assert.Equal(t, 2, sentiments[0].Count(core.SentimentPositive))

	// run record persisted exactly once
	stored, err := h.runs.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.RetrievedDataSize, stored.RetrievedDataSize)
}

func TestRunOnce_KnownItemsSpendNoModelCalls(t *testing.T) {
	source := &stubSource{items: map[string][]core.NewsItem{
		"IT": {testNewsItem(1), testNewsItem(2)},
	}}
	h := newTestHarness(t, source, []core.Country{core.Italy}, 10)
	ctx := context.Background()

	_, err := h.agent.RunOnce(ctx)
	require.NoError(t, err)
	firstCalls := h.completer.CallCount()
	assert.Equal(t, 10, firstCalls) // five stages per new item

	afterFirst := time.Now().UTC()

	// the feed resurfaces the same items: everything deduplicates
	run, err := h.agent.RunOnce(ctx)
	require.NoError(t, err)

	assert.Equal(t, core.RunStatusSuccess, run.Status)
	assert.Equal(t, 0, run.RetrievedDataSize)
	assert.Equal(t, firstCalls, h.completer.CallCount())

	count, err := h.know.Count(ctx, core.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// a dedup-only iteration persists no new snapshot
	keywords, err := h.aggs.KeywordsByDateRange(ctx,
		afterFirst, run.EndTime.Add(time.Second))
	require.NoError(t, err)
	assert.Empty(t, keywords)
}

func TestRunOnce_MultiplePartitions(t *testing.T) {
	source := &stubSource{items: map[string][]core.NewsItem{
		"IT": {testNewsItem(1), testNewsItem(2), testNewsItem(3), testNewsItem(4)},
		"US": {testNewsItem(5), testNewsItem(6), testNewsItem(7)},
	}}
	h := newTestHarness(t, source, []core.Country{core.Italy, core.USA}, 10)

	run, err := h.agent.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, core.RunStatusSuccess, run.Status)
	assert.Equal(t, 7, run.RetrievedDataSize)

	records, err := h.know.List(context.Background(), core.Filter{Country: "US"}, 0)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestRunOnce_UnenrichableItemIsDropped(t *testing.T) {
	source := &stubSource{items: map[string][]core.NewsItem{
		"IT": {testNewsItem(1), testNewsItem(2)},
	}}
	h := newTestHarness(t, source, []core.Country{core.Italy}, 10)

	// item-1 never produces parsable entities; item-2 enriches normally
	base := h.completer.CompleteFunc
	h.completer.CompleteFunc = func(ctx context.Context, instruction, input string) (string, error) {
		if input == "clean summary" && strings.Contains(instruction, "Headline 1") &&
			strings.Contains(instruction, "Extract the entities") {
			return "not json", nil
		}
		return base(ctx, instruction, input)
	}

	run, err := h.agent.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, core.RunStatusSuccess, run.Status)
	assert.Equal(t, 1, run.RetrievedDataSize)

	exists, err := h.know.Exists(context.Background(), "item-1")
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = h.know.Exists(context.Background(), "item-2")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRunOnce_FeedFailureFinalizesFailure(t *testing.T) {
	feedErr := errors.New("feed unreachable")
	source := &stubSource{err: feedErr}
	h := newTestHarness(t, source, []core.Country{core.Italy}, 10)

	run, err := h.agent.RunOnce(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, feedErr)

	assert.Equal(t, core.RunStatusFailure, run.Status)
	assert.Contains(t, run.Message, "feed unreachable")
	assert.True(t, run.Finalized())

	// the failed run is still recorded
	stored, err := h.runs.GetRun(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, core.RunStatusFailure, stored.Status)
}

func TestRunOnce_ModelTransportErrorDropsRecordOnly(t *testing.T) {
	source := &stubSource{items: map[string][]core.NewsItem{
		"IT": {testNewsItem(1), testNewsItem(2)},
	}}
	h := newTestHarness(t, source, []core.Country{core.Italy}, 10)

	// every model call for item-1 fails at the transport level; item-2
	// enriches normally
	transportErr := errors.New("connection refused")
	base := h.completer.CompleteFunc
	h.completer.CompleteFunc = func(ctx context.Context, instruction, input string) (string, error) {
		if strings.Contains(instruction, "Headline 1") {
			return "", transportErr
		}
		return base(ctx, instruction, input)
	}

	run, err := h.agent.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, core.RunStatusSuccess, run.Status)
	assert.Equal(t, 1, run.RetrievedDataSize)

	exists, err := h.know.Exists(context.Background(), "item-1")
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = h.know.Exists(context.Background(), "item-2")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	source := &stubSource{items: map[string][]core.NewsItem{}}
	h := newTestHarness(t, source, []core.Country{core.Italy}, 10)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- h.agent.Run(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}
