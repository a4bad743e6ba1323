package core

import (
	"sort"
	"time"
)

// LabelCount pairs a label with its merged count for ranked reporting.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// topCounts sorts a label→count mapping by count descending, breaking ties
// lexicographically on the label, and truncates to the first k entries.
// k <= 0 returns all entries.
func topCounts(counts map[string]int, k int) []LabelCount {
	ranked := make([]LabelCount, 0, len(counts))
	for label, count := range counts {
		ranked = append(ranked, LabelCount{Label: label, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Label < ranked[j].Label
	})
	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// KeywordsAggregation is an immutable snapshot counting keyword occurrences
// across one batch of enriched news. Snapshots are persisted once and merged
// at query time; a keyword absent from the mapping counts as zero.
type KeywordsAggregation struct {
	ID       string            `json:"id" bson:"_id"`
	DateTime time.Time         `json:"date_time" bson:"date_time"`
	Keywords map[string]int    `json:"keywords" bson:"keywords"`
	Metadata map[string]string `json:"metadata" bson:"metadata"`
}

// NewKeywordsAggregation creates an empty snapshot tagged with the given
// metadata and the current time.
func NewKeywordsAggregation(metadata map[string]string) *KeywordsAggregation {
	if metadata == nil {
		metadata = map[string]string{}
	}
	return &KeywordsAggregation{
		ID:       NewID(),
		DateTime: nowUTC(),
		Keywords: map[string]int{},
		Metadata: metadata,
	}
}

// Add increments the count for a keyword and returns the new count.
func (a *KeywordsAggregation) Add(keyword string) int {
	a.Keywords[keyword]++
	return a.Keywords[keyword]
}

// Count returns the count for a keyword, zero if absent.
func (a *KeywordsAggregation) Count(keyword string) int {
	return a.Keywords[keyword]
}

// Merge folds another snapshot into this one by summing counts per keyword.
func (a *KeywordsAggregation) Merge(other *KeywordsAggregation) {
	for keyword, count := range other.Keywords {
		a.Keywords[keyword] += count
	}
}

// Top returns the k highest-counted keywords in descending order.
// Equal counts are ordered lexicographically.
func (a *KeywordsAggregation) Top(k int) []LabelCount {
	return topCounts(a.Keywords, k)
}

// SentimentAggregation is an immutable snapshot counting records per
// sentiment class across one batch of enriched news.
type SentimentAggregation struct {
	ID        string            `json:"id" bson:"_id"`
	DateTime  time.Time         `json:"date_time" bson:"date_time"`
	Sentiment map[string]int    `json:"sentiment" bson:"sentiment"`
	Metadata  map[string]string `json:"metadata" bson:"metadata"`
}

// NewSentimentAggregation creates an empty snapshot tagged with the given
// metadata and the current time.
func NewSentimentAggregation(metadata map[string]string) *SentimentAggregation {
	if metadata == nil {
		metadata = map[string]string{}
	}
	return &SentimentAggregation{
		ID:        NewID(),
		DateTime:  nowUTC(),
		Sentiment: map[string]int{},
		Metadata:  metadata,
	}
}

// Add increments the count for a sentiment class and returns the new count.
func (a *SentimentAggregation) Add(sentiment Sentiment) int {
	a.Sentiment[string(sentiment)]++
	return a.Sentiment[string(sentiment)]
}

// Count returns the count for a sentiment class, zero if absent.
func (a *SentimentAggregation) Count(sentiment Sentiment) int {
	return a.Sentiment[string(sentiment)]
}

// Merge folds another snapshot into this one by summing counts per class.
func (a *SentimentAggregation) Merge(other *SentimentAggregation) {
	for sentiment, count := range other.Sentiment {
		a.Sentiment[sentiment] += count
	}
}

// Top returns the k highest-counted sentiment classes in descending order.
// Equal counts are ordered lexicographically.
func (a *SentimentAggregation) Top(k int) []LabelCount {
	return topCounts(a.Sentiment, k)
}
