package core

import (
	"errors"
	"testing"
)

func TestKeywordsAggregation_Add(t *testing.T) {
	agg := NewKeywordsAggregation(nil)

	if got := agg.Add("economy"); got != 1 {
		t.Errorf("Add() = %d, want 1", got)
	}
	if got := agg.Add("economy"); got != 2 {
		t.Errorf("Add() = %d, want 2", got)
	}
	if got := agg.Count("missing"); got != 0 {
		t.Errorf("Count(missing) = %d, want 0", got)
	}
	if agg.ID == "" {
		t.Error("NewKeywordsAggregation() produced an empty ID")
	}
	if agg.DateTime.IsZero() {
		t.Error("NewKeywordsAggregation() produced a zero DateTime")
	}
}

func TestKeywordsAggregation_Merge(t *testing.T) {
	left := NewKeywordsAggregation(nil)
	left.Keywords = map[string]int{"a": 3, "b": 1}

	right := NewKeywordsAggregation(nil)
	right.Keywords = map[string]int{"a": 2, "c": 4}

	left.Merge(right)

	want := map[string]int{"a": 5, "b": 1, "c": 4}
	for label, count := range want {
		if left.Keywords[label] != count {
			t.Errorf("Merge() %s = %d, want %d", label, left.Keywords[label], count)
		}
	}
	if len(left.Keywords) != len(want) {
		t.Errorf("Merge() produced %d labels, want %d", len(left.Keywords), len(want))
	}
}

func TestKeywordsAggregation_Top(t *testing.T) {
	agg := NewKeywordsAggregation(nil)
	agg.Keywords = map[string]int{"zebra": 2, "apple": 2, "mango": 5, "kiwi": 1}

	tests := []struct {
		name string
		k    int
		want []LabelCount
	}{
		{
			name: "top two",
			k:    2,
			want: []LabelCount{{"mango", 5}, {"apple", 2}},
		},
		{
			name: "ties break lexicographically",
			k:    3,
			want: []LabelCount{{"mango", 5}, {"apple", 2}, {"zebra", 2}},
		},
		{
			name: "k beyond size returns all",
			k:    10,
			want: []LabelCount{{"mango", 5}, {"apple", 2}, {"zebra", 2}, {"kiwi", 1}},
		},
		{
			name: "k zero returns all",
			k:    0,
			want: []LabelCount{{"mango", 5}, {"apple", 2}, {"zebra", 2}, {"kiwi", 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := agg.Top(tt.k)
			if len(got) != len(tt.want) {
				t.Fatalf("Top(%d) returned %d entries, want %d", tt.k, len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Top(%d)[%d] = %v, want %v", tt.k, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSentimentAggregation(t *testing.T) {
	agg := NewSentimentAggregation(map[string]string{MetaCountry: "IT"})
	agg.Add(SentimentPositive)
	agg.Add(SentimentPositive)
	agg.Add(SentimentNegative)

	if got := agg.Count(SentimentPositive); got != 2 {
		t.Errorf("Count(positive) = %d, want 2", got)
	}
	if got := agg.Count(SentimentNeutral); got != 0 {
		t.Errorf("Count(neutral) = %d, want 0", got)
	}
	if agg.Metadata[MetaCountry] != "IT" {
		t.Errorf("Metadata[country] = %q, want IT", agg.Metadata[MetaCountry])
	}

	other := NewSentimentAggregation(nil)
	other.Add(SentimentNegative)
	agg.Merge(other)

	top := agg.Top(1)
	if len(top) != 1 {
		t.Fatalf("Top(1) returned %d entries", len(top))
	}
	// positive and negative tie at 2, lexicographic order puts negative first
	if top[0].Label != string(SentimentNegative) || top[0].Count != 2 {
		t.Errorf("Top(1)[0] = %v, want {negative 2}", top[0])
	}
}

func TestRunDetail_Finalize(t *testing.T) {
	run := NewRunDetail("agent-1")

	if run.Status != RunStatusRunning {
		t.Errorf("NewRunDetail() status = %s, want RUNNING", run.Status)
	}
	if run.Finalized() {
		t.Error("NewRunDetail() already finalized")
	}

	run.Finalize(nil)

	if run.Status != RunStatusSuccess {
		t.Errorf("Finalize(nil) status = %s, want SUCCESS", run.Status)
	}
	if !run.Finalized() {
		t.Error("Finalize(nil) did not close the run")
	}

	// second finalize must not flip the outcome
	run.Finalize(errors.New("late failure"))
	if run.Status != RunStatusSuccess {
		t.Errorf("second Finalize changed status to %s", run.Status)
	}
	if run.Message != "" {
		t.Errorf("second Finalize set message %q", run.Message)
	}
}

func TestRunDetail_FinalizeFailure(t *testing.T) {
	run := NewRunDetail("agent-1")
	run.Finalize(errors.New("feed unreachable"))

	if run.Status != RunStatusFailure {
		t.Errorf("Finalize(err) status = %s, want FAILURE", run.Status)
	}
	if run.Message != "feed unreachable" {
		t.Errorf("Finalize(err) message = %q", run.Message)
	}
}

func TestFilter_Match(t *testing.T) {
	record := &EnrichedNews{
		NewsItem:  NewsItem{ID: "abc", Title: "Some headline"},
		Sentiment: SentimentPositive,
		Keywords:  []string{"economy", "inflation"},
		Metadata:  map[string]string{MetaCountry: "IT"},
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{name: "zero filter matches", filter: Filter{}, want: true},
		{name: "country match", filter: Filter{Country: "IT"}, want: true},
		{name: "country mismatch", filter: Filter{Country: "US"}, want: false},
		{name: "id match", filter: Filter{ID: "abc"}, want: true},
		{name: "keyword match", filter: Filter{Keyword: "inflation"}, want: true},
		{name: "keyword mismatch", filter: Filter{Keyword: "sports"}, want: false},
		{name: "sentiment match", filter: Filter{Sentiment: SentimentPositive}, want: true},
		{name: "conjunction", filter: Filter{Country: "IT", Sentiment: SentimentNegative}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Match(record); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}

	if (Filter{}).Match(nil) {
		t.Error("Match(nil) = true, want false")
	}
}
