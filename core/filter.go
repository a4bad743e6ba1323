package core

import "slices"

// Filter selects enriched news by exact-match equality, conjunctive across
// the set fields. The zero Filter matches everything.
//
// Recognized criteria:
//   - Country: matches the "country" metadata tag attached at store time
//   - ID: matches the stable item identifier
//   - Keyword: matches any element of the keywords set
//   - Sentiment: matches the sentiment class
type Filter struct {
	Country   string
	ID        string
	Keyword   string
	Sentiment Sentiment
}

// MetaCountry is the metadata key carrying the partition tag.
const MetaCountry = "country"

// IsZero reports whether the filter has no criteria.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Match reports whether the record satisfies every set criterion.
func (f Filter) Match(record *EnrichedNews) bool {
	if record == nil {
		return false
	}
	if f.Country != "" && record.Metadata[MetaCountry] != f.Country {
		return false
	}
	if f.ID != "" && record.ID != f.ID {
		return false
	}
	if f.Keyword != "" && !slices.Contains(record.Keywords, f.Keyword) {
		return false
	}
	if f.Sentiment != "" && record.Sentiment != f.Sentiment {
		return false
	}
	return true
}
