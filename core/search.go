package core

// SearchResult pairs an enriched record with its similarity score for
// semantic retrieval. Scores are cosine similarities over normalized
// embedding vectors; higher is closer.
type SearchResult struct {
	Record *EnrichedNews `json:"record"`
	Score  float32       `json:"score"`
}
