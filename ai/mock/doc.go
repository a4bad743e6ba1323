// Package mock provides test doubles for the ai interfaces.
//
// MockCompleter serves scripted responses so tests can drive the enrichment
// chain through well-formed, malformed and failing model output without a
// live service. MockEmbedder produces deterministic vectors derived from the
// input text, so similarity-based assertions stay stable across runs.
package mock
