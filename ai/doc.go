// Package ai provides abstractions for the AI services used by the news
// enrichment pipeline.
//
// The package defines interfaces for chat completions and text embeddings so
// that the enrichment chain and the knowledge store depend on abstractions
// rather than on concrete clients.
//
//   - Completer: runs one instruction-driven chat completion
//   - Embedder: generates vector embeddings from text
//   - Provider: aggregates the two for initialization and lifecycle
//
// Two implementation sub-packages exist:
//
//   - ai/openai: production implementation for OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external services
//
// Production constructors return interface types to keep callers decoupled
// from a specific backend. Mock constructors return concrete types so tests
// can script responses and assert on call counts.
package ai
