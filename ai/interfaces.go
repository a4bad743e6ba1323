package ai

import "context"

// Completer runs a single instruction-driven chat completion.
// Implementations must be thread-safe for concurrent use.
type Completer interface {
	// Complete sends the instruction as the system message and the input as
	// the user message, and returns the raw model response text. The caller
	// owns parsing and validation of the response; Complete reports an error
	// only when the request itself fails (transport, host, model errors).
	Complete(ctx context.Context, instruction, input string) (string, error)
}

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in the same order as the
	// input texts.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Completer and Embedder instances,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Completer returns the chat completion service.
	Completer() Completer

	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Close releases resources held by the provider and its services.
	Close() error
}
