// Package openai implements the ai interfaces against OpenAI-compatible
// APIs (OpenAI, Ollama, LocalAI, vLLM).
//
// Completions always run in JSON mode at temperature zero. The completer
// cleans the response text (code fences, missing key quotes) but leaves
// parsing to the caller, so that the enrichment chain decides what counts
// as a malformed response.
package openai
