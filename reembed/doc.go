// Package reembed regenerates the vectors of stored news records, for use
// after switching to a different embedding model. Records are processed in
// batches with progress reporting and exponential-backoff retries around
// the embedding service.
package reembed
