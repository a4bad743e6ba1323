// Package enrich turns raw news items into enriched records by running a
// chain of model-backed stages.
//
// Each stage owns one field group: cleaned summary, entities, sentiment with
// score, categories and keywords. A stage asks the model for a JSON response
// and retries a bounded number of times when the response cannot be parsed;
// transport and model errors are never retried. The chain is fail fast: when
// any stage exhausts its budget the whole item is dropped, so a record either
// carries every enrichment or none.
package enrich
