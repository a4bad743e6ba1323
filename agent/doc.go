// Package agent runs the periodic ingestion loop. Each iteration fetches
// top stories per country, deduplicates against the knowledge store by
// stable id, enriches up to a per-country cap, stores and aggregates the
// accepted batch, and records the outcome as an append-only run detail.
package agent
