// Package query exposes the read side of the pipeline: ranked keyword and
// sentiment reports merged from time-windowed snapshots, semantic search
// over the knowledge store, and the run audit trail.
package query
