package agent

import "errors"

var (
	// ErrSourceRequired is returned when a feed source is not provided.
	ErrSourceRequired = errors.New("feed source required")

	// ErrKnowledgeRequired is returned when a knowledge store is not provided.
	ErrKnowledgeRequired = errors.New("knowledge store required")

	// ErrChainRequired is returned when an enrichment chain is not provided.
	ErrChainRequired = errors.New("enrichment chain required")

	// ErrAggregatorsRequired is returned when an aggregator set is not provided.
	ErrAggregatorsRequired = errors.New("aggregator set required")

	// ErrRunRepositoryRequired is returned when a run repository is not provided.
	ErrRunRepositoryRequired = errors.New("run repository required")
)
