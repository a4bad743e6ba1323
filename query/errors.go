package query

import "errors"

var (
	// ErrKnowledgeRequired is returned when a knowledge store is not provided.
	ErrKnowledgeRequired = errors.New("knowledge store required")

	// ErrAggregateRepositoryRequired is returned when an aggregate repository is not provided.
	ErrAggregateRepositoryRequired = errors.New("aggregate repository required")

	// ErrRunRepositoryRequired is returned when a run repository is not provided.
	ErrRunRepositoryRequired = errors.New("run repository required")
)
