// Copyright 2025 Samir Salman
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package notiziario

import (
	"log/slog"

	"github.com/samirsalman/notiziario/agent"
	"github.com/samirsalman/notiziario/aggregate"
	"github.com/samirsalman/notiziario/ai"
	"github.com/samirsalman/notiziario/ai/openai"
	"github.com/samirsalman/notiziario/enrich"
	"github.com/samirsalman/notiziario/feed"
	"github.com/samirsalman/notiziario/feed/googlenews"
	"github.com/samirsalman/notiziario/knowledge"
	"github.com/samirsalman/notiziario/query"
	"github.com/samirsalman/notiziario/storage"
	"github.com/samirsalman/notiziario/storage/badger"
	"github.com/samirsalman/notiziario/storage/mongo"
)

// Notiziario wires the whole pipeline: local storage, the model provider,
// the knowledge store and the factories for the agent and the query engine.
type Notiziario struct {
	backend   *badger.Backend
	news      storage.NewsRepository
	runs      storage.RunRepository
	aggs      storage.AggregateRepository
	mongo     *mongo.Store
	provider  ai.Provider
	knowledge *knowledge.Knowledge
	sets      []*aggregate.Set
	logger    *slog.Logger
}

// Option configures a Notiziario instance.
type Option func(*options)

type options struct {
	aiConfig *ai.Config
	mongoURI string
	mongoDB  string
	inMemory bool
}

// WithAIConfig sets the model provider configuration.
// Default is ai.NewConfig().
func WithAIConfig(config *ai.Config) Option {
	return func(o *options) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithMongoStore keeps runs and aggregation snapshots in MongoDB instead of
// the local store, so reporting survives the local database and can be
// shared between instances.
func WithMongoStore(uri, dbName string) Option {
	return func(o *options) {
		o.mongoURI = uri
		o.mongoDB = dbName
	}
}

// WithInMemory opens the local store in memory. Nothing survives Close.
func WithInMemory() Option {
	return func(o *options) {
		o.inMemory = true
	}
}

// New opens a Notiziario instance storing local data at filePath.
func New(filePath string, opts ...Option) (*Notiziario, error) {
	cfg := &options{
		aiConfig: ai.NewConfig(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	backend, err := badger.OpenBackend(filePath, cfg.inMemory)
	if err != nil {
		return nil, err
	}

	n := &Notiziario{
		backend: backend,
		news:    badger.NewNewsRepository(backend),
		runs:    badger.NewRunRepository(backend),
		aggs:    badger.NewAggregateRepository(backend),
		logger:  slog.Default().With("component", "notiziario"),
	}

	if cfg.mongoURI != "" {
		store, err := mongo.NewStore(cfg.mongoURI, cfg.mongoDB)
		if err != nil {
			backend.Close()
			return nil, err
		}
		n.mongo = store
		n.runs = store
		n.aggs = store
	}

	provider, err := openai.NewProvider(cfg.aiConfig)
	if err != nil {
		n.closeStores()
		return nil, err
	}
	n.provider = provider
	n.knowledge = knowledge.New(n.news, provider.Embedder())

	return n, nil
}

// Close releases the provider, the stores and every aggregator set created
// through NewAgent. The instance must not be used afterwards.
func (n *Notiziario) Close() error {
	for _, set := range n.sets {
		set.Release()
	}
	n.sets = nil

	if n.provider != nil {
		if err := n.provider.Close(); err != nil {
			n.logger.Error("error closing model provider", "err", err)
		}
	}
	return n.closeStores()
}

func (n *Notiziario) closeStores() error {
	if n.mongo != nil {
		if err := n.mongo.Close(); err != nil {
			n.logger.Error("error closing mongo store", "err", err)
		}
	}
	if err := n.backend.Close(); err != nil {
		n.logger.Error("error closing local store", "err", err)
		return err
	}
	return nil
}

// Knowledge returns the vector-backed news store.
func (n *Notiziario) Knowledge() *knowledge.Knowledge {
	return n.knowledge
}

// NewsRepository returns the enriched news repository.
func (n *Notiziario) NewsRepository() storage.NewsRepository {
	return n.news
}

// RunRepository returns the run audit trail repository.
func (n *Notiziario) RunRepository() storage.RunRepository {
	return n.runs
}

// AggregateRepository returns the aggregation snapshot repository.
func (n *Notiziario) AggregateRepository() storage.AggregateRepository {
	return n.aggs
}

// NewAgent creates a periodic agent reading from the given feed source. A
// nil source defaults to Google News. The agent runs the standard
// enrichment chain and the keywords and sentiment aggregators.
func (n *Notiziario) NewAgent(agentID string, source feed.Source, opts ...agent.Option) (*agent.PeriodicAgent, error) {
	if source == nil {
		source = googlenews.NewClient()
	}

	set, err := aggregate.NewSet([]aggregate.Aggregator{
		aggregate.NewKeywordsAggregator(n.aggs),
		aggregate.NewSentimentAggregator(n.aggs),
	})
	if err != nil {
		return nil, err
	}

	chain := enrich.DefaultChain(n.provider.Completer())

	a, err := agent.NewPeriodicAgent(agentID, source, n.knowledge, chain, set, n.runs, opts...)
	if err != nil {
		set.Release()
		return nil, err
	}

	n.sets = append(n.sets, set)
	return a, nil
}

// NewQueryEngine creates a read-only query engine over the stores.
func (n *Notiziario) NewQueryEngine(opts ...query.Option) (*query.Engine, error) {
	return query.NewEngine(n.knowledge, n.aggs, n.runs, opts...)
}
