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


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/subosito/gotenv"
	"github.com/urfave/cli/v2"

	"github.com/samirsalman/notiziario"
	"github.com/samirsalman/notiziario/agent"
	"github.com/samirsalman/notiziario/ai"
	"github.com/samirsalman/notiziario/ai/openai"
	"github.com/samirsalman/notiziario/core"
	"github.com/samirsalman/notiziario/reembed"
	"github.com/samirsalman/notiziario/storage/badger"
)

func main() {
	if err := gotenv.Load(); err != nil {
		slog.Debug("no .env file found, using OS environment")
	}

	app := &cli.App{
		Name:   "notiziario",
		Usage:  "Periodic news ingestion and enrichment agent",
		Before: setupLogger,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"NOTIZIARIO_LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run the periodic ingestion agent",
				Action: runCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to the local database directory",
						Value:   "./notiziario_db",
						EnvVars: []string{"NOTIZIARIO_DB"},
					},
					&cli.StringFlag{
						Name:    "agent-id",
						Usage:   "Agent identifier recorded on every run",
						Value:   "notiziario",
						EnvVars: []string{"NOTIZIARIO_AGENT_ID"},
					},
					&cli.StringFlag{
						Name:    "completion-host",
						Usage:   "Chat completion service host URL",
						Value:   "http://localhost:11434/v1",
						EnvVars: []string{"NOTIZIARIO_COMPLETION_HOST"},
					},
					&cli.StringFlag{
						Name:    "completion-model",
						Usage:   "Chat completion model name",
						EnvVars: []string{"NOTIZIARIO_COMPLETION_MODEL"},
					},
					&cli.StringFlag{
						Name:    "embedding-host",
						Usage:   "Embedding service host URL (defaults to completion-host)",
						EnvVars: []string{"NOTIZIARIO_EMBEDDING_HOST"},
					},
					&cli.StringFlag{
						Name:    "embedding-model",
						Usage:   "Embedding model name",
						EnvVars: []string{"NOTIZIARIO_EMBEDDING_MODEL"},
					},
					&cli.StringFlag{
						Name:    "token",
						Usage:   "API token for the model services",
						EnvVars: []string{"NOTIZIARIO_TOKEN"},
					},
					&cli.StringSliceFlag{
						Name:    "country",
						Aliases: []string{"c"},
						Usage:   "Country region codes to ingest (repeatable; default: all)",
						EnvVars: []string{"NOTIZIARIO_COUNTRIES"},
					},
					&cli.IntFlag{
						Name:    "cap",
						Usage:   "Maximum new items accepted per country per iteration",
						Value:   10,
						EnvVars: []string{"NOTIZIARIO_CAP"},
					},
					&cli.DurationFlag{
						Name:    "period",
						Usage:   "Sleep between iterations",
						Value:   30 * time.Minute,
						EnvVars: []string{"NOTIZIARIO_PERIOD"},
					},
					&cli.BoolFlag{
						Name:  "once",
						Usage: "Run a single iteration and exit",
					},
					&cli.StringFlag{
						Name:    "mongo-uri",
						Usage:   "MongoDB connection URI for runs and aggregations (optional)",
						EnvVars: []string{"NOTIZIARIO_MONGO_URI"},
					},
					&cli.StringFlag{
						Name:    "mongo-db",
						Usage:   "MongoDB database name",
						Value:   "notiziario",
						EnvVars: []string{"NOTIZIARIO_MONGO_DB"},
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Reembed all stored news records with new embeddings",
				Action: reembedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to the local database directory",
						Required: true,
						EnvVars:  []string{"NOTIZIARIO_DB"},
					},
					&cli.StringFlag{
						Name:    "embedding-host",
						Usage:   "Embedding service host URL",
						Value:   "http://localhost:11434/v1",
						EnvVars: []string{"NOTIZIARIO_EMBEDDING_HOST"},
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
						EnvVars:  []string{"NOTIZIARIO_EMBEDDING_MODEL"},
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed embedding calls",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func reembedCommand(c *cli.Context) error {
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	news := badger.NewNewsRepository(backend)

	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid model configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	config := &reembed.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reembedder, err := reembed.NewReembedder(news, embedder, config, os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := reembedder.Run(ctx); err != nil {
		return fmt.Errorf("reembedding failed: %w", err)
	}
	return nil
}

func runCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	aiOpts := []ai.ConfigOption{
		ai.WithHost(c.String("completion-host")),
	}
	if host := c.String("embedding-host"); host != "" {
		aiOpts = append(aiOpts, ai.WithEmbeddingHost(host))
	}
	if model := c.String("completion-model"); model != "" {
		aiOpts = append(aiOpts, ai.WithCompletionModel(model))
	}
	if model := c.String("embedding-model"); model != "" {
		aiOpts = append(aiOpts, ai.WithEmbeddingModel(model))
	}
	if token := c.String("token"); token != "" {
		aiOpts = append(aiOpts, ai.WithToken(token))
	}

	aiConfig := ai.NewConfig(aiOpts...)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid model configuration: %w", err)
	}

	countries, err := resolveCountries(c.StringSlice("country"))
	if err != nil {
		return err
	}

	options := []notiziario.Option{notiziario.WithAIConfig(aiConfig)}
	if uri := c.String("mongo-uri"); uri != "" {
		options = append(options, notiziario.WithMongoStore(uri, c.String("mongo-db")))
	}

	n, err := notiziario.New(c.String("db"), options...)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer n.Close()

	a, err := n.NewAgent(c.String("agent-id"), nil,
		agent.WithCountries(countries),
		agent.WithCap(c.Int("cap")),
		agent.WithPeriod(c.Duration("period")),
	)
	if err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}

	if c.Bool("once") {
		run, err := a.RunOnce(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Run %s: %s, %d items\n", run.ID, run.Status, run.RetrievedDataSize)
		return nil
	}

	return a.Run(ctx)
}

func resolveCountries(regions []string) ([]core.Country, error) {
	if len(regions) == 0 {
		return core.Countries, nil
	}

	countries := make([]core.Country, 0, len(regions))
	for _, region := range regions {
		country, err := core.CountryFromRegion(region)
		if err != nil {
			return nil, err
		}
		countries = append(countries, country)
	}
	return countries, nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})
	slog.SetDefault(slog.New(handler))

	return nil
}
