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
	"strings"
	"time"

	"github.com/subosito/gotenv"
	"github.com/urfave/cli/v2"

	"github.com/samirsalman/notiziario"
	"github.com/samirsalman/notiziario/ai"
	"github.com/samirsalman/notiziario/core"
	"github.com/samirsalman/notiziario/query"
)

func main() {
	if err := gotenv.Load(); err != nil {
		slog.Debug("no .env file found, using OS environment")
	}

	commonFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to the local database directory",
			Value:   "./notiziario_db",
			EnvVars: []string{"NOTIZIARIO_DB"},
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
		&cli.DurationFlag{
			Name:    "since",
			Aliases: []string{"s"},
			Usage:   "Window of snapshots to report on, counted back from now",
			Value:   7 * 24 * time.Hour,
		},
	}

	app := &cli.App{
		Name:  "searcher",
		Usage: "Reporting and semantic search over ingested news",
		Commands: []*cli.Command{
			{
				Name:   "keywords",
				Usage:  "Report the top keywords in the window",
				Action: keywordsCommand,
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"k"},
						Usage:   "Number of keywords to report",
						Value:   10,
					},
				}, commonFlags...),
			},
			{
				Name:   "sentiment",
				Usage:  "Report the sentiment distribution in the window",
				Action: sentimentCommand,
				Flags:  commonFlags,
			},
			{
				Name:      "search",
				Usage:     "Semantic search over stored news",
				Action:    searchCommand,
				ArgsUsage: "QUERY",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "country",
						Aliases: []string{"c"},
						Usage:   "Restrict results to one country region code",
					},
					&cli.StringFlag{
						Name:  "keyword",
						Usage: "Restrict results to records carrying a keyword",
					},
					&cli.StringFlag{
						Name:  "sentiment",
						Usage: "Restrict results to one sentiment class",
					},
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
					&cli.StringFlag{
						Name:    "embedding-host",
						Usage:   "Embedding service host URL",
						Value:   "http://localhost:11434/v1",
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
				}, commonFlags...),
			},
			{
				Name:   "runs",
				Usage:  "List the pipeline runs in the window",
				Action: runsCommand,
				Flags:  commonFlags,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openEngine(c *cli.Context) (*query.Engine, func(), error) {
	options := []notiziario.Option{}
	if host := c.String("embedding-host"); host != "" {
		aiOpts := []ai.ConfigOption{ai.WithHost(host), ai.WithEmbeddingHost(host)}
		if model := c.String("embedding-model"); model != "" {
			aiOpts = append(aiOpts, ai.WithEmbeddingModel(model))
		}
		if token := c.String("token"); token != "" {
			aiOpts = append(aiOpts, ai.WithToken(token))
		}
		options = append(options, notiziario.WithAIConfig(ai.NewConfig(aiOpts...)))
	}
	if uri := c.String("mongo-uri"); uri != "" {
		options = append(options, notiziario.WithMongoStore(uri, c.String("mongo-db")))
	}

	n, err := notiziario.New(c.String("db"), options...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	engine, err := n.NewQueryEngine()
	if err != nil {
		n.Close()
		return nil, nil, err
	}
	return engine, func() { n.Close() }, nil
}

func window(c *cli.Context) (time.Time, time.Time) {
	end := time.Now().UTC()
	return end.Add(-c.Duration("since")), end
}

func keywordsCommand(c *cli.Context) error {
	engine, closer, err := openEngine(c)
	if err != nil {
		return err
	}
	defer closer()

	start, end := window(c)
	top, err := engine.TopKeywords(c.Context, start, end, c.Int("top"))
	if err != nil {
		return err
	}

	fmt.Printf("Top keywords since %s\n", start.Format(time.RFC3339))
	printCounts(top)
	return nil
}

func sentimentCommand(c *cli.Context) error {
	engine, closer, err := openEngine(c)
	if err != nil {
		return err
	}
	defer closer()

	start, end := window(c)
	top, err := engine.TopSentiments(c.Context, start, end, 0)
	if err != nil {
		return err
	}

	fmt.Printf("Sentiment since %s\n", start.Format(time.RFC3339))
	printCounts(top)
	return nil
}

// printCounts renders ranked labels with their share of the total.
func printCounts(counts []core.LabelCount) {
	if len(counts) == 0 {
		fmt.Println("  no data in window")
		return
	}

	total := 0
	for _, entry := range counts {
		total += entry.Count
	}
	for i, entry := range counts {
		share := 100 * float64(entry.Count) / float64(total)
		fmt.Printf("%3d. %-30s %5d  (%.1f%%)\n", i+1, entry.Label, entry.Count, share)
	}
}

func searchCommand(c *cli.Context) error {
	queryText := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if queryText == "" {
		return fmt.Errorf("search query is required")
	}

	engine, closer, err := openEngine(c)
	if err != nil {
		return err
	}
	defer closer()

	filter := core.Filter{
		Country:   c.String("country"),
		Keyword:   c.String("keyword"),
		Sentiment: core.Sentiment(c.String("sentiment")),
	}

	results, err := engine.Search(c.Context, queryText, filter, c.Int("limit"))
	if err != nil {
		return err
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		record := hit.Record
		fmt.Printf("%d: %s [%.3f]\n", i+1, record.Title, hit.Score)
		fmt.Printf("   %s | %s | %s\n",
			record.Metadata[core.MetaCountry], record.Sentiment, strings.Join(record.Keywords, ", "))
		fmt.Printf("   %s\n", record.Link)
	}
	return nil
}

func runsCommand(c *cli.Context) error {
	engine, closer, err := openEngine(c)
	if err != nil {
		return err
	}
	defer closer()

	start, end := window(c)
	runs, err := engine.Runs(c.Context, start, end)
	if err != nil {
		return err
	}

	fmt.Printf("Runs since %s\n", start.Format(time.RFC3339))
	for _, run := range runs {
		duration := run.EndTime.Sub(run.StartTime).Round(time.Second)
		fmt.Printf("  %s  %s  %-7s  %d items  %s\n",
			run.StartTime.Format(time.RFC3339), run.AgentID, run.Status,
			run.RetrievedDataSize, duration)
		if run.Message != "" {
			fmt.Printf("    %s\n", run.Message)
		}
	}
	return nil
}
