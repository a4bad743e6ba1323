package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/samirsalman/notiziario"
	"github.com/samirsalman/notiziario/ai"
	"github.com/samirsalman/notiziario/core"
)

// Seeds a database with a handful of pre-enriched articles so the searcher
// can be tried without running the agent or a completion model. Only the
// embedding service is needed.

type seedArticle struct {
	country   string
	title     string
	summary   string
	sentiment core.Sentiment
	keywords  []string
}

var articles = []seedArticle{
	{
		country:   "IT",
		title:     "Parliament approves the annual budget law",
		summary:   "The chamber passed the budget with a narrow majority after a night-long session.",
		sentiment: core.SentimentNeutral,
		keywords:  []string{"budget", "parliament"},
	},
	{
		country:   "IT",
		title:     "Storms flood towns across the northern regions",
		summary:   "Heavy rainfall flooded streets and forced evacuations in several northern towns.",
		sentiment: core.SentimentNegative,
		keywords:  []string{"floods", "weather"},
	},
	{
		country:   "US",
		title:     "Markets rally after the central bank cuts rates",
		summary:   "Stocks closed sharply higher after the central bank announced a quarter-point rate cut.",
		sentiment: core.SentimentPositive,
		keywords:  []string{"markets", "rates"},
	},
	{
		country:   "US",
		title:     "New vaccine shows strong results in late-stage trial",
		summary:   "Researchers reported strong efficacy results from the final trial phase of a new vaccine.",
		sentiment: core.SentimentPositive,
		keywords:  []string{"health", "vaccine"},
	},
	{
		country:   "GB",
		title:     "Rail strike halts services across the country",
		summary:   "A nationwide rail strike stopped most services as unions and operators failed to reach a deal.",
		sentiment: core.SentimentNegative,
		keywords:  []string{"strike", "transport"},
	},
}

func main() {
	dbPath := flag.String("db", "./notiziario_db", "path to the local database directory")
	host := flag.String("embedding-host", "http://localhost:11434/v1", "embedding service host URL")
	model := flag.String("embedding-model", "", "embedding model name")
	flag.Parse()

	aiOpts := []ai.ConfigOption{ai.WithHost(*host)}
	if *model != "" {
		aiOpts = append(aiOpts, ai.WithEmbeddingModel(*model))
	}

	n, err := notiziario.New(*dbPath, notiziario.WithAIConfig(ai.NewConfig(aiOpts...)))
	if err != nil {
		slog.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer n.Close()

	ctx := context.Background()
	byCountry := map[string][]*core.EnrichedNews{}
	for _, article := range articles {
		record := core.FromNews(core.NewsItem{
			ID:      core.ContentID(article.title),
			Title:   article.title,
			Summary: article.summary,
		})
		record.Sentiment = article.sentiment
		record.Keywords = article.keywords
		byCountry[article.country] = append(byCountry[article.country], record)
	}

	total := 0
	for country, records := range byCountry {
		metadata := map[string]string{core.MetaCountry: country}
		if err := n.Knowledge().Store(ctx, records, metadata); err != nil {
			slog.Error("failed to seed records", "country", country, "err", err)
			os.Exit(1)
		}
		total += len(records)
	}

	slog.Info("seeded records", "count", total)
}
