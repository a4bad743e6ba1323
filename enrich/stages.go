package enrich

import (
	"encoding/json"
	"fmt"

	"github.com/samirsalman/notiziario/ai"
	"github.com/samirsalman/notiziario/core"
)

const (
	summaryPrompt = `The following is a news article about %s.

Clean the summary of the article from HTML tags, special characters, and other noise.
Return the cleaned summary using the following JSON format:
{
    "summary": "cleaned summary"
}
No other comments or introduction are needed. Answer with the JSON only.`

	entitiesPrompt = `The following is a news article about %s.

Extract the entities like people, organizations, locations, etc.
Return the entities using the following JSON format:
{
    "entities": [
        "entity1",
        "entity2",
        "entity3"
    ]
}
No other comments or introduction are needed. Answer with the JSON only.`

	sentimentPrompt = `The following is a news article about %s.

Extract the sentiment of the article using a scale from 0 to 5.
Return the sentiment using the following JSON format:
{
    "sentiment": "positive" | "neutral" | "negative",
    "sentiment_score": 2.5 (float)
}
No other comments or introduction are needed. Answer with the JSON only.`

	categoriesPrompt = `The following is a news article about %s.

Extract the categories of the article.
Return the categories using the following JSON format:
{
    "categories": [
        "category1",
        "category2",
        "category3"
    ]
}
No other comments or introduction are needed. Answer with the JSON only.`

	keywordsPrompt = `The following is a news article about %s.

Extract the keywords of the article.
Return the keywords using the following JSON format:
{
    "keywords": [
        "keyword1",
        "keyword2",
        "keyword3"
    ]
}
No other comments or introduction are needed. Answer with the JSON only.`
)

// NewSummaryCleaner returns the stage that strips HTML tags and noise from
// the raw feed summary. It runs first so later stages see clean text.
func NewSummaryCleaner(completer ai.Completer) Stage {
	return newCompletionStage("summary-cleaner", completer,
		func(record *core.EnrichedNews) string {
			return fmt.Sprintf(summaryPrompt, record.Title)
		},
		func(record *core.EnrichedNews, response string) error {
			var parsed struct {
				Summary string `json:"summary"`
			}
			if err := json.Unmarshal([]byte(response), &parsed); err != nil {
				return err
			}
			record.Summary = parsed.Summary
			return nil
		})
}

// NewEntityStage returns the stage that extracts named entities into a
// deduplicated, sorted set.
func NewEntityStage(completer ai.Completer) Stage {
	return newCompletionStage("entities", completer,
		func(record *core.EnrichedNews) string {
			return fmt.Sprintf(entitiesPrompt, record.Title)
		},
		func(record *core.EnrichedNews, response string) error {
			var parsed struct {
				Entities []string `json:"entities"`
			}
			if err := json.Unmarshal([]byte(response), &parsed); err != nil {
				return err
			}
			record.Entities = normalizeSet(parsed.Entities, false)
			return nil
		})
}

// NewSentimentStage returns the stage that classifies the sentiment and
// scores it on a 0 to 5 scale. A response carrying an unknown sentiment
// class counts as malformed.
func NewSentimentStage(completer ai.Completer) Stage {
	return newCompletionStage("sentiment", completer,
		func(record *core.EnrichedNews) string {
			return fmt.Sprintf(sentimentPrompt, record.Title)
		},
		func(record *core.EnrichedNews, response string) error {
			var parsed struct {
				Sentiment      string  `json:"sentiment"`
				SentimentScore float64 `json:"sentiment_score"`
			}
			if err := json.Unmarshal([]byte(response), &parsed); err != nil {
				return err
			}
			sentiment := core.Sentiment(parsed.Sentiment)
			if err := core.ValidateSentiment(sentiment); err != nil {
				return err
			}
			record.Sentiment = sentiment
			record.SentimentScore = parsed.SentimentScore
			return nil
		})
}

// NewCategoryStage returns the stage that extracts topical categories,
// lowercased into a deduplicated, sorted set.
func NewCategoryStage(completer ai.Completer) Stage {
	return newCompletionStage("categories", completer,
		func(record *core.EnrichedNews) string {
			return fmt.Sprintf(categoriesPrompt, record.Title)
		},
		func(record *core.EnrichedNews, response string) error {
			var parsed struct {
				Categories []string `json:"categories"`
			}
			if err := json.Unmarshal([]byte(response), &parsed); err != nil {
				return err
			}
			record.Categories = normalizeSet(parsed.Categories, true)
			return nil
		})
}

// NewKeywordStage returns the stage that extracts keywords into a
// deduplicated, sorted set. Keywords feed the keyword aggregations, so case
// is preserved as the model returns it.
func NewKeywordStage(completer ai.Completer) Stage {
	return newCompletionStage("keywords", completer,
		func(record *core.EnrichedNews) string {
			return fmt.Sprintf(keywordsPrompt, record.Title)
		},
		func(record *core.EnrichedNews, response string) error {
			var parsed struct {
				Keywords []string `json:"keywords"`
			}
			if err := json.Unmarshal([]byte(response), &parsed); err != nil {
				return err
			}
			record.Keywords = normalizeSet(parsed.Keywords, false)
			return nil
		})
}
