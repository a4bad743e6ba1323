package core

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
	"github.com/google/uuid"
)

// nowUTC returns the current time truncated to microseconds, the precision
// the storage layer round-trips.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// NewID generates a random identifier for runs and aggregation snapshots.
// IDs are hex-encoded UUIDv4 values without separators.
func NewID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")
}

// ContentID generates a deterministic identifier from text using BLAKE2b
// hashing. It is used as a fallback for feed items that carry no stable GUID,
// so that the same item always maps to the same identifier.
func ContentID(text string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Source identifies the publisher a news item was fetched from.
type Source struct {
	HRef  string `json:"href" bson:"href"`
	Title string `json:"title" bson:"title"`
}

// SubArticle is a related article attached to a top story.
type SubArticle struct {
	URL       string `json:"url" bson:"url"`
	Title     string `json:"title" bson:"title"`
	Publisher string `json:"publisher" bson:"publisher"`
}

// Link is an alternate link carried by a feed entry.
type Link struct {
	Rel  string `json:"rel" bson:"rel"`
	Type string `json:"type" bson:"type"`
	HRef string `json:"href" bson:"href"`
}

// NewsItem is a raw news item as supplied by the feed source.
// It is immutable once fetched; identity is the stable ID.
type NewsItem struct {
	ID          string       `json:"id" bson:"id"`
	Title       string       `json:"title" bson:"title"`
	Link        string       `json:"link" bson:"link"`
	GUIDIsLink  bool         `json:"guidislink" bson:"guidislink"`
	Published   string       `json:"published" bson:"published"` // raw date string from the feed
	PublishedAt time.Time    `json:"published_at" bson:"published_at"`
	Summary     string       `json:"summary" bson:"summary"`
	Source      Source       `json:"source" bson:"source"`
	SubArticles []SubArticle `json:"sub_articles" bson:"sub_articles"`
	Links       []Link       `json:"links" bson:"links"`
}

// Sentiment classifies the overall tone of a news item.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// EnrichedNews is a NewsItem plus the fields populated by the enrichment
// chain. Enrichment fields are empty until the owning stage fills them in.
// Entities, Categories and Keywords are deduplicated, sorted sets.
type EnrichedNews struct {
	NewsItem `bson:",inline"`

	Entities       []string  `json:"entities" bson:"entities"`
	Sentiment      Sentiment `json:"sentiment" bson:"sentiment"`
	SentimentScore float64   `json:"sentiment_score" bson:"sentiment_score"`
	Categories     []string  `json:"categories" bson:"categories"`
	Keywords       []string  `json:"keywords" bson:"keywords"`

	// Vector is the embedding of the summary, populated when the record is
	// stored in the knowledge store.
	Vector []float32 `json:"-" bson:"vector,omitempty"`

	// Metadata holds partition tags attached at store time.
	// Recognized keys are documented on Filter.
	Metadata map[string]string `json:"metadata" bson:"metadata"`

	InsertedAt time.Time `json:"inserted_at" bson:"inserted_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// FromNews lifts a raw news item into an enrichment shell with all
// enrichment fields unset.
func FromNews(item NewsItem) *EnrichedNews {
	return &EnrichedNews{NewsItem: item, Metadata: map[string]string{}}
}
