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


package googlenews

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/samirsalman/notiziario/core"
	"github.com/samirsalman/notiziario/feed"
)

const defaultBaseURL = "https://news.google.com"

// Client fetches top stories from the Google News RSS editions.
type Client struct {
	parser  *gofeed.Parser
	baseURL string
	logger  *slog.Logger
}

var _ feed.Source = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the feed host. Used in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// NewClient creates a Google News client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		parser:  gofeed.NewParser(),
		baseURL: defaultBaseURL,
		logger:  slog.Default().With("component", "googlenews"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TopNews fetches the top stories edition for the given country.
func (c *Client) TopNews(ctx context.Context, country core.Country) ([]core.NewsItem, error) {
	feedURL := c.editionURL(country)
	c.logger.Debug("fetching top news", "country", country.Region, "url", feedURL)

	parsed, err := c.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("googlenews: fetch %s: %w", country.Region, err)
	}

	items := make([]core.NewsItem, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		converted := convertItem(item)
		if converted == nil {
			continue
		}
		items = append(items, *converted)
	}

	c.logger.Debug("fetched top news", "country", country.Region, "count", len(items))
	return items, nil
}

// editionURL builds the RSS URL for a country edition,
// e.g. https://news.google.com/rss?gl=IT&hl=it&ceid=IT:it
func (c *Client) editionURL(country core.Country) string {
	hl := country.Language
	if country.Language == "en" {
		hl = country.Language + "-" + country.Region
	}

	query := url.Values{}
	query.Set("gl", country.Region)
	query.Set("hl", hl)
	query.Set("ceid", country.Region+":"+country.Language)
	return c.baseURL + "/rss?" + query.Encode()
}

// convertItem maps a feed entry to a NewsItem. Entries without a usable
// title are dropped. Items lacking a GUID get a content-derived ID so the
// same story always deduplicates to the same record.
func convertItem(item *gofeed.Item) *core.NewsItem {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		return nil
	}

	id := strings.TrimSpace(item.GUID)
	guidIsLink := strings.HasPrefix(id, "http://") || strings.HasPrefix(id, "https://")
	if id == "" {
		id = core.ContentID(title + item.Link)
	}

	news := &core.NewsItem{
		ID:         id,
		Title:      title,
		Link:       item.Link,
		GUIDIsLink: guidIsLink,
		Published:  item.Published,
		Summary:    item.Description,
		Source: core.Source{
			HRef:  sourceHRef(item.Link),
			Title: sourceTitle(item.Link),
		},
	}

	if item.PublishedParsed != nil {
		news.PublishedAt = item.PublishedParsed.UTC()
	}

	for _, link := range item.Links {
		if link == "" {
			continue
		}
		news.Links = append(news.Links, core.Link{
			Rel:  "alternate",
			Type: "text/html",
			HRef: link,
		})
	}

	return news
}

// sourceHRef reduces an article link to its origin.
func sourceHRef(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// sourceTitle derives a display name from the article host,
// e.g. "https://www.example.com/a/b" becomes "Example".
func sourceTitle(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())

	for _, prefix := range []string{"www.", "news.", "rss.", "feeds."} {
		host = strings.TrimPrefix(host, prefix)
	}

	parts := strings.Split(host, ".")
	name := host
	if len(parts) >= 2 {
		name = parts[len(parts)-2]
	}
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
