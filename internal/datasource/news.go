package datasource

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/seenimoa/marketmind/internal/config"
	"github.com/seenimoa/marketmind/internal/observability"
)

// ProviderNews names the news provider in errors and metrics.
const ProviderNews = "news"

// News fetches recent headlines from the Google News RSS search.
type News struct {
	client       *client
	parser       *gofeed.Parser
	searchURL    string
	language     string
	region       string
	maxHeadlines int
}

// NewNews creates a news provider from the news config. Rate limiting and
// breaker settings are shared with the market-data provider config.
func NewNews(cfg config.NewsConfig, provider config.ProviderConfig, metrics *observability.Metrics) *News {
	return &News{
		client: newClient(ProviderNews, ClientOptions{
			Timeout:            time.Duration(cfg.TimeoutSec) * time.Second,
			RequestsPerSec:     provider.RequestsPerSec,
			Burst:              provider.Burst,
			BreakerMaxRequests: provider.BreakerMaxRequests,
			BreakerTimeout:     time.Duration(provider.BreakerTimeoutSec) * time.Second,
			UserAgent:          provider.UserAgent,
		}, metrics),
		parser:       gofeed.NewParser(),
		searchURL:    cfg.SearchURL,
		language:     cfg.Language,
		region:       cfg.Region,
		maxHeadlines: cfg.MaxHeadlines,
	}
}

// Name returns the data source name.
func (n *News) Name() string { return ProviderNews }

// Headlines returns the most recent headline titles for query, in feed
// order, capped at the configured maximum. A feed with no items yields an
// empty slice.
func (n *News) Headlines(ctx context.Context, query string) ([]string, error) {
	data, err := n.client.get(ctx, "headlines", n.searchFeedURL(query), map[string]string{
		"Accept": "application/rss+xml, application/xml, text/xml",
	})
	if err != nil {
		return nil, fmt.Errorf("news search %s: %w", query, err)
	}

	feed, err := n.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse news RSS: %w", err)
	}

	headlines := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		title := cleanHTML(item.Title)
		if title == "" {
			continue
		}
		headlines = append(headlines, title)
		if n.maxHeadlines > 0 && len(headlines) == n.maxHeadlines {
			break
		}
	}
	return headlines, nil
}

// searchFeedURL builds {base}?q={query}+stock&hl={lang}&gl={region}&ceid={region}:{lang prefix}.
func (n *News) searchFeedURL(query string) string {
	lang := n.language
	if i := strings.IndexByte(lang, '-'); i > 0 {
		lang = lang[:i]
	}
	return fmt.Sprintf("%s?q=%s&hl=%s&gl=%s&ceid=%s:%s",
		n.searchURL, url.QueryEscape(query+" stock"), n.language, n.region, n.region, lang)
}

// cleanHTML strips HTML tags and decodes entities using goquery.
func cleanHTML(s string) string {
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + s + "</body>"))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}
