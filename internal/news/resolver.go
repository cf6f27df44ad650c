package news

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/igaltal/ai-stock-analyst/internal/api"
	"github.com/igaltal/ai-stock-analyst/internal/logger"
	"github.com/igaltal/ai-stock-analyst/internal/store"
	"github.com/igaltal/ai-stock-analyst/internal/types"
)

// Resolver queries a keyed news-search service with a two-stage strategy:
// first by company name over the trailing window, then by raw ticker when the
// name query comes back empty. Any transport or auth failure is absorbed as
// zero results so the provider chain can fall through to its terminal
// fallback; the resolver itself never retries.
type Resolver struct {
	apiKey   string
	client   *api.Client
	baseURL  string
	pageSize int
}

func NewResolver(cfg *store.Config) *Resolver {
	return &Resolver{
		apiKey:   cfg.NewsAPIKey(),
		client:   api.NewClient(api.WithTimeout(time.Duration(cfg.News.TimeoutSeconds) * time.Second)),
		baseURL:  "https://newsapi.org",
		pageSize: cfg.News.PageSize,
	}
}

// newsAPIResponse is the service's native "everything" response shape.
type newsAPIResponse struct {
	Status       string `json:"status"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// Resolve returns up to pageSize relevance-sorted articles, or nil.
func (r *Resolver) Resolve(ctx context.Context, ticker, companyName string, days int) []types.NewsItem {
	if r.apiKey == "" {
		return nil
	}

	query := companyName
	if query == "" {
		query = ticker
	}

	items := r.search(ctx, query, days)
	if len(items) > 0 {
		return items
	}

	// Stage 2: the company name found nothing, retry with the bare ticker.
	if companyName != "" && query != ticker {
		return r.search(ctx, ticker, days)
	}

	return nil
}

func (r *Resolver) search(ctx context.Context, query string, days int) []types.NewsItem {
	end := time.Now()
	start := end.AddDate(0, 0, -days)

	u := fmt.Sprintf("%s/v2/everything?q=%s&from=%s&to=%s&language=en&sortBy=relevancy&pageSize=%d",
		r.baseURL,
		url.QueryEscape(query),
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
		r.pageSize)

	resp, err := r.client.GET(ctx, u, api.NewsAPIHeaders(r.apiKey))
	if err != nil {
		logger.Warn(ctx, "News search failed", "query", query, "error", err)
		return nil
	}

	var payload newsAPIResponse
	if err := resp.ParseJSON(&payload); err != nil {
		logger.Warn(ctx, "News search returned malformed payload", "query", query, "error", err)
		return nil
	}
	if payload.TotalResults == 0 {
		return nil
	}

	items := make([]types.NewsItem, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		items = append(items, types.NewsItem{
			Title:       a.Title,
			Description: a.Description,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
		})
	}
	return items
}
