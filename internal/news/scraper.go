package news

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/igaltal/ai-stock-analyst/internal/logger"
	"github.com/igaltal/ai-stock-analyst/internal/types"
)

// Scraper is an optional fallback that scrapes Google News search results
// when no news-service API key is configured. Like the resolver, it absorbs
// all failures as zero results.
type Scraper struct {
	timeout    time.Duration
	maxResults int
}

func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		timeout:    timeout,
		maxResults: 10,
	}
}

// Resolve scrapes headlines for the company name, or the ticker when no name
// is known.
func (s *Scraper) Resolve(ctx context.Context, ticker, companyName string, days int) []types.NewsItem {
	query := companyName
	if query == "" || query == ticker {
		query = ticker + " stock"
	}

	items := []types.NewsItem{}

	c := colly.NewCollector(
		colly.AllowedDomains("news.google.com", "www.google.com"),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	})

	c.OnHTML("article", func(e *colly.HTMLElement) {
		if len(items) >= s.maxResults {
			return
		}

		title := strings.TrimSpace(e.ChildText("h3, h4"))
		link := e.ChildAttr("a", "href")
		if title == "" || link == "" {
			return
		}

		// Google News links are relative redirects
		if strings.HasPrefix(link, "./articles/") {
			link = "https://news.google.com" + link[1:]
		}

		published := strings.TrimSpace(e.ChildAttr("time", "datetime"))

		items = append(items, types.NewsItem{
			Title:       title,
			Source:      "Google News",
			URL:         link,
			PublishedAt: published,
		})
	})

	searchQuery := url.QueryEscape(fmt.Sprintf("%s news", query))
	searchURL := fmt.Sprintf("https://news.google.com/search?q=%s&hl=en-US&gl=US&ceid=US:en", searchQuery)

	if err := c.Visit(searchURL); err != nil {
		logger.Warn(ctx, "Google News scrape failed", "ticker", ticker, "error", err)
		return nil
	}
	c.Wait()

	logger.Info(ctx, "Google News scrape completed", "ticker", ticker, "articles", len(items))
	return items
}
