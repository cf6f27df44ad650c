package analyzer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/igaltal/ai-stock-analyst/internal/store"
	"github.com/igaltal/ai-stock-analyst/internal/types"
)

type stubData struct {
	series  types.PriceSeries
	profile types.CompanyProfile
	news    []types.NewsItem

	newsTicker string
	newsName   string
	newsDays   int
	period     string
}

func (s *stubData) StockData(ctx context.Context, ticker, period string) types.PriceSeries {
	s.period = period
	return s.series
}

func (s *stubData) CompanyInfo(ctx context.Context, ticker string) types.CompanyProfile {
	return s.profile
}

func (s *stubData) News(ctx context.Context, ticker, companyName string, days int) []types.NewsItem {
	s.newsTicker = ticker
	s.newsName = companyName
	s.newsDays = days
	return s.news
}

type stubSentiment struct {
	result   types.SentimentResult
	articles []types.NewsItem
}

func (s *stubSentiment) Analyze(ctx context.Context, articles []types.NewsItem) types.SentimentResult {
	s.articles = articles
	return s.result
}

func testConfig(t *testing.T) *store.Config {
	t.Helper()

	cfg, err := store.LoadConfig("does-not-exist.yaml")
	if err != nil {
		t.Fatalf("Expected default config to load, got %v", err)
	}
	return cfg
}

func testSeries(closes ...float64) types.PriceSeries {
	series := make(types.PriceSeries, len(closes))
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		series[i] = types.PricePoint{Date: base.AddDate(0, 0, i), Close: c}
	}
	return series
}

func TestAnalyze(t *testing.T) {
	data := &stubData{
		series:  testSeries(100, 105, 110),
		profile: types.CompanyProfile{Name: "Apple Inc.", Sector: "Technology"},
		news:    []types.NewsItem{{Title: "Apple beats estimates"}},
	}
	engine := &stubSentiment{
		result: types.SentimentResult{Sentiment: "Positive", Recommendation: "Buy"},
	}

	a := New(testConfig(t), data, engine)

	result, err := a.Analyze(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if result.Ticker != "AAPL" {
		t.Errorf("Expected normalized ticker AAPL, got %s", result.Ticker)
	}
	if result.CompanyName != "Apple Inc." {
		t.Errorf("Expected company name from profile, got %s", result.CompanyName)
	}
	if result.CurrentPrice == nil || *result.CurrentPrice != 110 {
		t.Errorf("Expected current price 110, got %v", result.CurrentPrice)
	}
	if result.PriceChange == nil || *result.PriceChange != 10 {
		t.Errorf("Expected price change 10, got %v", result.PriceChange)
	}
	if result.PriceChangePct == nil || *result.PriceChangePct != 10 {
		t.Errorf("Expected price change pct 10, got %v", result.PriceChangePct)
	}
	if result.Analysis.Recommendation != "Buy" {
		t.Errorf("Expected Buy recommendation, got %s", result.Analysis.Recommendation)
	}
	if len(result.News) != 1 {
		t.Errorf("Expected 1 article in result, got %d", len(result.News))
	}

	// The company name must feed the news query.
	if data.newsName != "Apple Inc." {
		t.Errorf("Expected news query to use company name, got %q", data.newsName)
	}
	if data.newsDays != 7 {
		t.Errorf("Expected default 7-day news window, got %d", data.newsDays)
	}
	if data.period != "1mo" {
		t.Errorf("Expected default 1mo period, got %q", data.period)
	}
}

func TestAnalyzeInvalidTicker(t *testing.T) {
	a := New(testConfig(t), &stubData{}, &stubSentiment{})

	cases := []string{"", "TOOLONGTICKER", "BAD TICKER", "AAPL$", "aa pl"}
	for _, ticker := range cases {
		_, err := a.Analyze(context.Background(), ticker)
		if !errors.Is(err, ErrInvalidTicker) {
			t.Errorf("Expected ErrInvalidTicker for %q, got %v", ticker, err)
		}
	}
}

func TestAnalyzeTickerNormalization(t *testing.T) {
	a := New(testConfig(t), &stubData{series: testSeries(100, 101, 102)}, &stubSentiment{})

	cases := []string{" aapl ", "AAPL", "brk.b", "BF-B"}
	for _, ticker := range cases {
		if _, err := a.Analyze(context.Background(), ticker); err != nil {
			t.Errorf("Expected %q to be accepted, got %v", ticker, err)
		}
	}
}

func TestAnalyzeCapsArticles(t *testing.T) {
	news := make([]types.NewsItem, 8)
	for i := range news {
		news[i] = types.NewsItem{Title: "headline"}
	}

	data := &stubData{series: testSeries(100, 101), news: news}
	engine := &stubSentiment{}

	a := New(testConfig(t), data, engine)

	result, err := a.Analyze(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Default max_articles is 5.
	if len(engine.articles) != 5 {
		t.Errorf("Expected 5 articles passed to sentiment, got %d", len(engine.articles))
	}
	if len(result.News) != 5 {
		t.Errorf("Expected 5 articles in result, got %d", len(result.News))
	}
}

func TestPriceMetrics(t *testing.T) {
	current, change, pct := priceMetrics(testSeries(100, 105, 110))

	if current == nil || *current != 110 {
		t.Errorf("Expected current 110, got %v", current)
	}
	if change == nil || *change != 10 {
		t.Errorf("Expected change 10, got %v", change)
	}
	if pct == nil || *pct != 10.0 {
		t.Errorf("Expected pct 10.0, got %v", pct)
	}
}

func TestPriceMetricsEmptySeries(t *testing.T) {
	current, change, pct := priceMetrics(nil)

	if current != nil || change != nil || pct != nil {
		t.Error("Expected nil metrics for empty series")
	}
}

func TestPriceMetricsZeroFirstClose(t *testing.T) {
	current, change, pct := priceMetrics(testSeries(0, 50))

	if current == nil || *current != 50 {
		t.Errorf("Expected current 50, got %v", current)
	}
	if change == nil || *change != 50 {
		t.Errorf("Expected change 50, got %v", change)
	}
	if pct != nil {
		t.Errorf("Expected nil pct when first close is zero, got %f", *pct)
	}
}
