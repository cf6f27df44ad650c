package analyzer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/igaltal/ai-stock-analyst/internal/logger"
	"github.com/igaltal/ai-stock-analyst/internal/store"
	"github.com/igaltal/ai-stock-analyst/internal/types"
)

// ErrInvalidTicker is returned for malformed ticker symbols. It is the only
// error Analyze can produce: everything downstream degrades to synthetic data
// instead of failing.
var ErrInvalidTicker = errors.New("invalid ticker symbol")

var tickerPattern = regexp.MustCompile(`^[A-Z0-9.\-]{1,10}$`)

// DataManager is the provider chain as the orchestrator sees it.
type DataManager interface {
	StockData(ctx context.Context, ticker, period string) types.PriceSeries
	CompanyInfo(ctx context.Context, ticker string) types.CompanyProfile
	News(ctx context.Context, ticker, companyName string, days int) []types.NewsItem
}

// SentimentEngine turns articles into a recommendation.
type SentimentEngine interface {
	Analyze(ctx context.Context, articles []types.NewsItem) types.SentimentResult
}

// Analyzer sequences one complete analysis: company lookup, news resolution,
// price fetch, sentiment, derived metrics. All fault tolerance lives below
// it; the analyzer itself never retries.
type Analyzer struct {
	cfg       *store.Config
	data      DataManager
	sentiment SentimentEngine
}

func New(cfg *store.Config, data DataManager, sentiment SentimentEngine) *Analyzer {
	return &Analyzer{cfg: cfg, data: data, sentiment: sentiment}
}

// Analyze produces the investment brief for one ticker.
//
// The company profile is resolved first, deliberately: the Primary provider
// can often answer it from its local ticker table, and the company name feeds
// the news query that follows.
func (a *Analyzer) Analyze(ctx context.Context, ticker string) (*types.AnalysisResult, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if !tickerPattern.MatchString(ticker) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTicker, ticker)
	}

	ot := logger.StartOperation(ctx, "analyze", "ticker", ticker)
	ctx = ot.GetContext()

	info := a.data.CompanyInfo(ctx, ticker)

	articles := a.data.News(ctx, ticker, info.Name, a.cfg.Analysis.NewsDays)

	series := a.data.StockData(ctx, ticker, a.cfg.Analysis.Period)

	if len(articles) > a.cfg.Analysis.MaxArticles {
		articles = articles[:a.cfg.Analysis.MaxArticles]
	}
	analysis := a.sentiment.Analyze(ctx, articles)

	currentPrice, priceChange, priceChangePct := priceMetrics(series)

	logger.Recommendation(ctx, ticker, analysis.Sentiment, analysis.Recommendation,
		"articles", len(articles), "price_points", len(series))
	ot.End("articles", len(articles), "price_points", len(series))

	return &types.AnalysisResult{
		Ticker:         ticker,
		CompanyName:    info.Name,
		CurrentPrice:   currentPrice,
		PriceChange:    priceChange,
		PriceChangePct: priceChangePct,
		Analysis:       analysis,
		CompanyInfo:    info,
		News:           articles,
		PriceData:      series,
	}, nil
}

// priceMetrics derives the headline numbers from a series. All three are nil
// for an empty series; the chain contract makes that unreachable in practice,
// but the computation stays defensive.
func priceMetrics(series types.PriceSeries) (currentPrice, priceChange, priceChangePct *float64) {
	if len(series) == 0 {
		return nil, nil, nil
	}

	first := series[0].Close
	last := series[len(series)-1].Close

	currentPrice = &last

	change := last - first
	priceChange = &change

	if first != 0 {
		pct := change / first * 100
		priceChangePct = &pct
	}
	return currentPrice, priceChange, priceChangePct
}
