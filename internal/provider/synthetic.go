package provider

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/igaltal/ai-stock-analyst/internal/logger"
	"github.com/igaltal/ai-stock-analyst/internal/types"
)

// SyntheticSource fabricates plausible data so the chain always has a
// terminal provider that cannot fail. It sits last in every chain.
type SyntheticSource struct {
	mu  sync.Mutex
	rnd *rand.Rand

	basePrice float64
}

var sectors = []string{"Technology", "Healthcare", "Finance", "Consumer Goods", "Energy"}

var industries = []string{"Software", "Hardware", "Pharmaceuticals", "Banking", "Retail", "Oil & Gas"}

var countries = []string{"USA", "Canada", "UK", "Germany", "Japan"}

var newsOutlets = []string{"Financial Times", "Bloomberg", "CNBC", "Reuters", "Wall Street Journal"}

func NewSyntheticSource() *SyntheticSource {
	return &SyntheticSource{
		rnd:       rand.New(rand.NewSource(time.Now().UnixNano())),
		basePrice: 150.0,
	}
}

func (s *SyntheticSource) Name() string { return "synthetic" }

// StockData generates a mildly upward random walk around the base price, one
// point per calendar day over the requested period.
func (s *SyntheticSource) StockData(ctx context.Context, ticker, period string) types.PriceSeries {
	logger.Info(ctx, "Creating demo price data", "ticker", ticker, "period", period)

	s.mu.Lock()
	defer s.mu.Unlock()

	days := periodDays(period)
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -days)

	series := make(types.PriceSeries, 0, days+1)
	for i := 0; ; i++ {
		date := start.AddDate(0, 0, i)
		if date.After(end) {
			break
		}

		close := s.basePrice + float64(i)*0.5 + s.uniform(-5, 5)
		series = append(series, types.PricePoint{
			Date:   date,
			Open:   close,
			High:   close + s.uniform(0, 2),
			Low:    close - s.uniform(0, 2),
			Close:  close,
			Volume: int64(s.uniform(5_000_000, 15_000_000)),
		})
	}

	return series
}

// CompanyInfo fabricates a profile with a non-sentinel templated name.
func (s *SyntheticSource) CompanyInfo(ctx context.Context, ticker string) types.CompanyProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	return types.CompanyProfile{
		Name:        fmt.Sprintf("%s Corporation", ticker),
		Sector:      sectors[s.rnd.Intn(len(sectors))],
		Industry:    industries[s.rnd.Intn(len(industries))],
		Website:     fmt.Sprintf("https://www.%s.com", strings.ToLower(ticker)),
		Description: fmt.Sprintf("This is a demo description for %s. No actual company data is available.", ticker),
		Country:     countries[s.rnd.Intn(len(countries))],
		Employees:   1000 + s.rnd.Intn(99001),
	}
}

// News generates up to five templated headlines with randomized recent dates.
func (s *SyntheticSource) News(ctx context.Context, ticker string, days int) []types.NewsItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if days <= 0 {
		days = 7
	}

	dates := make([]string, 3)
	for i := range dates {
		dates[i] = time.Now().AddDate(0, 0, -s.rnd.Intn(days+1)).Format("2006-01-02")
	}

	headlines := []string{
		fmt.Sprintf("%s Reports Strong Quarterly Results", ticker),
		fmt.Sprintf("%s Announces New Product Launch", ticker),
		fmt.Sprintf("Analysts Upgrade %s Stock Rating", ticker),
		fmt.Sprintf("%s Expands into New Markets", ticker),
		fmt.Sprintf("CEO of %s Discusses Future Growth", ticker),
		fmt.Sprintf("%s Partners with Industry Leader", ticker),
		fmt.Sprintf("Investors React to %s's Latest Announcement", ticker),
	}

	items := make([]types.NewsItem, 0, 5)
	for i := 0; i < 5 && i < len(headlines); i++ {
		items = append(items, types.NewsItem{
			Title:       headlines[i],
			Description: fmt.Sprintf("This is a sample news article about %s. No actual news data is available.", ticker),
			Source:      newsOutlets[s.rnd.Intn(len(newsOutlets))],
			URL:         fmt.Sprintf("https://example.com/news/%s/%d", strings.ToLower(ticker), i),
			PublishedAt: dates[i%len(dates)],
		})
	}

	return items
}

func (s *SyntheticSource) uniform(min, max float64) float64 {
	return min + s.rnd.Float64()*(max-min)
}
