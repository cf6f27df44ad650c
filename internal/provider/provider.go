package provider

import (
	"context"

	"github.com/igaltal/ai-stock-analyst/internal/types"
)

// DataSource is implemented by every market data provider. Methods never
// return an error to the caller: any internal failure yields an empty series,
// the sentinel profile, or an empty news list, so the chain can treat failure
// uniformly as "try the next provider".
type DataSource interface {
	Name() string

	// StockData returns daily price history for the given period
	// ("1mo", "2mo" or "3mo"). Empty on failure.
	StockData(ctx context.Context, ticker, period string) types.PriceSeries

	// CompanyInfo returns the company profile, or the sentinel profile
	// (name == ticker) when the company cannot be resolved.
	CompanyInfo(ctx context.Context, ticker string) types.CompanyProfile

	// News returns articles from the trailing days-day window. Empty when the
	// provider has no news capability or on failure.
	News(ctx context.Context, ticker string, days int) []types.NewsItem
}

// NewsResolver resolves articles from a dedicated news service, tried by the
// chain before the providers' own news capability.
type NewsResolver interface {
	Resolve(ctx context.Context, ticker, companyName string, days int) []types.NewsItem
}

// periodDays maps a requested period to a number of calendar days.
func periodDays(period string) int {
	switch period {
	case "1mo":
		return 30
	case "2mo":
		return 60
	case "3mo":
		return 90
	default:
		return 30
	}
}
