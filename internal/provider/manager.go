package provider

import (
	"context"

	"github.com/igaltal/ai-stock-analyst/internal/logger"
	"github.com/igaltal/ai-stock-analyst/internal/store"
	"github.com/igaltal/ai-stock-analyst/internal/types"
)

// minAcceptedPoints is the acceptance threshold for a "real" price series.
// Series shorter than this are treated as a failed fetch and the chain moves
// on to the next provider.
const minAcceptedPoints = 6

// Manager coordinates the providers in fixed priority order
// {Yahoo, AlphaVantage, Synthetic}. The synthetic source is last and cannot
// fail, so no Manager fetch ever comes back empty.
type Manager struct {
	sources   []DataSource
	resolvers []NewsResolver
}

// NewManager builds the standard chain from configuration. News resolvers are
// tried in order before the providers' own news capability.
func NewManager(cfg *store.Config, resolvers ...NewsResolver) *Manager {
	limiter := NewLimiter(cfg.YahooMinInterval())

	return &Manager{
		sources: []DataSource{
			NewYahooSource(limiter, cfg.ProviderTimeout(cfg.Providers.Yahoo.TimeoutSeconds)),
			NewAlphaVantageSource(cfg.AlphaVantageAPIKey(), cfg.ProviderTimeout(cfg.Providers.AlphaVantage.TimeoutSeconds)),
			NewSyntheticSource(),
		},
		resolvers: resolvers,
	}
}

// StockData returns the first acceptable price series in provider order.
// Never empty: the synthetic source always generates enough points.
func (m *Manager) StockData(ctx context.Context, ticker, period string) types.PriceSeries {
	var last types.PriceSeries
	for i, source := range m.sources {
		last = source.StockData(ctx, ticker, period)
		if len(last) >= minAcceptedPoints {
			if i > 0 {
				logger.Fallback(ctx, ticker, "prices", source.Name())
			}
			return last
		}
	}
	return last
}

// CompanyInfo returns the first non-sentinel profile in provider order. When
// every provider yields the sentinel, the terminal source's profile is
// returned verbatim, which still carries a templated non-sentinel name.
func (m *Manager) CompanyInfo(ctx context.Context, ticker string) types.CompanyProfile {
	for i, source := range m.sources {
		info := source.CompanyInfo(ctx, ticker)
		if !info.IsSentinel(ticker) {
			if i > 0 {
				logger.Fallback(ctx, ticker, "profile", source.Name())
			}
			return info
		}
	}
	return m.sources[len(m.sources)-1].CompanyInfo(ctx, ticker)
}

// News tries the dedicated resolvers first, then each provider's own news
// capability, and finally the terminal source's templated articles. Never
// empty.
func (m *Manager) News(ctx context.Context, ticker, companyName string, days int) []types.NewsItem {
	for _, resolver := range m.resolvers {
		if items := resolver.Resolve(ctx, ticker, companyName, days); len(items) > 0 {
			return items
		}
	}

	for _, source := range m.sources {
		if items := source.News(ctx, ticker, days); len(items) > 0 {
			logger.Fallback(ctx, ticker, "news", source.Name())
			return items
		}
	}

	return m.sources[len(m.sources)-1].News(ctx, ticker, days)
}
