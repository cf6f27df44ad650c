package types

import "time"

// PricePoint is one daily OHLCV bar. Date is truncated to a UTC calendar day.
type PricePoint struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// PriceSeries is ordered ascending by date with no duplicate dates.
type PriceSeries []PricePoint

// CompanyProfile describes the company behind a ticker. When no provider can
// resolve it, Name equals the ticker itself; the chain treats that as the
// "unresolved" sentinel and keeps trying.
type CompanyProfile struct {
	Name        string `json:"name"`
	Sector      string `json:"sector"`
	Industry    string `json:"industry"`
	Website     string `json:"website"`
	Description string `json:"description"`
	Country     string `json:"country"`
	Employees   int    `json:"employees"`
}

// SentinelProfile returns the unresolved placeholder for a ticker.
func SentinelProfile(ticker string) CompanyProfile {
	return CompanyProfile{
		Name:     ticker,
		Sector:   "Unknown",
		Industry: "Unknown",
	}
}

// IsSentinel reports whether the profile is the unresolved placeholder.
func (p CompanyProfile) IsSentinel(ticker string) bool {
	return p.Name == "" || p.Name == ticker
}

// NewsItem is one article as returned by a news service, relevance-ordered by
// the originating service.
type NewsItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// SentimentResult is the structured recommendation derived from news.
type SentimentResult struct {
	Summary        string `json:"summary"`
	Sentiment      string `json:"sentiment"`      // Positive, Neutral, Negative
	Recommendation string `json:"recommendation"` // Buy, Hold, Sell
	Reasoning      string `json:"reasoning"`
}

// AnalysisResult is the complete investment brief for one ticker. Price
// metrics are nil when the series is empty, which the provider chain
// guarantees cannot happen in practice.
type AnalysisResult struct {
	Ticker         string          `json:"ticker"`
	CompanyName    string          `json:"company_name"`
	CurrentPrice   *float64        `json:"current_price"`
	PriceChange    *float64        `json:"price_change"`
	PriceChangePct *float64        `json:"price_change_pct"`
	Analysis       SentimentResult `json:"analysis"`
	CompanyInfo    CompanyProfile  `json:"company_info"`
	News           []NewsItem      `json:"news"`
	PriceData      PriceSeries     `json:"price_data"`
}
