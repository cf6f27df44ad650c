package provider

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/igaltal/ai-stock-analyst/internal/api"
	"github.com/igaltal/ai-stock-analyst/internal/logger"
	"github.com/igaltal/ai-stock-analyst/internal/types"
)

// AlphaVantageSource is the Secondary provider: a keyed REST API, one HTTP
// call per capability. Without an API key every method returns empty so the
// chain skips straight past it.
type AlphaVantageSource struct {
	apiKey  string
	client  *api.Client
	baseURL string
}

func NewAlphaVantageSource(apiKey string, timeout time.Duration) *AlphaVantageSource {
	return &AlphaVantageSource{
		apiKey:  apiKey,
		client:  api.NewClient(api.WithTimeout(timeout), api.WithLogging(true)),
		baseURL: "https://www.alphavantage.co",
	}
}

func (a *AlphaVantageSource) Name() string { return "alphavantage" }

// avDailyBar is one entry of the TIME_SERIES_DAILY response; all values are
// strings in the provider's native format.
type avDailyBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

func (a *AlphaVantageSource) StockData(ctx context.Context, ticker, period string) types.PriceSeries {
	if a.apiKey == "" {
		return nil
	}

	// Compact covers ~100 trading days; full is only needed beyond that.
	outputSize := "compact"
	if period != "1mo" {
		outputSize = "full"
	}

	url := fmt.Sprintf("%s/query?function=TIME_SERIES_DAILY&symbol=%s&outputsize=%s&apikey=%s",
		a.baseURL, ticker, outputSize, a.apiKey)

	resp, err := a.client.GET(ctx, url)
	if err != nil {
		logger.Warn(ctx, "Alpha Vantage request failed", "ticker", ticker, "error", err)
		return nil
	}

	var payload struct {
		TimeSeries   map[string]avDailyBar `json:"Time Series (Daily)"`
		ErrorMessage string                `json:"Error Message"`
		Note         string                `json:"Note"`
	}
	if err := resp.ParseJSON(&payload); err != nil {
		return nil
	}
	// A missing top-level time-series key means the call failed, whatever the
	// HTTP status said.
	if len(payload.TimeSeries) == 0 {
		logger.Warn(ctx, "Alpha Vantage returned no time series",
			"ticker", ticker, "api_error", payload.ErrorMessage, "note", payload.Note)
		return nil
	}

	series := make(types.PriceSeries, 0, len(payload.TimeSeries))
	for day, bar := range payload.TimeSeries {
		date, err := time.Parse("2006-01-02", day)
		if err != nil {
			continue
		}
		close, err := strconv.ParseFloat(bar.Close, 64)
		if err != nil {
			continue
		}
		open, _ := strconv.ParseFloat(bar.Open, 64)
		high, _ := strconv.ParseFloat(bar.High, 64)
		low, _ := strconv.ParseFloat(bar.Low, 64)
		volume, _ := strconv.ParseInt(bar.Volume, 10, 64)

		series = append(series, types.PricePoint{
			Date:   date.UTC(),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: volume,
		})
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })

	// Trim to the requested window, keeping the most recent days.
	if limit := periodDays(period); len(series) > limit {
		series = series[len(series)-limit:]
	}

	return series
}

func (a *AlphaVantageSource) CompanyInfo(ctx context.Context, ticker string) types.CompanyProfile {
	if a.apiKey == "" {
		return types.SentinelProfile(ticker)
	}

	url := fmt.Sprintf("%s/query?function=OVERVIEW&symbol=%s&apikey=%s", a.baseURL, ticker, a.apiKey)

	resp, err := a.client.GET(ctx, url)
	if err != nil {
		logger.Warn(ctx, "Alpha Vantage overview failed", "ticker", ticker, "error", err)
		return types.SentinelProfile(ticker)
	}

	var overview struct {
		Symbol            string `json:"Symbol"`
		Name              string `json:"Name"`
		Sector            string `json:"Sector"`
		Industry          string `json:"Industry"`
		Description       string `json:"Description"`
		Country           string `json:"Country"`
		FullTimeEmployees string `json:"FullTimeEmployees"`
	}
	if err := resp.ParseJSON(&overview); err != nil || overview.Symbol == "" {
		return types.SentinelProfile(ticker)
	}

	profile := types.CompanyProfile{
		Name:        overview.Name,
		Sector:      overview.Sector,
		Industry:    overview.Industry,
		Description: overview.Description,
		Country:     overview.Country,
	}
	if profile.Name == "" {
		profile.Name = ticker
	}
	if profile.Sector == "" {
		profile.Sector = "Unknown"
	}
	if profile.Industry == "" {
		profile.Industry = "Unknown"
	}
	if n, err := strconv.Atoi(overview.FullTimeEmployees); err == nil {
		profile.Employees = n
	}
	return profile
}

// News is not an Alpha Vantage capability here.
func (a *AlphaVantageSource) News(ctx context.Context, ticker string, days int) []types.NewsItem {
	return nil
}
