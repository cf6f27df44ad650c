package provider

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/igaltal/ai-stock-analyst/internal/api"
	"github.com/igaltal/ai-stock-analyst/internal/logger"
	"github.com/igaltal/ai-stock-analyst/internal/types"
)

// knownCompanies avoids network calls for common tickers.
var knownCompanies = map[string]string{
	"AAPL":  "Apple Inc.",
	"MSFT":  "Microsoft Corporation",
	"GOOGL": "Alphabet Inc.",
	"AMZN":  "Amazon.com, Inc.",
	"META":  "Meta Platforms, Inc.",
	"TSLA":  "Tesla, Inc.",
	"NVDA":  "NVIDIA Corporation",
	"NFLX":  "Netflix, Inc.",
	"JPM":   "JPMorgan Chase & Co.",
	"V":     "Visa Inc.",
}

// YahooSource is the Primary provider. It scrapes public Yahoo Finance
// endpoints without an API key, which makes it both the best free source and
// the most throttle-prone one: every network call goes through the shared
// Limiter, strategies are separated by jitter sleeps, and price history is
// fetched through four independent strategies in order:
//
//	(a) bulk chart API download
//	(b) session-based fetch (landing-page cookies first)
//	(c) raw CSV download with a randomized User-Agent and cache-busting param
//	(d) one final delayed retry of (b)
//
// The first strategy returning more than 5 rows wins.
type YahooSource struct {
	client  *api.Client // plain client for API and page fetches
	session *api.Client // cookie-jar client for the session strategy
	limiter *Limiter
	sleep   func(ctx context.Context, min, max time.Duration)

	apiHost  string // chart, download and quoteSummary endpoints
	pageHost string // HTML pages, also the session warmup target

	warmup sync.Once
}

func NewYahooSource(limiter *Limiter, timeout time.Duration) *YahooSource {
	return &YahooSource{
		client:   api.NewClient(api.WithTimeout(timeout), api.WithLogging(true)),
		session:  api.NewClient(api.WithTimeout(timeout), api.WithLogging(true), api.WithCookieJar()),
		limiter:  limiter,
		sleep:    sleepJitter,
		apiHost:  "https://query1.finance.yahoo.com",
		pageHost: "https://finance.yahoo.com",
	}
}

func (y *YahooSource) Name() string { return "yahoo" }

func (y *YahooSource) StockData(ctx context.Context, ticker, period string) types.PriceSeries {
	// (a) bulk chart download
	y.sleep(ctx, 1*time.Second, 3*time.Second)
	if err := y.limiter.Wait(ctx); err != nil {
		return nil
	}
	if series := y.fetchChart(ctx, y.client, ticker, period); len(series) > 5 {
		return series
	}
	logger.Warn(ctx, "Yahoo chart download failed", "ticker", ticker, "strategy", "bulk")

	// (b) session-based fetch
	y.sleep(ctx, 500*time.Millisecond, 3*time.Second)
	if err := y.limiter.Wait(ctx); err != nil {
		return nil
	}
	if series := y.fetchWithSession(ctx, ticker, period); len(series) > 5 {
		return series
	}
	logger.Warn(ctx, "Yahoo session fetch failed", "ticker", ticker, "strategy", "session")

	// (c) raw CSV request with randomized UA and cache buster
	y.sleep(ctx, 500*time.Millisecond, 2*time.Second)
	if err := y.limiter.Wait(ctx); err != nil {
		return nil
	}
	if series := y.fetchCSV(ctx, ticker, period); len(series) > 5 {
		return series
	}
	logger.Warn(ctx, "Yahoo CSV download failed", "ticker", ticker, "strategy", "csv")

	// (d) one final delayed retry of the session fetch
	y.sleep(ctx, 2*time.Second, 3*time.Second)
	if err := y.limiter.Wait(ctx); err != nil {
		return nil
	}
	if series := y.fetchWithSession(ctx, ticker, period); len(series) > 5 {
		return series
	}
	logger.Warn(ctx, "All Yahoo price strategies exhausted", "ticker", ticker)

	return nil
}

func (y *YahooSource) CompanyInfo(ctx context.Context, ticker string) types.CompanyProfile {
	if name, ok := knownCompanies[ticker]; ok {
		return types.CompanyProfile{
			Name:     name,
			Sector:   "Unknown",
			Industry: "Unknown",
		}
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return types.SentinelProfile(ticker)
	}
	if p := y.fetchQuoteSummary(ctx, ticker); !p.IsSentinel(ticker) {
		return p
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return types.SentinelProfile(ticker)
	}
	if p := y.scrapeProfilePage(ctx, ticker); !p.IsSentinel(ticker) {
		return p
	}

	return types.SentinelProfile(ticker)
}

// News is not a Yahoo capability here.
func (y *YahooSource) News(ctx context.Context, ticker string, days int) []types.NewsItem {
	return nil
}

// yahooChart is the response structure of the v8 chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func periodRange(period string) string {
	switch period {
	case "3mo":
		return "3mo"
	case "2mo":
		return "2mo"
	default:
		return "1mo"
	}
}

func (y *YahooSource) fetchChart(ctx context.Context, client *api.Client, ticker, period string) types.PriceSeries {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s", y.apiHost, ticker, periodRange(period))

	resp, err := client.GET(ctx, url, api.YahooFinanceHeaders())
	if err != nil {
		return nil
	}

	var chart yahooChart
	if err := resp.ParseJSON(&chart); err != nil {
		return nil
	}
	if chart.Chart.Error != nil || len(chart.Chart.Result) == 0 {
		return nil
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	quote := result.Indicators.Quote[0]

	series := make(types.PriceSeries, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		p := types.PricePoint{
			Date:  time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Close: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			p.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			p.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			p.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			p.Volume = *quote.Volume[i]
		}
		series = append(series, p)
	}

	return normalizeSeries(series)
}

// fetchWithSession warms up a cookie session against the landing page once,
// then reuses it for chart fetches. Yahoo serves some clients only after a
// consent/session cookie exists.
func (y *YahooSource) fetchWithSession(ctx context.Context, ticker, period string) types.PriceSeries {
	y.warmup.Do(func() {
		if _, err := y.session.GET(ctx, y.pageHost+"/", api.BrowserHeaders()); err != nil {
			logger.Debug(ctx, "Yahoo session warmup failed", "error", err)
		}
	})

	return y.fetchChart(ctx, y.session, ticker, period)
}

func (y *YahooSource) fetchCSV(ctx context.Context, ticker, period string) types.PriceSeries {
	now := time.Now()
	start := now.AddDate(0, 0, -periodDays(period))

	url := fmt.Sprintf("%s/v7/finance/download/%s?period1=%d&period2=%d&interval=1d&events=history&cb=%d",
		y.apiHost, ticker, start.Unix(), now.Unix(), rand.Int63())

	resp, err := y.client.GET(ctx, url, map[string]string{"User-Agent": api.RandomBrowserUA()})
	if err != nil {
		return nil
	}

	return parsePriceCSV(resp.String())
}

// parsePriceCSV parses the download endpoint's CSV
// (Date,Open,High,Low,Close,Adj Close,Volume).
func parsePriceCSV(raw string) types.PriceSeries {
	reader := csv.NewReader(strings.NewReader(raw))
	records, err := reader.ReadAll()
	if err != nil || len(records) < 2 {
		return nil
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	for _, required := range []string{"Date", "Open", "High", "Low", "Close", "Volume"} {
		if _, ok := col[required]; !ok {
			return nil
		}
	}

	series := make(types.PriceSeries, 0, len(records)-1)
	for _, rec := range records[1:] {
		date, err := time.Parse("2006-01-02", rec[col["Date"]])
		if err != nil {
			continue
		}
		close, err := strconv.ParseFloat(rec[col["Close"]], 64)
		if err != nil {
			// "null" rows appear on market holidays
			continue
		}
		open, _ := strconv.ParseFloat(rec[col["Open"]], 64)
		high, _ := strconv.ParseFloat(rec[col["High"]], 64)
		low, _ := strconv.ParseFloat(rec[col["Low"]], 64)
		volume, _ := strconv.ParseInt(rec[col["Volume"]], 10, 64)

		series = append(series, types.PricePoint{
			Date:   date.UTC(),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: volume,
		})
	}

	return normalizeSeries(series)
}

// normalizeSeries enforces the series invariant: ascending by date, no
// duplicate dates.
func normalizeSeries(series types.PriceSeries) types.PriceSeries {
	if len(series) == 0 {
		return nil
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })

	out := series[:1]
	for _, p := range series[1:] {
		if p.Date.Equal(out[len(out)-1].Date) {
			continue
		}
		out = append(out, p)
	}
	return out
}

type yahooQuoteSummary struct {
	QuoteSummary struct {
		Result []struct {
			Price struct {
				LongName  string `json:"longName"`
				ShortName string `json:"shortName"`
			} `json:"price"`
			AssetProfile struct {
				Sector              string `json:"sector"`
				Industry            string `json:"industry"`
				Website             string `json:"website"`
				LongBusinessSummary string `json:"longBusinessSummary"`
				Country             string `json:"country"`
				FullTimeEmployees   int    `json:"fullTimeEmployees"`
			} `json:"assetProfile"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

func (y *YahooSource) fetchQuoteSummary(ctx context.Context, ticker string) types.CompanyProfile {
	url := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=assetProfile%%2Cprice", y.apiHost, ticker)

	resp, err := y.client.GET(ctx, url, api.YahooFinanceHeaders())
	if err != nil {
		logger.Debug(ctx, "Yahoo quote summary failed", "ticker", ticker, "error", err)
		return types.SentinelProfile(ticker)
	}

	var qs yahooQuoteSummary
	if err := resp.ParseJSON(&qs); err != nil || len(qs.QuoteSummary.Result) == 0 {
		return types.SentinelProfile(ticker)
	}

	r := qs.QuoteSummary.Result[0]
	name := r.Price.LongName
	if name == "" {
		name = r.Price.ShortName
	}
	if name == "" {
		return types.SentinelProfile(ticker)
	}

	profile := types.CompanyProfile{
		Name:        name,
		Sector:      r.AssetProfile.Sector,
		Industry:    r.AssetProfile.Industry,
		Website:     r.AssetProfile.Website,
		Description: r.AssetProfile.LongBusinessSummary,
		Country:     r.AssetProfile.Country,
		Employees:   r.AssetProfile.FullTimeEmployees,
	}
	if profile.Sector == "" {
		profile.Sector = "Unknown"
	}
	if profile.Industry == "" {
		profile.Industry = "Unknown"
	}
	return profile
}

// scrapeProfilePage extracts the company name from the quote page HTML when
// the JSON API refuses to serve us.
func (y *YahooSource) scrapeProfilePage(ctx context.Context, ticker string) types.CompanyProfile {
	url := fmt.Sprintf("%s/quote/%s/profile", y.pageHost, ticker)

	resp, err := y.client.GET(ctx, url, api.BrowserHeaders())
	if err != nil {
		return types.SentinelProfile(ticker)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return types.SentinelProfile(ticker)
	}

	// The page title reads "Apple Inc. (AAPL)".
	heading := strings.TrimSpace(doc.Find("h1").First().Text())
	if idx := strings.LastIndex(heading, " ("); idx > 0 {
		heading = heading[:idx]
	}
	if heading == "" || heading == ticker {
		return types.SentinelProfile(ticker)
	}

	profile := types.CompanyProfile{
		Name:     heading,
		Sector:   "Unknown",
		Industry: "Unknown",
	}

	// Sector and industry live in dt/dd pairs on the profile page.
	doc.Find("dt").Each(func(_ int, dt *goquery.Selection) {
		label := strings.ToLower(strings.TrimSpace(dt.Text()))
		value := strings.TrimSpace(dt.Next().Text())
		if value == "" {
			return
		}
		switch {
		case strings.HasPrefix(label, "sector"):
			profile.Sector = value
		case strings.HasPrefix(label, "industry"):
			profile.Industry = value
		}
	})

	return profile
}
