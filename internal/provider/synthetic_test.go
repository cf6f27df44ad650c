package provider

import (
	"context"
	"strings"
	"testing"
)

func TestSyntheticStockData(t *testing.T) {
	s := NewSyntheticSource()
	ctx := context.Background()

	series := s.StockData(ctx, "ZZZZ", "1mo")

	if len(series) < 26 {
		t.Fatalf("Expected at least 26 price points for 1mo, got %d", len(series))
	}

	for i := 1; i < len(series); i++ {
		if !series[i].Date.After(series[i-1].Date) {
			t.Errorf("Expected ascending dates, got %v before %v at index %d",
				series[i-1].Date, series[i].Date, i)
		}
	}

	for i, p := range series {
		if p.Close <= 0 {
			t.Errorf("Expected positive close at index %d, got %f", i, p.Close)
		}
		if p.High < p.Close || p.Low > p.Close {
			t.Errorf("Expected low <= close <= high at index %d, got %f/%f/%f",
				i, p.Low, p.Close, p.High)
		}
		if p.Volume <= 0 {
			t.Errorf("Expected positive volume at index %d, got %d", i, p.Volume)
		}
	}
}

func TestSyntheticStockDataLongerPeriod(t *testing.T) {
	s := NewSyntheticSource()

	short := s.StockData(context.Background(), "ZZZZ", "1mo")
	long := s.StockData(context.Background(), "ZZZZ", "3mo")

	if len(long) <= len(short) {
		t.Errorf("Expected 3mo series (%d points) to be longer than 1mo (%d points)",
			len(long), len(short))
	}
}

func TestSyntheticCompanyInfo(t *testing.T) {
	s := NewSyntheticSource()

	info := s.CompanyInfo(context.Background(), "ZZZZ")

	if info.Name != "ZZZZ Corporation" {
		t.Errorf("Expected name 'ZZZZ Corporation', got %q", info.Name)
	}
	if info.IsSentinel("ZZZZ") {
		t.Error("Expected synthetic profile to not be the sentinel")
	}
	if info.Website != "https://www.zzzz.com" {
		t.Errorf("Expected templated website, got %q", info.Website)
	}
	if info.Employees < 1000 || info.Employees > 100000 {
		t.Errorf("Expected employees in [1000, 100000], got %d", info.Employees)
	}
	if info.Sector == "" || info.Industry == "" || info.Country == "" {
		t.Error("Expected sector, industry and country to be populated")
	}
}

func TestSyntheticNews(t *testing.T) {
	s := NewSyntheticSource()

	items := s.News(context.Background(), "ZZZZ", 7)

	if len(items) != 5 {
		t.Fatalf("Expected 5 synthetic articles, got %d", len(items))
	}

	for i, item := range items {
		if !strings.Contains(item.Title, "ZZZZ") {
			t.Errorf("Expected title %d to mention the ticker, got %q", i, item.Title)
		}
		if item.Source == "" {
			t.Errorf("Expected source on article %d", i)
		}
		if item.PublishedAt == "" {
			t.Errorf("Expected published date on article %d", i)
		}
	}
}

func TestSyntheticNewsZeroDays(t *testing.T) {
	s := NewSyntheticSource()

	// A non-positive window must not panic, it falls back to a week.
	items := s.News(context.Background(), "ZZZZ", 0)
	if len(items) != 5 {
		t.Errorf("Expected 5 articles for zero-day window, got %d", len(items))
	}
}
