package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/igaltal/ai-stock-analyst/internal/analyzer"
	"github.com/igaltal/ai-stock-analyst/internal/types"
)

type stubAnalyzer struct {
	result *types.AnalysisResult
	err    error
	ticker string
}

func (a *stubAnalyzer) Analyze(ctx context.Context, ticker string) (*types.AnalysisResult, error) {
	a.ticker = ticker
	if a.err != nil {
		return nil, a.err
	}
	return a.result, nil
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestIndexRoute(t *testing.T) {
	s := New(&stubAnalyzer{})

	w := doRequest(t, s, http.MethodGet, "/", "")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected JSON body, got %v", err)
	}
	if body["name"] != "AI Stock Analyst API" {
		t.Errorf("Expected API name in index, got %q", body["name"])
	}
	if body["status"] != "running" {
		t.Errorf("Expected running status, got %q", body["status"])
	}
}

func TestAnalyzeRoute(t *testing.T) {
	price := 110.0
	stub := &stubAnalyzer{result: &types.AnalysisResult{
		Ticker:       "AAPL",
		CompanyName:  "Apple Inc.",
		CurrentPrice: &price,
	}}
	s := New(stub)

	w := doRequest(t, s, http.MethodPost, "/api/stock/analyze", `{"ticker":"AAPL"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if stub.ticker != "AAPL" {
		t.Errorf("Expected analyzer called with AAPL, got %q", stub.ticker)
	}

	var result types.AnalysisResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Expected JSON result, got %v", err)
	}
	if result.CompanyName != "Apple Inc." {
		t.Errorf("Expected company name in response, got %q", result.CompanyName)
	}
	if result.CurrentPrice == nil || *result.CurrentPrice != 110.0 {
		t.Errorf("Expected current price 110, got %v", result.CurrentPrice)
	}
}

func TestAnalyzeRouteMissingTicker(t *testing.T) {
	s := New(&stubAnalyzer{})

	for _, body := range []string{`{}`, `{"ticker":""}`, `not json`, ``} {
		w := doRequest(t, s, http.MethodPost, "/api/stock/analyze", body)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for body %q, got %d", body, w.Code)
			continue
		}

		var resp map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Expected JSON error body, got %v", err)
		}
		if resp["error"] != "No ticker symbol provided" {
			t.Errorf("Unexpected error message: %q", resp["error"])
		}
	}
}

func TestAnalyzeRouteInvalidTicker(t *testing.T) {
	stub := &stubAnalyzer{err: analyzer.ErrInvalidTicker}
	s := New(stub)

	w := doRequest(t, s, http.MethodPost, "/api/stock/analyze", `{"ticker":"BAD TICKER"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for invalid ticker, got %d", w.Code)
	}
}

func TestAnalyzeRouteInternalError(t *testing.T) {
	stub := &stubAnalyzer{err: errors.New("boom")}
	s := New(stub)

	w := doRequest(t, s, http.MethodPost, "/api/stock/analyze", `{"ticker":"AAPL"}`)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 for internal error, got %d", w.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	s := New(&stubAnalyzer{})

	w := doRequest(t, s, http.MethodGet, "/", "")
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected a generated X-Request-ID header")
	}

	// A caller-supplied ID must be echoed back.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Header().Get("X-Request-ID") != "abc-123" {
		t.Errorf("Expected echoed request ID, got %q", w.Header().Get("X-Request-ID"))
	}
}
