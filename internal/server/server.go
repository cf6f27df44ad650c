package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/igaltal/ai-stock-analyst/internal/analyzer"
	"github.com/igaltal/ai-stock-analyst/internal/logger"
	"github.com/igaltal/ai-stock-analyst/internal/trace"
	"github.com/igaltal/ai-stock-analyst/internal/types"
)

// Analyzer is what the HTTP layer needs from the orchestrator.
type Analyzer interface {
	Analyze(ctx context.Context, ticker string) (*types.AnalysisResult, error)
}

// Server is the request-routing layer: it maps HTTP to the orchestrator and
// errors to status codes, nothing more.
type Server struct {
	analyzer Analyzer
	mux      *http.ServeMux
}

func New(a Analyzer) *Server {
	s := &Server{
		analyzer: a,
		mux:      http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /", s.handleIndex)
	s.mux.HandleFunc("POST /api/stock/analyze", s.handleAnalyze)
	return s
}

// Handler returns the routing handler with request-ID middleware applied.
func (s *Server) Handler() http.Handler {
	return requestID(s.mux)
}

// requestID tags every request with an ID for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)

		ctx, span := trace.StartSpan(r.Context(), "http-request")
		defer span.End()

		logger.Info(ctx, "Request received", "request_id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"name":    "AI Stock Analyst API",
		"version": "0.1.0",
		"status":  "running",
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Ticker string `json:"ticker"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Ticker == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No ticker symbol provided"})
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), body.Ticker)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, analyzer.ErrInvalidTicker) {
			status = http.StatusBadRequest
		}
		logger.ErrorWithErr(r.Context(), "Analysis failed", err, "ticker", body.Ticker)
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
