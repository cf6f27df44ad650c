package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/igaltal/ai-stock-analyst/internal/analyzer"
	"github.com/igaltal/ai-stock-analyst/internal/logger"
	"github.com/igaltal/ai-stock-analyst/internal/news"
	"github.com/igaltal/ai-stock-analyst/internal/provider"
	"github.com/igaltal/ai-stock-analyst/internal/sentiment"
	"github.com/igaltal/ai-stock-analyst/internal/store"
	"github.com/igaltal/ai-stock-analyst/internal/trace"
)

// initializeSystem loads environment variables and initializes logger and tracer
func initializeSystem() error {
	_ = godotenv.Load()

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// buildAnalyzer wires the provider chain, news resolvers and sentiment engine
// into one orchestrator.
func buildAnalyzer(cfg *store.Config) *analyzer.Analyzer {
	resolvers := []provider.NewsResolver{news.NewResolver(cfg)}
	if cfg.News.ScrapeFallback {
		resolvers = append(resolvers, news.NewScraper(time.Duration(cfg.News.TimeoutSeconds)*time.Second))
	}

	manager := provider.NewManager(cfg, resolvers...)
	engine := sentiment.NewEngine(cfg)

	return analyzer.New(cfg, manager, engine)
}
