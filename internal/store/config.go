package store

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Analysis struct {
		Period      string `yaml:"period"`       // default price history period: 1mo or 3mo
		NewsDays    int    `yaml:"news_days"`    // trailing news window in days
		MaxArticles int    `yaml:"max_articles"` // articles retained for sentiment
	} `yaml:"analysis"`
	Providers struct {
		Yahoo struct {
			MinIntervalMs  int `yaml:"min_interval_ms"`
			TimeoutSeconds int `yaml:"timeout_seconds"`
		} `yaml:"yahoo"`
		AlphaVantage struct {
			APIKeyEnv      string `yaml:"api_key_env"`
			TimeoutSeconds int    `yaml:"timeout_seconds"`
		} `yaml:"alpha_vantage"`
	} `yaml:"providers"`
	News struct {
		APIKeyEnv      string `yaml:"api_key_env"`
		PageSize       int    `yaml:"page_size"`
		ScrapeFallback bool   `yaml:"scrape_fallback"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"news"`
	LLM struct {
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
		APIKeyEnv   string  `yaml:"api_key_env"`
	} `yaml:"llm"`
}

func (c *Config) Validate() error {
	if c.Analysis.Period != "1mo" && c.Analysis.Period != "3mo" {
		return fmt.Errorf("invalid analysis.period '%s': must be '1mo' or '3mo'", c.Analysis.Period)
	}
	if c.Analysis.NewsDays <= 0 {
		return fmt.Errorf("analysis.news_days must be positive, got %d", c.Analysis.NewsDays)
	}
	if c.Analysis.MaxArticles <= 0 || c.Analysis.MaxArticles > 10 {
		return fmt.Errorf("analysis.max_articles must be between 1-10, got %d", c.Analysis.MaxArticles)
	}
	if c.Providers.Yahoo.MinIntervalMs < 0 {
		return fmt.Errorf("providers.yahoo.min_interval_ms cannot be negative, got %d", c.Providers.Yahoo.MinIntervalMs)
	}
	return nil
}

// LoadConfig reads the YAML config at path. A missing file is not an error;
// defaults are applied either way and environment variables override keys
// where noted.
func LoadConfig(path string) (*Config, error) {
	var c Config

	b, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if len(b) > 0 {
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	}

	applyDefaults(&c)

	if v := os.Getenv("ANALYST_ADDR"); v != "" {
		c.Server.Addr = v
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

func applyDefaults(c *Config) {
	if c.Server.Addr == "" {
		c.Server.Addr = ":5000"
	}
	if c.Analysis.Period == "" {
		c.Analysis.Period = "1mo"
	}
	if c.Analysis.NewsDays == 0 {
		c.Analysis.NewsDays = 7
	}
	if c.Analysis.MaxArticles == 0 {
		c.Analysis.MaxArticles = 5
	}
	if c.Providers.Yahoo.MinIntervalMs == 0 {
		c.Providers.Yahoo.MinIntervalMs = 1500
	}
	if c.Providers.Yahoo.TimeoutSeconds == 0 {
		c.Providers.Yahoo.TimeoutSeconds = 15
	}
	if c.Providers.AlphaVantage.APIKeyEnv == "" {
		c.Providers.AlphaVantage.APIKeyEnv = "ALPHA_VANTAGE_API_KEY"
	}
	if c.Providers.AlphaVantage.TimeoutSeconds == 0 {
		c.Providers.AlphaVantage.TimeoutSeconds = 15
	}
	if c.News.APIKeyEnv == "" {
		c.News.APIKeyEnv = "NEWS_API_KEY"
	}
	if c.News.PageSize == 0 {
		c.News.PageSize = 10
	}
	if c.News.TimeoutSeconds == 0 {
		c.News.TimeoutSeconds = 15
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-3.5-turbo"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 500
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.5
	}
	if c.LLM.APIKeyEnv == "" {
		c.LLM.APIKeyEnv = "OPENAI_API_KEY"
	}
}

// NewsAPIKey returns the configured news-service API key, empty when unset.
func (c *Config) NewsAPIKey() string { return os.Getenv(c.News.APIKeyEnv) }

// AlphaVantageAPIKey returns the secondary provider key, empty when unset.
func (c *Config) AlphaVantageAPIKey() string { return os.Getenv(c.Providers.AlphaVantage.APIKeyEnv) }

// LLMAPIKey returns the language-model key, empty when unset.
func (c *Config) LLMAPIKey() string { return os.Getenv(c.LLM.APIKeyEnv) }

// ProviderTimeout converts a per-provider timeout in seconds to a Duration.
func (c *Config) ProviderTimeout(seconds int) time.Duration {
	if seconds <= 0 {
		seconds = 15
	}
	return time.Duration(seconds) * time.Second
}

// YahooMinInterval returns the minimum spacing between Primary provider calls.
func (c *Config) YahooMinInterval() time.Duration {
	return time.Duration(c.Providers.Yahoo.MinIntervalMs) * time.Millisecond
}
