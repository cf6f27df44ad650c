package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/igaltal/ai-stock-analyst/internal/logger"
	"github.com/igaltal/ai-stock-analyst/internal/store"
	"github.com/igaltal/ai-stock-analyst/internal/trace"
	"github.com/igaltal/ai-stock-analyst/internal/types"
)

// maxArticles is how many articles feed one sentiment analysis.
const maxArticles = 5

// Engine converts a bounded set of news articles into a structured
// recommendation. With a language-model key configured it prompts the model
// for the SentimentResult JSON shape; on any transport or parse failure, or
// with no key at all, it falls back to the deterministic lexical scorer.
// Engine.Analyze never fails.
type Engine struct {
	cfg        *store.Config
	httpClient *http.Client
	endpoint   string
}

func NewEngine(cfg *store.Config) *Engine {
	return &Engine{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   "https://api.openai.com/v1/chat/completions",
	}
}

// Analyze produces a SentimentResult from up to five articles.
func (e *Engine) Analyze(ctx context.Context, articles []types.NewsItem) types.SentimentResult {
	if len(articles) == 0 {
		return types.SentimentResult{
			Summary:        "No recent news articles found.",
			Sentiment:      "Neutral",
			Recommendation: "Hold",
			Reasoning:      "Insufficient news data to make a recommendation.",
		}
	}

	if len(articles) > maxArticles {
		articles = articles[:maxArticles]
	}

	apiKey := e.cfg.LLMAPIKey()
	if apiKey == "" {
		logger.Debug(ctx, "No language model key configured, using lexical scorer")
		return LexicalScore(articles)
	}

	result, err := e.analyzeWithModel(ctx, apiKey, articles)
	if err != nil {
		logger.Warn(ctx, "Model analysis failed, using lexical scorer", "error", err)
		return LexicalScore(articles)
	}
	return result
}

func (e *Engine) analyzeWithModel(ctx context.Context, apiKey string, articles []types.NewsItem) (types.SentimentResult, error) {
	ctx, span := trace.StartSpan(ctx, "llm-sentiment-call")
	defer span.End()

	prompt := buildPrompt(articles)

	body := map[string]any{
		"model": e.cfg.LLM.Model,
		"messages": []map[string]string{
			{"role": "system", "content": "You are a financial analyst providing investment insights."},
			{"role": "user", "content": prompt},
		},
		"temperature": e.cfg.LLM.Temperature,
		"max_tokens":  e.cfg.LLM.MaxTokens,
	}
	bb, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(bb))
	if err != nil {
		return types.SentimentResult{}, err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return types.SentimentResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return types.SentimentResult{}, fmt.Errorf("model http %d", resp.StatusCode)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return types.SentimentResult{}, err
	}
	if len(r.Choices) == 0 {
		return types.SentimentResult{}, errors.New("no choices")
	}

	content := strings.TrimSpace(r.Choices[0].Message.Content)

	jsonStr, ok := extractJSON(content)
	if !ok {
		return types.SentimentResult{}, errors.New("no JSON object in model response")
	}

	var result types.SentimentResult
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return types.SentimentResult{}, fmt.Errorf("invalid JSON in model response: %w", err)
	}
	return result, nil
}

// buildPrompt composes the articles into a single prompt instructing the
// model to return exactly the SentimentResult JSON shape.
func buildPrompt(articles []types.NewsItem) string {
	newsText := make([]string, 0, len(articles))
	for _, article := range articles {
		newsText = append(newsText, fmt.Sprintf("Title: %s\nDescription: %s", article.Title, article.Description))
	}

	return fmt.Sprintf(`Based on the following news articles about a company, please provide:
1. A concise summary of the key points (3-4 sentences)
2. An analysis of the overall sentiment (Positive, Neutral, or Negative)
3. An investment recommendation (Buy, Hold, or Sell)
4. Brief reasoning for the recommendation

News articles:
%s

Format your response as a JSON object with the following structure:
{
    "summary": "your summary here",
    "sentiment": "Positive/Neutral/Negative",
    "recommendation": "Buy/Hold/Sell",
    "reasoning": "brief reasoning"
}`, strings.Join(newsText, "\n\n"))
}

// extractJSON returns the substring between the first '{' and the last '}',
// which is how model responses wrapped in prose are unwrapped.
func extractJSON(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return s[start : end+1], true
}
