package sentiment

import (
	"testing"

	"github.com/igaltal/ai-stock-analyst/internal/types"
)

func TestLexicalScorePositive(t *testing.T) {
	articles := []types.NewsItem{
		{Title: "Company posts record growth and strong profits"},
		{Title: "Shares rise on success of new product"},
	}

	result := LexicalScore(articles)

	if result.Sentiment != "Positive" {
		t.Errorf("Expected Positive sentiment, got %s", result.Sentiment)
	}
	if result.Recommendation != "Buy" {
		t.Errorf("Expected Buy recommendation, got %s", result.Recommendation)
	}
	if result.Reasoning != "Recent news suggests positive developments for the company." {
		t.Errorf("Unexpected reasoning: %s", result.Reasoning)
	}
}

func TestLexicalScoreNegative(t *testing.T) {
	articles := []types.NewsItem{
		{Title: "Declining sales raise concern among investors"},
		{Title: "Company reports heavy losses as shares drop"},
	}

	result := LexicalScore(articles)

	if result.Sentiment != "Negative" {
		t.Errorf("Expected Negative sentiment, got %s", result.Sentiment)
	}
	if result.Recommendation != "Sell" {
		t.Errorf("Expected Sell recommendation, got %s", result.Recommendation)
	}
	if result.Reasoning != "Recent news indicates challenges that may affect company performance." {
		t.Errorf("Unexpected reasoning: %s", result.Reasoning)
	}
}

func TestLexicalScoreNeutral(t *testing.T) {
	articles := []types.NewsItem{
		{Title: "Company holds annual shareholder meeting"},
	}

	result := LexicalScore(articles)

	if result.Sentiment != "Neutral" {
		t.Errorf("Expected Neutral sentiment, got %s", result.Sentiment)
	}
	if result.Recommendation != "Hold" {
		t.Errorf("Expected Hold recommendation, got %s", result.Recommendation)
	}
	if result.Reasoning != "Mixed or neutral news coverage does not suggest a change in position." {
		t.Errorf("Unexpected reasoning: %s", result.Reasoning)
	}
}

func TestLexicalScoreTie(t *testing.T) {
	// Equal positive and negative counts resolve to Neutral/Hold.
	articles := []types.NewsItem{
		{Title: "Shares rise then fall in volatile session"},
	}

	result := LexicalScore(articles)

	if result.Sentiment != "Neutral" || result.Recommendation != "Hold" {
		t.Errorf("Expected Neutral/Hold on tie, got %s/%s", result.Sentiment, result.Recommendation)
	}
}

func TestLexicalScoreSummary(t *testing.T) {
	articles := []types.NewsItem{
		{Title: "First headline"},
		{Title: "Second headline"},
		{Title: "Third headline"},
	}

	result := LexicalScore(articles)

	want := "Recent news includes: First headline. Also: Second headline."
	if result.Summary != want {
		t.Errorf("Expected summary %q, got %q", want, result.Summary)
	}
}

func TestLexicalScoreSummarySingleArticle(t *testing.T) {
	result := LexicalScore([]types.NewsItem{{Title: "Only headline"}})

	if result.Summary != "Recent news includes: Only headline." {
		t.Errorf("Unexpected summary: %q", result.Summary)
	}
}

func TestLexicalScoreCapsAtFiveArticles(t *testing.T) {
	// Only the first five titles count; the sixth is pure positive noise that
	// must not affect the result.
	articles := []types.NewsItem{
		{Title: "a"}, {Title: "b"}, {Title: "c"}, {Title: "d"}, {Title: "e"},
		{Title: "record growth record profits record success rise gain up high"},
	}

	result := LexicalScore(articles)

	if result.Sentiment != "Neutral" {
		t.Errorf("Expected sixth article to be ignored, got %s", result.Sentiment)
	}
}

func TestLexicalScoreSubstringMatch(t *testing.T) {
	// Keyword matching is substring-based: "uproar" contains "up".
	result := LexicalScore([]types.NewsItem{{Title: "Uproar at annual meeting"}})

	if result.Sentiment != "Positive" {
		t.Errorf("Expected substring match to count, got %s", result.Sentiment)
	}
}
