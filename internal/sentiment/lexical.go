package sentiment

import (
	"fmt"
	"strings"

	"github.com/igaltal/ai-stock-analyst/internal/types"
)

// Fixed keyword lists for the deterministic scorer. A word counts at most
// once per title.
var positiveWords = []string{"rise", "gain", "growth", "profit", "success", "positive", "up", "high", "record"}

var negativeWords = []string{"fall", "drop", "decline", "loss", "risk", "negative", "down", "low", "concern", "worry"}

// LexicalScore derives a sentiment and recommendation from keyword counts
// over the first five article titles. Always available, fully deterministic;
// used when no language model is configured or the model call fails.
func LexicalScore(articles []types.NewsItem) types.SentimentResult {
	if len(articles) > maxArticles {
		articles = articles[:maxArticles]
	}

	positiveCount := 0
	negativeCount := 0

	for _, article := range articles {
		title := strings.ToLower(article.Title)
		for _, word := range positiveWords {
			if strings.Contains(title, word) {
				positiveCount++
			}
		}
		for _, word := range negativeWords {
			if strings.Contains(title, word) {
				negativeCount++
			}
		}
	}

	var sentiment, recommendation, reasoning string
	switch {
	case positiveCount > negativeCount:
		sentiment = "Positive"
		recommendation = "Buy"
		reasoning = "Recent news suggests positive developments for the company."
	case negativeCount > positiveCount:
		sentiment = "Negative"
		recommendation = "Sell"
		reasoning = "Recent news indicates challenges that may affect company performance."
	default:
		sentiment = "Neutral"
		recommendation = "Hold"
		reasoning = "Mixed or neutral news coverage does not suggest a change in position."
	}

	summary := "Limited recent news available for analysis."
	if len(articles) > 0 {
		summary = fmt.Sprintf("Recent news includes: %s.", articles[0].Title)
		if len(articles) > 1 {
			summary += fmt.Sprintf(" Also: %s.", articles[1].Title)
		}
	}

	return types.SentimentResult{
		Summary:        summary,
		Sentiment:      sentiment,
		Recommendation: recommendation,
		Reasoning:      reasoning,
	}
}
