package models

import "strings"

// Sentiment is the normalized AI evaluation of an article.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
	SentimentUnknown  Sentiment = "UNKNOWN"
)

// NormalizeSentiment maps the free-form upstream value (English or Korean,
// any case) onto a Sentiment.
func NormalizeSentiment(raw *string) Sentiment {
	if raw == nil {
		return SentimentUnknown
	}
	switch strings.ToUpper(strings.TrimSpace(*raw)) {
	case "POSITIVE", "긍정":
		return SentimentPositive
	case "NEGATIVE", "부정":
		return SentimentNegative
	case "NEUTRAL", "중립":
		return SentimentNeutral
	default:
		return SentimentUnknown
	}
}

// Label is the Korean display label shown on the sentiment badge.
func (s Sentiment) Label() string {
	switch s {
	case SentimentPositive:
		return "긍정"
	case SentimentNegative:
		return "부정"
	case SentimentNeutral:
		return "중립"
	default:
		return "분석 없음"
	}
}

// Tone is a short lowercase token used to style the badge.
func (s Sentiment) Tone() string {
	return strings.ToLower(string(s))
}
