package domain

import "strings"

// Sentiment is the overall review sentiment label.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// Normalize returns s coerced into the closed set and whether the raw value
// had to be replaced by the default (neutral).
func (s Sentiment) Normalize() (Sentiment, bool) {
	normalized := Sentiment(strings.ToLower(strings.TrimSpace(string(s))))
	if normalized.Valid() {
		return normalized, false
	}
	return SentimentNeutral, true
}

// Level is the shared low/medium/high scale used for frequency, impact and
// confidence.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}

// Normalize returns l coerced into the closed set and whether the raw value
// had to be replaced by the default (medium).
func (l Level) Normalize() (Level, bool) {
	normalized := Level(strings.ToLower(strings.TrimSpace(string(l))))
	if normalized.Valid() {
		return normalized, false
	}
	return LevelMedium, true
}

// Source records where a result came from.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
	SourceRule     Source = "rule"
	SourceCache    Source = "cache"
)

// Coercion describes one enum value that was replaced during normalization.
type Coercion struct {
	Field string
	Raw   string
	Value string
}
