package sentiment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kapu/marketpulse-go/internal/domain"
)

// MatchKind selects how a Rule tests the lower-cased review text.
type MatchKind string

const (
	// KindPhrase fires when any phrase occurs as a substring.
	KindPhrase MatchKind = "phrase"
	// KindWords fires when at least MinMatches distinct words occur as substrings.
	KindWords MatchKind = "words"
	// KindPattern fires when any regular expression matches.
	KindPattern MatchKind = "pattern"
)

// Rule is one declarative override: if the text matches, the sentiment is
// forced to Verdict and the model is never consulted.
type Rule struct {
	Name       string
	Kind       MatchKind
	Verdict    domain.Sentiment
	Phrases    []string
	Patterns   []*regexp.Regexp
	MinMatches int
}

// Match tests the rule against already lower-cased text and returns the
// phrases, words or patterns that triggered it.
func (r Rule) Match(lowered string) ([]string, bool) {
	switch r.Kind {
	case KindPhrase:
		for _, phrase := range r.Phrases {
			if strings.Contains(lowered, phrase) {
				return []string{phrase}, true
			}
		}
	case KindWords:
		threshold := r.MinMatches
		if threshold <= 0 {
			threshold = 1
		}
		var found []string
		for _, word := range r.Phrases {
			if strings.Contains(lowered, word) {
				found = append(found, word)
			}
		}
		if len(found) >= threshold {
			return found, true
		}
	case KindPattern:
		for _, pattern := range r.Patterns {
			if pattern.MatchString(lowered) {
				return []string{pattern.String()}, true
			}
		}
	}
	return nil, false
}

// Describe renders the human-readable reason for a match.
func (r Rule) Describe(matched []string) string {
	switch r.Kind {
	case KindWords:
		return fmt.Sprintf("contains multiple %s words: %s", r.Verdict, strings.Join(matched, ", "))
	case KindPattern:
		return fmt.Sprintf("matches %s pattern: '%s'", r.Verdict, strings.Join(matched, ", "))
	default:
		return fmt.Sprintf("contains ultra-%s phrase: '%s'", r.Verdict, strings.Join(matched, ", "))
	}
}

// DefaultRules returns the override rules in evaluation order. Negative rules
// come first so text that is both glowing and alarming resolves negative.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    "ultra_negative_phrase",
			Kind:    KindPhrase,
			Verdict: domain.SentimentNegative,
			Phrases: []string{
				"scam", "fraud", "fraudulent", "scam alert",
				"broken", "arrived broken", "doesn't work", "not working",
				"waste of money", "waste of $", "complete waste",
				"do not buy", "never buy", "avoid this", "terrible product",
				"worst product", "awful product", "horrible product",
				"refused refund", "no refund", "won't refund",
				"false advertising", "misleading", "lied about",
				"dangerous", "unsafe", "caught fire", "exploded",
				"toxic", "poisonous", "recall", "lawsuit", "suing",
				"ripoff", "cheat", "cheated", "stole my money",
				"counterfeit", "fake", "knockoff", "not genuine",
			},
		},
		{
			Name:       "negative_words",
			Kind:       KindWords,
			Verdict:    domain.SentimentNegative,
			MinMatches: 2,
			Phrases: []string{
				"scam", "fraud", "broken", "waste", "terrible", "awful",
				"horrible", "worst", "garbage", "trash", "junk", "ripoff",
				"cheat", "dangerous", "unsafe", "defective", "faulty",
			},
		},
		{
			Name:    "negative_pattern",
			Kind:    KindPattern,
			Verdict: domain.SentimentNegative,
			Patterns: compile(
				`doesn't work at all`,
				`complete waste`,
				`never buying again`,
				`worst purchase ever`,
				`product arrived broken`,
				`customer service refused`,
				`would not recommend`,
			),
		},
		{
			Name:    "ultra_positive_phrase",
			Kind:    KindPhrase,
			Verdict: domain.SentimentPositive,
			Phrases: []string{
				"absolutely perfect", "best purchase ever", "excellent quality",
				"perfect purchase", "best product ever", "flawless",
				"10/10", "100/100", "five stars", "★★★★★",
				"would buy again", "highly recommend", "definitely recommend",
				"love this product", "amazing product", "fantastic product",
				"outstanding quality", "superb quality", "exceptional",
			},
		},
		{
			Name:       "positive_words",
			Kind:       KindWords,
			Verdict:    domain.SentimentPositive,
			MinMatches: 2,
			Phrases: []string{
				"perfect", "excellent", "best", "amazing", "fantastic",
				"outstanding", "superb", "exceptional", "flawless",
				"love", "great", "wonderful", "awesome", "phenomenal",
			},
		},
	}
}

func compile(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}
