package sentiment

import (
	"regexp"
	"testing"

	"github.com/kapu/marketpulse-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEvaluateDefaultRules(t *testing.T) {
	evaluator := NewDefaultEvaluator(zap.NewNop())

	tests := []struct {
		name      string
		text      string
		wantFired bool
		sentiment domain.Sentiment
		rule      string
		matched   []string
	}{
		{
			name:      "scam alert resolves on first ultra-negative phrase",
			text:      "SCAM ALERT! Product arrived broken and doesn't work at all.",
			wantFired: true,
			sentiment: domain.SentimentNegative,
			rule:      "ultra_negative_phrase",
			matched:   []string{"scam"},
		},
		{
			name:      "two negative words",
			text:      "This is garbage and total junk.",
			wantFired: true,
			sentiment: domain.SentimentNegative,
			rule:      "negative_words",
			matched:   []string{"garbage", "junk"},
		},
		{
			name:      "single negative word is not enough",
			text:      "Only one problem: the lid is defective.",
			wantFired: false,
		},
		{
			name:      "negative pattern",
			text:      "I would not recommend it to anyone.",
			wantFired: true,
			sentiment: domain.SentimentNegative,
			rule:      "negative_pattern",
			matched:   []string{"would not recommend"},
		},
		{
			name:      "worst purchase ever pattern",
			text:      "Worst purchase ever.",
			wantFired: true,
			sentiment: domain.SentimentNegative,
			rule:      "negative_pattern",
		},
		{
			name:      "ultra-positive phrase",
			text:      "Best purchase ever, highly recommend!",
			wantFired: true,
			sentiment: domain.SentimentPositive,
			rule:      "ultra_positive_phrase",
			matched:   []string{"best purchase ever"},
		},
		{
			name:      "star rating",
			text:      "★★★★★",
			wantFired: true,
			sentiment: domain.SentimentPositive,
			rule:      "ultra_positive_phrase",
		},
		{
			name:      "multiple positive words",
			text:      "Great product! Love it! Wonderful experience.",
			wantFired: true,
			sentiment: domain.SentimentPositive,
			rule:      "positive_words",
			matched:   []string{"love", "great", "wonderful"},
		},
		{
			name:      "single positive word is not enough",
			text:      "It is great.",
			wantFired: false,
		},
		{
			name:      "negative wins over positive",
			text:      "Absolutely perfect packaging but the whole thing is a scam.",
			wantFired: true,
			sentiment: domain.SentimentNegative,
			rule:      "ultra_negative_phrase",
		},
		{
			name:      "neutral text",
			text:      "It's okay, nothing special but works fine.",
			wantFired: false,
		},
		{
			name:      "upper case input",
			text:      "DO NOT BUY",
			wantFired: true,
			sentiment: domain.SentimentNegative,
			matched:   []string{"do not buy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, fired := evaluator.Evaluate(tt.text)
			require.Equal(t, tt.wantFired, fired)
			if !tt.wantFired {
				return
			}
			assert.Equal(t, tt.sentiment, verdict.Sentiment)
			if tt.rule != "" {
				assert.Equal(t, tt.rule, verdict.Rule)
			}
			if tt.matched != nil {
				assert.Equal(t, tt.matched, verdict.Matched)
			}
			assert.NotEmpty(t, verdict.Reason)
		})
	}
}

func TestEvaluateReasonNamesTrigger(t *testing.T) {
	evaluator := NewDefaultEvaluator(nil)

	verdict, fired := evaluator.Evaluate("This is a scam")
	require.True(t, fired)
	assert.Equal(t, "contains ultra-negative phrase: 'scam'", verdict.Reason)

	verdict, fired = evaluator.Evaluate("garbage, pure trash")
	require.True(t, fired)
	assert.Equal(t, "contains multiple negative words: garbage, trash", verdict.Reason)
}

func TestCustomRulesEvaluateInOrder(t *testing.T) {
	evaluator := NewEvaluator([]Rule{
		{Name: "first", Kind: KindPattern, Verdict: domain.SentimentPositive, Patterns: []*regexp.Regexp{regexp.MustCompile(`^ok\b`)}},
		{Name: "second", Kind: KindPhrase, Verdict: domain.SentimentNegative, Phrases: []string{"ok"}},
	}, zap.NewNop())

	verdict, fired := evaluator.Evaluate("OK then")
	require.True(t, fired)
	assert.Equal(t, "first", verdict.Rule)

	verdict, fired = evaluator.Evaluate("not ok")
	require.True(t, fired)
	assert.Equal(t, "second", verdict.Rule)
}

func TestWordsRuleDefaultsToOneMatch(t *testing.T) {
	rule := Rule{Name: "any", Kind: KindWords, Verdict: domain.SentimentNegative, Phrases: []string{"meh"}}

	matched, ok := rule.Match("meh at best")
	assert.True(t, ok)
	assert.Equal(t, []string{"meh"}, matched)
}

func TestDefaultRuleOrder(t *testing.T) {
	rules := DefaultRules()
	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{
		"ultra_negative_phrase",
		"negative_words",
		"negative_pattern",
		"ultra_positive_phrase",
		"positive_words",
	}, names)
}
