package sentiment

import (
	"strings"

	"github.com/kapu/marketpulse-go/internal/domain"
	"go.uber.org/zap"
)

// Verdict is a forced sentiment decision.
type Verdict struct {
	Sentiment domain.Sentiment
	Rule      string
	Reason    string
	Matched   []string
}

// Evaluator runs an ordered rule list; the first matching rule wins.
type Evaluator struct {
	rules  []Rule
	logger *zap.Logger
}

func NewEvaluator(rules []Rule, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{rules: rules, logger: logger}
}

// NewDefaultEvaluator builds an evaluator over DefaultRules.
func NewDefaultEvaluator(logger *zap.Logger) *Evaluator {
	return NewEvaluator(DefaultRules(), logger)
}

// Evaluate returns the forced verdict for text, or false when no rule fires
// and the caller has to consult the model.
func (e *Evaluator) Evaluate(text string) (Verdict, bool) {
	lowered := strings.ToLower(text)

	for _, rule := range e.rules {
		matched, ok := rule.Match(lowered)
		if !ok {
			continue
		}

		verdict := Verdict{
			Sentiment: rule.Verdict,
			Rule:      rule.Name,
			Reason:    rule.Describe(matched),
			Matched:   matched,
		}
		e.logger.Info("Forcing review sentiment",
			zap.String("sentiment", string(verdict.Sentiment)),
			zap.String("rule", verdict.Rule),
			zap.String("reason", verdict.Reason),
		)
		return verdict, true
	}

	return Verdict{}, false
}
