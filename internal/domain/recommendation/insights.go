package recommendation

import (
	"strings"
)

// BaseConfidence applies when no intent keyword matches.
const BaseConfidence = 85

// intentRule maps trigger keywords to an intent label and confidence. The
// table is checked in order and exactly one entry applies.
type intentRule struct {
	keywords   []string
	intent     string
	confidence int
}

var intentRules = []intentRule{
	{keywords: []string{"compare", "vs"}, intent: IntentProductComparison, confidence: 90},
	{keywords: []string{"budget", "price"}, intent: IntentBudgetAnalysis, confidence: 88},
	{keywords: []string{"feature", "spec"}, intent: IntentFeatureInquiry, confidence: 92},
	{keywords: []string{"gaming"}, intent: IntentGamingSetup, confidence: 95},
}

// DeriveInsights returns the confidence score and intent label for a
// response text. The score is a fixed lookup, not a probability.
func DeriveInsights(text string) (int, string) {
	lower := strings.ToLower(text)
	for _, rule := range intentRules {
		if containsAny(lower, rule.keywords) {
			return rule.confidence, rule.intent
		}
	}
	return BaseConfidence, IntentProductSearch
}
