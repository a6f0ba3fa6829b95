package recommendation

import "testing"

func TestDeriveInsights(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantConfidence int
		wantIntent     string
	}{
		{name: "default", text: "here is a nice option", wantConfidence: 85, wantIntent: IntentProductSearch},
		{name: "comparison", text: "let me compare the two", wantConfidence: 90, wantIntent: IntentProductComparison},
		{name: "comparison via vs", text: "Alpha vs Beta", wantConfidence: 90, wantIntent: IntentProductComparison},
		{name: "budget", text: "within your price range", wantConfidence: 88, wantIntent: IntentBudgetAnalysis},
		{name: "features", text: "the spec sheet says", wantConfidence: 92, wantIntent: IntentFeatureInquiry},
		{name: "gaming", text: "a gaming powerhouse", wantConfidence: 95, wantIntent: IntentGamingSetup},
		{name: "first matching entry wins", text: "compare the gaming price", wantConfidence: 90, wantIntent: IntentProductComparison},
		{name: "case insensitive", text: "COMPARE THEM", wantConfidence: 90, wantIntent: IntentProductComparison},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confidence, intent := DeriveInsights(tt.text)
			if confidence != tt.wantConfidence {
				t.Errorf("confidence = %d, want %d", confidence, tt.wantConfidence)
			}
			if intent != tt.wantIntent {
				t.Errorf("intent = %q, want %q", intent, tt.wantIntent)
			}
		})
	}
}
