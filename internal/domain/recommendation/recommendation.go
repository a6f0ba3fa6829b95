package recommendation

import (
	domain "shoprec-server/internal/domain/catalog"
)

// Intent labels derived from the assistant response text.
const (
	IntentProductSearch     = "Product Search"
	IntentProductComparison = "Product Comparison"
	IntentBudgetAnalysis    = "Budget Analysis"
	IntentFeatureInquiry    = "Feature Inquiry"
	IntentGamingSetup       = "Gaming Setup"
)

// MaxAlternatives caps the secondary suggestions shown next to the primary.
const MaxAlternatives = 2

// Recommendation is the structured result of interpreting one completed
// assistant turn. It fully replaces any previous value.
type Recommendation struct {
	Primary      domain.Product   `json:"primary"`
	Alternatives []domain.Product `json:"alternatives"`
	// Confidence is a deterministic 0-100 heuristic, not a probability.
	Confidence int    `json:"confidence"`
	Intent     string `json:"intent"`
	// Rule names the interpreter rule that selected the products.
	Rule string `json:"rule"`
	// BudgetCeiling is the largest dollar amount in the response text;
	// zero means unconstrained.
	BudgetCeiling float64 `json:"budgetCeiling,omitempty"`
}

// ProductIDs returns the primary and alternative ids in display order.
func (r Recommendation) ProductIDs() []string {
	ids := make([]string, 0, 1+len(r.Alternatives))
	ids = append(ids, r.Primary.ID)
	for _, alt := range r.Alternatives {
		ids = append(ids, alt.ID)
	}
	return ids
}
