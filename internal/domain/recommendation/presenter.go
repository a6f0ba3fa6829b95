package recommendation

import (
	domain "shoprec-server/internal/domain/catalog"
)

// Promote makes the alternative with the given id the new primary. The
// previous primary is prepended to the alternatives, which stay capped at
// MaxAlternatives. Unknown ids leave the recommendation unchanged.
func Promote(rec Recommendation, alternativeID string) (Recommendation, bool) {
	chosenIdx := -1
	for idx, alt := range rec.Alternatives {
		if alt.ID == alternativeID {
			chosenIdx = idx
			break
		}
	}
	if chosenIdx < 0 {
		return rec, false
	}

	alternatives := make([]domain.Product, 0, len(rec.Alternatives))
	alternatives = append(alternatives, rec.Primary)
	for idx, alt := range rec.Alternatives {
		if idx != chosenIdx {
			alternatives = append(alternatives, alt)
		}
	}

	rec.Primary = rec.Alternatives[chosenIdx]
	rec.Alternatives = capAlternatives(alternatives)
	return rec, true
}

// Default builds the recommendation shown before any conversation exists:
// the first n catalog entries with base insights.
func Default(repo domain.Repository, n int) Recommendation {
	products := repo.First(n)
	rec := Recommendation{
		Confidence: BaseConfidence,
		Intent:     IntentProductSearch,
		Rule:       RuleDefault,
	}
	if len(products) > 0 {
		rec.Primary = products[0]
		rec.Alternatives = capAlternatives(products[1:])
	}
	return rec
}
