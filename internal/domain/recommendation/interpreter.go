package recommendation

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	domain "shoprec-server/internal/domain/catalog"
)

// Rule names reported on interpreted recommendations, in evaluation order.
const (
	RulePrimaryMarker = "primary-marker"
	RuleMentionScan   = "mention-scan"
	RuleBudget        = "keyword-budget"
	RulePremium       = "keyword-premium"
	RuleLargeSize     = "keyword-large"
	RuleSmallSize     = "keyword-small"
	RuleGaming        = "keyword-gaming"
	RuleDefault       = "default"

	// RuleRerank marks recommendations rebuilt from an explicit user choice.
	RuleRerank = "rerank"
)

const (
	budgetPriceThreshold  = 500.0
	premiumPriceThreshold = 800.0
	titleWordMinLength    = 3
	defaultCount          = 3
)

var primaryMarkerPattern = regexp.MustCompile(`PRIMARY_PRODUCT_ID:([a-zA-Z0-9-]+)`)

// fallbackRule pairs trigger keywords with a product predicate. Rules are
// evaluated in a fixed order and the first rule whose keywords appear in the
// response text wins.
type fallbackRule struct {
	name     string
	keywords []string
	matches  func(p domain.Product) bool
}

func fallbackRules() []fallbackRule {
	return []fallbackRule{
		{
			name:     RuleBudget,
			keywords: []string{"budget", "cheap", "affordable"},
			matches:  func(p domain.Product) bool { return p.Price < budgetPriceThreshold },
		},
		{
			name:     RulePremium,
			keywords: []string{"premium", "best", "high-end"},
			matches:  func(p domain.Product) bool { return p.Price > premiumPriceThreshold },
		},
		{
			name:     RuleLargeSize,
			keywords: []string{"large", "big", "65"},
			matches:  func(p domain.Product) bool { return strings.Contains(p.Size, "65") },
		},
		{
			name:     RuleSmallSize,
			keywords: []string{"small", "bedroom", "32"},
			matches: func(p domain.Product) bool {
				return strings.Contains(p.Size, "32") || strings.Contains(p.Size, "43")
			},
		},
		{
			name:     RuleGaming,
			keywords: []string{"gaming", "game"},
			matches: func(p domain.Product) bool {
				if strings.Contains(p.ID, "gaming") {
					return true
				}
				for _, feature := range p.Features {
					if strings.Contains(strings.ToLower(feature), "gaming") {
						return true
					}
				}
				return false
			},
		},
	}
}

// Interpreter turns a completed assistant response into a Recommendation.
// All rules are deterministic; the same text and catalog snapshot always
// produce the same result, and the result is never empty.
type Interpreter struct {
	repo  domain.Repository
	rules []fallbackRule
	log   zerolog.Logger
}

// NewInterpreter wires the interpreter with its catalog.
func NewInterpreter(repo domain.Repository, log zerolog.Logger) *Interpreter {
	return &Interpreter{
		repo:  repo,
		rules: fallbackRules(),
		log:   log.With().Str("component", "interpreter").Logger(),
	}
}

// Interpret scans the full response text. The criteria, extracted from the
// latest user message, only bias the alternatives chosen for a
// marker-selected primary.
func (i *Interpreter) Interpret(text string, crit domain.Criteria) Recommendation {
	rec := i.selectProducts(text, crit)
	rec.Confidence, rec.Intent = DeriveInsights(text)
	if ceiling, ok := domain.MaxDollarAmount(text); ok {
		rec.BudgetCeiling = ceiling
	}
	i.log.Debug().
		Str("rule", rec.Rule).
		Str("primary", rec.Primary.ID).
		Int("alternatives", len(rec.Alternatives)).
		Msg("response interpreted")
	return rec
}

func (i *Interpreter) selectProducts(text string, crit domain.Criteria) Recommendation {
	// Rule 1: sentinel marker naming the primary product id.
	if match := primaryMarkerPattern.FindStringSubmatch(text); match != nil {
		if primary, ok := i.repo.ByID(match[1]); ok {
			related := domain.RelatedByScore(i.repo.All(), primary.ID, crit)
			return Recommendation{
				Primary:      primary,
				Alternatives: capAlternatives(related),
				Rule:         RulePrimaryMarker,
			}
		}
	}

	// Rules 2-3: literal id occurrences (case sensitive), then title and
	// long-title-word occurrences (case insensitive), unioned in catalog
	// order.
	if mentioned := i.scanMentions(text); len(mentioned) > 0 {
		return Recommendation{
			Primary:      mentioned[0],
			Alternatives: capAlternatives(mentioned[1:]),
			Rule:         RuleMentionScan,
		}
	}

	// Rule 4: keyword fallbacks in fixed priority order.
	lower := strings.ToLower(text)
	for _, rule := range i.rules {
		if !containsAny(lower, rule.keywords) {
			continue
		}
		var matched []domain.Product
		for _, product := range i.repo.All() {
			if rule.matches(product) {
				matched = append(matched, product)
			}
		}
		if len(matched) == 0 {
			// A triggered rule with no catalog hits falls through to the
			// default so the recommendation is never empty.
			break
		}
		return Recommendation{
			Primary:      matched[0],
			Alternatives: capAlternatives(matched[1:]),
			Rule:         rule.name,
		}
	}

	defaults := i.repo.First(defaultCount)
	return Recommendation{
		Primary:      defaults[0],
		Alternatives: capAlternatives(defaults[1:]),
		Rule:         RuleDefault,
	}
}

// scanMentions collects products referenced in the text by id or title, in
// catalog order with id matches first.
func (i *Interpreter) scanMentions(text string) []domain.Product {
	lower := strings.ToLower(text)

	var mentioned []domain.Product
	seen := make(map[string]bool)

	for _, product := range i.repo.All() {
		if strings.Contains(text, product.ID) {
			mentioned = append(mentioned, product)
			seen[product.ID] = true
		}
	}

	for _, product := range i.repo.All() {
		if seen[product.ID] {
			continue
		}
		if titleMentioned(lower, product.Title) {
			mentioned = append(mentioned, product)
			seen[product.ID] = true
		}
	}

	return mentioned
}

func titleMentioned(lowerText, title string) bool {
	lowerTitle := strings.ToLower(title)
	if strings.Contains(lowerText, lowerTitle) {
		return true
	}
	for _, word := range strings.Fields(lowerTitle) {
		if len(word) > titleWordMinLength && strings.Contains(lowerText, word) {
			return true
		}
	}
	return false
}

func capAlternatives(products []domain.Product) []domain.Product {
	if len(products) > MaxAlternatives {
		products = products[:MaxAlternatives]
	}
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
