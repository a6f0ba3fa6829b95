package catalog

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Criteria captures the shopping constraints extracted from the latest user
// message. It only biases the similarity scoring and is never persisted.
type Criteria struct {
	// PriceCeiling is the largest dollar amount mentioned; zero means
	// unconstrained.
	PriceCeiling float64
	Features     []string
	Brand        string
}

var dollarPattern = regexp.MustCompile(`\$(\d+)`)

// Feature and brand vocabularies the extractor recognizes.
var (
	knownFeatures = []string{"4K", "HDR", "Smart", "Gaming", "OLED"}
	knownBrands   = []string{"Samsung", "LG", "Sony", "TCL", "Hisense"}
)

// Similarity scoring weights.
const (
	priceProximityCap  = 50.0
	featureMatchWeight = 20.0
	brandMatchWeight   = 30.0
	relatedLimit       = 3
)

// ExtractCriteria derives Criteria from a user message.
func ExtractCriteria(message string) Criteria {
	lower := strings.ToLower(message)

	crit := Criteria{}
	if ceiling, ok := MaxDollarAmount(message); ok {
		crit.PriceCeiling = ceiling
	}

	for _, feature := range knownFeatures {
		if strings.Contains(lower, strings.ToLower(feature)) {
			crit.Features = append(crit.Features, feature)
		}
	}

	for _, brand := range knownBrands {
		if strings.Contains(lower, strings.ToLower(brand)) {
			crit.Brand = brand
			break
		}
	}

	return crit
}

// MaxDollarAmount returns the largest $<digits> token in the text.
func MaxDollarAmount(text string) (float64, bool) {
	matches := dollarPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return 0, false
	}

	max := 0.0
	for _, match := range matches {
		amount, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		if amount > max {
			max = amount
		}
	}
	return max, max > 0
}

// RelatedByScore ranks the catalog against the primary product using the
// criteria-weighted similarity score and returns the top matches, primary
// excluded. The sort is stable so ties keep catalog order.
func RelatedByScore(products []Product, primaryID string, crit Criteria) []Product {
	candidates := make([]Product, 0, len(products))
	for _, product := range products {
		if product.ID != primaryID {
			candidates = append(candidates, product)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return similarityScore(candidates[i], crit) > similarityScore(candidates[j], crit)
	})

	if len(candidates) > relatedLimit {
		candidates = candidates[:relatedLimit]
	}
	return candidates
}

func similarityScore(product Product, crit Criteria) float64 {
	score := 0.0

	if crit.PriceCeiling > 0 {
		distance := product.Price - crit.PriceCeiling
		if distance < 0 {
			distance = -distance
		}
		if proximity := priceProximityCap - distance; proximity > 0 {
			score += proximity
		}
	}

	for _, wanted := range crit.Features {
		for _, feature := range product.Features {
			if strings.Contains(strings.ToLower(feature), strings.ToLower(wanted)) {
				score += featureMatchWeight
				break
			}
		}
	}

	if crit.Brand != "" && strings.EqualFold(product.Brand, crit.Brand) {
		score += brandMatchWeight
	}

	return score
}
