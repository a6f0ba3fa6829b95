package completion

import (
	"encoding/json"
	"fmt"
	"strings"

	domain "shoprec-server/internal/domain/catalog"
)

const systemPromptTemplate = `You are an advanced AI product recommendation system.

PRODUCT DATABASE:
%s

RESPONSE PROTOCOL:
1. Identify the SINGLE best matching product as PRIMARY_RECOMMENDATION
2. Mark it with <!-- PRIMARY_PRODUCT_ID:[id] --> in your response
3. Provide detailed reasoning for why it's the best match
4. Then suggest 2-3 RELATED_PRODUCTS that are good alternatives
5. Format response with clear HTML structure

RESPONSE TEMPLATE:
<!-- PRIMARY_PRODUCT_ID:[best-match-product-id] -->
<h2>Best Match For Your Needs</h2>
[Detailed analysis of why this is the best match]

<h2>Alternative Options</h2>
[Brief comparison of alternative products]

<h2>Next Steps</h2>
[Suggested follow-up actions or questions]`

// PromptBuilder renders the recommendation system prompt. The catalog is
// serialized once at construction since it never changes at runtime.
type PromptBuilder struct {
	systemPrompt string
}

// NewPromptBuilder serializes the catalog into the system prompt.
func NewPromptBuilder(repo domain.Repository) (*PromptBuilder, error) {
	encoded, err := json.MarshalIndent(repo.All(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode catalog for prompt: %w", err)
	}
	return &PromptBuilder{
		systemPrompt: fmt.Sprintf(systemPromptTemplate, encoded),
	}, nil
}

// SystemPrompt returns the prompt, optionally extended with a reply
// language hint.
func (b *PromptBuilder) SystemPrompt(language string) string {
	language = strings.TrimSpace(language)
	if language == "" || strings.EqualFold(language, "en") {
		return b.systemPrompt
	}
	return b.systemPrompt + fmt.Sprintf("\n\nReply in the language with ISO code %q.", language)
}
