package service

import (
	"context"
	"fmt"

	"homeadvisor/internal/model"
)

// MarketingGenerator writes persuasive listing copy for a property.
type MarketingGenerator struct {
	llm LLM
}

// NewMarketingGenerator creates a new marketing content generator.
func NewMarketingGenerator(llm LLM) *MarketingGenerator {
	return &MarketingGenerator{llm: llm}
}

// Describe generates a marketing description for the property.
func (g *MarketingGenerator) Describe(ctx context.Context, property *model.PropertyDetails) (string, error) {
	if g.llm == nil || !g.llm.IsEnabled() {
		return g.cannedDescription(property), nil
	}

	system := `You are a skilled real estate copywriter in India. Write a compelling,
emotionally engaging marketing description for a top-tier property listing.

Instructions:
- Begin with an eye-catching headline.
- Describe layout and ambience (light, ventilation, vibe).
- Highlight standout features: balcony, modular kitchen, nearby schools or tech parks.
- Recommend ideal buyers (professionals, families, retirees).
- End with a soft call to action like "Book your visit today".
- Write in paragraph format (100-150 words), warm and aspirational tone.`

	userMessage := fmt.Sprintf(`Create a marketing description for the following property:

• Title: %s
• Location: %s
• Asking Price: %s
• Size: %d sq. ft
• Bedrooms: %d
• Bathrooms: %d
• Original Description: %s`,
		property.Name, property.Location, property.Price,
		property.AreaSqFt, property.Bedrooms, property.Bathrooms,
		property.Description)

	return g.llm.Complete(ctx, system, userMessage, nil)
}

func (g *MarketingGenerator) cannedDescription(property *model.PropertyDetails) string {
	return fmt.Sprintf(
		"Welcome Home to %s — a %d BHK residence in the heart of %s. "+
			"Spread across %d sq ft, the home pairs bright, well-ventilated living spaces with a practical layout that works as well for busy professionals as for growing families. "+
			"Priced at %s, it sits close to everyday conveniences while keeping the neighbourhood calm. "+
			"Homes like this rarely stay on the market long — book your visit today.",
		property.Name, property.Bedrooms, property.Location,
		property.AreaSqFt, property.Price)
}
