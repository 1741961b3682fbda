package service

import (
	"context"
	"fmt"
)

// LegalGuide provides legal guidance for property purchases.
type LegalGuide struct {
	llm LLM
}

// NewLegalGuide creates a new legal guide.
func NewLegalGuide(llm LLM) *LegalGuide {
	return &LegalGuide{llm: llm}
}

// Guidance returns legal guidance for buying a property of the given type in
// the given city.
func (g *LegalGuide) Guidance(ctx context.Context, propertyType, city string) (string, error) {
	if propertyType == "" {
		propertyType = "residential flat"
	}
	if city == "" {
		city = "your city"
	}

	if g.llm == nil || !g.llm.IsEnabled() {
		return g.cannedGuidance(propertyType, city), nil
	}

	system := `You are a property lawyer advising home buyers in India.

Guidelines:
- Cover the key legal checks before purchase: title verification, encumbrance
  certificate, RERA registration, approved building plan, occupancy certificate.
- Mention stamp duty and registration specifics where relevant.
- Structure the answer as numbered steps a buyer can follow.
- Close with when to involve a lawyer. This is general guidance, not legal advice.`

	userMessage := fmt.Sprintf("Provide legal guidance for buying a %s in %s, India.", propertyType, city)

	return g.llm.Complete(ctx, system, userMessage, nil)
}

func (g *LegalGuide) cannedGuidance(propertyType, city string) string {
	return fmt.Sprintf(`Key legal checks before buying a %s in %s:

1. Title verification: trace ownership for at least 30 years; ask for the mother deed and latest sale deed.
2. Encumbrance certificate: confirm the property is free of mortgages and liens for the full holding period.
3. RERA registration: for under-construction projects, verify the project and the builder on the state RERA portal.
4. Approvals: check the sanctioned building plan, land-use conversion (if applicable) and the occupancy certificate for completed buildings.
5. Dues: collect no-dues certificates for property tax, society maintenance and utility connections.
6. Stamp duty and registration: budget for your state's rates and register the sale deed at the sub-registrar office; unregistered agreements give you no title.

Engage a local property lawyer before paying any advance — this is general guidance, not legal advice.`,
		propertyType, city)
}
