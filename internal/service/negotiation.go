package service

import (
	"context"
	"fmt"
	"strings"

	"homeadvisor/internal/model"
	"homeadvisor/internal/utils"
)

// generalAdviceKeywords mark a negotiation query as a request for general
// tactics rather than a simulated exchange over a specific property.
var generalAdviceKeywords = []string{
	"tactic", "how", "strategy", "respond", "negotiate if", "advice",
	"reasonable offer", "try to bring", "10%", "room to negotiate",
}

// NegotiationAssistant simulates seller negotiations and provides general
// negotiation tactics.
type NegotiationAssistant struct {
	llm LLM
}

// NewNegotiationAssistant creates a new negotiation assistant.
func NewNegotiationAssistant(llm LLM) *NegotiationAssistant {
	return &NegotiationAssistant{llm: llm}
}

// IsGeneralAdvice reports whether the query asks for tactics rather than a
// concrete counteroffer simulation.
func (n *NegotiationAssistant) IsGeneralAdvice(query string) bool {
	lower := strings.ToLower(query)
	for _, kw := range generalAdviceKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// GeneralAdvice answers a free-form negotiation question.
func (n *NegotiationAssistant) GeneralAdvice(ctx context.Context, query string) (string, error) {
	system := `You are an experienced real estate negotiation coach in India.
Give practical, specific negotiation advice for home buyers. Reference common
Indian market practices (token advance, registration timing, inclusions like
parking or modular kitchen). Keep the answer under 250 words.`

	if n.llm == nil || !n.llm.IsEnabled() {
		return n.cannedGeneralAdvice(), nil
	}
	return n.llm.Complete(ctx, system, query, nil)
}

// Simulate plays out a seller's response to the buyer's target price for a
// specific property, using earlier turns and the buyer's selection context.
func (n *NegotiationAssistant) Simulate(ctx context.Context, property *model.PropertyDetails, targetPrice, buyerContext string, history []model.ChatMessage) (string, error) {
	if n.llm == nil || !n.llm.IsEnabled() {
		return n.cannedSimulation(property, targetPrice), nil
	}

	system := `You are simulating a property seller in an Indian real estate
negotiation. Respond in character as the seller: react to the buyer's offer,
justify your asking price with the property's strengths, and either hold firm,
counter, or concede a little. Be realistic about typical negotiation margins
(3-8% off asking). End with a concrete counteroffer or acceptance.`

	userMessage := fmt.Sprintf(`Property under negotiation:
• Name: %s
• Location: %s
• Asking Price: %s
• Size: %d BHK, %d sq ft

Buyer's target price: %s
%s`,
		property.Name, property.Location, property.Price,
		property.Bedrooms, property.AreaSqFt, targetPrice,
		formatBuyerContext(buyerContext))

	return n.llm.Complete(ctx, system, userMessage, history)
}

func formatBuyerContext(buyerContext string) string {
	if buyerContext == "" {
		return ""
	}
	return "Buyer background:\n" + buyerContext
}

// cannedSimulation is the degraded response when no LLM is configured. It
// still uses the real asking/target numbers so the UI flow stays coherent.
func (n *NegotiationAssistant) cannedSimulation(property *model.PropertyDetails, targetPrice string) string {
	asking := utils.NormalizePrice(property.Price)
	target := utils.NormalizePrice(targetPrice)

	if asking > 0 && target > 0 && target < asking {
		gap := (asking - target) / asking * 100
		midpoint := (asking + target) / 2
		return fmt.Sprintf(
			"Seller: I appreciate your interest in %s, but %s is %.0f%% below my asking price of %s. "+
				"Properties in %s rarely move that far. I could consider %s if you can close the registration within a month. "+
				"That is my best counteroffer.",
			property.Name, targetPrice, gap, property.Price, property.Location, utils.FormatRupees(midpoint))
	}
	return fmt.Sprintf(
		"Seller: The asking price for %s stands at %s. Make me a concrete offer and we can talk — "+
			"serious buyers with financing in place always get my attention.",
		property.Name, property.Price)
}

func (n *NegotiationAssistant) cannedGeneralAdvice() string {
	return strings.TrimSpace(`
A few negotiation tactics that consistently work for home buyers in India:

1. Anchor low but credibly: open 8-10% below asking with comparable sale prices to back it up.
2. Get the seller's constraints on the table: a seller who has already booked their next home will move faster on price.
3. Negotiate inclusions, not just price: covered parking, modular kitchen, club membership and registration charges are all fair game.
4. Put a token advance on the table: a visible commitment often unlocks the final 2-3%.
5. Keep your financing pre-approved: a clean, fast close is worth real money to most sellers.`)
}
