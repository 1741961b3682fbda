package service

import (
	"context"
	"fmt"
)

// NeighborhoodAnalyzer provides lifestyle, safety, connectivity and
// investment insights for a locality.
type NeighborhoodAnalyzer struct {
	llm LLM
}

// NewNeighborhoodAnalyzer creates a new neighborhood analyzer.
func NewNeighborhoodAnalyzer(llm LLM) *NeighborhoodAnalyzer {
	return &NeighborhoodAnalyzer{llm: llm}
}

// Insights generates descriptive insights about a neighborhood.
func (a *NeighborhoodAnalyzer) Insights(ctx context.Context, location, city string) (string, error) {
	if city == "" {
		city = "your city"
	}

	if a.llm == nil || !a.llm.IsEnabled() {
		return a.cannedInsights(location, city), nil
	}

	system := `You are a real estate neighborhood analyst in India.

Guidelines:
- Share useful, updated insights about the locality.
- Include info on connectivity, amenities, lifestyle, safety, and real estate trends.
- Be conversational and helpful — tone should be warm and trustworthy.
- Wrap up with a summary on whether this is a good area for families or investment.`

	userMessage := fmt.Sprintf("Provide neighborhood insights for %s, %s, India.", location, city)

	return a.llm.Complete(ctx, system, userMessage, nil)
}

func (a *NeighborhoodAnalyzer) cannedInsights(location, city string) string {
	return fmt.Sprintf(`Here's what buyers typically weigh up about %s, %s:

Connectivity: check the distance to the nearest metro/suburban station and the peak-hour drive to the main business districts — this single factor drives both livability and resale value.

Daily life: look for schools, hospitals and markets within a 2-3 km radius, and visit on a weekday evening to judge traffic and noise first-hand.

Safety: well-lit main roads, active resident welfare associations and occupied ground-floor commercial space are good practical signals.

Property trends: compare per-sq-ft rates of recent resales against builder quotes; a wide gap usually means new supply is setting the price.

Overall, if the locality scores well on connectivity and daily conveniences, it tends to hold value for both families and investors. A site visit at different times of day is worth more than any report.`,
		location, city)
}
