package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"homeadvisor/internal/model"
	"homeadvisor/internal/utils"
)

// Agent routes a free-text query to exactly one domain module and normalizes
// the outcome into a Result. Failures are recovered into the error result
// kind; the agent never panics or fails the process.
type Agent struct {
	router      *IntentRouter
	selections  *SelectionManager
	search      *PropertySearch
	negotiation *NegotiationAssistant
	legal       *LegalGuide
	mortgage    *MortgageRecommender
	neighborhood *NeighborhoodAnalyzer
	marketing   *MarketingGenerator
	llm         LLM

	mu           sync.Mutex
	chatHistory  map[string][]model.ChatMessage
	lastProperty map[string]*model.PropertyDetails
}

// NewAgent wires the dispatcher from its modules.
func NewAgent(
	router *IntentRouter,
	selections *SelectionManager,
	search *PropertySearch,
	negotiation *NegotiationAssistant,
	legal *LegalGuide,
	mortgage *MortgageRecommender,
	neighborhood *NeighborhoodAnalyzer,
	marketing *MarketingGenerator,
	llm LLM,
) *Agent {
	return &Agent{
		router:       router,
		selections:   selections,
		search:       search,
		negotiation:  negotiation,
		legal:        legal,
		mortgage:     mortgage,
		neighborhood: neighborhood,
		marketing:    marketing,
		llm:          llm,
		chatHistory:  make(map[string][]model.ChatMessage),
		lastProperty: make(map[string]*model.PropertyDetails),
	}
}

// ProcessQuery routes the request to one module and returns its tagged
// result. Side effects: search records last results, negotiation and
// mortgage extend the user's chat history, reset clears everything.
func (a *Agent) ProcessQuery(ctx context.Context, req *model.ProcessQueryRequest) model.Result {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return model.ErrorResult("Query must not be empty.")
	}

	intent := a.router.Route(query)
	if intent == IntentSearch {
		// Unclassified queries that mention the user's selections belong to
		// the selection modules, not search.
		intent = a.router.RouteSelectionFallback(query, IntentSearch)
	}
	log.Printf("Detected intent %s for query: %s", intent, query)

	if req.PropertyDetails != nil {
		a.setLastProperty(req.UserID, req.PropertyDetails)
	}

	switch intent {
	case IntentReset:
		return a.handleReset(ctx, req.UserID)

	case IntentSearch:
		return a.handleSearch(ctx, req.UserID, query)

	case IntentCompare:
		return a.handleComparison(ctx, req.UserID)

	case IntentInsights, IntentBudget:
		return a.handleInsights(ctx, req.UserID, query)

	case IntentNegotiate:
		return a.handleNegotiation(ctx, req, query)

	case IntentLegal:
		property := a.propertyContext(req)
		if property == nil {
			return model.ErrorResult("Legal guidance requires property details.")
		}
		propertyType := property.PropertyType
		if propertyType == "" {
			propertyType = "residential flat"
		}
		text, err := a.legal.Guidance(ctx, propertyType, cityFromLocation(property.Location))
		if err != nil {
			return model.ErrorResult(fmt.Sprintf("Could not generate legal guidance: %v", err))
		}
		return model.TextResult(model.ResultLegal, text)

	case IntentMortgage:
		return a.handleMortgage(ctx, req)

	case IntentNeighborhood:
		property := a.propertyContext(req)
		if property == nil {
			return model.ErrorResult("Neighborhood insights require property context.")
		}
		text, err := a.neighborhood.Insights(ctx, property.Location, cityFromLocation(property.Location))
		if err != nil {
			return model.ErrorResult(fmt.Sprintf("Could not generate neighborhood insights: %v", err))
		}
		return model.TextResult(model.ResultNeighborhood, text)

	case IntentMarketing:
		property := a.propertyContext(req)
		if property == nil {
			return model.ErrorResult("Marketing description requires property context.")
		}
		text, err := a.marketing.Describe(ctx, property)
		if err != nil {
			return model.ErrorResult(fmt.Sprintf("Could not generate marketing description: %v", err))
		}
		return model.TextResult(model.ResultMarketing, text)

	default:
		return model.ErrorResult("I didn't understand that request. Could you please rephrase?")
	}
}

// ExtractPrice recognizes a "<number> lakh|crore" pattern in free text.
func (a *Agent) ExtractPrice(text string) string {
	return utils.ExtractPrice(text)
}

// ResetUserData clears the user's selections and conversation history.
func (a *Agent) ResetUserData(ctx context.Context, userID string) error {
	if err := a.selections.Clear(ctx, userID); err != nil {
		return err
	}
	a.mu.Lock()
	delete(a.chatHistory, userID)
	delete(a.lastProperty, userID)
	a.mu.Unlock()
	return nil
}

// SelectionInsights analyzes the user's selection pattern. Shared by the
// query dispatcher and the GET /selection_insights endpoint. The returned
// summary is the one the insights text was built from, so callers that echo
// both never mix snapshots.
func (a *Agent) SelectionInsights(ctx context.Context, userID, query string) (string, *model.SelectionSummary, error) {
	summary, err := a.selections.Summary(ctx, userID)
	if err != nil {
		return "", nil, err
	}

	if summary.TotalSelected == 0 {
		return "You haven't selected any properties yet. Start exploring properties to get personalized insights about your preferences!", summary, nil
	}

	if a.llm == nil || !a.llm.IsEnabled() {
		return cannedInsights(summary), summary, nil
	}

	system := `You analyze a home buyer's property selection pattern.

Provide insights addressing their specific question, including:
1. Pattern analysis of their selections
2. Budget and location preferences
3. Recommendations for next steps
4. Any specific advice related to their query

Be conversational and helpful. Keep it concise and actionable.`

	userMessage := fmt.Sprintf(`User Query: %q

SELECTION SUMMARY:
- Total Properties Selected: %d
- Preferred Locations: %s
- Price Range: %s
- Bedroom Preferences: %v
- Pattern: %s

%s`,
		query, summary.TotalSelected,
		strings.Join(summary.PreferredLocations, ", "),
		strings.Join(summary.PriceRange, ", "),
		summary.BedroomPreferences, summary.SelectionPattern,
		a.userContext(ctx, userID))

	text, err := a.llm.Complete(ctx, system, userMessage, nil)
	if err != nil {
		return "", nil, err
	}
	return text, summary, nil
}

func (a *Agent) handleReset(ctx context.Context, userID string) model.Result {
	if userID == "" {
		return model.ErrorResult("User ID required to reset your data.")
	}
	if err := a.ResetUserData(ctx, userID); err != nil {
		return model.ErrorResult(fmt.Sprintf("Could not reset your data: %v", err))
	}
	return model.TextResult(model.ResultInsights, "Your selected properties and conversation history have been reset.")
}

func (a *Agent) handleSearch(ctx context.Context, userID, query string) model.Result {
	searchQuery := query

	// Bias the search toward what the user has already shown interest in.
	if userID != "" {
		if summary, err := a.selections.Summary(ctx, userID); err == nil && summary.TotalSelected > 0 {
			searchQuery = fmt.Sprintf("%s (User has shown interest in: %s)", query, summary.SelectionPattern)
		}
	}

	results, err := a.search.Search(ctx, userID, searchQuery, 0)
	if err != nil {
		return model.ErrorResult(fmt.Sprintf("Search failed: %v", err))
	}
	return model.PropertiesResult(results)
}

func (a *Agent) handleComparison(ctx context.Context, userID string) model.Result {
	if userID == "" {
		return model.ErrorResult("User ID required for property comparison.")
	}

	selections, _, err := a.selections.List(ctx, userID)
	if err != nil {
		return model.ErrorResult(fmt.Sprintf("Error comparing properties: %v", err))
	}

	if len(selections) < 2 {
		return model.TextResult(model.ResultComparison,
			"You need at least 2 selected properties to compare. Select more properties to get detailed comparisons.")
	}

	// Limit to 5 for readability.
	if len(selections) > 5 {
		selections = selections[:5]
	}

	if a.llm == nil || !a.llm.IsEnabled() {
		return model.TextResult(model.ResultComparison, cannedComparison(selections))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Compare these %d properties selected by the user:\n", len(selections))
	for i, prop := range selections {
		fmt.Fprintf(&sb, `
Property %d: %s
• Location: %s
• Price: %s
• Size: %d BHK, %d sq ft
• Status: %s
`, i+1, prop.Name, prop.Location, prop.Price, prop.Bedrooms, prop.AreaSqFt, prop.Status)
	}
	sb.WriteString(`
Provide a detailed comparison covering:
1. Price comparison and value analysis
2. Location advantages/disadvantages
3. Property features comparison
4. Investment potential
5. Recommendation on which property(ies) to prioritize

Format as clear sections with actionable insights.`)

	text, err := a.llm.Complete(ctx, "", sb.String(), nil)
	if err != nil {
		return model.ErrorResult(fmt.Sprintf("Error comparing properties: %v", err))
	}
	return model.TextResult(model.ResultComparison, text)
}

func (a *Agent) handleInsights(ctx context.Context, userID, query string) model.Result {
	if userID == "" {
		return model.ErrorResult("User ID required for selection insights.")
	}
	text, _, err := a.SelectionInsights(ctx, userID, query)
	if err != nil {
		return model.ErrorResult(fmt.Sprintf("Error generating insights: %v", err))
	}
	return model.TextResult(model.ResultInsights, text)
}

func (a *Agent) handleNegotiation(ctx context.Context, req *model.ProcessQueryRequest, query string) model.Result {
	property := a.propertyContext(req)

	targetPrice := req.TargetNegotiationPrice
	if targetPrice == "" {
		// A target mentioned inline ("offer 80 lakh") works too.
		targetPrice = utils.ExtractPrice(query)
	}

	if property == nil || targetPrice == "" || a.negotiation.IsGeneralAdvice(query) {
		text, err := a.negotiation.GeneralAdvice(ctx, query)
		if err != nil {
			return model.ErrorResult(fmt.Sprintf("Could not generate negotiation advice: %v", err))
		}
		a.appendHistory(req.UserID, "assistant", text)
		return model.TextResult(model.ResultNegotiation, text)
	}

	a.extendHistory(req.UserID, req.ChatHistory)
	a.appendHistory(req.UserID, "user", query)

	text, err := a.negotiation.Simulate(ctx, property, targetPrice,
		a.userContext(ctx, req.UserID), a.history(req.UserID))
	if err != nil {
		return model.ErrorResult(fmt.Sprintf("Could not simulate negotiation for %s: %v", targetPrice, err))
	}
	a.appendHistory(req.UserID, "assistant", text)
	return model.TextResult(model.ResultNegotiation, text)
}

func (a *Agent) handleMortgage(ctx context.Context, req *model.ProcessQueryRequest) model.Result {
	property := a.propertyContext(req)
	if property == nil {
		return model.ErrorResult("Mortgage recommendation requires property context.")
	}

	profile := MortgageProfile{PropertyType: req.PropertyType}
	if profile.PropertyType == "" {
		profile.PropertyType = property.PropertyType
	}
	if req.Income != nil {
		profile.Income = *req.Income
	}
	if req.CreditScore != nil {
		profile.CreditScore = *req.CreditScore
	}
	if req.DownPayment != nil {
		profile.DownPayment = *req.DownPayment
	}
	if req.LoanAmount != nil {
		profile.LoanAmount = *req.LoanAmount
	}

	text, err := a.mortgage.Recommend(ctx, profile, a.history(req.UserID), a.userContext(ctx, req.UserID))
	if err != nil {
		return model.ErrorResult(fmt.Sprintf("Could not generate mortgage recommendation: %v", err))
	}
	a.appendHistory(req.UserID, "assistant", text)
	return model.TextResult(model.ResultMortgage, text)
}

// propertyContext resolves the property a module should act on: the one in
// the request, falling back to the user's most recently supplied property.
func (a *Agent) propertyContext(req *model.ProcessQueryRequest) *model.PropertyDetails {
	if req.PropertyDetails != nil {
		return req.PropertyDetails
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastProperty[req.UserID]
}

// userContext renders the user's selection history for prompt injection.
// Empty when the user has no selections.
func (a *Agent) userContext(ctx context.Context, userID string) string {
	if userID == "" {
		return ""
	}
	selections, summary, err := a.selections.List(ctx, userID)
	if err != nil {
		log.Printf("Warning: could not load user context for %s: %v", userID, err)
		return ""
	}
	if summary.TotalSelected == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `USER'S PROPERTY SELECTION HISTORY:
- Total Properties Selected: %d
- Preferred Locations: %s
- Price Range Interest: %s
- Bedroom Preferences: %v

RECENT SELECTIONS:
`,
		summary.TotalSelected,
		strings.Join(summary.PreferredLocations, ", "),
		strings.Join(summary.PriceRange, ", "),
		summary.BedroomPreferences)

	start := 0
	if len(selections) > 3 {
		start = len(selections) - 3
	}
	for _, prop := range selections[start:] {
		fmt.Fprintf(&sb, "• %s in %s — Price: %s, %d BHK, status: %s\n",
			prop.Name, prop.Location, prop.Price, prop.Bedrooms, prop.Status)
	}
	return sb.String()
}

func (a *Agent) setLastProperty(userID string, property *model.PropertyDetails) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastProperty[userID] = property
}

func (a *Agent) appendHistory(userID, role, text string) {
	if userID == "" || text == "" {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.chatHistory[userID] = append(a.chatHistory[userID], model.ChatMessage{Role: role, Text: text})
}

func (a *Agent) extendHistory(userID string, history []model.ChatMessage) {
	if userID == "" || len(history) == 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.chatHistory[userID] = append(a.chatHistory[userID], history...)
}

func (a *Agent) history(userID string) []model.ChatMessage {
	a.mu.Lock()
	defer a.mu.Unlock()
	stored := a.chatHistory[userID]
	out := make([]model.ChatMessage, len(stored))
	copy(out, stored)
	return out
}

// cityFromLocation derives the city from a "locality, city" location string.
func cityFromLocation(location string) string {
	if idx := strings.LastIndex(location, ","); idx >= 0 {
		return strings.TrimSpace(location[idx+1:])
	}
	return "your city"
}

func cannedInsights(summary *model.SelectionSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s.\n\n", summary.SelectionPattern)
	if len(summary.PriceRange) > 0 {
		fmt.Fprintf(&sb, "Budget: your selections cluster in %s.\n", strings.Join(summary.PriceRange, " and "))
	}
	if len(summary.BedroomPreferences) > 0 {
		fmt.Fprintf(&sb, "Size: you gravitate toward %v BHK configurations.\n", summary.BedroomPreferences)
	}
	sb.WriteString("\nNext steps: shortlist your two strongest candidates, schedule visits, and line up a loan pre-approval so you can move quickly on a good deal.")
	return sb.String()
}

func cannedComparison(selections []model.SelectedProperty) string {
	cheapest := selections[0]
	largest := selections[0]
	for _, sel := range selections[1:] {
		if utils.NormalizePrice(sel.Price) < utils.NormalizePrice(cheapest.Price) {
			cheapest = sel
		}
		if sel.AreaSqFt > largest.AreaSqFt {
			largest = sel
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Comparing your %d selected properties:\n\n", len(selections))
	for i, sel := range selections {
		perSqFt := ""
		if price := utils.NormalizePrice(sel.Price); price > 0 && sel.AreaSqFt > 0 {
			perSqFt = fmt.Sprintf(" (₹%.0f/sq ft)", price/float64(sel.AreaSqFt))
		}
		fmt.Fprintf(&sb, "%d. %s — %s, %s, %d BHK, %d sq ft%s, status: %s\n",
			i+1, sel.Name, sel.Location, sel.Price, sel.Bedrooms, sel.AreaSqFt, perSqFt, sel.Status)
	}
	fmt.Fprintf(&sb, "\nValue pick: %s has the lowest asking price. Space pick: %s offers the most area.\n", cheapest.Name, largest.Name)
	sb.WriteString("Prioritize whichever aligns with your budget ceiling, then verify maintenance costs and visit both before negotiating.")
	return sb.String()
}
