package service

import "strings"

// Intent is the module a query is routed to.
type Intent string

const (
	IntentSearch       Intent = "SEARCH_PROPERTY"
	IntentNegotiate    Intent = "NEGOTIATE"
	IntentLegal        Intent = "LEGAL_GUIDANCE"
	IntentMortgage     Intent = "MORTGAGE_RECOMMENDATION"
	IntentNeighborhood Intent = "NEIGHBORHOOD_INSIGHTS"
	IntentMarketing    Intent = "MARKETING_DESCRIPTION"
	IntentCompare      Intent = "COMPARE_SELECTED"
	IntentInsights     Intent = "SELECTION_INSIGHTS"
	IntentBudget       Intent = "BUDGET_ANALYSIS"
	IntentReset        Intent = "RESET"
)

// sentinels are the reserved keyword strings that force a module regardless
// of natural-language content. Exact match (after trimming and uppercasing)
// takes precedence over free-text classification.
var sentinels = map[string]Intent{
	"SEARCH_PROPERTY":         IntentSearch,
	"NEGOTIATE":               IntentNegotiate,
	"LEGAL_GUIDANCE":          IntentLegal,
	"MORTGAGE_RECOMMENDATION": IntentMortgage,
	"NEIGHBORHOOD_INSIGHTS":   IntentNeighborhood,
	"MARKETING_DESCRIPTION":   IntentMarketing,
	"COMPARE_SELECTED":        IntentCompare,
	"SELECTION_INSIGHTS":      IntentInsights,
	"BUDGET_ANALYSIS":         IntentBudget,
}

// intentKeywords maps each intent to the phrases that indicate it. Order of
// the rules slice below decides ties: earlier rules win.
var intentRules = []struct {
	intent   Intent
	keywords []string
}{
	{IntentCompare, []string{"compare", "comparison", "versus", " vs "}},
	{IntentBudget, []string{"budget analysis", "analyze my budget", "afford"}},
	{IntentInsights, []string{"my selections", "selected properties", "selection pattern", "my shortlist", "insights about my"}},
	{IntentNegotiate, []string{"negotiat", "counteroffer", "counter offer", "make an offer", "lower the price", "bring down the price"}},
	{IntentLegal, []string{"legal", "stamp duty", "registration", "agreement", "rera", "title deed", "encumbrance", "lawyer"}},
	{IntentMortgage, []string{"mortgage", "home loan", "loan", "emi", "interest rate", "down payment", "financing"}},
	{IntentNeighborhood, []string{"neighborhood", "neighbourhood", "locality", "area like", "schools nearby", "connectivity", "safety", "commute"}},
	{IntentMarketing, []string{"marketing", "listing description", "write a description", "advertise", "sales copy", "sell my"}},
}

// selectionKeywords route otherwise-unclassified queries to the selection
// modules, mirroring the fallback branch of the dispatcher.
var selectionKeywords = []string{"selected", "selection", "budget", "analyze", "pattern"}

// IntentRouter classifies a free-text query (or a fixed sentinel keyword)
// into one of the closed set of module intents. Lightweight keyword matching
// only; anything unrecognized falls back to property search.
type IntentRouter struct{}

// NewIntentRouter creates a new intent router.
func NewIntentRouter() *IntentRouter {
	return &IntentRouter{}
}

// Route returns the intent for query. Precedence: exact sentinel match,
// reset phrases, keyword rules, then property search as the default.
func (r *IntentRouter) Route(query string) Intent {
	trimmed := strings.TrimSpace(query)

	if intent, ok := sentinels[strings.ToUpper(trimmed)]; ok {
		return intent
	}

	lower := strings.ToLower(trimmed)

	if strings.Contains(lower, "reset") || strings.Contains(lower, "forget") {
		return IntentReset
	}

	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.intent
			}
		}
	}

	return IntentSearch
}

// RouteSelectionFallback decides whether an unclassified query is really
// about the user's selections: "compare" routes to comparison, other
// selection words to insights, anything else stays with the given default.
func (r *IntentRouter) RouteSelectionFallback(query string, fallback Intent) Intent {
	lower := strings.ToLower(query)
	for _, kw := range selectionKeywords {
		if strings.Contains(lower, kw) {
			if strings.Contains(lower, "compare") {
				return IntentCompare
			}
			return IntentInsights
		}
	}
	return fallback
}
