package service

import (
	"context"
	"strings"
	"testing"

	"homeadvisor/internal/model"
	"homeadvisor/internal/store"
)

func newTestAgent(st store.Store) (*Agent, *SelectionManager) {
	selections := NewSelectionManager(st)
	ranker := NewRanker(0.4, 0.3, 0.2, 0.1)
	search := NewPropertySearch(nil, NewCatalog(), ranker, st, 5, 10)
	agent := NewAgent(
		NewIntentRouter(),
		selections,
		search,
		NewNegotiationAssistant(nil),
		NewLegalGuide(nil),
		NewMortgageRecommender(nil),
		NewNeighborhoodAnalyzer(nil),
		NewMarketingGenerator(nil),
		nil,
	)
	return agent, selections
}

func TestAgent_EmptyQuery(t *testing.T) {
	agent, _ := newTestAgent(store.NewMemory())

	result := agent.ProcessQuery(context.Background(), &model.ProcessQueryRequest{Query: "   "})
	if result.Type != model.ResultError {
		t.Errorf("result type = %s, want %s", result.Type, model.ResultError)
	}
}

func TestAgent_SearchQuery(t *testing.T) {
	agent, _ := newTestAgent(store.NewMemory())

	result := agent.ProcessQuery(context.Background(), &model.ProcessQueryRequest{
		Query:  "2 BHK apartment in Pune",
		UserID: "u1",
	})
	if result.Type != model.ResultProperties {
		t.Fatalf("result type = %s, want %s", result.Type, model.ResultProperties)
	}
	if len(result.Properties) == 0 || len(result.Properties) > 5 {
		t.Errorf("got %d properties, want 1..5", len(result.Properties))
	}
}

func TestAgent_CompareNeedsTwoSelections(t *testing.T) {
	ctx := context.Background()
	agent, selections := newTestAgent(store.NewMemory())

	req := &model.ProcessQueryRequest{Query: "compare my selected properties", UserID: "u1"}

	result := agent.ProcessQuery(ctx, req)
	if result.Type != model.ResultComparison {
		t.Fatalf("result type = %s, want %s", result.Type, model.ResultComparison)
	}
	if !strings.Contains(result.Text, "at least 2") {
		t.Errorf("expected the two-selection hint, got: %s", result.Text)
	}

	selections.Add(ctx, "u1", testProperty("p1", "Sunrise Residency", "Baner, Pune", "₹90 Lakh", 3))
	selections.Add(ctx, "u1", testProperty("p2", "Green Meadows", "Wakad, Pune", "₹1.2 Crore", 2))

	result = agent.ProcessQuery(ctx, req)
	if result.Type != model.ResultComparison {
		t.Fatalf("result type = %s, want %s", result.Type, model.ResultComparison)
	}
	if !strings.Contains(result.Text, "Sunrise Residency") || !strings.Contains(result.Text, "Green Meadows") {
		t.Errorf("comparison should mention both properties, got: %s", result.Text)
	}
}

func TestAgent_InsightsWithoutSelections(t *testing.T) {
	agent, _ := newTestAgent(store.NewMemory())

	result := agent.ProcessQuery(context.Background(), &model.ProcessQueryRequest{
		Query:  "show insights about my selections",
		UserID: "u1",
	})
	if result.Type != model.ResultInsights {
		t.Fatalf("result type = %s, want %s", result.Type, model.ResultInsights)
	}
	if !strings.Contains(result.Text, "haven't selected") {
		t.Errorf("expected the empty-selections message, got: %s", result.Text)
	}
}

func TestAgent_SelectionInsightsMatchSummary(t *testing.T) {
	ctx := context.Background()
	agent, selections := newTestAgent(store.NewMemory())

	selections.Add(ctx, "u1", testProperty("p1", "Sunrise Residency", "Baner, Pune", "₹90 Lakh", 3))
	selections.Add(ctx, "u1", testProperty("p2", "Green Acres", "Wakad, Pune", "₹85 Lakh", 3))

	text, summary, err := agent.SelectionInsights(ctx, "u1", "what do my picks say?")
	if err != nil {
		t.Fatalf("SelectionInsights failed: %v", err)
	}
	if summary == nil || summary.TotalSelected != 2 {
		t.Fatalf("summary = %+v, want 2 selections", summary)
	}
	// The prose is built from the same snapshot the summary reports.
	if !strings.Contains(text, summary.SelectionPattern) {
		t.Errorf("insights text does not reflect the returned summary: %s", text)
	}
}

func TestAgent_NegotiationGeneralAdvice(t *testing.T) {
	agent, _ := newTestAgent(store.NewMemory())

	result := agent.ProcessQuery(context.Background(), &model.ProcessQueryRequest{
		Query:  "what negotiation tactics should I use?",
		UserID: "u1",
	})
	if result.Type != model.ResultNegotiation {
		t.Fatalf("result type = %s, want %s", result.Type, model.ResultNegotiation)
	}
	if result.Text == "" {
		t.Error("expected advice text")
	}
}

func TestAgent_NegotiationSimulation(t *testing.T) {
	agent, _ := newTestAgent(store.NewMemory())
	prop := testProperty("p1", "Sunrise Residency", "Baner, Pune", "₹1 Crore", 3)

	result := agent.ProcessQuery(context.Background(), &model.ProcessQueryRequest{
		Query:           "I want to negotiate, my target is 80 lakh",
		UserID:          "u1",
		PropertyDetails: &prop,
	})
	if result.Type != model.ResultNegotiation {
		t.Fatalf("result type = %s, want %s", result.Type, model.ResultNegotiation)
	}
	// The canned seller counters at the midpoint of asking and target.
	if !strings.Contains(result.Text, "₹90 Lakh") {
		t.Errorf("expected a midpoint counteroffer, got: %s", result.Text)
	}
}

func TestAgent_LegalRequiresProperty(t *testing.T) {
	agent, _ := newTestAgent(store.NewMemory())
	ctx := context.Background()

	result := agent.ProcessQuery(ctx, &model.ProcessQueryRequest{
		Query:  "what stamp duty will I pay?",
		UserID: "u1",
	})
	if result.Type != model.ResultError {
		t.Fatalf("result type = %s, want %s", result.Type, model.ResultError)
	}

	prop := testProperty("p1", "Sunrise Residency", "Baner, Pune", "₹90 Lakh", 3)
	result = agent.ProcessQuery(ctx, &model.ProcessQueryRequest{
		Query:           "what stamp duty will I pay?",
		UserID:          "u1",
		PropertyDetails: &prop,
	})
	if result.Type != model.ResultLegal {
		t.Fatalf("result type = %s, want %s", result.Type, model.ResultLegal)
	}
	if result.Text == "" {
		t.Error("expected legal guidance text")
	}
}

func TestAgent_RemembersLastProperty(t *testing.T) {
	agent, _ := newTestAgent(store.NewMemory())
	ctx := context.Background()
	prop := testProperty("p1", "Sunrise Residency", "Baner, Pune", "₹90 Lakh", 3)

	// First request carries the property; the follow-up doesn't, but the
	// agent should remember it for the same user.
	agent.ProcessQuery(ctx, &model.ProcessQueryRequest{
		Query:           "how is the locality around this place?",
		UserID:          "u1",
		PropertyDetails: &prop,
	})

	result := agent.ProcessQuery(ctx, &model.ProcessQueryRequest{
		Query:  "what stamp duty will I pay?",
		UserID: "u1",
	})
	if result.Type != model.ResultLegal {
		t.Fatalf("result type = %s, want %s", result.Type, model.ResultLegal)
	}

	// A different user has no such context.
	result = agent.ProcessQuery(ctx, &model.ProcessQueryRequest{
		Query:  "what stamp duty will I pay?",
		UserID: "u2",
	})
	if result.Type != model.ResultError {
		t.Errorf("result type = %s, want %s for unknown user", result.Type, model.ResultError)
	}
}

func TestAgent_Mortgage(t *testing.T) {
	agent, _ := newTestAgent(store.NewMemory())
	prop := testProperty("p1", "Sunrise Residency", "Baner, Pune", "₹90 Lakh", 3)
	income := 24_00_000.0
	credit := 800

	result := agent.ProcessQuery(context.Background(), &model.ProcessQueryRequest{
		Query:           "recommend a home loan for me",
		UserID:          "u1",
		PropertyDetails: &prop,
		Income:          &income,
		CreditScore:     &credit,
	})
	if result.Type != model.ResultMortgage {
		t.Fatalf("result type = %s, want %s", result.Type, model.ResultMortgage)
	}
	if !strings.Contains(result.Text, "800") {
		t.Errorf("expected the supplied credit score in the advice, got: %s", result.Text)
	}
}

func TestAgent_Reset(t *testing.T) {
	ctx := context.Background()
	agent, selections := newTestAgent(store.NewMemory())

	selections.Add(ctx, "u1", testProperty("p1", "Sunrise Residency", "Baner, Pune", "₹90 Lakh", 3))

	result := agent.ProcessQuery(ctx, &model.ProcessQueryRequest{
		Query:  "please reset my data",
		UserID: "u1",
	})
	if result.Type == model.ResultError {
		t.Fatalf("reset failed: %s", result.Message)
	}

	list, _, err := selections.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected selections cleared, got %d", len(list))
	}
}

func TestAgent_MarketingDescription(t *testing.T) {
	agent, _ := newTestAgent(store.NewMemory())
	prop := testProperty("p1", "Sunrise Residency", "Baner, Pune", "₹90 Lakh", 3)

	result := agent.ProcessQuery(context.Background(), &model.ProcessQueryRequest{
		Query:           "write a description for my listing",
		UserID:          "u1",
		PropertyDetails: &prop,
	})
	if result.Type != model.ResultMarketing {
		t.Fatalf("result type = %s, want %s", result.Type, model.ResultMarketing)
	}
	if !strings.Contains(result.Text, "Sunrise Residency") {
		t.Errorf("expected the property name in the copy, got: %s", result.Text)
	}
}

func TestCityFromLocation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Locality and city", input: "Baner, Pune", want: "Pune"},
		{name: "Multiple segments", input: "Sector 21, Kharghar, Navi Mumbai", want: "Navi Mumbai"},
		{name: "No comma", input: "Pune", want: "your city"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cityFromLocation(tt.input); got != tt.want {
				t.Errorf("cityFromLocation(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
