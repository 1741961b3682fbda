package service

import (
	"context"
	"math"
	"testing"

	"homeadvisor/internal/model"
	"homeadvisor/internal/store"
)

func newTestSearch(st store.Store) *PropertySearch {
	ranker := NewRanker(0.4, 0.3, 0.2, 0.1)
	return NewPropertySearch(nil, NewCatalog(), ranker, st, 5, 10)
}

func TestFallbackParseQuery(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantLocation string
		wantBedrooms int
		wantMaxPrice float64
		wantType     string
	}{
		{
			name:         "Full query",
			query:        "3 BHK flat in Pune under 1.2 crore",
			wantLocation: "Pune",
			wantBedrooms: 3,
			wantMaxPrice: 1.2e7,
			wantType:     "Apartment",
		},
		{
			name:         "Villa without budget",
			query:        "villa in Whitefield Bangalore",
			wantLocation: "Whitefield Bangalore",
			wantType:     "Villa",
		},
		{
			name:         "Bedrooms spelled out",
			query:        "2 bedroom apartment in Wakad",
			wantLocation: "Wakad",
			wantBedrooms: 2,
			wantType:     "Apartment",
		},
		{
			name:         "Budget in lakh",
			query:        "homes in Kothrud under 80 lakh",
			wantLocation: "Kothrud",
			wantMaxPrice: 80e5,
		},
		{
			name:  "No structure at all",
			query: "something nice please",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fallbackParseQuery(tt.query)

			if got.Location != tt.wantLocation {
				t.Errorf("Location = %q, want %q", got.Location, tt.wantLocation)
			}
			if tt.wantBedrooms > 0 {
				if got.Bedrooms == nil || *got.Bedrooms != tt.wantBedrooms {
					t.Errorf("Bedrooms = %v, want %d", got.Bedrooms, tt.wantBedrooms)
				}
			} else if got.Bedrooms != nil {
				t.Errorf("Bedrooms = %d, want unset", *got.Bedrooms)
			}
			if tt.wantMaxPrice > 0 {
				if got.MaxPrice == nil || *got.MaxPrice != tt.wantMaxPrice {
					t.Errorf("MaxPrice = %v, want %f", got.MaxPrice, tt.wantMaxPrice)
				}
			} else if got.MaxPrice != nil {
				t.Errorf("MaxPrice = %f, want unset", *got.MaxPrice)
			}
			if got.PropertyType != tt.wantType {
				t.Errorf("PropertyType = %q, want %q", got.PropertyType, tt.wantType)
			}
		})
	}
}

func TestPropertySearch_Limits(t *testing.T) {
	ctx := context.Background()
	search := newTestSearch(store.NewMemory())

	results, err := search.Search(ctx, "", "flats in Pune", 0)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 5 {
		t.Errorf("default limit: got %d results, want 5", len(results))
	}

	results, err = search.Search(ctx, "", "flats in Pune", 100)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) > 10 {
		t.Errorf("max limit: got %d results, want at most 10", len(results))
	}

	results, err = search.Search(ctx, "", "flats in Pune", 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("explicit limit: got %d results, want 2", len(results))
	}
}

func TestPropertySearch_ResultsMatchLocation(t *testing.T) {
	ctx := context.Background()
	search := newTestSearch(store.NewMemory())

	results, err := search.Search(ctx, "", "3 BHK flat in Pune under 1.5 crore", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	for _, prop := range results {
		if prop.Location != "Pune" {
			t.Errorf("result located in %q, want Pune", prop.Location)
		}
	}
}

func TestRanker_ScoresAndOrder(t *testing.T) {
	ranker := NewRanker(0.4, 0.3, 0.2, 0.1)
	three := 3
	maxPrice := 1.0e7
	criteria := &model.SearchCriteria{
		Location:     "Pune",
		Bedrooms:     &three,
		MaxPrice:     &maxPrice,
		PropertyType: "Apartment",
	}

	listings := []model.PropertyDetails{
		{ID: "a", Location: "Mumbai", Price: "₹2 Crore", Bedrooms: 2, PropertyType: "Villa"},
		{ID: "b", Location: "Pune", Price: "₹90 Lakh", Bedrooms: 3, PropertyType: "Apartment"},
		{ID: "c", Location: "Pune", Price: "₹1.5 Crore", Bedrooms: 3, PropertyType: "Apartment"},
	}

	ranked := ranker.Rank(listings, criteria)

	if ranked[0].ID != "b" {
		t.Fatalf("top result = %s, want b (matches everything)", ranked[0].ID)
	}
	if got := ranked[0].Score; math.Abs(got-1.0) > 1e-9 {
		t.Errorf("full-match score = %.2f, want 1.0", got)
	}
	if len(ranked[0].MatchedReasons) != 4 {
		t.Errorf("full match should list 4 reasons, got %v", ranked[0].MatchedReasons)
	}
	if ranked[1].ID != "c" {
		t.Errorf("second result = %s, want c (over budget)", ranked[1].ID)
	}
	if ranked[2].ID != "a" {
		t.Errorf("last result = %s, want a (no criteria hit)", ranked[2].ID)
	}
	if ranked[2].Score != 0 {
		t.Errorf("no-match score = %.2f, want 0", ranked[2].Score)
	}
}

func TestRanker_StableForEqualScores(t *testing.T) {
	ranker := NewRanker(0.4, 0.3, 0.2, 0.1)
	listings := []model.PropertyDetails{
		{ID: "first", Location: "Pune", Price: "₹80 Lakh"},
		{ID: "second", Location: "Pune", Price: "₹85 Lakh"},
	}

	ranked := ranker.Rank(listings, &model.SearchCriteria{Location: "Pune"})
	if ranked[0].ID != "first" || ranked[1].ID != "second" {
		t.Errorf("equal scores must keep input order, got %s, %s", ranked[0].ID, ranked[1].ID)
	}
}

func TestCatalog_Deterministic(t *testing.T) {
	catalog := NewCatalog()

	a := catalog.Listings("Baner, Pune")
	b := catalog.Listings("Baner, Pune")
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("expected identical non-empty inventories, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Price != b[i].Price {
			t.Errorf("listing %d differs between calls", i)
		}
	}

	// Empty location falls back to a default city.
	defaulted := catalog.Listings("")
	if len(defaulted) == 0 {
		t.Fatal("expected listings for empty location")
	}
	if defaulted[0].Location == "" {
		t.Error("expected a default location to be applied")
	}
}

func TestPropertySearch_SavesLastResults(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	search := newTestSearch(st)

	// Pre-existing notes must survive a search.
	if err := st.PutPreferences(ctx, "u1", &model.Preferences{Notes: "prefers quiet streets"}); err != nil {
		t.Fatalf("PutPreferences failed: %v", err)
	}

	results, err := search.Search(ctx, "u1", "2 BHK in Pune", 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	prefs, err := st.GetPreferences(ctx, "u1")
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}
	if prefs.Notes != "prefers quiet streets" {
		t.Errorf("notes = %q, want preserved", prefs.Notes)
	}
	if len(prefs.LastResults) != len(results) {
		t.Errorf("last results = %d, want %d", len(prefs.LastResults), len(results))
	}
}

func TestPropertySearch_AnonymousSkipsPersistence(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	search := newTestSearch(st)

	if _, err := search.Search(ctx, "", "flats in Pune", 3); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if _, err := st.GetPreferences(ctx, ""); err == nil {
		t.Error("expected no preferences record for anonymous search")
	}
}
