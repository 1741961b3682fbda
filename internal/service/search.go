package service

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"homeadvisor/internal/model"
	"homeadvisor/internal/store"
	"homeadvisor/internal/utils"
)

const criteriaSystemPrompt = `You are a real estate search assistant in India. Extract structured property search criteria from the user's query.

Extract the following information if present:
- location: city or locality name (string)
- bedrooms: number of bedrooms, e.g. "2 BHK" means 2 (integer)
- min_price: minimum price in rupees (number)
- max_price: maximum price in rupees (number), e.g. "under 75 lakh" = 7500000
- property_type: one of "Apartment", "Villa", "Penthouse", "Row House"
- keywords: array of important descriptive keywords

Important rules:
- Respond ONLY with valid JSON
- If a field is not mentioned, omit it
- "1 crore" = 10000000, "50 lakh" = 5000000

Examples:
Query: "3 BHK flat in Pune under 1.2 crore"
Response: {"location": "Pune", "bedrooms": 3, "max_price": 12000000, "property_type": "Apartment", "keywords": ["flat", "pune"]}

Query: "villa near Whitefield Bangalore"
Response: {"location": "Bangalore", "property_type": "Villa", "keywords": ["whitefield", "villa"]}`

var (
	locationRe = regexp.MustCompile(`(?i)\bin\s+([a-zA-Z][a-zA-Z\s,]*?)(?:\s+under|\s+below|\s+within|\s+for|$)`)
	bhkRe      = regexp.MustCompile(`(?i)(\d+)\s*(?:bhk|bedroom)`)
	budgetRe   = regexp.MustCompile(`(?i)(?:under|below|within|upto|up to|max)\s+(?:₹\s*)?(\d+\.?\d*\s*(?:lakh|lakhs|crore|cr))`)
)

// PropertySearch turns a free-text query into ranked mock listings. Criteria
// extraction goes through the LLM when available and falls back to regex
// parsing, so search works identically in tests and offline runs.
type PropertySearch struct {
	llm          LLM
	catalog      *Catalog
	ranker       *Ranker
	store        store.Store
	defaultLimit int
	maxLimit     int
}

// NewPropertySearch creates a new property search service.
func NewPropertySearch(llm LLM, catalog *Catalog, ranker *Ranker, st store.Store, defaultLimit, maxLimit int) *PropertySearch {
	return &PropertySearch{
		llm:          llm,
		catalog:      catalog,
		ranker:       ranker,
		store:        st,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// Search extracts criteria from the query, ranks the catalog against them
// and records the results as the user's "last results" in the preference
// store. The limit is capped by the configured maximum.
func (s *PropertySearch) Search(ctx context.Context, userID, query string, limit int) ([]model.PropertyDetails, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}

	criteria := s.ExtractCriteria(ctx, query)

	listings := s.catalog.Listings(criteria.Location)
	ranked := s.ranker.Rank(listings, criteria)

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	results := make([]model.PropertyDetails, len(ranked))
	for i, r := range ranked {
		results[i] = r.PropertyDetails
	}

	if userID != "" {
		s.saveLastResults(ctx, userID, results)
	}

	return results, nil
}

// ExtractCriteria parses the query into structured criteria. LLM failures
// are logged and recovered by the regex fallback, never surfaced.
func (s *PropertySearch) ExtractCriteria(ctx context.Context, query string) *model.SearchCriteria {
	if s.llm != nil && s.llm.IsEnabled() {
		var criteria model.SearchCriteria
		if err := s.llm.CompleteJSON(ctx, criteriaSystemPrompt, query, &criteria); err != nil {
			log.Printf("LLM criteria extraction failed, falling back to regex: %v", err)
		} else if criteria.Location != "" || criteria.Bedrooms != nil || criteria.MaxPrice != nil {
			return &criteria
		}
	}
	return fallbackParseQuery(query)
}

// fallbackParseQuery extracts criteria with plain regexes when the LLM is
// unavailable or returns nothing usable.
func fallbackParseQuery(query string) *model.SearchCriteria {
	criteria := &model.SearchCriteria{}

	if m := locationRe.FindStringSubmatch(query); m != nil {
		criteria.Location = strings.TrimSpace(strings.Trim(m[1], " ,"))
	}

	if m := bhkRe.FindStringSubmatch(query); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			criteria.Bedrooms = &n
		}
	}

	if m := budgetRe.FindStringSubmatch(query); m != nil {
		if rupees := utils.NormalizePrice(m[1]); rupees > 0 {
			criteria.MaxPrice = &rupees
		}
	}

	lower := strings.ToLower(query)
	switch {
	case strings.Contains(lower, "villa"):
		criteria.PropertyType = "Villa"
	case strings.Contains(lower, "penthouse"):
		criteria.PropertyType = "Penthouse"
	case strings.Contains(lower, "row house"):
		criteria.PropertyType = "Row House"
	case strings.Contains(lower, "flat"), strings.Contains(lower, "apartment"):
		criteria.PropertyType = "Apartment"
	}

	if criteria.Location != "" {
		criteria.Keywords = append(criteria.Keywords, strings.ToLower(criteria.Location))
	}

	return criteria
}

// saveLastResults records the search results in the user's preferences,
// preserving any existing preference notes. Best effort: a storage failure
// must not fail the search itself.
func (s *PropertySearch) saveLastResults(ctx context.Context, userID string, results []model.PropertyDetails) {
	prefs, err := s.store.GetPreferences(ctx, userID)
	if err != nil {
		if !errors.Is(err, store.ErrNoPreferences) {
			log.Printf("Warning: could not load preferences for %s: %v", userID, err)
			return
		}
		prefs = &model.Preferences{}
	}
	prefs.LastResults = results
	prefs.SavedAt = time.Now().UTC()
	if err := s.store.PutPreferences(ctx, userID, prefs); err != nil {
		log.Printf("Warning: could not save last results for %s: %v", userID, err)
	}
}
