package service

import (
	"sort"
	"strings"

	"homeadvisor/internal/model"
	"homeadvisor/internal/utils"
)

// Match reason constants
const (
	ReasonLocationMatch = "Location match"
	ReasonPriceMatch    = "Price within budget"
	ReasonBedroomsMatch = "Bedrooms match"
	ReasonTypeMatch     = "Property type match"
)

// ScoredListing is a catalog listing with its relevance score and the
// reasons it matched.
type ScoredListing struct {
	model.PropertyDetails
	Score          float64
	MatchedReasons []string
}

// Ranker scores catalog listings against extracted search criteria.
type Ranker struct {
	weightLocation float64
	weightBudget   float64
	weightBedrooms float64
	weightType     float64
}

// NewRanker creates a new ranker with specified weights.
func NewRanker(weightLocation, weightBudget, weightBedrooms, weightType float64) *Ranker {
	return &Ranker{
		weightLocation: weightLocation,
		weightBudget:   weightBudget,
		weightBedrooms: weightBedrooms,
		weightType:     weightType,
	}
}

// Rank scores and orders listings by how well they fit the criteria.
// Ordering is stable so equal scores keep catalog order.
func (r *Ranker) Rank(listings []model.PropertyDetails, criteria *model.SearchCriteria) []ScoredListing {
	results := make([]ScoredListing, 0, len(listings))

	for _, listing := range listings {
		result := ScoredListing{
			PropertyDetails: listing,
			MatchedReasons:  []string{},
		}

		if criteria != nil {
			if criteria.Location != "" &&
				strings.Contains(strings.ToLower(listing.Location), strings.ToLower(criteria.Location)) {
				result.Score += r.weightLocation
				result.MatchedReasons = append(result.MatchedReasons, ReasonLocationMatch)
			}

			if price := utils.NormalizePrice(listing.Price); price > 0 {
				withinMin := criteria.MinPrice == nil || price >= *criteria.MinPrice
				withinMax := criteria.MaxPrice == nil || price <= *criteria.MaxPrice
				if (criteria.MinPrice != nil || criteria.MaxPrice != nil) && withinMin && withinMax {
					result.Score += r.weightBudget
					result.MatchedReasons = append(result.MatchedReasons, ReasonPriceMatch)
				}
			}

			if criteria.Bedrooms != nil && listing.Bedrooms == *criteria.Bedrooms {
				result.Score += r.weightBedrooms
				result.MatchedReasons = append(result.MatchedReasons, ReasonBedroomsMatch)
			}

			if criteria.PropertyType != "" &&
				strings.EqualFold(listing.PropertyType, criteria.PropertyType) {
				result.Score += r.weightType
				result.MatchedReasons = append(result.MatchedReasons, ReasonTypeMatch)
			}
		}

		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}
