package service

import (
	"fmt"
	"strings"

	"homeadvisor/internal/model"
	"homeadvisor/internal/utils"
)

// Catalog generates mock property listings. Real listing ingestion is out of
// scope; the catalog produces plausible, deterministic inventory for any
// requested location so the rest of the pipeline behaves like production.
type Catalog struct{}

// NewCatalog creates a mock listing catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

var projectNames = []string{
	"Green Meadows Residency",
	"Sunshine Heights",
	"Lakeview Enclave",
	"Maple Grove Towers",
	"Riverdale Apartments",
	"Palm Court",
	"Orchid Springs",
	"Silver Oak Estate",
}

var propertyTypes = []string{"Apartment", "Apartment", "Villa", "Apartment", "Penthouse", "Row House"}

// basePriceRupees is the price of a 1 BHK apartment; bedrooms, type and the
// listing's position in the catalog scale it up.
const basePriceRupees = 42_00_000

// Listings returns the mock inventory for a location. Output is
// deterministic for a given location string.
func (c *Catalog) Listings(location string) []model.PropertyDetails {
	loc := strings.TrimSpace(location)
	if loc == "" {
		loc = "Pune"
	}
	loc = titleCase(loc)

	listings := make([]model.PropertyDetails, 0, len(projectNames))
	for i, name := range projectNames {
		bedrooms := 1 + i%4
		bathrooms := bedrooms
		if bedrooms > 2 {
			bathrooms = bedrooms - 1
		}
		ptype := propertyTypes[i%len(propertyTypes)]

		price := float64(basePriceRupees) * float64(bedrooms)
		switch ptype {
		case "Villa":
			price *= 1.8
		case "Penthouse":
			price *= 2.2
		case "Row House":
			price *= 1.5
		}
		price *= 1.0 + 0.07*float64(i)

		area := 520*bedrooms + 110*i

		listings = append(listings, model.PropertyDetails{
			ID:       fmt.Sprintf("prop_%s_%d", slug(loc), i+1),
			Name:     fmt.Sprintf("%d BHK %s in %s", bedrooms, name, loc),
			Location: loc,
			Price:    utils.FormatRupees(price),
			Bedrooms: bedrooms, Bathrooms: bathrooms,
			AreaSqFt: area,
			Description: fmt.Sprintf(
				"%d BHK %s at %s, %s. Well-ventilated homes with modern amenities, covered parking and excellent connectivity.",
				bedrooms, strings.ToLower(ptype), name, loc),
			ImageURL:     fmt.Sprintf("https://placehold.co/400x300/E0F2F7/000000?text=Property+%d", i+1),
			Link:         fmt.Sprintf("https://listings.example.com/%s/%d", slug(loc), i+1),
			PropertyType: ptype,
		})
	}
	return listings
}

func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
