package model

import "time"

// PropertyDetails represents a single property listing as shown to the user.
// Immutable once returned by search; Price is a display string (e.g. "₹75 Lakh").
type PropertyDetails struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Location     string `json:"location"`
	Price        string `json:"price"`
	Bedrooms     int    `json:"bedrooms"`
	Bathrooms    int    `json:"bathrooms"`
	AreaSqFt     int    `json:"areaSqFt"`
	Description  string `json:"description"`
	ImageURL     string `json:"imageUrl,omitempty"`
	Link         string `json:"link,omitempty"`
	PropertyType string `json:"property_type,omitempty"`
}

// Identity returns the key used for duplicate detection: the property ID,
// or the external link when no ID is present.
func (p PropertyDetails) Identity() string {
	if p.ID != "" {
		return p.ID
	}
	return p.Link
}

// SelectionStatus is the lifecycle status of a saved property.
type SelectionStatus string

const (
	StatusInterested  SelectionStatus = "interested"
	StatusShortlisted SelectionStatus = "shortlisted"
	StatusVisited     SelectionStatus = "visited"
	StatusRejected    SelectionStatus = "rejected"
	StatusPurchased   SelectionStatus = "purchased"
)

// ValidStatus reports whether s is one of the five enumerated statuses.
// Any status may be set to any other; no ordering is enforced.
func ValidStatus(s SelectionStatus) bool {
	switch s {
	case StatusInterested, StatusShortlisted, StatusVisited, StatusRejected, StatusPurchased:
		return true
	}
	return false
}

// SelectedProperty is a user's saved reference to a property. The selection ID
// is distinct from the property ID: the same property could in principle be
// reselected after removal.
type SelectedProperty struct {
	PropertyDetails
	SelectionID string          `json:"selection_id"`
	SelectedAt  time.Time       `json:"selected_at"`
	Status      SelectionStatus `json:"status"`
	UserNotes   string          `json:"user_notes"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

// SelectionSummary is a read-only aggregate over a user's selections,
// recomputed on demand and never persisted.
type SelectionSummary struct {
	TotalSelected      int                `json:"total_selected"`
	PreferredLocations []string           `json:"preferred_locations"`
	PriceRange         []string           `json:"price_range"`
	BedroomPreferences []int              `json:"bedroom_preferences"`
	SelectionPattern   string             `json:"selection_pattern"`
	RecentSelections   []SelectedProperty `json:"recent_selections"`
}

// Preferences holds a user's persisted free-text preference notes and the
// last search results shown to them.
type Preferences struct {
	Notes       string            `json:"preferences"`
	LastResults []PropertyDetails `json:"last_results,omitempty"`
	SavedAt     time.Time         `json:"saved_at"`
}
