package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"homeadvisor/internal/model"
	"homeadvisor/internal/store"
	"homeadvisor/internal/utils"
)

// Domain errors surfaced by the selection manager. Handlers map these to
// HTTP statuses with errors.Is.
var (
	ErrDuplicateSelection = errors.New("property already in selections")
	ErrSelectionNotFound  = errors.New("selection not found")
	ErrInvalidStatus      = errors.New("invalid selection status")
)

// SelectionManager owns all per-user SelectedProperty state. Every mutation
// is a read-modify-write of the user's whole record, serialized per user by
// a keyed mutex so concurrent calls for the same user cannot lose updates.
type SelectionManager struct {
	store store.Store
	locks *store.KeyedMutex
}

// NewSelectionManager creates a selection manager over the given store.
func NewSelectionManager(st store.Store) *SelectionManager {
	return &SelectionManager{
		store: st,
		locks: store.NewKeyedMutex(),
	}
}

// Add saves a property for the user with status "interested", a fresh
// selection ID and the current timestamp. Adding a property whose identity
// (ID or link) is already selected fails with ErrDuplicateSelection.
// Returns the new record and the user's updated selection count.
func (m *SelectionManager) Add(ctx context.Context, userID string, property model.PropertyDetails) (*model.SelectedProperty, int, error) {
	m.locks.Lock(userID)
	defer m.locks.Unlock(userID)

	selections, err := m.store.GetSelections(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	identity := property.Identity()
	for _, existing := range selections {
		if identity != "" && existing.Identity() == identity {
			return nil, len(selections), fmt.Errorf("%w: %s", ErrDuplicateSelection, property.Name)
		}
	}

	selected := model.SelectedProperty{
		PropertyDetails: property,
		SelectionID:     uuid.NewString(),
		SelectedAt:      time.Now().UTC(),
		Status:          model.StatusInterested,
		UserNotes:       "",
	}
	selections = append(selections, selected)

	if err := m.store.PutSelections(ctx, userID, selections); err != nil {
		return nil, 0, err
	}
	return &selected, len(selections), nil
}

// UpdateStatus sets a new status (and notes, when provided) on the user's
// selection. The selection timestamp is unchanged; UpdatedAt records the
// edit. Any status may be set to any other status.
func (m *SelectionManager) UpdateStatus(ctx context.Context, userID, selectionID string, status model.SelectionStatus, notes *string) error {
	if !model.ValidStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	m.locks.Lock(userID)
	defer m.locks.Unlock(userID)

	selections, err := m.store.GetSelections(ctx, userID)
	if err != nil {
		return err
	}

	for i := range selections {
		if selections[i].SelectionID == selectionID {
			selections[i].Status = status
			if notes != nil {
				selections[i].UserNotes = *notes
			}
			now := time.Now().UTC()
			selections[i].UpdatedAt = &now
			return m.store.PutSelections(ctx, userID, selections)
		}
	}
	return fmt.Errorf("%w: %s", ErrSelectionNotFound, selectionID)
}

// Remove deletes the user's selection. Removing an unknown selection ID
// fails with ErrSelectionNotFound.
func (m *SelectionManager) Remove(ctx context.Context, userID, selectionID string) (*model.SelectedProperty, error) {
	m.locks.Lock(userID)
	defer m.locks.Unlock(userID)

	selections, err := m.store.GetSelections(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range selections {
		if selections[i].SelectionID == selectionID {
			removed := selections[i]
			selections = append(selections[:i], selections[i+1:]...)
			if err := m.store.PutSelections(ctx, userID, selections); err != nil {
				return nil, err
			}
			return &removed, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSelectionNotFound, selectionID)
}

// List returns the user's selections in insertion order along with the
// summary derived from the same snapshot, so the two can never drift.
func (m *SelectionManager) List(ctx context.Context, userID string) ([]model.SelectedProperty, *model.SelectionSummary, error) {
	selections, err := m.store.GetSelections(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if selections == nil {
		selections = []model.SelectedProperty{}
	}
	return selections, Summarize(selections), nil
}

// Clear removes all of the user's selections.
func (m *SelectionManager) Clear(ctx context.Context, userID string) error {
	m.locks.Lock(userID)
	defer m.locks.Unlock(userID)
	return m.store.PutSelections(ctx, userID, []model.SelectedProperty{})
}

// Summary recomputes the user's selection summary on demand.
func (m *SelectionManager) Summary(ctx context.Context, userID string) (*model.SelectionSummary, error) {
	selections, err := m.store.GetSelections(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Summarize(selections), nil
}

// Summarize derives the read-only aggregate from a selection snapshot.
func Summarize(selections []model.SelectedProperty) *model.SelectionSummary {
	if len(selections) == 0 {
		return &model.SelectionSummary{
			TotalSelected:      0,
			PreferredLocations: []string{},
			PriceRange:         []string{},
			BedroomPreferences: []int{},
			SelectionPattern:   "User hasn't selected any properties yet",
			RecentSelections:   []model.SelectedProperty{},
		}
	}

	var locations []string
	seenLocations := map[string]bool{}
	var buckets []string
	seenBuckets := map[string]bool{}
	var bedrooms []int
	seenBedrooms := map[int]bool{}

	for _, sel := range selections {
		if sel.Location != "" && !seenLocations[sel.Location] {
			seenLocations[sel.Location] = true
			locations = append(locations, sel.Location)
		}
		if bucket := utils.PriceBucket(sel.Price); bucket != "" && !seenBuckets[bucket] {
			seenBuckets[bucket] = true
			buckets = append(buckets, bucket)
		}
		if sel.Bedrooms > 0 && !seenBedrooms[sel.Bedrooms] {
			seenBedrooms[sel.Bedrooms] = true
			bedrooms = append(bedrooms, sel.Bedrooms)
		}
	}

	recent := selections
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	recentCopy := make([]model.SelectedProperty, len(recent))
	copy(recentCopy, recent)

	pattern := fmt.Sprintf("User has selected %d properties", len(selections))
	if len(locations) > 0 {
		shown := locations
		if len(shown) > 3 {
			shown = shown[:3]
		}
		pattern += ", showing interest in " + strings.Join(shown, ", ")
	}

	return &model.SelectionSummary{
		TotalSelected:      len(selections),
		PreferredLocations: emptyIfNil(locations),
		PriceRange:         emptyIfNil(buckets),
		BedroomPreferences: emptyIntIfNil(bedrooms),
		SelectionPattern:   pattern,
		RecentSelections:   recentCopy,
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func emptyIntIfNil(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}
