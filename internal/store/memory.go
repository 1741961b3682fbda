package store

import (
	"context"
	"sync"

	"homeadvisor/internal/model"
)

// Memory is an in-process Store used in tests and for ephemeral development
// runs. State is lost on restart.
type Memory struct {
	mu          sync.RWMutex
	selections  map[string][]model.SelectedProperty
	preferences map[string]*model.Preferences
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		selections:  make(map[string][]model.SelectedProperty),
		preferences: make(map[string]*model.Preferences),
	}
}

// GetSelections returns the user's saved properties in insertion order.
func (m *Memory) GetSelections(_ context.Context, userID string) ([]model.SelectedProperty, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.selections[userID]
	out := make([]model.SelectedProperty, len(stored))
	copy(out, stored)
	return out, nil
}

// PutSelections replaces the user's saved properties wholesale.
func (m *Memory) PutSelections(_ context.Context, userID string, selections []model.SelectedProperty) error {
	stored := make([]model.SelectedProperty, len(selections))
	copy(stored, selections)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.selections[userID] = stored
	return nil
}

// GetPreferences returns the user's saved preferences, or ErrNoPreferences.
func (m *Memory) GetPreferences(_ context.Context, userID string) (*model.Preferences, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	prefs, ok := m.preferences[userID]
	if !ok {
		return nil, ErrNoPreferences
	}
	out := *prefs
	return &out, nil
}

// PutPreferences replaces the user's preferences wholesale.
func (m *Memory) PutPreferences(_ context.Context, userID string, prefs *model.Preferences) error {
	stored := *prefs

	m.mu.Lock()
	defer m.mu.Unlock()
	m.preferences[userID] = &stored
	return nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error {
	return nil
}
