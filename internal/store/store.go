package store

import (
	"context"
	"errors"

	"homeadvisor/internal/model"
)

// ErrNoPreferences is returned when a user has never saved preferences.
// It is a "nothing saved yet" condition, distinct from other failures.
var ErrNoPreferences = errors.New("no preferences saved for user")

// Store is the key-value persistence abstraction for per-user state.
// Implementations hold data keyed by user ID; callers that read-modify-write
// must serialize per user (see KeyedMutex) — the store itself only guarantees
// that individual Get/Put calls are safe for concurrent use.
type Store interface {
	// GetSelections returns the user's saved properties in insertion order.
	// A user with no selections yields an empty slice, not an error.
	GetSelections(ctx context.Context, userID string) ([]model.SelectedProperty, error)

	// PutSelections replaces the user's saved properties wholesale.
	PutSelections(ctx context.Context, userID string, selections []model.SelectedProperty) error

	// GetPreferences returns the user's saved preferences, or ErrNoPreferences.
	GetPreferences(ctx context.Context, userID string) (*model.Preferences, error)

	// PutPreferences replaces the user's preferences wholesale.
	PutPreferences(ctx context.Context, userID string, prefs *model.Preferences) error

	// Close releases any resources held by the store.
	Close() error
}

var (
	_ Store = (*Memory)(nil)
	_ Store = (*File)(nil)
	_ Store = (*Postgres)(nil)
)
