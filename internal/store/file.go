package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"homeadvisor/internal/model"
)

const (
	selectionsFile  = "selected_properties.json"
	preferencesFile = "preferences.json"
)

// File is a flat-file JSON Store. Each concern lives in one file holding a
// map from user ID to that user's record, matching the layout a small
// single-node deployment would use. Writes are atomic (temp file + rename).
type File struct {
	mu      sync.Mutex
	dataDir string
}

// NewFile creates a file store rooted at dataDir, creating the directory if
// needed.
func NewFile(dataDir string) (*File, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &File{dataDir: dataDir}, nil
}

// GetSelections returns the user's saved properties in insertion order.
func (f *File) GetSelections(_ context.Context, userID string) ([]model.SelectedProperty, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data := map[string][]model.SelectedProperty{}
	if err := f.readFile(selectionsFile, &data); err != nil {
		return nil, err
	}
	return data[userID], nil
}

// PutSelections replaces the user's saved properties wholesale.
func (f *File) PutSelections(_ context.Context, userID string, selections []model.SelectedProperty) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data := map[string][]model.SelectedProperty{}
	if err := f.readFile(selectionsFile, &data); err != nil {
		return err
	}
	data[userID] = selections
	return f.writeFile(selectionsFile, data)
}

// GetPreferences returns the user's saved preferences, or ErrNoPreferences.
func (f *File) GetPreferences(_ context.Context, userID string) (*model.Preferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data := map[string]*model.Preferences{}
	if err := f.readFile(preferencesFile, &data); err != nil {
		return nil, err
	}
	prefs, ok := data[userID]
	if !ok || prefs == nil {
		return nil, ErrNoPreferences
	}
	return prefs, nil
}

// PutPreferences replaces the user's preferences wholesale.
func (f *File) PutPreferences(_ context.Context, userID string, prefs *model.Preferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data := map[string]*model.Preferences{}
	if err := f.readFile(preferencesFile, &data); err != nil {
		return err
	}
	data[userID] = prefs
	return f.writeFile(preferencesFile, data)
}

// Close is a no-op for the file store.
func (f *File) Close() error {
	return nil
}

// readFile loads a JSON file into target. A missing or malformed file is
// treated as empty: losing scratch data beats refusing to start.
func (f *File) readFile(name string, target interface{}) error {
	path := filepath.Join(f.dataDir, name)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		log.Printf("Warning: %s is malformed, treating as empty: %v", name, err)
		return nil
	}
	return nil
}

// writeFile marshals data and atomically replaces the named file.
func (f *File) writeFile(name string, data interface{}) error {
	raw, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	path := filepath.Join(f.dataDir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
