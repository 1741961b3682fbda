package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"homeadvisor/internal/model"
)

func TestFile_RoundTrip(t *testing.T) {
	ctx := context.Background()
	st, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	defer st.Close()

	selections := []model.SelectedProperty{
		{PropertyDetails: model.PropertyDetails{ID: "p1", Name: "A", Price: "₹90 Lakh"}, SelectionID: "s1", Status: model.StatusInterested},
	}
	if err := st.PutSelections(ctx, "u1", selections); err != nil {
		t.Fatalf("PutSelections failed: %v", err)
	}

	got, err := st.GetSelections(ctx, "u1")
	if err != nil {
		t.Fatalf("GetSelections failed: %v", err)
	}
	if len(got) != 1 || got[0].SelectionID != "s1" || got[0].Price != "₹90 Lakh" {
		t.Errorf("unexpected selections after reload: %v", got)
	}

	if _, err := st.GetPreferences(ctx, "u1"); !errors.Is(err, ErrNoPreferences) {
		t.Fatalf("expected ErrNoPreferences, got %v", err)
	}
	if err := st.PutPreferences(ctx, "u1", &model.Preferences{Notes: "quiet area"}); err != nil {
		t.Fatalf("PutPreferences failed: %v", err)
	}
	prefs, err := st.GetPreferences(ctx, "u1")
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}
	if prefs.Notes != "quiet area" {
		t.Errorf("notes = %q", prefs.Notes)
	}
}

func TestFile_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	if err := first.PutSelections(ctx, "u1", []model.SelectedProperty{
		{PropertyDetails: model.PropertyDetails{ID: "p1", Name: "A"}, SelectionID: "s1"},
	}); err != nil {
		t.Fatalf("PutSelections failed: %v", err)
	}
	first.Close()

	second, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile reopen failed: %v", err)
	}
	defer second.Close()

	got, err := second.GetSelections(ctx, "u1")
	if err != nil {
		t.Fatalf("GetSelections failed: %v", err)
	}
	if len(got) != 1 || got[0].SelectionID != "s1" {
		t.Errorf("expected selection to survive restart, got %v", got)
	}
}

func TestFile_MalformedFileTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "selected_properties.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	st, err := NewFile(dir)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	defer st.Close()

	got, err := st.GetSelections(ctx, "u1")
	if err != nil {
		t.Fatalf("GetSelections on malformed file failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected malformed file to read as empty, got %v", got)
	}

	// Writes recover the file.
	if err := st.PutSelections(ctx, "u1", []model.SelectedProperty{
		{PropertyDetails: model.PropertyDetails{ID: "p1"}, SelectionID: "s1"},
	}); err != nil {
		t.Fatalf("PutSelections failed: %v", err)
	}
	got, _ = st.GetSelections(ctx, "u1")
	if len(got) != 1 {
		t.Errorf("expected write to recover storage, got %v", got)
	}
}

func TestFile_UsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	st, err := NewFile(t.TempDir())
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	defer st.Close()

	st.PutSelections(ctx, "u1", []model.SelectedProperty{
		{PropertyDetails: model.PropertyDetails{ID: "p1"}, SelectionID: "s1"},
	})

	got, err := st.GetSelections(ctx, "u2")
	if err != nil {
		t.Fatalf("GetSelections failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no selections for u2, got %v", got)
	}
}
