package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"homeadvisor/internal/model"
)

const userStateSchema = `
CREATE TABLE IF NOT EXISTS user_state (
	user_id     TEXT PRIMARY KEY,
	selections  JSONB,
	preferences JSONB,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Postgres is the production Store. Each user's selections and preferences
// are stored as JSONB documents in a single row, keeping the same record
// granularity as the file store.
type Postgres struct {
	db *sqlx.DB
}

// NewPostgres connects to PostgreSQL and ensures the schema exists.
func NewPostgres(dsn string, maxConn, maxIdleConn int) (*Postgres, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(userStateSchema); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return &Postgres{db: db}, nil
}

// GetSelections returns the user's saved properties in insertion order.
func (p *Postgres) GetSelections(ctx context.Context, userID string) ([]model.SelectedProperty, error) {
	var raw []byte
	err := p.db.GetContext(ctx, &raw,
		`SELECT selections FROM user_state WHERE user_id = $1 AND selections IS NOT NULL`, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load selections: %w", err)
	}

	var selections []model.SelectedProperty
	if err := json.Unmarshal(raw, &selections); err != nil {
		return nil, fmt.Errorf("failed to decode selections: %w", err)
	}
	return selections, nil
}

// PutSelections replaces the user's saved properties wholesale.
func (p *Postgres) PutSelections(ctx context.Context, userID string, selections []model.SelectedProperty) error {
	raw, err := json.Marshal(selections)
	if err != nil {
		return fmt.Errorf("failed to encode selections: %w", err)
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO user_state (user_id, selections, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET selections = EXCLUDED.selections, updated_at = NOW()
	`, userID, raw)
	if err != nil {
		return fmt.Errorf("failed to store selections: %w", err)
	}
	return nil
}

// GetPreferences returns the user's saved preferences, or ErrNoPreferences.
func (p *Postgres) GetPreferences(ctx context.Context, userID string) (*model.Preferences, error) {
	var raw []byte
	err := p.db.GetContext(ctx, &raw,
		`SELECT preferences FROM user_state WHERE user_id = $1 AND preferences IS NOT NULL`, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNoPreferences
		}
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	var prefs model.Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return nil, fmt.Errorf("failed to decode preferences: %w", err)
	}
	return &prefs, nil
}

// PutPreferences replaces the user's preferences wholesale.
func (p *Postgres) PutPreferences(ctx context.Context, userID string, prefs *model.Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO user_state (user_id, preferences, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET preferences = EXCLUDED.preferences, updated_at = NOW()
	`, userID, raw)
	if err != nil {
		return fmt.Errorf("failed to store preferences: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (p *Postgres) Close() error {
	return p.db.Close()
}
