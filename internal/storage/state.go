package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/claude/repcycle/internal/models"
)

// Keys in the app_state table. The table is the single namespace holding
// everything that is not the history ledger.
const (
	keyActiveSession = "active_session"
	keyCounters      = "counters"
	keyCatalog       = "catalog"
)

func (s *Store) setState(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

func (s *Store) deleteState(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// getState decodes the value under key into out. Returns false when the key
// is absent or the stored value is malformed; malformed values are logged
// and treated as absent. A failed decode can leave out partially populated,
// so callers must discard it and return their zero value on false.
func (s *Store) getState(ctx context.Context, key string, out any) bool {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		s.log.Warn("reading app state failed, using defaults", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.log.Warn("malformed app state, using defaults", "key", key, "error", err)
		return false
	}
	return true
}

// SaveSession persists the active session snapshot; a nil session clears it.
func (s *Store) SaveSession(ctx context.Context, session *models.WorkoutSession) error {
	if session == nil {
		return s.deleteState(ctx, keyActiveSession)
	}
	return s.setState(ctx, keyActiveSession, session)
}

// LoadSession returns the persisted active session, or nil when there is
// none or the snapshot cannot be decoded.
func (s *Store) LoadSession(ctx context.Context) *models.WorkoutSession {
	var session models.WorkoutSession
	if !s.getState(ctx, keyActiveSession, &session) {
		return nil
	}
	return &session
}

// SaveCounters persists the aggregate counters.
func (s *Store) SaveCounters(ctx context.Context, c models.Counters) error {
	return s.setState(ctx, keyCounters, c)
}

// LoadCounters returns the persisted counters, zero-valued when absent or
// malformed.
func (s *Store) LoadCounters(ctx context.Context) models.Counters {
	var c models.Counters
	if !s.getState(ctx, keyCounters, &c) {
		return models.Counters{}
	}
	return c
}

// SaveCatalog persists the workout template catalog.
func (s *Store) SaveCatalog(ctx context.Context, templates []models.WorkoutTemplate) error {
	return s.setState(ctx, keyCatalog, templates)
}

// LoadCatalog returns the persisted catalog, nil when absent or malformed;
// the caller falls back to the built-in templates.
func (s *Store) LoadCatalog(ctx context.Context) []models.WorkoutTemplate {
	var templates []models.WorkoutTemplate
	if !s.getState(ctx, keyCatalog, &templates) {
		return nil
	}
	return templates
}
