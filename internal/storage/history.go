package storage

import (
	"context"
	"fmt"

	"github.com/claude/repcycle/internal/models"
)

// UpsertHistory writes the entry for its date, replacing any existing entry.
// History entries are never deleted; a date's record only ever moves forward.
func (s *Store) UpsertHistory(ctx context.Context, e models.HistoryEntry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO history_entries (date, completed, progress) VALUES (?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET completed = excluded.completed, progress = excluded.progress`,
		e.Date.String(), e.Completed, e.Progress,
	)
	if err != nil {
		return fmt.Errorf("upserting history entry for %s: %w", e.Date, err)
	}
	return nil
}

// History returns all ledger entries ordered by date ascending. Rows with an
// unparseable date are skipped with a warning rather than failing the read.
func (s *Store) History(ctx context.Context) ([]models.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, completed, progress FROM history_entries ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var dateStr string
		var e models.HistoryEntry
		if err := rows.Scan(&dateStr, &e.Completed, &e.Progress); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		d, err := models.ParseDate(dateStr)
		if err != nil {
			s.log.Warn("skipping history row with bad date", "date", dateStr, "error", err)
			continue
		}
		e.Date = d
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
