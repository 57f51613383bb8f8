// Package progress derives aggregate figures from the history ledger. Every
// function is pure and recomputed on demand; nothing here caches state that
// could desync from the ledger.
package progress

import (
	"sort"
	"time"

	"github.com/claude/repcycle/internal/models"
)

// Streak returns the number of consecutive completed days ending at the most
// recent history entry. The run breaks at the first entry with
// Completed=false and at the first missing calendar date.
func Streak(entries []models.HistoryEntry) int {
	if len(entries) == 0 {
		return 0
	}
	sorted := make([]models.HistoryEntry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[j].Date.Before(sorted[i].Date)
	})

	streak := 0
	for i, e := range sorted {
		if !e.Completed {
			break
		}
		if i > 0 && !sorted[i-1].Date.AddDays(-1).Equal(e.Date) {
			break
		}
		streak++
	}
	return streak
}

// WeekStart returns the most recent occurrence of the given weekday on or
// before today. With weekStart=Monday a Sunday belongs to the week begun
// six days earlier.
func WeekStart(today models.Date, weekStart time.Weekday) models.Date {
	offset := (int(today.Weekday()) - int(weekStart) + 7) % 7
	return today.AddDays(-offset)
}

// WeeklyCompleted counts completed entries dated within the current week:
// on or after the week-start boundary and on or before today.
func WeeklyCompleted(entries []models.HistoryEntry, today models.Date, weekStart time.Weekday) int {
	start := WeekStart(today, weekStart)
	count := 0
	for _, e := range entries {
		if !e.Completed {
			continue
		}
		if e.Date.Before(start) || today.Before(e.Date) {
			continue
		}
		count++
	}
	return count
}
