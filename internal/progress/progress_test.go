package progress

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claude/repcycle/internal/models"
)

func day(t *testing.T, s string) models.Date {
	t.Helper()
	d, err := models.ParseDate(s)
	require.NoError(t, err)
	return d
}

func entry(t *testing.T, date string, completed bool, p int) models.HistoryEntry {
	t.Helper()
	return models.HistoryEntry{Date: day(t, date), Completed: completed, Progress: p}
}

func TestStreakEmptyHistory(t *testing.T) {
	assert.Equal(t, 0, Streak(nil))
}

func TestStreakCountsConsecutiveCompletedDays(t *testing.T) {
	entries := []models.HistoryEntry{
		entry(t, "2025-03-10", true, 100),
		entry(t, "2025-03-11", true, 100),
		entry(t, "2025-03-12", true, 100),
	}
	assert.Equal(t, 3, Streak(entries))
}

func TestStreakBreaksOnIncompleteDay(t *testing.T) {
	entries := []models.HistoryEntry{
		entry(t, "2025-03-10", true, 100),
		entry(t, "2025-03-11", false, 50),
		entry(t, "2025-03-12", true, 100),
	}
	assert.Equal(t, 1, Streak(entries))
}

func TestStreakBreaksOnMissingDay(t *testing.T) {
	// 2025-03-11 is absent: the 03-10 completion does not extend the run.
	entries := []models.HistoryEntry{
		entry(t, "2025-03-10", true, 100),
		entry(t, "2025-03-12", true, 100),
	}
	assert.Equal(t, 1, Streak(entries))
}

func TestStreakZeroWhenMostRecentIncomplete(t *testing.T) {
	entries := []models.HistoryEntry{
		entry(t, "2025-03-11", true, 100),
		entry(t, "2025-03-12", false, 25),
	}
	assert.Equal(t, 0, Streak(entries))
}

// Flipping the most recent entry from completed to incomplete must never
// increase the streak, whatever the rest of the history looks like.
func TestStreakMonotoneUnderMostRecentFlip(t *testing.T) {
	histories := [][]models.HistoryEntry{
		{entry(t, "2025-03-12", true, 100)},
		{entry(t, "2025-03-11", true, 100), entry(t, "2025-03-12", true, 100)},
		{entry(t, "2025-03-09", false, 10), entry(t, "2025-03-11", true, 100), entry(t, "2025-03-12", true, 100)},
	}
	for _, h := range histories {
		before := Streak(h)
		flipped := make([]models.HistoryEntry, len(h))
		copy(flipped, h)
		flipped[len(flipped)-1].Completed = false
		assert.LessOrEqual(t, Streak(flipped), before)
	}
}

func TestWeekStartMonday(t *testing.T) {
	// 2025-03-12 is a Wednesday; the Monday week began on 03-10.
	assert.Equal(t, "2025-03-10", WeekStart(day(t, "2025-03-12"), time.Monday).String())
	// A Monday is its own week start.
	assert.Equal(t, "2025-03-10", WeekStart(day(t, "2025-03-10"), time.Monday).String())
	// A Sunday belongs to the week begun six days earlier.
	assert.Equal(t, "2025-03-10", WeekStart(day(t, "2025-03-16"), time.Monday).String())
}

func TestWeekStartSunday(t *testing.T) {
	assert.Equal(t, "2025-03-09", WeekStart(day(t, "2025-03-12"), time.Sunday).String())
}

func TestWeeklyCompletedWindow(t *testing.T) {
	today := day(t, "2025-03-12") // Wednesday
	entries := []models.HistoryEntry{
		entry(t, "2025-03-08", true, 100),  // previous week
		entry(t, "2025-03-09", true, 100),  // previous week under Monday start
		entry(t, "2025-03-10", true, 100),  // Monday, in window
		entry(t, "2025-03-11", false, 40),  // in window but incomplete
		entry(t, "2025-03-12", true, 100),  // today
		entry(t, "2025-03-14", true, 100),  // future date, excluded
	}
	assert.Equal(t, 2, WeeklyCompleted(entries, today, time.Monday))
	// Under a Sunday week start 03-09 joins the window.
	assert.Equal(t, 3, WeeklyCompleted(entries, today, time.Sunday))
}
