package models

// HistoryEntry is one calendar day's recorded outcome. Exactly one entry
// exists per date; partial sessions record Progress < 100 with
// Completed=false.
type HistoryEntry struct {
	Date      Date `json:"date"`
	Completed bool `json:"completed"`
	Progress  int  `json:"progress"`
}

// Counters are the running totals persisted alongside the history ledger.
// TotalWorkouts and TotalTimeSpentMinutes only ever grow, on session
// completion; the week- and streak-shaped figures in Stats are recomputed
// from the ledger instead of trusted incrementally.
type Counters struct {
	TotalWorkouts         int `json:"total_workouts"`
	WeeklyGoal            int `json:"weekly_goal"`
	ThisWeekCompleted     int `json:"this_week_completed"`
	TotalTimeSpentMinutes int `json:"total_time_spent"`
}

// Stats is the aggregate view served to collaborators.
type Stats struct {
	CurrentStreak         int `json:"current_streak"`
	WeeklyGoal            int `json:"weekly_goal"`
	ThisWeekCompleted     int `json:"this_week_completed"`
	TotalWorkouts         int `json:"total_workouts"`
	TotalTimeSpentMinutes int `json:"total_time_spent"`
}
