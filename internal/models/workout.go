package models

// Exercise is a single timed movement within a section. Duration is the work
// phase; Rest is optional and empty when the exercise has no rest phase.
type Exercise struct {
	Name     string        `json:"name" yaml:"name"`
	Duration DurationToken `json:"duration" yaml:"duration"`
	Rest     DurationToken `json:"rest,omitempty" yaml:"rest,omitempty"`
}

// Section groups an ordered run of exercises under a title ("Warm Up",
// "Main Workout", ...).
type Section struct {
	Title     string     `json:"title" yaml:"title"`
	Exercises []Exercise `json:"exercises" yaml:"exercises"`
}

// WorkoutTemplate is an immutable catalog entry. Sessions are instantiated
// from templates and never mutate them.
type WorkoutTemplate struct {
	ID              string    `json:"id" yaml:"id"`
	Name            string    `json:"name" yaml:"name"`
	DurationMinutes int       `json:"duration_minutes" yaml:"duration_minutes"`
	Sections        []Section `json:"sections" yaml:"sections"`
}

// TotalExercises returns the number of exercises across all sections.
func (t WorkoutTemplate) TotalExercises() int {
	total := 0
	for _, s := range t.Sections {
		total += len(s.Exercises)
	}
	return total
}

// ExerciseAt returns the exercise at the given zero-based position, or false
// when either index is out of range.
func (t WorkoutTemplate) ExerciseAt(section, exercise int) (Exercise, bool) {
	if section < 0 || section >= len(t.Sections) {
		return Exercise{}, false
	}
	sec := t.Sections[section]
	if exercise < 0 || exercise >= len(sec.Exercises) {
		return Exercise{}, false
	}
	return sec.Exercises[exercise], true
}
