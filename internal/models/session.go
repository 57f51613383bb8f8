package models

import (
	"math"

	"github.com/google/uuid"
)

// SessionExercise is one exercise inside an active session: the template
// exercise plus its completion flag.
type SessionExercise struct {
	Exercise
	Done bool `json:"done"`
}

// SessionSection mirrors a template section with per-exercise flags.
type SessionSection struct {
	Title     string            `json:"title"`
	Exercises []SessionExercise `json:"exercises"`
}

// WorkoutSession is one attempt at a WorkoutTemplate. It snapshots the
// template shape at start time, so later catalog edits never alias into a
// running session. Mutation helpers are copy-on-write: they return a new
// value and leave the receiver untouched.
type WorkoutSession struct {
	ID              uuid.UUID        `json:"id"`
	TemplateID      string           `json:"template_id"`
	Name            string           `json:"name"`
	DurationMinutes int              `json:"duration_minutes"`
	Sections        []SessionSection `json:"sections"`
	StartDate       Date             `json:"start_date"`
	ActiveSection   int              `json:"active_section"`
	ActiveExercise  int              `json:"active_exercise"`
	Started         bool             `json:"started"`
	Completed       bool             `json:"completed"`

	// Derived from the flags on every mutation; invariant:
	// 0 <= CompletedExercises <= TotalExercises.
	TotalExercises     int `json:"total_exercises"`
	CompletedExercises int `json:"completed_exercises"`
}

// NewSession instantiates a fresh session from a template with every
// completion flag cleared and the position at section 0 / exercise 0.
func NewSession(t WorkoutTemplate, startDate Date) WorkoutSession {
	sections := make([]SessionSection, len(t.Sections))
	for i, sec := range t.Sections {
		exercises := make([]SessionExercise, len(sec.Exercises))
		for j, ex := range sec.Exercises {
			exercises[j] = SessionExercise{Exercise: ex}
		}
		sections[i] = SessionSection{Title: sec.Title, Exercises: exercises}
	}
	s := WorkoutSession{
		ID:              uuid.New(),
		TemplateID:      t.ID,
		Name:            t.Name,
		DurationMinutes: t.DurationMinutes,
		Sections:        sections,
		StartDate:       startDate,
		Started:         true,
	}
	s.TotalExercises, s.CompletedExercises = s.Counts()
	return s
}

// Counts walks the flags and returns (total, completed).
func (s WorkoutSession) Counts() (total, completed int) {
	for _, sec := range s.Sections {
		total += len(sec.Exercises)
		for _, ex := range sec.Exercises {
			if ex.Done {
				completed++
			}
		}
	}
	return total, completed
}

// Progress returns the completion percentage, rounded to the nearest
// integer. A session with no exercises reports 0.
func (s WorkoutSession) Progress() int {
	total, completed := s.Counts()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// ExerciseAt returns the session exercise at the given position, or false
// when either index is out of range.
func (s WorkoutSession) ExerciseAt(section, exercise int) (SessionExercise, bool) {
	if section < 0 || section >= len(s.Sections) {
		return SessionExercise{}, false
	}
	sec := s.Sections[section]
	if exercise < 0 || exercise >= len(sec.Exercises) {
		return SessionExercise{}, false
	}
	return sec.Exercises[exercise], true
}

// WithExerciseDone returns a copy of the session with the identified
// exercise marked completed and the derived counts refreshed. Only the
// touched section's exercise slice is copied; untouched sections are
// shared with the receiver. Returns false when the position is out of
// range, leaving the receiver as the result.
func (s WorkoutSession) WithExerciseDone(section, exercise int) (WorkoutSession, bool) {
	if _, ok := s.ExerciseAt(section, exercise); !ok {
		return s, false
	}
	sections := make([]SessionSection, len(s.Sections))
	copy(sections, s.Sections)
	exercises := make([]SessionExercise, len(sections[section].Exercises))
	copy(exercises, sections[section].Exercises)
	exercises[exercise].Done = true
	sections[section].Exercises = exercises

	s.Sections = sections
	s.TotalExercises, s.CompletedExercises = s.Counts()
	return s, true
}

// NextIncomplete returns the position of the first not-yet-completed
// exercise in document order, or false when every exercise is done.
func (s WorkoutSession) NextIncomplete() (section, exercise int, ok bool) {
	for i, sec := range s.Sections {
		for j, ex := range sec.Exercises {
			if !ex.Done {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}
