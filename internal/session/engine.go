// Package session owns the workout session lifecycle: one active session at
// a time, advanced exercise by exercise, with every mutation persisted
// synchronously and mirrored into the history ledger.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/claude/repcycle/internal/catalog"
	"github.com/claude/repcycle/internal/models"
	"github.com/claude/repcycle/internal/progress"
	"github.com/claude/repcycle/internal/storage"
)

var (
	// ErrNoSession is returned by operations that need an active session
	// when there is none. Callers treat it as a no-op condition, not a
	// failure.
	ErrNoSession = errors.New("no active session")

	// ErrExerciseNotFound is returned for a (section, exercise) position
	// outside the active session's template shape.
	ErrExerciseNotFound = errors.New("exercise not found")
)

// fallbackDurationMinutes credits a completed session whose template
// carries no nominal duration.
const fallbackDurationMinutes = 30

// defaultWeeklyGoal applies when the engine is built without a configured
// goal.
const defaultWeeklyGoal = 5

// Engine is the single writer for session state. All operations take the
// mutex, mutate a copy-on-write session value, and persist before
// returning, so a crash between calls loses at most the in-flight one.
type Engine struct {
	mu      sync.Mutex
	store   *storage.Store
	catalog *catalog.Catalog
	now     func() time.Time
	log     *slog.Logger

	weeklyGoal int
	weekStart  time.Weekday

	current  *models.WorkoutSession
	counters models.Counters
}

// New builds an engine over the given store and catalog, restoring any
// persisted session and counters. now may be nil for wall-clock time.
func New(store *storage.Store, cat *catalog.Catalog, weeklyGoal int, weekStart time.Weekday, now func() time.Time, log *slog.Logger) *Engine {
	if now == nil {
		now = time.Now
	}
	if weeklyGoal <= 0 {
		weeklyGoal = defaultWeeklyGoal
	}
	e := &Engine{
		store:      store,
		catalog:    cat,
		now:        now,
		log:        log,
		weeklyGoal: weeklyGoal,
		weekStart:  weekStart,
	}
	ctx := context.Background()
	e.current = store.LoadSession(ctx)
	e.counters = store.LoadCounters(ctx)
	// The configured goal is authoritative; the persisted value only
	// trails it for older snapshots.
	e.counters.WeeklyGoal = weeklyGoal
	return e
}

func (e *Engine) today() models.Date {
	return models.DateOf(e.now())
}

// StartSession instantiates a fresh session from the named template,
// archiving any stale leftover session first. An unknown template id falls
// back to the default template.
func (e *Engine) StartSession(ctx context.Context, templateID string) (models.WorkoutSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current != nil {
		if err := e.archiveIfStaleLocked(ctx); err != nil {
			return models.WorkoutSession{}, err
		}
	}

	tmpl, matched := e.catalog.Get(templateID)
	if !matched {
		e.log.Info("unknown template id, using default", "template_id", templateID, "default", tmpl.ID)
	}

	session := models.NewSession(tmpl, e.today())
	e.current = &session
	if err := e.store.SaveSession(ctx, e.current); err != nil {
		return models.WorkoutSession{}, fmt.Errorf("persisting new session: %w", err)
	}
	e.log.Info("session started", "session_id", session.ID, "template_id", tmpl.ID, "exercises", session.TotalExercises)
	return session, nil
}

// CompleteExerciseAt marks the exercise at the given position completed
// without touching the active position or the session lifecycle flag.
// Re-completing an already-completed exercise changes no counts but still
// re-derives the history entry.
func (e *Engine) CompleteExerciseAt(ctx context.Context, section, exercise int) (models.WorkoutSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return models.WorkoutSession{}, ErrNoSession
	}
	return e.completeExerciseLocked(ctx, section, exercise)
}

// CompleteExerciseIn is CompleteExerciseAt bound to a specific session
// instance: the completion only applies while that session is still the
// active one. A timer that outlives its session cannot touch a replacement
// session through this path.
func (e *Engine) CompleteExerciseIn(ctx context.Context, sessionID uuid.UUID, section, exercise int) (models.WorkoutSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil || e.current.ID != sessionID {
		return models.WorkoutSession{}, fmt.Errorf("%w: session %s is no longer active", ErrNoSession, sessionID)
	}
	return e.completeExerciseLocked(ctx, section, exercise)
}

func (e *Engine) completeExerciseLocked(ctx context.Context, section, exercise int) (models.WorkoutSession, error) {
	updated, ok := e.current.WithExerciseDone(section, exercise)
	if !ok {
		return models.WorkoutSession{}, fmt.Errorf("%w: section %d exercise %d", ErrExerciseNotFound, section, exercise)
	}
	if updated.StartDate.IsZero() {
		updated.StartDate = e.today()
	}
	// The active position never moves backwards behind a manually
	// completed exercise; it always points at the first remaining one.
	if sec, ex, found := updated.NextIncomplete(); found {
		updated.ActiveSection, updated.ActiveExercise = sec, ex
	}
	e.current = &updated

	if err := e.writeHistoryLocked(ctx); err != nil {
		return models.WorkoutSession{}, err
	}
	if err := e.store.SaveSession(ctx, e.current); err != nil {
		return models.WorkoutSession{}, fmt.Errorf("persisting session: %w", err)
	}
	return updated, nil
}

// AdvanceExercise completes the exercise at the active position and moves
// the position to the next incomplete exercise, wrapping across sections.
// Completing the final exercise finalizes the session: the day's history
// entry becomes completed/100 and the aggregate counters are credited.
func (e *Engine) AdvanceExercise(ctx context.Context) (models.WorkoutSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return models.WorkoutSession{}, ErrNoSession
	}
	if e.current.Completed {
		return *e.current, nil
	}

	updated, ok := e.current.WithExerciseDone(e.current.ActiveSection, e.current.ActiveExercise)
	if !ok {
		return models.WorkoutSession{}, fmt.Errorf("%w: active position %d/%d", ErrExerciseNotFound, e.current.ActiveSection, e.current.ActiveExercise)
	}
	if updated.StartDate.IsZero() {
		updated.StartDate = e.today()
	}

	sec, ex, found := updated.NextIncomplete()
	if !found {
		return e.finalizeLocked(ctx, updated)
	}

	updated.ActiveSection, updated.ActiveExercise = sec, ex
	e.current = &updated
	if err := e.writeHistoryLocked(ctx); err != nil {
		return models.WorkoutSession{}, err
	}
	if err := e.store.SaveSession(ctx, e.current); err != nil {
		return models.WorkoutSession{}, fmt.Errorf("persisting session: %w", err)
	}
	return updated, nil
}

// finalizeLocked transitions the session to Completed and credits the
// aggregate counters exactly once.
func (e *Engine) finalizeLocked(ctx context.Context, updated models.WorkoutSession) (models.WorkoutSession, error) {
	updated.Completed = true
	e.current = &updated

	entry := models.HistoryEntry{Date: updated.StartDate, Completed: true, Progress: 100}
	if err := e.store.UpsertHistory(ctx, entry); err != nil {
		return models.WorkoutSession{}, err
	}

	minutes := updated.DurationMinutes
	if minutes == 0 {
		minutes = fallbackDurationMinutes
	}
	e.counters.TotalWorkouts++
	e.counters.ThisWeekCompleted++
	e.counters.TotalTimeSpentMinutes += minutes
	if err := e.store.SaveCounters(ctx, e.counters); err != nil {
		return models.WorkoutSession{}, fmt.Errorf("persisting counters: %w", err)
	}
	if err := e.store.SaveSession(ctx, e.current); err != nil {
		return models.WorkoutSession{}, fmt.Errorf("persisting session: %w", err)
	}
	e.log.Info("workout completed", "session_id", updated.ID, "minutes", minutes, "total_workouts", e.counters.TotalWorkouts)
	return updated, nil
}

// writeHistoryLocked derives the current session's history entry and
// upserts it. A session with zero completed exercises leaves the ledger
// alone, so an untouched session never manufactures a day record.
func (e *Engine) writeHistoryLocked(ctx context.Context) error {
	s := e.current
	total, completed := s.Counts()
	if completed == 0 {
		return nil
	}
	entry := models.HistoryEntry{
		Date:      s.StartDate,
		Completed: total > 0 && completed == total,
		Progress:  s.Progress(),
	}
	return e.store.UpsertHistory(ctx, entry)
}

// SavePartialProgress re-derives the session's counts and records them in
// the ledger without advancing the position or completing the session.
// Called with no active session it is a no-op. This is how an abandoned
// session still earns partial credit.
func (e *Engine) SavePartialProgress(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return nil
	}
	updated := *e.current
	updated.TotalExercises, updated.CompletedExercises = updated.Counts()
	if updated.StartDate.IsZero() {
		updated.StartDate = e.today()
	}
	e.current = &updated

	if err := e.writeHistoryLocked(ctx); err != nil {
		return err
	}
	if err := e.store.SaveSession(ctx, e.current); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}
	return nil
}

// CheckStaleSession archives a session started on a previous calendar day:
// its last known progress is written to the ledger as not-completed and the
// active session is cleared. A session started today, or one with no
// progress at all, is left untouched. Safe to call repeatedly.
func (e *Engine) CheckStaleSession(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.archiveIfStaleLocked(ctx)
}

func (e *Engine) archiveIfStaleLocked(ctx context.Context) error {
	s := e.current
	if s == nil || s.StartDate.IsZero() {
		return nil
	}
	if s.StartDate.Equal(e.today()) {
		return nil
	}
	_, completed := s.Counts()
	if completed == 0 {
		return nil
	}

	// A day cannot be retroactively completed once abandoned across a
	// date boundary.
	entry := models.HistoryEntry{
		Date:      s.StartDate,
		Completed: false,
		Progress:  s.Progress(),
	}
	if err := e.store.UpsertHistory(ctx, entry); err != nil {
		return err
	}
	e.current = nil
	if err := e.store.SaveSession(ctx, nil); err != nil {
		return fmt.Errorf("clearing stale session: %w", err)
	}
	e.log.Info("stale session archived", "start_date", entry.Date, "progress", entry.Progress)
	return nil
}

// ResetSession discards the active session without writing history. Used
// for discard-and-restart flows.
func (e *Engine) ResetSession(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.current = nil
	if err := e.store.SaveSession(ctx, nil); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Session returns a snapshot of the active session, if any.
func (e *Engine) Session(ctx context.Context) (models.WorkoutSession, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return models.WorkoutSession{}, false
	}
	return *e.current, true
}

// History returns the full ledger.
func (e *Engine) History(ctx context.Context) ([]models.HistoryEntry, error) {
	return e.store.History(ctx)
}

// Stats recomputes the streak and weekly figures from the ledger on every
// read; only the lifetime totals come from the stored counters.
func (e *Engine) Stats(ctx context.Context) (models.Stats, error) {
	entries, err := e.store.History(ctx)
	if err != nil {
		return models.Stats{}, fmt.Errorf("reading history: %w", err)
	}

	e.mu.Lock()
	counters := e.counters
	today := e.today()
	weekStart := e.weekStart
	e.mu.Unlock()

	return models.Stats{
		CurrentStreak:         progress.Streak(entries),
		WeeklyGoal:            counters.WeeklyGoal,
		ThisWeekCompleted:     progress.WeeklyCompleted(entries, today, weekStart),
		TotalWorkouts:         counters.TotalWorkouts,
		TotalTimeSpentMinutes: counters.TotalTimeSpentMinutes,
	}, nil
}

// Templates exposes the catalog for read-only collaborators.
func (e *Engine) Templates() []models.WorkoutTemplate {
	return e.catalog.List()
}

// Template resolves a template id, reporting whether it matched.
func (e *Engine) Template(id string) (models.WorkoutTemplate, bool) {
	return e.catalog.Get(id)
}
