package timer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/claude/repcycle/internal/session"
)

// ErrNoTimer is returned by timer operations when no exercise is being
// displayed.
var ErrNoTimer = errors.New("no active timer")

// Manager owns the single active timer and the handoff between the timer
// and the session engine: switching exercises saves in-flight progress,
// and a finished timer completes its exercise in the session.
type Manager struct {
	mu     sync.Mutex
	engine *session.Engine
	log    *slog.Logger

	timer    *Timer
	session  uuid.UUID
	section  int
	exercise int
}

// NewManager returns a manager with no exercise displayed.
func NewManager(engine *session.Engine, log *slog.Logger) *Manager {
	return &Manager{engine: engine, log: log}
}

// Show makes (section, exercise) the displayed exercise, reconstructing the
// timer from the session's template. The previously displayed timer is
// cancelled and partial progress is saved, mirroring navigation away from
// an exercise screen. Showing the already-displayed exercise keeps the
// existing timer state. An already-completed exercise yields a finished
// timer with nothing left to signal.
func (m *Manager) Show(ctx context.Context, section, exercise int) (Snapshot, error) {
	s, active := m.engine.Session(ctx)
	if !active {
		return Snapshot{}, session.ErrNoSession
	}
	ex, ok := s.ExerciseAt(section, exercise)
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: section %d exercise %d", session.ErrExerciseNotFound, section, exercise)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.timer != nil && m.session == s.ID && m.section == section && m.exercise == exercise {
		return m.timer.Snapshot(), nil
	}
	m.dismissLocked(ctx)

	t := New(ex.Exercise, m.finishFunc(s.ID, section, exercise))
	if ex.Done {
		// Nothing to run and nothing to signal for a completed exercise.
		t.phase = PhaseFinished
		t.remaining = 0
		t.signaled = true
	}
	m.timer, m.session, m.section, m.exercise = t, s.ID, section, exercise
	return t.Snapshot(), nil
}

// finishFunc builds the completion callback for the displayed exercise.
// It runs on the tick goroutine, so it carries its own context. The
// completion is pinned to the session the timer was shown for; if that
// session has been replaced or cleared in the meantime, the signal is
// dropped instead of landing in a session the timer never belonged to.
func (m *Manager) finishFunc(sessionID uuid.UUID, section, exercise int) func() {
	return func() {
		if _, err := m.engine.CompleteExerciseIn(context.Background(), sessionID, section, exercise); err != nil {
			m.log.Warn("completing exercise after timer finish", "section", section, "exercise", exercise, "error", err)
		}
	}
}

// dismissLocked cancels the displayed timer and saves partial progress, the
// mandatory cleanup for any path that stops displaying an exercise.
func (m *Manager) dismissLocked(ctx context.Context) {
	if m.timer == nil {
		return
	}
	m.timer.Stop()
	m.timer = nil
	if err := m.engine.SavePartialProgress(ctx); err != nil {
		m.log.Warn("saving partial progress on dismiss", "error", err)
	}
}

// Dismiss stops displaying the current exercise, cancelling its tick and
// saving partial progress. No-op when nothing is displayed.
func (m *Manager) Dismiss(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dismissLocked(ctx)
}

// Discard drops the displayed timer without saving progress. Used when the
// session itself is being thrown away rather than navigated away from.
func (m *Manager) Discard() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer == nil {
		return
	}
	m.timer.Stop()
	m.timer = nil
}

func (m *Manager) withTimer(f func(*Timer)) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer == nil {
		return Snapshot{}, ErrNoTimer
	}
	f(m.timer)
	return m.timer.Snapshot(), nil
}

// Start begins or resumes the displayed timer.
func (m *Manager) Start() (Snapshot, error) {
	return m.withTimer(func(t *Timer) { t.Start() })
}

// Pause suspends the displayed timer, keeping its remaining value.
func (m *Manager) Pause() (Snapshot, error) {
	return m.withTimer(func(t *Timer) { t.Pause() })
}

// Reset returns the displayed timer to the start of its work phase.
func (m *Manager) Reset() (Snapshot, error) {
	return m.withTimer(func(t *Timer) { t.Reset() })
}

// Complete short-circuits the displayed timer, completing the exercise
// immediately.
func (m *Manager) Complete() (Snapshot, error) {
	return m.withTimer(func(t *Timer) { t.CompleteNow() })
}

// Snapshot returns the displayed timer's state, if one is displayed.
func (m *Manager) Snapshot() (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.timer == nil {
		return Snapshot{}, false
	}
	return m.timer.Snapshot(), true
}
