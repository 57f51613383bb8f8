package timer

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claude/repcycle/internal/catalog"
	"github.com/claude/repcycle/internal/models"
	"github.com/claude/repcycle/internal/session"
	"github.com/claude/repcycle/internal/storage"
)

func newTestManager(t *testing.T) (*Manager, *session.Engine) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := storage.Open(filepath.Join(t.TempDir(), "state.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	tmpl := models.WorkoutTemplate{
		ID:              "mgr-test",
		Name:            "Manager Test",
		DurationMinutes: 10,
		Sections: []models.Section{{Title: "Only", Exercises: []models.Exercise{
			{Name: "e1", Duration: "40s", Rest: "15s"},
			{Name: "e2", Duration: "30s"},
		}}},
	}
	engine := session.New(st, catalog.New(tmpl), 5, time.Monday, nil, log)
	return NewManager(engine, log), engine
}

func TestShowRequiresSession(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.Show(context.Background(), 0, 0)
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestShowRejectsOutOfRange(t *testing.T) {
	m, engine := newTestManager(t)
	ctx := context.Background()
	_, err := engine.StartSession(ctx, "mgr-test")
	require.NoError(t, err)

	_, err = m.Show(ctx, 3, 0)
	assert.ErrorIs(t, err, session.ErrExerciseNotFound)
	_, err = m.Show(ctx, 0, 7)
	assert.ErrorIs(t, err, session.ErrExerciseNotFound)
}

func TestShowInitializesFromTemplate(t *testing.T) {
	m, engine := newTestManager(t)
	ctx := context.Background()
	_, err := engine.StartSession(ctx, "mgr-test")
	require.NoError(t, err)

	snap, err := m.Show(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, PhaseWork, snap.Phase)
	assert.Equal(t, 40, snap.Remaining)
	assert.False(t, snap.Running)
}

// Showing the same exercise again keeps timer state; showing a different
// one rebuilds the countdown.
func TestShowSwitchingExercises(t *testing.T) {
	m, engine := newTestManager(t)
	ctx := context.Background()
	_, err := engine.StartSession(ctx, "mgr-test")
	require.NoError(t, err)

	_, err = m.Show(ctx, 0, 0)
	require.NoError(t, err)
	again, err := m.Show(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 40, again.Remaining)

	other, err := m.Show(ctx, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 30, other.Remaining)
	assert.Equal(t, PhaseWork, other.Phase)
}

// Completing through the manager completes the exercise in the session.
func TestCompleteHandsOffToEngine(t *testing.T) {
	m, engine := newTestManager(t)
	ctx := context.Background()
	_, err := engine.StartSession(ctx, "mgr-test")
	require.NoError(t, err)

	_, err = m.Show(ctx, 0, 0)
	require.NoError(t, err)
	snap, err := m.Complete()
	require.NoError(t, err)
	assert.Equal(t, PhaseFinished, snap.Phase)

	s, active := engine.Session(ctx)
	require.True(t, active)
	assert.Equal(t, 1, s.CompletedExercises)
	assert.True(t, s.Sections[0].Exercises[0].Done)

	// A second complete on the same displayed exercise must not re-signal;
	// counts stay put.
	_, err = m.Complete()
	require.NoError(t, err)
	s, _ = engine.Session(ctx)
	assert.Equal(t, 1, s.CompletedExercises)
}

// Showing an already-completed exercise yields a finished timer with no
// pending signal, so navigating back to it cannot double-complete.
func TestShowCompletedExercise(t *testing.T) {
	m, engine := newTestManager(t)
	ctx := context.Background()
	_, err := engine.StartSession(ctx, "mgr-test")
	require.NoError(t, err)
	_, err = engine.CompleteExerciseAt(ctx, 0, 0)
	require.NoError(t, err)

	snap, err := m.Show(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, PhaseFinished, snap.Phase)
	assert.True(t, snap.Finished)

	s, _ := engine.Session(ctx)
	before := s.CompletedExercises
	_, err = m.Complete()
	require.NoError(t, err)
	s, _ = engine.Session(ctx)
	assert.Equal(t, before, s.CompletedExercises)
}

// A timer shown for one session must not complete anything in a session
// started after it: the finish signal is pinned to the session instance it
// was created for.
func TestFinishFromReplacedSessionDropped(t *testing.T) {
	m, engine := newTestManager(t)
	ctx := context.Background()
	_, err := engine.StartSession(ctx, "mgr-test")
	require.NoError(t, err)
	_, err = m.Show(ctx, 0, 0)
	require.NoError(t, err)

	_, err = engine.StartSession(ctx, "mgr-test")
	require.NoError(t, err)

	_, err = m.Complete()
	require.NoError(t, err)

	s, active := engine.Session(ctx)
	require.True(t, active)
	assert.Equal(t, 0, s.CompletedExercises, "fresh session must not inherit a completion from a timer bound to the old one")

	// Showing the same position again binds a new timer to the new
	// session, which completes normally.
	_, err = m.Show(ctx, 0, 0)
	require.NoError(t, err)
	_, err = m.Complete()
	require.NoError(t, err)
	s, _ = engine.Session(ctx)
	assert.Equal(t, 1, s.CompletedExercises)
}

// The finish signal is likewise dropped when the session was reset rather
// than replaced.
func TestFinishAfterResetDropped(t *testing.T) {
	m, engine := newTestManager(t)
	ctx := context.Background()
	_, err := engine.StartSession(ctx, "mgr-test")
	require.NoError(t, err)
	_, err = m.Show(ctx, 0, 0)
	require.NoError(t, err)

	require.NoError(t, engine.ResetSession(ctx))

	_, err = m.Complete()
	require.NoError(t, err)

	entries, err := engine.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// Discard drops the timer without earning partial credit.
func TestDiscardWritesNoHistory(t *testing.T) {
	m, engine := newTestManager(t)
	ctx := context.Background()
	_, err := engine.StartSession(ctx, "mgr-test")
	require.NoError(t, err)
	_, err = m.Show(ctx, 0, 0)
	require.NoError(t, err)

	m.Discard()
	_, ok := m.Snapshot()
	assert.False(t, ok)

	entries, err := engine.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// Dismissing the displayed exercise saves in-flight progress.
func TestDismissSavesPartialProgress(t *testing.T) {
	m, engine := newTestManager(t)
	ctx := context.Background()
	_, err := engine.StartSession(ctx, "mgr-test")
	require.NoError(t, err)

	_, err = m.Show(ctx, 0, 0)
	require.NoError(t, err)
	_, err = engine.CompleteExerciseAt(ctx, 0, 0)
	require.NoError(t, err)

	m.Dismiss(ctx)
	_, ok := m.Snapshot()
	assert.False(t, ok, "no timer after dismiss")

	entries, err := engine.History(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 50, entries[0].Progress)
}

func TestTimerOpsWithoutShow(t *testing.T) {
	m, _ := newTestManager(t)
	_, err := m.Start()
	assert.ErrorIs(t, err, ErrNoTimer)
	_, err = m.Pause()
	assert.ErrorIs(t, err, ErrNoTimer)
	_, err = m.Reset()
	assert.ErrorIs(t, err, ErrNoTimer)
	_, err = m.Complete()
	assert.ErrorIs(t, err, ErrNoTimer)
}
