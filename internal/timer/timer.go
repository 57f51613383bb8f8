// Package timer implements the per-exercise countdown: a work phase, an
// optional rest phase, and a finished signal handed to the session engine
// exactly once. Phase transitions are computed synchronously inside the
// tick handler; the tick itself comes from an external 1 Hz source.
package timer

import (
	"sync"
	"time"

	"github.com/claude/repcycle/internal/models"
)

// Timer phases.
const (
	PhaseWork     = "work"
	PhaseRest     = "rest"
	PhaseFinished = "finished"
)

// tickSource supplies the recurring tick driving a running timer. The
// production source is a time.Ticker at 1 Hz.
type tickSource interface {
	C() <-chan time.Time
	Stop()
}

type tickerSource struct{ t *time.Ticker }

func (s tickerSource) C() <-chan time.Time { return s.t.C }
func (s tickerSource) Stop()               { s.t.Stop() }

func newTickerSource() tickSource {
	return tickerSource{time.NewTicker(time.Second)}
}

// Snapshot is the read view of a timer.
type Snapshot struct {
	Phase     string `json:"phase"`
	Remaining int    `json:"remaining"`
	Running   bool   `json:"running"`
	Finished  bool   `json:"finished"`
}

// Timer counts one exercise down. It starts paused in the work phase; when
// the work phase runs out and the exercise defines a rest span, it rolls
// into the rest phase without stopping. Finishing, naturally or via
// CompleteNow, fires onFinish exactly once per Timer instance.
type Timer struct {
	mu       sync.Mutex
	exercise models.Exercise
	onFinish func()
	newTick  func() tickSource

	phase     string
	remaining int
	running   bool
	signaled  bool
	stop      chan struct{}
}

// New returns a paused timer positioned at the start of the exercise's
// work phase. onFinish may be nil.
func New(ex models.Exercise, onFinish func()) *Timer {
	return &Timer{
		exercise:  ex,
		onFinish:  onFinish,
		newTick:   newTickerSource,
		phase:     PhaseWork,
		remaining: ex.Duration.Seconds(),
	}
}

// Start begins (or resumes) the countdown from the current remaining value.
// Starting a running or finished timer is a no-op.
func (t *Timer) Start() {
	t.mu.Lock()
	if t.running || t.phase == PhaseFinished {
		t.mu.Unlock()
		return
	}
	t.running = true
	stop := make(chan struct{})
	t.stop = stop
	t.mu.Unlock()

	go t.run(stop)
}

func (t *Timer) run(stop chan struct{}) {
	src := t.newTick()
	defer src.Stop()
	for {
		select {
		case <-stop:
			return
		case <-src.C():
			if !t.Tick() {
				return
			}
		}
	}
}

// Pause stops the tick without touching the remaining value. Resuming with
// Start continues from where the countdown paused.
func (t *Timer) Pause() {
	t.mu.Lock()
	t.cancelTickLocked()
	t.mu.Unlock()
}

// Reset cancels the tick and returns the timer to the start of the work
// phase, paused.
func (t *Timer) Reset() {
	t.mu.Lock()
	t.cancelTickLocked()
	t.phase = PhaseWork
	t.remaining = t.exercise.Duration.Seconds()
	t.mu.Unlock()
}

// Stop cancels any scheduled tick without signalling completion. Used when
// the exercise leaves the screen before finishing.
func (t *Timer) Stop() {
	t.Pause()
}

// cancelTickLocked halts the running goroutine, if any.
func (t *Timer) cancelTickLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	t.running = false
}

// Tick advances the countdown by one second. It only acts while the timer
// is running, and returns false once the timer should no longer receive
// ticks. Exported so the state machine can be driven synchronously.
func (t *Timer) Tick() bool {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return false
	}
	if t.remaining > 1 {
		t.remaining--
		t.mu.Unlock()
		return true
	}

	// The displayed second has elapsed: either roll into the rest phase
	// and keep running, or the exercise is done.
	if t.phase == PhaseWork && !t.exercise.Rest.IsZero() {
		t.phase = PhaseRest
		t.remaining = t.exercise.Rest.Seconds()
		t.mu.Unlock()
		return true
	}
	cb := t.finishLocked()
	t.mu.Unlock()
	if cb != nil {
		cb()
	}
	return false
}

// CompleteNow short-circuits the countdown: the tick is cancelled and the
// finished signal fires immediately, whatever the phase or remaining time.
func (t *Timer) CompleteNow() {
	t.mu.Lock()
	cb := t.finishLocked()
	t.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// finishLocked moves the timer to the finished phase and returns the
// completion callback if it has not fired yet.
func (t *Timer) finishLocked() func() {
	t.cancelTickLocked()
	t.phase = PhaseFinished
	t.remaining = 0
	if t.signaled {
		return nil
	}
	t.signaled = true
	return t.onFinish
}

// Snapshot returns the timer's current state.
func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Snapshot{
		Phase:     t.phase,
		Remaining: t.remaining,
		Running:   t.running,
		Finished:  t.phase == PhaseFinished,
	}
}
