// The wall-clock runner: drives the tick pipeline on a fixed cadence and
// serializes UI-facing commands onto the same logical sequence as ticks.
// There is exactly one logical thread of control advancing the snapshot;
// the mutex only fences external readers and command senders against the
// tick goroutine.

package sim

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Runner owns the live snapshot and advances it on a fixed ticker.
type Runner struct {
	sim *Simulator

	mu    sync.Mutex
	state *State

	// onTick, when set, observes each (previous, next) snapshot pair
	// after a tick. Called with the runner lock held; observers must be
	// cheap and must not call back into the runner.
	onTick func(prev, next *State)
}

// NewRunner builds a runner over an initial snapshot.
func NewRunner(sim *Simulator, initial *State) *Runner {
	return &Runner{sim: sim, state: initial}
}

// OnTick registers the tick observer.
func (r *Runner) OnTick(fn func(prev, next *State)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onTick = fn
}

// Snapshot returns the current snapshot. The returned value is a deep
// copy; callers can hold it across ticks safely.
func (r *Runner) Snapshot() *State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Clone()
}

// Run drives the tick pipeline at TickInterval until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.step(); err != nil {
				return err
			}
		}
	}
}

func (r *Runner) step() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next, err := r.sim.Tick(r.state)
	if err != nil {
		return err
	}
	if r.onTick != nil {
		r.onTick(r.state, next)
	}
	r.state = next
	return nil
}

// TogglePause applies the pause toggle atomically between ticks.
func (r *Runner) TogglePause() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = TogglePause(r.state)
	logrus.Infof("pause toggled: paused=%v", r.state.Paused)
}

// SetSpeed applies a speed change atomically between ticks.
func (r *Runner) SetSpeed(speed int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next, err := SetSpeed(r.state, speed)
	if err != nil {
		return err
	}
	r.state = next
	logrus.Infof("speed set to %dx", speed)
	return nil
}

// CellClick applies a cell click atomically between ticks.
func (r *Runner) CellClick(row, col int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next, err := OnCellClick(r.state, row, col)
	if err != nil {
		return err
	}
	r.state = next
	return nil
}
