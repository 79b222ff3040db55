// The clock and tick driver: converts wall-clock ticks into simulated
// time under the speed multiplier and pause flag, and sequences the
// per-tick pipeline.

package sim

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// TickInterval is the wall-clock cadence of the tick driver.
	TickInterval = 100 * time.Millisecond

	// TimeScaleFactor is the fixed ratio of simulated seconds to real
	// seconds: one real second is one simulated minute.
	TimeScaleFactor = 60

	millisPerDay = 24 * 60 * 60 * 1000
)

// DeltaSimMillis returns the simulated milliseconds one tick advances
// the clock at the given speed multiplier.
func DeltaSimMillis(speed int) int64 {
	tickSeconds := float64(TickInterval) / float64(time.Second)
	return int64(tickSeconds * TimeScaleFactor * float64(speed) * 1000)
}

// Simulator owns the tick pipeline: the catalog it draws arrivals from
// and the partitioned RNG that makes every run replayable from its seed.
// It holds no snapshot itself; each operation is a pure transform from
// one snapshot to the next.
type Simulator struct {
	Catalog *Catalog
	RNG     *PartitionedRNG
}

// NewSimulator builds a tick driver over the given catalog and seed.
func NewSimulator(catalog *Catalog, seed int64) *Simulator {
	return &Simulator{
		Catalog: catalog,
		RNG:     NewPartitionedRNG(NewSimulationKey(seed)),
	}
}

// NewInitialState builds the day-1 snapshot for this simulator's run.
func (sim *Simulator) NewInitialState(cfg Config) (*State, error) {
	return NewState(cfg, sim.RNG)
}

// Tick advances the simulation by one wall-clock tick. On a paused
// snapshot no stage executes and the result is an unchanged copy.
// Otherwise the stages run in fixed order, each consuming the previous
// stage's snapshot: advance time, progress tasks, generate arrivals,
// allocate workers (orders then trucks), roll the calendar day.
func (sim *Simulator) Tick(s *State) (*State, error) {
	if s.Paused {
		return s.Clone(), nil
	}

	delta := DeltaSimMillis(s.Speed)

	next := s.Clone()
	next.CurrentTime += delta
	logrus.Debugf("[tick] t=%dms day=%d delta=%dms", next.CurrentTime, next.Day, delta)

	next = progressTasks(next, delta)

	next, err := generateArrivals(next, sim.Catalog, sim.RNG.ForSubsystem(SubsystemArrivals))
	if err != nil {
		return nil, err
	}

	allocRNG := sim.RNG.ForSubsystem(SubsystemAllocator)
	next = allocateOrders(next, allocRNG)
	next = allocateTrucks(next, allocRNG)

	next = advanceDay(next)

	return next, nil
}

// TogglePause flips the pause flag.
func TogglePause(s *State) *State {
	next := s.Clone()
	next.Paused = !next.Paused
	return next
}

// SetSpeed stores a new speed multiplier. Values outside {1,2,3} are
// rejected.
func SetSpeed(s *State, speed int) (*State, error) {
	if err := validSpeed(speed); err != nil {
		return nil, err
	}
	next := s.Clone()
	next.Speed = speed
	return next, nil
}

// OnCellClick records the clicked cell as the snapshot's selected
// position, for rendering collaborators to read back. Out-of-range
// clicks are rejected.
func OnCellClick(s *State, row, col int) (*State, error) {
	cell := s.Warehouse.CellAt(row, col)
	if cell == nil {
		return nil, fmt.Errorf("cell click out of range: (%d,%d)", row, col)
	}
	logrus.Debugf("cell clicked: (%d,%d) type=%s lots=%d", row, col, cell.Type, len(cell.Contents))
	next := s.Clone()
	next.SelectedCell = &Position{Row: row, Col: col}
	return next, nil
}

// advanceDay recomputes the calendar day from the timestamp and updates
// it only when it changed.
func advanceDay(s *State) *State {
	day := int(s.CurrentTime/millisPerDay) + 1
	if day == s.Day {
		return s
	}
	next := s.Clone()
	next.Day = day
	logrus.Infof("day rollover: day %d begins at %dms", day, next.CurrentTime)
	return next
}
