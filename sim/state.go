// The simulation snapshot: the aggregate state produced by each tick and
// exposed read-only to rendering collaborators. Every pipeline stage
// consumes one snapshot and returns a new one; Clone guarantees the new
// value shares no mutable storage with its predecessor.

package sim

// startOfBusinessMillis is the simulated clock value at initialization:
// 08:00 on day 1.
const startOfBusinessMillis = 8 * 60 * 60 * 1000

// Stats is the running statistics block. It is carried in the snapshot
// for rendering collaborators but no core code path updates it yet; the
// fulfillment pipeline that would feed it stops at the packing handoff.
type Stats struct {
	TotalOrdersCompleted int     `json:"totalOrdersCompleted"`
	TotalOrdersFailed    int     `json:"totalOrdersFailed"`
	AccuracyRate         float64 `json:"accuracyRate"`
	AvgPickingTime       float64 `json:"avgPickingTime"`
	SpoiledItems         int     `json:"spoiledItems"`
}

// ArrivalState holds the generator bookkeeping that must travel with the
// snapshot so a tick stays a pure function of (state, rng): sequential
// id counters and the most recent fire time of each arrival process.
type ArrivalState struct {
	LastOrderTime int64 `json:"lastOrderTime"`
	LastTruckTime int64 `json:"lastTruckTime"`
	NextOrderSeq  int   `json:"nextOrderSeq"`
	NextTruckSeq  int   `json:"nextTruckSeq"`
	NextTaskSeq   int   `json:"nextTaskSeq"`
}

// State is one simulation snapshot.
type State struct {
	CurrentTime int64   `json:"currentTime"` // simulated ms since day-1 midnight
	Money       float64 `json:"money"`

	Warehouse Grid `json:"warehouse"`

	Employees          []Employee `json:"employees"`
	AvailableEmployees int        `json:"availableEmployees"`

	Tasks  []Task  `json:"tasks"`
	Orders []Order `json:"orders"`
	Trucks []Truck `json:"trucks"`

	Inventory Inventory `json:"inventory"`

	Stats Stats `json:"stats"`

	Arrivals ArrivalState `json:"arrivals"`

	SelectedCell *Position `json:"selectedCell,omitempty"`

	Paused bool `json:"isPaused"`
	Speed  int  `json:"gameSpeed"`
	Day    int  `json:"day"`
}

// NewState initializes a snapshot from the given configuration. The
// clock starts at 08:00 on day 1; the roster is synthesized with the
// roster RNG subsystem.
func NewState(cfg Config, rng *PartitionedRNG) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	roster := NewRoster(cfg.InitialEmployees, rng.ForSubsystem(SubsystemRoster))
	return &State{
		CurrentTime:        startOfBusinessMillis,
		Money:              cfg.InitialMoney,
		Warehouse:          NewGrid(cfg.WarehouseRows, cfg.WarehouseCols),
		Employees:          roster,
		AvailableEmployees: len(roster),
		Tasks:              []Task{},
		Orders:             []Order{},
		Trucks:             []Truck{},
		Inventory:          NewInventory(),
		Stats:              Stats{AccuracyRate: 100},
		Arrivals: ArrivalState{
			NextOrderSeq: 1,
			NextTruckSeq: 1,
			NextTaskSeq:  1,
		},
		Paused: false,
		Speed:  cfg.SpeedMultiplier,
		Day:    1,
	}, nil
}

// Clone returns a deep copy of the snapshot. No slice, map or pointer
// storage is shared with the receiver.
func (s *State) Clone() *State {
	out := *s
	out.Warehouse = s.Warehouse.clone()
	out.Employees = cloneRoster(s.Employees)
	out.Tasks = cloneTasks(s.Tasks)
	out.Orders = cloneOrders(s.Orders)
	out.Trucks = cloneTrucks(s.Trucks)
	out.Inventory = s.Inventory.clone()
	if s.SelectedCell != nil {
		pos := *s.SelectedCell
		out.SelectedCell = &pos
	}
	return &out
}

// MinuteOfDay returns the simulated minute within the current day,
// in [0, 1440).
func (s *State) MinuteOfDay() int64 {
	return (s.CurrentTime / (60 * 1000)) % (24 * 60)
}
