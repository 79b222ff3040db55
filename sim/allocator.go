// The allocator: matches idle workers to backlog. Two passes per tick,
// each allocating at most one task regardless of backlog depth or idle
// headcount — a deliberate single-item-per-tick throttle.

package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
)

const (
	pickingBaseSeconds    = 30
	pickingPerLineSeconds = 10

	receivingBaseSeconds    = 45
	receivingPerLineSeconds = 5
	receivingTaskPriority   = 8
)

// allocateOrders is the order allocation pass. It takes the oldest
// pending order (FIFO by list position; stored priorities do not reorder
// the backlog), spawns an in-progress picking task for it, assigns a
// random idle employee and moves the order to picking.
func allocateOrders(s *State, rng *rand.Rand) *State {
	next := s.Clone()
	if next.AvailableEmployees == 0 {
		return next
	}

	var order *Order
	for i := range next.Orders {
		if next.Orders[i].Status == OrderPending {
			order = &next.Orders[i]
			break
		}
	}
	if order == nil {
		return next
	}

	taskID := fmt.Sprintf("TASK-%04d", next.Arrivals.NextTaskSeq)
	employeeID, ok := acquireEmployee(next.Employees, taskID, rng)
	if !ok {
		// AvailableEmployees said otherwise; the counter and the roster
		// partition have diverged.
		logrus.Errorf("order pass: available=%d but no idle employee", next.AvailableEmployees)
		return next
	}

	lines := make([]OrderLine, len(order.Lines))
	copy(lines, order.Lines)
	task := Task{
		ID:                taskID,
		Type:              TaskPicking,
		Status:            TaskInProgress,
		Priority:          order.Priority.TaskPriority(),
		EstimatedDuration: pickingBaseSeconds + pickingPerLineSeconds*len(order.Lines),
		Progress:          0,
		AssignedEmployee:  employeeID,
		Lines:             lines,
		OrderID:           order.ID,
		CreatedAt:         next.CurrentTime,
	}

	if err := order.Transition(OrderPicking); err != nil {
		logrus.Errorf("order pass: %v", err)
		if rerr := releaseEmployee(next.Employees, employeeID); rerr != nil {
			logrus.Errorf("order pass: %v", rerr)
		}
		return next
	}

	next.Tasks = append(next.Tasks, task)
	next.Arrivals.NextTaskSeq++
	next.AvailableEmployees--
	logrus.Infof("allocated %s: picking for %s (%d lines) -> %s", task.ID, order.ID, len(lines), employeeID)
	return next
}

// allocateTrucks is the truck allocation pass. It takes the first truck
// still waiting to unload, spawns an in-progress receiving task targeted
// at the truck's dock and flips the truck's unloaded flag.
func allocateTrucks(s *State, rng *rand.Rand) *State {
	next := s.Clone()
	if next.AvailableEmployees == 0 {
		return next
	}

	var truck *Truck
	for i := range next.Trucks {
		if !next.Trucks[i].Unloaded {
			truck = &next.Trucks[i]
			break
		}
	}
	if truck == nil {
		return next
	}

	taskID := fmt.Sprintf("TASK-%04d", next.Arrivals.NextTaskSeq)
	employeeID, ok := acquireEmployee(next.Employees, taskID, rng)
	if !ok {
		logrus.Errorf("truck pass: available=%d but no idle employee", next.AvailableEmployees)
		return next
	}

	cargo := make([]CargoLine, len(truck.Cargo))
	copy(cargo, truck.Cargo)
	dock := truck.DockPosition
	task := Task{
		ID:                taskID,
		Type:              TaskReceiving,
		Status:            TaskInProgress,
		Priority:          receivingTaskPriority,
		EstimatedDuration: receivingBaseSeconds + receivingPerLineSeconds*len(truck.Cargo),
		Progress:          0,
		AssignedEmployee:  employeeID,
		TargetPosition:    &dock,
		Cargo:             cargo,
		CreatedAt:         next.CurrentTime,
	}

	truck.Unloaded = true
	next.Tasks = append(next.Tasks, task)
	next.Arrivals.NextTaskSeq++
	next.AvailableEmployees--
	logrus.Infof("allocated %s: receiving %s (%d lots) -> %s", task.ID, truck.ID, len(cargo), employeeID)
	return next
}
