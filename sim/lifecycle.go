// The task lifecycle engine: advances in-flight task progress, completes
// tasks within the tick they finish, releases their workers and applies
// completion effects (inventory commits, order handoff).

package sim

import (
	"github.com/sirupsen/logrus"
)

// progressTasks is the task lifecycle stage of the tick pipeline. It
// advances every in-progress task by deltaMillis of simulated time,
// retires completed tasks from the active sequence and releases their
// workers exactly once. Pending and failed tasks pass through untouched.
func progressTasks(s *State, deltaMillis int64) *State {
	next := s.Clone()

	active := make([]Task, 0, len(next.Tasks))
	for i := range next.Tasks {
		task := next.Tasks[i]
		if !task.Advance(deltaMillis) {
			active = append(active, task)
			continue
		}
		logrus.Infof("task %s (%s) completed at %dms", task.ID, task.Type, next.CurrentTime)
		completeTask(next, &task)
	}
	next.Tasks = active

	return next
}

// completeTask releases the task's worker and applies its completion
// effects. A release failure would mean the allocation discipline is
// broken, so it is logged as an error rather than absorbed silently.
func completeTask(s *State, task *Task) {
	if task.AssignedEmployee != "" {
		if err := releaseEmployee(s.Employees, task.AssignedEmployee); err != nil {
			logrus.Errorf("task %s: %v", task.ID, err)
		} else {
			s.AvailableEmployees++
		}
	}

	switch task.Type {
	case TaskReceiving:
		commitReceiving(s, task)
	case TaskPicking:
		commitPicking(s, task)
	}
}

// commitReceiving writes a completed receiving task's cargo into the
// dock cell and the inventory index. Lines that exceed the cell's lot
// capacity are rejected with a warning: the dock can only stage so much.
func commitReceiving(s *State, task *Task) {
	if task.TargetPosition == nil {
		logrus.Warnf("task %s: receiving task has no target dock, cargo dropped", task.ID)
		return
	}
	cell := s.Warehouse.CellAt(task.TargetPosition.Row, task.TargetPosition.Col)
	for _, line := range task.Cargo {
		slot := InventorySlot{
			ItemID:     line.ItemID,
			Quantity:   line.Quantity,
			LotNumber:  line.LotNumber,
			ExpiryDate: line.ExpiryDate,
			ReceivedAt: s.CurrentTime,
		}
		if err := s.Inventory.Receive(cell, slot); err != nil {
			logrus.Warnf("task %s: %v", task.ID, err)
		}
	}
}

// commitPicking consumes a completed picking task's lines from the
// inventory index, soonest-expiry first, and hands the linked order over
// to packing. Stock shortages are a defined failure: the pick takes what
// exists and the shortfall is logged.
func commitPicking(s *State, task *Task) {
	for _, line := range task.Lines {
		if _, err := s.Inventory.Pick(line.ItemID, line.Quantity); err != nil {
			logrus.Warnf("task %s: %v", task.ID, err)
		}
	}
	if task.OrderID == "" {
		return
	}
	for i := range s.Orders {
		if s.Orders[i].ID != task.OrderID {
			continue
		}
		if err := s.Orders[i].Transition(OrderPacking); err != nil {
			logrus.Errorf("task %s: %v", task.ID, err)
		}
		return
	}
	logrus.Errorf("task %s: linked order %s not found", task.ID, task.OrderID)
}
