// Warehouse tasks and their lifecycle state machine. The allocator
// creates tasks, the lifecycle engine advances them every tick and
// retires them the same tick they complete.

package sim

import "fmt"

// TaskType identifies the kind of work a task represents. Only receiving
// and picking tasks are constructed by the current allocation policies;
// the rest are declared for the fuller fulfillment pipeline.
type TaskType string

const (
	TaskReceiving      TaskType = "receiving"
	TaskPutaway        TaskType = "putaway"
	TaskPicking        TaskType = "picking"
	TaskPacking        TaskType = "packing"
	TaskShipping       TaskType = "shipping"
	TaskInventoryCheck TaskType = "inventory_check"
	TaskReplenishment  TaskType = "replenishment"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

// taskTransitions is the complete transition table. The allocator
// creates tasks directly in_progress, so pending -> in_progress is
// declared but currently unexercised; same for the failure edges.
var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskPending:    {TaskInProgress, TaskFailed},
	TaskInProgress: {TaskCompleted, TaskFailed},
	TaskCompleted:  {},
	TaskFailed:     {},
}

// Task is one unit of allocated work.
type Task struct {
	ID                string      `json:"id"`
	Type              TaskType    `json:"type"`
	Status            TaskStatus  `json:"status"`
	Priority          int         `json:"priority"` // 1-10
	EstimatedDuration int         `json:"estimatedDuration"` // simulated seconds
	Progress          float64     `json:"progress"` // 0-1
	AssignedEmployee  string      `json:"assignedEmployee,omitempty"`
	SourcePosition    *Position   `json:"sourcePosition,omitempty"`
	TargetPosition    *Position   `json:"targetPosition,omitempty"`
	Lines             []OrderLine `json:"items,omitempty"`
	OrderID           string      `json:"orderId,omitempty"` // picking tasks: the order being picked
	Cargo             []CargoLine `json:"cargo,omitempty"`   // receiving tasks: the manifest to commit
	CreatedAt         int64       `json:"createdAt"`
}

// Transition moves the task to the requested status, enforcing the
// transition table.
func (t *Task) Transition(to TaskStatus) error {
	for _, allowed := range taskTransitions[t.Status] {
		if allowed == to {
			t.Status = to
			return nil
		}
	}
	return fmt.Errorf("task %s: illegal transition %s -> %s", t.ID, t.Status, to)
}

// Advance adds deltaMillis of simulated work to an in-progress task and
// reports whether it just completed. Progress is clamped to 1 and the
// completed transition happens in the same step it is observed.
func (t *Task) Advance(deltaMillis int64) bool {
	if t.Status != TaskInProgress {
		return false
	}
	t.Progress += float64(deltaMillis) / (float64(t.EstimatedDuration) * 1000)
	if t.Progress >= 1 {
		t.Progress = 1
		t.Status = TaskCompleted
		return true
	}
	return false
}

// cloneTasks deep-copies a task slice.
func cloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	for i := range out {
		if out[i].Lines != nil {
			lines := make([]OrderLine, len(out[i].Lines))
			copy(lines, out[i].Lines)
			out[i].Lines = lines
		}
		if out[i].Cargo != nil {
			cargo := make([]CargoLine, len(out[i].Cargo))
			copy(cargo, out[i].Cargo)
			out[i].Cargo = cargo
		}
		if out[i].SourcePosition != nil {
			pos := *out[i].SourcePosition
			out[i].SourcePosition = &pos
		}
		if out[i].TargetPosition != nil {
			pos := *out[i].TargetPosition
			out[i].TargetPosition = &pos
		}
	}
	return out
}
