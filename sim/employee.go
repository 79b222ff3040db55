// The employee roster. Assignment state lives on the employee records
// themselves: allocation draws from the idle partition and marks the
// record busy, release flips it back. The aggregate available count is
// always derivable from the records, which makes worker conservation a
// structural property instead of a bookkeeping convention.

package sim

import (
	"fmt"
	"math/rand"
)

// EmployeeStatus is the assignment state of one worker.
type EmployeeStatus string

const (
	EmployeeIdle EmployeeStatus = "idle"
	EmployeeBusy EmployeeStatus = "busy"
)

// Employee is one warehouse worker. The roster is fixed at
// initialization; records change only via acquire/release.
type Employee struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Skill       int            `json:"skill"`   // 1-10
	Fatigue     int            `json:"fatigue"` // 0-100; stored, not yet consumed by any policy
	Status      EmployeeStatus `json:"status"`
	CurrentTask string         `json:"currentTask,omitempty"`
	Position    *Position      `json:"position,omitempty"`
}

// employeeNames is the pool used for roster synthesis.
var employeeNames = []string{
	"Joan Silva",
	"Maria Santos",
	"Pedro Oliveira",
	"Ana Costa",
	"Lucas Ferreira",
	"Carla Souza",
	"Rafael Lima",
	"Juliana Alves",
}

// NewRoster synthesizes count employees with sequential IDs and skill
// uniform in [5,7] (entry-level hires).
func NewRoster(count int, rng *rand.Rand) []Employee {
	roster := make([]Employee, count)
	for i := range roster {
		name := fmt.Sprintf("Employee %d", i+1)
		if i < len(employeeNames) {
			name = employeeNames[i]
		}
		roster[i] = Employee{
			ID:     fmt.Sprintf("emp_%d", i+1),
			Name:   name,
			Skill:  randomInt(rng, 5, 7),
			Status: EmployeeIdle,
		}
	}
	return roster
}

// acquireEmployee picks a uniformly-random idle employee, marks it busy
// on the given task, and returns its ID. ok is false when nobody is idle.
func acquireEmployee(roster []Employee, taskID string, rng *rand.Rand) (string, bool) {
	idle := make([]int, 0, len(roster))
	for i := range roster {
		if roster[i].Status == EmployeeIdle {
			idle = append(idle, i)
		}
	}
	if len(idle) == 0 {
		return "", false
	}
	i := idle[rng.Intn(len(idle))]
	roster[i].Status = EmployeeBusy
	roster[i].CurrentTask = taskID
	return roster[i].ID, true
}

// releaseEmployee marks the named employee idle again. Releasing an
// employee that is not busy is an invariant violation and is reported
// rather than absorbed.
func releaseEmployee(roster []Employee, employeeID string) error {
	for i := range roster {
		if roster[i].ID != employeeID {
			continue
		}
		if roster[i].Status != EmployeeBusy {
			return fmt.Errorf("release %s: employee is %s, not busy", employeeID, roster[i].Status)
		}
		roster[i].Status = EmployeeIdle
		roster[i].CurrentTask = ""
		return nil
	}
	return fmt.Errorf("release %s: no such employee", employeeID)
}

// idleCount returns the number of idle employees in the roster.
func idleCount(roster []Employee) int {
	n := 0
	for i := range roster {
		if roster[i].Status == EmployeeIdle {
			n++
		}
	}
	return n
}

// cloneRoster deep-copies the roster.
func cloneRoster(roster []Employee) []Employee {
	out := make([]Employee, len(roster))
	copy(out, roster)
	for i := range out {
		if out[i].Position != nil {
			pos := *out[i].Position
			out[i].Position = &pos
		}
	}
	return out
}
