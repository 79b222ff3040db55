package sim

import (
	"testing"
)

func TestTask_AdvanceProgressMonotoneAndClamped(t *testing.T) {
	// GIVEN an in-progress task estimated at 60 simulated seconds
	task := Task{ID: "TASK-0001", Type: TaskPicking, Status: TaskInProgress, EstimatedDuration: 60}

	// WHEN advanced in 6-second steps
	prev := task.Progress
	for i := 0; i < 9; i++ {
		done := task.Advance(6000)
		if done {
			t.Fatalf("step %d: completed early at progress %v", i, task.Progress)
		}
		if task.Progress < prev {
			t.Fatalf("step %d: progress decreased %v -> %v", i, prev, task.Progress)
		}
		prev = task.Progress
	}

	// THEN the step crossing 100% completes the task with progress clamped to 1
	if done := task.Advance(6001); !done {
		t.Fatal("expected completion on the crossing step")
	}
	if task.Progress != 1 {
		t.Errorf("progress: got %v, want clamped 1", task.Progress)
	}
	if task.Status != TaskCompleted {
		t.Errorf("status: got %s, want completed", task.Status)
	}
}

func TestTask_AdvanceIgnoresNonRunningTasks(t *testing.T) {
	for _, status := range []TaskStatus{TaskPending, TaskCompleted, TaskFailed} {
		task := Task{ID: "TASK-0002", Status: status, EstimatedDuration: 1, Progress: 0.5}
		if done := task.Advance(1_000_000); done {
			t.Errorf("%s task reported completion", status)
		}
		if task.Progress != 0.5 {
			t.Errorf("%s task progress moved to %v", status, task.Progress)
		}
	}
}

func TestTask_TransitionTable(t *testing.T) {
	legal := []struct{ from, to TaskStatus }{
		{TaskPending, TaskInProgress},
		{TaskPending, TaskFailed},
		{TaskInProgress, TaskCompleted},
		{TaskInProgress, TaskFailed},
	}
	for _, tc := range legal {
		task := Task{ID: "t", Status: tc.from}
		if err := task.Transition(tc.to); err != nil {
			t.Errorf("%s -> %s: unexpected error %v", tc.from, tc.to, err)
		}
	}

	illegal := []struct{ from, to TaskStatus }{
		{TaskPending, TaskCompleted},
		{TaskCompleted, TaskInProgress},
		{TaskFailed, TaskInProgress},
		{TaskCompleted, TaskFailed},
	}
	for _, tc := range illegal {
		task := Task{ID: "t", Status: tc.from}
		if err := task.Transition(tc.to); err == nil {
			t.Errorf("%s -> %s: expected rejection", tc.from, tc.to)
		}
	}
}
