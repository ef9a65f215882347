package job

import (
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	j := New("EcoGlow Smart Garden")

	if j.ID == "" {
		t.Error("expected job to have an ID")
	}
	if !strings.HasPrefix(j.ID, "ecoglow_smart_garden_") {
		t.Errorf("expected product-derived ID, got %s", j.ID)
	}
	if j.ProductName != "EcoGlow Smart Garden" {
		t.Errorf("expected product name to be set, got %s", j.ProductName)
	}
	if j.Status != StatusQueued {
		t.Errorf("expected status %s, got %s", StatusQueued, j.Status)
	}
	if j.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if j.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be set")
	}
}

func TestNewWithID(t *testing.T) {
	j := NewWithID("test-job-123", "Widget")

	if j.ID != "test-job-123" {
		t.Errorf("expected ID test-job-123, got %s", j.ID)
	}
	if j.Status != StatusQueued {
		t.Errorf("expected status %s, got %s", StatusQueued, j.Status)
	}
}

func TestJob_ValidTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		wantErr bool
	}{
		// Valid transitions from queued
		{"queued to processing", StatusQueued, StatusProcessing, false},
		{"queued to failed", StatusQueued, StatusFailed, false},
		// Valid transitions from processing
		{"processing to completed", StatusProcessing, StatusCompleted, false},
		{"processing to failed", StatusProcessing, StatusFailed, false},
		// Invalid transitions: no skips, no reverts
		{"queued to completed", StatusQueued, StatusCompleted, true},
		{"processing to queued", StatusProcessing, StatusQueued, true},
		{"completed to queued", StatusCompleted, StatusQueued, true},
		{"completed to processing", StatusCompleted, StatusProcessing, true},
		{"completed to failed", StatusCompleted, StatusFailed, true},
		{"failed to processing", StatusFailed, StatusProcessing, true},
		{"failed to completed", StatusFailed, StatusCompleted, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := NewWithID("test", "Widget")
			j.Status = tt.from

			err := j.TransitionTo(tt.to)

			if tt.wantErr && err == nil {
				t.Errorf("expected error for transition %s -> %s", tt.from, tt.to)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error for transition %s -> %s: %v", tt.from, tt.to, err)
			}
		})
	}
}

func TestJob_CannotTransitionFromTerminalState(t *testing.T) {
	terminalStates := []Status{StatusCompleted, StatusFailed}
	allStates := []Status{StatusQueued, StatusProcessing, StatusCompleted, StatusFailed}

	for _, terminal := range terminalStates {
		for _, target := range allStates {
			t.Run(string(terminal)+"_to_"+string(target), func(t *testing.T) {
				j := NewWithID("test", "Widget")
				j.Status = terminal

				err := j.TransitionTo(target)
				if err == nil {
					t.Errorf("expected error when transitioning from %s to %s", terminal, target)
				}
				if err != ErrInvalidTransition {
					t.Errorf("expected ErrInvalidTransition, got %v", err)
				}
			})
		}
	}
}

func TestJob_Start(t *testing.T) {
	j := New("Widget")
	beforeStart := time.Now()

	err := j.Start()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if j.Status != StatusProcessing {
		t.Errorf("expected status %s, got %s", StatusProcessing, j.Status)
	}
	if j.StartedAt.Before(beforeStart) {
		t.Error("expected StartedAt to be set after test start")
	}
}

func TestJob_Complete(t *testing.T) {
	j := New("Widget")
	_ = j.Start()

	samples := []Sample{{URI: "gs://bucket/job/result.json", Encoding: "application/json"}}
	err := j.Complete(samples)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if j.Status != StatusCompleted {
		t.Errorf("expected status %s, got %s", StatusCompleted, j.Status)
	}
	if len(j.Samples) != 1 {
		t.Fatalf("expected 1 sample, got %d", len(j.Samples))
	}
	if j.Samples[0].URI != "gs://bucket/job/result.json" {
		t.Errorf("unexpected sample URI: %s", j.Samples[0].URI)
	}
	if j.ErrorMessage != "" {
		t.Error("completed job should carry no error message")
	}
	if j.Progress != 100 {
		t.Errorf("expected progress 100, got %d", j.Progress)
	}
	if j.CompletedAt.IsZero() {
		t.Error("expected CompletedAt to be set")
	}
}

func TestJob_Fail(t *testing.T) {
	j := New("Widget")
	_ = j.Start()
	j.UpdateProgress(60)

	errMsg := "submission failed: backend down"
	err := j.Fail(errMsg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if j.Status != StatusFailed {
		t.Errorf("expected status %s, got %s", StatusFailed, j.Status)
	}
	if j.ErrorMessage != errMsg {
		t.Errorf("expected error %q, got %q", errMsg, j.ErrorMessage)
	}
	if j.Samples != nil {
		t.Error("failed job should carry no samples")
	}
	if j.Progress != 0 {
		t.Errorf("expected progress reset to 0, got %d", j.Progress)
	}
	if j.CompletedAt.IsZero() {
		t.Error("expected CompletedAt to be set on failure")
	}
}

func TestJob_TerminalStateExclusivity(t *testing.T) {
	// In a terminal state exactly one of Samples and ErrorMessage is set.
	completed := New("Widget")
	_ = completed.Start()
	_ = completed.Complete([]Sample{{URI: "gs://bucket/result.json"}})
	if len(completed.Samples) == 0 || completed.ErrorMessage != "" {
		t.Error("completed job must carry samples and no error message")
	}

	failed := New("Widget")
	_ = failed.Start()
	_ = failed.Fail("boom")
	if failed.ErrorMessage == "" || failed.Samples != nil {
		t.Error("failed job must carry an error message and no samples")
	}
}

func TestJob_SetOperationID(t *testing.T) {
	j := New("Widget")

	j.SetOperationID("op-1")
	if j.OperationID != "op-1" {
		t.Errorf("expected operation ID op-1, got %s", j.OperationID)
	}

	// Assigned at most once
	j.SetOperationID("op-2")
	if j.OperationID != "op-1" {
		t.Errorf("operation ID should not change once set, got %s", j.OperationID)
	}
}

func TestJob_SetPrompt(t *testing.T) {
	j := New("Widget")

	j.SetPrompt("a cinematic ad")
	if j.Prompt != "a cinematic ad" {
		t.Errorf("expected prompt to be set, got %q", j.Prompt)
	}
}

func TestJob_UpdateProgress(t *testing.T) {
	j := New("Widget")

	tests := []struct {
		input    int
		expected int
	}{
		{50, 50},
		{0, 0},
		{100, 100},
		{-10, 0},   // Clamped to 0
		{150, 100}, // Clamped to 100
	}

	for _, tt := range tests {
		j.UpdateProgress(tt.input)
		if j.Progress != tt.expected {
			t.Errorf("UpdateProgress(%d): expected %d, got %d", tt.input, tt.expected, j.Progress)
		}
	}
}

func TestJob_IsTerminal(t *testing.T) {
	tests := []struct {
		status   Status
		terminal bool
	}{
		{StatusQueued, false},
		{StatusProcessing, false},
		{StatusCompleted, true},
		{StatusFailed, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			j := NewWithID("test", "Widget")
			j.Status = tt.status

			if got := j.IsTerminal(); got != tt.terminal {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.terminal)
			}
		})
	}
}

func TestJob_Clone(t *testing.T) {
	j := New("Widget")
	j.Status = StatusProcessing
	j.Progress = 50
	j.Samples = []Sample{{URI: "gs://bucket/result.json", Encoding: "application/json"}}

	clone := j.Clone()

	// Verify clone has same values
	if clone.ID != j.ID {
		t.Errorf("expected ID %s, got %s", j.ID, clone.ID)
	}
	if clone.Status != j.Status {
		t.Errorf("expected Status %s, got %s", j.Status, clone.Status)
	}
	if clone.Progress != j.Progress {
		t.Errorf("expected Progress %d, got %d", j.Progress, clone.Progress)
	}

	// Verify clone is independent
	clone.Status = StatusCompleted
	if j.Status == StatusCompleted {
		t.Error("modifying clone should not affect original")
	}

	// Verify samples are independent
	clone.Samples[0].URI = "mutated"
	if j.Samples[0].URI == "mutated" {
		t.Error("modifying clone samples should not affect original")
	}
}

func TestJob_GetStatus_ThreadSafe(t *testing.T) {
	j := New("Widget")

	done := make(chan bool)
	go func() {
		for i := 0; i < 100; i++ {
			_ = j.GetStatus()
		}
		done <- true
	}()

	go func() {
		for i := 0; i < 100; i++ {
			_ = j.Start()
		}
		done <- true
	}()

	<-done
	<-done
	// If no race conditions, test passes
}
