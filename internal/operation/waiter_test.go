package operation

import (
	"context"
	"errors"
	"testing"
	"time"
)

// scriptedChecker returns the configured results in order, repeating the last
// one once the script runs out.
type scriptedChecker struct {
	results []Result
	calls   int
}

func (s *scriptedChecker) Poll(_ context.Context, _ string) Result {
	idx := s.calls
	if idx >= len(s.results) {
		idx = len(s.results) - 1
	}
	s.calls++
	return s.results[idx]
}

func TestWaiter_Wait_ImmediateSuccess(t *testing.T) {
	checker := &scriptedChecker{results: []Result{
		{Status: StatusSucceeded, URI: "gs://bucket/job-1/op-1/result.json"},
	}}
	waiter := NewWaiter(checker, testLogger())

	uri, err := waiter.Wait(context.Background(), "op-1", time.Second, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uri != "gs://bucket/job-1/op-1/result.json" {
		t.Errorf("unexpected URI: %s", uri)
	}
	if checker.calls != 1 {
		t.Errorf("expected 1 poll, got %d", checker.calls)
	}
}

func TestWaiter_Wait_SuccessAfterProgress(t *testing.T) {
	checker := &scriptedChecker{results: []Result{
		{Status: StatusInProgress},
		{Status: StatusInProgress},
		{Status: StatusSucceeded, URI: "gs://bucket/result.json"},
	}}
	waiter := NewWaiter(checker, testLogger())

	uri, err := waiter.Wait(context.Background(), "op-1", time.Millisecond, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uri != "gs://bucket/result.json" {
		t.Errorf("unexpected URI: %s", uri)
	}
	if checker.calls != 3 {
		t.Errorf("expected 3 polls, got %d", checker.calls)
	}
}

func TestWaiter_Wait_Failure(t *testing.T) {
	checker := &scriptedChecker{results: []Result{
		{Status: StatusFailed, Err: "quota exceeded"},
	}}
	waiter := NewWaiter(checker, testLogger())

	_, err := waiter.Wait(context.Background(), "op-1", time.Second, time.Minute)
	if !errors.Is(err, ErrOperationFailed) {
		t.Fatalf("expected ErrOperationFailed, got %v", err)
	}
}

func TestWaiter_Wait_ErrorStateFails(t *testing.T) {
	checker := &scriptedChecker{results: []Result{
		{Status: StatusError, Err: "operation not found: op-1"},
	}}
	waiter := NewWaiter(checker, testLogger())

	_, err := waiter.Wait(context.Background(), "op-1", time.Second, time.Minute)
	if !errors.Is(err, ErrOperationFailed) {
		t.Fatalf("expected ErrOperationFailed, got %v", err)
	}
}

func TestWaiter_Wait_Timeout(t *testing.T) {
	checker := &scriptedChecker{results: []Result{{Status: StatusInProgress}}}
	waiter := NewWaiter(checker, testLogger())

	interval := 10 * time.Millisecond
	timeout := 50 * time.Millisecond

	start := time.Now()
	_, err := waiter.Wait(context.Background(), "op-1", interval, timeout)
	elapsed := time.Since(start)

	if !errors.Is(err, ErrWaitTimeout) {
		t.Fatalf("expected ErrWaitTimeout, got %v", err)
	}
	if elapsed < timeout {
		t.Errorf("returned before the timeout: %v < %v", elapsed, timeout)
	}
	// The deadline is re-checked before each sleep, so the loop ends within
	// one interval of the timeout mark. Generous bound to avoid flakes.
	if elapsed > timeout+10*interval {
		t.Errorf("returned too long after the timeout: %v", elapsed)
	}
	if checker.calls < 2 {
		t.Errorf("expected multiple polls before timing out, got %d", checker.calls)
	}
}

func TestWaiter_Wait_ContextCancelled(t *testing.T) {
	checker := &scriptedChecker{results: []Result{{Status: StatusInProgress}}}
	waiter := NewWaiter(checker, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := waiter.Wait(ctx, "op-1", time.Minute, time.Hour)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestWaiter_Wait_TerminalBeatsTimeout(t *testing.T) {
	// The first poll runs even with a zero timeout, so an already-terminal
	// operation resolves instead of timing out.
	checker := &scriptedChecker{results: []Result{
		{Status: StatusSucceeded, URI: "gs://bucket/result.json"},
	}}
	waiter := NewWaiter(checker, testLogger())

	uri, err := waiter.Wait(context.Background(), "op-1", time.Second, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uri != "gs://bucket/result.json" {
		t.Errorf("unexpected URI: %s", uri)
	}
}
