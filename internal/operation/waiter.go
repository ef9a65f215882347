package operation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Static errors for the poll loop.
var (
	// ErrWaitTimeout is returned when the operation did not reach a terminal
	// state within the configured timeout.
	ErrWaitTimeout = errors.New("operation: wait timed out")
	// ErrOperationFailed is returned when the operation reached a terminal
	// failed or error state.
	ErrOperationFailed = errors.New("operation: operation failed")
)

// StatusChecker is the single-check contract the Waiter polls against.
// *Poller is the production implementation.
type StatusChecker interface {
	Poll(ctx context.Context, id string) Result
}

// Waiter runs the bounded poll loop: one status check per interval until a
// terminal state or the timeout, whichever comes first.
type Waiter struct {
	poller StatusChecker
	logger *slog.Logger
}

// NewWaiter creates a new Waiter.
func NewWaiter(poller StatusChecker, logger *slog.Logger) *Waiter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Waiter{poller: poller, logger: logger}
}

// Wait polls the operation at the given interval until it succeeds, fails,
// or the timeout elapses. The timeout is measured from loop start, and it is
// re-checked before every sleep so a slow backend cannot extend the loop
// past the deadline by a full interval.
func (w *Waiter) Wait(ctx context.Context, id string, interval, timeout time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)

	for {
		res := w.poller.Poll(ctx, id)

		switch res.Status {
		case StatusSucceeded:
			return res.URI, nil
		case StatusFailed, StatusError:
			return "", fmt.Errorf("%w: %s", ErrOperationFailed, res.Err)
		}

		if !time.Now().Before(deadline) {
			w.logger.Warn("poll loop timed out",
				slog.String("operation_id", id),
				slog.Duration("timeout", timeout),
			)
			return "", ErrWaitTimeout
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("operation: wait cancelled: %w", ctx.Err())
		case <-time.After(interval):
		}
	}
}
