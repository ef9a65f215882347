package operation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/promovid/adgen-api/internal/veo"
)

// Result is the outcome of a single status check.
type Result struct {
	// Status is one of in_progress, succeeded, failed, error.
	Status Status
	// URI is the result location; set only when Status is succeeded.
	URI string
	// Err is the failure reason; set only when Status is failed or error.
	Err string
}

// Poller performs single, non-blocking status checks against the backend
// or, for operations without a live backend handle, against elapsed time.
// It is the only component that mutates operation records.
type Poller struct {
	backend   veo.Client
	store     Store
	logger    *slog.Logger
	simulated time.Duration
}

// PollerOption is a function that configures a Poller.
type PollerOption func(*Poller)

// WithSimulatedCompletion sets the elapsed time after which fallback
// operations are considered done.
func WithSimulatedCompletion(d time.Duration) PollerOption {
	return func(p *Poller) {
		p.simulated = d
	}
}

// NewPoller creates a new Poller.
func NewPoller(backend veo.Client, store Store, logger *slog.Logger, opts ...PollerOption) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Poller{
		backend:   backend,
		store:     store,
		logger:    logger,
		simulated: 20 * time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Poll performs one status check for the operation. An unknown operation ID
// yields a terminal error result. Repeated polls after success return the
// same succeeded payload without re-mutating the record.
func (p *Poller) Poll(ctx context.Context, id string) Result {
	rec, err := p.store.Get(id)
	if err != nil {
		return Result{Status: StatusError, Err: "operation not found: " + id}
	}

	// Terminal records are returned as-is; success is recorded exactly once.
	switch rec.Status {
	case StatusSucceeded:
		return Result{Status: StatusSucceeded, URI: rec.ResultURI}
	case StatusFailed, StatusError:
		return Result{Status: rec.Status, Err: rec.Error}
	}

	if rec.Mode == ModePrimary {
		return p.pollBackend(ctx, rec)
	}
	return p.pollSimulated(rec)
}

// pollBackend checks a live backend operation.
func (p *Poller) pollBackend(ctx context.Context, rec *Record) Result {
	res, err := p.backend.PollOperation(ctx, rec.BackendName)
	if err != nil {
		// A status check that cannot reach the backend at all is terminal
		// for this operation; callers resubmit rather than retry here.
		rec.Status = StatusError
		rec.Error = err.Error()
		p.store.Put(rec)
		p.logger.Error("backend status check failed",
			slog.String("operation_id", rec.ID),
			slog.String("error", err.Error()),
		)
		return Result{Status: StatusError, Err: rec.Error}
	}

	if !res.Done {
		return Result{Status: StatusInProgress}
	}

	if res.Error != "" {
		rec.Status = StatusFailed
		rec.Error = res.Error
		p.store.Put(rec)
		return Result{Status: StatusFailed, Err: res.Error}
	}

	uri := p.resultURI(rec)
	if len(res.Samples) > 0 && res.Samples[0].URI != "" {
		uri = res.Samples[0].URI
	}
	p.succeed(rec, uri)
	return Result{Status: StatusSucceeded, URI: uri}
}

// pollSimulated resolves fallback and synthetic operations by elapsed time.
// Synthetic operations succeed on the first poll.
func (p *Poller) pollSimulated(rec *Record) Result {
	threshold := p.simulated
	if rec.Mode == ModeSynthetic {
		threshold = 0
	}

	if time.Since(rec.CreatedAt) < threshold {
		return Result{Status: StatusInProgress}
	}

	uri := p.resultURI(rec)
	p.succeed(rec, uri)
	if rec.Mode == ModeSynthetic {
		p.logger.Warn("synthetic operation resolved to deterministic success",
			slog.String("operation_id", rec.ID),
			slog.String("result_uri", uri),
		)
	}
	return Result{Status: StatusSucceeded, URI: uri}
}

// succeed records the terminal success exactly once.
func (p *Poller) succeed(rec *Record, uri string) {
	rec.Status = StatusSucceeded
	rec.ResultURI = uri
	rec.CompletedAt = time.Now()
	p.store.Put(rec)
	p.logger.Info("operation succeeded",
		slog.String("operation_id", rec.ID),
		slog.String("mode", string(rec.Mode)),
		slog.String("result_uri", uri),
	)
}

// resultURI derives the deterministic result location from the stored
// output location and operation ID.
func (p *Poller) resultURI(rec *Record) string {
	base := rec.Params.OutputURI
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + rec.ID + "/result.json"
}
