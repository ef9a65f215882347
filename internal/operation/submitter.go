package operation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/promovid/adgen-api/internal/storage"
	"github.com/promovid/adgen-api/internal/veo"
)

// ErrSubmissionFailed is returned when both the backend submission and the
// fallback artifact write fail and synthetic success is disabled.
var ErrSubmissionFailed = errors.New("operation: submission failed on all paths")

// Submitter is the backend submission adapter. It tries the real video
// backend first, degrades to a descriptive text artifact when the backend
// rejects the request, and (when enabled) degrades further to a synthetic
// operation when the artifact write fails too. Every path that returns an
// operation ID has already written the matching record to the store.
type Submitter struct {
	backend         veo.Client
	artifacts       storage.Store
	store           Store
	logger          *slog.Logger
	enableSynthetic bool
}

// SubmitterOption is a function that configures a Submitter.
type SubmitterOption func(*Submitter)

// WithSyntheticSuccess enables the synthetic-success path for total
// submission failure. Disabled by default; the synthetic path masks backend
// outages and exists for end-to-end testing without backend access.
func WithSyntheticSuccess(enabled bool) SubmitterOption {
	return func(s *Submitter) {
		s.enableSynthetic = enabled
	}
}

// NewSubmitter creates a new Submitter.
func NewSubmitter(backend veo.Client, artifacts storage.Store, store Store, logger *slog.Logger, opts ...SubmitterOption) *Submitter {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Submitter{
		backend:   backend,
		artifacts: artifacts,
		store:     store,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit sends the prompt to the video backend and returns an operation ID
// that can always be polled. The record is written to the store before the
// ID is returned, on every path.
func (s *Submitter) Submit(ctx context.Context, params Params) (string, error) {
	backendName, err := s.backend.Submit(ctx, veo.SubmitOptions{
		Prompt:          params.Prompt,
		OutputURI:       params.OutputURI,
		DurationSeconds: params.DurationSeconds,
		AspectRatio:     params.AspectRatio,
		SampleCount:     params.SampleCount,
	})
	if err == nil {
		rec := &Record{
			ID:          uuid.NewString(),
			Mode:        ModePrimary,
			BackendName: backendName,
			Params:      params,
			Status:      StatusInProgress,
			CreatedAt:   time.Now(),
		}
		s.store.Put(rec)
		s.logger.Info("backend accepted submission",
			slog.String("operation_id", rec.ID),
			slog.String("backend_name", backendName),
		)
		return rec.ID, nil
	}

	s.logger.Warn("backend submission failed, degrading to prompt artifact",
		slog.String("error", err.Error()),
	)

	id, fbErr := s.submitFallback(ctx, params)
	if fbErr == nil {
		return id, nil
	}

	if !s.enableSynthetic {
		return "", fmt.Errorf("%w: backend: %s; fallback: %s", ErrSubmissionFailed, err, fbErr)
	}

	rec := &Record{
		ID:        "synthetic-" + uuid.NewString(),
		Mode:      ModeSynthetic,
		Params:    params,
		Status:    StatusInProgress,
		CreatedAt: time.Now(),
	}
	s.store.Put(rec)
	s.logger.Warn("all submission paths failed, created synthetic operation",
		slog.String("operation_id", rec.ID),
		slog.String("backend_error", err.Error()),
		slog.String("fallback_error", fbErr.Error()),
	)
	return rec.ID, nil
}

// submitFallback writes a descriptive text artifact in place of a video so
// downstream polling stays uniform.
func (s *Submitter) submitFallback(ctx context.Context, params Params) (string, error) {
	id := "fallback-" + uuid.NewString()

	artifact := strings.Join([]string{
		"Video generation was unavailable; this artifact describes the requested ad.",
		"",
		"Output location: " + params.OutputURI,
		fmt.Sprintf("Duration: %ds, aspect ratio: %s, samples: %d",
			params.DurationSeconds, params.AspectRatio, params.SampleCount),
		"",
		params.Prompt,
	}, "\n")

	uri, err := s.artifacts.Put(ctx, id+"/prompt.txt", "text/plain", strings.NewReader(artifact))
	if err != nil {
		return "", fmt.Errorf("write fallback artifact: %w", err)
	}

	rec := &Record{
		ID:          id,
		Mode:        ModeFallback,
		ArtifactURI: uri,
		Params:      params,
		Status:      StatusInProgress,
		CreatedAt:   time.Now(),
	}
	s.store.Put(rec)
	s.logger.Info("fallback artifact stored",
		slog.String("operation_id", rec.ID),
		slog.String("artifact_uri", uri),
	)
	return rec.ID, nil
}
