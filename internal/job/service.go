package job

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/promovid/adgen-api/internal/operation"
	"github.com/promovid/adgen-api/internal/prompt"
	"github.com/promovid/adgen-api/internal/storage"
)

// Submitter is the submission-adapter contract the service depends on.
// *operation.Submitter is the production implementation.
type Submitter interface {
	Submit(ctx context.Context, params operation.Params) (string, error)
}

// Waiter is the poll-loop contract the service depends on.
// *operation.Waiter is the production implementation.
type Waiter interface {
	Wait(ctx context.Context, id string, interval, timeout time.Duration) (string, error)
}

// StartJobInput contains the parameters for one generation request.
type StartJobInput struct {
	// ProductName is the name of the product being advertised.
	ProductName string
	// ProductDescription details the product and its main benefits.
	ProductDescription string
	// AdBrief describes the tone and theme requested for the ad.
	AdBrief string
	// DurationSeconds is the video duration in seconds (5-8).
	DurationSeconds int
	// AspectRatio is the video aspect ratio.
	AspectRatio string
	// SampleCount is the number of samples to generate (1-4).
	SampleCount int
}

// Service is the job lifecycle manager. It creates job records, runs the
// generation pipeline off the caller's request path, and reconciles every
// outcome into a terminal job state.
type Service struct {
	repo      Repository
	prompts   prompt.Generator
	submitter Submitter
	waiter    Waiter
	artifacts storage.Store
	logger    *slog.Logger

	outputScheme string
	outputBucket string
	pollInterval time.Duration
	pollTimeout  time.Duration
	async        bool
}

// ServiceOption is a function that configures a Service.
type ServiceOption func(*Service)

// WithPollInterval sets the interval between status checks.
func WithPollInterval(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// WithPollTimeout sets the total time budget for the poll loop.
func WithPollTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.pollTimeout = d
		}
	}
}

// WithAsyncPipeline enables or disables running the pipeline on a detached
// goroutine. Disabled only by callers that want the pipeline inline, such as
// the CLI and tests.
func WithAsyncPipeline(enabled bool) ServiceOption {
	return func(s *Service) {
		s.async = enabled
	}
}

// NewService creates a new job lifecycle Service.
// outputScheme and outputBucket define where generated videos are addressed:
// <scheme>://<bucket>/<job-id>/.
func NewService(
	repo Repository,
	prompts prompt.Generator,
	submitter Submitter,
	waiter Waiter,
	artifacts storage.Store,
	outputScheme, outputBucket string,
	logger *slog.Logger,
	opts ...ServiceOption,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		repo:         repo,
		prompts:      prompts,
		submitter:    submitter,
		waiter:       waiter,
		artifacts:    artifacts,
		logger:       logger,
		outputScheme: outputScheme,
		outputBucket: outputBucket,
		pollInterval: 15 * time.Second,
		pollTimeout:  10 * time.Minute,
		async:        true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartJob creates a job record in queued state and schedules the generation
// pipeline. It returns the job ID immediately; callers observe progress
// through GetJob.
func (s *Service) StartJob(ctx context.Context, input StartJobInput) (string, error) {
	j := New(input.ProductName)

	s.logger.Info("job queued",
		slog.String("job_id", j.ID),
		slog.String("product_name", input.ProductName),
		slog.Int("duration_seconds", input.DurationSeconds),
		slog.String("aspect_ratio", input.AspectRatio),
		slog.Int("sample_count", input.SampleCount),
	)

	if err := s.repo.Save(ctx, j); err != nil {
		s.logger.Error("failed to save job",
			slog.String("job_id", j.ID),
			slog.String("error", err.Error()),
		)
		return "", err
	}

	if s.async {
		// Detach from the request context so the pipeline outlives the
		// HTTP request that created it.
		go s.Process(context.WithoutCancel(ctx), j.ID, input)
	} else {
		s.Process(ctx, j.ID, input)
	}

	return j.ID, nil
}

// GetJob retrieves a job by ID.
func (s *Service) GetJob(ctx context.Context, id string) (*Job, error) {
	return s.repo.FindByID(ctx, id)
}

// DeleteJob removes a job record.
func (s *Service) DeleteJob(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// ListJobs returns all job records.
func (s *Service) ListJobs(ctx context.Context) ([]*Job, error) {
	return s.repo.List(ctx)
}

// Process runs the generation pipeline for an existing job record.
// Every failure, including panics, resolves the job to a terminal failed
// state; the pipeline never crashes the host process and never leaves a
// job in processing indefinitely.
func (s *Service) Process(ctx context.Context, jobID string, input StartJobInput) {
	j, err := s.repo.FindByID(ctx, jobID)
	if err != nil {
		s.logger.Error("pipeline could not load job",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.failJob(ctx, j, fmt.Sprintf("internal error: %v", r))
		}
	}()

	if err := j.Start(); err != nil {
		s.logger.Error("pipeline could not start job",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
		return
	}
	j.UpdateProgress(10)
	s.save(ctx, j)

	// Stage 1: synthesize the video prompt
	videoPrompt, err := s.prompts.Generate(ctx, prompt.ProductBrief{
		ProductName:        input.ProductName,
		ProductDescription: input.ProductDescription,
		AdBrief:            input.AdBrief,
		DurationSeconds:    input.DurationSeconds,
		AspectRatio:        input.AspectRatio,
	})
	if err != nil {
		s.failJob(ctx, j, "prompt generation failed: "+err.Error())
		return
	}
	j.SetPrompt(videoPrompt)
	j.UpdateProgress(30)
	s.save(ctx, j)

	s.logger.Info("prompt generated",
		slog.String("job_id", j.ID),
		slog.Int("prompt_len", len(videoPrompt)),
	)

	// Stage 2: submit to the video backend
	outputURI := s.outputLocation(j.ID)
	opID, err := s.submitter.Submit(ctx, operation.Params{
		Prompt:          videoPrompt,
		OutputURI:       outputURI,
		DurationSeconds: input.DurationSeconds,
		AspectRatio:     input.AspectRatio,
		SampleCount:     input.SampleCount,
	})
	if err != nil {
		s.failJob(ctx, j, "submission failed: "+err.Error())
		return
	}
	j.SetOperationID(opID)
	j.UpdateProgress(60)
	s.save(ctx, j)

	// Stage 3: poll until done or timeout
	resultURI, err := s.waiter.Wait(ctx, opID, s.pollInterval, s.pollTimeout)
	if err != nil {
		s.failJob(ctx, j, "video generation failed: "+err.Error())
		return
	}

	s.writeManifest(ctx, j, resultURI)

	if err := j.Complete([]Sample{{URI: resultURI, Encoding: "application/json"}}); err != nil {
		s.logger.Error("failed to complete job",
			slog.String("job_id", j.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	s.save(ctx, j)

	s.logger.Info("job completed",
		slog.String("job_id", j.ID),
		slog.String("operation_id", opID),
		slog.String("result_uri", resultURI),
	)
}

// outputLocation builds the object-storage prefix for a job's videos.
func (s *Service) outputLocation(jobID string) string {
	return fmt.Sprintf("%s://%s/%s/", s.outputScheme, s.outputBucket, jobID)
}

// writeManifest stores a small JSON summary of the completed job next to the
// fallback artifacts. Best effort: a manifest write failure does not fail
// the job.
func (s *Service) writeManifest(ctx context.Context, j *Job, resultURI string) {
	if s.artifacts == nil {
		return
	}

	manifest := struct {
		JobID       string `json:"job_id"`
		ProductName string `json:"product_name"`
		OperationID string `json:"operation_id"`
		ResultURI   string `json:"result_uri"`
	}{
		JobID:       j.ID,
		ProductName: j.ProductName,
		OperationID: j.OperationID,
		ResultURI:   resultURI,
	}

	data, err := json.Marshal(manifest)
	if err != nil {
		return
	}

	if _, err := s.artifacts.Put(ctx, j.ID+"/manifest.json", "application/json", bytes.NewReader(data)); err != nil {
		s.logger.Warn("failed to write result manifest",
			slog.String("job_id", j.ID),
			slog.String("error", err.Error()),
		)
	}
}

// failJob resolves the job to failed and persists it.
func (s *Service) failJob(ctx context.Context, j *Job, msg string) {
	s.logger.Error("job failed",
		slog.String("job_id", j.ID),
		slog.String("error", msg),
	)
	if err := j.Fail(msg); err != nil {
		s.logger.Error("failed to mark job failed",
			slog.String("job_id", j.ID),
			slog.String("error", err.Error()),
		)
		return
	}
	s.save(ctx, j)
}

// save persists the job, logging instead of propagating repository errors:
// by this point the pipeline outcome is already decided.
func (s *Service) save(ctx context.Context, j *Job) {
	if err := s.repo.Save(ctx, j); err != nil {
		s.logger.Error("failed to persist job",
			slog.String("job_id", j.ID),
			slog.String("error", err.Error()),
		)
	}
}
