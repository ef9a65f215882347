// Package job provides the Job aggregate for advertisement video generation
// requests. It includes the caller-visible state machine
// (queued → processing → completed|failed), repository ports for
// persistence, and the lifecycle service orchestrating the pipeline.
package job

import (
	"errors"
	"sync"
	"time"

	"github.com/promovid/adgen-api/internal/job/id"
)

// Status represents the caller-visible state of a Job.
type Status string

const (
	// StatusQueued indicates the job was accepted but the pipeline has not started.
	StatusQueued Status = "queued"
	// StatusProcessing indicates the generation pipeline is running.
	StatusProcessing Status = "processing"
	// StatusCompleted indicates the job finished with generated samples.
	StatusCompleted Status = "completed"
	// StatusFailed indicates the job encountered an error.
	StatusFailed Status = "failed"
)

// ErrInvalidTransition is returned when an invalid state transition is attempted.
var ErrInvalidTransition = errors.New("invalid state transition")

// validTransitions defines which state transitions are allowed.
// No transition is ever skipped or reverted.
var validTransitions = map[Status][]Status{
	StatusQueued:     {StatusProcessing, StatusFailed},
	StatusProcessing: {StatusCompleted, StatusFailed},
	StatusCompleted:  {},
	StatusFailed:     {},
}

// canTransition checks if a transition from one status to another is valid.
func canTransition(from, to Status) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// Sample is one generated result reference, as exposed to callers.
type Sample struct {
	// URI points at the generated artifact in object storage.
	URI string `json:"uri"`
	// Encoding is the MIME type of the artifact.
	Encoding string `json:"encoding"`
}

// Job represents one end-to-end video generation request.
// In a terminal state exactly one of Samples and ErrorMessage is set.
type Job struct {
	mu sync.RWMutex

	// ID is the unique identifier for this job.
	ID string
	// ProductName is the advertised product.
	ProductName string
	// Status is the current caller-visible state.
	Status Status
	// OperationID references the backend operation; assigned at most once.
	OperationID string
	// Prompt is the generated text-to-video prompt.
	Prompt string
	// Progress is the percentage of completion (0-100), monotonically
	// non-decreasing on the happy path and reset to 0 on failure.
	Progress int
	// Samples holds the generated results; present only when completed.
	Samples []Sample
	// ErrorMessage describes the failure; present only when failed.
	ErrorMessage string
	// CreatedAt is when the job was created.
	CreatedAt time.Time
	// UpdatedAt is when the job was last updated.
	UpdatedAt time.Time
	// StartedAt is when the pipeline started.
	StartedAt time.Time
	// CompletedAt is when the job reached a terminal state.
	CompletedAt time.Time
}

// New creates a new Job for the product with a generated ID and initial
// queued status.
func New(productName string) *Job {
	return NewWithID(id.Generate(productName), productName)
}

// NewWithID creates a new Job with the specified ID and initial queued status.
// Useful for testing or when the ID needs to be externally generated.
func NewWithID(jobID, productName string) *Job {
	now := time.Now()
	return &Job{
		ID:          jobID,
		ProductName: productName,
		Status:      StatusQueued,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TransitionTo attempts to change the job status to the specified state.
// Returns ErrInvalidTransition if the transition is not allowed.
func (j *Job) TransitionTo(status Status) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !canTransition(j.Status, status) {
		return ErrInvalidTransition
	}

	j.Status = status
	j.UpdatedAt = time.Now()

	switch status {
	case StatusProcessing:
		j.StartedAt = j.UpdatedAt
	case StatusCompleted, StatusFailed:
		j.CompletedAt = j.UpdatedAt
	}

	return nil
}

// Start transitions the job from queued to processing.
func (j *Job) Start() error {
	return j.TransitionTo(StatusProcessing)
}

// Complete transitions the job to completed with the generated samples and
// full progress.
func (j *Job) Complete(samples []Sample) error {
	j.mu.Lock()
	j.Samples = samples
	j.ErrorMessage = ""
	j.Progress = 100
	j.mu.Unlock()
	return j.TransitionTo(StatusCompleted)
}

// Fail transitions the job to failed with an error message.
// Progress is reset to 0.
func (j *Job) Fail(errMsg string) error {
	j.mu.Lock()
	j.ErrorMessage = errMsg
	j.Samples = nil
	j.Progress = 0
	j.mu.Unlock()
	return j.TransitionTo(StatusFailed)
}

// SetOperationID attaches the backend operation identifier.
// The identifier is assigned at most once; later calls are ignored.
func (j *Job) SetOperationID(opID string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.OperationID != "" {
		return
	}
	j.OperationID = opID
	j.UpdatedAt = time.Now()
}

// SetPrompt stores the generated text-to-video prompt.
func (j *Job) SetPrompt(prompt string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Prompt = prompt
	j.UpdatedAt = time.Now()
}

// UpdateProgress sets the progress percentage (0-100).
func (j *Job) UpdateProgress(progress int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	j.Progress = progress
	j.UpdatedAt = time.Now()
}

// GetStatus returns the current job status (thread-safe).
func (j *Job) GetStatus() Status {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.Status
}

// IsTerminal returns true if the job is in a terminal state.
func (j *Job) IsTerminal() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.Status == StatusCompleted || j.Status == StatusFailed
}

// Clone creates a deep copy of the job for safe reads.
func (j *Job) Clone() *Job {
	j.mu.RLock()
	defer j.mu.RUnlock()

	var samples []Sample
	if j.Samples != nil {
		samples = make([]Sample, len(j.Samples))
		copy(samples, j.Samples)
	}

	return &Job{
		ID:           j.ID,
		ProductName:  j.ProductName,
		Status:       j.Status,
		OperationID:  j.OperationID,
		Prompt:       j.Prompt,
		Progress:     j.Progress,
		Samples:      samples,
		ErrorMessage: j.ErrorMessage,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
		StartedAt:    j.StartedAt,
		CompletedAt:  j.CompletedAt,
	}
}
