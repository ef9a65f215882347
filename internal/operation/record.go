// Package operation implements the long-running-operation core: metadata
// records for backend submissions, an in-process store, the submission
// adapter with its degraded fallback chain, the status poller, and the
// bounded poll loop.
package operation

import "time"

// Mode records which submission path produced an operation.
type Mode string

const (
	// ModePrimary means the real video backend accepted the submission.
	ModePrimary Mode = "primary"
	// ModeFallback means the backend rejected the submission and a
	// descriptive text artifact was produced instead.
	ModeFallback Mode = "fallback"
	// ModeSynthetic means both the backend and the fallback failed and a
	// synthetic operation was created that resolves to a deterministic
	// success. Only produced when synthetic success is enabled.
	ModeSynthetic Mode = "synthetic"
)

// Status represents the backend-visible state of an operation.
type Status string

const (
	// StatusInProgress indicates the operation has not reached a terminal state.
	StatusInProgress Status = "in_progress"
	// StatusSucceeded indicates the operation completed with a result URI.
	StatusSucceeded Status = "succeeded"
	// StatusFailed indicates the backend reported a failure.
	StatusFailed Status = "failed"
	// StatusError indicates the operation could not be polled at all,
	// e.g. an unknown operation ID. Not retryable.
	StatusError Status = "error"
)

// IsTerminal returns true if the status represents a final state.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusError:
		return true
	default:
		return false
	}
}

// Params are the submission parameters of an operation.
// They are immutable after the record is created.
type Params struct {
	// Prompt is the text-to-video prompt.
	Prompt string
	// OutputURI is the object-storage prefix for generated videos,
	// e.g. gs://bucket/job-id/.
	OutputURI string
	// DurationSeconds is the video duration in seconds.
	DurationSeconds int
	// AspectRatio is the video aspect ratio.
	AspectRatio string
	// SampleCount is the number of samples to generate.
	SampleCount int
}

// Record is the bookkeeping entry for one backend submission.
// It is created by the Submitter, mutated only by the Poller, and never deleted.
type Record struct {
	// ID is the operation identifier handed to callers.
	ID string
	// Mode records which submission path produced this operation.
	Mode Mode
	// BackendName is the backend-native operation name (primary mode only).
	BackendName string
	// ArtifactURI points at the fallback text artifact (fallback mode only).
	ArtifactURI string
	// Params are the immutable submission parameters.
	Params Params
	// Status is the current backend-visible state.
	Status Status
	// ResultURI is set exactly once, when Status transitions to succeeded.
	ResultURI string
	// Error holds the failure reason when Status is failed.
	Error string
	// CreatedAt is when the submission was recorded.
	CreatedAt time.Time
	// CompletedAt is set exactly once, when Status transitions to succeeded.
	CompletedAt time.Time
}

// Clone creates a copy of the record for safe reads.
func (r *Record) Clone() *Record {
	cp := *r
	return &cp
}
