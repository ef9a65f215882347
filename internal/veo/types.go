// Package veo provides an HTTP client for the Veo text-to-video generation API.
// Veo exposes a long-running-operation interface: a submission returns an
// operation name which is polled until done.
package veo

// SubmitOptions contains parameters for submitting a generation request.
type SubmitOptions struct {
	Prompt          string // Text-to-video prompt
	OutputURI       string // Object-storage prefix for generated videos, e.g. gs://bucket/job-id/
	DurationSeconds int    // Video duration in seconds (5-8)
	AspectRatio     string // "16:9" or "9:16"
	SampleCount     int    // Number of samples to generate (1-4)
}

// DefaultSubmitOptions returns the default options for a generation request.
func DefaultSubmitOptions() SubmitOptions {
	return SubmitOptions{
		DurationSeconds: 8,
		AspectRatio:     "16:9",
		SampleCount:     1,
	}
}

// Sample is one generated video in a completed operation.
type Sample struct {
	URI      string
	Encoding string
}

// PollResult contains the result of polling an operation.
type PollResult struct {
	Done    bool
	Samples []Sample // Set when Done and the operation succeeded
	Error   string   // Set when Done and the operation failed
}

// predictRequest represents the request body for the predictLongRunning endpoint.
type predictRequest struct {
	Instances  []predictInstance `json:"instances"`
	Parameters predictParameters `json:"parameters"`
}

// predictInstance carries the prompt for one generation.
type predictInstance struct {
	Prompt string `json:"prompt"`
}

// predictParameters carries the generation tuning parameters.
type predictParameters struct {
	AspectRatio     string `json:"aspectRatio,omitempty"`
	DurationSeconds int    `json:"durationSeconds,omitempty"`
	SampleCount     int    `json:"sampleCount,omitempty"`
	StorageURI      string `json:"storageUri,omitempty"`
}

// operationResponse represents an operation resource, returned both by the
// submission call and by the operation-status call.
type operationResponse struct {
	Name     string           `json:"name"`
	Done     bool             `json:"done"`
	Response *operationResult `json:"response,omitempty"`
	Error    *operationError  `json:"error,omitempty"`
}

// operationResult is the payload of a completed operation.
type operationResult struct {
	GenerateVideoResponse *videoResponse `json:"generateVideoResponse,omitempty"`
}

// videoResponse lists the generated samples.
type videoResponse struct {
	GeneratedSamples []generatedSample `json:"generatedSamples,omitempty"`
}

// generatedSample is one generated video reference.
type generatedSample struct {
	Video videoRef `json:"video"`
}

// videoRef points at a generated video in object storage.
type videoRef struct {
	URI      string `json:"uri"`
	Encoding string `json:"encoding,omitempty"`
}

// operationError is the error payload of a failed operation.
type operationError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
