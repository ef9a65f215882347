// Package server provides the HTTP API for the advertisement video
// generation service. It includes handlers, middleware, routes, and DTOs
// separated from domain types.
package server

import "github.com/promovid/adgen-api/internal/job"

// GenerateVideoRequest is the HTTP request body for starting a generation job.
type GenerateVideoRequest struct {
	// ProductName is the name of the product being advertised.
	ProductName string `json:"product_name" validate:"required,min=1,max=100"`
	// ProductDescription details the product and its main benefits.
	ProductDescription string `json:"product_description" validate:"required,min=10,max=1000"`
	// AdBrief describes what to include in the advertisement.
	AdBrief string `json:"ad_brief" validate:"required,min=10,max=500"`
	// DurationSeconds is the video duration in seconds (5-8, default 8).
	DurationSeconds int `json:"duration_seconds" validate:"omitempty,min=5,max=8"`
	// AspectRatio is the video aspect ratio (default "16:9").
	AspectRatio string `json:"aspect_ratio" validate:"omitempty,oneof=16:9 9:16"`
	// SampleCount is the number of samples to generate (1-4, default 1).
	SampleCount int `json:"sample_count" validate:"omitempty,min=1,max=4"`
}

// applyDefaults fills the optional fields with their documented defaults.
func (r *GenerateVideoRequest) applyDefaults() {
	if r.DurationSeconds == 0 {
		r.DurationSeconds = 8
	}
	if r.AspectRatio == "" {
		r.AspectRatio = "16:9"
	}
	if r.SampleCount == 0 {
		r.SampleCount = 1
	}
}

// GenerateVideoResponse is the HTTP response after starting a job.
type GenerateVideoResponse struct {
	// Message describes how to follow the job.
	Message string `json:"message"`
	// VideoID identifies the job for status polling.
	VideoID string `json:"video_id"`
}

// VideoStatusResponse is the HTTP response for a job status read.
type VideoStatusResponse struct {
	// VideoID identifies the job.
	VideoID string `json:"video_id"`
	// Status is the current job status.
	Status string `json:"status"`
	// OperationName is the backend operation identifier, once assigned.
	OperationName string `json:"operation_name,omitempty"`
	// GeneratedSamples holds the results; present only when completed.
	GeneratedSamples []job.Sample `json:"generated_samples,omitempty"`
	// ErrorMessage describes the failure; present only when failed.
	ErrorMessage string `json:"error_message,omitempty"`
	// ProgressPercentage is the completion percentage (0-100).
	ProgressPercentage int `json:"progress_percentage"`
}

// VideoStatusListResponse is the HTTP response for the status listing,
// intended for debugging and monitoring.
type VideoStatusListResponse struct {
	// TotalRequests is the number of known jobs.
	TotalRequests int `json:"total_requests"`
	// Requests maps job IDs to their status.
	Requests map[string]VideoStatusResponse `json:"requests"`
}

// DeleteVideoResponse is the HTTP response after deleting a job record.
type DeleteVideoResponse struct {
	// Message confirms the deletion.
	Message string `json:"message"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the human-readable error message.
	Error string `json:"error"`
	// Detail carries additional context for debugging.
	Detail string `json:"detail,omitempty"`
}

// HealthResponse is the HTTP response for the health check endpoint.
type HealthResponse struct {
	// Status is the health status of the service.
	Status string `json:"status"`
	// Timestamp is the server time in Unix seconds.
	Timestamp int64 `json:"timestamp"`
}
