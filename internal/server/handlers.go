package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/promovid/adgen-api/internal/job"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	service   *job.Service
	validator *validator.Validate
	logger    *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *job.Service, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		service:   service,
		validator: validator.New(),
		logger:    logger,
	}
}

// Health handles GET /health requests.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Unix(),
	})
}

// GenerateVideo handles POST /generate-video requests. It starts the
// generation pipeline in the background and returns immediately with a
// video ID for status polling.
func (h *Handlers) GenerateVideo(w http.ResponseWriter, r *http.Request) {
	var req GenerateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode request body",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusUnprocessableEntity, "invalid JSON body", err.Error())
		return
	}

	// Validate request
	if err := h.validator.Struct(req); err != nil {
		h.logger.Warn("request validation failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusUnprocessableEntity, "invalid request", err.Error())
		return
	}

	req.applyDefaults()

	videoID, err := h.service.StartJob(r.Context(), job.StartJobInput{
		ProductName:        req.ProductName,
		ProductDescription: req.ProductDescription,
		AdBrief:            req.AdBrief,
		DurationSeconds:    req.DurationSeconds,
		AspectRatio:        req.AspectRatio,
		SampleCount:        req.SampleCount,
	})
	if err != nil {
		h.logger.Error("failed to start job",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to start video generation", err.Error())
		return
	}

	h.logger.Info("video generation queued",
		slog.String("video_id", videoID),
	)

	writeJSON(w, http.StatusOK, GenerateVideoResponse{
		Message: "Video generation started. Use the video_id to check status.",
		VideoID: videoID,
	})
}

// GetVideoStatus handles GET /video-status/{id} requests.
func (h *Handlers) GetVideoStatus(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("id")
	if videoID == "" {
		writeError(w, http.StatusUnprocessableEntity, "video ID is required", "")
		return
	}

	found, err := h.service.GetJob(r.Context(), videoID)
	if err != nil {
		if errors.Is(err, job.ErrJobNotFound) {
			writeError(w, http.StatusNotFound, "video ID not found", "")
			return
		}
		h.logger.Error("failed to get job",
			slog.String("video_id", videoID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to get video status", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toStatusResponse(found))
}

// ListVideoStatus handles GET /video-status requests (debug/monitoring only).
func (h *Handlers) ListVideoStatus(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.service.ListJobs(r.Context())
	if err != nil {
		h.logger.Error("failed to list jobs",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to list video status", err.Error())
		return
	}

	resp := VideoStatusListResponse{
		TotalRequests: len(jobs),
		Requests:      make(map[string]VideoStatusResponse, len(jobs)),
	}
	for _, j := range jobs {
		resp.Requests[j.ID] = toStatusResponse(j)
	}

	writeJSON(w, http.StatusOK, resp)
}

// DeleteVideoStatus handles DELETE /video-status/{id} requests.
func (h *Handlers) DeleteVideoStatus(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("id")
	if videoID == "" {
		writeError(w, http.StatusUnprocessableEntity, "video ID is required", "")
		return
	}

	if err := h.service.DeleteJob(r.Context(), videoID); err != nil {
		if errors.Is(err, job.ErrJobNotFound) {
			writeError(w, http.StatusNotFound, "video ID not found", "")
			return
		}
		h.logger.Error("failed to delete job",
			slog.String("video_id", videoID),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to delete video status", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, DeleteVideoResponse{
		Message: "Video status for " + videoID + " deleted successfully",
	})
}

// toStatusResponse maps a job to its status DTO.
func toStatusResponse(j *job.Job) VideoStatusResponse {
	return VideoStatusResponse{
		VideoID:            j.ID,
		Status:             string(j.Status),
		OperationName:      j.OperationID,
		GeneratedSamples:   j.Samples,
		ErrorMessage:       j.ErrorMessage,
		ProgressPercentage: j.Progress,
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, message, detail string) {
	writeJSON(w, status, ErrorResponse{
		Error:  message,
		Detail: detail,
	})
}
