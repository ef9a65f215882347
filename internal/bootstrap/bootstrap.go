// Package bootstrap provides dependency initialization for the service.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/promovid/adgen-api/internal/config"
	"github.com/promovid/adgen-api/internal/gemini"
	"github.com/promovid/adgen-api/internal/job"
	"github.com/promovid/adgen-api/internal/operation"
	"github.com/promovid/adgen-api/internal/prompt"
	"github.com/promovid/adgen-api/internal/storage"
	"github.com/promovid/adgen-api/internal/veo"
)

// Dependencies holds all initialized dependencies for the application.
type Dependencies struct {
	JobService *job.Service
}

// NewDependencies creates and initializes all dependencies. Extra service
// options are appended after the config-derived ones, so callers such as the
// CLI can override behavior (e.g. run the pipeline inline).
func NewDependencies(cfg *config.Config, logger *slog.Logger, svcOpts ...job.ServiceOption) (*Dependencies, error) {
	// Artifact storage for fallback artifacts and result manifests
	artifacts, err := initArtifacts(cfg, logger)
	if err != nil {
		return nil, err
	}

	// Gemini client for prompt synthesis
	geminiClient, err := gemini.NewClient(cfg.GeminiModel, gemini.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	prompts := prompt.NewGeminiGenerator(geminiClient)

	// Veo client for video generation
	veoClient, err := veo.NewClient(cfg.VeoModel, veo.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("create Veo client: %w", err)
	}

	// Operation core: store, submission adapter, poller, poll loop
	opStore := operation.NewMemoryStore()
	submitter := operation.NewSubmitter(veoClient, artifacts, opStore, logger,
		operation.WithSyntheticSuccess(cfg.EnableSyntheticSuccess),
	)
	poller := operation.NewPoller(veoClient, opStore, logger,
		operation.WithSimulatedCompletion(cfg.SimulatedCompletion),
	)
	waiter := operation.NewWaiter(poller, logger)

	// Job repository
	repo := initRepository(cfg, logger)

	opts := append([]job.ServiceOption{
		job.WithPollInterval(cfg.PollInterval),
		job.WithPollTimeout(cfg.PollTimeout),
	}, svcOpts...)

	svc := job.NewService(
		repo,
		prompts,
		submitter,
		waiter,
		artifacts,
		cfg.OutputScheme,
		cfg.OutputBucket,
		logger,
		opts...,
	)

	return &Dependencies{
		JobService: svc,
	}, nil
}

// initArtifacts creates the artifact store backend based on configuration.
func initArtifacts(cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	if cfg.S3Enabled() {
		s3Store, err := storage.NewS3Store(storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			return nil, fmt.Errorf("create S3 artifact store: %w", err)
		}
		logger.Info("S3 artifact storage configured",
			slog.String("bucket", cfg.S3Bucket),
			slog.String("region", cfg.S3Region),
		)
		return s3Store, nil
	}

	localStore, err := storage.NewLocalStore(cfg.ArtifactDir)
	if err != nil {
		return nil, fmt.Errorf("create local artifact store: %w", err)
	}
	logger.Info("local artifact storage configured",
		slog.String("artifact_dir", cfg.ArtifactDir),
	)
	return localStore, nil
}

// initRepository creates the job repository based on configuration.
func initRepository(cfg *config.Config, logger *slog.Logger) job.Repository {
	if cfg.RedisEnabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		logger.Info("Redis job repository configured",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		return job.NewRedisRepository(client)
	}

	logger.Info("in-memory job repository configured")
	return job.NewMemoryRepository()
}
