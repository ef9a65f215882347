// Package config provides configuration loading from environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Static errors for configuration validation.
var (
	// ErrGeminiAPIKeyRequired is returned when GEMINI_API_KEY is not set.
	ErrGeminiAPIKeyRequired = errors.New("config: GEMINI_API_KEY is required")
	// ErrOutputBucketRequired is returned when OUTPUT_BUCKET is not set.
	ErrOutputBucketRequired = errors.New("config: OUTPUT_BUCKET is required")
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	Port int `env:"PORT, default=8080" json:"port"`

	// Gemini settings (prompt synthesis)
	GeminiAPIKey string `env:"GEMINI_API_KEY, required" json:"-"` // Masked in JSON
	GeminiModel  string `env:"GEMINI_MODEL, default=gemini-1.5-flash" json:"gemini_model"`

	// Veo settings (video generation backend)
	VeoModel string `env:"VEO_MODEL, default=veo-3.0-generate-preview" json:"veo_model"`

	// Output location for generated videos: <scheme>://<bucket>/<job-id>/
	OutputBucket string `env:"OUTPUT_BUCKET, required" json:"output_bucket"`
	OutputScheme string `env:"OUTPUT_SCHEME, default=gs" json:"output_scheme"`

	// Polling settings
	PollInterval time.Duration `env:"POLL_INTERVAL, default=15s" json:"poll_interval"`
	PollTimeout  time.Duration `env:"POLL_TIMEOUT, default=10m" json:"poll_timeout"`

	// SimulatedCompletion is the elapsed time after which a fallback
	// operation (one without a live backend handle) is considered done.
	SimulatedCompletion time.Duration `env:"SIMULATED_COMPLETION, default=20s" json:"simulated_completion"`

	// EnableSyntheticSuccess turns total submission failure into a
	// deterministic synthetic success instead of a failed job. Off unless
	// explicitly requested; intended for pipeline testing without backend access.
	EnableSyntheticSuccess bool `env:"ENABLE_SYNTHETIC_SUCCESS, default=false" json:"enable_synthetic_success"`

	// Optional Redis-backed job repository. Empty addr keeps the in-memory repository.
	RedisAddr     string `env:"REDIS_ADDR" json:"redis_addr,omitempty"`
	RedisPassword string `env:"REDIS_PASSWORD" json:"-"`
	RedisDB       int    `env:"REDIS_DB, default=0" json:"redis_db"`

	// Optional S3 artifact storage for fallback artifacts and result manifests.
	S3Bucket           string `env:"S3_BUCKET" json:"s3_bucket,omitempty"`
	S3Region           string `env:"S3_REGION" json:"s3_region,omitempty"`
	S3Endpoint         string `env:"S3_ENDPOINT" json:"s3_endpoint,omitempty"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" json:"-"`     // Masked in JSON
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" json:"-"` // Masked in JSON

	// Local artifact directory, used when S3 is not configured.
	ArtifactDir string `env:"ARTIFACT_DIR, default=/tmp/adgen" json:"artifact_dir"`

	// Logging settings
	LogFormat string `env:"LOG_FORMAT, default=text" json:"log_format"` // "json" or "text"
	LogLevel  string `env:"LOG_LEVEL, default=info" json:"log_level"`   // "debug", "info", "warn", "error"
}

// S3Enabled returns true if S3 artifact storage is configured.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}

// RedisEnabled returns true if a Redis job repository is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// Load reads configuration from environment variables using go-envconfig.
// It returns an error if required variables are not set.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process(context.Background(), cfg); err != nil {
		// Map envconfig errors to our domain errors for required fields
		if strings.Contains(err.Error(), "GEMINI_API_KEY") {
			return nil, ErrGeminiAPIKeyRequired
		}
		if strings.Contains(err.Error(), "OUTPUT_BUCKET") {
			return nil, ErrOutputBucketRequired
		}
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return ErrGeminiAPIKeyRequired
	}
	if c.OutputBucket == "" {
		return ErrOutputBucketRequired
	}
	return nil
}

// NewLogger creates a structured logger based on the configuration.
// When LogFormat is "json", it outputs JSON logs suitable for production.
// Otherwise, it outputs human-readable text logs.
func (c *Config) NewLogger() *slog.Logger {
	level := parseLogLevel(c.LogLevel)

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

// String returns a string representation of the config with sensitive values masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Port: %d, GeminiModel: %s, VeoModel: %s, OutputBucket: %s, OutputScheme: %s, PollInterval: %s, PollTimeout: %s, SimulatedCompletion: %s, EnableSyntheticSuccess: %t, RedisAddr: %s, S3Bucket: %s, S3Region: %s, ArtifactDir: %s, LogFormat: %s, LogLevel: %s}",
		c.Port,
		c.GeminiModel,
		c.VeoModel,
		c.OutputBucket,
		c.OutputScheme,
		c.PollInterval,
		c.PollTimeout,
		c.SimulatedCompletion,
		c.EnableSyntheticSuccess,
		c.RedisAddr,
		c.S3Bucket,
		c.S3Region,
		c.ArtifactDir,
		c.LogFormat,
		c.LogLevel,
	)
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
