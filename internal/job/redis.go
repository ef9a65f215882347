package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces job keys in Redis.
const keyPrefix = "adgen:job:"

// Compile-time check that RedisRepository implements Repository.
var _ Repository = (*RedisRepository)(nil)

// RedisRepository is a Redis-backed implementation of Repository.
// It demonstrates the drop-in persistent store behind the Repository port;
// durability guarantees beyond what Redis provides are out of scope.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository creates a job repository on top of the given client.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

// jobRecord is the serialized form of a Job.
type jobRecord struct {
	ID           string    `json:"id"`
	ProductName  string    `json:"product_name"`
	Status       Status    `json:"status"`
	OperationID  string    `json:"operation_id,omitempty"`
	Prompt       string    `json:"prompt,omitempty"`
	Progress     int       `json:"progress"`
	Samples      []Sample  `json:"samples,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	StartedAt    time.Time `json:"started_at"`
	CompletedAt  time.Time `json:"completed_at"`
}

// toRecord snapshots a job for serialization.
func toRecord(j *Job) jobRecord {
	c := j.Clone()
	return jobRecord{
		ID:           c.ID,
		ProductName:  c.ProductName,
		Status:       c.Status,
		OperationID:  c.OperationID,
		Prompt:       c.Prompt,
		Progress:     c.Progress,
		Samples:      c.Samples,
		ErrorMessage: c.ErrorMessage,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		StartedAt:    c.StartedAt,
		CompletedAt:  c.CompletedAt,
	}
}

// toJob rehydrates a job from its serialized form.
func (r jobRecord) toJob() *Job {
	return &Job{
		ID:           r.ID,
		ProductName:  r.ProductName,
		Status:       r.Status,
		OperationID:  r.OperationID,
		Prompt:       r.Prompt,
		Progress:     r.Progress,
		Samples:      r.Samples,
		ErrorMessage: r.ErrorMessage,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		StartedAt:    r.StartedAt,
		CompletedAt:  r.CompletedAt,
	}
}

// Save persists a job as a JSON value.
func (r *RedisRepository) Save(ctx context.Context, job *Job) error {
	data, err := json.Marshal(toRecord(job))
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+job.ID, data, 0).Err(); err != nil {
		return fmt.Errorf("save job: %w", err)
	}
	return nil
}

// FindByID retrieves a job by its ID.
func (r *RedisRepository) FindByID(ctx context.Context, id string) (*Job, error) {
	data, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}

	var rec jobRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal job: %w", err)
	}
	return rec.toJob(), nil
}

// List returns all jobs in the repository.
func (r *RedisRepository) List(ctx context.Context) ([]*Job, error) {
	var result []*Job

	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		data, err := r.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // Deleted between scan and get
			}
			return nil, fmt.Errorf("list jobs: %w", err)
		}

		var rec jobRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("unmarshal job: %w", err)
		}
		result = append(result, rec.toJob())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan jobs: %w", err)
	}

	return result, nil
}

// Delete removes a job from storage.
func (r *RedisRepository) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, keyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if n == 0 {
		return ErrJobNotFound
	}
	return nil
}
