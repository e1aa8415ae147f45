package counter

import (
	"context"
	"errors"
	"fmt"

	redis "github.com/redis/go-redis/v9"
)

const keyPrefix = "flowforge:tasks_run:"

// Redis reads per-owner execution counts from the redis keys the execution
// engine increments (flowforge:tasks_run:<owner_id>).
type Redis struct {
	client redis.UniversalClient
}

// NewRedis creates a redis-backed counter from a connection URL.
func NewRedis(url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	return &Redis{client: redis.NewClient(opts)}, nil
}

// TasksRun returns the owner's counter; a missing key means no tasks ran.
func (r *Redis) TasksRun(ctx context.Context, ownerID string) (int64, error) {
	count, err := r.client.Get(ctx, keyPrefix+ownerID).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}

		return 0, fmt.Errorf("failed to read task counter for %s: %w", ownerID, err)
	}

	return count, nil
}

// Close releases the redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
