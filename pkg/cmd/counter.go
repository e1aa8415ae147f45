package cmd

import (
	"fmt"

	"github.com/flowforge/flowforge/pkg/counter"
)

// NewTaskCounter connects to Redis when a URL is configured. Without one the
// dashboard reports zero tasks run, which keeps local setups working.
func NewTaskCounter(redisURL string) counter.TaskCounter {
	if redisURL == "" {
		return counter.Static{}
	}

	c, err := counter.NewRedis(redisURL)
	if err != nil {
		panic(fmt.Errorf("failed to create Redis task counter: %w", err))
	}

	return c
}
