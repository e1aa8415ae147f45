// Package counter abstracts the task-execution counter maintained by the
// external execution engine. The stats aggregator treats its value as an
// opaque input.
package counter

import "context"

// TaskCounter reports how many tasks the execution engine has run for an
// owner.
type TaskCounter interface {
	TasksRun(ctx context.Context, ownerID string) (int64, error)
}

// Static is a fixed-value counter for development and tests.
type Static map[string]int64

// TasksRun returns the configured count for the owner, zero when absent.
func (s Static) TasksRun(_ context.Context, ownerID string) (int64, error) {
	return s[ownerID], nil
}
