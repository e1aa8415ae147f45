// Package persistence provides the data storage abstraction for automations
// and the activity log.
package persistence

import (
	"context"
	"sort"

	"github.com/flowforge/flowforge/pkg/models"
)

// Persistence bundles the repositories of one storage backend.
type Persistence interface {
	AutomationRepository() AutomationRepository
	ActivityRepository() ActivityRepository
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// AutomationRepository stores automations scoped to their owner. Lookups
// always take the owner id; an id that exists under another owner behaves
// exactly like a missing id.
type AutomationRepository interface {
	Save(ctx context.Context, automation *models.Automation) error
	GetByID(ctx context.Context, ownerID, id string) (*models.Automation, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Automation, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// ActivityRepository stores the append-only activity log. Append assigns the
// owner-scoped, monotonically increasing entry ID; entries are never updated
// or deleted.
type ActivityRepository interface {
	Append(ctx context.Context, entry *models.ActivityEntry) error
	ListByOwner(ctx context.Context, ownerID string) ([]*models.ActivityEntry, error)
}

// SortAutomations orders automations newest-first, breaking creation-time
// ties by id so the order is stable across backends.
func SortAutomations(automations []*models.Automation) {
	sort.SliceStable(automations, func(i, j int) bool {
		if automations[i].CreatedAt.Equal(automations[j].CreatedAt) {
			return automations[i].ID < automations[j].ID
		}

		return automations[i].CreatedAt.After(automations[j].CreatedAt)
	})
}

// SortActivity orders activity entries newest-first by their sequence id.
func SortActivity(entries []*models.ActivityEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ID > entries[j].ID
	})
}
