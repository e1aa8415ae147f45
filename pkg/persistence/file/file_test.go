package file_test

import (
	"context"
	"testing"
	"time"

	"github.com/flowforge/flowforge/pkg/models"
	"github.com/flowforge/flowforge/pkg/persistence"
	"github.com/flowforge/flowforge/pkg/persistence/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAutomation(owner, id, name string, createdAt time.Time) *models.Automation {
	return &models.Automation{
		ID:        id,
		OwnerID:   owner,
		Name:      name,
		Trigger:   "New email received",
		Action:    "Post to Slack channel",
		Category:  "custom",
		Status:    models.AutomationStatusActive,
		CreatedAt: createdAt,
	}
}

func TestPersistence_HealthCheck(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	healthy := file.NewPersistence(t.TempDir())
	require.NoError(t, healthy.HealthCheck(ctx))

	missing := file.NewPersistence("/nonexistent/flowforge-test-root")
	assert.ErrorIs(t, missing.HealthCheck(ctx), persistence.ErrStorageUnavailable)
}

func TestAutomationRepository_SaveAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := file.NewPersistence(t.TempDir()).AutomationRepository()

	automation := newAutomation("user-1", "auto-1", "Lead sync", time.Now().UTC())
	require.NoError(t, repo.Save(ctx, automation))

	loaded, err := repo.GetByID(ctx, "user-1", "auto-1")
	require.NoError(t, err)
	assert.Equal(t, "Lead sync", loaded.Name)
	assert.Equal(t, models.AutomationStatusActive, loaded.Status)
}

func TestAutomationRepository_OwnershipIsolation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := file.NewPersistence(t.TempDir()).AutomationRepository()

	require.NoError(t, repo.Save(ctx, newAutomation("user-1", "auto-1", "Mine", time.Now().UTC())))

	// A correct id under the wrong owner behaves like a missing id.
	_, err := repo.GetByID(ctx, "user-2", "auto-1")
	assert.True(t, persistence.IsAutomationNotFound(err))

	err = repo.Delete(ctx, "user-2", "auto-1")
	assert.True(t, persistence.IsAutomationNotFound(err))

	// The true owner still sees it.
	list, err := repo.ListByOwner(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAutomationRepository_ListByOwner(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := file.NewPersistence(t.TempDir()).AutomationRepository()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, newAutomation("user-1", "auto-a", "Oldest", base)))
	require.NoError(t, repo.Save(ctx, newAutomation("user-1", "auto-c", "Tie high id", base.Add(time.Hour))))
	require.NoError(t, repo.Save(ctx, newAutomation("user-1", "auto-b", "Tie low id", base.Add(time.Hour))))
	require.NoError(t, repo.Save(ctx, newAutomation("user-2", "auto-x", "Other owner", base)))

	list, err := repo.ListByOwner(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 3)

	// Newest first, creation-time ties broken by id.
	assert.Equal(t, "auto-b", list[0].ID)
	assert.Equal(t, "auto-c", list[1].ID)
	assert.Equal(t, "auto-a", list[2].ID)
}

func TestAutomationRepository_ListByOwner_Empty(t *testing.T) {
	t.Parallel()

	repo := file.NewPersistence(t.TempDir()).AutomationRepository()

	list, err := repo.ListByOwner(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAutomationRepository_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := file.NewPersistence(t.TempDir()).AutomationRepository()

	require.NoError(t, repo.Save(ctx, newAutomation("user-1", "auto-1", "Doomed", time.Now().UTC())))
	require.NoError(t, repo.Delete(ctx, "user-1", "auto-1"))

	_, err := repo.GetByID(ctx, "user-1", "auto-1")
	assert.True(t, persistence.IsAutomationNotFound(err))

	err = repo.Delete(ctx, "user-1", "auto-1")
	assert.True(t, persistence.IsAutomationNotFound(err))
}

func TestActivityRepository_AppendAssignsMonotonicIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := file.NewPersistence(t.TempDir()).ActivityRepository()

	for i := range 3 {
		entry := &models.ActivityEntry{
			OwnerID:   "user-1",
			Kind:      models.ActionAutomationCreated,
			Detail:    "Created: automation",
			Timestamp: time.Now().UTC().Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.Append(ctx, entry))
		assert.Equal(t, int64(i+1), entry.ID)
	}

	// Sequences are per owner.
	other := &models.ActivityEntry{OwnerID: "user-2", Kind: models.ActionAISuggestion, Timestamp: time.Now().UTC()}
	require.NoError(t, repo.Append(ctx, other))
	assert.Equal(t, int64(1), other.ID)
}

func TestActivityRepository_ListByOwner(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := file.NewPersistence(t.TempDir()).ActivityRepository()

	kinds := []models.ActionKind{
		models.ActionAutomationCreated,
		models.ActionAutomationToggled,
		models.ActionAutomationDeleted,
	}
	for _, kind := range kinds {
		require.NoError(t, repo.Append(ctx, &models.ActivityEntry{
			OwnerID:   "user-1",
			Kind:      kind,
			Timestamp: time.Now().UTC(),
		}))
	}

	entries, err := repo.ListByOwner(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.Equal(t, models.ActionAutomationDeleted, entries[0].Kind)
	assert.Equal(t, models.ActionAutomationCreated, entries[2].Kind)

	empty, err := repo.ListByOwner(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
