package services_test

import (
	"context"
	"testing"

	"github.com/flowforge/flowforge/pkg/models"
	"github.com/flowforge/flowforge/pkg/persistence/file"
	"github.com/flowforge/flowforge/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivity_Record(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	activity := services.NewActivity(file.NewPersistence(t.TempDir()))

	entry, err := activity.Record(ctx, "user-1", models.ActionAutomationCreated, "Created: Lead sync")
	require.NoError(t, err)

	assert.Equal(t, int64(1), entry.ID)
	assert.Equal(t, "user-1", entry.OwnerID)
	assert.False(t, entry.Timestamp.IsZero())

	_, err = activity.Record(ctx, "", models.ActionAutomationCreated, "orphan")
	assert.ErrorIs(t, err, services.ErrEmptyOwnerID)
}

func TestActivity_CompleteOnboarding(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	activity := services.NewActivity(file.NewPersistence(t.TempDir()))

	entry, err := activity.CompleteOnboarding(ctx, "user-1", "Operations Manager", "logistics")
	require.NoError(t, err)

	assert.Equal(t, models.ActionOnboardingComplete, entry.Kind)
	assert.Equal(t, "Onboarded as Operations Manager in logistics", entry.Detail)
}

func TestActivity_List(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	activity := services.NewActivity(file.NewPersistence(t.TempDir()))

	_, err := activity.Record(ctx, "user-1", models.ActionAutomationCreated, "first")
	require.NoError(t, err)
	_, err = activity.Record(ctx, "user-1", models.ActionAISuggestion, "second")
	require.NoError(t, err)

	entries, err := activity.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Detail)
	assert.Equal(t, "first", entries[1].Detail)
}
