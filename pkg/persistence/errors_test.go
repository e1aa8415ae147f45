package persistence_test

import (
	"errors"
	"testing"

	"github.com/flowforge/flowforge/pkg/persistence"
	"github.com/stretchr/testify/assert"
)

func TestStandardizedErrors(t *testing.T) {
	t.Parallel()

	t.Run("error checking functions work correctly", func(t *testing.T) {
		err := persistence.NewAutomationError("GetByID", "auto-123", persistence.ErrAutomationNotFound)

		assert.True(t, persistence.IsAutomationNotFound(err))
		assert.True(t, errors.Is(err, persistence.ErrAutomationNotFound))
		assert.False(t, persistence.IsStorageUnavailable(err))
	})

	t.Run("automation error contains context", func(t *testing.T) {
		err := persistence.NewAutomationError("Delete", "auto-123", persistence.ErrAutomationNotFound)

		assert.Contains(t, err.Error(), "Delete")
		assert.Contains(t, err.Error(), "auto-123")
		assert.Contains(t, err.Error(), "automation not found")
	})

	t.Run("activity error wraps the underlying error", func(t *testing.T) {
		err := &persistence.ActivityError{Op: "Append", OwnerID: "user-1", Err: persistence.ErrStorageUnavailable}

		assert.True(t, persistence.IsStorageUnavailable(err))
		assert.Contains(t, err.Error(), "user-1")
	})
}
