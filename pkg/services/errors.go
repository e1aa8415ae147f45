// Package services implements the business logic over the persistence
// layer: the automation lifecycle, the activity audit trail, dashboard
// stats and AI-assisted creation.
package services

import (
	"errors"
	"fmt"

	"github.com/flowforge/flowforge/pkg/extractor"
	"github.com/flowforge/flowforge/pkg/persistence"
)

// Business logic errors indicating client mistakes (4xx responses).
var (
	ErrEmptyOwnerID = errors.New("owner ID cannot be empty")

	// ErrInvalidDraft is the base error every InvalidDraftError matches.
	ErrInvalidDraft = errors.New("invalid draft")

	// ErrAutomationNotFound is returned for missing ids and cross-owner
	// access alike.
	ErrAutomationNotFound = persistence.ErrAutomationNotFound
)

// InvalidDraftError reports the first draft field that failed validation.
// No mutation and no activity entry happen when it is returned.
type InvalidDraftError struct {
	Field string
}

func (e *InvalidDraftError) Error() string {
	return fmt.Sprintf("invalid draft: %s is required", e.Field)
}

func (e *InvalidDraftError) Is(target error) bool {
	return target == ErrInvalidDraft
}

// NewInvalidDraftError creates a draft validation error for a field.
func NewInvalidDraftError(field string) *InvalidDraftError {
	return &InvalidDraftError{Field: field}
}

// IsValidationError checks if an error should map to HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDraft) || errors.Is(err, ErrEmptyOwnerID)
}

// InvalidDraftField extracts the failing field from an invalid-draft error,
// or "" when the error is something else.
func InvalidDraftField(err error) string {
	var draftErr *InvalidDraftError
	if errors.As(err, &draftErr) {
		return draftErr.Field
	}

	return ""
}

// IsNotFound checks if an error indicates a missing (or not owned)
// automation.
func IsNotFound(err error) bool {
	return persistence.IsAutomationNotFound(err)
}

// IsExtractorFailure checks if an error came from the intent extractor.
func IsExtractorFailure(err error) bool {
	return extractor.IsExtractorFailure(err)
}
