// Standardized error types shared by all persistence implementations.
package persistence

import (
	"errors"
	"fmt"
)

var (
	// ErrAutomationNotFound indicates no automation exists for the given
	// owner and identifier. Cross-owner access reports the same error so a
	// caller cannot distinguish "missing" from "not yours".
	ErrAutomationNotFound = errors.New("automation not found")

	// ErrStorageUnavailable indicates the underlying storage cannot be
	// reached. There is no local recovery; callers propagate it.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// AutomationError wraps automation persistence errors with operation context.
type AutomationError struct {
	Op           string // Operation being performed (e.g. "GetByID", "Save")
	AutomationID string
	Err          error
}

func (e *AutomationError) Error() string {
	return fmt.Sprintf("%s operation failed for automation %s: %v", e.Op, e.AutomationID, e.Err)
}

func (e *AutomationError) Unwrap() error {
	return e.Err
}

func (e *AutomationError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewAutomationError creates an automation error with context.
func NewAutomationError(op, automationID string, err error) *AutomationError {
	return &AutomationError{
		Op:           op,
		AutomationID: automationID,
		Err:          err,
	}
}

// ActivityError wraps activity log persistence errors with operation context.
type ActivityError struct {
	Op      string
	OwnerID string
	Err     error
}

func (e *ActivityError) Error() string {
	return fmt.Sprintf("%s operation failed for activity log of %s: %v", e.Op, e.OwnerID, e.Err)
}

func (e *ActivityError) Unwrap() error {
	return e.Err
}

func (e *ActivityError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsAutomationNotFound checks if an error indicates a missing automation.
func IsAutomationNotFound(err error) bool {
	return errors.Is(err, ErrAutomationNotFound)
}

// IsStorageUnavailable checks if an error indicates unreachable storage.
func IsStorageUnavailable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}
