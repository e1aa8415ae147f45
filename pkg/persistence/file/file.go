// Package file provides file-based persistence for automations and the
// activity log. Each owner gets a directory of JSON documents; it is meant
// for development and tests, not high write volumes.
package file

import (
	"context"
	"os"
	"strings"

	"github.com/flowforge/flowforge/pkg/persistence"
)

// Persistence implements the persistence.Persistence interface on the file
// system.
type Persistence struct {
	root           string
	automationRepo *AutomationRepository
	activityRepo   *ActivityRepository
}

// NewPersistence creates a file persistence rooted at the given directory.
// A "file://" prefix is accepted and stripped.
func NewPersistence(root string) *Persistence {
	cleanRoot := strings.TrimPrefix(root, "file://")

	return &Persistence{
		root:           cleanRoot,
		automationRepo: NewAutomationRepository(cleanRoot),
		activityRepo:   NewActivityRepository(cleanRoot),
	}
}

// AutomationRepository returns the automation repository.
func (fp *Persistence) AutomationRepository() persistence.AutomationRepository {
	return fp.automationRepo
}

// ActivityRepository returns the activity log repository.
func (fp *Persistence) ActivityRepository() persistence.ActivityRepository {
	return fp.activityRepo
}

// HealthCheck verifies the root directory exists.
func (fp *Persistence) HealthCheck(_ context.Context) error {
	if _, err := os.Stat(fp.root); os.IsNotExist(err) {
		return persistence.ErrStorageUnavailable
	}

	return nil
}

// Close performs any necessary cleanup. There is nothing to clean up for
// file persistence.
func (fp *Persistence) Close(_ context.Context) error {
	return nil
}
