package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/flowforge/flowforge/pkg/models"
	"github.com/flowforge/flowforge/pkg/persistence"
)

// AutomationRepository stores each automation as
// <root>/automations/<owner>/<id>.json.
type AutomationRepository struct {
	root string
	mu   sync.RWMutex
}

// NewAutomationRepository creates an automation repository under root.
func NewAutomationRepository(root string) *AutomationRepository {
	return &AutomationRepository{root: root}
}

func (ar *AutomationRepository) ownerDir(ownerID string) string {
	return filepath.Join(ar.root, "automations", ownerID)
}

func (ar *AutomationRepository) path(ownerID, id string) string {
	return filepath.Join(ar.ownerDir(ownerID), id+".json")
}

// Save writes the automation document, creating the owner directory on
// first use.
func (ar *AutomationRepository) Save(ctx context.Context, automation *models.Automation) error {
	ar.mu.Lock()
	defer ar.mu.Unlock()

	dir := ar.ownerDir(automation.OwnerID)

	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return persistence.NewAutomationError("Save", automation.ID, fmt.Errorf("%w: %w", persistence.ErrStorageUnavailable, err))
	}

	data, err := json.MarshalIndent(automation, "", "  ")
	if err != nil {
		return persistence.NewAutomationError("Save", automation.ID, err)
	}

	err = os.WriteFile(ar.path(automation.OwnerID, automation.ID), data, 0o644)
	if err != nil {
		return persistence.NewAutomationError("Save", automation.ID, fmt.Errorf("%w: %w", persistence.ErrStorageUnavailable, err))
	}

	return nil
}

// GetByID loads one automation. A missing file reports ErrAutomationNotFound
// regardless of whether the id exists under another owner.
func (ar *AutomationRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Automation, error) {
	ar.mu.RLock()
	defer ar.mu.RUnlock()

	return ar.read(ownerID, id)
}

func (ar *AutomationRepository) read(ownerID, id string) (*models.Automation, error) {
	data, err := os.ReadFile(ar.path(ownerID, id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, persistence.NewAutomationError("GetByID", id, persistence.ErrAutomationNotFound)
		}

		return nil, persistence.NewAutomationError("GetByID", id, fmt.Errorf("%w: %w", persistence.ErrStorageUnavailable, err))
	}

	var automation models.Automation

	err = json.Unmarshal(data, &automation)
	if err != nil {
		return nil, persistence.NewAutomationError("GetByID", id, err)
	}

	return &automation, nil
}

// ListByOwner returns the owner's automations newest-first with id
// tiebreaks. An owner with no directory yet simply has no automations.
func (ar *AutomationRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Automation, error) {
	ar.mu.RLock()
	defer ar.mu.RUnlock()

	dir := ar.ownerDir(ownerID)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []*models.Automation{}, nil
	}

	jsonFiles, err := fs.Glob(os.DirFS(dir), "*.json")
	if err != nil {
		return nil, persistence.NewAutomationError("ListByOwner", "", err)
	}

	automations := make([]*models.Automation, 0, len(jsonFiles))

	for _, name := range jsonFiles {
		automation, err := ar.read(ownerID, name[:len(name)-len(".json")])
		if err != nil {
			return nil, err
		}

		automations = append(automations, automation)
	}

	persistence.SortAutomations(automations)

	return automations, nil
}

// Delete permanently removes one automation under the same ownership rule
// as GetByID.
func (ar *AutomationRepository) Delete(ctx context.Context, ownerID, id string) error {
	ar.mu.Lock()
	defer ar.mu.Unlock()

	err := os.Remove(ar.path(ownerID, id))
	if err != nil {
		if os.IsNotExist(err) {
			return persistence.NewAutomationError("Delete", id, persistence.ErrAutomationNotFound)
		}

		return persistence.NewAutomationError("Delete", id, fmt.Errorf("%w: %w", persistence.ErrStorageUnavailable, err))
	}

	return nil
}
