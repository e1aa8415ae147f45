package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/flowforge/flowforge/pkg/models"
	"github.com/flowforge/flowforge/pkg/persistence"
)

// AutomationRepository handles automation database operations.
type AutomationRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewAutomationRepository creates a new automation repository.
func NewAutomationRepository(db *sql.DB, logger *slog.Logger) *AutomationRepository {
	return &AutomationRepository{db: db, logger: logger}
}

const automationColumns = `
	id
  , owner_id
  , name
  , description
  , category
  , trigger
  , action
  , status
  , template_id
  , nodes
  , time_saved_minutes
  , created_at
`

// Save inserts the automation or updates it in place.
func (r *AutomationRepository) Save(ctx context.Context, automation *models.Automation) error {
	nodesJSON, err := json.Marshal(automation.Nodes)
	if err != nil {
		return persistence.NewAutomationError("Save", automation.ID, err)
	}

	query := `
		INSERT INTO automations (` + automationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			trigger = EXCLUDED.trigger,
			action = EXCLUDED.action,
			status = EXCLUDED.status,
			template_id = EXCLUDED.template_id,
			nodes = EXCLUDED.nodes,
			time_saved_minutes = EXCLUDED.time_saved_minutes
	`

	var templateID sql.NullString
	if automation.TemplateID != "" {
		templateID = sql.NullString{String: automation.TemplateID, Valid: true}
	}

	_, err = r.db.ExecContext(ctx, query,
		automation.ID,
		automation.OwnerID,
		automation.Name,
		automation.Description,
		automation.Category,
		automation.Trigger,
		automation.Action,
		string(automation.Status),
		templateID,
		nodesJSON,
		automation.TimeSavedMinutes,
		automation.CreatedAt,
	)
	if err != nil {
		return persistence.NewAutomationError("Save", automation.ID, fmt.Errorf("failed to save automation: %w", err))
	}

	return nil
}

// GetByID loads one automation scoped to its owner.
func (r *AutomationRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Automation, error) {
	query := `SELECT ` + automationColumns + ` FROM automations WHERE id = $1 AND owner_id = $2`

	automation, err := r.scanAutomation(r.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, persistence.NewAutomationError("GetByID", id, persistence.ErrAutomationNotFound)
		}

		return nil, persistence.NewAutomationError("GetByID", id, err)
	}

	return automation, nil
}

// ListByOwner returns the owner's automations newest-first with id
// tiebreaks.
func (r *AutomationRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Automation, error) {
	query := `
		SELECT ` + automationColumns + `
		FROM automations
		WHERE owner_id = $1
		ORDER BY created_at DESC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, persistence.NewAutomationError("ListByOwner", "", fmt.Errorf("failed to query automations: %w", err))
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	automations := make([]*models.Automation, 0)

	for rows.Next() {
		automation, err := r.scanAutomation(rows)
		if err != nil {
			return nil, persistence.NewAutomationError("ListByOwner", "", err)
		}

		automations = append(automations, automation)
	}

	err = rows.Err()
	if err != nil {
		return nil, persistence.NewAutomationError("ListByOwner", "", err)
	}

	return automations, nil
}

// Delete permanently removes one automation under the ownership rule.
func (r *AutomationRepository) Delete(ctx context.Context, ownerID, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM automations WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err != nil {
		return persistence.NewAutomationError("Delete", id, fmt.Errorf("failed to delete automation: %w", err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence.NewAutomationError("Delete", id, err)
	}

	if affected == 0 {
		return persistence.NewAutomationError("Delete", id, persistence.ErrAutomationNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *AutomationRepository) scanAutomation(row rowScanner) (*models.Automation, error) {
	var (
		automation models.Automation
		templateID sql.NullString
		nodesJSON  []byte
	)

	err := row.Scan(
		&automation.ID,
		&automation.OwnerID,
		&automation.Name,
		&automation.Description,
		&automation.Category,
		&automation.Trigger,
		&automation.Action,
		&automation.Status,
		&templateID,
		&nodesJSON,
		&automation.TimeSavedMinutes,
		&automation.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if templateID.Valid {
		automation.TemplateID = templateID.String
	}

	if len(nodesJSON) > 0 {
		err = json.Unmarshal(nodesJSON, &automation.Nodes)
		if err != nil {
			return nil, fmt.Errorf("failed to decode nodes: %w", err)
		}
	}

	return &automation, nil
}
