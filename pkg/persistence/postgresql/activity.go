package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/flowforge/flowforge/pkg/models"
	"github.com/flowforge/flowforge/pkg/persistence"
)

// ActivityRepository handles activity log database operations. The log is
// insert-only; no update or delete statements exist for it.
type ActivityRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewActivityRepository creates a new activity repository.
func NewActivityRepository(db *sql.DB, logger *slog.Logger) *ActivityRepository {
	return &ActivityRepository{db: db, logger: logger}
}

// Append assigns the owner's next sequence id inside a transaction and
// inserts the entry.
func (r *ActivityRepository) Append(ctx context.Context, entry *models.ActivityEntry) error {
	transaction, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return &persistence.ActivityError{Op: "Append", OwnerID: entry.OwnerID, Err: fmt.Errorf("%w: %w", persistence.ErrStorageUnavailable, err)}
	}

	var next int64

	err = transaction.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(id), 0) + 1 FROM activity_log WHERE owner_id = $1",
		entry.OwnerID,
	).Scan(&next)
	if err != nil {
		_ = transaction.Rollback()

		return &persistence.ActivityError{Op: "Append", OwnerID: entry.OwnerID, Err: err}
	}

	_, err = transaction.ExecContext(ctx,
		"INSERT INTO activity_log (owner_id, id, action_kind, detail, created_at) VALUES ($1, $2, $3, $4, $5)",
		entry.OwnerID,
		next,
		string(entry.Kind),
		entry.Detail,
		entry.Timestamp,
	)
	if err != nil {
		_ = transaction.Rollback()

		return &persistence.ActivityError{Op: "Append", OwnerID: entry.OwnerID, Err: err}
	}

	err = transaction.Commit()
	if err != nil {
		return &persistence.ActivityError{Op: "Append", OwnerID: entry.OwnerID, Err: err}
	}

	entry.ID = next

	return nil
}

// ListByOwner returns the owner's entries newest-first.
func (r *ActivityRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.ActivityEntry, error) {
	query := `
		SELECT owner_id, id, action_kind, detail, created_at
		FROM activity_log
		WHERE owner_id = $1
		ORDER BY id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, &persistence.ActivityError{Op: "ListByOwner", OwnerID: ownerID, Err: err}
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	entries := make([]*models.ActivityEntry, 0)

	for rows.Next() {
		var entry models.ActivityEntry

		err = rows.Scan(&entry.OwnerID, &entry.ID, &entry.Kind, &entry.Detail, &entry.Timestamp)
		if err != nil {
			return nil, &persistence.ActivityError{Op: "ListByOwner", OwnerID: ownerID, Err: err}
		}

		entries = append(entries, &entry)
	}

	err = rows.Err()
	if err != nil {
		return nil, &persistence.ActivityError{Op: "ListByOwner", OwnerID: ownerID, Err: err}
	}

	return entries, nil
}
