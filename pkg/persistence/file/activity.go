package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/flowforge/flowforge/pkg/models"
	"github.com/flowforge/flowforge/pkg/persistence"
)

// ActivityRepository stores each entry as
// <root>/activity/<owner>/<sequence>.json with a zero-padded, owner-scoped
// sequence number. Entries are written once and never touched again.
type ActivityRepository struct {
	root string
	mu   sync.Mutex
}

// NewActivityRepository creates an activity repository under root.
func NewActivityRepository(root string) *ActivityRepository {
	return &ActivityRepository{root: root}
}

func (ar *ActivityRepository) ownerDir(ownerID string) string {
	return filepath.Join(ar.root, "activity", ownerID)
}

// Append assigns the next sequence id for the owner and writes the entry.
func (ar *ActivityRepository) Append(ctx context.Context, entry *models.ActivityEntry) error {
	ar.mu.Lock()
	defer ar.mu.Unlock()

	dir := ar.ownerDir(entry.OwnerID)

	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return &persistence.ActivityError{Op: "Append", OwnerID: entry.OwnerID, Err: fmt.Errorf("%w: %w", persistence.ErrStorageUnavailable, err)}
	}

	next, err := ar.nextSequence(dir)
	if err != nil {
		return &persistence.ActivityError{Op: "Append", OwnerID: entry.OwnerID, Err: err}
	}

	entry.ID = next

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return &persistence.ActivityError{Op: "Append", OwnerID: entry.OwnerID, Err: err}
	}

	name := fmt.Sprintf("%010d.json", next)

	err = os.WriteFile(filepath.Join(dir, name), data, 0o644)
	if err != nil {
		return &persistence.ActivityError{Op: "Append", OwnerID: entry.OwnerID, Err: fmt.Errorf("%w: %w", persistence.ErrStorageUnavailable, err)}
	}

	return nil
}

func (ar *ActivityRepository) nextSequence(dir string) (int64, error) {
	jsonFiles, err := fs.Glob(os.DirFS(dir), "*.json")
	if err != nil {
		return 0, err
	}

	var maxSeq int64

	for _, name := range jsonFiles {
		seq, err := strconv.ParseInt(strings.TrimSuffix(name, ".json"), 10, 64)
		if err != nil {
			continue
		}

		if seq > maxSeq {
			maxSeq = seq
		}
	}

	return maxSeq + 1, nil
}

// ListByOwner returns the owner's entries newest-first.
func (ar *ActivityRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.ActivityEntry, error) {
	ar.mu.Lock()
	defer ar.mu.Unlock()

	dir := ar.ownerDir(ownerID)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []*models.ActivityEntry{}, nil
	}

	jsonFiles, err := fs.Glob(os.DirFS(dir), "*.json")
	if err != nil {
		return nil, &persistence.ActivityError{Op: "ListByOwner", OwnerID: ownerID, Err: err}
	}

	entries := make([]*models.ActivityEntry, 0, len(jsonFiles))

	for _, name := range jsonFiles {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, &persistence.ActivityError{Op: "ListByOwner", OwnerID: ownerID, Err: err}
		}

		var entry models.ActivityEntry

		err = json.Unmarshal(data, &entry)
		if err != nil {
			return nil, &persistence.ActivityError{Op: "ListByOwner", OwnerID: ownerID, Err: err}
		}

		entries = append(entries, &entry)
	}

	persistence.SortActivity(entries)

	return entries, nil
}
