package services

import (
	"context"
	"fmt"
	"time"

	"github.com/flowforge/flowforge/pkg/models"
	"github.com/flowforge/flowforge/pkg/persistence"
)

// Activity is the append-only audit trail of state-changing events. It is
// the single writer of activity entries; nothing updates or deletes them.
type Activity struct {
	persistence persistence.Persistence
}

// NewActivity creates the activity service.
func NewActivity(p persistence.Persistence) *Activity {
	return &Activity{persistence: p}
}

// Record appends one entry with the current timestamp. The repository
// assigns the owner-scoped sequence id.
func (s *Activity) Record(ctx context.Context, ownerID string, kind models.ActionKind, detail string) (*models.ActivityEntry, error) {
	if ownerID == "" {
		return nil, ErrEmptyOwnerID
	}

	entry := &models.ActivityEntry{
		OwnerID:   ownerID,
		Kind:      kind,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	}

	err := s.persistence.ActivityRepository().Append(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to append activity entry: %w", err)
	}

	return entry, nil
}

// CompleteOnboarding records that the identity layer finished onboarding a
// user. The profile itself lives with the identity provider; only the audit
// entry belongs here.
func (s *Activity) CompleteOnboarding(ctx context.Context, ownerID, jobTitle, industry string) (*models.ActivityEntry, error) {
	detail := fmt.Sprintf("Onboarded as %s in %s", jobTitle, industry)

	return s.Record(ctx, ownerID, models.ActionOnboardingComplete, detail)
}

// List returns the owner's entries newest-first.
func (s *Activity) List(ctx context.Context, ownerID string) ([]*models.ActivityEntry, error) {
	entries, err := s.persistence.ActivityRepository().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}

	return entries, nil
}
