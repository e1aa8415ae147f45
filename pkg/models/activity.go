package models

import "time"

// ActionKind identifies the kind of state change an activity entry records.
type ActionKind string

const (
	ActionAutomationCreated  ActionKind = "automation_created"
	ActionAutomationToggled  ActionKind = "automation_toggled"
	ActionAutomationDeleted  ActionKind = "automation_deleted"
	ActionOnboardingComplete ActionKind = "onboarding_complete"
	ActionAISuggestion       ActionKind = "ai_suggestion"
)

// ActivityEntry is one record of the append-only audit trail. Entries are
// immutable once appended; the repository assigns the owner-scoped,
// monotonically increasing ID.
type ActivityEntry struct {
	ID        int64      `json:"id"`
	OwnerID   string     `json:"owner_id"`
	Kind      ActionKind `json:"action_kind"`
	Detail    string     `json:"detail"`
	Timestamp time.Time  `json:"timestamp"`
}
