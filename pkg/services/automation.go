package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/flowforge/flowforge/pkg/catalog"
	"github.com/flowforge/flowforge/pkg/eventbus"
	"github.com/flowforge/flowforge/pkg/events"
	"github.com/flowforge/flowforge/pkg/models"
	"github.com/flowforge/flowforge/pkg/otelhelper"
	"github.com/flowforge/flowforge/pkg/persistence"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "flowforge/services"

// Automation is the single source of truth for a user's automations. All
// mutations for one owner execute serially, the activity append always
// happens after the mutation it describes, and a lifecycle event is
// published for external consumers after each successful mutation.
type Automation struct {
	persistence persistence.Persistence
	activity    *Activity
	eventBus    eventbus.EventPublisher
	catalog     *catalog.Catalog
	tracer      trace.Tracer
	logger      *slog.Logger

	mu         sync.Mutex
	ownerLocks map[string]*sync.Mutex
}

// NewAutomation creates the automation service. The event bus may be nil
// when no external consumers exist (tests, single-binary setups).
func NewAutomation(
	p persistence.Persistence,
	activity *Activity,
	eventBus eventbus.EventPublisher,
	cat *catalog.Catalog,
	logger *slog.Logger,
) *Automation {
	return &Automation{
		persistence: p,
		activity:    activity,
		eventBus:    eventBus,
		catalog:     cat,
		tracer:      otel.Tracer(tracerName),
		logger:      logger,
		ownerLocks:  make(map[string]*sync.Mutex),
	}
}

// lockOwner serializes mutations per owner. Reads do not take this lock;
// repositories guarantee consistent snapshots on their own.
func (s *Automation) lockOwner(ownerID string) func() {
	s.mu.Lock()

	lock, ok := s.ownerLocks[ownerID]
	if !ok {
		lock = &sync.Mutex{}
		s.ownerLocks[ownerID] = lock
	}

	s.mu.Unlock()
	lock.Lock()

	return lock.Unlock
}

// validateDraft checks the fields every producer must supply, in a fixed
// order so the first failing field is deterministic. Upstream producers are
// never trusted to have validated already.
func validateDraft(draft *models.Draft) error {
	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" {
		return NewInvalidDraftError("name")
	}

	if strings.TrimSpace(draft.Trigger) == "" {
		return NewInvalidDraftError("trigger")
	}

	if strings.TrimSpace(draft.Action) == "" {
		return NewInvalidDraftError("action")
	}

	return nil
}

// Create validates the draft and persists a new active automation. Drafts
// come from templates, the flow builder or the intent extractor; the
// service does not care which.
func (s *Automation) Create(ctx context.Context, ownerID string, draft models.Draft) (*models.Automation, error) {
	ctx, span := otelhelper.StartSpan(ctx, s.tracer, "automation.create",
		attribute.String(otelhelper.OwnerIDKey, ownerID))
	defer span.End()

	if ownerID == "" {
		return nil, ErrEmptyOwnerID
	}

	err := validateDraft(&draft)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	unlock := s.lockOwner(ownerID)
	defer unlock()

	category := draft.Category
	if category == "" {
		category = "custom"
	}

	timeSaved := catalog.TimeSavedDefault(category)

	if draft.TemplateID != "" {
		if tpl, ok := s.catalog.ByID(draft.TemplateID); ok {
			timeSaved = tpl.TimeSavedMinutes
		}
	}

	automation := &models.Automation{
		ID:               uuid.New().String(),
		OwnerID:          ownerID,
		Name:             draft.Name,
		Description:      draft.Description,
		Category:         category,
		Trigger:          draft.Trigger,
		Action:           draft.Action,
		Status:           models.AutomationStatusActive,
		TemplateID:       draft.TemplateID,
		Nodes:            draft.Nodes,
		TimeSavedMinutes: timeSaved,
		CreatedAt:        time.Now().UTC(),
	}

	err = s.persistence.AutomationRepository().Save(ctx, automation)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("failed to create automation: %w", err)
	}

	span.SetAttributes(attribute.String(otelhelper.AutomationIDKey, automation.ID))

	s.recordActivity(ctx, ownerID, models.ActionAutomationCreated, "Created: "+automation.Name)
	s.publish(ctx, events.AutomationCreated{
		BaseEvent:  s.baseEvent(events.AutomationCreatedEvent, automation),
		Name:       automation.Name,
		Category:   automation.Category,
		TemplateID: automation.TemplateID,
	})

	return automation, nil
}

// Toggle flips an automation between active and paused; an automation in
// error state is acknowledged back to active.
func (s *Automation) Toggle(ctx context.Context, ownerID, id string) (*models.Automation, error) {
	ctx, span := otelhelper.StartSpan(ctx, s.tracer, "automation.toggle",
		attribute.String(otelhelper.OwnerIDKey, ownerID),
		attribute.String(otelhelper.AutomationIDKey, id))
	defer span.End()

	unlock := s.lockOwner(ownerID)
	defer unlock()

	automation, err := s.persistence.AutomationRepository().GetByID(ctx, ownerID, id)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	automation.Status = automation.Status.Toggled()

	err = s.persistence.AutomationRepository().Save(ctx, automation)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("failed to toggle automation %s: %w", id, err)
	}

	span.SetAttributes(attribute.String(otelhelper.StatusKey, string(automation.Status)))

	s.recordActivity(ctx, ownerID, models.ActionAutomationToggled,
		fmt.Sprintf("%s → %s", automation.Name, automation.Status))
	s.publish(ctx, events.AutomationToggled{
		BaseEvent: s.baseEvent(events.AutomationToggledEvent, automation),
		Status:    automation.Status,
	})

	return automation, nil
}

// Delete permanently removes an automation. Removal is terminal; there is
// no undelete.
func (s *Automation) Delete(ctx context.Context, ownerID, id string) error {
	ctx, span := otelhelper.StartSpan(ctx, s.tracer, "automation.delete",
		attribute.String(otelhelper.OwnerIDKey, ownerID),
		attribute.String(otelhelper.AutomationIDKey, id))
	defer span.End()

	unlock := s.lockOwner(ownerID)
	defer unlock()

	automation, err := s.persistence.AutomationRepository().GetByID(ctx, ownerID, id)
	if err != nil {
		otelhelper.SetError(span, err)

		return err
	}

	err = s.persistence.AutomationRepository().Delete(ctx, ownerID, id)
	if err != nil {
		otelhelper.SetError(span, err)

		return fmt.Errorf("failed to delete automation %s: %w", id, err)
	}

	s.recordActivity(ctx, ownerID, models.ActionAutomationDeleted, "Deleted automation "+id)
	s.publish(ctx, events.AutomationDeleted{
		BaseEvent: s.baseEvent(events.AutomationDeletedEvent, automation),
	})

	return nil
}

// MarkError is the hook for the external execution engine: it moves an
// automation into error state. The next toggle acknowledges back to active.
// The reason travels in the published event only; the activity log kinds
// are fixed and do not cover engine failures.
func (s *Automation) MarkError(ctx context.Context, ownerID, id, reason string) (*models.Automation, error) {
	ctx, span := otelhelper.StartSpan(ctx, s.tracer, "automation.mark_error",
		attribute.String(otelhelper.OwnerIDKey, ownerID),
		attribute.String(otelhelper.AutomationIDKey, id))
	defer span.End()

	unlock := s.lockOwner(ownerID)
	defer unlock()

	automation, err := s.persistence.AutomationRepository().GetByID(ctx, ownerID, id)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}

	automation.Status = models.AutomationStatusError

	err = s.persistence.AutomationRepository().Save(ctx, automation)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("failed to mark automation %s as failed: %w", id, err)
	}

	s.logger.WarnContext(ctx, "automation marked as failing",
		"automation_id", id, "owner_id", ownerID, "reason", reason)
	s.publish(ctx, events.AutomationMarkedError{
		BaseEvent: s.baseEvent(events.AutomationMarkedErrorEvent, automation),
		Reason:    reason,
	})

	return automation, nil
}

// List returns the owner's automations newest-first. A non-empty query
// keeps records whose name or category contains it, case-insensitively.
func (s *Automation) List(ctx context.Context, ownerID, query string) ([]*models.Automation, error) {
	automations, err := s.persistence.AutomationRepository().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list automations: %w", err)
	}

	if query == "" {
		return automations, nil
	}

	query = strings.ToLower(query)
	filtered := make([]*models.Automation, 0, len(automations))

	for _, automation := range automations {
		if strings.Contains(strings.ToLower(automation.Name), query) ||
			strings.Contains(strings.ToLower(automation.Category), query) {
			filtered = append(filtered, automation)
		}
	}

	return filtered, nil
}

// HealthCheck checks the health of the persistence layer.
func (s *Automation) HealthCheck(ctx context.Context) (string, bool) {
	if s.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := s.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// recordActivity appends the audit entry for a mutation that already
// succeeded. A failing append is a data-quality problem, not a reason to
// undo the mutation, so it is surfaced in the log and swallowed.
func (s *Automation) recordActivity(ctx context.Context, ownerID string, kind models.ActionKind, detail string) {
	_, err := s.activity.Record(ctx, ownerID, kind, detail)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to record activity for successful mutation",
			"owner_id", ownerID, "kind", string(kind), "error", err)
	}
}

func (s *Automation) publish(ctx context.Context, event eventbus.Event) {
	if s.eventBus == nil {
		return
	}

	err := s.eventBus.Publish(ctx, uuid.New().String(), event)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to publish lifecycle event",
			"event_type", string(event.GetType()), "error", err)
	}
}

func (s *Automation) baseEvent(eventType events.EventType, automation *models.Automation) events.BaseEvent {
	return events.BaseEvent{
		ID:           uuid.New().String(),
		Type:         eventType,
		Timestamp:    time.Now().UTC(),
		OwnerID:      automation.OwnerID,
		AutomationID: automation.ID,
	}
}
