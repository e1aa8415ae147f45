// Package events defines event types and structures for automation
// lifecycle notifications.
package events

import (
	"time"

	"github.com/flowforge/flowforge/pkg/models"
)

type EventType string

// Topic carries all automation lifecycle events.
const Topic = "flowforge.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	AutomationCreatedEvent     EventType = "automation.created"
	AutomationToggledEvent     EventType = "automation.toggled"
	AutomationDeletedEvent     EventType = "automation.deleted"
	AutomationMarkedErrorEvent EventType = "automation.marked_error"
)

type BaseEvent struct {
	ID           string    `json:"id"`
	Type         EventType `json:"type"`
	Timestamp    time.Time `json:"timestamp"`
	OwnerID      string    `json:"owner_id"`
	AutomationID string    `json:"automation_id"`
}

type AutomationCreated struct {
	BaseEvent

	Name       string `json:"name"`
	Category   string `json:"category"`
	TemplateID string `json:"template_id,omitempty"`
}

func (e AutomationCreated) GetType() EventType {
	return AutomationCreatedEvent
}

type AutomationToggled struct {
	BaseEvent

	Status models.AutomationStatus `json:"status"`
}

func (e AutomationToggled) GetType() EventType {
	return AutomationToggledEvent
}

type AutomationDeleted struct {
	BaseEvent
}

func (e AutomationDeleted) GetType() EventType {
	return AutomationDeletedEvent
}

// AutomationMarkedError is published when the external execution engine
// reports a failing automation through the mark-error hook.
type AutomationMarkedError struct {
	BaseEvent

	Reason string `json:"reason"`
}

func (e AutomationMarkedError) GetType() EventType {
	return AutomationMarkedErrorEvent
}
