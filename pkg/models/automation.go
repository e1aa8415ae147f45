// Package models defines the core domain models for trigger/action automations.
package models

import "time"

// AutomationStatus represents the declared run state of an automation.
type AutomationStatus string

const (
	AutomationStatusActive AutomationStatus = "active"
	AutomationStatusPaused AutomationStatus = "paused"

	// AutomationStatusError is entered only through the execution-engine
	// hook; a toggle from it moves back to active (acknowledge and retry).
	AutomationStatusError AutomationStatus = "error"
)

// Automation is the persisted trigger + ordered-actions definition owned by
// a single user. It is mutated only through the automation service.
type Automation struct {
	ID               string           `json:"id"`
	OwnerID          string           `json:"owner_id"`
	Name             string           `json:"name"        validate:"required"`
	Description      string           `json:"description"`
	Category         string           `json:"category"`
	Trigger          string           `json:"trigger"     validate:"required"`
	Action           string           `json:"action"      validate:"required"`
	Status           AutomationStatus `json:"status"`
	TemplateID       string           `json:"template_id,omitempty"`
	Nodes            []FlowNode       `json:"nodes,omitempty"`
	TimeSavedMinutes int              `json:"time_saved_minutes"`
	CreatedAt        time.Time        `json:"created_at"`
}

// Toggled returns the status reached by one explicit toggle: active and
// paused flip into each other, error is acknowledged back to active.
func (s AutomationStatus) Toggled() AutomationStatus {
	if s == AutomationStatusActive {
		return AutomationStatusPaused
	}

	return AutomationStatusActive
}

// Draft is an unvalidated candidate automation. Templates, the flow builder
// and the intent extractor all produce drafts; the automation service
// re-validates every one of them before persisting.
type Draft struct {
	Name        string     `json:"name"        validate:"required"`
	Description string     `json:"description"`
	Trigger     string     `json:"trigger"     validate:"required"`
	Action      string     `json:"action"      validate:"required"`
	Category    string     `json:"category"`
	TemplateID  string     `json:"template_id,omitempty"`
	Nodes       []FlowNode `json:"nodes,omitempty"`
}
