// Package web provides HTTP request and response types for the automation
// API.
package web

import "github.com/flowforge/flowforge/pkg/models"

// CreateAutomationRequest is the request body for creating an automation.
// Field names are part of the external contract and must not change.
type CreateAutomationRequest struct {
	Name        string            `json:"name"        validate:"required"`
	Description string            `json:"description"`
	Trigger     string            `json:"trigger"     validate:"required"`
	Action      string            `json:"action"      validate:"required"`
	Category    string            `json:"category"`
	TemplateID  string            `json:"template_id,omitempty"`
	Nodes       []models.FlowNode `json:"nodes,omitempty"`
}

// Draft converts the request into the draft shape every producer shares.
func (r CreateAutomationRequest) Draft() models.Draft {
	return models.Draft{
		Name:        r.Name,
		Description: r.Description,
		Trigger:     r.Trigger,
		Action:      r.Action,
		Category:    r.Category,
		TemplateID:  r.TemplateID,
		Nodes:       r.Nodes,
	}
}

// SuggestRequest is the request body for AI-assisted creation.
type SuggestRequest struct {
	Message string `json:"message" validate:"required"`
}

// MarkErrorRequest is the request body of the execution-engine hook.
type MarkErrorRequest struct {
	Reason string `json:"reason"`
}

// OnboardingRequest records completion of the identity layer's onboarding.
type OnboardingRequest struct {
	JobTitle string `json:"job_title" validate:"required"`
	Industry string `json:"industry"  validate:"required"`
}

// ToggleResponse reports the status reached by a toggle.
type ToggleResponse struct {
	ID     string                  `json:"id"`
	Status models.AutomationStatus `json:"status"`
}
