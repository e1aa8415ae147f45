// Package web provides HTTP handlers and REST API endpoints for automation
// management.
package web

import (
	"net/http"
	"time"

	"github.com/flowforge/flowforge/pkg/catalog"
	"github.com/flowforge/flowforge/pkg/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// OwnerHeader carries the authenticated owner identity. It is set by the
// upstream identity layer, which this service trusts.
const OwnerHeader = "X-User-ID"

type APIHandlers struct {
	automationService *services.Automation
	activityService   *services.Activity
	statsService      *services.Stats
	suggestService    *services.Suggest
	catalog           *catalog.Catalog
	validator         *validator.Validate
}

func NewAPIHandlers(
	automationService *services.Automation,
	activityService *services.Activity,
	statsService *services.Stats,
	suggestService *services.Suggest,
	cat *catalog.Catalog,
	validator *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		automationService: automationService,
		activityService:   activityService,
		statsService:      statsService,
		suggestService:    suggestService,
		catalog:           cat,
		validator:         validator,
	}
}

// ownerID extracts the authenticated owner from the request headers.
func ownerID(c fiber.Ctx) string {
	return c.Get(OwnerHeader)
}

func (h *APIHandlers) GetTemplates(c fiber.Ctx) error {
	category := c.Query("category")
	query := c.Query("q")

	return c.JSON(h.catalog.Find(category, query))
}

func (h *APIHandlers) GetAutomations(c fiber.Ctx) error {
	automations, err := h.automationService.List(c.Context(), ownerID(c), c.Query("q"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(automations)
}

func (h *APIHandlers) CreateAutomation(c fiber.Ctx) error {
	var req CreateAutomationRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.automationService.Create(c.Context(), ownerID(c), req.Draft())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) ToggleAutomation(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Automation ID is required")
	}

	toggled, err := h.automationService.Toggle(c.Context(), ownerID(c), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(ToggleResponse{ID: toggled.ID, Status: toggled.Status})
}

// MarkAutomationError is the hook the execution engine calls when a run
// fails. The automation stays visible with status "error" until the owner
// toggles it back.
func (h *APIHandlers) MarkAutomationError(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Automation ID is required")
	}

	var req MarkErrorRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	marked, err := h.automationService.MarkError(c.Context(), ownerID(c), id, req.Reason)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(marked)
}

func (h *APIHandlers) DeleteAutomation(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Automation ID is required")
	}

	if err := h.automationService.Delete(c.Context(), ownerID(c), id); err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) GetDashboardStats(c fiber.Ctx) error {
	stats, err := h.statsService.Compute(c.Context(), ownerID(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(stats)
}

func (h *APIHandlers) GetActivity(c fiber.Ctx) error {
	entries, err := h.activityService.List(c.Context(), ownerID(c))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(entries)
}

func (h *APIHandlers) SuggestAutomation(c fiber.Ctx) error {
	var req SuggestRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	created, err := h.suggestService.SuggestAndCreate(c.Context(), ownerID(c), req.Message)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *APIHandlers) CompleteOnboarding(c fiber.Ctx) error {
	var req OnboardingRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	entry, err := h.activityService.CompleteOnboarding(c.Context(), ownerID(c), req.JobTitle, req.Industry)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	repositoryCheck, repOk := h.automationService.HealthCheck(c.Context())

	status := "unhealthy"
	message := "Flow-Forge API is unhealthy"
	httpStatus := http.StatusInternalServerError

	if repOk {
		status = "healthy"
		message = "Flow-Forge API is healthy"
		httpStatus = http.StatusOK
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"checkers": fiber.Map{
			"repository": repositoryCheck,
		},
		"timestamp": time.Now().UTC(),
	})
}
