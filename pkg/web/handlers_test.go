package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flowforge/flowforge/pkg/catalog"
	"github.com/flowforge/flowforge/pkg/counter"
	"github.com/flowforge/flowforge/pkg/extractor"
	"github.com/flowforge/flowforge/pkg/models"
	"github.com/flowforge/flowforge/pkg/persistence/file"
	"github.com/flowforge/flowforge/pkg/services"
	"github.com/flowforge/flowforge/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOwner = "user-1"

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	persistence := file.NewPersistence(t.TempDir())
	cat := catalog.New()
	logger := slog.Default()

	activityService := services.NewActivity(persistence)
	automationService := services.NewAutomation(persistence, activityService, nil, cat, logger)
	statsService := services.NewStats(persistence, counter.Static{testOwner: 30}, services.StatsConfig{})
	suggestService := services.NewSuggest(extractor.Heuristic{}, automationService, activityService, logger)

	handlers := web.NewAPIHandlers(
		automationService,
		activityService,
		statsService,
		suggestService,
		cat,
		validator.New(validator.WithRequiredStructEnabled()),
	)

	app := fiber.New()
	app.Get("/templates", handlers.GetTemplates)

	a := app.Group("/automations")
	a.Get("/", handlers.GetAutomations)
	a.Post("/", handlers.CreateAutomation)
	a.Put("/:id/toggle", handlers.ToggleAutomation)
	a.Put("/:id/error", handlers.MarkAutomationError)
	a.Delete("/:id", handlers.DeleteAutomation)

	app.Get("/dashboard/stats", handlers.GetDashboardStats)
	app.Get("/activity", handlers.GetActivity)
	app.Post("/ai/suggest", handlers.SuggestAutomation)
	app.Put("/onboarding", handlers.CompleteOnboarding)
	app.Get("/health", handlers.HealthCheck)

	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer

	if body != nil {
		if str, ok := body.(string); ok {
			buf.WriteString(str)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(web.OwnerHeader, testOwner)

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	defer func() { _ = resp.Body.Close() }()

	var out T

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	return out
}

func TestAPIHandlers_CreateAutomation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		requestBody    any
		expectedStatus int
		validateResult func(t *testing.T, body []byte)
	}{
		{
			name: "successful creation",
			requestBody: web.CreateAutomationRequest{
				Name:     "Invoice Chaser",
				Trigger:  "Invoice overdue",
				Action:   "Send reminder email",
				Category: "finance",
			},
			expectedStatus: http.StatusCreated,
			validateResult: func(t *testing.T, body []byte) {
				t.Helper()

				var automation models.Automation

				require.NoError(t, json.Unmarshal(body, &automation))
				assert.Equal(t, "Invoice Chaser", automation.Name)
				assert.Equal(t, testOwner, automation.OwnerID)
				assert.Equal(t, models.AutomationStatusActive, automation.Status)
				assert.Equal(t, 45, automation.TimeSavedMinutes)
				assert.NotEmpty(t, automation.ID)
			},
		},
		{
			name: "validation error - missing name",
			requestBody: web.CreateAutomationRequest{
				Trigger: "Invoice overdue",
				Action:  "Send reminder email",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "validation error - missing trigger",
			requestBody: web.CreateAutomationRequest{
				Name:   "Invoice Chaser",
				Action: "Send reminder email",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid-json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app := setupTestApp(t)

			resp := doRequest(t, app, http.MethodPost, "/automations/", tt.requestBody)

			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.validateResult != nil {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				tt.validateResult(t, body)
			}
		})
	}
}

func TestAPIHandlers_RejectedCreateLeavesNoTrace(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/automations/", web.CreateAutomationRequest{
		Name:    "Broken",
		Trigger: "Something",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_ = resp.Body.Close()

	automations := decodeBody[[]models.Automation](t, doRequest(t, app, http.MethodGet, "/automations/", nil))
	assert.Empty(t, automations)

	entries := decodeBody[[]models.ActivityEntry](t, doRequest(t, app, http.MethodGet, "/activity", nil))
	assert.Empty(t, entries)
}

func TestAPIHandlers_ToggleAutomation(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	created := decodeBody[models.Automation](t, doRequest(t, app, http.MethodPost, "/automations/", web.CreateAutomationRequest{
		Name:    "Report Builder",
		Trigger: "Every Monday",
		Action:  "Compile weekly report",
	}))

	resp := doRequest(t, app, http.MethodPut, "/automations/"+created.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	toggled := decodeBody[web.ToggleResponse](t, resp)
	assert.Equal(t, created.ID, toggled.ID)
	assert.Equal(t, models.AutomationStatusPaused, toggled.Status)

	resp = doRequest(t, app, http.MethodPut, "/automations/missing/toggle", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_ = resp.Body.Close()
}

func TestAPIHandlers_MarkAutomationError(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	created := decodeBody[models.Automation](t, doRequest(t, app, http.MethodPost, "/automations/", web.CreateAutomationRequest{
		Name:    "Lead Router",
		Trigger: "New lead arrives",
		Action:  "Assign to sales rep",
	}))

	resp := doRequest(t, app, http.MethodPut, "/automations/"+created.ID+"/error", web.MarkErrorRequest{
		Reason: "downstream timeout",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	marked := decodeBody[models.Automation](t, resp)
	assert.Equal(t, models.AutomationStatusError, marked.Status)

	// Toggling an errored automation reactivates it.
	reactivated := decodeBody[web.ToggleResponse](t, doRequest(t, app, http.MethodPut, "/automations/"+created.ID+"/toggle", nil))
	assert.Equal(t, models.AutomationStatusActive, reactivated.Status)
}

func TestAPIHandlers_DeleteAutomation(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	created := decodeBody[models.Automation](t, doRequest(t, app, http.MethodPost, "/automations/", web.CreateAutomationRequest{
		Name:    "Expense Filer",
		Trigger: "Receipt uploaded",
		Action:  "File expense report",
	}))

	resp := doRequest(t, app, http.MethodDelete, "/automations/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_ = resp.Body.Close()

	resp = doRequest(t, app, http.MethodDelete, "/automations/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_ = resp.Body.Close()
}

func TestAPIHandlers_GetTemplates(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	all := decodeBody[[]models.Template](t, doRequest(t, app, http.MethodGet, "/templates", nil))
	assert.Len(t, all, 12)

	finance := decodeBody[[]models.Template](t, doRequest(t, app, http.MethodGet, "/templates?category=finance", nil))

	for _, tmpl := range finance {
		assert.Equal(t, "finance", tmpl.Category)
	}

	assert.NotEmpty(t, finance)
}

func TestAPIHandlers_GetDashboardStats(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	first := decodeBody[models.Automation](t, doRequest(t, app, http.MethodPost, "/automations/", web.CreateAutomationRequest{
		Name:    "Invoice Chaser",
		Trigger: "Invoice overdue",
		Action:  "Send reminder email",
	}))
	_ = decodeBody[models.Automation](t, doRequest(t, app, http.MethodPost, "/automations/", web.CreateAutomationRequest{
		Name:    "Report Builder",
		Trigger: "Every Monday",
		Action:  "Compile weekly report",
	}))

	resp := doRequest(t, app, http.MethodPut, "/automations/"+first.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_ = resp.Body.Close()

	stats := decodeBody[models.DashboardStats](t, doRequest(t, app, http.MethodGet, "/dashboard/stats", nil))
	assert.Equal(t, 1, stats.ActiveAutomations)
	assert.Equal(t, 2, stats.TotalAutomations)
	assert.Equal(t, int64(30), stats.TasksRun)
	assert.InDelta(t, 0.3, stats.HoursSaved, 0.001)
	assert.InDelta(t, 45.0, stats.ProductivityValue, 0.001)
}

func TestAPIHandlers_GetActivity(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	created := decodeBody[models.Automation](t, doRequest(t, app, http.MethodPost, "/automations/", web.CreateAutomationRequest{
		Name:    "Ticket Triage",
		Trigger: "Support ticket created",
		Action:  "Categorize and route ticket",
	}))

	resp := doRequest(t, app, http.MethodPut, "/automations/"+created.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_ = resp.Body.Close()

	entries := decodeBody[[]models.ActivityEntry](t, doRequest(t, app, http.MethodGet, "/activity", nil))
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, models.ActionAutomationToggled, entries[0].Kind)
	assert.Equal(t, "Ticket Triage → paused", entries[0].Detail)
	assert.Equal(t, models.ActionAutomationCreated, entries[1].Kind)
	assert.Equal(t, "Created: Ticket Triage", entries[1].Detail)
}

func TestAPIHandlers_SuggestAutomation(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	resp := doRequest(t, app, http.MethodPost, "/ai/suggest", web.SuggestRequest{
		Message: "chase overdue invoices automatically",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeBody[models.Automation](t, resp)
	assert.Equal(t, models.AutomationStatusActive, created.Status)
	assert.Contains(t, created.Name, "chase overdue invoices")

	resp = doRequest(t, app, http.MethodPost, "/ai/suggest", web.SuggestRequest{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_ = resp.Body.Close()
}

func TestAPIHandlers_CompleteOnboarding(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	resp := doRequest(t, app, http.MethodPut, "/onboarding", web.OnboardingRequest{
		JobTitle: "Operations Manager",
		Industry: "Logistics",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	entry := decodeBody[models.ActivityEntry](t, resp)
	assert.Equal(t, models.ActionOnboardingComplete, entry.Kind)
	assert.Equal(t, "Onboarded as Operations Manager in Logistics", entry.Detail)
}

func TestAPIHandlers_OwnershipIsolation(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	created := decodeBody[models.Automation](t, doRequest(t, app, http.MethodPost, "/automations/", web.CreateAutomationRequest{
		Name:    "Private Flow",
		Trigger: "Form submitted",
		Action:  "Notify channel",
	}))

	req := httptest.NewRequest(http.MethodPut, "/automations/"+created.ID+"/toggle", nil)
	req.Header.Set(web.OwnerHeader, "user-2")

	resp, err := app.Test(req)
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	// Another owner's automation is indistinguishable from a missing one.
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIHandlers_HealthCheck(t *testing.T) {
	t.Parallel()

	app := setupTestApp(t)

	resp := doRequest(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_ = resp.Body.Close()
}
