// Package main provides the Flow-Forge API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/flowforge/flowforge/pkg/catalog"
	"github.com/flowforge/flowforge/pkg/counter"
	"github.com/flowforge/flowforge/pkg/eventbus"
	"github.com/flowforge/flowforge/pkg/extractor"
	"github.com/flowforge/flowforge/pkg/persistence"
	"github.com/flowforge/flowforge/pkg/services"
	"github.com/flowforge/flowforge/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	eventBus    eventbus.EventBus
	catalog     *catalog.Catalog
	taskCounter counter.TaskCounter
	extractor   extractor.Extractor
	statsConfig services.StatsConfig
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	eventBus eventbus.EventBus,
	cat *catalog.Catalog,
	taskCounter counter.TaskCounter,
	ex extractor.Extractor,
	statsConfig services.StatsConfig,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		eventBus:    eventBus,
		catalog:     cat,
		taskCounter: taskCounter,
		extractor:   ex,
		statsConfig: statsConfig,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	activityService := services.NewActivity(a.persistence)
	automationService := services.NewAutomation(a.persistence, activityService, a.eventBus, a.catalog, a.logger)
	statsService := services.NewStats(a.persistence, a.taskCounter, a.statsConfig)
	suggestService := services.NewSuggest(a.extractor, automationService, activityService, a.logger)

	handlers := web.NewAPIHandlers(
		automationService,
		activityService,
		statsService,
		suggestService,
		a.catalog,
		a.validate,
	)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Flow-Forge API")
	})

	app.Get("/templates", handlers.GetTemplates)

	au := app.Group("/automations")
	au.Get("/", handlers.GetAutomations)
	au.Post("/", handlers.CreateAutomation)
	au.Put("/:id/toggle", handlers.ToggleAutomation)
	au.Put("/:id/error", handlers.MarkAutomationError)
	au.Delete("/:id", handlers.DeleteAutomation)

	app.Get("/dashboard/stats", handlers.GetDashboardStats)
	app.Get("/activity", handlers.GetActivity)
	app.Post("/ai/suggest", handlers.SuggestAutomation)
	app.Put("/onboarding", handlers.CompleteOnboarding)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	err := app.Listen(":" + strconv.Itoa(port))

	return err
}
