package main

import (
	"context"
	"fmt"
	"os"

	"github.com/flowforge/flowforge/pkg/catalog"
	"github.com/flowforge/flowforge/pkg/cmd"
	"github.com/flowforge/flowforge/pkg/log"
	"github.com/flowforge/flowforge/pkg/services"
	cli "github.com/urfave/cli/v3"
)

const defaultPort = 9091

func main() {
	logger := log.WithModule("api")

	command := &cli.Command{
		Name:                  "flowforge-api",
		Usage:                 "Create and manage automations",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:     "database-url",
				Usage:    "Database connection URL for persistence",
				Required: true,
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus type (gochannel, kafka)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "redis-url",
				Usage:   "Redis connection URL for the tasks-run counter",
				Sources: cli.EnvVars("REDIS_URL"),
			},
			&cli.StringFlag{
				Name:    "templates-file",
				Usage:   "Path to a YAML file overriding the builtin template catalog",
				Sources: cli.EnvVars("TEMPLATES_FILE"),
			},
			&cli.FloatFlag{
				Name:    "hourly-rate",
				Usage:   "Hourly rate in dollars used for the productivity value",
				Value:   services.DefaultHourlyRate,
				Sources: cli.EnvVars("HOURLY_RATE"),
			},
			&cli.StringFlag{
				Name:    "extractor-url",
				Usage:   "Endpoint of the draft extractor used for AI suggestions",
				Sources: cli.EnvVars("EXTRACTOR_URL"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger.InfoContext(ctx, "Initializing Flow-Forge API")

			cat, err := loadCatalog(command.String("templates-file"))
			if err != nil {
				return err
			}

			persistence := cmd.NewPersistence(ctx, logger, command.String("database-url"))

			defer func() {
				if err := persistence.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
				}
			}()

			eventBus := cmd.NewEventBus(command.String("event-bus"), logger)
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			taskCounter := cmd.NewTaskCounter(command.String("redis-url"))
			draftExtractor := cmd.NewExtractor(command.String("extractor-url"), logger)

			api := NewAPI(
				logger,
				persistence,
				eventBus,
				cat,
				taskCounter,
				draftExtractor,
				services.StatsConfig{HourlyRate: command.Float("hourly-rate")},
			)

			err = api.Start(command.Int("port"))
			if err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)
			}

			return nil
		},
	}

	err := command.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.New(), nil
	}

	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load template catalog: %w", err)
	}

	return cat, nil
}
