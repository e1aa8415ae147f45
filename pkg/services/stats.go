package services

import (
	"context"
	"fmt"
	"math"

	"github.com/flowforge/flowforge/pkg/counter"
	"github.com/flowforge/flowforge/pkg/models"
	"github.com/flowforge/flowforge/pkg/persistence"
)

// DefaultHourlyRate values an hour of saved work in dollars when no rate is
// configured.
const DefaultHourlyRate = 150.0

// StatsConfig carries the conversion constants of the stats formula. The
// formula shape is fixed; only the constants are configuration.
type StatsConfig struct {
	HourlyRate float64
}

// Stats derives the dashboard snapshot from the automation collection and
// the external task-execution counter. Nothing is cached between requests.
type Stats struct {
	persistence persistence.Persistence
	tasks       counter.TaskCounter
	config      StatsConfig
}

// NewStats creates the stats service.
func NewStats(p persistence.Persistence, tasks counter.TaskCounter, config StatsConfig) *Stats {
	if config.HourlyRate <= 0 {
		config.HourlyRate = DefaultHourlyRate
	}

	return &Stats{persistence: p, tasks: tasks, config: config}
}

// Compute recalculates the owner's dashboard stats: saved minutes sum over
// all automations, hours_saved = minutes/60 rounded to one decimal, and
// productivity_value = hours_saved * hourly rate rounded to cents.
func (s *Stats) Compute(ctx context.Context, ownerID string) (*models.DashboardStats, error) {
	automations, err := s.persistence.AutomationRepository().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load automations for stats: %w", err)
	}

	tasksRun, err := s.tasks.TasksRun(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read task counter: %w", err)
	}

	var (
		active       int
		totalMinutes int
	)

	for _, automation := range automations {
		if automation.Status == models.AutomationStatusActive {
			active++
		}

		totalMinutes += automation.TimeSavedMinutes
	}

	hoursSaved := math.Round(float64(totalMinutes)/60.0*10) / 10
	productivityValue := math.Round(hoursSaved*s.config.HourlyRate*100) / 100

	return &models.DashboardStats{
		ActiveAutomations: active,
		TotalAutomations:  len(automations),
		TasksRun:          tasksRun,
		HoursSaved:        hoursSaved,
		ProductivityValue: productivityValue,
	}, nil
}
