package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/flowforge/flowforge/pkg/extractor"
	"github.com/flowforge/flowforge/pkg/models"
)

// Suggest turns free-text requests into automations: the external intent
// extractor proposes a draft, which then goes through exactly the same
// validation and create path as every other producer.
type Suggest struct {
	extractor  extractor.Extractor
	automation *Automation
	activity   *Activity
	logger     *slog.Logger
}

// NewSuggest creates the suggest service.
func NewSuggest(ex extractor.Extractor, automation *Automation, activity *Activity, logger *slog.Logger) *Suggest {
	return &Suggest{
		extractor:  ex,
		automation: automation,
		activity:   activity,
		logger:     logger,
	}
}

// SuggestAndCreate extracts a draft from the message and persists it. An
// extractor failure surfaces as-is without retry; a usable draft with
// missing fields surfaces the same invalid-draft error as any other create.
func (s *Suggest) SuggestAndCreate(ctx context.Context, ownerID, message string) (*models.Automation, error) {
	if ownerID == "" {
		return nil, ErrEmptyOwnerID
	}

	draft, err := s.extractor.Extract(ctx, ownerID, message)
	if err != nil {
		return nil, fmt.Errorf("failed to extract automation intent: %w", err)
	}

	_, err = s.activity.Record(ctx, ownerID, models.ActionAISuggestion, "AI suggested: "+draft.Name)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to record AI suggestion", "owner_id", ownerID, "error", err)
	}

	return s.automation.Create(ctx, ownerID, draft)
}
