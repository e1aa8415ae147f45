package extractor

import (
	"context"
	"log/slog"

	"github.com/flowforge/flowforge/pkg/models"
)

// WithFallback wraps a primary extractor and answers with a heuristic draft
// whenever the primary fails, so a flaky remote service degrades instead of
// breaking the suggest path.
type WithFallback struct {
	primary  Extractor
	fallback Heuristic
	logger   *slog.Logger
}

// NewWithFallback wraps the primary extractor.
func NewWithFallback(primary Extractor, logger *slog.Logger) *WithFallback {
	return &WithFallback{primary: primary, logger: logger}
}

func (w *WithFallback) Extract(ctx context.Context, ownerID, message string) (models.Draft, error) {
	draft, err := w.primary.Extract(ctx, ownerID, message)
	if err != nil {
		w.logger.WarnContext(ctx, "intent extractor failed, falling back to heuristic draft", "error", err)

		return w.fallback.Extract(ctx, ownerID, message)
	}

	return draft, nil
}
