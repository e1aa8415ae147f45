package cmd

import (
	"log/slog"

	"github.com/flowforge/flowforge/pkg/extractor"
)

// NewExtractor builds the draft extractor for AI suggestions. With no
// endpoint configured the heuristic extractor runs alone; otherwise the HTTP
// extractor is used with the heuristic as fallback.
func NewExtractor(endpoint string, logger *slog.Logger) extractor.Extractor {
	if endpoint == "" {
		return extractor.Heuristic{}
	}

	return extractor.NewWithFallback(extractor.NewHTTP(endpoint, logger), logger)
}
