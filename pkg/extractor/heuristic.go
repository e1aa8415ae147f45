package extractor

import (
	"context"

	"github.com/flowforge/flowforge/pkg/models"
)

const nameSnippetLength = 50

// Heuristic builds a basic draft straight from the user's message. It never
// fails and serves as the fallback when the remote extractor misbehaves;
// the user customizes trigger and action afterwards.
type Heuristic struct{}

func (Heuristic) Extract(_ context.Context, _ string, message string) (models.Draft, error) {
	snippet := message
	if runes := []rune(snippet); len(runes) > nameSnippetLength {
		// Cut on runes, not bytes; the message may be multi-byte text.
		snippet = string(runes[:nameSnippetLength])
	}

	return models.Draft{
		Name:        "Automation from: " + snippet,
		Description: message,
		Trigger:     "Custom trigger",
		Action:      "Custom action",
		Category:    "custom",
	}, nil
}
