// Package extractor abstracts the natural-language intent extractor that
// turns free text into a candidate automation draft. The core never parses
// text itself; it only validates and persists extractor output.
package extractor

import (
	"context"
	"errors"

	"github.com/flowforge/flowforge/pkg/models"
)

// ErrExtractorFailure indicates the extractor could not produce a usable
// draft. The core surfaces it as-is and does not retry.
var ErrExtractorFailure = errors.New("intent extractor failed")

// Extractor produces a draft from a user's free-text description.
type Extractor interface {
	Extract(ctx context.Context, ownerID, message string) (models.Draft, error)
}

// IsExtractorFailure checks if an error came from a failed extraction.
func IsExtractorFailure(err error) bool {
	return errors.Is(err, ErrExtractorFailure)
}
