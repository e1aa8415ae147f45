package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/flowforge/flowforge/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

const (
	defaultTimeout  = 30 * time.Second
	maxResponseSize = 1024 * 1024 // 1MB max response body
)

// draftSchema is the shape the remote extractor must return. Responses that
// do not satisfy it are treated as extraction failures.
var draftSchema = map[string]any{
	"type":     "object",
	"required": []any{"name", "trigger", "action"},
	"properties": map[string]any{
		"name":        map[string]any{"type": "string", "minLength": 1},
		"description": map[string]any{"type": "string"},
		"trigger":     map[string]any{"type": "string", "minLength": 1},
		"action":      map[string]any{"type": "string", "minLength": 1},
		"category":    map[string]any{"type": "string"},
	},
}

// HTTP calls a remote intent-extraction service. The service receives the
// owner id and message and answers with a draft JSON object.
type HTTP struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewHTTP creates an HTTP extractor for the given endpoint.
func NewHTTP(endpoint string, logger *slog.Logger) *HTTP {
	return &HTTP{
		endpoint: endpoint,
		client:   &http.Client{Timeout: defaultTimeout},
		logger:   logger,
	}
}

type extractRequest struct {
	OwnerID string `json:"owner_id"`
	Message string `json:"message"`
}

// Extract sends the message to the remote service and validates the
// response against the draft schema before handing it to the caller.
func (e *HTTP) Extract(ctx context.Context, ownerID, message string) (models.Draft, error) {
	body, err := json.Marshal(extractRequest{OwnerID: ownerID, Message: message})
	if err != nil {
		return models.Draft{}, fmt.Errorf("%w: %w", ErrExtractorFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return models.Draft{}, fmt.Errorf("%w: %w", ErrExtractorFailure, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return models.Draft{}, fmt.Errorf("%w: %w", ErrExtractorFailure, err)
	}

	defer func() {
		err := resp.Body.Close()
		if err != nil {
			e.logger.WarnContext(ctx, "failed to close extractor response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return models.Draft{}, fmt.Errorf("%w: unexpected status %d", ErrExtractorFailure, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return models.Draft{}, fmt.Errorf("%w: %w", ErrExtractorFailure, err)
	}

	return parseDraft(data)
}

// parseDraft decodes and schema-validates an extractor payload.
func parseDraft(data []byte) (models.Draft, error) {
	var payload map[string]any

	err := json.Unmarshal(data, &payload)
	if err != nil {
		return models.Draft{}, fmt.Errorf("%w: invalid JSON: %w", ErrExtractorFailure, err)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(draftSchema), gojsonschema.NewGoLoader(payload))
	if err != nil {
		return models.Draft{}, fmt.Errorf("%w: %w", ErrExtractorFailure, err)
	}

	if !result.Valid() {
		descriptions := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			descriptions = append(descriptions, desc.String())
		}

		return models.Draft{}, fmt.Errorf("%w: schema validation: %s", ErrExtractorFailure, strings.Join(descriptions, "; "))
	}

	var draft models.Draft

	err = json.Unmarshal(data, &draft)
	if err != nil {
		return models.Draft{}, fmt.Errorf("%w: %w", ErrExtractorFailure, err)
	}

	if draft.Category == "" {
		draft.Category = "custom"
	}

	return draft, nil
}
