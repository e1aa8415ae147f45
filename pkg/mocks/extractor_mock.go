package mocks

import (
	"context"

	"github.com/flowforge/flowforge/pkg/models"
	"github.com/stretchr/testify/mock"
)

// MockExtractor is a mock implementation of extractor.Extractor interface.
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, ownerID, message string) (models.Draft, error) {
	args := m.Called(ctx, ownerID, message)

	draft, _ := args.Get(0).(models.Draft)

	return draft, args.Error(1)
}
