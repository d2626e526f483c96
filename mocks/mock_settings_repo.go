package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"facturo/internal/domain"
)

// MockSettingsRepo is a mock implementation of port.SettingsRepository.
type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) GetOrCreate(ctx context.Context, tenantID uuid.UUID) (*domain.InvoicingSettings, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoicingSettings), args.Error(1)
}

func (m *MockSettingsRepo) Update(ctx context.Context, settings *domain.InvoicingSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}
