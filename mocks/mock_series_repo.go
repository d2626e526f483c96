package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"facturo/internal/domain"
)

// MockSeriesRepo is a mock implementation of port.SeriesRepository.
type MockSeriesRepo struct {
	mock.Mock
}

func (m *MockSeriesRepo) Create(ctx context.Context, series *domain.InvoiceSeries) error {
	args := m.Called(ctx, series)
	return args.Error(0)
}

func (m *MockSeriesRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.InvoiceSeries, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceSeries), args.Error(1)
}

func (m *MockSeriesRepo) List(ctx context.Context, tenantID uuid.UUID) ([]domain.InvoiceSeries, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceSeries), args.Error(1)
}

func (m *MockSeriesRepo) Update(ctx context.Context, series *domain.InvoiceSeries) error {
	args := m.Called(ctx, series)
	return args.Error(0)
}

func (m *MockSeriesRepo) AllocateNumber(ctx context.Context, tenantID, id uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID, id)
	return args.String(0), args.Error(1)
}

func (m *MockSeriesRepo) SetDefault(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockSeriesRepo) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}
