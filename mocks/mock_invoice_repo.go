package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"facturo/internal/domain"
	"facturo/internal/port"
)

// MockInvoiceRepo is a mock implementation of port.InvoiceRepository.
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, invoice *domain.Invoice, lines []domain.InvoiceLine) error {
	args := m.Called(ctx, invoice, lines)
	return args.Error(0)
}

func (m *MockInvoiceRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) ListLines(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]domain.InvoiceLine, error) {
	args := m.Called(ctx, tenantID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceLine), args.Error(1)
}

func (m *MockInvoiceRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.InvoiceFilter) ([]domain.Invoice, int, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceRepo) Issue(ctx context.Context, tenantID, id uuid.UUID, issueDate time.Time) (*domain.Invoice, error) {
	args := m.Called(ctx, tenantID, id, issueDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) Cancel(ctx context.Context, tenantID, id uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) MarkPaid(ctx context.Context, tenantID, id uuid.UUID, method string, amount decimal.Decimal, paidAt time.Time) (*domain.Invoice, error) {
	args := m.Called(ctx, tenantID, id, method, amount, paidAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepo) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockInvoiceRepo) AddLine(ctx context.Context, tenantID uuid.UUID, line *domain.InvoiceLine) error {
	args := m.Called(ctx, tenantID, line)
	return args.Error(0)
}

func (m *MockInvoiceRepo) UpdateLine(ctx context.Context, tenantID uuid.UUID, line *domain.InvoiceLine) error {
	args := m.Called(ctx, tenantID, line)
	return args.Error(0)
}

func (m *MockInvoiceRepo) DeleteLine(ctx context.Context, tenantID, invoiceID, lineID uuid.UUID) error {
	args := m.Called(ctx, tenantID, invoiceID, lineID)
	return args.Error(0)
}

func (m *MockInvoiceRepo) RecalculateTotals(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.InvoiceTotals, error) {
	args := m.Called(ctx, tenantID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceTotals), args.Error(1)
}

func (m *MockInvoiceRepo) GetStats(ctx context.Context, tenantID uuid.UUID, monthStart time.Time) (*domain.DashboardStats, error) {
	args := m.Called(ctx, tenantID, monthStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}
