package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"facturo/internal/domain"
)

// MockPublisher is a mock implementation of events.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) InvoiceCreated(ctx context.Context, invoice *domain.Invoice) {
	m.Called(ctx, invoice)
}

func (m *MockPublisher) InvoiceIssued(ctx context.Context, invoice *domain.Invoice) {
	m.Called(ctx, invoice)
}

func (m *MockPublisher) InvoiceCancelled(ctx context.Context, invoice *domain.Invoice) {
	m.Called(ctx, invoice)
}
