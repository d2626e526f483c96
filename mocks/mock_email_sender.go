package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"facturo/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendInvoiceEmail(ctx context.Context, invoice *domain.Invoice, htmlBody string) error {
	args := m.Called(ctx, invoice, htmlBody)
	return args.Error(0)
}
