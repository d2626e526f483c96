package port

import (
	"context"

	"facturo/internal/domain"
)

// EmailSender delivers invoice emails to customers.
type EmailSender interface {
	SendInvoiceEmail(ctx context.Context, invoice *domain.Invoice, htmlBody string) error
}
