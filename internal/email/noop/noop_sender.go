package noop

import (
	"context"
	"log"

	"facturo/internal/domain"
	"facturo/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs deliveries to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendInvoiceEmail(_ context.Context, invoice *domain.Invoice, _ string) error {
	log.Printf("[NOOP EMAIL] Invoice %s (%s) to %s", invoice.Number, invoice.Total.StringFixed(2), invoice.CustomerEmail)
	return nil
}
