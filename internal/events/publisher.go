// Package events emits invoice lifecycle events for external subscribers.
// Delivery is fire-and-forget; the core never blocks on or fails from a
// subscriber.
package events

import (
	"context"
	"log"

	"facturo/internal/domain"
)

// Publisher receives invoice lifecycle notifications.
type Publisher interface {
	InvoiceCreated(ctx context.Context, invoice *domain.Invoice)
	InvoiceIssued(ctx context.Context, invoice *domain.Invoice)
	InvoiceCancelled(ctx context.Context, invoice *domain.Invoice)
}

// LogPublisher writes events to the process log. It is the default publisher
// when no external bus is wired.
type LogPublisher struct{}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (p *LogPublisher) InvoiceCreated(_ context.Context, invoice *domain.Invoice) {
	log.Printf("event invoice.created id=%s tenant=%s", invoice.ID, invoice.TenantID)
}

func (p *LogPublisher) InvoiceIssued(_ context.Context, invoice *domain.Invoice) {
	log.Printf("event invoice.issued id=%s tenant=%s number=%s", invoice.ID, invoice.TenantID, invoice.Number)
}

func (p *LogPublisher) InvoiceCancelled(_ context.Context, invoice *domain.Invoice) {
	log.Printf("event invoice.cancelled id=%s tenant=%s number=%s", invoice.ID, invoice.TenantID, invoice.Number)
}
