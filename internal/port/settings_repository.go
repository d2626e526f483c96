package port

import (
	"context"

	"github.com/google/uuid"

	"facturo/internal/domain"
)

// SettingsRepository persists the per-tenant invoicing configuration.
type SettingsRepository interface {
	// GetOrCreate returns the tenant's settings row, creating it with
	// defaults on first access.
	GetOrCreate(ctx context.Context, tenantID uuid.UUID) (*domain.InvoicingSettings, error)
	Update(ctx context.Context, settings *domain.InvoicingSettings) error
}
