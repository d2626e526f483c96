package port

import (
	"context"

	"github.com/google/uuid"

	"facturo/internal/domain"
)

// SeriesRepository persists numbering series.
//
// AllocateNumber and SetDefault are transactional: allocation serializes
// concurrent increments on the same series row, and SetDefault clears sibling
// defaults and sets the target as one atomic unit.
type SeriesRepository interface {
	Create(ctx context.Context, series *domain.InvoiceSeries) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.InvoiceSeries, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]domain.InvoiceSeries, error)
	Update(ctx context.Context, series *domain.InvoiceSeries) error

	// AllocateNumber atomically reads and increments the series counter and
	// returns the formatted invoice number. The counter mutation is not
	// reversible; never call it for preview purposes.
	AllocateNumber(ctx context.Context, tenantID, id uuid.UUID) (string, error)

	// SetDefault marks the series as the tenant default, clearing the flag on
	// every sibling in the same transaction.
	SetDefault(ctx context.Context, tenantID, id uuid.UUID) error

	// SoftDelete removes the series unless any non-deleted invoice still
	// references it, in which case it returns domain.ErrSeriesInUse.
	SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error
}
