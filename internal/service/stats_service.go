package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"facturo/internal/domain"
	"facturo/internal/port"
)

// StatsService reports invoicing dashboard figures.
type StatsService interface {
	Dashboard(ctx context.Context, tenantID uuid.UUID) (*domain.DashboardStats, error)
}

type statsService struct {
	invoices port.InvoiceRepository
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(invoices port.InvoiceRepository) StatsService {
	return &statsService{invoices: invoices}
}

func (s *statsService) Dashboard(ctx context.Context, tenantID uuid.UUID) (*domain.DashboardStats, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return s.invoices.GetStats(ctx, tenantID, monthStart)
}
