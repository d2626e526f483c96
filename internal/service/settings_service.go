package service

import (
	"context"

	"github.com/google/uuid"

	"facturo/internal/domain"
	"facturo/internal/port"
)

// UpdateSettingsInput carries the settings fields to change. Nil fields are
// left untouched.
type UpdateSettingsInput struct {
	CompanyName    *string `json:"company_name"`
	CompanyTaxID   *string `json:"company_tax_id"`
	CompanyAddress *string `json:"company_address"`
	CompanyPhone   *string `json:"company_phone"`
	CompanyEmail   *string `json:"company_email"`

	DefaultSeriesPrefix *string `json:"default_series_prefix"`
	AutoGenerateInvoice *bool   `json:"auto_generate_invoice"`
	RequireCustomer     *bool   `json:"require_customer"`
	InvoiceFooter       *string `json:"invoice_footer"`
}

// SettingsService manages the per-tenant invoicing configuration.
type SettingsService interface {
	Get(ctx context.Context, tenantID uuid.UUID) (*domain.InvoicingSettings, error)
	Update(ctx context.Context, tenantID uuid.UUID, input UpdateSettingsInput) (*domain.InvoicingSettings, error)
	Reset(ctx context.Context, tenantID uuid.UUID) (*domain.InvoicingSettings, error)
}

type settingsService struct {
	repo port.SettingsRepository
}

// NewSettingsService creates a new SettingsService implementation.
func NewSettingsService(repo port.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Get(ctx context.Context, tenantID uuid.UUID) (*domain.InvoicingSettings, error) {
	return s.repo.GetOrCreate(ctx, tenantID)
}

func (s *settingsService) Update(ctx context.Context, tenantID uuid.UUID, input UpdateSettingsInput) (*domain.InvoicingSettings, error) {
	settings, err := s.repo.GetOrCreate(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if input.CompanyName != nil {
		settings.CompanyName = *input.CompanyName
	}
	if input.CompanyTaxID != nil {
		settings.CompanyTaxID = *input.CompanyTaxID
	}
	if input.CompanyAddress != nil {
		settings.CompanyAddress = *input.CompanyAddress
	}
	if input.CompanyPhone != nil {
		settings.CompanyPhone = *input.CompanyPhone
	}
	if input.CompanyEmail != nil {
		settings.CompanyEmail = *input.CompanyEmail
	}
	if input.DefaultSeriesPrefix != nil {
		settings.DefaultSeriesPrefix = *input.DefaultSeriesPrefix
	}
	if input.AutoGenerateInvoice != nil {
		settings.AutoGenerateInvoice = *input.AutoGenerateInvoice
	}
	if input.RequireCustomer != nil {
		settings.RequireCustomer = *input.RequireCustomer
	}
	if input.InvoiceFooter != nil {
		settings.InvoiceFooter = *input.InvoiceFooter
	}

	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) Reset(ctx context.Context, tenantID uuid.UUID) (*domain.InvoicingSettings, error) {
	settings, err := s.repo.GetOrCreate(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	settings.ApplyDefaults()
	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
