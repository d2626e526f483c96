package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"facturo/internal/domain"
	"facturo/internal/port"
)

type settingsRepo struct {
	db *sqlx.DB
}

// NewSettingsRepo creates a new PostgreSQL-backed SettingsRepository.
func NewSettingsRepo(db *sqlx.DB) port.SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) GetOrCreate(ctx context.Context, tenantID uuid.UUID) (*domain.InvoicingSettings, error) {
	settings, err := r.get(ctx, tenantID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	fresh := &domain.InvoicingSettings{
		ID:       uuid.New(),
		TenantID: tenantID,
	}
	fresh.ApplyDefaults()
	now := time.Now().UTC()
	fresh.CreatedAt = now
	fresh.UpdatedAt = now

	// ON CONFLICT DO NOTHING keeps concurrent first accesses from racing;
	// the loser re-reads the winner's row.
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO invoicing_settings
			(id, tenant_id, company_name, company_tax_id, company_address,
			 company_phone, company_email, default_series_prefix,
			 auto_generate_invoice, require_customer, invoice_footer,
			 created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 ON CONFLICT (tenant_id) DO NOTHING`,
		fresh.ID, fresh.TenantID, fresh.CompanyName, fresh.CompanyTaxID,
		fresh.CompanyAddress, fresh.CompanyPhone, fresh.CompanyEmail,
		fresh.DefaultSeriesPrefix, fresh.AutoGenerateInvoice, fresh.RequireCustomer,
		fresh.InvoiceFooter, fresh.CreatedAt, fresh.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("settingsRepo.GetOrCreate insert: %w", err)
	}

	return r.get(ctx, tenantID)
}

func (r *settingsRepo) get(ctx context.Context, tenantID uuid.UUID) (*domain.InvoicingSettings, error) {
	var settings domain.InvoicingSettings
	err := r.db.GetContext(ctx, &settings,
		`SELECT * FROM invoicing_settings WHERE tenant_id = $1`, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("settingsRepo.get: %w", err)
	}
	return &settings, nil
}

func (r *settingsRepo) Update(ctx context.Context, settings *domain.InvoicingSettings) error {
	settings.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoicing_settings
		 SET company_name = $1, company_tax_id = $2, company_address = $3,
			 company_phone = $4, company_email = $5, default_series_prefix = $6,
			 auto_generate_invoice = $7, require_customer = $8, invoice_footer = $9,
			 updated_at = $10
		 WHERE tenant_id = $11`,
		settings.CompanyName, settings.CompanyTaxID, settings.CompanyAddress,
		settings.CompanyPhone, settings.CompanyEmail, settings.DefaultSeriesPrefix,
		settings.AutoGenerateInvoice, settings.RequireCustomer, settings.InvoiceFooter,
		settings.UpdatedAt, settings.TenantID)
	if err != nil {
		return fmt.Errorf("settingsRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
