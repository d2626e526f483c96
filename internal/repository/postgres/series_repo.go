package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"facturo/internal/domain"
	"facturo/internal/port"
)

type seriesRepo struct {
	db *sqlx.DB
}

// NewSeriesRepo creates a new PostgreSQL-backed SeriesRepository.
func NewSeriesRepo(db *sqlx.DB) port.SeriesRepository {
	return &seriesRepo{db: db}
}

func (r *seriesRepo) Create(ctx context.Context, series *domain.InvoiceSeries) error {
	series.ID = uuid.New()
	now := time.Now().UTC()
	series.CreatedAt = now
	series.UpdatedAt = now
	if series.NextNumber == 0 {
		series.NextNumber = 1
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seriesRepo.Create begin: %w", err)
	}
	defer tx.Rollback()

	// A new default series displaces the previous one within the same
	// transaction so no reader ever observes two defaults.
	if series.IsDefault {
		_, err = tx.ExecContext(ctx,
			`UPDATE invoice_series SET is_default = FALSE, updated_at = $1
			 WHERE tenant_id = $2 AND is_default = TRUE AND deleted_at IS NULL`,
			now, series.TenantID)
		if err != nil {
			return fmt.Errorf("seriesRepo.Create clear default: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO invoice_series
			(id, tenant_id, prefix, name, description, next_number, number_digits,
			 is_active, is_default, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		series.ID, series.TenantID, series.Prefix, series.Name, series.Description,
		series.NextNumber, series.NumberDigits, series.IsActive, series.IsDefault,
		series.CreatedAt, series.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "prefix") {
			return domain.ErrDuplicatePrefix
		}
		return fmt.Errorf("seriesRepo.Create: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seriesRepo.Create commit: %w", err)
	}
	return nil
}

func (r *seriesRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.InvoiceSeries, error) {
	var series domain.InvoiceSeries
	err := r.db.GetContext(ctx, &series,
		`SELECT * FROM invoice_series
		 WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL`, id, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("seriesRepo.GetByID: %w", err)
	}
	return &series, nil
}

func (r *seriesRepo) List(ctx context.Context, tenantID uuid.UUID) ([]domain.InvoiceSeries, error) {
	var series []domain.InvoiceSeries
	err := r.db.SelectContext(ctx, &series,
		`SELECT s.*,
			(SELECT COUNT(*) FROM invoices i
			 WHERE i.series_id = s.id AND i.deleted_at IS NULL) AS invoice_count
		 FROM invoice_series s
		 WHERE s.tenant_id = $1 AND s.deleted_at IS NULL
		 ORDER BY s.prefix`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("seriesRepo.List: %w", err)
	}
	return series, nil
}

func (r *seriesRepo) Update(ctx context.Context, series *domain.InvoiceSeries) error {
	series.UpdatedAt = time.Now().UTC()

	// The counter and the default flag have dedicated operations; a settings
	// edit never touches them.
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoice_series
		 SET prefix = $1, name = $2, description = $3, number_digits = $4,
			 is_active = $5, updated_at = $6
		 WHERE id = $7 AND tenant_id = $8 AND deleted_at IS NULL`,
		series.Prefix, series.Name, series.Description, series.NumberDigits,
		series.IsActive, series.UpdatedAt, series.ID, series.TenantID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "prefix") {
			return domain.ErrDuplicatePrefix
		}
		return fmt.Errorf("seriesRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *seriesRepo) AllocateNumber(ctx context.Context, tenantID, id uuid.UUID) (string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("seriesRepo.AllocateNumber begin: %w", err)
	}
	defer tx.Rollback()

	number, err := allocateNumberTx(ctx, tx, tenantID, id)
	if err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("seriesRepo.AllocateNumber commit: %w", err)
	}
	return number, nil
}

// allocateNumberTx locks the series row, allocates the next number off the
// counter and persists the advanced counter. Callers own the transaction.
func allocateNumberTx(ctx context.Context, tx *sqlx.Tx, tenantID, seriesID uuid.UUID) (string, error) {
	var series domain.InvoiceSeries
	err := tx.GetContext(ctx, &series,
		`SELECT * FROM invoice_series
		 WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL
		 FOR UPDATE`, seriesID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("allocateNumber lock: %w", err)
	}

	number := series.Allocate()
	_, err = tx.ExecContext(ctx,
		`UPDATE invoice_series SET next_number = $1, updated_at = $2
		 WHERE id = $3`, series.NextNumber, time.Now().UTC(), series.ID)
	if err != nil {
		return "", fmt.Errorf("allocateNumber increment: %w", err)
	}

	return number, nil
}

func (r *seriesRepo) SetDefault(ctx context.Context, tenantID, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seriesRepo.SetDefault begin: %w", err)
	}
	defer tx.Rollback()

	// Locking the whole live set serializes concurrent SetDefault calls for
	// the tenant; SetDefaultAmong decides which flags flip.
	var all []domain.InvoiceSeries
	err = tx.SelectContext(ctx, &all,
		`SELECT * FROM invoice_series
		 WHERE tenant_id = $1 AND deleted_at IS NULL
		 ORDER BY id
		 FOR UPDATE`, tenantID)
	if err != nil {
		return fmt.Errorf("seriesRepo.SetDefault lock: %w", err)
	}

	changed, err := domain.SetDefaultAmong(all, id)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, series := range changed {
		_, err = tx.ExecContext(ctx,
			`UPDATE invoice_series SET is_default = $1, updated_at = $2 WHERE id = $3`,
			series.IsDefault, now, series.ID)
		if err != nil {
			return fmt.Errorf("seriesRepo.SetDefault update: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seriesRepo.SetDefault commit: %w", err)
	}
	return nil
}

func (r *seriesRepo) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seriesRepo.SoftDelete begin: %w", err)
	}
	defer tx.Rollback()

	var seriesID uuid.UUID
	err = tx.GetContext(ctx, &seriesID,
		`SELECT id FROM invoice_series
		 WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL
		 FOR UPDATE`, id, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("seriesRepo.SoftDelete lock: %w", err)
	}

	// Referential guard: any non-deleted invoice blocks deletion, whatever
	// its status.
	var count int
	err = tx.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM invoices
		 WHERE series_id = $1 AND deleted_at IS NULL`, seriesID)
	if err != nil {
		return fmt.Errorf("seriesRepo.SoftDelete count: %w", err)
	}
	if count > 0 {
		return domain.ErrSeriesInUse
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`UPDATE invoice_series SET deleted_at = $1, updated_at = $1 WHERE id = $2`,
		now, seriesID)
	if err != nil {
		return fmt.Errorf("seriesRepo.SoftDelete: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seriesRepo.SoftDelete commit: %w", err)
	}
	return nil
}
