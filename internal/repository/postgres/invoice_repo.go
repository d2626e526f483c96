package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"facturo/internal/domain"
	"facturo/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

// sortColumns whitelists the sortable invoice columns.
var sortColumns = map[string]string{
	"number":   "number",
	"date":     "issue_date",
	"customer": "customer_name",
	"total":    "total",
	"created":  "created_at",
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *domain.Invoice, lines []domain.InvoiceLine) error {
	invoice.ID = uuid.New()
	now := time.Now().UTC()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO invoices
			(id, tenant_id, series_id, number, invoice_type, status,
			 issue_date, due_date,
			 customer_name, customer_tax_id, customer_address, customer_email, customer_phone,
			 customer_id, sale_id, employee_id, rectified_invoice_id,
			 subtotal, tax_rate, tax_amount, total,
			 payment_method, paid_amount, paid_at, notes,
			 created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
				 $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)`,
		invoice.ID, invoice.TenantID, invoice.SeriesID, invoice.Number,
		invoice.InvoiceType, invoice.Status,
		invoice.IssueDate, invoice.DueDate,
		invoice.CustomerName, invoice.CustomerTaxID, invoice.CustomerAddress,
		invoice.CustomerEmail, invoice.CustomerPhone,
		invoice.CustomerID, invoice.SaleID, invoice.EmployeeID, invoice.RectifiedInvoiceID,
		invoice.Subtotal, invoice.TaxRate, invoice.TaxAmount, invoice.Total,
		invoice.PaymentMethod, invoice.PaidAmount, invoice.PaidAt, invoice.Notes,
		invoice.CreatedAt, invoice.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create header: %w", err)
	}

	for i := range lines {
		line := &lines[i]
		line.ID = uuid.New()
		line.TenantID = invoice.TenantID
		line.InvoiceID = invoice.ID
		line.CreatedAt = now
		line.UpdatedAt = now
		if err := insertLineTx(ctx, tx, line); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.Create commit: %w", err)
	}
	return nil
}

func insertLineTx(ctx context.Context, tx *sqlx.Tx, line *domain.InvoiceLine) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO invoice_lines
			(id, tenant_id, invoice_id, product_id, product_sku, description,
			 quantity, unit_price, discount_percent, tax_rate, total, sort_order,
			 created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		line.ID, line.TenantID, line.InvoiceID, line.ProductID, line.ProductSKU,
		line.Description, line.Quantity, line.UnitPrice, line.DiscountPercent,
		line.TaxRate, line.Total, line.SortOrder, line.CreatedAt, line.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo insert line: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.GetContext(ctx, &invoice,
		`SELECT * FROM invoices
		 WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL`, id, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &invoice, nil
}

func (r *invoiceRepo) ListLines(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]domain.InvoiceLine, error) {
	var lines []domain.InvoiceLine
	err := r.db.SelectContext(ctx, &lines,
		`SELECT * FROM invoice_lines
		 WHERE invoice_id = $1 AND tenant_id = $2 AND deleted_at IS NULL
		 ORDER BY sort_order, created_at`, invoiceID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListLines: %w", err)
	}
	return lines, nil
}

func (r *invoiceRepo) List(ctx context.Context, tenantID uuid.UUID, filter port.InvoiceFilter) ([]domain.Invoice, int, error) {
	where := "WHERE tenant_id = $1 AND deleted_at IS NULL"
	args := []interface{}{tenantID}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (number ILIKE $%d OR customer_name ILIKE $%d OR customer_tax_id ILIKE $%d)", n, n, n)
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if len(filter.Statuses) > 0 {
		placeholders := ""
		for i, s := range filter.Statuses {
			args = append(args, s)
			if i > 0 {
				placeholders += ", "
			}
			placeholders += fmt.Sprintf("$%d", len(args))
		}
		where += fmt.Sprintf(" AND status IN (%s)", placeholders)
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(" AND invoice_type = $%d", len(args))
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	orderBy, ok := sortColumns[filter.SortBy]
	if !ok {
		orderBy = "created_at"
	}
	dir := "DESC"
	if filter.SortDir == "asc" {
		dir = "ASC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	args = append(args, limit, filter.Offset)
	query := fmt.Sprintf("SELECT * FROM invoices %s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		where, orderBy, dir, len(args)-1, len(args))

	var invoices []domain.Invoice
	if err := r.db.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invoices, total, nil
}

// lockInvoiceTx fetches an invoice row for update within tx.
func lockInvoiceTx(ctx context.Context, tx *sqlx.Tx, tenantID, id uuid.UUID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := tx.GetContext(ctx, &invoice,
		`SELECT * FROM invoices
		 WHERE id = $1 AND tenant_id = $2 AND deleted_at IS NULL
		 FOR UPDATE`, id, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("invoiceRepo lock: %w", err)
	}
	return &invoice, nil
}

func (r *invoiceRepo) Issue(ctx context.Context, tenantID, id uuid.UUID, issueDate time.Time) (*domain.Invoice, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.Issue begin: %w", err)
	}
	defer tx.Rollback()

	invoice, err := lockInvoiceTx(ctx, tx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceStatusDraft {
		return nil, domain.ErrInvoiceNotDraft
	}

	// Counter increment and status flip share the transaction: a failed
	// issue rolls the allocation back, so no number is ever burned.
	number, err := allocateNumberTx(ctx, tx, tenantID, invoice.SeriesID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`UPDATE invoices SET number = $1, status = $2, issue_date = $3, updated_at = $4
		 WHERE id = $5`,
		number, domain.InvoiceStatusIssued, issueDate, now, invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.Issue update: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("invoiceRepo.Issue commit: %w", err)
	}

	invoice.Number = number
	invoice.Status = domain.InvoiceStatusIssued
	invoice.IssueDate = issueDate
	invoice.UpdatedAt = now
	return invoice, nil
}

func (r *invoiceRepo) Cancel(ctx context.Context, tenantID, id uuid.UUID) (*domain.Invoice, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.Cancel begin: %w", err)
	}
	defer tx.Rollback()

	invoice, err := lockInvoiceTx(ctx, tx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if !invoice.Status.Cancellable() {
		return nil, domain.ErrInvoiceNotCancellable
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`UPDATE invoices SET status = $1, updated_at = $2 WHERE id = $3`,
		domain.InvoiceStatusCancelled, now, invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.Cancel update: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("invoiceRepo.Cancel commit: %w", err)
	}

	invoice.Status = domain.InvoiceStatusCancelled
	invoice.UpdatedAt = now
	return invoice, nil
}

func (r *invoiceRepo) MarkPaid(ctx context.Context, tenantID, id uuid.UUID, method string, amount decimal.Decimal, paidAt time.Time) (*domain.Invoice, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.MarkPaid begin: %w", err)
	}
	defer tx.Rollback()

	invoice, err := lockInvoiceTx(ctx, tx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceStatusIssued {
		return nil, domain.ErrInvoiceNotPayable
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`UPDATE invoices
		 SET status = $1, payment_method = $2, paid_amount = $3, paid_at = $4, updated_at = $5
		 WHERE id = $6`,
		domain.InvoiceStatusPaid, method, amount, paidAt, now, invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.MarkPaid update: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("invoiceRepo.MarkPaid commit: %w", err)
	}

	invoice.Status = domain.InvoiceStatusPaid
	invoice.PaymentMethod = method
	invoice.PaidAmount = amount
	invoice.PaidAt = &paidAt
	invoice.UpdatedAt = now
	return invoice, nil
}

func (r *invoiceRepo) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.SoftDelete begin: %w", err)
	}
	defer tx.Rollback()

	invoice, err := lockInvoiceTx(ctx, tx, tenantID, id)
	if err != nil {
		return err
	}
	if invoice.Status != domain.InvoiceStatusDraft {
		return domain.ErrInvoiceNotDeletable
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`UPDATE invoices SET deleted_at = $1, updated_at = $1 WHERE id = $2`, now, invoice.ID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.SoftDelete header: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE invoice_lines SET deleted_at = $1, updated_at = $1
		 WHERE invoice_id = $2 AND deleted_at IS NULL`, now, invoice.ID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.SoftDelete lines: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.SoftDelete commit: %w", err)
	}
	return nil
}

func (r *invoiceRepo) AddLine(ctx context.Context, tenantID uuid.UUID, line *domain.InvoiceLine) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.AddLine begin: %w", err)
	}
	defer tx.Rollback()

	invoice, err := lockInvoiceTx(ctx, tx, tenantID, line.InvoiceID)
	if err != nil {
		return err
	}
	if invoice.Status != domain.InvoiceStatusDraft {
		return domain.ErrInvoiceNotDraft
	}

	now := time.Now().UTC()
	line.ID = uuid.New()
	line.TenantID = tenantID
	line.CreatedAt = now
	line.UpdatedAt = now
	line.Total = domain.CalculateLineTotal(line.Quantity, line.UnitPrice, line.DiscountPercent)
	if err := insertLineTx(ctx, tx, line); err != nil {
		return err
	}

	if _, err := recalculateTotalsTx(ctx, tx, invoice); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.AddLine commit: %w", err)
	}
	return nil
}

func (r *invoiceRepo) UpdateLine(ctx context.Context, tenantID uuid.UUID, line *domain.InvoiceLine) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateLine begin: %w", err)
	}
	defer tx.Rollback()

	invoice, err := lockInvoiceTx(ctx, tx, tenantID, line.InvoiceID)
	if err != nil {
		return err
	}
	if invoice.Status != domain.InvoiceStatusDraft {
		return domain.ErrInvoiceNotDraft
	}

	line.UpdatedAt = time.Now().UTC()
	line.Total = domain.CalculateLineTotal(line.Quantity, line.UnitPrice, line.DiscountPercent)
	result, err := tx.ExecContext(ctx,
		`UPDATE invoice_lines
		 SET product_id = $1, product_sku = $2, description = $3, quantity = $4,
			 unit_price = $5, discount_percent = $6, tax_rate = $7, total = $8,
			 sort_order = $9, updated_at = $10
		 WHERE id = $11 AND invoice_id = $12 AND tenant_id = $13 AND deleted_at IS NULL`,
		line.ProductID, line.ProductSKU, line.Description, line.Quantity,
		line.UnitPrice, line.DiscountPercent, line.TaxRate, line.Total,
		line.SortOrder, line.UpdatedAt, line.ID, line.InvoiceID, tenantID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateLine: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}

	if _, err := recalculateTotalsTx(ctx, tx, invoice); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.UpdateLine commit: %w", err)
	}
	return nil
}

func (r *invoiceRepo) DeleteLine(ctx context.Context, tenantID, invoiceID, lineID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.DeleteLine begin: %w", err)
	}
	defer tx.Rollback()

	invoice, err := lockInvoiceTx(ctx, tx, tenantID, invoiceID)
	if err != nil {
		return err
	}
	if invoice.Status != domain.InvoiceStatusDraft {
		return domain.ErrInvoiceNotDraft
	}

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx,
		`UPDATE invoice_lines SET deleted_at = $1, updated_at = $1
		 WHERE id = $2 AND invoice_id = $3 AND tenant_id = $4 AND deleted_at IS NULL`,
		now, lineID, invoiceID, tenantID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.DeleteLine: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}

	if _, err := recalculateTotalsTx(ctx, tx, invoice); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.DeleteLine commit: %w", err)
	}
	return nil
}

func (r *invoiceRepo) RecalculateTotals(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.InvoiceTotals, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.RecalculateTotals begin: %w", err)
	}
	defer tx.Rollback()

	invoice, err := lockInvoiceTx(ctx, tx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	totals, err := recalculateTotalsTx(ctx, tx, invoice)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("invoiceRepo.RecalculateTotals commit: %w", err)
	}
	return totals, nil
}

// recalculateTotalsTx derives the header totals from the current non-deleted
// line set and persists them, all within the caller's transaction.
func recalculateTotalsTx(ctx context.Context, tx *sqlx.Tx, invoice *domain.Invoice) (*domain.InvoiceTotals, error) {
	var lines []domain.InvoiceLine
	err := tx.SelectContext(ctx, &lines,
		`SELECT * FROM invoice_lines
		 WHERE invoice_id = $1 AND deleted_at IS NULL
		 ORDER BY sort_order, created_at`, invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("recalculateTotals lines: %w", err)
	}

	totals := domain.CalculateTotals(lines, invoice.TaxRate)
	_, err = tx.ExecContext(ctx,
		`UPDATE invoices SET subtotal = $1, tax_amount = $2, total = $3, updated_at = $4
		 WHERE id = $5`,
		totals.Subtotal, totals.TaxAmount, totals.Total, time.Now().UTC(), invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("recalculateTotals update: %w", err)
	}
	return &totals, nil
}

const dashboardStatsQuery = `SELECT
	COALESCE(SUM(total) FILTER (WHERE status IN ('issued', 'paid') AND issue_date >= $2), 0) AS monthly_total,
	COUNT(*) FILTER (WHERE status IN ('issued', 'paid') AND issue_date >= $2) AS monthly_count,
	COALESCE(SUM(total) FILTER (WHERE status = 'paid' AND issue_date >= $2), 0) AS monthly_paid,
	COUNT(*) FILTER (WHERE status = 'draft') AS draft_count,
	COUNT(*) FILTER (WHERE status = 'issued') AS issued_count,
	COUNT(*) FILTER (WHERE status = 'paid') AS paid_count
FROM invoices WHERE tenant_id = $1 AND deleted_at IS NULL`

func (r *invoiceRepo) GetStats(ctx context.Context, tenantID uuid.UUID, monthStart time.Time) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := r.db.GetContext(ctx, &stats, dashboardStatsQuery, tenantID, monthStart); err != nil {
		return nil, fmt.Errorf("invoiceRepo.GetStats: %w", err)
	}

	var recent []domain.Invoice
	err := r.db.SelectContext(ctx, &recent,
		`SELECT * FROM invoices
		 WHERE tenant_id = $1 AND deleted_at IS NULL
		 ORDER BY created_at DESC LIMIT 10`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.GetStats recent: %w", err)
	}
	stats.RecentInvoices = recent

	return &stats, nil
}
