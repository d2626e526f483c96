package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"facturo/internal/domain"
)

// InvoiceFilter narrows invoice listings.
type InvoiceFilter struct {
	Search   string
	Status   domain.InvoiceStatus
	Type     domain.InvoiceType
	Statuses []domain.InvoiceStatus
	SortBy   string
	SortDir  string
	Offset   int
	Limit    int
}

// InvoiceRepository persists invoice documents and their lines.
//
// Create persists the header, its lines and the computed totals in one
// transaction. Issue allocates the series number and flips the status inside
// a single transaction so a failed issue never burns a number. Every line
// mutation recomputes and persists the header totals in the same transaction
// as the line write.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice, lines []domain.InvoiceLine) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Invoice, error)
	ListLines(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]domain.InvoiceLine, error)
	List(ctx context.Context, tenantID uuid.UUID, filter InvoiceFilter) ([]domain.Invoice, int, error)

	// Issue assigns the next series number, sets status to issued and stamps
	// the issue date. Returns domain.ErrInvoiceNotDraft if the document has
	// left the draft state.
	Issue(ctx context.Context, tenantID, id uuid.UUID, issueDate time.Time) (*domain.Invoice, error)

	// Cancel moves a draft or issued invoice to cancelled. The assigned
	// number, if any, is kept; numbers are never recycled.
	Cancel(ctx context.Context, tenantID, id uuid.UUID) (*domain.Invoice, error)

	// MarkPaid records payment bookkeeping on an issued invoice.
	MarkPaid(ctx context.Context, tenantID, id uuid.UUID, method string, amount decimal.Decimal, paidAt time.Time) (*domain.Invoice, error)

	// SoftDelete removes a draft invoice and cascades to its lines.
	SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error

	AddLine(ctx context.Context, tenantID uuid.UUID, line *domain.InvoiceLine) error
	UpdateLine(ctx context.Context, tenantID uuid.UUID, line *domain.InvoiceLine) error
	DeleteLine(ctx context.Context, tenantID, invoiceID, lineID uuid.UUID) error

	// RecalculateTotals recomputes the header totals from the current line
	// set and persists them. Idempotent.
	RecalculateTotals(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.InvoiceTotals, error)

	GetStats(ctx context.Context, tenantID uuid.UUID, monthStart time.Time) (*domain.DashboardStats, error)
}
