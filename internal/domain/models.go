package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceSeries is a numbering series: a per-tenant monotonic counter plus a
// formatting rule that produces unique sequential invoice numbers.
type InvoiceSeries struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	TenantID     uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	Prefix       string     `db:"prefix" json:"prefix"`
	Name         string     `db:"name" json:"name"`
	Description  string     `db:"description" json:"description"`
	NextNumber   int64      `db:"next_number" json:"next_number"`
	NumberDigits int        `db:"number_digits" json:"number_digits"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	IsDefault    bool       `db:"is_default" json:"is_default"`
	InvoiceCount int        `db:"invoice_count" json:"invoice_count"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at" json:"-"`
}

// FormatNumber renders a counter value using the series prefix and zero-pad
// width, e.g. prefix "F", 6 digits, 1 -> "F000001".
func (s *InvoiceSeries) FormatNumber(n int64) string {
	return fmt.Sprintf("%s%0*d", s.Prefix, s.NumberDigits, n)
}

// Allocate formats the current counter value and advances the counter. The
// number uses the pre-increment value, so a fresh series allocates "F000001"
// first. Callers must persist NextNumber under the same lock that loaded it.
func (s *InvoiceSeries) Allocate() string {
	number := s.FormatNumber(s.NextNumber)
	s.NextNumber++
	return number
}

// SetDefaultAmong marks the series with the given id as the tenant default
// and clears the flag on every sibling, so at most one default survives. It
// returns the series whose flag changed, and ErrNotFound when the id is not
// in the set.
func SetDefaultAmong(series []InvoiceSeries, id uuid.UUID) ([]*InvoiceSeries, error) {
	found := false
	for i := range series {
		if series[i].ID == id {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrNotFound
	}

	var changed []*InvoiceSeries
	for i := range series {
		s := &series[i]
		want := s.ID == id
		if s.IsDefault != want {
			s.IsDefault = want
			changed = append(changed, s)
		}
	}
	return changed, nil
}

// Invoice is the fiscal document aggregate header. Monetary fields are
// derived from the line set and persisted alongside it; the customer block is
// a snapshot taken at creation time and never updated afterwards.
type Invoice struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	TenantID    uuid.UUID     `db:"tenant_id" json:"tenant_id"`
	SeriesID    uuid.UUID     `db:"series_id" json:"series_id"`
	Number      string        `db:"number" json:"number"`
	InvoiceType InvoiceType   `db:"invoice_type" json:"invoice_type"`
	Status      InvoiceStatus `db:"status" json:"status"`

	IssueDate time.Time  `db:"issue_date" json:"issue_date"`
	DueDate   *time.Time `db:"due_date" json:"due_date"`

	CustomerName    string `db:"customer_name" json:"customer_name"`
	CustomerTaxID   string `db:"customer_tax_id" json:"customer_tax_id"`
	CustomerAddress string `db:"customer_address" json:"customer_address"`
	CustomerEmail   string `db:"customer_email" json:"customer_email"`
	CustomerPhone   string `db:"customer_phone" json:"customer_phone"`

	CustomerID         *uuid.UUID `db:"customer_id" json:"customer_id"`
	SaleID             *uuid.UUID `db:"sale_id" json:"sale_id"`
	EmployeeID         *uuid.UUID `db:"employee_id" json:"employee_id"`
	RectifiedInvoiceID *uuid.UUID `db:"rectified_invoice_id" json:"rectified_invoice_id"`

	Subtotal  decimal.Decimal `db:"subtotal" json:"subtotal"`
	TaxRate   decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	TaxAmount decimal.Decimal `db:"tax_amount" json:"tax_amount"`
	Total     decimal.Decimal `db:"total" json:"total"`

	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	PaidAmount    decimal.Decimal `db:"paid_amount" json:"paid_amount"`
	PaidAt        *time.Time      `db:"paid_at" json:"paid_at"`

	Notes string `db:"notes" json:"notes"`

	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

// InvoiceLine is a single line item owned by an invoice. Its Total is derived
// from quantity, unit price and discount and recomputed on every write.
type InvoiceLine struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	InvoiceID uuid.UUID `db:"invoice_id" json:"invoice_id"`

	ProductID  *uuid.UUID `db:"product_id" json:"product_id"`
	ProductSKU string     `db:"product_sku" json:"product_sku"`

	Description     string          `db:"description" json:"description"`
	Quantity        decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice       decimal.Decimal `db:"unit_price" json:"unit_price"`
	DiscountPercent decimal.Decimal `db:"discount_percent" json:"discount_percent"`
	TaxRate         decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	Total           decimal.Decimal `db:"total" json:"total"`

	SortOrder int `db:"sort_order" json:"sort_order"`

	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

// InvoicingSettings is the per-tenant invoicing configuration aggregate,
// fetched via a get-or-create accessor keyed by tenant id.
type InvoicingSettings struct {
	ID       uuid.UUID `db:"id" json:"id"`
	TenantID uuid.UUID `db:"tenant_id" json:"tenant_id"`

	CompanyName    string `db:"company_name" json:"company_name"`
	CompanyTaxID   string `db:"company_tax_id" json:"company_tax_id"`
	CompanyAddress string `db:"company_address" json:"company_address"`
	CompanyPhone   string `db:"company_phone" json:"company_phone"`
	CompanyEmail   string `db:"company_email" json:"company_email"`

	DefaultSeriesPrefix string `db:"default_series_prefix" json:"default_series_prefix"`
	AutoGenerateInvoice bool   `db:"auto_generate_invoice" json:"auto_generate_invoice"`
	RequireCustomer     bool   `db:"require_customer" json:"require_customer"`
	InvoiceFooter       string `db:"invoice_footer" json:"invoice_footer"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ApplyDefaults resets the settings to their out-of-the-box values.
func (s *InvoicingSettings) ApplyDefaults() {
	s.CompanyName = ""
	s.CompanyTaxID = ""
	s.CompanyAddress = ""
	s.CompanyPhone = ""
	s.CompanyEmail = ""
	s.DefaultSeriesPrefix = "F"
	s.AutoGenerateInvoice = false
	s.RequireCustomer = true
	s.InvoiceFooter = ""
}

// DashboardStats aggregates invoice counts and amounts for the overview screen.
type DashboardStats struct {
	MonthlyTotal decimal.Decimal `db:"monthly_total" json:"monthly_total"`
	MonthlyCount int             `db:"monthly_count" json:"monthly_count"`
	MonthlyPaid  decimal.Decimal `db:"monthly_paid" json:"monthly_paid"`
	DraftCount   int             `db:"draft_count" json:"draft_count"`
	IssuedCount  int             `db:"issued_count" json:"issued_count"`
	PaidCount    int             `db:"paid_count" json:"paid_count"`

	RecentInvoices []Invoice `json:"recent_invoices"`
}
