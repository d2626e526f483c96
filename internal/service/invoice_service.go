package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"facturo/internal/domain"
	"facturo/internal/events"
	"facturo/internal/hook"
	"facturo/internal/port"
	"facturo/internal/render"
)

// CreateLineInput is the DTO for a single invoice line.
type CreateLineInput struct {
	ProductID       *uuid.UUID       `json:"product_id"`
	ProductSKU      string           `json:"product_sku"`
	Description     string           `json:"description" binding:"required"`
	Quantity        decimal.Decimal  `json:"quantity"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
	TaxRate         *decimal.Decimal `json:"tax_rate"`
	SortOrder       *int             `json:"sort_order"`
}

// CreateInvoiceInput is the DTO for creating an invoice draft.
type CreateInvoiceInput struct {
	SeriesID    uuid.UUID          `json:"series_id" binding:"required"`
	InvoiceType domain.InvoiceType `json:"invoice_type"`

	CustomerName    string `json:"customer_name"`
	CustomerTaxID   string `json:"customer_tax_id"`
	CustomerAddress string `json:"customer_address"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`

	CustomerID         *uuid.UUID `json:"customer_id"`
	SaleID             *uuid.UUID `json:"sale_id"`
	RectifiedInvoiceID *uuid.UUID `json:"rectified_invoice_id"`

	TaxRate *decimal.Decimal `json:"tax_rate"`
	DueDate *time.Time       `json:"due_date"`
	Notes   string           `json:"notes"`

	Lines []CreateLineInput `json:"lines"`
}

// UpdateLineInput is the DTO for editing a draft line.
type UpdateLineInput struct {
	ProductID       *uuid.UUID       `json:"product_id"`
	ProductSKU      *string          `json:"product_sku"`
	Description     *string          `json:"description"`
	Quantity        *decimal.Decimal `json:"quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	TaxRate         *decimal.Decimal `json:"tax_rate"`
	SortOrder       *int             `json:"sort_order"`
}

// MarkPaidInput records payment bookkeeping on an issued invoice.
type MarkPaidInput struct {
	PaymentMethod string           `json:"payment_method"`
	PaidAmount    *decimal.Decimal `json:"paid_amount"`
}

// InvoiceDetail bundles an invoice header with its ordered lines.
type InvoiceDetail struct {
	Invoice *domain.Invoice      `json:"invoice"`
	Lines   []domain.InvoiceLine `json:"lines"`
}

// defaultTaxRate applies when neither the document nor a line carries one.
var defaultTaxRate = decimal.RequireFromString("21.00")

// InvoiceService defines the invoice lifecycle contract.
type InvoiceService interface {
	Create(ctx context.Context, tenantID uuid.UUID, employeeID *uuid.UUID, input CreateInvoiceInput) (*InvoiceDetail, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*InvoiceDetail, error)
	List(ctx context.Context, tenantID uuid.UUID, filter port.InvoiceFilter) ([]domain.Invoice, int, error)
	Search(ctx context.Context, tenantID uuid.UUID, query string) ([]domain.Invoice, error)

	Issue(ctx context.Context, tenantID, id uuid.UUID) (*domain.Invoice, error)
	Cancel(ctx context.Context, tenantID, id uuid.UUID) (*domain.Invoice, error)
	MarkPaid(ctx context.Context, tenantID, id uuid.UUID, input MarkPaidInput) (*domain.Invoice, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	AddLine(ctx context.Context, tenantID, invoiceID uuid.UUID, input CreateLineInput) (*InvoiceDetail, error)
	UpdateLine(ctx context.Context, tenantID, invoiceID, lineID uuid.UUID, input UpdateLineInput) (*InvoiceDetail, error)
	DeleteLine(ctx context.Context, tenantID, invoiceID, lineID uuid.UUID) (*InvoiceDetail, error)

	Render(ctx context.Context, tenantID, id uuid.UUID) (string, error)
}

type invoiceService struct {
	invoices port.InvoiceRepository
	series   port.SeriesRepository
	settings port.SettingsRepository
	hooks    *hook.Registry
	events   events.Publisher
	email    port.EmailSender
	archive  port.ArchiveStorage
}

// NewInvoiceService creates a new InvoiceService implementation. The hook
// registry and event publisher are required; email and archive are optional
// side channels and may be nil.
func NewInvoiceService(
	invoices port.InvoiceRepository,
	series port.SeriesRepository,
	settings port.SettingsRepository,
	hooks *hook.Registry,
	publisher events.Publisher,
	email port.EmailSender,
	archive port.ArchiveStorage,
) InvoiceService {
	return &invoiceService{
		invoices: invoices,
		series:   series,
		settings: settings,
		hooks:    hooks,
		events:   publisher,
		email:    email,
		archive:  archive,
	}
}

func (s *invoiceService) Create(ctx context.Context, tenantID uuid.UUID, employeeID *uuid.UUID, input CreateInvoiceInput) (*InvoiceDetail, error) {
	series, err := s.series.GetByID(ctx, tenantID, input.SeriesID)
	if err != nil {
		return nil, err
	}
	if !series.IsActive {
		return nil, domain.ErrSeriesInactive
	}

	invoiceType := input.InvoiceType
	if invoiceType == "" {
		invoiceType = domain.InvoiceTypeStandard
	}
	if !domain.ValidInvoiceTypes[invoiceType] {
		return nil, fmt.Errorf("%w: unknown invoice type %q", domain.ErrValidation, invoiceType)
	}

	cfg, err := s.settings.GetOrCreate(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if cfg.RequireCustomer && strings.TrimSpace(input.CustomerName) == "" {
		return nil, fmt.Errorf("%w: customer name is required", domain.ErrValidation)
	}

	// A rectified reference must point at a document of the same tenant.
	if input.RectifiedInvoiceID != nil {
		if invoiceType != domain.InvoiceTypeRectifying {
			return nil, fmt.Errorf("%w: rectified_invoice_id is only valid for rectifying invoices", domain.ErrValidation)
		}
		if _, err := s.invoices.GetByID(ctx, tenantID, *input.RectifiedInvoiceID); err != nil {
			return nil, domain.ErrRectifiedNotFound
		}
	}

	taxRate := defaultTaxRate
	if input.TaxRate != nil {
		taxRate = *input.TaxRate
	}
	if taxRate.IsNegative() {
		return nil, fmt.Errorf("%w: tax_rate cannot be negative", domain.ErrValidation)
	}

	invoice := &domain.Invoice{
		TenantID:           tenantID,
		SeriesID:           series.ID,
		InvoiceType:        invoiceType,
		Status:             domain.InvoiceStatusDraft,
		IssueDate:          time.Now().UTC(),
		DueDate:            input.DueDate,
		CustomerName:       input.CustomerName,
		CustomerTaxID:      input.CustomerTaxID,
		CustomerAddress:    input.CustomerAddress,
		CustomerEmail:      input.CustomerEmail,
		CustomerPhone:      input.CustomerPhone,
		CustomerID:         input.CustomerID,
		SaleID:             input.SaleID,
		EmployeeID:         employeeID,
		RectifiedInvoiceID: input.RectifiedInvoiceID,
		TaxRate:            taxRate,
		PaidAmount:         decimal.Zero,
		Notes:              input.Notes,
	}

	lines, err := buildLines(input.Lines, taxRate)
	if err != nil {
		return nil, err
	}

	if err := s.hooks.RunValidators(ctx, invoice, lines); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	lines, err = s.hooks.RunLineFilters(ctx, invoice, lines)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// Line totals are recomputed after filtering; a filter may change
	// quantities or prices but never gets to bypass the arithmetic.
	for i := range lines {
		lines[i].Total = domain.CalculateLineTotal(lines[i].Quantity, lines[i].UnitPrice, lines[i].DiscountPercent)
	}

	totals := domain.CalculateTotals(lines, taxRate)
	totals, err = s.hooks.RunTotalsFilters(ctx, invoice, totals)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	invoice.Subtotal = totals.Subtotal
	invoice.TaxAmount = totals.TaxAmount
	invoice.Total = totals.Total

	if err := s.invoices.Create(ctx, invoice, lines); err != nil {
		return nil, err
	}

	s.hooks.NotifyCreated(ctx, invoice, lines)
	s.events.InvoiceCreated(ctx, invoice)

	return &InvoiceDetail{Invoice: invoice, Lines: lines}, nil
}

// buildLines converts line inputs to domain lines, assigning display order by
// input sequence when none is given and computing each line total.
func buildLines(inputs []CreateLineInput, documentTaxRate decimal.Decimal) ([]domain.InvoiceLine, error) {
	lines := make([]domain.InvoiceLine, 0, len(inputs))
	for i, in := range inputs {
		line, err := buildLine(in, documentTaxRate, i)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}
	return lines, nil
}

func buildLine(in CreateLineInput, documentTaxRate decimal.Decimal, position int) (*domain.InvoiceLine, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: line description is required", domain.ErrValidation)
	}
	quantity := in.Quantity
	if quantity.IsZero() {
		quantity = decimal.NewFromInt(1)
	}
	if quantity.IsNegative() || in.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: line quantity and unit price cannot be negative", domain.ErrValidation)
	}
	if in.DiscountPercent.IsNegative() || in.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("%w: discount_percent must be between 0 and 100", domain.ErrValidation)
	}

	taxRate := documentTaxRate
	if in.TaxRate != nil {
		taxRate = *in.TaxRate
	}
	sortOrder := position
	if in.SortOrder != nil {
		sortOrder = *in.SortOrder
	}

	return &domain.InvoiceLine{
		ProductID:       in.ProductID,
		ProductSKU:      in.ProductSKU,
		Description:     in.Description,
		Quantity:        quantity,
		UnitPrice:       in.UnitPrice,
		DiscountPercent: in.DiscountPercent,
		TaxRate:         taxRate,
		Total:           domain.CalculateLineTotal(quantity, in.UnitPrice, in.DiscountPercent),
		SortOrder:       sortOrder,
	}, nil
}

func (s *invoiceService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*InvoiceDetail, error) {
	invoice, err := s.invoices.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	lines, err := s.invoices.ListLines(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return &InvoiceDetail{Invoice: invoice, Lines: lines}, nil
}

func (s *invoiceService) List(ctx context.Context, tenantID uuid.UUID, filter port.InvoiceFilter) ([]domain.Invoice, int, error) {
	return s.invoices.List(ctx, tenantID, filter)
}

func (s *invoiceService) Search(ctx context.Context, tenantID uuid.UUID, query string) ([]domain.Invoice, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []domain.Invoice{}, nil
	}
	invoices, _, err := s.invoices.List(ctx, tenantID, port.InvoiceFilter{
		Search:   query,
		Statuses: []domain.InvoiceStatus{domain.InvoiceStatusIssued, domain.InvoiceStatusPaid},
		SortBy:   "created",
		Limit:    20,
	})
	return invoices, err
}

func (s *invoiceService) Issue(ctx context.Context, tenantID, id uuid.UUID) (*domain.Invoice, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	invoice, err := s.invoices.Issue(ctx, tenantID, id, today)
	if err != nil {
		return nil, err
	}

	s.events.InvoiceIssued(ctx, invoice)
	s.deliverIssued(ctx, invoice)
	return invoice, nil
}

// deliverIssued sends the customer email and archives the rendered snapshot.
// Both are best-effort: the issue transaction has already committed and its
// outcome never depends on these side channels.
func (s *invoiceService) deliverIssued(ctx context.Context, invoice *domain.Invoice) {
	if s.email == nil && s.archive == nil {
		return
	}

	htmlBody, err := s.renderInvoice(ctx, invoice)
	if err != nil {
		log.Printf("invoice %s: render after issue failed: %v", invoice.ID, err)
		return
	}

	if s.email != nil && invoice.CustomerEmail != "" {
		if err := s.email.SendInvoiceEmail(ctx, invoice, htmlBody); err != nil {
			log.Printf("invoice %s: email delivery failed: %v", invoice.ID, err)
		}
	}
	if s.archive != nil {
		key := fmt.Sprintf("%s/%s/%s.html", invoice.TenantID, invoice.ID, invoice.Number)
		if _, err := s.archive.Store(ctx, port.ArchiveInput{
			Key:         key,
			Body:        strings.NewReader(htmlBody),
			ContentType: "text/html; charset=utf-8",
		}); err != nil {
			log.Printf("invoice %s: archive failed: %v", invoice.ID, err)
		}
	}
}

func (s *invoiceService) renderInvoice(ctx context.Context, invoice *domain.Invoice) (string, error) {
	lines, err := s.invoices.ListLines(ctx, invoice.TenantID, invoice.ID)
	if err != nil {
		return "", err
	}
	cfg, err := s.settings.GetOrCreate(ctx, invoice.TenantID)
	if err != nil {
		return "", err
	}
	return render.InvoiceHTML(invoice, lines, cfg)
}

func (s *invoiceService) Cancel(ctx context.Context, tenantID, id uuid.UUID) (*domain.Invoice, error) {
	invoice, err := s.invoices.Cancel(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	s.events.InvoiceCancelled(ctx, invoice)
	return invoice, nil
}

func (s *invoiceService) MarkPaid(ctx context.Context, tenantID, id uuid.UUID, input MarkPaidInput) (*domain.Invoice, error) {
	var amount decimal.Decimal
	if input.PaidAmount != nil {
		if input.PaidAmount.IsNegative() {
			return nil, fmt.Errorf("%w: paid_amount cannot be negative", domain.ErrValidation)
		}
		amount = *input.PaidAmount
	} else {
		// No explicit amount means full settlement.
		invoice, err := s.invoices.GetByID(ctx, tenantID, id)
		if err != nil {
			return nil, err
		}
		amount = invoice.Total
	}

	return s.invoices.MarkPaid(ctx, tenantID, id, input.PaymentMethod, amount, time.Now().UTC())
}

func (s *invoiceService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.invoices.SoftDelete(ctx, tenantID, id)
}

func (s *invoiceService) AddLine(ctx context.Context, tenantID, invoiceID uuid.UUID, input CreateLineInput) (*InvoiceDetail, error) {
	detail, err := s.GetByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	line, err := buildLine(input, detail.Invoice.TaxRate, len(detail.Lines))
	if err != nil {
		return nil, err
	}
	line.InvoiceID = invoiceID

	if err := s.invoices.AddLine(ctx, tenantID, line); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tenantID, invoiceID)
}

func (s *invoiceService) UpdateLine(ctx context.Context, tenantID, invoiceID, lineID uuid.UUID, input UpdateLineInput) (*InvoiceDetail, error) {
	lines, err := s.invoices.ListLines(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	var line *domain.InvoiceLine
	for i := range lines {
		if lines[i].ID == lineID {
			line = &lines[i]
			break
		}
	}
	if line == nil {
		return nil, domain.ErrNotFound
	}

	if input.ProductID != nil {
		line.ProductID = input.ProductID
	}
	if input.ProductSKU != nil {
		line.ProductSKU = *input.ProductSKU
	}
	if input.Description != nil {
		line.Description = *input.Description
	}
	if input.Quantity != nil {
		line.Quantity = *input.Quantity
	}
	if input.UnitPrice != nil {
		line.UnitPrice = *input.UnitPrice
	}
	if input.DiscountPercent != nil {
		line.DiscountPercent = *input.DiscountPercent
	}
	if input.TaxRate != nil {
		line.TaxRate = *input.TaxRate
	}
	if input.SortOrder != nil {
		line.SortOrder = *input.SortOrder
	}

	if strings.TrimSpace(line.Description) == "" {
		return nil, fmt.Errorf("%w: line description is required", domain.ErrValidation)
	}
	if line.Quantity.IsNegative() || line.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: line quantity and unit price cannot be negative", domain.ErrValidation)
	}
	if line.DiscountPercent.IsNegative() || line.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("%w: discount_percent must be between 0 and 100", domain.ErrValidation)
	}

	if err := s.invoices.UpdateLine(ctx, tenantID, line); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tenantID, invoiceID)
}

func (s *invoiceService) DeleteLine(ctx context.Context, tenantID, invoiceID, lineID uuid.UUID) (*InvoiceDetail, error) {
	if err := s.invoices.DeleteLine(ctx, tenantID, invoiceID, lineID); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tenantID, invoiceID)
}

func (s *invoiceService) Render(ctx context.Context, tenantID, id uuid.UUID) (string, error) {
	invoice, err := s.invoices.GetByID(ctx, tenantID, id)
	if err != nil {
		return "", err
	}
	return s.renderInvoice(ctx, invoice)
}
