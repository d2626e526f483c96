package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"facturo/internal/domain"
	"facturo/internal/events"
	"facturo/internal/hook"
	"facturo/internal/port"
	"facturo/internal/service"
	"facturo/mocks"
)

func newInvoiceService(
	invoices *mocks.MockInvoiceRepo,
	series *mocks.MockSeriesRepo,
	settings *mocks.MockSettingsRepo,
	publisher events.Publisher,
) service.InvoiceService {
	if publisher == nil {
		publisher = events.NewLogPublisher()
	}
	return service.NewInvoiceService(invoices, series, settings, hook.NewRegistry(), publisher, nil, nil)
}

func activeSeries(tenantID uuid.UUID) *domain.InvoiceSeries {
	return &domain.InvoiceSeries{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Prefix:       "F",
		Name:         "General",
		NumberDigits: 6,
		NextNumber:   1,
		IsActive:     true,
	}
}

func defaultSettings(tenantID uuid.UUID) *domain.InvoicingSettings {
	s := &domain.InvoicingSettings{ID: uuid.New(), TenantID: tenantID}
	s.ApplyDefaults()
	return s
}

func TestInvoiceService_Create_Success(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	settingsRepo := new(mocks.MockSettingsRepo)
	publisher := new(mocks.MockPublisher)
	svc := newInvoiceService(invoiceRepo, seriesRepo, settingsRepo, publisher)

	tenantID := uuid.New()
	userID := uuid.New()
	series := activeSeries(tenantID)

	seriesRepo.On("GetByID", mock.Anything, tenantID, series.ID).Return(series, nil)
	settingsRepo.On("GetOrCreate", mock.Anything, tenantID).Return(defaultSettings(tenantID), nil)
	invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceLine")).Return(nil)
	publisher.On("InvoiceCreated", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return()

	detail, err := svc.Create(context.Background(), tenantID, &userID, service.CreateInvoiceInput{
		SeriesID:     series.ID,
		CustomerName: "Acme SL",
		Lines: []service.CreateLineInput{
			{Description: "Consulting", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.RequireFromString("100.00")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusDraft, detail.Invoice.Status)
	assert.Empty(t, detail.Invoice.Number, "drafts carry no number")
	assert.True(t, detail.Invoice.Subtotal.Equal(decimal.RequireFromString("200.00")))
	assert.True(t, detail.Invoice.TaxAmount.Equal(decimal.RequireFromString("42.00")))
	assert.True(t, detail.Invoice.Total.Equal(decimal.RequireFromString("242.00")))
	require.Len(t, detail.Lines, 1)
	assert.True(t, detail.Lines[0].Total.Equal(decimal.RequireFromString("200.00")))
	invoiceRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestInvoiceService_Create_InactiveSeries(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	settingsRepo := new(mocks.MockSettingsRepo)
	svc := newInvoiceService(invoiceRepo, seriesRepo, settingsRepo, nil)

	tenantID := uuid.New()
	series := activeSeries(tenantID)
	series.IsActive = false

	seriesRepo.On("GetByID", mock.Anything, tenantID, series.ID).Return(series, nil)

	_, err := svc.Create(context.Background(), tenantID, nil, service.CreateInvoiceInput{
		SeriesID:     series.ID,
		CustomerName: "Acme SL",
	})

	assert.ErrorIs(t, err, domain.ErrSeriesInactive)
	invoiceRepo.AssertNotCalled(t, "Create")
}

func TestInvoiceService_Create_CustomerRequired(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	settingsRepo := new(mocks.MockSettingsRepo)
	svc := newInvoiceService(invoiceRepo, seriesRepo, settingsRepo, nil)

	tenantID := uuid.New()
	series := activeSeries(tenantID)

	seriesRepo.On("GetByID", mock.Anything, tenantID, series.ID).Return(series, nil)
	settingsRepo.On("GetOrCreate", mock.Anything, tenantID).Return(defaultSettings(tenantID), nil)

	_, err := svc.Create(context.Background(), tenantID, nil, service.CreateInvoiceInput{
		SeriesID:     series.ID,
		CustomerName: "   ",
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestInvoiceService_Create_CustomerOptionalWhenDisabled(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	settingsRepo := new(mocks.MockSettingsRepo)
	svc := newInvoiceService(invoiceRepo, seriesRepo, settingsRepo, nil)

	tenantID := uuid.New()
	series := activeSeries(tenantID)
	settings := defaultSettings(tenantID)
	settings.RequireCustomer = false

	seriesRepo.On("GetByID", mock.Anything, tenantID, series.ID).Return(series, nil)
	settingsRepo.On("GetOrCreate", mock.Anything, tenantID).Return(settings, nil)
	invoiceRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	detail, err := svc.Create(context.Background(), tenantID, nil, service.CreateInvoiceInput{
		SeriesID: series.ID,
	})

	require.NoError(t, err)
	assert.Empty(t, detail.Invoice.CustomerName)
}

func TestInvoiceService_Create_RectifyingBadReference(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	settingsRepo := new(mocks.MockSettingsRepo)
	svc := newInvoiceService(invoiceRepo, seriesRepo, settingsRepo, nil)

	tenantID := uuid.New()
	series := activeSeries(tenantID)
	rectifiedID := uuid.New()

	seriesRepo.On("GetByID", mock.Anything, tenantID, series.ID).Return(series, nil)
	settingsRepo.On("GetOrCreate", mock.Anything, tenantID).Return(defaultSettings(tenantID), nil)
	invoiceRepo.On("GetByID", mock.Anything, tenantID, rectifiedID).Return(nil, domain.ErrNotFound)

	_, err := svc.Create(context.Background(), tenantID, nil, service.CreateInvoiceInput{
		SeriesID:           series.ID,
		InvoiceType:        domain.InvoiceTypeRectifying,
		CustomerName:       "Acme SL",
		RectifiedInvoiceID: &rectifiedID,
	})

	assert.ErrorIs(t, err, domain.ErrRectifiedNotFound)
	invoiceRepo.AssertNotCalled(t, "Create")
}

func TestInvoiceService_Create_RectifiedRefOnStandardType(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	settingsRepo := new(mocks.MockSettingsRepo)
	svc := newInvoiceService(invoiceRepo, seriesRepo, settingsRepo, nil)

	tenantID := uuid.New()
	series := activeSeries(tenantID)
	rectifiedID := uuid.New()

	seriesRepo.On("GetByID", mock.Anything, tenantID, series.ID).Return(series, nil)
	settingsRepo.On("GetOrCreate", mock.Anything, tenantID).Return(defaultSettings(tenantID), nil)

	_, err := svc.Create(context.Background(), tenantID, nil, service.CreateInvoiceInput{
		SeriesID:           series.ID,
		CustomerName:       "Acme SL",
		RectifiedInvoiceID: &rectifiedID,
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestInvoiceService_Create_NegativeLineRejected(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	settingsRepo := new(mocks.MockSettingsRepo)
	svc := newInvoiceService(invoiceRepo, seriesRepo, settingsRepo, nil)

	tenantID := uuid.New()
	series := activeSeries(tenantID)

	seriesRepo.On("GetByID", mock.Anything, tenantID, series.ID).Return(series, nil)
	settingsRepo.On("GetOrCreate", mock.Anything, tenantID).Return(defaultSettings(tenantID), nil)

	_, err := svc.Create(context.Background(), tenantID, nil, service.CreateInvoiceInput{
		SeriesID:     series.ID,
		CustomerName: "Acme SL",
		Lines: []service.CreateLineInput{
			{Description: "Refund", UnitPrice: decimal.RequireFromString("-10.00")},
		},
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

type vetoValidator struct{ err error }

func (v vetoValidator) ValidateCreate(context.Context, *domain.Invoice, []domain.InvoiceLine) error {
	return v.err
}

func TestInvoiceService_Create_HookVeto(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	settingsRepo := new(mocks.MockSettingsRepo)

	hooks := hook.NewRegistry()
	hooks.RegisterValidator(vetoValidator{err: assert.AnError})
	svc := service.NewInvoiceService(invoiceRepo, seriesRepo, settingsRepo, hooks, events.NewLogPublisher(), nil, nil)

	tenantID := uuid.New()
	series := activeSeries(tenantID)

	seriesRepo.On("GetByID", mock.Anything, tenantID, series.ID).Return(series, nil)
	settingsRepo.On("GetOrCreate", mock.Anything, tenantID).Return(defaultSettings(tenantID), nil)

	_, err := svc.Create(context.Background(), tenantID, nil, service.CreateInvoiceInput{
		SeriesID:     series.ID,
		CustomerName: "Acme SL",
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	invoiceRepo.AssertNotCalled(t, "Create")
}

type surchargeFilter struct{}

func (surchargeFilter) FilterLines(_ context.Context, _ *domain.Invoice, lines []domain.InvoiceLine) ([]domain.InvoiceLine, error) {
	lines = append(lines, domain.InvoiceLine{
		Description: "Handling fee",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.RequireFromString("5.00"),
	})
	return lines, nil
}

func TestInvoiceService_Create_LineFilterAddsLine(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	settingsRepo := new(mocks.MockSettingsRepo)

	hooks := hook.NewRegistry()
	hooks.RegisterLineFilter(surchargeFilter{})
	svc := service.NewInvoiceService(invoiceRepo, seriesRepo, settingsRepo, hooks, events.NewLogPublisher(), nil, nil)

	tenantID := uuid.New()
	series := activeSeries(tenantID)

	seriesRepo.On("GetByID", mock.Anything, tenantID, series.ID).Return(series, nil)
	settingsRepo.On("GetOrCreate", mock.Anything, tenantID).Return(defaultSettings(tenantID), nil)
	invoiceRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	detail, err := svc.Create(context.Background(), tenantID, nil, service.CreateInvoiceInput{
		SeriesID:     series.ID,
		CustomerName: "Acme SL",
		Lines: []service.CreateLineInput{
			{Description: "Widget", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("100.00")},
		},
	})

	require.NoError(t, err)
	require.Len(t, detail.Lines, 2)
	// 105.00 subtotal, 21% default rate
	assert.True(t, detail.Invoice.Subtotal.Equal(decimal.RequireFromString("105.00")))
	assert.True(t, detail.Invoice.Total.Equal(decimal.RequireFromString("127.05")))
}

func TestInvoiceService_Issue_Success(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	settingsRepo := new(mocks.MockSettingsRepo)
	publisher := new(mocks.MockPublisher)
	svc := newInvoiceService(invoiceRepo, seriesRepo, settingsRepo, publisher)

	tenantID := uuid.New()
	invoiceID := uuid.New()
	issued := &domain.Invoice{
		ID:       invoiceID,
		TenantID: tenantID,
		Number:   "F000001",
		Status:   domain.InvoiceStatusIssued,
		TaxRate:  decimal.RequireFromString("21.00"),
	}

	invoiceRepo.On("Issue", mock.Anything, tenantID, invoiceID, mock.AnythingOfType("time.Time")).Return(issued, nil)
	publisher.On("InvoiceIssued", mock.Anything, issued).Return()

	invoice, err := svc.Issue(context.Background(), tenantID, invoiceID)

	require.NoError(t, err)
	assert.Equal(t, "F000001", invoice.Number)
	assert.Equal(t, domain.InvoiceStatusIssued, invoice.Status)
	publisher.AssertExpectations(t)
}

func TestInvoiceService_Issue_NotDraft(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	settingsRepo := new(mocks.MockSettingsRepo)
	publisher := new(mocks.MockPublisher)
	svc := newInvoiceService(invoiceRepo, seriesRepo, settingsRepo, publisher)

	tenantID := uuid.New()
	invoiceID := uuid.New()
	invoiceRepo.On("Issue", mock.Anything, tenantID, invoiceID, mock.AnythingOfType("time.Time")).Return(nil, domain.ErrInvoiceNotDraft)

	_, err := svc.Issue(context.Background(), tenantID, invoiceID)

	assert.ErrorIs(t, err, domain.ErrInvoiceNotDraft)
	publisher.AssertNotCalled(t, "InvoiceIssued")
}

func TestInvoiceService_Issue_EmailBestEffort(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	settingsRepo := new(mocks.MockSettingsRepo)
	email := new(mocks.MockEmailSender)
	svc := service.NewInvoiceService(invoiceRepo, seriesRepo, settingsRepo, hook.NewRegistry(), events.NewLogPublisher(), email, nil)

	tenantID := uuid.New()
	invoiceID := uuid.New()
	issued := &domain.Invoice{
		ID:            invoiceID,
		TenantID:      tenantID,
		Number:        "F000002",
		Status:        domain.InvoiceStatusIssued,
		CustomerName:  "Acme SL",
		CustomerEmail: "billing@acme.example",
		IssueDate:     time.Now().UTC(),
		TaxRate:       decimal.RequireFromString("21.00"),
	}

	invoiceRepo.On("Issue", mock.Anything, tenantID, invoiceID, mock.AnythingOfType("time.Time")).Return(issued, nil)
	invoiceRepo.On("ListLines", mock.Anything, tenantID, invoiceID).Return([]domain.InvoiceLine{}, nil)
	settingsRepo.On("GetOrCreate", mock.Anything, tenantID).Return(defaultSettings(tenantID), nil)
	// Delivery failure must not fail the issue.
	email.On("SendInvoiceEmail", mock.Anything, issued, mock.AnythingOfType("string")).Return(assert.AnError)

	invoice, err := svc.Issue(context.Background(), tenantID, invoiceID)

	require.NoError(t, err)
	assert.Equal(t, "F000002", invoice.Number)
	email.AssertExpectations(t)
}

func TestInvoiceService_Cancel_PublishesEvent(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	settingsRepo := new(mocks.MockSettingsRepo)
	publisher := new(mocks.MockPublisher)
	svc := newInvoiceService(invoiceRepo, seriesRepo, settingsRepo, publisher)

	tenantID := uuid.New()
	invoiceID := uuid.New()
	cancelled := &domain.Invoice{ID: invoiceID, TenantID: tenantID, Number: "F000003", Status: domain.InvoiceStatusCancelled}

	invoiceRepo.On("Cancel", mock.Anything, tenantID, invoiceID).Return(cancelled, nil)
	publisher.On("InvoiceCancelled", mock.Anything, cancelled).Return()

	invoice, err := svc.Cancel(context.Background(), tenantID, invoiceID)

	require.NoError(t, err)
	assert.Equal(t, "F000003", invoice.Number, "assigned number survives cancellation")
	publisher.AssertExpectations(t)
}

func TestInvoiceService_MarkPaid_DefaultsToFullTotal(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	settingsRepo := new(mocks.MockSettingsRepo)
	svc := newInvoiceService(invoiceRepo, seriesRepo, settingsRepo, nil)

	tenantID := uuid.New()
	invoiceID := uuid.New()
	total := decimal.RequireFromString("242.00")
	issued := &domain.Invoice{ID: invoiceID, TenantID: tenantID, Status: domain.InvoiceStatusIssued, Total: total}
	paid := &domain.Invoice{ID: invoiceID, TenantID: tenantID, Status: domain.InvoiceStatusPaid, Total: total, PaidAmount: total}

	invoiceRepo.On("GetByID", mock.Anything, tenantID, invoiceID).Return(issued, nil)
	invoiceRepo.On("MarkPaid", mock.Anything, tenantID, invoiceID, "card",
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(total) }),
		mock.AnythingOfType("time.Time")).Return(paid, nil)

	invoice, err := svc.MarkPaid(context.Background(), tenantID, invoiceID, service.MarkPaidInput{PaymentMethod: "card"})

	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, invoice.Status)
	assert.True(t, invoice.PaidAmount.Equal(total))
	invoiceRepo.AssertExpectations(t)
}

func TestInvoiceService_MarkPaid_NegativeAmount(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	settingsRepo := new(mocks.MockSettingsRepo)
	svc := newInvoiceService(invoiceRepo, seriesRepo, settingsRepo, nil)

	negative := decimal.RequireFromString("-1.00")
	_, err := svc.MarkPaid(context.Background(), uuid.New(), uuid.New(), service.MarkPaidInput{
		PaymentMethod: "cash",
		PaidAmount:    &negative,
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	invoiceRepo.AssertNotCalled(t, "MarkPaid")
}

func TestInvoiceService_Search_ShortQuery(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	settingsRepo := new(mocks.MockSettingsRepo)
	svc := newInvoiceService(invoiceRepo, seriesRepo, settingsRepo, nil)

	invoices, err := svc.Search(context.Background(), uuid.New(), " f ")

	require.NoError(t, err)
	assert.Empty(t, invoices)
	invoiceRepo.AssertNotCalled(t, "List")
}

func TestInvoiceService_Search_FiltersIssuedAndPaid(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	settingsRepo := new(mocks.MockSettingsRepo)
	svc := newInvoiceService(invoiceRepo, seriesRepo, settingsRepo, nil)

	tenantID := uuid.New()
	expected := []domain.Invoice{{Number: "F000010"}}
	invoiceRepo.On("List", mock.Anything, tenantID, mock.MatchedBy(func(f port.InvoiceFilter) bool {
		return f.Search == "F0000" && len(f.Statuses) == 2 && f.Limit == 20
	})).Return(expected, 1, nil)

	invoices, err := svc.Search(context.Background(), tenantID, "F0000")

	require.NoError(t, err)
	assert.Equal(t, expected, invoices)
}

func TestInvoiceService_AddLine_RecomputesViaRepo(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	settingsRepo := new(mocks.MockSettingsRepo)
	svc := newInvoiceService(invoiceRepo, seriesRepo, settingsRepo, nil)

	tenantID := uuid.New()
	invoiceID := uuid.New()
	draft := &domain.Invoice{ID: invoiceID, TenantID: tenantID, Status: domain.InvoiceStatusDraft, TaxRate: decimal.RequireFromString("21.00")}

	invoiceRepo.On("GetByID", mock.Anything, tenantID, invoiceID).Return(draft, nil)
	invoiceRepo.On("ListLines", mock.Anything, tenantID, invoiceID).Return([]domain.InvoiceLine{}, nil)
	invoiceRepo.On("AddLine", mock.Anything, tenantID, mock.MatchedBy(func(l *domain.InvoiceLine) bool {
		return l.InvoiceID == invoiceID && l.Total.Equal(decimal.RequireFromString("50.00"))
	})).Return(nil)

	_, err := svc.AddLine(context.Background(), tenantID, invoiceID, service.CreateLineInput{
		Description: "Shipping",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.RequireFromString("50.00"),
	})

	require.NoError(t, err)
	invoiceRepo.AssertExpectations(t)
}

func TestInvoiceService_UpdateLine_NotFound(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	settingsRepo := new(mocks.MockSettingsRepo)
	svc := newInvoiceService(invoiceRepo, seriesRepo, settingsRepo, nil)

	tenantID := uuid.New()
	invoiceID := uuid.New()
	invoiceRepo.On("ListLines", mock.Anything, tenantID, invoiceID).Return([]domain.InvoiceLine{}, nil)

	_, err := svc.UpdateLine(context.Background(), tenantID, invoiceID, uuid.New(), service.UpdateLineInput{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvoiceService_UpdateLine_RejectsDiscountOver100(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	settingsRepo := new(mocks.MockSettingsRepo)
	svc := newInvoiceService(invoiceRepo, seriesRepo, settingsRepo, nil)

	tenantID := uuid.New()
	invoiceID := uuid.New()
	lineID := uuid.New()
	invoiceRepo.On("ListLines", mock.Anything, tenantID, invoiceID).Return([]domain.InvoiceLine{
		{
			ID:          lineID,
			InvoiceID:   invoiceID,
			Description: "Widget",
			Quantity:    decimal.NewFromInt(2),
			UnitPrice:   decimal.RequireFromString("100.00"),
		},
	}, nil)

	discount := decimal.RequireFromString("150")
	_, err := svc.UpdateLine(context.Background(), tenantID, invoiceID, lineID, service.UpdateLineInput{
		DiscountPercent: &discount,
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	invoiceRepo.AssertNotCalled(t, "UpdateLine", mock.Anything, mock.Anything, mock.Anything)
}

func TestInvoiceService_Delete_Forwards(t *testing.T) {
	invoiceRepo := new(mocks.MockInvoiceRepo)
	seriesRepo := new(mocks.MockSeriesRepo)
	settingsRepo := new(mocks.MockSettingsRepo)
	svc := newInvoiceService(invoiceRepo, seriesRepo, settingsRepo, nil)

	tenantID := uuid.New()
	invoiceID := uuid.New()
	invoiceRepo.On("SoftDelete", mock.Anything, tenantID, invoiceID).Return(domain.ErrInvoiceNotDeletable)

	err := svc.Delete(context.Background(), tenantID, invoiceID)

	assert.ErrorIs(t, err, domain.ErrInvoiceNotDeletable)
}
