package handler_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"facturo/internal/csvexport"
	"facturo/internal/domain"
	"facturo/internal/handler"
	"facturo/internal/middleware"
	"facturo/internal/service"
	"facturo/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setAuthContext(c *gin.Context, tenantID, userID uuid.UUID) {
	c.Set(middleware.ContextKeyTenantID, tenantID)
	c.Set(middleware.ContextKeyUserID, userID)
}

func TestInvoiceHandler_Create_Success(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(svc)

	tenantID := uuid.New()
	userID := uuid.New()
	seriesID := uuid.New()

	detail := &service.InvoiceDetail{
		Invoice: &domain.Invoice{ID: uuid.New(), TenantID: tenantID, Status: domain.InvoiceStatusDraft},
		Lines:   []domain.InvoiceLine{},
	}
	svc.On("Create", mock.Anything, tenantID, &userID, mock.AnythingOfType("service.CreateInvoiceInput")).
		Return(detail, nil)

	body, _ := json.Marshal(gin.H{
		"series_id":     seriesID,
		"customer_name": "Acme SL",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	setAuthContext(c, tenantID, userID)

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	svc.AssertExpectations(t)
}

func TestInvoiceHandler_Create_MissingSeries(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	setAuthContext(c, uuid.New(), uuid.New())

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create")
}

func TestInvoiceHandler_GetByID_NotFound(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(svc)

	tenantID := uuid.New()
	invoiceID := uuid.New()
	svc.On("GetByID", mock.Anything, tenantID, invoiceID).Return(nil, domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices/"+invoiceID.String(), http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: invoiceID.String()}}
	setAuthContext(c, tenantID, uuid.New())

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestInvoiceHandler_Issue_Conflict(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(svc)

	tenantID := uuid.New()
	invoiceID := uuid.New()
	svc.On("Issue", mock.Anything, tenantID, invoiceID).Return(nil, domain.ErrInvoiceNotDraft)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices/"+invoiceID.String()+"/issue", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: invoiceID.String()}}
	setAuthContext(c, tenantID, uuid.New())

	h.Issue(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVOICE_NOT_DRAFT", resp.Error.Code)
}

func TestInvoiceHandler_ExportCSV_Success(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(svc)

	tenantID := uuid.New()
	invoices := []domain.Invoice{
		{
			ID:           uuid.New(),
			Number:       "F000001",
			InvoiceType:  domain.InvoiceTypeStandard,
			Status:       domain.InvoiceStatusIssued,
			IssueDate:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			CustomerName: "Acme SL",
			Subtotal:     decimal.RequireFromString("100.00"),
			TaxRate:      decimal.RequireFromString("21.00"),
			TaxAmount:    decimal.RequireFromString("21.00"),
			Total:        decimal.RequireFromString("121.00"),
			PaidAmount:   decimal.Zero,
			CreatedAt:    time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC),
		},
	}
	svc.On("List", mock.Anything, tenantID, mock.AnythingOfType("port.InvoiceFilter")).
		Return(invoices, 1, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices/export/csv", http.NoBody)
	setAuthContext(c, tenantID, uuid.New())

	h.ExportCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "invoices_")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")

	body := w.Body.Bytes()
	require.True(t, len(body) >= 3)
	assert.Equal(t, csvexport.BOM, body[:3])

	r := csv.NewReader(strings.NewReader(string(body[3:])))
	records, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Number", records[0][0])
	assert.Equal(t, "F000001", records[1][0])
	assert.Equal(t, "121.00", records[1][11])
}

func TestInvoiceHandler_MissingAuthContext(t *testing.T) {
	svc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "List")
}
