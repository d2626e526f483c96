package xlsxexport

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"facturo/internal/domain"
)

func TestWrite(t *testing.T) {
	inv := domain.Invoice{
		ID:            uuid.New(),
		Number:        "F000007",
		InvoiceType:   domain.InvoiceTypeStandard,
		Status:        domain.InvoiceStatusIssued,
		IssueDate:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		CustomerName:  "Acme SL",
		CustomerTaxID: "B12345678",
		Subtotal:      decimal.RequireFromString("100.00"),
		TaxRate:       decimal.RequireFromString("21.00"),
		TaxAmount:     decimal.RequireFromString("21.00"),
		Total:         decimal.RequireFromString("121.00"),
		PaidAmount:    decimal.Zero,
		CreatedAt:     time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []domain.Invoice{inv}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Number", rows[0][0])
	assert.Equal(t, "F000007", rows[1][0])
	assert.Equal(t, "issued", rows[1][2])
	assert.Equal(t, "2025-03-01", rows[1][3])
	assert.Equal(t, "Acme SL", rows[1][5])
	assert.Equal(t, "121", rows[1][11])
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
