package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateLineTotal_NoDiscount(t *testing.T) {
	total := CalculateLineTotal(dec("2"), dec("50.00"), dec("0"))
	assert.True(t, total.Equal(dec("100.00")), "got %s", total)
}

func TestCalculateLineTotal_WithDiscount(t *testing.T) {
	total := CalculateLineTotal(dec("2"), dec("100.00"), dec("10"))
	assert.True(t, total.Equal(dec("180.00")), "got %s", total)
}

func TestCalculateLineTotal_FractionalQuantity(t *testing.T) {
	// 1.5 * 9.99 = 14.985 -> 14.99 (banker-free half-up rounding)
	total := CalculateLineTotal(dec("1.5"), dec("9.99"), dec("0"))
	assert.True(t, total.Equal(dec("14.99")), "got %s", total)
}

func TestCalculateTotals(t *testing.T) {
	lines := []InvoiceLine{
		{Quantity: dec("2"), UnitPrice: dec("50.00"), Total: dec("100.00")},
		{Quantity: dec("1"), UnitPrice: dec("100.00"), Total: dec("100.00")},
	}

	totals := CalculateTotals(lines, dec("21.00"))

	assert.True(t, totals.Subtotal.Equal(dec("200.00")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.TaxAmount.Equal(dec("42.00")), "tax %s", totals.TaxAmount)
	assert.True(t, totals.Total.Equal(dec("242.00")), "total %s", totals.Total)
}

func TestCalculateTotals_Idempotent(t *testing.T) {
	lines := []InvoiceLine{
		{Total: CalculateLineTotal(dec("3"), dec("33.33"), dec("5"))},
		{Total: CalculateLineTotal(dec("0.125"), dec("7.77"), dec("0"))},
	}

	first := CalculateTotals(lines, dec("21.00"))
	second := CalculateTotals(lines, dec("21.00"))

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.TaxAmount.Equal(second.TaxAmount))
	assert.True(t, first.Total.Equal(second.Total))
}

func TestCalculateTotals_EmptyLines(t *testing.T) {
	totals := CalculateTotals(nil, dec("21.00"))
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.TaxAmount.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestSeriesFormatNumber(t *testing.T) {
	s := &InvoiceSeries{Prefix: "F", NumberDigits: 6}
	assert.Equal(t, "F000001", s.FormatNumber(1))
	assert.Equal(t, "F000123", s.FormatNumber(123))

	r := &InvoiceSeries{Prefix: "R", NumberDigits: 4}
	assert.Equal(t, "R0001", r.FormatNumber(1))

	// Counter values wider than the pad width are never truncated.
	assert.Equal(t, "R12345", r.FormatNumber(12345))
}

func TestStatusCancellable(t *testing.T) {
	require.True(t, InvoiceStatusDraft.Cancellable())
	require.True(t, InvoiceStatusIssued.Cancellable())
	require.False(t, InvoiceStatusPaid.Cancellable())
	require.False(t, InvoiceStatusCancelled.Cancellable())
}
