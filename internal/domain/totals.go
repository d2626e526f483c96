package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// InvoiceTotals holds the derived monetary fields of an invoice header.
type InvoiceTotals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`
}

// CalculateLineTotal derives a line total from quantity, unit price and
// discount percentage, rounded to 2 fractional digits:
//
//	total = round(quantity * unit_price * (1 - discount/100), 2)
func CalculateLineTotal(quantity, unitPrice, discountPercent decimal.Decimal) decimal.Decimal {
	gross := quantity.Mul(unitPrice)
	discount := gross.Mul(discountPercent).Div(hundred)
	return gross.Sub(discount).Round(2)
}

// CalculateTotals sums the line totals into the header subtotal and derives
// tax amount and grand total from the document tax rate. Line totals are
// already rounded, so repeated calls over an unchanged line set yield
// identical results.
func CalculateTotals(lines []InvoiceLine, taxRate decimal.Decimal) InvoiceTotals {
	subtotal := decimal.Zero
	for i := range lines {
		subtotal = subtotal.Add(lines[i].Total)
	}
	taxAmount := subtotal.Mul(taxRate).Div(hundred).Round(2)
	return InvoiceTotals{
		Subtotal:  subtotal.Round(2),
		TaxAmount: taxAmount,
		Total:     subtotal.Add(taxAmount).Round(2),
	}
}
