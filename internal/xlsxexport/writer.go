// Package xlsxexport renders invoice listings as Excel workbooks.
package xlsxexport

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"facturo/internal/domain"
)

const sheetName = "Invoices"

var headers = []interface{}{
	"Number",
	"Type",
	"Status",
	"Issue Date",
	"Due Date",
	"Customer Name",
	"Customer Tax ID",
	"Customer Email",
	"Subtotal",
	"Tax Rate",
	"Tax Amount",
	"Total",
	"Payment Method",
	"Paid Amount",
	"Paid At",
	"Notes",
	"Created At",
}

// Write renders the invoice batch as a single-sheet workbook and writes the
// xlsx bytes to w. Monetary columns are written as numbers so spreadsheet
// formulas work on them.
func Write(w io.Writer, invoices []domain.Invoice) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("xlsxexport: rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return fmt.Errorf("xlsxexport: header row: %w", err)
	}

	for i := range invoices {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsxexport: cell name: %w", err)
		}
		row := invoiceToRow(&invoices[i])
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("xlsxexport: row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsxexport: write workbook: %w", err)
	}
	return nil
}

func invoiceToRow(inv *domain.Invoice) []interface{} {
	subtotal, _ := inv.Subtotal.Float64()
	taxRate, _ := inv.TaxRate.Float64()
	taxAmount, _ := inv.TaxAmount.Float64()
	total, _ := inv.Total.Float64()
	paidAmount, _ := inv.PaidAmount.Float64()

	return []interface{}{
		inv.Number,
		string(inv.InvoiceType),
		string(inv.Status),
		inv.IssueDate.Format("2006-01-02"),
		formatDate(inv.DueDate),
		inv.CustomerName,
		inv.CustomerTaxID,
		inv.CustomerEmail,
		subtotal,
		taxRate,
		taxAmount,
		total,
		inv.PaymentMethod,
		paidAmount,
		formatTime(inv.PaidAt),
		inv.Notes,
		inv.CreatedAt.Format(time.RFC3339),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
