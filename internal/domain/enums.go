package domain

// InvoiceStatus represents the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusIssued    InvoiceStatus = "issued"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// ValidInvoiceStatuses maps every known status for input validation.
var ValidInvoiceStatuses = map[InvoiceStatus]bool{
	InvoiceStatusDraft:     true,
	InvoiceStatusIssued:    true,
	InvoiceStatusPaid:      true,
	InvoiceStatusCancelled: true,
}

// InvoiceType distinguishes fiscal document kinds.
type InvoiceType string

const (
	InvoiceTypeStandard   InvoiceType = "invoice"
	InvoiceTypeSimplified InvoiceType = "simplified"
	InvoiceTypeRectifying InvoiceType = "rectifying"
)

// ValidInvoiceTypes maps every known invoice type for input validation.
var ValidInvoiceTypes = map[InvoiceType]bool{
	InvoiceTypeStandard:   true,
	InvoiceTypeSimplified: true,
	InvoiceTypeRectifying: true,
}

// Cancellable reports whether an invoice in this status may be cancelled.
func (s InvoiceStatus) Cancellable() bool {
	return s == InvoiceStatusDraft || s == InvoiceStatusIssued
}
