// Package hook defines the extension points external policy modules plug
// into the invoice creation workflow. Each callback's contract (veto,
// transform or notify) is part of its interface type.
package hook

import (
	"context"

	"facturo/internal/domain"
)

// CreateValidator may veto an invoice creation before anything is persisted.
// A non-nil error aborts the creation and is surfaced as a validation error.
type CreateValidator interface {
	ValidateCreate(ctx context.Context, invoice *domain.Invoice, lines []domain.InvoiceLine) error
}

// LineFilter may add or modify lines before totals are calculated. It returns
// the line set to use; returning an error aborts the creation.
type LineFilter interface {
	FilterLines(ctx context.Context, invoice *domain.Invoice, lines []domain.InvoiceLine) ([]domain.InvoiceLine, error)
}

// TotalsFilter may adjust the computed totals before they are persisted.
type TotalsFilter interface {
	FilterTotals(ctx context.Context, invoice *domain.Invoice, totals domain.InvoiceTotals) (domain.InvoiceTotals, error)
}

// CreateListener is notified after an invoice has been persisted. It is
// informational; no return value is consumed.
type CreateListener interface {
	InvoiceCreated(ctx context.Context, invoice *domain.Invoice, lines []domain.InvoiceLine)
}

// Registry holds the callbacks registered against the invoice workflow.
// The zero value is usable and runs no callbacks.
type Registry struct {
	validators   []CreateValidator
	lineFilters  []LineFilter
	totalFilters []TotalsFilter
	listeners    []CreateListener
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterValidator appends a pre-create veto callback.
func (r *Registry) RegisterValidator(v CreateValidator) {
	r.validators = append(r.validators, v)
}

// RegisterLineFilter appends a line transform callback.
func (r *Registry) RegisterLineFilter(f LineFilter) {
	r.lineFilters = append(r.lineFilters, f)
}

// RegisterTotalsFilter appends a totals transform callback.
func (r *Registry) RegisterTotalsFilter(f TotalsFilter) {
	r.totalFilters = append(r.totalFilters, f)
}

// RegisterListener appends a post-create notification callback.
func (r *Registry) RegisterListener(l CreateListener) {
	r.listeners = append(r.listeners, l)
}

// RunValidators runs every registered validator and returns the first veto.
func (r *Registry) RunValidators(ctx context.Context, invoice *domain.Invoice, lines []domain.InvoiceLine) error {
	for _, v := range r.validators {
		if err := v.ValidateCreate(ctx, invoice, lines); err != nil {
			return err
		}
	}
	return nil
}

// RunLineFilters threads the line set through every registered filter.
func (r *Registry) RunLineFilters(ctx context.Context, invoice *domain.Invoice, lines []domain.InvoiceLine) ([]domain.InvoiceLine, error) {
	var err error
	for _, f := range r.lineFilters {
		lines, err = f.FilterLines(ctx, invoice, lines)
		if err != nil {
			return nil, err
		}
	}
	return lines, nil
}

// RunTotalsFilters threads the totals through every registered filter.
func (r *Registry) RunTotalsFilters(ctx context.Context, invoice *domain.Invoice, totals domain.InvoiceTotals) (domain.InvoiceTotals, error) {
	var err error
	for _, f := range r.totalFilters {
		totals, err = f.FilterTotals(ctx, invoice, totals)
		if err != nil {
			return domain.InvoiceTotals{}, err
		}
	}
	return totals, nil
}

// NotifyCreated informs every registered listener.
func (r *Registry) NotifyCreated(ctx context.Context, invoice *domain.Invoice, lines []domain.InvoiceLine) {
	for _, l := range r.listeners {
		l.InvoiceCreated(ctx, invoice, lines)
	}
}
