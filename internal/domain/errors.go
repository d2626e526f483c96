package domain

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrValidation            = errors.New("validation failed")
	ErrDuplicatePrefix       = errors.New("series prefix already exists for this tenant")
	ErrSeriesInactive        = errors.New("series is not active")
	ErrSeriesInUse           = errors.New("series is referenced by existing invoices")
	ErrInvoiceNotDraft       = errors.New("invoice is not a draft")
	ErrInvoiceNotCancellable = errors.New("invoice cannot be cancelled in its current status")
	ErrInvoiceNotPayable     = errors.New("invoice cannot be marked paid in its current status")
	ErrInvoiceNotDeletable   = errors.New("only draft invoices can be deleted")
	ErrRectifiedNotFound     = errors.New("rectified invoice not found for this tenant")
)
