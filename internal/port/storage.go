package port

import (
	"context"
	"io"
)

// ArchiveInput describes a rendered invoice snapshot to store.
type ArchiveInput struct {
	Key         string
	Body        io.Reader
	ContentType string
}

// ArchiveStorage stores rendered snapshots of issued invoices.
type ArchiveStorage interface {
	Store(ctx context.Context, input ArchiveInput) (location string, err error)
}
