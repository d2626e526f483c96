package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"facturo/internal/port"
)

// MockArchiveStorage is a mock implementation of port.ArchiveStorage.
type MockArchiveStorage struct {
	mock.Mock
}

func (m *MockArchiveStorage) Store(ctx context.Context, input port.ArchiveInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}
