package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"facturo/internal/domain"
	"facturo/internal/service"
	"facturo/mocks"
)

func TestSettingsService_Get(t *testing.T) {
	repo := new(mocks.MockSettingsRepo)
	svc := service.NewSettingsService(repo)

	tenantID := uuid.New()
	expected := defaultSettings(tenantID)
	repo.On("GetOrCreate", mock.Anything, tenantID).Return(expected, nil)

	settings, err := svc.Get(context.Background(), tenantID)

	require.NoError(t, err)
	assert.Equal(t, expected, settings)
	assert.Equal(t, "F", settings.DefaultSeriesPrefix)
	assert.True(t, settings.RequireCustomer)
}

func TestSettingsService_Update_PartialFields(t *testing.T) {
	repo := new(mocks.MockSettingsRepo)
	svc := service.NewSettingsService(repo)

	tenantID := uuid.New()
	existing := defaultSettings(tenantID)
	existing.CompanyName = "Old Name"

	repo.On("GetOrCreate", mock.Anything, tenantID).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(s *domain.InvoicingSettings) bool {
		return s.CompanyName == "New Name" && s.RequireCustomer == false
	})).Return(nil)

	name := "New Name"
	requireCustomer := false
	settings, err := svc.Update(context.Background(), tenantID, service.UpdateSettingsInput{
		CompanyName:     &name,
		RequireCustomer: &requireCustomer,
	})

	assert.NoError(t, err)
	assert.Equal(t, "New Name", settings.CompanyName)
	assert.False(t, settings.RequireCustomer)
	// Untouched fields keep their values.
	assert.Equal(t, "F", settings.DefaultSeriesPrefix)
	repo.AssertExpectations(t)
}

func TestSettingsService_Reset(t *testing.T) {
	repo := new(mocks.MockSettingsRepo)
	svc := service.NewSettingsService(repo)

	tenantID := uuid.New()
	existing := defaultSettings(tenantID)
	existing.CompanyName = "Acme SL"
	existing.RequireCustomer = false
	existing.InvoiceFooter = "thanks"

	repo.On("GetOrCreate", mock.Anything, tenantID).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	settings, err := svc.Reset(context.Background(), tenantID)

	require.NoError(t, err)
	assert.Empty(t, settings.CompanyName)
	assert.True(t, settings.RequireCustomer)
	assert.Empty(t, settings.InvoiceFooter)
	assert.Equal(t, "F", settings.DefaultSeriesPrefix)
}
