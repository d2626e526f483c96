package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"facturo/internal/domain"
	"facturo/internal/port"
)

// CreateSeriesInput is the DTO for creating a numbering series.
type CreateSeriesInput struct {
	Prefix       string `json:"prefix" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	NumberDigits int    `json:"number_digits"`
	IsActive     *bool  `json:"is_active"`
	IsDefault    bool   `json:"is_default"`
}

// UpdateSeriesInput is the DTO for editing a numbering series. The counter is
// deliberately absent: it only moves through number allocation.
type UpdateSeriesInput struct {
	Prefix       *string `json:"prefix"`
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	NumberDigits *int    `json:"number_digits"`
	IsActive     *bool   `json:"is_active"`
}

// SeriesService defines the numbering series management contract.
type SeriesService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateSeriesInput) (*domain.InvoiceSeries, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.InvoiceSeries, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]domain.InvoiceSeries, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateSeriesInput) (*domain.InvoiceSeries, error)
	ToggleActive(ctx context.Context, tenantID, id uuid.UUID) (*domain.InvoiceSeries, error)
	SetDefault(ctx context.Context, tenantID, id uuid.UUID) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type seriesService struct {
	repo port.SeriesRepository
}

// NewSeriesService creates a new SeriesService implementation.
func NewSeriesService(repo port.SeriesRepository) SeriesService {
	return &seriesService{repo: repo}
}

const (
	maxPrefixLen   = 10
	defaultDigits  = 6
	maxNumberWidth = 10
)

func validateSeriesFields(prefix, name string, digits int) error {
	if prefix == "" {
		return fmt.Errorf("%w: prefix is required", domain.ErrValidation)
	}
	if len(prefix) > maxPrefixLen {
		return fmt.Errorf("%w: prefix must be at most %d characters", domain.ErrValidation, maxPrefixLen)
	}
	if name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if digits < 1 || digits > maxNumberWidth {
		return fmt.Errorf("%w: number_digits must be between 1 and %d", domain.ErrValidation, maxNumberWidth)
	}
	return nil
}

func (s *seriesService) Create(ctx context.Context, tenantID uuid.UUID, input CreateSeriesInput) (*domain.InvoiceSeries, error) {
	if input.NumberDigits == 0 {
		input.NumberDigits = defaultDigits
	}
	if err := validateSeriesFields(input.Prefix, input.Name, input.NumberDigits); err != nil {
		return nil, err
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	series := &domain.InvoiceSeries{
		TenantID:     tenantID,
		Prefix:       input.Prefix,
		Name:         input.Name,
		Description:  input.Description,
		NextNumber:   1,
		NumberDigits: input.NumberDigits,
		IsActive:     active,
		IsDefault:    input.IsDefault,
	}
	if err := s.repo.Create(ctx, series); err != nil {
		return nil, err
	}
	return series, nil
}

func (s *seriesService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.InvoiceSeries, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *seriesService) List(ctx context.Context, tenantID uuid.UUID) ([]domain.InvoiceSeries, error) {
	return s.repo.List(ctx, tenantID)
}

func (s *seriesService) Update(ctx context.Context, tenantID, id uuid.UUID, input UpdateSeriesInput) (*domain.InvoiceSeries, error) {
	series, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if input.Prefix != nil {
		series.Prefix = *input.Prefix
	}
	if input.Name != nil {
		series.Name = *input.Name
	}
	if input.Description != nil {
		series.Description = *input.Description
	}
	if input.NumberDigits != nil {
		series.NumberDigits = *input.NumberDigits
	}
	if input.IsActive != nil {
		series.IsActive = *input.IsActive
	}

	if err := validateSeriesFields(series.Prefix, series.Name, series.NumberDigits); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, series); err != nil {
		return nil, err
	}
	return series, nil
}

func (s *seriesService) ToggleActive(ctx context.Context, tenantID, id uuid.UUID) (*domain.InvoiceSeries, error) {
	series, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	series.IsActive = !series.IsActive
	if err := s.repo.Update(ctx, series); err != nil {
		return nil, err
	}
	return series, nil
}

func (s *seriesService) SetDefault(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.repo.SetDefault(ctx, tenantID, id)
}

func (s *seriesService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, tenantID, id)
}
