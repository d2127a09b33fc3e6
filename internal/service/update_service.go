package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"taxmitra/internal/domain"
	"taxmitra/internal/port"
)

// CreateUpdateInput is the DTO for creating a regulatory update.
type CreateUpdateInput struct {
	Title         string                `json:"title" binding:"required"`
	Body          string                `json:"body" binding:"required"`
	Category      domain.UpdateCategory `json:"category" binding:"required"`
	FinancialYear string                `json:"financial_year" binding:"required"`
	SourceURL     string                `json:"source_url"`
}

// EditUpdateInput is the DTO for editing a regulatory update.
type EditUpdateInput struct {
	Title         string                `json:"title" binding:"required"`
	Body          string                `json:"body" binding:"required"`
	Category      domain.UpdateCategory `json:"category" binding:"required"`
	FinancialYear string                `json:"financial_year" binding:"required"`
	SourceURL     string                `json:"source_url"`
}

// UpdateService defines the regulatory-updates feed contract. Authoring
// operations are admin-only and enforced at the router.
type UpdateService interface {
	Create(ctx context.Context, createdBy uuid.UUID, input CreateUpdateInput) (*domain.RegulatoryUpdate, error)
	GetByID(ctx context.Context, updateID uuid.UUID) (*domain.RegulatoryUpdate, error)
	Edit(ctx context.Context, updateID uuid.UUID, input EditUpdateInput) (*domain.RegulatoryUpdate, error)
	Publish(ctx context.Context, updateID uuid.UUID) (*domain.RegulatoryUpdate, error)
	ListPublished(ctx context.Context, filters domain.UpdateFilters, offset, limit int) ([]domain.RegulatoryUpdate, int, error)
	ListDrafts(ctx context.Context, filters domain.UpdateFilters, offset, limit int) ([]domain.RegulatoryUpdate, int, error)
	Delete(ctx context.Context, updateID uuid.UUID) error
}

type updateService struct {
	updateRepo port.UpdateRepository
}

// NewUpdateService creates a new UpdateService implementation.
func NewUpdateService(updateRepo port.UpdateRepository) UpdateService {
	return &updateService{updateRepo: updateRepo}
}

func (s *updateService) Create(ctx context.Context, createdBy uuid.UUID, input CreateUpdateInput) (*domain.RegulatoryUpdate, error) {
	if !domain.ValidUpdateCategories[input.Category] {
		return nil, domain.ErrInvalidCategory
	}

	update := &domain.RegulatoryUpdate{
		Title:         input.Title,
		Body:          input.Body,
		Category:      input.Category,
		FinancialYear: input.FinancialYear,
		SourceURL:     input.SourceURL,
		Status:        domain.UpdateStatusDraft,
		CreatedBy:     createdBy,
	}
	if err := s.updateRepo.Create(ctx, update); err != nil {
		return nil, err
	}
	return update, nil
}

func (s *updateService) GetByID(ctx context.Context, updateID uuid.UUID) (*domain.RegulatoryUpdate, error) {
	return s.updateRepo.GetByID(ctx, updateID)
}

func (s *updateService) Edit(ctx context.Context, updateID uuid.UUID, input EditUpdateInput) (*domain.RegulatoryUpdate, error) {
	if !domain.ValidUpdateCategories[input.Category] {
		return nil, domain.ErrInvalidCategory
	}

	update, err := s.updateRepo.GetByID(ctx, updateID)
	if err != nil {
		return nil, err
	}

	update.Title = input.Title
	update.Body = input.Body
	update.Category = input.Category
	update.FinancialYear = input.FinancialYear
	update.SourceURL = input.SourceURL

	if err := s.updateRepo.Update(ctx, update); err != nil {
		return nil, err
	}
	return update, nil
}

func (s *updateService) Publish(ctx context.Context, updateID uuid.UUID) (*domain.RegulatoryUpdate, error) {
	update, err := s.updateRepo.GetByID(ctx, updateID)
	if err != nil {
		return nil, err
	}
	if update.Status == domain.UpdateStatusPublished {
		return nil, domain.ErrUpdateAlreadyPublished
	}

	now := time.Now().UTC()
	update.Status = domain.UpdateStatusPublished
	update.PublishedAt = &now

	if err := s.updateRepo.Update(ctx, update); err != nil {
		return nil, err
	}
	return update, nil
}

func (s *updateService) ListPublished(ctx context.Context, filters domain.UpdateFilters, offset, limit int) ([]domain.RegulatoryUpdate, int, error) {
	return s.updateRepo.List(ctx, domain.UpdateStatusPublished, filters, offset, limit)
}

func (s *updateService) ListDrafts(ctx context.Context, filters domain.UpdateFilters, offset, limit int) ([]domain.RegulatoryUpdate, int, error) {
	return s.updateRepo.List(ctx, domain.UpdateStatusDraft, filters, offset, limit)
}

func (s *updateService) Delete(ctx context.Context, updateID uuid.UUID) error {
	return s.updateRepo.Delete(ctx, updateID)
}
