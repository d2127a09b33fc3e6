package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"taxmitra/internal/domain"
	"taxmitra/internal/service"
)

// MockUpdateService is a mock implementation of service.UpdateService.
type MockUpdateService struct {
	mock.Mock
}

func (m *MockUpdateService) Create(ctx context.Context, createdBy uuid.UUID, input service.CreateUpdateInput) (*domain.RegulatoryUpdate, error) {
	args := m.Called(ctx, createdBy, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegulatoryUpdate), args.Error(1)
}

func (m *MockUpdateService) GetByID(ctx context.Context, updateID uuid.UUID) (*domain.RegulatoryUpdate, error) {
	args := m.Called(ctx, updateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegulatoryUpdate), args.Error(1)
}

func (m *MockUpdateService) Edit(ctx context.Context, updateID uuid.UUID, input service.EditUpdateInput) (*domain.RegulatoryUpdate, error) {
	args := m.Called(ctx, updateID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegulatoryUpdate), args.Error(1)
}

func (m *MockUpdateService) Publish(ctx context.Context, updateID uuid.UUID) (*domain.RegulatoryUpdate, error) {
	args := m.Called(ctx, updateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegulatoryUpdate), args.Error(1)
}

func (m *MockUpdateService) ListPublished(ctx context.Context, filters domain.UpdateFilters, offset, limit int) ([]domain.RegulatoryUpdate, int, error) {
	args := m.Called(ctx, filters, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.RegulatoryUpdate), args.Int(1), args.Error(2)
}

func (m *MockUpdateService) ListDrafts(ctx context.Context, filters domain.UpdateFilters, offset, limit int) ([]domain.RegulatoryUpdate, int, error) {
	args := m.Called(ctx, filters, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.RegulatoryUpdate), args.Int(1), args.Error(2)
}

func (m *MockUpdateService) Delete(ctx context.Context, updateID uuid.UUID) error {
	args := m.Called(ctx, updateID)
	return args.Error(0)
}
