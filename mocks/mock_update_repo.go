package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"taxmitra/internal/domain"
)

// MockUpdateRepo is a mock implementation of port.UpdateRepository.
type MockUpdateRepo struct {
	mock.Mock
}

func (m *MockUpdateRepo) Create(ctx context.Context, update *domain.RegulatoryUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *MockUpdateRepo) GetByID(ctx context.Context, updateID uuid.UUID) (*domain.RegulatoryUpdate, error) {
	args := m.Called(ctx, updateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegulatoryUpdate), args.Error(1)
}

func (m *MockUpdateRepo) List(ctx context.Context, status domain.UpdateStatus, filters domain.UpdateFilters, offset, limit int) ([]domain.RegulatoryUpdate, int, error) {
	args := m.Called(ctx, status, filters, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.RegulatoryUpdate), args.Int(1), args.Error(2)
}

func (m *MockUpdateRepo) Update(ctx context.Context, update *domain.RegulatoryUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *MockUpdateRepo) Delete(ctx context.Context, updateID uuid.UUID) error {
	args := m.Called(ctx, updateID)
	return args.Error(0)
}
