package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"taxmitra/internal/domain"
)

// MockCalculationRepo is a mock implementation of port.CalculationRepository.
type MockCalculationRepo struct {
	mock.Mock
}

func (m *MockCalculationRepo) Upsert(ctx context.Context, calc *domain.TaxCalculation) error {
	args := m.Called(ctx, calc)
	return args.Error(0)
}

func (m *MockCalculationRepo) GetByUserYear(ctx context.Context, userID uuid.UUID, financialYear string) (*domain.TaxCalculation, error) {
	args := m.Called(ctx, userID, financialYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxCalculation), args.Error(1)
}

func (m *MockCalculationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.TaxCalculation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxCalculation), args.Error(1)
}

func (m *MockCalculationRepo) Delete(ctx context.Context, userID uuid.UUID, financialYear string) error {
	args := m.Called(ctx, userID, financialYear)
	return args.Error(0)
}
