package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"taxmitra/internal/domain"
	"taxmitra/internal/service"
	"taxmitra/internal/tax"
)

// MockTaxService is a mock implementation of service.TaxService.
type MockTaxService struct {
	mock.Mock
}

func (m *MockTaxService) Calculate(ctx context.Context, userID uuid.UUID, input service.CalculateInput) (*tax.Result, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tax.Result), args.Error(1)
}

func (m *MockTaxService) Compare(ctx context.Context, input service.CalculateInput) (*tax.Comparison, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tax.Comparison), args.Error(1)
}

func (m *MockTaxService) Suggest(ctx context.Context, input service.CalculateInput) ([]tax.Suggestion, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]tax.Suggestion), args.Error(1)
}

func (m *MockTaxService) Reconcile(parts []decimal.Decimal, expectedTotal decimal.Decimal) ([]decimal.Decimal, error) {
	args := m.Called(parts, expectedTotal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]decimal.Decimal), args.Error(1)
}

func (m *MockTaxService) GetSchedule(financialYear string, regime domain.Regime) (*service.ScheduleInfo, error) {
	args := m.Called(financialYear, regime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ScheduleInfo), args.Error(1)
}

func (m *MockTaxService) Years() []string {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockTaxService) History(ctx context.Context, userID uuid.UUID) ([]domain.TaxCalculation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxCalculation), args.Error(1)
}

func (m *MockTaxService) GetCalculation(ctx context.Context, userID uuid.UUID, financialYear string) (*domain.TaxCalculation, error) {
	args := m.Called(ctx, userID, financialYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxCalculation), args.Error(1)
}

func (m *MockTaxService) DeleteCalculation(ctx context.Context, userID uuid.UUID, financialYear string) error {
	args := m.Called(ctx, userID, financialYear)
	return args.Error(0)
}
