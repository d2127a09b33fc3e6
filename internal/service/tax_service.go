package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"taxmitra/internal/domain"
	"taxmitra/internal/port"
	"taxmitra/internal/tax"
)

// CalculateInput is the DTO for tax calculation requests.
type CalculateInput struct {
	FinancialYear   string          `json:"financial_year" binding:"required"`
	Regime          domain.Regime   `json:"regime" binding:"required"`
	GrossIncome     decimal.Decimal `json:"gross_income" binding:"required"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	IsSalaried      bool            `json:"is_salaried"`
	Age             int             `json:"age" binding:"required,min=18,max=120"`
}

// ReconcileInput is the DTO for breakdown reconciliation requests.
type ReconcileInput struct {
	Parts         []decimal.Decimal `json:"parts" binding:"required"`
	ExpectedTotal decimal.Decimal   `json:"expected_total" binding:"required"`
}

// ScheduleInfo is the read model for a slab schedule.
type ScheduleInfo struct {
	FinancialYear     string             `json:"financial_year"`
	Regime            domain.Regime      `json:"regime"`
	Slabs             []tax.Slab         `json:"slabs"`
	StandardDeduction decimal.Decimal    `json:"standard_deduction"`
	RebateThreshold   decimal.Decimal    `json:"rebate_threshold"`
	RebateAmount      decimal.Decimal    `json:"rebate_amount"`
	CessRate          decimal.Decimal    `json:"cess_rate"`
	DeductionCaps     []tax.DeductionCap `json:"deduction_caps,omitempty"`
}

// TaxService exposes tax computation, comparison and calculation history.
type TaxService interface {
	Calculate(ctx context.Context, userID uuid.UUID, input CalculateInput) (*tax.Result, error)
	Compare(ctx context.Context, input CalculateInput) (*tax.Comparison, error)
	Suggest(ctx context.Context, input CalculateInput) ([]tax.Suggestion, error)
	Reconcile(parts []decimal.Decimal, expectedTotal decimal.Decimal) ([]decimal.Decimal, error)
	GetSchedule(financialYear string, regime domain.Regime) (*ScheduleInfo, error)
	Years() []string
	History(ctx context.Context, userID uuid.UUID) ([]domain.TaxCalculation, error)
	GetCalculation(ctx context.Context, userID uuid.UUID, financialYear string) (*domain.TaxCalculation, error)
	DeleteCalculation(ctx context.Context, userID uuid.UUID, financialYear string) error
}

type taxService struct {
	engine   *tax.Engine
	calcRepo port.CalculationRepository
}

// NewTaxService creates a new TaxService implementation.
func NewTaxService(engine *tax.Engine, calcRepo port.CalculationRepository) TaxService {
	return &taxService{
		engine:   engine,
		calcRepo: calcRepo,
	}
}

func (s *taxService) Calculate(ctx context.Context, userID uuid.UUID, input CalculateInput) (*tax.Result, error) {
	result, err := s.engine.Calculate(input.FinancialYear, input.toEngineInput())
	if err != nil {
		return nil, err
	}

	// Anonymous calculations (the calculator CLI, pre-login usage) are not
	// persisted.
	if userID == uuid.Nil {
		return result, nil
	}

	snapshot, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("tax.Calculate marshal result: %w", err)
	}
	calc := &domain.TaxCalculation{
		UserID:          userID,
		FinancialYear:   input.FinancialYear,
		Regime:          input.Regime,
		GrossIncome:     input.GrossIncome,
		OtherDeductions: input.OtherDeductions,
		IsSalaried:      input.IsSalaried,
		Age:             input.Age,
		TotalTax:        result.TotalTax,
		Result:          snapshot,
	}
	if err := s.calcRepo.Upsert(ctx, calc); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *taxService) Compare(_ context.Context, input CalculateInput) (*tax.Comparison, error) {
	return s.engine.Compare(input.FinancialYear, input.toEngineInput())
}

func (s *taxService) Suggest(_ context.Context, input CalculateInput) ([]tax.Suggestion, error) {
	return s.engine.Suggest(input.FinancialYear, input.toEngineInput())
}

func (s *taxService) Reconcile(parts []decimal.Decimal, expectedTotal decimal.Decimal) ([]decimal.Decimal, error) {
	return tax.Reconcile(parts, expectedTotal)
}

func (s *taxService) GetSchedule(financialYear string, regime domain.Regime) (*ScheduleInfo, error) {
	sch, err := s.engine.Schedules().Get(financialYear, regime)
	if err != nil {
		return nil, err
	}
	return &ScheduleInfo{
		FinancialYear:     sch.FinancialYear,
		Regime:            sch.Regime,
		Slabs:             sch.Slabs,
		StandardDeduction: sch.StandardDeduction,
		RebateThreshold:   sch.RebateThreshold,
		RebateAmount:      sch.RebateAmount,
		CessRate:          sch.CessRate,
		DeductionCaps:     sch.DeductionCaps,
	}, nil
}

func (s *taxService) Years() []string {
	return s.engine.Schedules().Years()
}

func (s *taxService) History(ctx context.Context, userID uuid.UUID) ([]domain.TaxCalculation, error) {
	return s.calcRepo.ListByUser(ctx, userID)
}

func (s *taxService) GetCalculation(ctx context.Context, userID uuid.UUID, financialYear string) (*domain.TaxCalculation, error) {
	return s.calcRepo.GetByUserYear(ctx, userID, financialYear)
}

func (s *taxService) DeleteCalculation(ctx context.Context, userID uuid.UUID, financialYear string) error {
	return s.calcRepo.Delete(ctx, userID, financialYear)
}

func (in CalculateInput) toEngineInput() tax.Input {
	return tax.Input{
		GrossIncome:     in.GrossIncome,
		OtherDeductions: in.OtherDeductions,
		Regime:          in.Regime,
		IsSalaried:      in.IsSalaried,
		Age:             in.Age,
	}
}
