package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"taxmitra/internal/domain"
	"taxmitra/internal/port"
)

type calculationRepo struct {
	db *sqlx.DB
}

// NewCalculationRepo creates a new PostgreSQL-backed CalculationRepository.
func NewCalculationRepo(db *sqlx.DB) port.CalculationRepository {
	return &calculationRepo{db: db}
}

func (r *calculationRepo) Upsert(ctx context.Context, calc *domain.TaxCalculation) error {
	if calc.ID == uuid.Nil {
		calc.ID = uuid.New()
	}
	now := time.Now().UTC()
	calc.CreatedAt = now
	calc.UpdatedAt = now

	// One snapshot per user and financial year. Saving again replaces the
	// previous snapshot but keeps its original created_at.
	query := `INSERT INTO tax_calculations
		(id, user_id, financial_year, regime, gross_income, other_deductions, is_salaried, age, total_tax, result, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id, financial_year) DO UPDATE SET
			regime = EXCLUDED.regime,
			gross_income = EXCLUDED.gross_income,
			other_deductions = EXCLUDED.other_deductions,
			is_salaried = EXCLUDED.is_salaried,
			age = EXCLUDED.age,
			total_tax = EXCLUDED.total_tax,
			result = EXCLUDED.result,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		calc.ID, calc.UserID, calc.FinancialYear, calc.Regime,
		calc.GrossIncome, calc.OtherDeductions, calc.IsSalaried, calc.Age,
		calc.TotalTax, calc.Result, calc.CreatedAt, calc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("calculationRepo.Upsert: %w", err)
	}
	return nil
}

func (r *calculationRepo) GetByUserYear(ctx context.Context, userID uuid.UUID, financialYear string) (*domain.TaxCalculation, error) {
	var calc domain.TaxCalculation
	err := r.db.GetContext(ctx, &calc,
		"SELECT * FROM tax_calculations WHERE user_id = $1 AND financial_year = $2",
		userID, financialYear)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("calculationRepo.GetByUserYear: %w", err)
	}
	return &calc, nil
}

func (r *calculationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.TaxCalculation, error) {
	var calcs []domain.TaxCalculation
	err := r.db.SelectContext(ctx, &calcs,
		"SELECT * FROM tax_calculations WHERE user_id = $1 ORDER BY financial_year DESC",
		userID)
	if err != nil {
		return nil, fmt.Errorf("calculationRepo.ListByUser: %w", err)
	}
	return calcs, nil
}

func (r *calculationRepo) Delete(ctx context.Context, userID uuid.UUID, financialYear string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM tax_calculations WHERE user_id = $1 AND financial_year = $2",
		userID, financialYear)
	if err != nil {
		return fmt.Errorf("calculationRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
