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

type updateRepo struct {
	db *sqlx.DB
}

// NewUpdateRepo creates a new PostgreSQL-backed UpdateRepository.
func NewUpdateRepo(db *sqlx.DB) port.UpdateRepository {
	return &updateRepo{db: db}
}

func (r *updateRepo) Create(ctx context.Context, update *domain.RegulatoryUpdate) error {
	update.ID = uuid.New()
	now := time.Now().UTC()
	update.CreatedAt = now
	update.UpdatedAt = now

	query := `INSERT INTO regulatory_updates
		(id, title, body, category, financial_year, source_url, status, published_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		update.ID, update.Title, update.Body, update.Category, update.FinancialYear,
		update.SourceURL, update.Status, update.PublishedAt, update.CreatedBy,
		update.CreatedAt, update.UpdatedAt)
	if err != nil {
		return fmt.Errorf("updateRepo.Create: %w", err)
	}
	return nil
}

func (r *updateRepo) GetByID(ctx context.Context, updateID uuid.UUID) (*domain.RegulatoryUpdate, error) {
	var update domain.RegulatoryUpdate
	err := r.db.GetContext(ctx, &update,
		"SELECT * FROM regulatory_updates WHERE id = $1", updateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUpdateNotFound
		}
		return nil, fmt.Errorf("updateRepo.GetByID: %w", err)
	}
	return &update, nil
}

func (r *updateRepo) List(ctx context.Context, status domain.UpdateStatus, filters domain.UpdateFilters, offset, limit int) ([]domain.RegulatoryUpdate, int, error) {
	where := "WHERE status = $1"
	args := []interface{}{status}
	if filters.Category != "" {
		args = append(args, filters.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filters.FinancialYear != "" {
		args = append(args, filters.FinancialYear)
		where += fmt.Sprintf(" AND financial_year = $%d", len(args))
	}

	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM regulatory_updates "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("updateRepo.List count: %w", err)
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(
		"SELECT * FROM regulatory_updates %s ORDER BY COALESCE(published_at, created_at) DESC LIMIT $%d OFFSET $%d",
		where, len(args)-1, len(args))

	var updates []domain.RegulatoryUpdate
	err = r.db.SelectContext(ctx, &updates, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("updateRepo.List: %w", err)
	}
	return updates, total, nil
}

func (r *updateRepo) Update(ctx context.Context, update *domain.RegulatoryUpdate) error {
	update.UpdatedAt = time.Now().UTC()
	query := `UPDATE regulatory_updates
		SET title = $1, body = $2, category = $3, financial_year = $4, source_url = $5,
			status = $6, published_at = $7, updated_at = $8
		WHERE id = $9`
	result, err := r.db.ExecContext(ctx, query,
		update.Title, update.Body, update.Category, update.FinancialYear, update.SourceURL,
		update.Status, update.PublishedAt, update.UpdatedAt, update.ID)
	if err != nil {
		return fmt.Errorf("updateRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrUpdateNotFound
	}
	return nil
}

func (r *updateRepo) Delete(ctx context.Context, updateID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM regulatory_updates WHERE id = $1", updateID)
	if err != nil {
		return fmt.Errorf("updateRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrUpdateNotFound
	}
	return nil
}
