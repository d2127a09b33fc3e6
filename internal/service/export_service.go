package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"taxmitra/internal/csvexport"
	"taxmitra/internal/port"
	"taxmitra/internal/tax"
	"taxmitra/internal/xlsxreport"
)

// ExportService streams calculation history and reports to a writer.
type ExportService interface {
	ExportHistoryCSV(ctx context.Context, userID uuid.UUID, w io.Writer) error
	ExportReportXLSX(ctx context.Context, userID uuid.UUID, financialYear string, w io.Writer) error
}

type exportService struct {
	calcRepo port.CalculationRepository
}

// NewExportService creates a new ExportService implementation.
func NewExportService(calcRepo port.CalculationRepository) ExportService {
	return &exportService{calcRepo: calcRepo}
}

func (s *exportService) ExportHistoryCSV(ctx context.Context, userID uuid.UUID, w io.Writer) error {
	calcs, err := s.calcRepo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	if _, err := w.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("export.ExportHistoryCSV BOM: %w", err)
	}

	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("export.ExportHistoryCSV header: %w", err)
	}
	if err := cw.WriteCalculations(calcs); err != nil {
		return fmt.Errorf("export.ExportHistoryCSV rows: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export.ExportHistoryCSV flush: %w", err)
	}
	return nil
}

func (s *exportService) ExportReportXLSX(ctx context.Context, userID uuid.UUID, financialYear string, w io.Writer) error {
	calc, err := s.calcRepo.GetByUserYear(ctx, userID, financialYear)
	if err != nil {
		return err
	}

	var result tax.Result
	if err := json.Unmarshal(calc.Result, &result); err != nil {
		return fmt.Errorf("export.ExportReportXLSX snapshot: %w", err)
	}

	history, err := s.calcRepo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}

	builder := xlsxreport.NewBuilder()
	if err := builder.AddResult(&result); err != nil {
		return err
	}
	if err := builder.AddHistory(history); err != nil {
		return err
	}
	return builder.Write(w)
}
