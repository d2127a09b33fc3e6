package xlsxreport

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"taxmitra/internal/csvexport"
	"taxmitra/internal/domain"
	"taxmitra/internal/tax"
)

var hundredDec = decimal.NewFromInt(100)

const (
	summarySheet   = "Summary"
	breakdownSheet = "Slab Breakdown"
	historySheet   = "History"
)

// Builder assembles a tax report workbook.
type Builder struct {
	f *excelize.File
}

// NewBuilder creates an empty report workbook.
func NewBuilder() *Builder {
	return &Builder{f: excelize.NewFile()}
}

// AddResult writes the Summary and Slab Breakdown sheets for one computed
// result.
func (b *Builder) AddResult(res *tax.Result) error {
	if err := b.f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("xlsxreport: renaming sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Financial Year", res.FinancialYear},
		{"Regime", string(res.Regime)},
		{"Gross Income", res.GrossIncome.InexactFloat64()},
		{"Standard Deduction", res.StandardDeduction.InexactFloat64()},
		{"Itemized Deductions", res.ItemizedDeductions.InexactFloat64()},
		{"Taxable Income", res.TaxableIncome.InexactFloat64()},
		{"Base Tax", res.BaseTax.InexactFloat64()},
		{"Rebate", res.Rebate.InexactFloat64()},
		{"Cess", res.Cess.InexactFloat64()},
		{"Surcharge", res.Surcharge.InexactFloat64()},
		{"Total Tax", res.TotalTax.InexactFloat64()},
		{"Effective Rate (%)", res.EffectiveRate.InexactFloat64()},
		{"Marginal Rate (%)", res.MarginalRate.Mul(hundredDec).InexactFloat64()},
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := b.f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("xlsxreport: summary row %d: %w", i+1, err)
		}
	}
	if err := b.f.SetColWidth(summarySheet, "A", "A", 24); err != nil {
		return fmt.Errorf("xlsxreport: summary width: %w", err)
	}

	if _, err := b.f.NewSheet(breakdownSheet); err != nil {
		return fmt.Errorf("xlsxreport: breakdown sheet: %w", err)
	}
	header := []interface{}{"From", "To", "Rate (%)", "Taxed Amount", "Tax"}
	if err := b.f.SetSheetRow(breakdownSheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsxreport: breakdown header: %w", err)
	}
	for i, slab := range res.Breakdown {
		to := interface{}("")
		if slab.To != nil {
			to = slab.To.InexactFloat64()
		}
		row := []interface{}{
			slab.From.InexactFloat64(),
			to,
			slab.Rate.Mul(hundredDec).InexactFloat64(),
			slab.TaxedAmount.InexactFloat64(),
			slab.Tax.InexactFloat64(),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := b.f.SetSheetRow(breakdownSheet, cell, &row); err != nil {
			return fmt.Errorf("xlsxreport: breakdown row %d: %w", i+2, err)
		}
	}
	return nil
}

// AddHistory writes the History sheet with the user's saved calculations.
func (b *Builder) AddHistory(calcs []domain.TaxCalculation) error {
	if _, err := b.f.NewSheet(historySheet); err != nil {
		return fmt.Errorf("xlsxreport: history sheet: %w", err)
	}
	header := []interface{}{"Financial Year", "Regime", "Gross Income", "Other Deductions", "Total Tax", "Saved At"}
	if err := b.f.SetSheetRow(historySheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsxreport: history header: %w", err)
	}
	for i, calc := range calcs {
		row := []interface{}{
			calc.FinancialYear,
			string(calc.Regime),
			calc.GrossIncome.InexactFloat64(),
			calc.OtherDeductions.InexactFloat64(),
			calc.TotalTax.InexactFloat64(),
			calc.UpdatedAt.Format(time.RFC3339),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := b.f.SetSheetRow(historySheet, cell, &row); err != nil {
			return fmt.Errorf("xlsxreport: history row %d: %w", i+2, err)
		}
	}
	return nil
}

// Write serializes the workbook to w and closes it.
func (b *Builder) Write(w io.Writer) error {
	defer b.f.Close()
	if err := b.f.Write(w); err != nil {
		return fmt.Errorf("xlsxreport: writing workbook: %w", err)
	}
	return nil
}

// BuildFilename returns a sanitized report filename.
// Format: {sanitized_name}_{YYYY-MM-DD}.xlsx
func BuildFilename(name string) string {
	sanitized := csvexport.SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.xlsx", sanitized, date)
}
