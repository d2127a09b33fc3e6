package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"taxmitra/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row for calculation history exports.
var columns = []string{
	"Financial Year",
	"Regime",
	"Gross Income",
	"Other Deductions",
	"Salaried",
	"Age",
	"Total Tax",
	"Saved At",
}

// Writer wraps csv.Writer for exporting calculation history as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteCalculations converts saved calculations to CSV rows and writes them.
func (w *Writer) WriteCalculations(calcs []domain.TaxCalculation) error {
	rows := lo.Map(calcs, func(c domain.TaxCalculation, _ int) []string {
		return calculationToRow(&c)
	})
	return w.csv.WriteAll(rows)
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func calculationToRow(c *domain.TaxCalculation) []string {
	return []string{
		c.FinancialYear,
		string(c.Regime),
		c.GrossIncome.StringFixed(2),
		c.OtherDeductions.StringFixed(2),
		formatBool(c.IsSalaried),
		strconv.Itoa(c.Age),
		c.TotalTax.StringFixed(2),
		c.UpdatedAt.Format(time.RFC3339),
	}
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition
// header. Format: {sanitized_name}_{YYYY-MM-DD}.csv
func BuildFilename(name string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
