// Command taxcalc computes income tax liability offline from the compiled-in
// slab schedules. It needs no database or network.
// Usage: go run ./cmd/taxcalc -income 1500000 -year 2024-25 -regime new
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"taxmitra/internal/domain"
	"taxmitra/internal/tax"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		income     = flag.Float64("income", 0, "gross annual income in INR")
		deductions = flag.Float64("deductions", 0, "itemized deductions in INR (old regime)")
		year       = flag.String("year", "2024-25", "financial year")
		regime     = flag.String("regime", "new", "tax regime: old or new")
		age        = flag.Int("age", 30, "taxpayer age")
		salaried   = flag.Bool("salaried", true, "apply the standard deduction")
		compare    = flag.Bool("compare", false, "compute both regimes and recommend one")
	)
	flag.Parse()

	schedules, err := tax.DefaultScheduleSet()
	if err != nil {
		return fmt.Errorf("loading schedules: %w", err)
	}
	engine := tax.NewEngine(schedules)

	in := tax.Input{
		GrossIncome:     decimal.NewFromFloat(*income),
		OtherDeductions: decimal.NewFromFloat(*deductions),
		Regime:          domain.Regime(*regime),
		IsSalaried:      *salaried,
		Age:             *age,
	}

	if *compare {
		cmp, err := engine.Compare(*year, in)
		if err != nil {
			return err
		}
		printResult("OLD REGIME", cmp.Old)
		printResult("NEW REGIME", cmp.New)
		fmt.Printf("\nRecommended: %s regime (saves %s)\n", cmp.Recommended, rupees(cmp.Saving))
		return nil
	}

	res, err := engine.Calculate(*year, in)
	if err != nil {
		return err
	}
	printResult(fmt.Sprintf("%s REGIME, FY %s", res.Regime, res.FinancialYear), res)
	return nil
}

func printResult(title string, res *tax.Result) {
	fmt.Printf("\n=== %s ===\n", title)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "From\tTo\tRate\tTaxed\tTax\n")
	for _, row := range res.Breakdown {
		to := "-"
		if row.To != nil {
			to = rupees(*row.To)
		}
		fmt.Fprintf(w, "%s\t%s\t%s%%\t%s\t%s\n",
			rupees(row.From), to,
			row.Rate.Mul(decimal.NewFromInt(100)).StringFixed(0),
			rupees(row.TaxedAmount), rupees(row.Tax))
	}
	w.Flush()

	fmt.Printf("\nGross income:       %s\n", rupees(res.GrossIncome))
	fmt.Printf("Standard deduction: %s\n", rupees(res.StandardDeduction))
	fmt.Printf("Other deductions:   %s\n", rupees(res.ItemizedDeductions))
	fmt.Printf("Taxable income:     %s\n", rupees(res.TaxableIncome))
	fmt.Printf("Base tax:           %s\n", rupees(res.BaseTax))
	if res.Rebate.IsPositive() {
		fmt.Printf("Rebate (87A):       -%s\n", rupees(res.Rebate))
	}
	if res.Surcharge.IsPositive() {
		fmt.Printf("Surcharge:          %s\n", rupees(res.Surcharge))
	}
	fmt.Printf("Cess:               %s\n", rupees(res.Cess))
	fmt.Printf("TOTAL TAX:          %s\n", rupees(res.TotalTax))
	fmt.Printf("Effective rate:     %s%%\n", res.EffectiveRate.Mul(decimal.NewFromInt(100)).StringFixed(2))
}

func rupees(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}
