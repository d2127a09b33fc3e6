package tax

import (
	"fmt"

	"github.com/shopspring/decimal"

	"taxmitra/internal/domain"
)

// Input is one calculation request. Inputs are treated as immutable per call.
type Input struct {
	GrossIncome     decimal.Decimal `json:"gross_income"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	Regime          domain.Regime   `json:"regime"`
	IsSalaried      bool            `json:"is_salaried"`
	Age             int             `json:"age"`
}

// Validate rejects inputs before computation; callers must fix and retry.
func (in Input) Validate() error {
	if in.GrossIncome.IsNegative() {
		return fmt.Errorf("%w: gross income must not be negative", domain.ErrInvalidTaxInput)
	}
	if in.OtherDeductions.IsNegative() {
		return fmt.Errorf("%w: deductions must not be negative", domain.ErrInvalidTaxInput)
	}
	if in.Age < 0 {
		return fmt.Errorf("%w: age must not be negative", domain.ErrInvalidTaxInput)
	}
	if !in.Regime.Valid() {
		return fmt.Errorf("%w: unrecognized regime %q", domain.ErrInvalidTaxInput, in.Regime)
	}
	return nil
}

// SlabBreakdown is one row of the per-slab tax decomposition. To is nil for
// the unbounded top slab.
type SlabBreakdown struct {
	From        decimal.Decimal  `json:"from"`
	To          *decimal.Decimal `json:"to,omitempty"`
	Rate        decimal.Decimal  `json:"rate"`
	TaxedAmount decimal.Decimal  `json:"taxed_amount"`
	Tax         decimal.Decimal  `json:"tax"`
}

// Result is a completed tax computation. It is derived data and never
// mutated after construction. The sum of Breakdown taxes equals BaseTax, and
// TotalTax = BaseTax - Rebate + Cess + Surcharge.
type Result struct {
	FinancialYear      string          `json:"financial_year"`
	Regime             domain.Regime   `json:"regime"`
	GrossIncome        decimal.Decimal `json:"gross_income"`
	StandardDeduction  decimal.Decimal `json:"standard_deduction"`
	ItemizedDeductions decimal.Decimal `json:"itemized_deductions"`
	TaxableIncome      decimal.Decimal `json:"taxable_income"`
	Breakdown          []SlabBreakdown `json:"slab_breakdown"`
	BaseTax            decimal.Decimal `json:"base_tax"`
	Rebate             decimal.Decimal `json:"rebate"`
	Cess               decimal.Decimal `json:"cess"`
	Surcharge          decimal.Decimal `json:"surcharge"`
	TotalTax           decimal.Decimal `json:"total_tax"`
	EffectiveRate      decimal.Decimal `json:"effective_rate"`
	MarginalRate       decimal.Decimal `json:"marginal_rate"`
}

// Comparison holds the same input computed under both regimes.
type Comparison struct {
	Old         *Result         `json:"old"`
	New         *Result         `json:"new"`
	Recommended domain.Regime   `json:"recommended"`
	Saving      decimal.Decimal `json:"saving"`
}

// Engine computes income tax from injected slab schedules. It is stateless
// and safe for concurrent use.
type Engine struct {
	schedules *ScheduleSet
}

// NewEngine creates an Engine over the given schedule set.
func NewEngine(schedules *ScheduleSet) *Engine {
	return &Engine{schedules: schedules}
}

// Schedules exposes the configured schedule set.
func (e *Engine) Schedules() *ScheduleSet {
	return e.schedules
}

// Calculate computes the full tax result for one input under the schedule of
// the requested financial year and regime.
func (e *Engine) Calculate(financialYear string, in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	sch, err := e.schedules.Get(financialYear, in.Regime)
	if err != nil {
		return nil, err
	}
	return compute(sch, in), nil
}

// Compare computes the input under both regimes holding everything else
// fixed. Recommended is the regime with the lower total tax; the filer's
// selected regime wins ties.
func (e *Engine) Compare(financialYear string, in Input) (*Comparison, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	results := make(map[domain.Regime]*Result, 2)
	for _, regime := range domain.Regimes {
		alt := in
		alt.Regime = regime
		res, err := e.Calculate(financialYear, alt)
		if err != nil {
			return nil, err
		}
		results[regime] = res
	}

	cmp := &Comparison{
		Old:         results[domain.RegimeOld],
		New:         results[domain.RegimeNew],
		Recommended: in.Regime,
	}
	selected := results[in.Regime]
	other := results[in.Regime.Other()]
	if other.TotalTax.LessThan(selected.TotalTax) {
		cmp.Recommended = in.Regime.Other()
	}
	cmp.Saving = selected.TotalTax.Sub(other.TotalTax).Abs()
	return cmp, nil
}

func compute(sch *Schedule, in Input) *Result {
	res := &Result{
		FinancialYear: sch.FinancialYear,
		Regime:        sch.Regime,
		GrossIncome:   in.GrossIncome,
		BaseTax:       decimal.Zero,
		Rebate:        decimal.Zero,
	}

	if in.IsSalaried {
		res.StandardDeduction = sch.StandardDeduction
	} else {
		res.StandardDeduction = decimal.Zero
	}
	if sch.AllowsItemizedDeductions {
		res.ItemizedDeductions = in.OtherDeductions
	} else {
		res.ItemizedDeductions = decimal.Zero
	}

	taxable := in.GrossIncome.Sub(res.StandardDeduction).Sub(res.ItemizedDeductions)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	res.TaxableIncome = taxable

	slabs := sch.SlabsForAge(in.Age)
	remaining := taxable
	for _, slab := range slabs {
		if remaining.IsZero() {
			break
		}
		taxed := remaining
		if !slab.Unbounded() {
			width := slab.To.Sub(slab.From)
			taxed = decimal.Min(remaining, width)
		}
		tax := taxed.Mul(slab.Rate)
		row := SlabBreakdown{From: slab.From, Rate: slab.Rate, TaxedAmount: taxed, Tax: tax}
		if !slab.Unbounded() {
			to := slab.To
			row.To = &to
		}
		res.Breakdown = append(res.Breakdown, row)
		res.BaseTax = res.BaseTax.Add(tax)
		remaining = remaining.Sub(taxed)
	}

	res.MarginalRate = marginalRate(slabs, taxable)

	if taxable.LessThanOrEqual(sch.RebateThreshold) {
		res.Rebate = decimal.Min(res.BaseTax, sch.RebateAmount)
	}
	postRebate := res.BaseTax.Sub(res.Rebate)

	res.Cess = postRebate.Mul(sch.CessRate).Round(2)
	res.Surcharge = postRebate.Mul(sch.SurchargeRate(taxable)).Round(2)
	res.TotalTax = postRebate.Add(res.Cess).Add(res.Surcharge)

	if in.GrossIncome.IsPositive() {
		res.EffectiveRate = res.TotalTax.Div(in.GrossIncome).Mul(decimal.NewFromInt(100)).Round(4)
	} else {
		res.EffectiveRate = decimal.Zero
	}
	return res
}

// marginalRate returns the rate of the slab containing the taxable income.
func marginalRate(slabs []Slab, taxable decimal.Decimal) decimal.Decimal {
	if len(slabs) == 0 {
		return decimal.Zero
	}
	for _, slab := range slabs {
		if slab.Unbounded() || taxable.LessThanOrEqual(slab.To) {
			return slab.Rate
		}
	}
	return slabs[len(slabs)-1].Rate
}
