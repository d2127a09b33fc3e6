package tax

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"taxmitra/internal/domain"
)

// Suggestion is a ranked tax-optimization recommendation. Suggestions are
// ephemeral: recomputed on every call, never stored authoritatively.
type Suggestion struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	PotentialSaving decimal.Decimal `json:"potential_saving"`
	Applicability   int             `json:"applicability"`
	Complexity      int             `json:"complexity"`
}

const (
	regimeSwitchApplicability = 100
	regimeSwitchComplexity    = 20
)

// Suggest compares regimes and scans deduction headroom, returning
// suggestions sorted descending by potential saving. The sort is stable, so
// equal savings keep rule order.
func (e *Engine) Suggest(financialYear string, in Input) ([]Suggestion, error) {
	cmp, err := e.Compare(financialYear, in)
	if err != nil {
		return nil, err
	}

	var suggestions []Suggestion

	selected := cmp.Old
	other := cmp.New
	if in.Regime == domain.RegimeNew {
		selected, other = other, selected
	}
	if other.TotalTax.LessThan(selected.TotalTax) {
		suggestions = append(suggestions, Suggestion{
			ID:    "regime-switch",
			Title: fmt.Sprintf("Switch to the %s regime", in.Regime.Other()),
			Description: fmt.Sprintf(
				"Your %s-regime tax for %s is %s; the %s regime comes to %s on the same income.",
				in.Regime, financialYear, selected.TotalTax.StringFixed(2),
				in.Regime.Other(), other.TotalTax.StringFixed(2)),
			PotentialSaving: selected.TotalTax.Sub(other.TotalTax),
			Applicability:   regimeSwitchApplicability,
			Complexity:      regimeSwitchComplexity,
		})
	}

	if in.Regime == domain.RegimeOld {
		headroom, err := e.headroomSuggestions(financialYear, in, selected)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, headroom...)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].PotentialSaving.GreaterThan(suggestions[j].PotentialSaving)
	})
	return suggestions, nil
}

// headroomSuggestions emits one suggestion per deduction cap with unused
// room. Declared deductions fill caps in schedule order, so headroom is the
// unfilled remainder of each cap. Savings are estimated at the filer's
// marginal rate, cess-adjusted.
func (e *Engine) headroomSuggestions(financialYear string, in Input, current *Result) ([]Suggestion, error) {
	sch, err := e.schedules.Get(financialYear, in.Regime)
	if err != nil {
		return nil, err
	}
	if current.TaxableIncome.IsZero() || current.MarginalRate.IsZero() {
		return nil, nil
	}

	cessFactor := decimal.NewFromInt(1).Add(sch.CessRate)
	declared := in.OtherDeductions

	var suggestions []Suggestion
	for _, dc := range sch.DeductionCaps {
		used := decimal.Min(declared, dc.Cap)
		declared = declared.Sub(used)
		headroom := dc.Cap.Sub(used)
		if !headroom.IsPositive() {
			continue
		}
		// An extra deduction cannot save tax on more income than remains taxable.
		saveable := decimal.Min(headroom, current.TaxableIncome)
		saving := saveable.Mul(current.MarginalRate).Mul(cessFactor).Round(2)
		if !saving.IsPositive() {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			ID:    "deduction-" + dc.ID,
			Title: fmt.Sprintf("Use remaining %s headroom", dc.Title),
			Description: fmt.Sprintf("%s You have %s of unused headroom against the %s cap.",
				dc.Description, headroom.StringFixed(0), dc.Cap.StringFixed(0)),
			PotentialSaving: saving,
			Applicability:   dc.Applicability,
			Complexity:      dc.Complexity,
		})
	}
	return suggestions, nil
}
