package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxmitra/internal/domain"
)

func findSuggestion(suggestions []Suggestion, id string) *Suggestion {
	for i := range suggestions {
		if suggestions[i].ID == id {
			return &suggestions[i]
		}
	}
	return nil
}

func TestSuggest_RegimeSwitchSavingIsExactDelta(t *testing.T) {
	e := newTestEngine(t)

	in := Input{
		GrossIncome: dec("1500000"),
		Regime:      domain.RegimeOld,
		IsSalaried:  true,
		Age:         35,
	}
	suggestions, err := e.Suggest("2024-25", in)
	require.NoError(t, err)

	sw := findSuggestion(suggestions, "regime-switch")
	require.NotNil(t, sw, "expected a regime-switch suggestion")

	cmp, err := e.Compare("2024-25", in)
	require.NoError(t, err)
	delta := cmp.Old.TotalTax.Sub(cmp.New.TotalTax)
	assert.True(t, sw.PotentialSaving.Equal(delta), "saving %s != delta %s", sw.PotentialSaving, delta)
}

func TestSuggest_NoRegimeSwitchWhenSelectedIsCheaper(t *testing.T) {
	e := newTestEngine(t)

	suggestions, err := e.Suggest("2024-25", Input{
		GrossIncome: dec("1500000"),
		Regime:      domain.RegimeNew,
		IsSalaried:  true,
		Age:         35,
	})
	require.NoError(t, err)
	assert.Nil(t, findSuggestion(suggestions, "regime-switch"))
}

func TestSuggest_HeadroomFillsCapsInOrder(t *testing.T) {
	e := newTestEngine(t)

	// 100k declared fills 100k of the 150k 80C cap, leaving 50k of 80C
	// headroom and the full 80D and 80CCD(1B) caps.
	suggestions, err := e.Suggest("2024-25", Input{
		GrossIncome:     dec("2000000"),
		OtherDeductions: dec("100000"),
		Regime:          domain.RegimeOld,
		IsSalaried:      true,
		Age:             35,
	})
	require.NoError(t, err)

	c80 := findSuggestion(suggestions, "deduction-80C")
	require.NotNil(t, c80)
	// 50000 headroom at 30% marginal, cess-adjusted: 50000 * 0.30 * 1.04.
	assert.True(t, c80.PotentialSaving.Equal(dec("15600")), "80C saving = %s", c80.PotentialSaving)

	d80 := findSuggestion(suggestions, "deduction-80D")
	require.NotNil(t, d80)
	assert.True(t, d80.PotentialSaving.Equal(dec("7800")), "80D saving = %s", d80.PotentialSaving)

	nps := findSuggestion(suggestions, "deduction-80CCD1B")
	require.NotNil(t, nps)
	assert.True(t, nps.PotentialSaving.Equal(dec("15600")), "NPS saving = %s", nps.PotentialSaving)
}

func TestSuggest_SortedDescendingAndStable(t *testing.T) {
	e := newTestEngine(t)

	suggestions, err := e.Suggest("2024-25", Input{
		GrossIncome:     dec("2000000"),
		OtherDeductions: dec("100000"),
		Regime:          domain.RegimeOld,
		IsSalaried:      true,
		Age:             35,
	})
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)

	for i := 1; i < len(suggestions); i++ {
		assert.False(t, suggestions[i].PotentialSaving.GreaterThan(suggestions[i-1].PotentialSaving),
			"suggestions not sorted at %d", i)
	}

	// 80C and 80CCD(1B) tie at 15600; schedule order must hold.
	var tied []string
	for _, s := range suggestions {
		if s.PotentialSaving.Equal(dec("15600")) {
			tied = append(tied, s.ID)
		}
	}
	assert.Equal(t, []string{"deduction-80C", "deduction-80CCD1B"}, tied)
}

func TestSuggest_NewRegimeHasNoHeadroomSuggestions(t *testing.T) {
	e := newTestEngine(t)

	suggestions, err := e.Suggest("2024-25", Input{
		GrossIncome: dec("2000000"),
		Regime:      domain.RegimeNew,
		IsSalaried:  true,
		Age:         35,
	})
	require.NoError(t, err)
	for _, s := range suggestions {
		assert.Equal(t, "regime-switch", s.ID)
	}
}

func TestSuggest_ZeroIncomeYieldsNothing(t *testing.T) {
	e := newTestEngine(t)

	suggestions, err := e.Suggest("2024-25", Input{
		GrossIncome: decimal.Zero,
		Regime:      domain.RegimeOld,
		IsSalaried:  true,
	})
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}
