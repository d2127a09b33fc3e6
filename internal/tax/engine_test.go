package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxmitra/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	set, err := DefaultScheduleSet()
	require.NoError(t, err)
	return NewEngine(set)
}

func TestCalculate_OldRegime_RebateZeroesTax(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Calculate("2024-25", Input{
		GrossIncome:     dec("600000"),
		OtherDeductions: dec("150000"),
		Regime:          domain.RegimeOld,
		IsSalaried:      true,
		Age:             30,
	})
	require.NoError(t, err)

	assert.True(t, res.TaxableIncome.Equal(dec("400000")), "taxable = %s", res.TaxableIncome)
	assert.True(t, res.BaseTax.Equal(dec("7500")), "base tax = %s", res.BaseTax)
	assert.True(t, res.Rebate.Equal(dec("7500")), "rebate = %s", res.Rebate)
	assert.True(t, res.Cess.IsZero(), "cess = %s", res.Cess)
	assert.True(t, res.Surcharge.IsZero(), "surcharge = %s", res.Surcharge)
	assert.True(t, res.TotalTax.IsZero(), "total = %s", res.TotalTax)
}

func TestCalculate_NewRegime_FY2024(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Calculate("2024-25", Input{
		GrossIncome: dec("1000000"),
		Regime:      domain.RegimeNew,
		IsSalaried:  true,
		Age:         30,
	})
	require.NoError(t, err)

	assert.True(t, res.TaxableIncome.Equal(dec("925000")), "taxable = %s", res.TaxableIncome)
	assert.True(t, res.BaseTax.Equal(dec("42500")), "base tax = %s", res.BaseTax)
	assert.True(t, res.Rebate.IsZero(), "rebate = %s", res.Rebate)
	assert.True(t, res.Cess.Equal(dec("1700")), "cess = %s", res.Cess)
	assert.True(t, res.Surcharge.IsZero(), "surcharge = %s", res.Surcharge)
	assert.True(t, res.TotalTax.Equal(dec("44200")), "total = %s", res.TotalTax)
	assert.True(t, res.EffectiveRate.Equal(dec("4.42")), "effective rate = %s", res.EffectiveRate)
}

func TestCalculate_NewRegime_IgnoresItemizedDeductions(t *testing.T) {
	e := newTestEngine(t)

	with, err := e.Calculate("2024-25", Input{
		GrossIncome:     dec("1000000"),
		OtherDeductions: dec("150000"),
		Regime:          domain.RegimeNew,
		IsSalaried:      true,
	})
	require.NoError(t, err)
	without, err := e.Calculate("2024-25", Input{
		GrossIncome: dec("1000000"),
		Regime:      domain.RegimeNew,
		IsSalaried:  true,
	})
	require.NoError(t, err)

	assert.True(t, with.TotalTax.Equal(without.TotalTax))
	assert.True(t, with.ItemizedDeductions.IsZero())
}

func TestCalculate_BreakdownSumsToBaseTax(t *testing.T) {
	e := newTestEngine(t)

	incomes := []string{"0", "250000", "500000", "925000", "1500000", "3200000", "6000000", "25000000"}
	for _, fy := range []string{"2023-24", "2024-25"} {
		for _, regime := range domain.Regimes {
			for _, income := range incomes {
				res, err := e.Calculate(fy, Input{
					GrossIncome: dec(income),
					Regime:      regime,
					IsSalaried:  true,
					Age:         30,
				})
				require.NoError(t, err)

				sum := decimal.Zero
				for _, row := range res.Breakdown {
					sum = sum.Add(row.Tax)
				}
				assert.True(t, sum.Equal(res.BaseTax),
					"%s/%s income %s: breakdown sum %s != base tax %s", fy, regime, income, sum, res.BaseTax)

				identity := res.BaseTax.Sub(res.Rebate).Add(res.Cess).Add(res.Surcharge)
				assert.True(t, identity.Equal(res.TotalTax),
					"%s/%s income %s: identity %s != total %s", fy, regime, income, identity, res.TotalTax)
			}
		}
	}
}

func TestCalculate_MonotonicInGrossIncome(t *testing.T) {
	e := newTestEngine(t)

	for _, regime := range domain.Regimes {
		prev := decimal.Zero
		for income := int64(0); income <= 10_000_000; income += 137_500 {
			res, err := e.Calculate("2024-25", Input{
				GrossIncome: decimal.NewFromInt(income),
				Regime:      regime,
				IsSalaried:  true,
				Age:         42,
			})
			require.NoError(t, err)
			assert.False(t, res.TotalTax.LessThan(prev),
				"%s income %d: total %s dropped below %s", regime, income, res.TotalTax, prev)
			prev = res.TotalTax
		}
	}
}

func TestCalculate_SurchargeTenPercentTier(t *testing.T) {
	e := newTestEngine(t)

	// Gross 60.5L salaried minus 50k standard deduction lands taxable income
	// exactly on 60L, inside the 10% surcharge tier.
	res, err := e.Calculate("2024-25", Input{
		GrossIncome: dec("6050000"),
		Regime:      domain.RegimeOld,
		IsSalaried:  true,
		Age:         45,
	})
	require.NoError(t, err)

	assert.True(t, res.TaxableIncome.Equal(dec("6000000")))
	assert.True(t, res.BaseTax.Equal(dec("1612500")), "base tax = %s", res.BaseTax)
	expected := res.BaseTax.Mul(dec("0.10"))
	assert.True(t, res.Surcharge.Equal(expected), "surcharge %s != %s", res.Surcharge, expected)
}

func TestCalculate_NoSurchargeBelowLowestTier(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Calculate("2024-25", Input{
		GrossIncome: dec("4800000"),
		Regime:      domain.RegimeOld,
		IsSalaried:  false,
		Age:         45,
	})
	require.NoError(t, err)
	assert.True(t, res.Surcharge.IsZero())
}

func TestCalculate_SeniorExemptionWidensZeroSlab(t *testing.T) {
	e := newTestEngine(t)

	base := Input{
		GrossIncome: dec("400000"),
		Regime:      domain.RegimeOld,
		IsSalaried:  false,
	}

	regular := base
	regular.Age = 45
	res, err := e.Calculate("2024-25", regular)
	require.NoError(t, err)
	assert.True(t, res.BaseTax.Equal(dec("7500")), "regular base tax = %s", res.BaseTax)

	senior := base
	senior.Age = 60
	res, err = e.Calculate("2024-25", senior)
	require.NoError(t, err)
	assert.True(t, res.BaseTax.Equal(dec("5000")), "senior base tax = %s", res.BaseTax)

	superSenior := base
	superSenior.Age = 80
	res, err = e.Calculate("2024-25", superSenior)
	require.NoError(t, err)
	assert.True(t, res.BaseTax.IsZero(), "super-senior base tax = %s", res.BaseTax)
}

func TestCalculate_ZeroIncome(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Calculate("2024-25", Input{Regime: domain.RegimeNew, IsSalaried: true})
	require.NoError(t, err)
	assert.True(t, res.TaxableIncome.IsZero())
	assert.True(t, res.TotalTax.IsZero())
	assert.True(t, res.EffectiveRate.IsZero())
	assert.Empty(t, res.Breakdown)
}

func TestCalculate_DeductionsExceedIncomeClampToZero(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Calculate("2024-25", Input{
		GrossIncome:     dec("200000"),
		OtherDeductions: dec("500000"),
		Regime:          domain.RegimeOld,
		IsSalaried:      true,
	})
	require.NoError(t, err)
	assert.True(t, res.TaxableIncome.IsZero())
	assert.True(t, res.TotalTax.IsZero())
}

func TestCalculate_InvalidInput(t *testing.T) {
	e := newTestEngine(t)

	cases := []struct {
		name string
		in   Input
	}{
		{"negative income", Input{GrossIncome: dec("-1"), Regime: domain.RegimeOld}},
		{"negative deductions", Input{OtherDeductions: dec("-1"), Regime: domain.RegimeOld}},
		{"negative age", Input{Age: -1, Regime: domain.RegimeOld}},
		{"unknown regime", Input{Regime: "flat"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Calculate("2024-25", tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidTaxInput)
		})
	}
}

func TestCalculate_UnknownYearFailsLoudly(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Calculate("1999-00", Input{GrossIncome: dec("500000"), Regime: domain.RegimeOld})
	assert.ErrorIs(t, err, domain.ErrScheduleNotFound)
}

func TestCompare_RecommendsCheaperRegime(t *testing.T) {
	e := newTestEngine(t)

	// High itemized deductions make the old regime cheaper.
	cmp, err := e.Compare("2024-25", Input{
		GrossIncome:     dec("1500000"),
		OtherDeductions: dec("450000"),
		Regime:          domain.RegimeNew,
		IsSalaried:      true,
		Age:             35,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RegimeOld, cmp.Recommended)
	expected := cmp.New.TotalTax.Sub(cmp.Old.TotalTax).Abs()
	assert.True(t, cmp.Saving.Equal(expected), "saving %s != %s", cmp.Saving, expected)
}

func TestCompare_NoDeductionsFavorsNewRegime(t *testing.T) {
	e := newTestEngine(t)

	cmp, err := e.Compare("2024-25", Input{
		GrossIncome: dec("1500000"),
		Regime:      domain.RegimeOld,
		IsSalaried:  true,
		Age:         35,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RegimeNew, cmp.Recommended)
	assert.True(t, cmp.New.TotalTax.LessThan(cmp.Old.TotalTax))
}

func TestMarginalRate_TracksSlab(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Calculate("2024-25", Input{
		GrossIncome: dec("900000"),
		Regime:      domain.RegimeOld,
		IsSalaried:  false,
		Age:         40,
	})
	require.NoError(t, err)
	assert.True(t, res.MarginalRate.Equal(dec("0.20")), "marginal = %s", res.MarginalRate)

	res, err = e.Calculate("2024-25", Input{
		GrossIncome: dec("1400000"),
		Regime:      domain.RegimeOld,
		IsSalaried:  false,
		Age:         40,
	})
	require.NoError(t, err)
	assert.True(t, res.MarginalRate.Equal(dec("0.30")), "marginal = %s", res.MarginalRate)
}
