package tax

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"taxmitra/internal/domain"
)

//go:embed schedules.yaml
var defaultSchedulesYAML []byte

// Slab is a single progressive-tax bracket. A zero To marks the unbounded
// top slab.
type Slab struct {
	From decimal.Decimal `json:"from"`
	To   decimal.Decimal `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}

// Unbounded reports whether the slab has no upper bound.
func (s Slab) Unbounded() bool {
	return s.To.IsZero()
}

// SurchargeTier maps a taxable-income threshold to a surcharge rate.
// Tiers are ordered ascending; the highest crossed threshold wins.
type SurchargeTier struct {
	Above decimal.Decimal `json:"above"`
	Rate  decimal.Decimal `json:"rate"`
}

// DeductionCap describes an itemized-deduction category and its statutory
// cap, used for headroom suggestions under the old regime.
type DeductionCap struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Cap           decimal.Decimal `json:"cap"`
	Applicability int             `json:"applicability"`
	Complexity    int             `json:"complexity"`
}

// Schedule holds all computation parameters for one regime in one financial
// year. Schedules are configuration data, versioned by financial-year string;
// rates and thresholds are never engine constants.
type Schedule struct {
	FinancialYear             string
	Regime                    domain.Regime
	Slabs                     []Slab
	StandardDeduction         decimal.Decimal
	AllowsItemizedDeductions  bool
	SeniorExemptionLimit      decimal.Decimal
	SuperSeniorExemptionLimit decimal.Decimal
	RebateThreshold           decimal.Decimal
	RebateAmount              decimal.Decimal
	CessRate                  decimal.Decimal
	SurchargeTiers            []SurchargeTier
	DeductionCaps             []DeductionCap
}

const (
	seniorAge      = 60
	superSeniorAge = 80
)

// SlabsForAge returns the slab table adjusted for the filer's age. Under
// schedules that define senior exemption limits, the zero-rate slab widens to
// the applicable limit and any slab fully absorbed by it disappears.
func (sch *Schedule) SlabsForAge(age int) []Slab {
	limit := decimal.Zero
	if age >= superSeniorAge && !sch.SuperSeniorExemptionLimit.IsZero() {
		limit = sch.SuperSeniorExemptionLimit
	} else if age >= seniorAge && !sch.SeniorExemptionLimit.IsZero() {
		limit = sch.SeniorExemptionLimit
	}
	if limit.IsZero() || len(sch.Slabs) == 0 || limit.LessThanOrEqual(sch.Slabs[0].To) {
		return sch.Slabs
	}

	adjusted := []Slab{{From: decimal.Zero, To: limit, Rate: decimal.Zero}}
	for _, s := range sch.Slabs {
		if s.Rate.IsZero() {
			continue
		}
		if !s.Unbounded() && s.To.LessThanOrEqual(limit) {
			continue
		}
		from := s.From
		if from.LessThan(limit) {
			from = limit
		}
		adjusted = append(adjusted, Slab{From: from, To: s.To, Rate: s.Rate})
	}
	return adjusted
}

// SurchargeRate returns the surcharge rate for the given taxable income,
// zero below the lowest tier threshold.
func (sch *Schedule) SurchargeRate(taxableIncome decimal.Decimal) decimal.Decimal {
	rate := decimal.Zero
	for _, tier := range sch.SurchargeTiers {
		if taxableIncome.GreaterThan(tier.Above) {
			rate = tier.Rate
		}
	}
	return rate
}

func (sch *Schedule) validate() error {
	if len(sch.Slabs) == 0 {
		return fmt.Errorf("%w: %s/%s has no slabs", domain.ErrInvalidSchedule, sch.FinancialYear, sch.Regime)
	}
	if !sch.Slabs[0].From.IsZero() {
		return fmt.Errorf("%w: %s/%s first slab must start at zero", domain.ErrInvalidSchedule, sch.FinancialYear, sch.Regime)
	}
	one := decimal.NewFromInt(1)
	for i, s := range sch.Slabs {
		if s.Rate.IsNegative() || s.Rate.GreaterThan(one) {
			return fmt.Errorf("%w: %s/%s slab %d rate %s outside [0,1]", domain.ErrInvalidSchedule, sch.FinancialYear, sch.Regime, i, s.Rate)
		}
		last := i == len(sch.Slabs)-1
		if last {
			if !s.Unbounded() {
				return fmt.Errorf("%w: %s/%s top slab must be unbounded", domain.ErrInvalidSchedule, sch.FinancialYear, sch.Regime)
			}
			continue
		}
		if s.Unbounded() {
			return fmt.Errorf("%w: %s/%s slab %d is unbounded but not last", domain.ErrInvalidSchedule, sch.FinancialYear, sch.Regime, i)
		}
		if s.To.LessThanOrEqual(s.From) {
			return fmt.Errorf("%w: %s/%s slab %d upper bound %s not above lower bound %s", domain.ErrInvalidSchedule, sch.FinancialYear, sch.Regime, i, s.To, s.From)
		}
		if !sch.Slabs[i+1].From.Equal(s.To) {
			return fmt.Errorf("%w: %s/%s slabs %d and %d are not contiguous", domain.ErrInvalidSchedule, sch.FinancialYear, sch.Regime, i, i+1)
		}
	}
	prev := decimal.Zero
	for i, tier := range sch.SurchargeTiers {
		if i > 0 && tier.Above.LessThanOrEqual(prev) {
			return fmt.Errorf("%w: %s/%s surcharge tiers not ascending", domain.ErrInvalidSchedule, sch.FinancialYear, sch.Regime)
		}
		prev = tier.Above
	}
	return nil
}

// ScheduleSet maps financial-year strings to per-regime schedules.
type ScheduleSet struct {
	years map[string]map[domain.Regime]*Schedule
}

// Get returns the schedule for the regime and financial year, failing loudly
// when no table is configured. It never falls back to another year.
func (set *ScheduleSet) Get(financialYear string, regime domain.Regime) (*Schedule, error) {
	regimes, ok := set.years[financialYear]
	if !ok {
		return nil, fmt.Errorf("%w: year %q", domain.ErrScheduleNotFound, financialYear)
	}
	sch, ok := regimes[regime]
	if !ok {
		return nil, fmt.Errorf("%w: year %q regime %q", domain.ErrScheduleNotFound, financialYear, regime)
	}
	return sch, nil
}

// Years returns the configured financial years in ascending order.
func (set *ScheduleSet) Years() []string {
	years := make([]string, 0, len(set.years))
	for y := range set.years {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}

// YAML wire types. Amounts are plain numbers in the file and converted to
// decimal on load.
type scheduleFileYAML struct {
	Years map[string]map[string]scheduleYAML `yaml:"years"`
}

type scheduleYAML struct {
	Slabs                     []slabYAML          `yaml:"slabs"`
	StandardDeduction         float64             `yaml:"standard_deduction"`
	AllowsItemizedDeductions  bool                `yaml:"allows_itemized_deductions"`
	SeniorExemptionLimit      float64             `yaml:"senior_exemption_limit"`
	SuperSeniorExemptionLimit float64             `yaml:"super_senior_exemption_limit"`
	RebateThreshold           float64             `yaml:"rebate_threshold"`
	RebateAmount              float64             `yaml:"rebate_amount"`
	CessRate                  float64             `yaml:"cess_rate"`
	SurchargeTiers            []surchargeTierYAML `yaml:"surcharge_tiers"`
	DeductionCaps             []deductionCapYAML  `yaml:"deduction_caps"`
}

type slabYAML struct {
	UpTo float64 `yaml:"upto"` // zero or absent = unbounded top slab
	Rate float64 `yaml:"rate"`
}

type surchargeTierYAML struct {
	Above float64 `yaml:"above"`
	Rate  float64 `yaml:"rate"`
}

type deductionCapYAML struct {
	ID            string  `yaml:"id"`
	Title         string  `yaml:"title"`
	Description   string  `yaml:"description"`
	Cap           float64 `yaml:"cap"`
	Applicability int     `yaml:"applicability"`
	Complexity    int     `yaml:"complexity"`
}

// ParseScheduleSet parses and validates a YAML schedule document.
func ParseScheduleSet(data []byte) (*ScheduleSet, error) {
	var file scheduleFileYAML
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSchedule, err)
	}
	if len(file.Years) == 0 {
		return nil, fmt.Errorf("%w: no years defined", domain.ErrInvalidSchedule)
	}

	set := &ScheduleSet{years: make(map[string]map[domain.Regime]*Schedule, len(file.Years))}
	for year, regimes := range file.Years {
		set.years[year] = make(map[domain.Regime]*Schedule, len(regimes))
		for regimeName, raw := range regimes {
			regime := domain.Regime(regimeName)
			if !regime.Valid() {
				return nil, fmt.Errorf("%w: year %q has unknown regime %q", domain.ErrInvalidSchedule, year, regimeName)
			}
			sch, err := raw.toSchedule(year, regime)
			if err != nil {
				return nil, err
			}
			set.years[year][regime] = sch
		}
	}
	return set, nil
}

func (raw scheduleYAML) toSchedule(year string, regime domain.Regime) (*Schedule, error) {
	sch := &Schedule{
		FinancialYear:             year,
		Regime:                    regime,
		StandardDeduction:         decimal.NewFromFloat(raw.StandardDeduction),
		AllowsItemizedDeductions:  raw.AllowsItemizedDeductions,
		SeniorExemptionLimit:      decimal.NewFromFloat(raw.SeniorExemptionLimit),
		SuperSeniorExemptionLimit: decimal.NewFromFloat(raw.SuperSeniorExemptionLimit),
		RebateThreshold:           decimal.NewFromFloat(raw.RebateThreshold),
		RebateAmount:              decimal.NewFromFloat(raw.RebateAmount),
		CessRate:                  decimal.NewFromFloat(raw.CessRate),
	}
	from := decimal.Zero
	for _, s := range raw.Slabs {
		slab := Slab{From: from, To: decimal.NewFromFloat(s.UpTo), Rate: decimal.NewFromFloat(s.Rate)}
		sch.Slabs = append(sch.Slabs, slab)
		from = slab.To
	}
	for _, t := range raw.SurchargeTiers {
		sch.SurchargeTiers = append(sch.SurchargeTiers, SurchargeTier{
			Above: decimal.NewFromFloat(t.Above),
			Rate:  decimal.NewFromFloat(t.Rate),
		})
	}
	for _, c := range raw.DeductionCaps {
		sch.DeductionCaps = append(sch.DeductionCaps, DeductionCap{
			ID:            c.ID,
			Title:         c.Title,
			Description:   c.Description,
			Cap:           decimal.NewFromFloat(c.Cap),
			Applicability: c.Applicability,
			Complexity:    c.Complexity,
		})
	}
	if err := sch.validate(); err != nil {
		return nil, err
	}
	return sch, nil
}

// DefaultScheduleSet returns the schedules embedded with the binary.
func DefaultScheduleSet() (*ScheduleSet, error) {
	return ParseScheduleSet(defaultSchedulesYAML)
}

// LoadScheduleSet reads schedules from an external YAML file, allowing
// future-year updates without a code change.
func LoadScheduleSet(path string) (*ScheduleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schedule file: %w", err)
	}
	return ParseScheduleSet(data)
}
