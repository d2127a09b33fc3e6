package tax

import (
	"fmt"

	"github.com/shopspring/decimal"

	"taxmitra/internal/domain"
)

// skewTolerance bounds the rounding drift Reconcile will absorb. Anything
// larger signals broken bracket math upstream and is surfaced instead.
var skewTolerance = decimal.RequireFromString("0.01")

// Reconcile redistributes rounding drift between independently computed tax
// components and an authoritative total. The drift lands on the
// largest-magnitude component (first wins on ties) so the returned parts sum
// to expectedTotal exactly. The input slice is not mutated.
func Reconcile(parts []decimal.Decimal, expectedTotal decimal.Decimal) ([]decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range parts {
		sum = sum.Add(p)
	}
	drift := expectedTotal.Sub(sum)
	if drift.Abs().GreaterThan(skewTolerance) {
		return nil, fmt.Errorf("%w: drift %s against total %s", domain.ErrSkewToleranceExceeded, drift, expectedTotal)
	}

	out := append([]decimal.Decimal(nil), parts...)
	if drift.IsZero() {
		return out, nil
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no components to absorb drift %s", domain.ErrSkewToleranceExceeded, drift)
	}

	largest := 0
	for i := 1; i < len(out); i++ {
		if out[i].Abs().GreaterThan(out[largest].Abs()) {
			largest = i
		}
	}
	out[largest] = out[largest].Add(drift)
	return out, nil
}
