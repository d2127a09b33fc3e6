package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxmitra/internal/domain"
)

func TestReconcile_DriftLandsOnLargestComponent(t *testing.T) {
	parts := []decimal.Decimal{dec("100.004"), dec("4.001"), decimal.Zero}
	out, err := Reconcile(parts, dec("104.00"))
	require.NoError(t, err)

	sum := decimal.Zero
	for _, p := range out {
		sum = sum.Add(p)
	}
	assert.True(t, sum.Equal(dec("104.00")), "sum = %s", sum)
	assert.True(t, out[0].Equal(dec("99.999")), "adjusted part = %s", out[0])
	assert.True(t, out[1].Equal(dec("4.001")))
	assert.True(t, out[2].IsZero())
}

func TestReconcile_InputNotMutated(t *testing.T) {
	parts := []decimal.Decimal{dec("100.004"), dec("4.001")}
	_, err := Reconcile(parts, dec("104.00"))
	require.NoError(t, err)
	assert.True(t, parts[0].Equal(dec("100.004")))
}

func TestReconcile_ZeroDriftReturnsCopy(t *testing.T) {
	parts := []decimal.Decimal{dec("100"), dec("4")}
	out, err := Reconcile(parts, dec("104"))
	require.NoError(t, err)
	assert.True(t, out[0].Equal(dec("100")))
	assert.True(t, out[1].Equal(dec("4")))
}

func TestReconcile_ExcessiveDriftSurfaced(t *testing.T) {
	parts := []decimal.Decimal{dec("100"), dec("4")}
	_, err := Reconcile(parts, dec("105"))
	assert.ErrorIs(t, err, domain.ErrSkewToleranceExceeded)
}

func TestReconcile_TieGoesToFirstLargest(t *testing.T) {
	parts := []decimal.Decimal{dec("50"), dec("50")}
	out, err := Reconcile(parts, dec("100.005"))
	require.NoError(t, err)
	assert.True(t, out[0].Equal(dec("50.005")), "first part = %s", out[0])
	assert.True(t, out[1].Equal(dec("50")))
}

func TestReconcile_NegativeMagnitudeCounts(t *testing.T) {
	parts := []decimal.Decimal{dec("10"), dec("-20")}
	out, err := Reconcile(parts, dec("-10.004"))
	require.NoError(t, err)
	assert.True(t, out[1].Equal(dec("-20.004")), "adjusted part = %s", out[1])
}
