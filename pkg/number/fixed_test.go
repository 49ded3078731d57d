package number

import (
	"testing"

	"dealer/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulRay(t *testing.T) {
	assert.Equal(t, "150", MulRay(Decimal("100"), Decimal("1.5")).String())
	// truncated to wad
	assert.Equal(t, "0.333333333333333333", MulRay(Decimal("1"), Decimal("0.3333333333333333333333333333")).String())
}

func TestDivRay(t *testing.T) {
	q, err := DivRay(Decimal("1"), Decimal("3"))
	require.Nil(t, err)
	assert.Equal(t, "0.333333333333333333", q.String())

	_, err = DivRay(Decimal("1"), decimal.Zero)
	assert.Equal(t, ErrZeroFactor, err)
}

func TestDivRoundUp(t *testing.T) {
	q, err := DivRoundUp(Decimal("1"), Decimal("3"), 2)
	require.Nil(t, err)
	assert.Equal(t, "0.34", q.String())

	q, err = DivRoundUp(Decimal("1.2"), Decimal("1.2"), RayPrecision)
	require.Nil(t, err)
	assert.Equal(t, "1", q.String())

	_, err = DivRoundUp(Decimal("1"), decimal.Zero, 2)
	assert.Equal(t, ErrZeroFactor, err)
}

func TestRoundTrip(t *testing.T) {
	factors := []string{"1", "1.05", "1.123456789012345678901234567", "2.5"}
	amounts := []string{"0", "1", "100", "0.000000000000000001", "123456.789012345678901234"}

	for _, f := range factors {
		for _, a := range amounts {
			x := Wad(Decimal(a))
			back, err := DivRay(MulRay(x, Decimal(f)), Decimal(f))
			require.Nil(t, err)
			assert.True(t, x.Sub(back).Abs().LessThanOrEqual(Unit), "factor %s amount %s got %s", f, a, back)
		}
	}
}

func TestAddSub(t *testing.T) {
	v, err := Add(Decimal("1"), Decimal("2"))
	require.Nil(t, err)
	assert.Equal(t, "3", v.String())

	_, err = Add(MaxAmount, Unit)
	assert.Equal(t, ErrOverflow, err)

	v, err = Add(MaxAmount.Sub(Unit), Unit)
	require.Nil(t, err)
	assert.True(t, v.Equal(MaxAmount))
	// 46 integer digits, 18 fractional: fits decimal(64,18)
	assert.Equal(t, "9999999999999999999999999999999999999999999999.999999999999999999", MaxAmount.StringFixed(WadPrecision))

	_, err = Add(Decimal("-1"), Decimal("2"))
	assert.Equal(t, ErrNegative, err)

	v, err = Sub(Decimal("3"), Decimal("3"))
	require.Nil(t, err)
	assert.True(t, v.IsZero())

	_, err = Sub(Decimal("3"), Decimal("3.000000000000000001"))
	assert.ErrorIs(t, err, core.ErrInsufficientBalance)
}
