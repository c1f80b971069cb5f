package numeric

import (
	"math"
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
)

func TestArithmeticCoercesToReceiverKind(t *testing.T) {
	assert.Equal(t, FromInt(7), FromInt(5).Add(FromDouble(2.9)))
	assert.Equal(t, FromDouble(7.5), FromDouble(5).Add(FromDouble(2.5)))
	assert.Equal(t, FromUint(3), FromUint(5).Sub(FromInt(2)))
	assert.Equal(t, FromFloat(10), FromFloat(5).MultiplyPerTwo())
	assert.Equal(t, KindFloat, FromFloat(1).Div(FromInt(2)).Kind())
}

func TestIntegerOverflowYieldsZero(t *testing.T) {
	assert.True(t, FromInt(math.MaxInt32).Add(FromInt(1)).IsZero())
	assert.True(t, FromInt(math.MinInt32).Sub(FromInt(1)).IsZero())
	assert.True(t, FromUint(0).Sub(FromUint(1)).IsZero())
	assert.True(t, FromInt(math.MinInt32).Mul(FromInt(-1)).IsZero())
	assert.True(t, FromInt(math.MinInt32).Div(FromInt(-1)).IsZero())
	assert.True(t, FromInt(1<<20).Mul(FromInt(1<<20)).IsZero())
	assert.True(t, FromInt(math.MinInt32).Neg().IsZero())
	assert.Equal(t, FromInt(-6), FromInt(3).Mul(FromInt(-2)))
}

func TestDivisionByZero(t *testing.T) {
	assert.True(t, FromInt(10).Div(FromInt(0)).IsZero())
	assert.True(t, FromUint(10).Rem(FromUint(0)).IsZero())
	assert.True(t, FromDouble(1).Div(FromDouble(0)).IsPositiveInfinity())
	assert.True(t, FromDouble(0).Div(FromDouble(0)).IsNaN())
}

func TestNegLeavesUintUnchanged(t *testing.T) {
	assert.Equal(t, FromUint(4), FromUint(4).Neg())
	assert.Equal(t, FromInt(-4), FromInt(4).Neg())
}

func TestBitwiseThroughFloatingPoint(t *testing.T) {
	assert.Equal(t, FromDouble(2), FromDouble(6.7).And(FromDouble(3)))
	assert.Equal(t, FromDouble(7), FromDouble(6).Or(FromInt(1)))
	assert.Equal(t, FromFloat(5), FromFloat(6).Xor(FromFloat(3)))
	assert.Equal(t, FromDouble(8), FromDouble(1).Shl(FromDouble(3)))
}

func TestBitwiseOutOfRangeAndNaNYieldZero(t *testing.T) {
	assert.True(t, NaN(KindNumber).And(FromDouble(0xff)).IsZero())
	assert.True(t, FromDouble(math.Inf(1)).Or(FromDouble(0)).IsZero())
	assert.True(t, FromDouble(-1).And(FromDouble(1)).IsZero())
	assert.True(t, FromDouble(1e20).Or(FromDouble(0)).IsZero())
	assert.True(t, FromUint(1).Shl(FromUint(32)).IsZero())
	assert.True(t, FromInt(1).Shl(FromInt(40)).IsZero())
	assert.Equal(t, FromInt(8), FromInt(8).Shl(FromInt(-1)))
}

func TestUnsignedShiftOfInt(t *testing.T) {
	assert.Equal(t, FromInt(2147483644), FromInt(-8).UShr(FromInt(1)))
	assert.True(t, FromInt(-8).UShr(FromInt(0)).IsZero())
	assert.Equal(t, FromInt(-4), FromInt(-8).Shr(FromInt(1)))
}

func TestForceConversions(t *testing.T) {
	got := []float64{
		float64(FromDouble(math.Inf(1)).ForceInt()),
		float64(FromDouble(math.Inf(-1)).ForceInt()),
		float64(FromDouble(math.NaN()).ForceInt()),
		float64(FromDouble(math.Inf(1)).ForceUint()),
		float64(FromDouble(-3).ForceUint()),
		float64(FromDouble(3e10).ForceInt()),
		float64(FromDouble(-7.9).ForceInt()),
		float64(FromUint(math.MaxUint32).ForceInt()),
	}
	want := []float64{
		math.MaxInt32,
		math.MinInt32,
		0,
		math.MaxUint32,
		0,
		0,
		-7,
		0,
	}

	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}
}

func TestConvertKind(t *testing.T) {
	n := FromInt(5).ConvertKind(KindNumber)
	v, ok := n.AsDouble()
	assert.True(t, ok)
	assert.Equal(t, 5.0, v)

	u := FromDouble(7.2).ConvertKind(KindUint)
	uv, ok := u.AsUint()
	assert.True(t, ok)
	assert.Equal(t, uint32(7), uv)

	_, ok = u.AsInt()
	assert.False(t, ok)
}

func TestBitHelpers(t *testing.T) {
	flags := FromUint(0)
	flags = flags.ApplyBits(FromUint(4), true)
	flags = flags.ApplyBits(FromUint(1), true)
	assert.Equal(t, FromUint(5), flags)
	assert.True(t, flags.IncludesBits(FromUint(4)))

	flags = flags.ApplyBits(FromUint(4), false)
	assert.Equal(t, FromUint(1), flags)
	assert.Equal(t, FromUint(1), flags.EraseBits(FromUint(2)))

	assert.True(t, FromUint(64).IsPowerOfTwo())
	assert.False(t, FromInt(6).IsPowerOfTwo())
	assert.False(t, FromInt(0).IsPowerOfTwo())
	assert.True(t, FromDouble(16).IsPowerOfTwo())
	assert.Equal(t, FromUint(math.MaxUint32-1), FromUint(1).Not())
}

func TestLimits(t *testing.T) {
	assert.True(t, MinValue(KindNumber).IsNegativeInfinity())
	assert.True(t, MaxValue(KindFloat).IsPositiveInfinity())
	assert.Equal(t, FromInt(math.MinInt32), MinValue(KindInt))
	assert.Equal(t, FromUint(math.MaxUint32), MaxValue(KindUint))
	assert.True(t, One(KindFloat).IsOne())
	assert.True(t, Zero(KindUint).IsZero())
	assert.True(t, NaN(KindFloat).IsNaN())
	assert.Panics(t, func() { NaN(KindInt) })
}

func TestString(t *testing.T) {
	assert.Equal(t, "5", FromDouble(5).String())
	assert.Equal(t, "0.5", FromDouble(0.5).String())
	assert.Equal(t, "NaN", NaN(KindNumber).String())
	assert.Equal(t, "-Infinity", MinValue(KindNumber).String())
	assert.Equal(t, "-3", FromInt(-3).String())
	assert.Equal(t, "4294967295", MaxValue(KindUint).String())
}
