package numeric

import (
	"math"
	"strconv"
)

// Kind is the representation of a numeric value: one of the enumerated numeric
// kinds below.  Each kind corresponds to one of the language's numeric types.
type Kind int

// Enumeration of numeric kinds.
const (
	KindNumber Kind = iota // `Number`: 64-bit floating point.
	KindFloat              // `float`: 32-bit floating point.
	KindInt                // `int`: signed 32-bit integer.
	KindUint               // `uint`: unsigned 32-bit integer.
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	default:
		// KindUint
		return "uint"
	}
}

// IsFloatingPoint returns whether the kind is one of the floating point kinds.
func (k Kind) IsFloatingPoint() bool {
	return k == KindNumber || k == KindFloat
}

// Number is a numeric value represented as one of the kinds `Number`, `float`,
// `int` or `uint`.  Numbers are immutable values: every operation returns a new
// number of the same kind as its receiver.
type Number struct {
	kind Kind

	f64 float64
	f32 float32
	i32 int32
	u32 uint32
}

// FromDouble returns a `Number` value.
func FromDouble(v float64) Number {
	return Number{kind: KindNumber, f64: v}
}

// FromFloat returns a `float` value.
func FromFloat(v float32) Number {
	return Number{kind: KindFloat, f32: v}
}

// FromInt returns an `int` value.
func FromInt(v int32) Number {
	return Number{kind: KindInt, i32: v}
}

// FromUint returns a `uint` value.
func FromUint(v uint32) Number {
	return Number{kind: KindUint, u32: v}
}

// Kind returns the representation of the number.
func (n Number) Kind() Kind {
	return n.kind
}

// -----------------------------------------------------------------------------

// Zero returns the zero value of the given kind.
func Zero(k Kind) Number {
	switch k {
	case KindNumber:
		return FromDouble(0)
	case KindFloat:
		return FromFloat(0)
	case KindInt:
		return FromInt(0)
	default:
		return FromUint(0)
	}
}

// One returns the value one of the given kind.
func One(k Kind) Number {
	switch k {
	case KindNumber:
		return FromDouble(1)
	case KindFloat:
		return FromFloat(1)
	case KindInt:
		return FromInt(1)
	default:
		return FromUint(1)
	}
}

// NaN returns the not-a-number value of a floating point kind.  Calling it
// with an integer kind is a programming error.
func NaN(k Kind) Number {
	switch k {
	case KindNumber:
		return FromDouble(math.NaN())
	case KindFloat:
		return FromFloat(float32(math.NaN()))
	}

	panic("numeric: kind " + k.String() + " does not support NaN")
}

// MinValue returns the minimum value of the given kind.  For floating point
// kinds this is negative infinity.
func MinValue(k Kind) Number {
	switch k {
	case KindNumber:
		return FromDouble(math.Inf(-1))
	case KindFloat:
		return FromFloat(float32(math.Inf(-1)))
	case KindInt:
		return FromInt(math.MinInt32)
	default:
		return FromUint(0)
	}
}

// MaxValue returns the maximum value of the given kind.  For floating point
// kinds this is positive infinity.
func MaxValue(k Kind) Number {
	switch k {
	case KindNumber:
		return FromDouble(math.Inf(1))
	case KindFloat:
		return FromFloat(float32(math.Inf(1)))
	case KindInt:
		return FromInt(math.MaxInt32)
	default:
		return FromUint(math.MaxUint32)
	}
}

// -----------------------------------------------------------------------------

// Add returns n + rhs.  The right-hand side is coerced to the kind of n.
func (n Number) Add(rhs Number) Number {
	switch n.kind {
	case KindNumber:
		return FromDouble(n.f64 + rhs.ForceDouble())
	case KindFloat:
		return FromFloat(n.f32 + rhs.ForceFloat())
	case KindInt:
		return FromInt(checkedAdd(n.i32, rhs.ForceInt()))
	default:
		return FromUint(checkedAdd(n.u32, rhs.ForceUint()))
	}
}

// Sub returns n - rhs.
func (n Number) Sub(rhs Number) Number {
	switch n.kind {
	case KindNumber:
		return FromDouble(n.f64 - rhs.ForceDouble())
	case KindFloat:
		return FromFloat(n.f32 - rhs.ForceFloat())
	case KindInt:
		return FromInt(checkedSub(n.i32, rhs.ForceInt()))
	default:
		return FromUint(checkedSub(n.u32, rhs.ForceUint()))
	}
}

// Mul returns n * rhs.
func (n Number) Mul(rhs Number) Number {
	switch n.kind {
	case KindNumber:
		return FromDouble(n.f64 * rhs.ForceDouble())
	case KindFloat:
		return FromFloat(n.f32 * rhs.ForceFloat())
	case KindInt:
		return FromInt(checkedMul(n.i32, rhs.ForceInt()))
	default:
		return FromUint(checkedMul(n.u32, rhs.ForceUint()))
	}
}

// Div returns n / rhs.  Integer division by zero yields zero.
func (n Number) Div(rhs Number) Number {
	switch n.kind {
	case KindNumber:
		return FromDouble(n.f64 / rhs.ForceDouble())
	case KindFloat:
		return FromFloat(n.f32 / rhs.ForceFloat())
	case KindInt:
		return FromInt(checkedDiv(n.i32, rhs.ForceInt()))
	default:
		return FromUint(checkedDiv(n.u32, rhs.ForceUint()))
	}
}

// Rem returns n % rhs.  Integer remainder by zero yields zero.
func (n Number) Rem(rhs Number) Number {
	switch n.kind {
	case KindNumber:
		return FromDouble(math.Mod(n.f64, rhs.ForceDouble()))
	case KindFloat:
		return FromFloat(float32(math.Mod(float64(n.f32), float64(rhs.ForceFloat()))))
	case KindInt:
		return FromInt(checkedRem(n.i32, rhs.ForceInt()))
	default:
		return FromUint(checkedRem(n.u32, rhs.ForceUint()))
	}
}

// Neg returns -n.  Unsigned values are returned unchanged.
func (n Number) Neg() Number {
	switch n.kind {
	case KindNumber:
		return FromDouble(-n.f64)
	case KindFloat:
		return FromFloat(-n.f32)
	case KindInt:
		return FromInt(checkedSub(0, n.i32))
	default:
		return n
	}
}

// -----------------------------------------------------------------------------
// Bitwise operations on floating point kinds truncate both operands to an
// unsigned 32-bit intermediate (see truncUint32) and convert the result back.

// And returns n & rhs.
func (n Number) And(rhs Number) Number {
	return n.bitwise(rhs, func(a, b uint32) uint32 { return a & b }, func(a, b int32) int32 { return a & b })
}

// Or returns n | rhs.
func (n Number) Or(rhs Number) Number {
	return n.bitwise(rhs, func(a, b uint32) uint32 { return a | b }, func(a, b int32) int32 { return a | b })
}

// Xor returns n ^ rhs.
func (n Number) Xor(rhs Number) Number {
	return n.bitwise(rhs, func(a, b uint32) uint32 { return a ^ b }, func(a, b int32) int32 { return a ^ b })
}

// Shl returns n << rhs.  Shift counts outside of [0, 32) yield zero for
// unsigned and floating point kinds; a negative count leaves an `int`
// unchanged.
func (n Number) Shl(rhs Number) Number {
	return n.bitwise(rhs, func(a, b uint32) uint32 {
		if b >= 32 {
			return 0
		}
		return a << b
	}, func(a, b int32) int32 {
		if b < 0 {
			return a
		} else if b >= 32 {
			return 0
		}
		return a << uint32(b)
	})
}

// Shr returns n >> rhs with sign extension for `int`.
func (n Number) Shr(rhs Number) Number {
	return n.bitwise(rhs, func(a, b uint32) uint32 {
		if b >= 32 {
			return 0
		}
		return a >> b
	}, func(a, b int32) int32 {
		if b < 0 {
			return a
		} else if b >= 32 {
			return 0
		}
		return a >> uint32(b)
	})
}

// UShr returns n >>> rhs.  For `int`, the bits are shifted as unsigned and the
// result is zero if it does not fit back into an `int`.
func (n Number) UShr(rhs Number) Number {
	return n.bitwise(rhs, func(a, b uint32) uint32 {
		if b >= 32 {
			return 0
		}
		return a >> b
	}, func(a, b int32) int32 {
		if b < 0 || b >= 32 {
			return 0
		}
		r := uint32(a) >> uint32(b)
		if r > math.MaxInt32 {
			return 0
		}
		return int32(r)
	})
}

// Not returns the bitwise complement of n.
func (n Number) Not() Number {
	switch n.kind {
	case KindNumber:
		return FromDouble(float64(^truncUint32(n.f64)))
	case KindFloat:
		return FromFloat(float32(^truncUint32(float64(n.f32))))
	case KindInt:
		return FromInt(^n.i32)
	default:
		return FromUint(^n.u32)
	}
}

func (n Number) bitwise(rhs Number, uop func(a, b uint32) uint32, iop func(a, b int32) int32) Number {
	switch n.kind {
	case KindNumber:
		return FromDouble(float64(uop(truncUint32(n.f64), truncUint32(rhs.ForceDouble()))))
	case KindFloat:
		return FromFloat(float32(uop(truncUint32(float64(n.f32)), truncUint32(float64(rhs.ForceFloat())))))
	case KindInt:
		return FromInt(iop(n.i32, rhs.ForceInt()))
	default:
		return FromUint(uop(n.u32, rhs.ForceUint()))
	}
}

// truncUint32 truncates a floating point value toward zero into an unsigned
// 32-bit integer.  NaN, infinities and values outside of the uint range
// truncate to zero.
func truncUint32(v float64) uint32 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	t := math.Trunc(v)
	if t < 0 || t > math.MaxUint32 {
		return 0
	}

	return uint32(t)
}

// -----------------------------------------------------------------------------

// IsZero returns whether n is zero.
func (n Number) IsZero() bool {
	switch n.kind {
	case KindNumber:
		return n.f64 == 0
	case KindFloat:
		return n.f32 == 0
	case KindInt:
		return n.i32 == 0
	default:
		return n.u32 == 0
	}
}

// IsOne returns whether n is one.
func (n Number) IsOne() bool {
	switch n.kind {
	case KindNumber:
		return n.f64 == 1
	case KindFloat:
		return n.f32 == 1
	case KindInt:
		return n.i32 == 1
	default:
		return n.u32 == 1
	}
}

// MultiplyPerTwo returns n * 2.
func (n Number) MultiplyPerTwo() Number {
	return n.Mul(FromInt(2))
}

// IncreaseByOne returns n + 1.
func (n Number) IncreaseByOne() Number {
	return n.Add(FromInt(1))
}

// ApplyBits performs a bitwise OR with bits if value is true and erases the
// bits with EraseBits otherwise.
func (n Number) ApplyBits(bits Number, value bool) Number {
	if value {
		return n.Or(bits)
	}

	return n.EraseBits(bits)
}

// EraseBits erases bits if they intersect the receiver.
func (n Number) EraseBits(bits Number) Number {
	if n.IncludesBits(bits) {
		return n.Xor(bits)
	}

	return n
}

// IncludesBits returns whether n and bits have at least one bit in common.
// Both numbers must be of the same kind.
func (n Number) IncludesBits(bits Number) bool {
	if n.kind != bits.kind {
		panic("numeric: IncludesBits between " + n.kind.String() + " and " + bits.kind.String())
	}

	switch n.kind {
	case KindNumber:
		return truncUint32(n.f64)&truncUint32(bits.f64) != 0
	case KindFloat:
		return truncUint32(float64(n.f32))&truncUint32(float64(bits.f32)) != 0
	case KindInt:
		return n.i32&bits.i32 != 0
	default:
		return n.u32&bits.u32 != 0
	}
}

// IsPowerOfTwo returns whether n is a power of two.
func (n Number) IsPowerOfTwo() bool {
	switch n.kind {
	case KindNumber:
		v := truncUint32(n.f64)
		return v != 0 && v&(v-1) == 0
	case KindFloat:
		v := truncUint32(float64(n.f32))
		return v != 0 && v&(v-1) == 0
	case KindInt:
		return n.i32 > 0 && n.i32&(n.i32-1) == 0
	default:
		return n.u32 != 0 && n.u32&(n.u32-1) == 0
	}
}

// -----------------------------------------------------------------------------

// ConvertKind converts n to the given kind.
func (n Number) ConvertKind(k Kind) Number {
	switch k {
	case KindNumber:
		return FromDouble(n.ForceDouble())
	case KindFloat:
		return FromFloat(n.ForceFloat())
	case KindInt:
		return FromInt(n.ForceInt())
	default:
		return FromUint(n.ForceUint())
	}
}

// IsNaN returns whether n is not-a-number.
func (n Number) IsNaN() bool {
	switch n.kind {
	case KindNumber:
		return math.IsNaN(n.f64)
	case KindFloat:
		return math.IsNaN(float64(n.f32))
	}

	return false
}

// IsNegativeInfinity returns whether n is negative infinity.
func (n Number) IsNegativeInfinity() bool {
	switch n.kind {
	case KindNumber:
		return math.IsInf(n.f64, -1)
	case KindFloat:
		return math.IsInf(float64(n.f32), -1)
	}

	return false
}

// IsPositiveInfinity returns whether n is positive infinity.
func (n Number) IsPositiveInfinity() bool {
	switch n.kind {
	case KindNumber:
		return math.IsInf(n.f64, 1)
	case KindFloat:
		return math.IsInf(float64(n.f32), 1)
	}

	return false
}

// AsDouble returns the value of a `Number`.
func (n Number) AsDouble() (float64, bool) {
	return n.f64, n.kind == KindNumber
}

// AsFloat returns the value of a `float`.
func (n Number) AsFloat() (float32, bool) {
	return n.f32, n.kind == KindFloat
}

// AsInt returns the value of an `int`.
func (n Number) AsInt() (int32, bool) {
	return n.i32, n.kind == KindInt
}

// AsUint returns the value of a `uint`.
func (n Number) AsUint() (uint32, bool) {
	return n.u32, n.kind == KindUint
}

// ForceDouble returns n as a 64-bit floating point value.
func (n Number) ForceDouble() float64 {
	switch n.kind {
	case KindNumber:
		return n.f64
	case KindFloat:
		return float64(n.f32)
	case KindInt:
		return float64(n.i32)
	default:
		return float64(n.u32)
	}
}

// ForceFloat returns n as a 32-bit floating point value.
func (n Number) ForceFloat() float32 {
	switch n.kind {
	case KindNumber:
		return float32(n.f64)
	case KindFloat:
		return n.f32
	case KindInt:
		return float32(n.i32)
	default:
		return float32(n.u32)
	}
}

// ForceInt returns n as a signed 32-bit integer.  Infinities saturate to the
// bounds of the range; NaN and finite values outside of the range yield zero.
func (n Number) ForceInt() int32 {
	switch n.kind {
	case KindNumber:
		return floatToInt32(n.f64)
	case KindFloat:
		return floatToInt32(float64(n.f32))
	case KindInt:
		return n.i32
	default:
		if n.u32 > math.MaxInt32 {
			return 0
		}
		return int32(n.u32)
	}
}

// ForceUint returns n as an unsigned 32-bit integer.  Infinities saturate to
// the bounds of the range; NaN and finite values outside of the range yield
// zero.
func (n Number) ForceUint() uint32 {
	switch n.kind {
	case KindNumber:
		return floatToUint32(n.f64)
	case KindFloat:
		return floatToUint32(float64(n.f32))
	case KindInt:
		if n.i32 < 0 {
			return 0
		}
		return uint32(n.i32)
	default:
		return n.u32
	}
}

func floatToInt32(v float64) int32 {
	switch {
	case math.IsInf(v, -1):
		return math.MinInt32
	case math.IsInf(v, 1):
		return math.MaxInt32
	case math.IsNaN(v):
		return 0
	}

	t := math.Trunc(v)
	if t < math.MinInt32 || t > math.MaxInt32 {
		return 0
	}

	return int32(t)
}

func floatToUint32(v float64) uint32 {
	switch {
	case math.IsInf(v, -1):
		return 0
	case math.IsInf(v, 1):
		return math.MaxUint32
	}

	return truncUint32(v)
}

// -----------------------------------------------------------------------------

func (n Number) String() string {
	switch n.kind {
	case KindNumber:
		return formatFloat(n.f64, 64)
	case KindFloat:
		return formatFloat(float64(n.f32), 32)
	case KindInt:
		return strconv.FormatInt(int64(n.i32), 10)
	default:
		return strconv.FormatUint(uint64(n.u32), 10)
	}
}

func formatFloat(v float64, bitSize int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	return strconv.FormatFloat(v, 'g', -1, bitSize)
}
