package numeric

import "golang.org/x/exp/constraints"

// The checked operations below yield zero when the operation overflows the
// integer type or divides by zero.

func checkedAdd[T constraints.Integer](a, b T) T {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return 0
	}

	return r
}

func checkedSub[T constraints.Integer](a, b T) T {
	r := a - b
	if (b > 0 && r > a) || (b < 0 && r < a) {
		return 0
	}

	return r
}

func checkedMul[T constraints.Integer](a, b T) T {
	if a == 0 || b == 0 {
		return 0
	}

	r := a * b
	if r/b != a || (a < 0 && b < 0 && r <= 0) {
		return 0
	}

	return r
}

func checkedDiv[T constraints.Integer](a, b T) T {
	if b == 0 {
		return 0
	}

	r := a / b
	if a < 0 && b < 0 && r < 0 {
		// most negative value divided by -1
		return 0
	}

	return r
}

func checkedRem[T constraints.Integer](a, b T) T {
	if b == 0 {
		return 0
	}

	if a < 0 && b < 0 && a/b < 0 {
		return 0
	}

	return a % b
}
