package pumpswap

import "math/bits"

// mulDiv returns a*b/c rounded down. The product is held in 128 bits, so
// only results that do not fit in a uint64 fail.
func mulDiv(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, ErrDivisionByZero
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= c {
		return 0, ErrMultiplicationOverflow
	}
	quo, _ := bits.Div64(hi, lo, c)
	return quo, nil
}

// mulDivCeil returns a*b/c rounded up.
func mulDivCeil(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, ErrDivisionByZero
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= c {
		return 0, ErrMultiplicationOverflow
	}
	quo, rem := bits.Div64(hi, lo, c)
	if rem == 0 {
		return quo, nil
	}
	return checkedAdd(quo, 1)
}

func checkedAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrAdditionOverflow
	}
	return sum, nil
}

func checkedSub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrSubtractionUnderflow
	}
	return diff, nil
}
