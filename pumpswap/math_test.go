package pumpswap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMulDiv(t *testing.T) {
	tests := []struct {
		name     string
		a, b, c  uint64
		expected uint64
		err      error
	}{
		{name: "exact division", a: 10, b: 6, c: 3, expected: 20},
		{name: "rounds down", a: 10, b: 10, c: 3, expected: 33},
		{name: "zero numerator", a: 0, b: 100, c: 7, expected: 0},
		{name: "product above 64 bits still fits after division", a: math.MaxUint64, b: 1000, c: 2000, expected: math.MaxUint64 / 2},
		{name: "division by zero", a: 1, b: 1, c: 0, err: ErrDivisionByZero},
		{name: "result does not fit", a: math.MaxUint64, b: math.MaxUint64, c: 1, err: ErrMultiplicationOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mulDiv(tt.a, tt.b, tt.c)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMulDivCeil(t *testing.T) {
	tests := []struct {
		name     string
		a, b, c  uint64
		expected uint64
		err      error
	}{
		{name: "exact division stays exact", a: 10, b: 6, c: 3, expected: 20},
		{name: "remainder rounds up", a: 10, b: 10, c: 3, expected: 34},
		{name: "one lamport still rounds up", a: 1, b: 1, c: 10_000, expected: 1},
		{name: "division by zero", a: 1, b: 1, c: 0, err: ErrDivisionByZero},
		{name: "result does not fit", a: math.MaxUint64, b: 2, c: 1, err: ErrMultiplicationOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mulDivCeil(tt.a, tt.b, tt.c)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCheckedAdd(t *testing.T) {
	sum, err := checkedAdd(40, 2)
	assert.NoError(t, err)
	assert.Equal(t, uint64(42), sum)

	_, err = checkedAdd(math.MaxUint64, 1)
	assert.ErrorIs(t, err, ErrAdditionOverflow)
}

func TestCheckedSub(t *testing.T) {
	diff, err := checkedSub(42, 2)
	assert.NoError(t, err)
	assert.Equal(t, uint64(40), diff)

	_, err = checkedSub(0, 1)
	assert.ErrorIs(t, err, ErrSubtractionUnderflow)
}
