package pumpswap

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountToDecimal(t *testing.T) {
	assert.True(t, AmountToDecimal(1_500_000_000, WSOLDecimals).Equal(decimal.RequireFromString("1.5")))
	assert.True(t, AmountToDecimal(1, PumpTokenDecimals).Equal(decimal.RequireFromString("0.000001")))
	assert.True(t, AmountToDecimal(123, 0).Equal(decimal.NewFromInt(123)))
}

func TestDecimalToAmount(t *testing.T) {
	amount, err := DecimalToAmount(decimal.RequireFromString("1.5"), WSOLDecimals)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_500_000_000), amount)

	// Precision beyond the mint's decimals is dropped, not rounded.
	amount, err = DecimalToAmount(decimal.RequireFromString("1.2345678909"), WSOLDecimals)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_234_567_890), amount)

	_, err = DecimalToAmount(decimal.RequireFromString("-0.1"), WSOLDecimals)
	assert.Error(t, err)

	_, err = DecimalToAmount(decimal.RequireFromString("18446744073709551616"), 0)
	assert.Error(t, err)
}

func TestPoolPrice(t *testing.T) {
	pool := PoolState{
		BaseReserve:  1_000_000,     // 1.0 tokens at 6 decimals
		QuoteReserve: 2_000_000_000, // 2.0 SOL at 9 decimals
	}

	price, err := PoolPrice(pool, PumpTokenDecimals, WSOLDecimals)
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromInt(2)), "got %s", price)

	_, err = PoolPrice(PoolState{}, PumpTokenDecimals, WSOLDecimals)
	assert.ErrorIs(t, err, ErrZeroReserves)
}
