package pumpswap

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Decimal places of the mints this program usually pairs.
const (
	WSOLDecimals      uint8 = 9
	PumpTokenDecimals uint8 = 6
)

// AmountToDecimal converts a raw token amount to its human-readable
// form.
func AmountToDecimal(amount uint64, decimals uint8) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), -int32(decimals))
}

// DecimalToAmount converts a human-readable amount back to raw token
// units, truncating precision beyond the mint's decimals.
func DecimalToAmount(value decimal.Decimal, decimals uint8) (uint64, error) {
	if value.IsNegative() {
		return 0, fmt.Errorf("amount cannot be negative: %s", value)
	}
	shifted := value.Shift(int32(decimals)).Truncate(0).BigInt()
	if !shifted.IsUint64() {
		return 0, fmt.Errorf("amount does not fit in 64 bits: %s", value)
	}
	return shifted.Uint64(), nil
}

// PoolPrice returns the spot price implied by the reserves, expressed as
// quote tokens per base token.
func PoolPrice(pool PoolState, baseDecimals, quoteDecimals uint8) (decimal.Decimal, error) {
	if pool.BaseReserve == 0 || pool.QuoteReserve == 0 {
		return decimal.Zero, ErrZeroReserves
	}
	base := AmountToDecimal(pool.BaseReserve, baseDecimals)
	quote := AmountToDecimal(pool.QuoteReserve, quoteDecimals)
	return quote.Div(base), nil
}
