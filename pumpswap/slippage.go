package pumpswap

// slippageScale gives the tolerance factors nine decimal digits of
// precision.
const slippageScale = 1_000_000_000

// applySlippageUp inflates amount by slippagePercent, rounding down.
// Used for the worst acceptable input of a swap or deposit.
func applySlippageUp(amount uint64, slippagePercent uint8) (uint64, error) {
	if slippagePercent > 100 {
		return 0, ErrSlippageOutOfRange
	}
	factor := (100 + uint64(slippagePercent)) * slippageScale / 100
	return mulDiv(amount, factor, slippageScale)
}

// applySlippageDown deflates amount by slippagePercent, rounding down.
// Used for the worst acceptable output of a swap or withdrawal.
func applySlippageDown(amount uint64, slippagePercent uint8) (uint64, error) {
	if slippagePercent > 100 {
		return 0, ErrSlippageOutOfRange
	}
	factor := (100 - uint64(slippagePercent)) * slippageScale / 100
	return mulDiv(amount, factor, slippageScale)
}
