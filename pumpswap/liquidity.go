package pumpswap

// DepositLPOutResult describes the token requirements for minting an
// exact LP amount.
type DepositLPOutResult struct {
	BaseIn     uint64
	QuoteIn    uint64
	MaxBaseIn  uint64
	MaxQuoteIn uint64
}

// DepositBaseInResult describes a deposit specified by the base amount
// the depositor wants to add.
type DepositBaseInResult struct {
	QuoteIn    uint64
	LPOut      uint64
	MaxBaseIn  uint64
	MaxQuoteIn uint64
}

// WithdrawLPInResult describes the tokens returned for burning an exact
// LP amount.
type WithdrawLPInResult struct {
	BaseOut     uint64
	QuoteOut    uint64
	MinBaseOut  uint64
	MinQuoteOut uint64
}

// DepositLPOut prices a deposit that mints an exact amount of LP tokens.
// Both token requirements round up in the pool's favor. A zero LP amount
// is priced, not rejected, and requires nothing.
func DepositLPOut(pool PoolState, lpTokenAmountOut uint64, slippagePercent uint8) (DepositLPOutResult, error) {
	if pool.LPSupply == 0 {
		return DepositLPOutResult{}, ErrZeroLPSupply
	}
	if slippagePercent > 100 {
		return DepositLPOutResult{}, ErrSlippageOutOfRange
	}

	baseIn, err := mulDivCeil(pool.BaseReserve, lpTokenAmountOut, pool.LPSupply)
	if err != nil {
		return DepositLPOutResult{}, err
	}
	quoteIn, err := mulDivCeil(pool.QuoteReserve, lpTokenAmountOut, pool.LPSupply)
	if err != nil {
		return DepositLPOutResult{}, err
	}

	maxBaseIn, err := applySlippageUp(baseIn, slippagePercent)
	if err != nil {
		return DepositLPOutResult{}, err
	}
	maxQuoteIn, err := applySlippageUp(quoteIn, slippagePercent)
	if err != nil {
		return DepositLPOutResult{}, err
	}

	return DepositLPOutResult{
		BaseIn:     baseIn,
		QuoteIn:    quoteIn,
		MaxBaseIn:  maxBaseIn,
		MaxQuoteIn: maxQuoteIn,
	}, nil
}

// DepositBaseIn prices a deposit specified by the exact base amount the
// depositor wants to add. The matching quote amount and the LP tokens
// minted both round down. A pool with no base reserve fails with
// ErrDivisionByZero.
func DepositBaseIn(pool PoolState, baseAmountIn uint64, slippagePercent uint8) (DepositBaseInResult, error) {
	if slippagePercent > 100 {
		return DepositBaseInResult{}, ErrSlippageOutOfRange
	}

	quoteIn, err := mulDiv(baseAmountIn, pool.QuoteReserve, pool.BaseReserve)
	if err != nil {
		return DepositBaseInResult{}, err
	}
	lpOut, err := mulDiv(baseAmountIn, pool.LPSupply, pool.BaseReserve)
	if err != nil {
		return DepositBaseInResult{}, err
	}

	maxBaseIn, err := applySlippageUp(baseAmountIn, slippagePercent)
	if err != nil {
		return DepositBaseInResult{}, err
	}
	maxQuoteIn, err := applySlippageUp(quoteIn, slippagePercent)
	if err != nil {
		return DepositBaseInResult{}, err
	}

	return DepositBaseInResult{
		QuoteIn:    quoteIn,
		LPOut:      lpOut,
		MaxBaseIn:  maxBaseIn,
		MaxQuoteIn: maxQuoteIn,
	}, nil
}

// WithdrawLPIn prices the redemption of an exact LP amount. Both token
// outputs round down in the pool's favor.
func WithdrawLPIn(pool PoolState, lpTokenAmountIn uint64, slippagePercent uint8) (WithdrawLPInResult, error) {
	if lpTokenAmountIn == 0 {
		return WithdrawLPInResult{}, ErrZeroLPAmount
	}
	if pool.LPSupply == 0 {
		return WithdrawLPInResult{}, ErrZeroLPSupply
	}
	if slippagePercent > 100 {
		return WithdrawLPInResult{}, ErrSlippageOutOfRange
	}

	baseOut, err := mulDiv(pool.BaseReserve, lpTokenAmountIn, pool.LPSupply)
	if err != nil {
		return WithdrawLPInResult{}, err
	}
	quoteOut, err := mulDiv(pool.QuoteReserve, lpTokenAmountIn, pool.LPSupply)
	if err != nil {
		return WithdrawLPInResult{}, err
	}

	minBaseOut, err := applySlippageDown(baseOut, slippagePercent)
	if err != nil {
		return WithdrawLPInResult{}, err
	}
	minQuoteOut, err := applySlippageDown(quoteOut, slippagePercent)
	if err != nil {
		return WithdrawLPInResult{}, err
	}

	return WithdrawLPInResult{
		BaseOut:     baseOut,
		QuoteOut:    quoteOut,
		MinBaseOut:  minBaseOut,
		MinQuoteOut: minQuoteOut,
	}, nil
}
