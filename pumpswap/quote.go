package pumpswap

import "github.com/gagliardetto/solana-go"

// PoolState is the snapshot every quoting function consumes: the current
// reserves and the fee schedule in force. Reserves come from the pool's
// token accounts, the fee schedule from the global config, and the
// coin creator from the pool account itself.
type PoolState struct {
	BaseReserve  uint64
	QuoteReserve uint64
	LPSupply     uint64

	LPFeeBasisPoints          uint64
	ProtocolFeeBasisPoints    uint64
	CoinCreatorFeeBasisPoints uint64

	// CoinCreator is the pool's creator-fee beneficiary. The zero
	// public key means the pool predates creator fees and none are
	// charged on sells.
	CoinCreator solana.PublicKey
}

// BuyBaseOutResult describes the cost of buying an exact base amount.
type BuyBaseOutResult struct {
	// RawQuoteIn is the constant-product cost before fees.
	RawQuoteIn uint64
	// QuoteIn is the cost including LP and protocol fees.
	QuoteIn uint64
	// MaxQuoteIn is QuoteIn inflated by the slippage tolerance.
	MaxQuoteIn uint64
}

// BuyQuoteInResult describes a buy specified by the quote amount spent.
type BuyQuoteInResult struct {
	// EffectiveQuoteIn is the portion of the input that reaches the
	// curve after fees are carved out.
	EffectiveQuoteIn uint64
	// BaseOut is the base amount the swap yields.
	BaseOut uint64
	// MaxQuoteIn is the full input inflated by the slippage tolerance.
	MaxQuoteIn uint64
}

// SellBaseInResult describes the proceeds of selling an exact base amount.
type SellBaseInResult struct {
	// RawQuoteOut is the constant-product proceeds before fees.
	RawQuoteOut uint64
	// QuoteOut is the proceeds after LP, protocol and creator fees.
	QuoteOut uint64
	// MinQuoteOut is QuoteOut deflated by the slippage tolerance.
	MinQuoteOut uint64
}

// SellQuoteOutResult describes a sell specified by the quote amount the
// seller wants to receive after fees.
type SellQuoteOutResult struct {
	// RawQuoteOut is the gross quote amount that must come off the
	// curve so that the desired net amount remains after fees.
	RawQuoteOut uint64
	// BaseIn is the base amount that must be sold.
	BaseIn uint64
	// MinQuoteOut is the desired amount deflated by the slippage
	// tolerance.
	MinQuoteOut uint64
}

// BuyBaseOut prices a buy of an exact base amount. The curve cost rounds
// up, fees are added on top, and only the LP and protocol fees apply to
// buys. slippagePercent widens the acceptable cost.
func BuyBaseOut(pool PoolState, baseAmountOut uint64, slippagePercent uint8) (BuyBaseOutResult, error) {
	if baseAmountOut == 0 {
		return BuyBaseOutResult{}, ErrZeroBaseAmount
	}
	if pool.BaseReserve == 0 || pool.QuoteReserve == 0 {
		return BuyBaseOutResult{}, ErrZeroReserves
	}
	if baseAmountOut >= pool.BaseReserve {
		return BuyBaseOutResult{}, ErrPoolDepleted
	}

	rawQuoteIn, err := mulDivCeil(pool.QuoteReserve, baseAmountOut, pool.BaseReserve-baseAmountOut)
	if err != nil {
		return BuyBaseOutResult{}, err
	}

	lpFee, err := Fee(rawQuoteIn, pool.LPFeeBasisPoints)
	if err != nil {
		return BuyBaseOutResult{}, err
	}
	protocolFee, err := Fee(rawQuoteIn, pool.ProtocolFeeBasisPoints)
	if err != nil {
		return BuyBaseOutResult{}, err
	}

	quoteIn, err := checkedAdd(rawQuoteIn, lpFee)
	if err != nil {
		return BuyBaseOutResult{}, err
	}
	quoteIn, err = checkedAdd(quoteIn, protocolFee)
	if err != nil {
		return BuyBaseOutResult{}, err
	}

	maxQuoteIn, err := applySlippageUp(quoteIn, slippagePercent)
	if err != nil {
		return BuyBaseOutResult{}, err
	}

	return BuyBaseOutResult{
		RawQuoteIn: rawQuoteIn,
		QuoteIn:    quoteIn,
		MaxQuoteIn: maxQuoteIn,
	}, nil
}

// BuyQuoteIn prices a buy specified by the quote amount spent. Fees are
// carved out of the input first, and the remainder is swapped at the
// curve rate, rounding the base output down.
func BuyQuoteIn(pool PoolState, quoteAmountIn uint64, slippagePercent uint8) (BuyQuoteInResult, error) {
	if quoteAmountIn == 0 {
		return BuyQuoteInResult{}, ErrZeroQuoteAmount
	}
	if pool.BaseReserve == 0 || pool.QuoteReserve == 0 {
		return BuyQuoteInResult{}, ErrZeroReserves
	}

	totalFeeBps, err := checkedAdd(pool.LPFeeBasisPoints, pool.ProtocolFeeBasisPoints)
	if err != nil {
		return BuyQuoteInResult{}, err
	}
	feeDenominator, err := checkedAdd(MaxFeeBasisPoints, totalFeeBps)
	if err != nil {
		return BuyQuoteInResult{}, err
	}
	effectiveQuoteIn, err := mulDiv(quoteAmountIn, MaxFeeBasisPoints, feeDenominator)
	if err != nil {
		return BuyQuoteInResult{}, err
	}

	newQuoteReserve, err := checkedAdd(pool.QuoteReserve, effectiveQuoteIn)
	if err != nil {
		return BuyQuoteInResult{}, err
	}
	baseOut, err := mulDiv(pool.BaseReserve, effectiveQuoteIn, newQuoteReserve)
	if err != nil {
		return BuyQuoteInResult{}, err
	}

	maxQuoteIn, err := applySlippageUp(quoteAmountIn, slippagePercent)
	if err != nil {
		return BuyQuoteInResult{}, err
	}

	return BuyQuoteInResult{
		EffectiveQuoteIn: effectiveQuoteIn,
		BaseOut:          baseOut,
		MaxQuoteIn:       maxQuoteIn,
	}, nil
}

// SellBaseIn prices a sell of an exact base amount. The curve proceeds
// round down and the LP, protocol and creator fees are deducted from
// them. A zero input is priced, not rejected, and yields zero proceeds.
func SellBaseIn(pool PoolState, baseAmountIn uint64, slippagePercent uint8) (SellBaseInResult, error) {
	if pool.BaseReserve == 0 || pool.QuoteReserve == 0 {
		return SellBaseInResult{}, ErrZeroReserves
	}

	newBaseReserve, err := checkedAdd(pool.BaseReserve, baseAmountIn)
	if err != nil {
		return SellBaseInResult{}, err
	}
	rawQuoteOut, err := mulDiv(pool.QuoteReserve, baseAmountIn, newBaseReserve)
	if err != nil {
		return SellBaseInResult{}, err
	}

	lpFee, err := Fee(rawQuoteOut, pool.LPFeeBasisPoints)
	if err != nil {
		return SellBaseInResult{}, err
	}
	protocolFee, err := Fee(rawQuoteOut, pool.ProtocolFeeBasisPoints)
	if err != nil {
		return SellBaseInResult{}, err
	}
	var creatorFee uint64
	if !pool.CoinCreator.IsZero() {
		creatorFee, err = Fee(rawQuoteOut, pool.CoinCreatorFeeBasisPoints)
		if err != nil {
			return SellBaseInResult{}, err
		}
	}

	quoteOut, err := checkedSub(rawQuoteOut, lpFee)
	if err != nil {
		return SellBaseInResult{}, err
	}
	quoteOut, err = checkedSub(quoteOut, protocolFee)
	if err != nil {
		return SellBaseInResult{}, err
	}
	quoteOut, err = checkedSub(quoteOut, creatorFee)
	if err != nil {
		return SellBaseInResult{}, err
	}

	minQuoteOut, err := applySlippageDown(quoteOut, slippagePercent)
	if err != nil {
		return SellBaseInResult{}, err
	}

	return SellBaseInResult{
		RawQuoteOut: rawQuoteOut,
		QuoteOut:    quoteOut,
		MinQuoteOut: minQuoteOut,
	}, nil
}

// SellQuoteOut prices a sell specified by the net quote amount the seller
// wants to receive. The gross curve amount and the base input both round
// up against the seller. A combined fee rate of exactly 100% fails with
// ErrDivisionByZero and anything above it with ErrSubtractionUnderflow.
func SellQuoteOut(pool PoolState, quoteAmountOut uint64, slippagePercent uint8) (SellQuoteOutResult, error) {
	if pool.BaseReserve == 0 || pool.QuoteReserve == 0 {
		return SellQuoteOutResult{}, ErrZeroReserves
	}
	if quoteAmountOut > pool.QuoteReserve {
		return SellQuoteOutResult{}, ErrPoolDepleted
	}

	creatorFeeBps := pool.CoinCreatorFeeBasisPoints
	if pool.CoinCreator.IsZero() {
		creatorFeeBps = 0
	}
	totalFeeBps, err := checkedAdd(pool.LPFeeBasisPoints, pool.ProtocolFeeBasisPoints)
	if err != nil {
		return SellQuoteOutResult{}, err
	}
	totalFeeBps, err = checkedAdd(totalFeeBps, creatorFeeBps)
	if err != nil {
		return SellQuoteOutResult{}, err
	}
	netRateBps, err := checkedSub(MaxFeeBasisPoints, totalFeeBps)
	if err != nil {
		return SellQuoteOutResult{}, err
	}

	rawQuoteOut, err := mulDivCeil(quoteAmountOut, MaxFeeBasisPoints, netRateBps)
	if err != nil {
		return SellQuoteOutResult{}, err
	}
	if rawQuoteOut >= pool.QuoteReserve {
		return SellQuoteOutResult{}, ErrPoolDepleted
	}

	remainingQuote, err := checkedSub(pool.QuoteReserve, rawQuoteOut)
	if err != nil {
		return SellQuoteOutResult{}, err
	}
	baseIn, err := mulDivCeil(pool.BaseReserve, rawQuoteOut, remainingQuote)
	if err != nil {
		return SellQuoteOutResult{}, err
	}

	minQuoteOut, err := applySlippageDown(quoteAmountOut, slippagePercent)
	if err != nil {
		return SellQuoteOutResult{}, err
	}

	return SellQuoteOutResult{
		RawQuoteOut: rawQuoteOut,
		BaseIn:      baseIn,
		MinQuoteOut: minQuoteOut,
	}, nil
}
