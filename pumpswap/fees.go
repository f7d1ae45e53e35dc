package pumpswap

// MaxFeeBasisPoints is the denominator of every fee rate: one basis
// point is 1/10_000 of the traded amount.
const MaxFeeBasisPoints = 10_000

// Fee returns the fee charged on amount at the given basis-point rate,
// rounded up in the pool's favor. Rates above MaxFeeBasisPoints are not
// rejected and simply produce a fee larger than the amount itself.
func Fee(amount, basisPoints uint64) (uint64, error) {
	return mulDivCeil(amount, basisPoints, MaxFeeBasisPoints)
}
