package pumpswap

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Account discriminators, the first eight bytes of on-chain account
// data. Exposed so callers can build memcmp filters from them.
var (
	PoolDiscriminator         = []byte{241, 154, 109, 4, 17, 177, 109, 188}
	GlobalConfigDiscriminator = []byte{149, 8, 156, 202, 160, 252, 176, 217}
)

const (
	// PoolAccountSize is the size of a pool account that carries the
	// coin-creator extension. Older pools are shorter and must be
	// extended before the program will trade against them.
	PoolAccountSize = 243

	// poolLegacySize is the layout without the coin-creator tail.
	poolLegacySize = PoolAccountSize - 32

	// globalConfigLegacySize is the layout without the creator-fee tail.
	globalConfigLegacySize = 8 + 32 + 8 + 8 + 1 + 8*32

	tokenAccountAmountOffset = 64
)

// Trading switches packed into GlobalConfig.DisableFlags.
const (
	DisableCreatePool uint8 = 1 << iota
	DisableDeposit
	DisableWithdraw
	DisableBuy
	DisableSell
)

// Pool mirrors the program's pool account.
type Pool struct {
	Address               solana.PublicKey
	Bump                  uint8
	Index                 uint16
	Creator               solana.PublicKey
	BaseMint              solana.PublicKey
	QuoteMint             solana.PublicKey
	LPMint                solana.PublicKey
	PoolBaseTokenAccount  solana.PublicKey
	PoolQuoteTokenAccount solana.PublicKey
	LPSupply              uint64

	// CoinCreator stays zero for accounts that predate the extension.
	CoinCreator solana.PublicKey
}

// GlobalConfig mirrors the program's singleton configuration account.
type GlobalConfig struct {
	Admin                  solana.PublicKey
	LPFeeBasisPoints       uint64
	ProtocolFeeBasisPoints uint64
	DisableFlags           uint8
	ProtocolFeeRecipients  [8]solana.PublicKey

	// CoinCreatorFeeBasisPoints stays zero for accounts that predate
	// creator fees.
	CoinCreatorFeeBasisPoints uint64
}

// ParsePool decodes a pool account. Accounts without the coin-creator
// tail parse with CoinCreator left as the zero key.
func ParsePool(address solana.PublicKey, data []byte) (*Pool, error) {
	if len(data) < poolLegacySize {
		return nil, fmt.Errorf("pool account %s: %w: %d bytes", address, ErrAccountTooShort, len(data))
	}
	if !bytes.Equal(data[:8], PoolDiscriminator) {
		return nil, fmt.Errorf("pool account %s: %w: %x", address, ErrBadDiscriminator, data[:8])
	}

	pool := &Pool{Address: address}
	pos := 8

	pool.Bump = data[pos]
	pos++
	pool.Index = binary.LittleEndian.Uint16(data[pos : pos+2])
	pos += 2
	pool.Creator = solana.PublicKeyFromBytes(data[pos : pos+32])
	pos += 32
	pool.BaseMint = solana.PublicKeyFromBytes(data[pos : pos+32])
	pos += 32
	pool.QuoteMint = solana.PublicKeyFromBytes(data[pos : pos+32])
	pos += 32
	pool.LPMint = solana.PublicKeyFromBytes(data[pos : pos+32])
	pos += 32
	pool.PoolBaseTokenAccount = solana.PublicKeyFromBytes(data[pos : pos+32])
	pos += 32
	pool.PoolQuoteTokenAccount = solana.PublicKeyFromBytes(data[pos : pos+32])
	pos += 32
	pool.LPSupply = binary.LittleEndian.Uint64(data[pos : pos+8])
	pos += 8

	if len(data) >= pos+32 {
		pool.CoinCreator = solana.PublicKeyFromBytes(data[pos : pos+32])
	}

	return pool, nil
}

// ParseGlobalConfig decodes the global configuration account. Accounts
// without the creator-fee tail parse with a zero creator fee.
func ParseGlobalConfig(data []byte) (*GlobalConfig, error) {
	if len(data) < globalConfigLegacySize {
		return nil, fmt.Errorf("global config: %w: %d bytes", ErrAccountTooShort, len(data))
	}
	if !bytes.Equal(data[:8], GlobalConfigDiscriminator) {
		return nil, fmt.Errorf("global config: %w: %x", ErrBadDiscriminator, data[:8])
	}

	cfg := &GlobalConfig{}
	pos := 8

	cfg.Admin = solana.PublicKeyFromBytes(data[pos : pos+32])
	pos += 32
	cfg.LPFeeBasisPoints = binary.LittleEndian.Uint64(data[pos : pos+8])
	pos += 8
	cfg.ProtocolFeeBasisPoints = binary.LittleEndian.Uint64(data[pos : pos+8])
	pos += 8
	cfg.DisableFlags = data[pos]
	pos++
	for i := range cfg.ProtocolFeeRecipients {
		cfg.ProtocolFeeRecipients[i] = solana.PublicKeyFromBytes(data[pos : pos+32])
		pos += 32
	}

	if len(data) >= pos+8 {
		cfg.CoinCreatorFeeBasisPoints = binary.LittleEndian.Uint64(data[pos : pos+8])
	}

	return cfg, nil
}

// FeeRecipient returns the first configured protocol fee recipient.
func (c *GlobalConfig) FeeRecipient() solana.PublicKey {
	for _, recipient := range c.ProtocolFeeRecipients {
		if !recipient.IsZero() {
			return recipient
		}
	}
	return solana.PublicKey{}
}

// Disabled reports whether the given DisableFlags bit is set.
func (c *GlobalConfig) Disabled(flag uint8) bool {
	return c.DisableFlags&flag != 0
}

// State combines the pool's identity, the config's fee schedule and a
// pair of reserve balances into the snapshot the quoting functions
// consume.
func (p *Pool) State(cfg *GlobalConfig, baseReserve, quoteReserve uint64) PoolState {
	return PoolState{
		BaseReserve:               baseReserve,
		QuoteReserve:              quoteReserve,
		LPSupply:                  p.LPSupply,
		LPFeeBasisPoints:          cfg.LPFeeBasisPoints,
		ProtocolFeeBasisPoints:    cfg.ProtocolFeeBasisPoints,
		CoinCreatorFeeBasisPoints: cfg.CoinCreatorFeeBasisPoints,
		CoinCreator:               p.CoinCreator,
	}
}

// NeedsExtend reports whether a pool account of the given size predates
// the coin-creator extension and must be extended before trading.
func NeedsExtend(accountSize int) bool {
	return accountSize < PoolAccountSize
}

// TokenAccountBalance extracts the amount field from raw SPL token
// account data.
func TokenAccountBalance(data []byte) (uint64, error) {
	if len(data) < tokenAccountAmountOffset+8 {
		return 0, fmt.Errorf("token account: %w: %d bytes", ErrAccountTooShort, len(data))
	}
	return binary.LittleEndian.Uint64(data[tokenAccountAmountOffset : tokenAccountAmountOffset+8]), nil
}
