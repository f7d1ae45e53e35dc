package pumpswap

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeUint16LE(buf *bytes.Buffer, v uint16) {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	buf.Write(b)
}

func writeUint64LE(buf *bytes.Buffer, v uint64) {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	buf.Write(b)
}

func poolAccountBytes(withCoinCreator bool) []byte {
	buf := new(bytes.Buffer)
	buf.Write(PoolDiscriminator)
	buf.WriteByte(254)
	writeUint16LE(buf, 3)
	buf.Write(fixedKey(0x01).Bytes())
	buf.Write(fixedKey(0x03).Bytes())
	buf.Write(solana.SolMint.Bytes())
	buf.Write(fixedKey(0x07).Bytes())
	buf.Write(fixedKey(0x08).Bytes())
	buf.Write(fixedKey(0x09).Bytes())
	writeUint64LE(buf, 123_456_789)
	if withCoinCreator {
		buf.Write(fixedKey(0x05).Bytes())
	}
	return buf.Bytes()
}

func globalConfigBytes(withCreatorFee bool) []byte {
	buf := new(bytes.Buffer)
	buf.Write(GlobalConfigDiscriminator)
	buf.Write(fixedKey(0x0A).Bytes())
	writeUint64LE(buf, 20)
	writeUint64LE(buf, 5)
	buf.WriteByte(DisableCreatePool | DisableSell)
	buf.Write(make([]byte, 32)) // first recipient slot left empty
	buf.Write(fixedKey(0x04).Bytes())
	buf.Write(make([]byte, 6*32))
	if withCreatorFee {
		writeUint64LE(buf, 5)
	}
	return buf.Bytes()
}

func TestParsePool(t *testing.T) {
	address := fixedKey(0x02)
	data := poolAccountBytes(true)
	require.Len(t, data, PoolAccountSize)

	pool, err := ParsePool(address, data)
	require.NoError(t, err)

	assert.Equal(t, address, pool.Address)
	assert.Equal(t, uint8(254), pool.Bump)
	assert.Equal(t, uint16(3), pool.Index)
	assert.Equal(t, fixedKey(0x01), pool.Creator)
	assert.Equal(t, fixedKey(0x03), pool.BaseMint)
	assert.Equal(t, solana.SolMint, pool.QuoteMint)
	assert.Equal(t, fixedKey(0x07), pool.LPMint)
	assert.Equal(t, fixedKey(0x08), pool.PoolBaseTokenAccount)
	assert.Equal(t, fixedKey(0x09), pool.PoolQuoteTokenAccount)
	assert.Equal(t, uint64(123_456_789), pool.LPSupply)
	assert.Equal(t, fixedKey(0x05), pool.CoinCreator)
}

func TestParsePoolLegacyLayout(t *testing.T) {
	data := poolAccountBytes(false)
	require.Len(t, data, PoolAccountSize-32)

	pool, err := ParsePool(fixedKey(0x02), data)
	require.NoError(t, err)
	assert.True(t, pool.CoinCreator.IsZero(), "accounts without the tail have no coin creator")
	assert.Equal(t, uint64(123_456_789), pool.LPSupply)
}

func TestParsePoolErrors(t *testing.T) {
	_, err := ParsePool(fixedKey(0x02), make([]byte, 42))
	assert.ErrorIs(t, err, ErrAccountTooShort)

	data := poolAccountBytes(false)
	copy(data[:8], GlobalConfigDiscriminator)
	_, err = ParsePool(fixedKey(0x02), data)
	assert.ErrorIs(t, err, ErrBadDiscriminator)
}

func TestParseGlobalConfig(t *testing.T) {
	cfg, err := ParseGlobalConfig(globalConfigBytes(true))
	require.NoError(t, err)

	assert.Equal(t, fixedKey(0x0A), cfg.Admin)
	assert.Equal(t, uint64(20), cfg.LPFeeBasisPoints)
	assert.Equal(t, uint64(5), cfg.ProtocolFeeBasisPoints)
	assert.Equal(t, uint64(5), cfg.CoinCreatorFeeBasisPoints)
	assert.True(t, cfg.ProtocolFeeRecipients[0].IsZero())
	assert.Equal(t, fixedKey(0x04), cfg.ProtocolFeeRecipients[1])

	assert.True(t, cfg.Disabled(DisableCreatePool))
	assert.True(t, cfg.Disabled(DisableSell))
	assert.False(t, cfg.Disabled(DisableBuy))
	assert.False(t, cfg.Disabled(DisableDeposit))
}

func TestParseGlobalConfigLegacyLayout(t *testing.T) {
	cfg, err := ParseGlobalConfig(globalConfigBytes(false))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), cfg.CoinCreatorFeeBasisPoints)
}

func TestParseGlobalConfigErrors(t *testing.T) {
	_, err := ParseGlobalConfig(make([]byte, 100))
	assert.ErrorIs(t, err, ErrAccountTooShort)

	data := globalConfigBytes(false)
	copy(data[:8], PoolDiscriminator)
	_, err = ParseGlobalConfig(data)
	assert.ErrorIs(t, err, ErrBadDiscriminator)
}

func TestGlobalConfigFeeRecipient(t *testing.T) {
	cfg, err := ParseGlobalConfig(globalConfigBytes(true))
	require.NoError(t, err)
	assert.Equal(t, fixedKey(0x04), cfg.FeeRecipient(), "skips empty slots")

	empty := &GlobalConfig{}
	assert.True(t, empty.FeeRecipient().IsZero())
}

func TestPoolState(t *testing.T) {
	pool, err := ParsePool(fixedKey(0x02), poolAccountBytes(true))
	require.NoError(t, err)
	cfg, err := ParseGlobalConfig(globalConfigBytes(true))
	require.NoError(t, err)

	state := pool.State(cfg, 1_000_000, 2_000_000)
	assert.Equal(t, uint64(1_000_000), state.BaseReserve)
	assert.Equal(t, uint64(2_000_000), state.QuoteReserve)
	assert.Equal(t, pool.LPSupply, state.LPSupply)
	assert.Equal(t, cfg.LPFeeBasisPoints, state.LPFeeBasisPoints)
	assert.Equal(t, cfg.ProtocolFeeBasisPoints, state.ProtocolFeeBasisPoints)
	assert.Equal(t, cfg.CoinCreatorFeeBasisPoints, state.CoinCreatorFeeBasisPoints)
	assert.Equal(t, pool.CoinCreator, state.CoinCreator)
}

func TestNeedsExtend(t *testing.T) {
	assert.True(t, NeedsExtend(PoolAccountSize-32), "legacy accounts must be extended")
	assert.True(t, NeedsExtend(PoolAccountSize-1))
	assert.False(t, NeedsExtend(PoolAccountSize))
	assert.False(t, NeedsExtend(PoolAccountSize+8))
}

func TestTokenAccountBalance(t *testing.T) {
	data := make([]byte, 165)
	binary.LittleEndian.PutUint64(data[64:72], 42_000_000)

	amount, err := TokenAccountBalance(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(42_000_000), amount)

	_, err = TokenAccountBalance(make([]byte, 64))
	assert.ErrorIs(t, err, ErrAccountTooShort)
}
