// pumpswap/instructions_test.go
package pumpswap

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedKey builds a stable public key for fixtures.
func fixedKey(tag byte) solana.PublicKey {
	var raw [32]byte
	for i := range raw {
		raw[i] = tag
	}
	return solana.PublicKeyFromBytes(raw[:])
}

func testSwapAccounts() SwapAccounts {
	return SwapAccounts{
		User:                 fixedKey(0x01),
		Pool:                 fixedKey(0x02),
		BaseMint:             fixedKey(0x03),
		QuoteMint:            solana.SolMint,
		BaseTokenProgram:     solana.TokenProgramID,
		QuoteTokenProgram:    solana.TokenProgramID,
		ProtocolFeeRecipient: fixedKey(0x04),
		CoinCreator:          fixedKey(0x05),
	}
}

func testLiquidityAccounts() LiquidityAccounts {
	swap := testSwapAccounts()
	return LiquidityAccounts{
		User:              swap.User,
		Pool:              swap.Pool,
		BaseMint:          swap.BaseMint,
		QuoteMint:         swap.QuoteMint,
		BaseTokenProgram:  swap.BaseTokenProgram,
		QuoteTokenProgram: swap.QuoteTokenProgram,
	}
}

func TestBuildBuyInstruction(t *testing.T) {
	accounts := testSwapAccounts()

	inst, err := BuildBuyInstruction(accounts, BuyArgs{
		BaseAmountOut:    1_000_000,
		MaxQuoteAmountIn: 2_500_000,
	})
	require.NoError(t, err)
	assert.Equal(t, ProgramID, inst.ProgramID())

	data, err := inst.Data()
	require.NoError(t, err)
	require.Len(t, data, 24)
	assert.Equal(t, buyDiscriminator, data[:8])
	assert.Equal(t, uint64(1_000_000), binary.LittleEndian.Uint64(data[8:16]))
	assert.Equal(t, uint64(2_500_000), binary.LittleEndian.Uint64(data[16:24]))

	metas := inst.Accounts()
	require.Len(t, metas, 19)

	// Pool is written but never signs; the user does both.
	assert.Equal(t, accounts.Pool, metas[0].PublicKey)
	assert.True(t, metas[0].IsWritable)
	assert.False(t, metas[0].IsSigner)
	assert.Equal(t, accounts.User, metas[1].PublicKey)
	assert.True(t, metas[1].IsWritable)
	assert.True(t, metas[1].IsSigner)

	globalConfig, _, err := DeriveGlobalConfigAddress()
	require.NoError(t, err)
	assert.Equal(t, globalConfig, metas[2].PublicKey)
	assert.False(t, metas[2].IsWritable)

	assert.Equal(t, accounts.BaseMint, metas[3].PublicKey)
	assert.Equal(t, accounts.QuoteMint, metas[4].PublicKey)

	userBase, _, err := DeriveAssociatedTokenAddress(accounts.User, accounts.BaseMint, accounts.BaseTokenProgram)
	require.NoError(t, err)
	assert.Equal(t, userBase, metas[5].PublicKey)
	assert.True(t, metas[5].IsWritable)

	poolBase, _, err := DeriveAssociatedTokenAddress(accounts.Pool, accounts.BaseMint, accounts.BaseTokenProgram)
	require.NoError(t, err)
	assert.Equal(t, poolBase, metas[7].PublicKey)
	assert.True(t, metas[7].IsWritable)

	assert.Equal(t, accounts.ProtocolFeeRecipient, metas[9].PublicKey)
	assert.False(t, metas[9].IsWritable)

	feeRecipientQuote, _, err := DeriveAssociatedTokenAddress(accounts.ProtocolFeeRecipient, accounts.QuoteMint, accounts.QuoteTokenProgram)
	require.NoError(t, err)
	assert.Equal(t, feeRecipientQuote, metas[10].PublicKey)
	assert.True(t, metas[10].IsWritable)

	assert.Equal(t, solana.SystemProgramID, metas[13].PublicKey)
	assert.Equal(t, solana.SPLAssociatedTokenAccountProgramID, metas[14].PublicKey)

	eventAuthority, _, err := DeriveEventAuthorityAddress()
	require.NoError(t, err)
	assert.Equal(t, eventAuthority, metas[15].PublicKey)
	assert.Equal(t, ProgramID, metas[16].PublicKey)

	// The creator-fee pair closes the table.
	vaultAuthority, _, err := DeriveCoinCreatorVaultAuthorityAddress(accounts.CoinCreator)
	require.NoError(t, err)
	vaultQuote, _, err := DeriveAssociatedTokenAddress(vaultAuthority, accounts.QuoteMint, accounts.QuoteTokenProgram)
	require.NoError(t, err)
	assert.Equal(t, vaultQuote, metas[17].PublicKey)
	assert.True(t, metas[17].IsWritable)
	assert.Equal(t, vaultAuthority, metas[18].PublicKey)
	assert.False(t, metas[18].IsWritable)
}

func TestBuildSellInstruction(t *testing.T) {
	accounts := testSwapAccounts()

	inst, err := BuildSellInstruction(accounts, SellArgs{
		BaseAmountIn:      500_000,
		MinQuoteAmountOut: 400_000,
	})
	require.NoError(t, err)

	data, err := inst.Data()
	require.NoError(t, err)
	require.Len(t, data, 24)
	assert.Equal(t, sellDiscriminator, data[:8])
	assert.Equal(t, uint64(500_000), binary.LittleEndian.Uint64(data[8:16]))
	assert.Equal(t, uint64(400_000), binary.LittleEndian.Uint64(data[16:24]))

	// Buy and sell address the same 19 accounts in the same order.
	buy, err := BuildBuyInstruction(accounts, BuyArgs{BaseAmountOut: 1, MaxQuoteAmountIn: 1})
	require.NoError(t, err)
	sellMetas := inst.Accounts()
	buyMetas := buy.Accounts()
	require.Len(t, sellMetas, 19)
	for i := range sellMetas {
		assert.Equal(t, buyMetas[i].PublicKey, sellMetas[i].PublicKey, "slot %d", i)
		assert.Equal(t, buyMetas[i].IsWritable, sellMetas[i].IsWritable, "slot %d", i)
		assert.Equal(t, buyMetas[i].IsSigner, sellMetas[i].IsSigner, "slot %d", i)
	}
}

func TestBuildCreatePoolInstruction(t *testing.T) {
	accounts := CreatePoolAccounts{
		Creator:           fixedKey(0x01),
		BaseMint:          fixedKey(0x03),
		QuoteMint:         solana.SolMint,
		BaseTokenProgram:  solana.TokenProgramID,
		QuoteTokenProgram: solana.TokenProgramID,
	}
	args := CreatePoolArgs{
		Index:         7,
		BaseAmountIn:  1_000_000_000,
		QuoteAmountIn: 500_000_000,
		CoinCreator:   fixedKey(0x05),
	}

	inst, err := BuildCreatePoolInstruction(accounts, args)
	require.NoError(t, err)

	data, err := inst.Data()
	require.NoError(t, err)
	require.Len(t, data, 58)
	assert.Equal(t, createPoolDiscriminator, data[:8])
	assert.Equal(t, uint16(7), binary.LittleEndian.Uint16(data[8:10]))
	assert.Equal(t, uint64(1_000_000_000), binary.LittleEndian.Uint64(data[10:18]))
	assert.Equal(t, uint64(500_000_000), binary.LittleEndian.Uint64(data[18:26]))
	assert.Equal(t, args.CoinCreator.Bytes(), data[26:58])

	metas := inst.Accounts()
	require.Len(t, metas, 18)

	pool, _, err := DerivePoolAddress(args.Index, accounts.Creator, accounts.BaseMint, accounts.QuoteMint)
	require.NoError(t, err)
	assert.Equal(t, pool, metas[0].PublicKey)
	assert.True(t, metas[0].IsWritable)
	assert.False(t, metas[0].IsSigner)

	assert.Equal(t, accounts.Creator, metas[2].PublicKey)
	assert.True(t, metas[2].IsSigner)

	lpMint, _, err := DeriveLPMintAddress(pool)
	require.NoError(t, err)
	assert.Equal(t, lpMint, metas[5].PublicKey)
	assert.True(t, metas[5].IsWritable)

	// The creator's LP account lives under Token-2022.
	creatorLP, _, err := DeriveAssociatedTokenAddress(accounts.Creator, lpMint, Token2022ProgramID)
	require.NoError(t, err)
	assert.Equal(t, creatorLP, metas[8].PublicKey)

	assert.Equal(t, solana.SystemProgramID, metas[11].PublicKey)
	assert.Equal(t, Token2022ProgramID, metas[12].PublicKey)
	assert.Equal(t, solana.SPLAssociatedTokenAccountProgramID, metas[15].PublicKey)
	assert.Equal(t, ProgramID, metas[17].PublicKey)
}

func TestBuildDepositInstruction(t *testing.T) {
	accounts := testLiquidityAccounts()

	inst, err := BuildDepositInstruction(accounts, DepositArgs{
		LPTokenAmountOut: 100_000,
		MaxBaseAmountIn:  1_010_000,
		MaxQuoteAmountIn: 1_010_000,
	})
	require.NoError(t, err)

	data, err := inst.Data()
	require.NoError(t, err)
	require.Len(t, data, 32)
	assert.Equal(t, depositDiscriminator, data[:8])
	assert.Equal(t, uint64(100_000), binary.LittleEndian.Uint64(data[8:16]))
	assert.Equal(t, uint64(1_010_000), binary.LittleEndian.Uint64(data[16:24]))
	assert.Equal(t, uint64(1_010_000), binary.LittleEndian.Uint64(data[24:32]))

	metas := inst.Accounts()
	require.Len(t, metas, 15)

	assert.Equal(t, accounts.Pool, metas[0].PublicKey)
	assert.True(t, metas[0].IsWritable)
	assert.Equal(t, accounts.User, metas[2].PublicKey)
	assert.True(t, metas[2].IsSigner)

	lpMint, _, err := DeriveLPMintAddress(accounts.Pool)
	require.NoError(t, err)
	assert.Equal(t, lpMint, metas[5].PublicKey)
	assert.True(t, metas[5].IsWritable)

	// User token accounts resolve under the classic token program, the
	// LP account under Token-2022.
	userBase, _, err := DeriveAssociatedTokenAddress(accounts.User, accounts.BaseMint, solana.TokenProgramID)
	require.NoError(t, err)
	assert.Equal(t, userBase, metas[6].PublicKey)

	userLP, _, err := DeriveAssociatedTokenAddress(accounts.User, lpMint, Token2022ProgramID)
	require.NoError(t, err)
	assert.Equal(t, userLP, metas[8].PublicKey)

	assert.Equal(t, solana.TokenProgramID, metas[11].PublicKey)
	assert.Equal(t, Token2022ProgramID, metas[12].PublicKey)
	assert.Equal(t, ProgramID, metas[14].PublicKey)
}

func TestBuildWithdrawInstruction(t *testing.T) {
	accounts := testLiquidityAccounts()

	inst, err := BuildWithdrawInstruction(accounts, WithdrawArgs{
		LPTokenAmountIn:   100_000,
		MinBaseAmountOut:  990_000,
		MinQuoteAmountOut: 990_000,
	})
	require.NoError(t, err)

	data, err := inst.Data()
	require.NoError(t, err)
	require.Len(t, data, 32)
	assert.Equal(t, withdrawDiscriminator, data[:8])

	// Withdraw shares the deposit account table, flags included: only
	// the user ever signs.
	deposit, err := BuildDepositInstruction(accounts, DepositArgs{})
	require.NoError(t, err)
	withdrawMetas := inst.Accounts()
	depositMetas := deposit.Accounts()
	require.Len(t, withdrawMetas, 15)
	for i := range withdrawMetas {
		assert.Equal(t, depositMetas[i].PublicKey, withdrawMetas[i].PublicKey, "slot %d", i)
		assert.Equal(t, depositMetas[i].IsWritable, withdrawMetas[i].IsWritable, "slot %d", i)
		assert.Equal(t, depositMetas[i].IsSigner, withdrawMetas[i].IsSigner, "slot %d", i)
	}
	for i, meta := range withdrawMetas {
		if i == 2 {
			assert.True(t, meta.IsSigner)
			continue
		}
		assert.False(t, meta.IsSigner, "slot %d must not sign", i)
	}
}

func TestBuildExtendAccountInstruction(t *testing.T) {
	account := fixedKey(0x02)
	user := fixedKey(0x01)

	inst, err := BuildExtendAccountInstruction(account, user)
	require.NoError(t, err)

	data, err := inst.Data()
	require.NoError(t, err)
	assert.Equal(t, extendAccountDiscriminator, data, "no args beyond the discriminator")

	metas := inst.Accounts()
	require.Len(t, metas, 5)
	assert.Equal(t, account, metas[0].PublicKey)
	assert.True(t, metas[0].IsWritable)
	assert.False(t, metas[0].IsSigner, "the extended account does not sign")
	assert.Equal(t, user, metas[1].PublicKey)
	assert.True(t, metas[1].IsSigner)
	assert.Equal(t, solana.SystemProgramID, metas[2].PublicKey)
	assert.Equal(t, ProgramID, metas[4].PublicKey)
}
