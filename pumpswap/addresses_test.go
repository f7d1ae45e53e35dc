package pumpswap

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveGlobalConfigAddress(t *testing.T) {
	addr, _, err := DeriveGlobalConfigAddress()
	require.NoError(t, err)
	assert.False(t, addr.IsZero())
	assert.False(t, addr.IsOnCurve(), "PDAs never lie on the curve")

	again, _, err := DeriveGlobalConfigAddress()
	require.NoError(t, err)
	assert.Equal(t, addr, again, "derivation is deterministic")
}

func TestDerivePoolAddress(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	baseMint := solana.NewWallet().PublicKey()
	quoteMint := solana.NewWallet().PublicKey()

	pool0, _, err := DerivePoolAddress(0, owner, baseMint, quoteMint)
	require.NoError(t, err)
	pool1, _, err := DerivePoolAddress(1, owner, baseMint, quoteMint)
	require.NoError(t, err)
	assert.NotEqual(t, pool0, pool1, "index is part of the seed")

	flipped, _, err := DerivePoolAddress(0, owner, quoteMint, baseMint)
	require.NoError(t, err)
	assert.NotEqual(t, pool0, flipped, "mint order is part of the seed")

	assert.False(t, pool0.IsOnCurve())
}

func TestDeriveLPMintAddress(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	baseMint := solana.NewWallet().PublicKey()

	pool, _, err := DerivePoolAddress(0, owner, baseMint, solana.SolMint)
	require.NoError(t, err)

	lpMint, _, err := DeriveLPMintAddress(pool)
	require.NoError(t, err)
	assert.False(t, lpMint.IsZero())
	assert.NotEqual(t, pool, lpMint)
}

func TestDeriveCanonicalPoolAddress(t *testing.T) {
	mint := solana.NewWallet().PublicKey()

	canonical, _, err := DeriveCanonicalPoolAddress(mint)
	require.NoError(t, err)

	authority, _, err := DerivePoolAuthorityAddress(mint)
	require.NoError(t, err)
	expected, _, err := DerivePoolAddress(0, authority, mint, solana.SolMint)
	require.NoError(t, err)
	assert.Equal(t, expected, canonical)
}

func TestDerivePoolAuthorityAddress(t *testing.T) {
	mint := solana.NewWallet().PublicKey()

	authority, _, err := DerivePoolAuthorityAddress(mint)
	require.NoError(t, err)

	// The canonical pool is owned by the launchpad authority, so the
	// two programs must not produce the same address.
	ammSide, _, err := solana.FindProgramAddress([][]byte{[]byte("pool-authority"), mint.Bytes()}, ProgramID)
	require.NoError(t, err)
	assert.NotEqual(t, ammSide, authority)
}

func TestDeriveVolumeAccumulators(t *testing.T) {
	global, _, err := DeriveGlobalVolumeAccumulatorAddress()
	require.NoError(t, err)
	assert.False(t, global.IsZero())

	user := solana.NewWallet().PublicKey()
	perUser, _, err := DeriveUserVolumeAccumulatorAddress(user)
	require.NoError(t, err)
	assert.NotEqual(t, global, perUser)

	other, _, err := DeriveUserVolumeAccumulatorAddress(solana.NewWallet().PublicKey())
	require.NoError(t, err)
	assert.NotEqual(t, perUser, other)
}

func TestDeriveAssociatedTokenAddress(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	ata, _, err := DeriveAssociatedTokenAddress(owner, mint, solana.TokenProgramID)
	require.NoError(t, err)

	// Classic token-program ATAs must match the stock derivation.
	expected, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	require.NoError(t, err)
	assert.Equal(t, expected, ata)

	token2022, _, err := DeriveAssociatedTokenAddress(owner, mint, Token2022ProgramID)
	require.NoError(t, err)
	assert.NotEqual(t, ata, token2022, "owning token program changes the address")
}

func TestDeriveCoinCreatorVaultAuthorityAddress(t *testing.T) {
	creator := solana.NewWallet().PublicKey()

	vault, _, err := DeriveCoinCreatorVaultAuthorityAddress(creator)
	require.NoError(t, err)
	assert.False(t, vault.IsZero())

	zeroVault, _, err := DeriveCoinCreatorVaultAuthorityAddress(solana.PublicKey{})
	require.NoError(t, err)
	assert.NotEqual(t, vault, zeroVault, "the zero key still derives a distinct vault")
}
