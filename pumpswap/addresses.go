package pumpswap

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// Program identifiers the derivations below are anchored to.
var (
	// ProgramID is the pump.fun AMM program.
	ProgramID = solana.MustPublicKeyFromBase58("pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA")

	// PumpProgramID is the bonding-curve launchpad that graduates tokens
	// into AMM pools.
	PumpProgramID = solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")

	// Token2022ProgramID owns every pool's LP mint.
	Token2022ProgramID = solana.MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")
)

// DeriveGlobalConfigAddress returns the program's singleton fee and
// admin configuration account.
func DeriveGlobalConfigAddress() (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte("global_config")}, ProgramID)
}

// DerivePoolAddress returns the pool account for an (index, owner, base
// mint, quote mint) tuple. The index is encoded little-endian.
func DerivePoolAddress(index uint16, owner, baseMint, quoteMint solana.PublicKey) (solana.PublicKey, uint8, error) {
	indexBytes := make([]byte, 2)
	binary.LittleEndian.PutUint16(indexBytes, index)
	seeds := [][]byte{
		[]byte("pool"),
		indexBytes,
		owner.Bytes(),
		baseMint.Bytes(),
		quoteMint.Bytes(),
	}
	return solana.FindProgramAddress(seeds, ProgramID)
}

// DeriveLPMintAddress returns the LP token mint of a pool.
func DeriveLPMintAddress(pool solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte("pool_lp_mint"), pool.Bytes()}, ProgramID)
}

// DerivePoolAuthorityAddress returns the pump.fun authority that owns a
// graduated token's canonical pool. The seed lives on the launchpad
// program, not the AMM program.
func DerivePoolAuthorityAddress(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte("pool-authority"), mint.Bytes()}, PumpProgramID)
}

// DeriveCanonicalPoolAddress returns the index-zero WSOL pool a
// graduated token trades in, owned by the launchpad's pool authority.
func DeriveCanonicalPoolAddress(mint solana.PublicKey) (solana.PublicKey, uint8, error) {
	authority, _, err := DerivePoolAuthorityAddress(mint)
	if err != nil {
		return solana.PublicKey{}, 0, err
	}
	return DerivePoolAddress(0, authority, mint, solana.SolMint)
}

// DeriveEventAuthorityAddress returns the PDA the program signs its
// self-CPI event records with.
func DeriveEventAuthorityAddress() (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte("__event_authority")}, ProgramID)
}

// DeriveCoinCreatorVaultAuthorityAddress returns the authority over a
// coin creator's fee vault.
func DeriveCoinCreatorVaultAuthorityAddress(creator solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte("creator_vault"), creator.Bytes()}, ProgramID)
}

// DeriveGlobalVolumeAccumulatorAddress returns the program-wide trade
// volume tracker.
func DeriveGlobalVolumeAccumulatorAddress() (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte("global_volume_accumulator")}, ProgramID)
}

// DeriveUserVolumeAccumulatorAddress returns a user's trade volume
// tracker.
func DeriveUserVolumeAccumulatorAddress(user solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte("user_volume_accumulator"), user.Bytes()}, ProgramID)
}

// DeriveAssociatedTokenAddress resolves the associated token account for
// owner and mint under the given token program.
func DeriveAssociatedTokenAddress(owner, mint, tokenProgram solana.PublicKey) (solana.PublicKey, uint8, error) {
	seeds := [][]byte{owner.Bytes(), tokenProgram.Bytes(), mint.Bytes()}
	return solana.FindProgramAddress(seeds, solana.SPLAssociatedTokenAccountProgramID)
}
