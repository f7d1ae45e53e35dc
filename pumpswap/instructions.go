// =====================================
// File: pumpswap/instructions.go
// =====================================
package pumpswap

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Instruction discriminators, the first eight bytes of every payload.
var (
	createPoolDiscriminator    = []byte{233, 146, 209, 142, 207, 104, 64, 188}
	buyDiscriminator           = []byte{102, 6, 61, 18, 1, 218, 235, 234}
	sellDiscriminator          = []byte{51, 230, 133, 164, 1, 127, 131, 173}
	depositDiscriminator       = []byte{242, 35, 198, 137, 82, 225, 242, 182}
	withdrawDiscriminator      = []byte{183, 18, 70, 156, 148, 109, 161, 34}
	extendAccountDiscriminator = []byte{234, 102, 194, 203, 150, 72, 62, 229}
)

// CreatePoolArgs is the Borsh record following the create_pool
// discriminator.
type CreatePoolArgs struct {
	Index         uint16
	BaseAmountIn  uint64
	QuoteAmountIn uint64
	CoinCreator   solana.PublicKey
}

// BuyArgs is the Borsh record following the buy discriminator.
type BuyArgs struct {
	BaseAmountOut    uint64
	MaxQuoteAmountIn uint64
}

// SellArgs is the Borsh record following the sell discriminator.
type SellArgs struct {
	BaseAmountIn      uint64
	MinQuoteAmountOut uint64
}

// DepositArgs is the Borsh record following the deposit discriminator.
type DepositArgs struct {
	LPTokenAmountOut uint64
	MaxBaseAmountIn  uint64
	MaxQuoteAmountIn uint64
}

// WithdrawArgs is the Borsh record following the withdraw discriminator.
type WithdrawArgs struct {
	LPTokenAmountIn   uint64
	MinBaseAmountOut  uint64
	MinQuoteAmountOut uint64
}

// SwapAccounts names the participants of a buy or sell against one pool.
// Every remaining account in the instruction is derived from these.
type SwapAccounts struct {
	User                 solana.PublicKey
	Pool                 solana.PublicKey
	BaseMint             solana.PublicKey
	QuoteMint            solana.PublicKey
	BaseTokenProgram     solana.PublicKey
	QuoteTokenProgram    solana.PublicKey
	ProtocolFeeRecipient solana.PublicKey

	// CoinCreator must match the pool account's coin creator, the zero
	// key included.
	CoinCreator solana.PublicKey
}

// LiquidityAccounts names the participants of a deposit or withdrawal.
type LiquidityAccounts struct {
	User              solana.PublicKey
	Pool              solana.PublicKey
	BaseMint          solana.PublicKey
	QuoteMint         solana.PublicKey
	BaseTokenProgram  solana.PublicKey
	QuoteTokenProgram solana.PublicKey
}

// CreatePoolAccounts names the participants of pool creation. The pool
// address itself is derived from the creator, the mints and the index in
// the args.
type CreatePoolAccounts struct {
	Creator           solana.PublicKey
	BaseMint          solana.PublicKey
	QuoteMint         solana.PublicKey
	BaseTokenProgram  solana.PublicKey
	QuoteTokenProgram solana.PublicKey
}

func encodeInstructionData(discriminator []byte, args interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(discriminator)
	if args != nil {
		if err := bin.NewBorshEncoder(buf).Encode(args); err != nil {
			return nil, fmt.Errorf("encode instruction args: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// swapAccountMetas assembles the ordered 19-account table shared by buy
// and sell.
func swapAccountMetas(accounts SwapAccounts) ([]*solana.AccountMeta, error) {
	globalConfig, _, err := DeriveGlobalConfigAddress()
	if err != nil {
		return nil, fmt.Errorf("derive global config: %w", err)
	}
	eventAuthority, _, err := DeriveEventAuthorityAddress()
	if err != nil {
		return nil, fmt.Errorf("derive event authority: %w", err)
	}
	vaultAuthority, _, err := DeriveCoinCreatorVaultAuthorityAddress(accounts.CoinCreator)
	if err != nil {
		return nil, fmt.Errorf("derive coin creator vault authority: %w", err)
	}

	userBase, _, err := DeriveAssociatedTokenAddress(accounts.User, accounts.BaseMint, accounts.BaseTokenProgram)
	if err != nil {
		return nil, fmt.Errorf("derive user base token account: %w", err)
	}
	userQuote, _, err := DeriveAssociatedTokenAddress(accounts.User, accounts.QuoteMint, accounts.QuoteTokenProgram)
	if err != nil {
		return nil, fmt.Errorf("derive user quote token account: %w", err)
	}
	poolBase, _, err := DeriveAssociatedTokenAddress(accounts.Pool, accounts.BaseMint, accounts.BaseTokenProgram)
	if err != nil {
		return nil, fmt.Errorf("derive pool base token account: %w", err)
	}
	poolQuote, _, err := DeriveAssociatedTokenAddress(accounts.Pool, accounts.QuoteMint, accounts.QuoteTokenProgram)
	if err != nil {
		return nil, fmt.Errorf("derive pool quote token account: %w", err)
	}
	feeRecipientQuote, _, err := DeriveAssociatedTokenAddress(accounts.ProtocolFeeRecipient, accounts.QuoteMint, accounts.QuoteTokenProgram)
	if err != nil {
		return nil, fmt.Errorf("derive protocol fee token account: %w", err)
	}
	vaultQuote, _, err := DeriveAssociatedTokenAddress(vaultAuthority, accounts.QuoteMint, accounts.QuoteTokenProgram)
	if err != nil {
		return nil, fmt.Errorf("derive coin creator vault token account: %w", err)
	}

	return []*solana.AccountMeta{
		solana.NewAccountMeta(accounts.Pool, true, false),
		solana.NewAccountMeta(accounts.User, true, true),
		solana.NewAccountMeta(globalConfig, false, false),
		solana.NewAccountMeta(accounts.BaseMint, false, false),
		solana.NewAccountMeta(accounts.QuoteMint, false, false),
		solana.NewAccountMeta(userBase, true, false),
		solana.NewAccountMeta(userQuote, true, false),
		solana.NewAccountMeta(poolBase, true, false),
		solana.NewAccountMeta(poolQuote, true, false),
		solana.NewAccountMeta(accounts.ProtocolFeeRecipient, false, false),
		solana.NewAccountMeta(feeRecipientQuote, true, false),
		solana.NewAccountMeta(accounts.BaseTokenProgram, false, false),
		solana.NewAccountMeta(accounts.QuoteTokenProgram, false, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(solana.SPLAssociatedTokenAccountProgramID, false, false),
		solana.NewAccountMeta(eventAuthority, false, false),
		solana.NewAccountMeta(ProgramID, false, false),
		solana.NewAccountMeta(vaultQuote, true, false),
		solana.NewAccountMeta(vaultAuthority, false, false),
	}, nil
}

// liquidityAccountMetas assembles the ordered 15-account table shared by
// deposit and withdraw. The user's base and quote accounts are classic
// token-program ATAs regardless of the mints' owning programs; only the
// LP account lives under Token-2022.
func liquidityAccountMetas(accounts LiquidityAccounts) ([]*solana.AccountMeta, error) {
	globalConfig, _, err := DeriveGlobalConfigAddress()
	if err != nil {
		return nil, fmt.Errorf("derive global config: %w", err)
	}
	eventAuthority, _, err := DeriveEventAuthorityAddress()
	if err != nil {
		return nil, fmt.Errorf("derive event authority: %w", err)
	}
	lpMint, _, err := DeriveLPMintAddress(accounts.Pool)
	if err != nil {
		return nil, fmt.Errorf("derive lp mint: %w", err)
	}

	userBase, _, err := DeriveAssociatedTokenAddress(accounts.User, accounts.BaseMint, solana.TokenProgramID)
	if err != nil {
		return nil, fmt.Errorf("derive user base token account: %w", err)
	}
	userQuote, _, err := DeriveAssociatedTokenAddress(accounts.User, accounts.QuoteMint, solana.TokenProgramID)
	if err != nil {
		return nil, fmt.Errorf("derive user quote token account: %w", err)
	}
	userLP, _, err := DeriveAssociatedTokenAddress(accounts.User, lpMint, Token2022ProgramID)
	if err != nil {
		return nil, fmt.Errorf("derive user lp token account: %w", err)
	}
	poolBase, _, err := DeriveAssociatedTokenAddress(accounts.Pool, accounts.BaseMint, accounts.BaseTokenProgram)
	if err != nil {
		return nil, fmt.Errorf("derive pool base token account: %w", err)
	}
	poolQuote, _, err := DeriveAssociatedTokenAddress(accounts.Pool, accounts.QuoteMint, accounts.QuoteTokenProgram)
	if err != nil {
		return nil, fmt.Errorf("derive pool quote token account: %w", err)
	}

	return []*solana.AccountMeta{
		solana.NewAccountMeta(accounts.Pool, true, false),
		solana.NewAccountMeta(globalConfig, false, false),
		solana.NewAccountMeta(accounts.User, true, true),
		solana.NewAccountMeta(accounts.BaseMint, false, false),
		solana.NewAccountMeta(accounts.QuoteMint, false, false),
		solana.NewAccountMeta(lpMint, true, false),
		solana.NewAccountMeta(userBase, true, false),
		solana.NewAccountMeta(userQuote, true, false),
		solana.NewAccountMeta(userLP, true, false),
		solana.NewAccountMeta(poolBase, true, false),
		solana.NewAccountMeta(poolQuote, true, false),
		solana.NewAccountMeta(solana.TokenProgramID, false, false),
		solana.NewAccountMeta(Token2022ProgramID, false, false),
		solana.NewAccountMeta(eventAuthority, false, false),
		solana.NewAccountMeta(ProgramID, false, false),
	}, nil
}

// BuildBuyInstruction encodes a swap buying args.BaseAmountOut base
// tokens for at most args.MaxQuoteAmountIn quote tokens.
func BuildBuyInstruction(accounts SwapAccounts, args BuyArgs) (solana.Instruction, error) {
	metas, err := swapAccountMetas(accounts)
	if err != nil {
		return nil, err
	}
	data, err := encodeInstructionData(buyDiscriminator, args)
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(ProgramID, metas, data), nil
}

// BuildSellInstruction encodes a swap selling args.BaseAmountIn base
// tokens for at least args.MinQuoteAmountOut quote tokens.
func BuildSellInstruction(accounts SwapAccounts, args SellArgs) (solana.Instruction, error) {
	metas, err := swapAccountMetas(accounts)
	if err != nil {
		return nil, err
	}
	data, err := encodeInstructionData(sellDiscriminator, args)
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(ProgramID, metas, data), nil
}

// BuildCreatePoolInstruction encodes the creation of a pool seeded with
// args.BaseAmountIn and args.QuoteAmountIn.
func BuildCreatePoolInstruction(accounts CreatePoolAccounts, args CreatePoolArgs) (solana.Instruction, error) {
	pool, _, err := DerivePoolAddress(args.Index, accounts.Creator, accounts.BaseMint, accounts.QuoteMint)
	if err != nil {
		return nil, fmt.Errorf("derive pool: %w", err)
	}
	lpMint, _, err := DeriveLPMintAddress(pool)
	if err != nil {
		return nil, fmt.Errorf("derive lp mint: %w", err)
	}
	globalConfig, _, err := DeriveGlobalConfigAddress()
	if err != nil {
		return nil, fmt.Errorf("derive global config: %w", err)
	}
	eventAuthority, _, err := DeriveEventAuthorityAddress()
	if err != nil {
		return nil, fmt.Errorf("derive event authority: %w", err)
	}

	creatorBase, _, err := DeriveAssociatedTokenAddress(accounts.Creator, accounts.BaseMint, accounts.BaseTokenProgram)
	if err != nil {
		return nil, fmt.Errorf("derive creator base token account: %w", err)
	}
	creatorQuote, _, err := DeriveAssociatedTokenAddress(accounts.Creator, accounts.QuoteMint, accounts.QuoteTokenProgram)
	if err != nil {
		return nil, fmt.Errorf("derive creator quote token account: %w", err)
	}
	creatorLP, _, err := DeriveAssociatedTokenAddress(accounts.Creator, lpMint, Token2022ProgramID)
	if err != nil {
		return nil, fmt.Errorf("derive creator lp token account: %w", err)
	}
	poolBase, _, err := DeriveAssociatedTokenAddress(pool, accounts.BaseMint, accounts.BaseTokenProgram)
	if err != nil {
		return nil, fmt.Errorf("derive pool base token account: %w", err)
	}
	poolQuote, _, err := DeriveAssociatedTokenAddress(pool, accounts.QuoteMint, accounts.QuoteTokenProgram)
	if err != nil {
		return nil, fmt.Errorf("derive pool quote token account: %w", err)
	}

	metas := []*solana.AccountMeta{
		solana.NewAccountMeta(pool, true, false),
		solana.NewAccountMeta(globalConfig, false, false),
		solana.NewAccountMeta(accounts.Creator, true, true),
		solana.NewAccountMeta(accounts.BaseMint, false, false),
		solana.NewAccountMeta(accounts.QuoteMint, false, false),
		solana.NewAccountMeta(lpMint, true, false),
		solana.NewAccountMeta(creatorBase, true, false),
		solana.NewAccountMeta(creatorQuote, true, false),
		solana.NewAccountMeta(creatorLP, true, false),
		solana.NewAccountMeta(poolBase, true, false),
		solana.NewAccountMeta(poolQuote, true, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(Token2022ProgramID, false, false),
		solana.NewAccountMeta(accounts.BaseTokenProgram, false, false),
		solana.NewAccountMeta(accounts.QuoteTokenProgram, false, false),
		solana.NewAccountMeta(solana.SPLAssociatedTokenAccountProgramID, false, false),
		solana.NewAccountMeta(eventAuthority, false, false),
		solana.NewAccountMeta(ProgramID, false, false),
	}

	data, err := encodeInstructionData(createPoolDiscriminator, args)
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(ProgramID, metas, data), nil
}

// BuildDepositInstruction encodes a deposit minting args.LPTokenAmountOut
// LP tokens for at most the given token amounts.
func BuildDepositInstruction(accounts LiquidityAccounts, args DepositArgs) (solana.Instruction, error) {
	metas, err := liquidityAccountMetas(accounts)
	if err != nil {
		return nil, err
	}
	data, err := encodeInstructionData(depositDiscriminator, args)
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(ProgramID, metas, data), nil
}

// BuildWithdrawInstruction encodes a withdrawal burning
// args.LPTokenAmountIn LP tokens for at least the given token amounts.
func BuildWithdrawInstruction(accounts LiquidityAccounts, args WithdrawArgs) (solana.Instruction, error) {
	metas, err := liquidityAccountMetas(accounts)
	if err != nil {
		return nil, err
	}
	data, err := encodeInstructionData(withdrawDiscriminator, args)
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(ProgramID, metas, data), nil
}

// BuildExtendAccountInstruction encodes the resize call for accounts
// created before the coin-creator extension. It carries no args beyond
// the discriminator.
func BuildExtendAccountInstruction(account, user solana.PublicKey) (solana.Instruction, error) {
	eventAuthority, _, err := DeriveEventAuthorityAddress()
	if err != nil {
		return nil, fmt.Errorf("derive event authority: %w", err)
	}

	metas := []*solana.AccountMeta{
		solana.NewAccountMeta(account, true, false),
		solana.NewAccountMeta(user, true, true),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(eventAuthority, false, false),
		solana.NewAccountMeta(ProgramID, false, false),
	}

	data, err := encodeInstructionData(extendAccountDiscriminator, nil)
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(ProgramID, metas, data), nil
}
