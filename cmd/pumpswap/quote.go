package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rovshanmuradov/pumpswap-go/pumpswap"
)

// poolStateFlags are the pool inputs shared by the quote commands.
// Reserves come either from --pool over RPC or from the manual flags.
type poolStateFlags struct {
	pool         string
	baseReserve  uint64
	quoteReserve uint64
	lpSupply     uint64
	lpFeeBps     uint64
	protocolBps  uint64
	creatorBps   uint64
	creator      string
}

func registerPoolStateFlags(cmd *cobra.Command, f *poolStateFlags) {
	cmd.Flags().StringVar(&f.pool, "pool", "", "pool address to load reserves from (overrides manual flags)")
	cmd.Flags().Uint64Var(&f.baseReserve, "base-reserve", 0, "base reserve, raw units")
	cmd.Flags().Uint64Var(&f.quoteReserve, "quote-reserve", 0, "quote reserve, lamports")
	cmd.Flags().Uint64Var(&f.lpSupply, "lp-supply", 0, "LP token supply, raw units")
	cmd.Flags().Uint64Var(&f.lpFeeBps, "lp-fee-bps", 20, "LP fee, basis points")
	cmd.Flags().Uint64Var(&f.protocolBps, "protocol-fee-bps", 5, "protocol fee, basis points")
	cmd.Flags().Uint64Var(&f.creatorBps, "creator-fee-bps", 0, "creator fee, basis points (sells charge it only when --creator is set)")
	cmd.Flags().StringVar(&f.creator, "creator", "", "coin creator address")
}

// resolve builds the pool state the quote functions consume
func (f *poolStateFlags) resolve(ctx context.Context, opts *globalOpts) (pumpswap.PoolState, error) {
	if f.pool != "" {
		address, err := parsePubkey("pool", f.pool)
		if err != nil {
			return pumpswap.PoolState{}, err
		}

		snapshot, err := newPoolService(opts).LoadWithRetry(ctx, address)
		if err != nil {
			return pumpswap.PoolState{}, err
		}
		return snapshot.State(), nil
	}

	state := pumpswap.PoolState{
		BaseReserve:               f.baseReserve,
		QuoteReserve:              f.quoteReserve,
		LPSupply:                  f.lpSupply,
		LPFeeBasisPoints:          f.lpFeeBps,
		ProtocolFeeBasisPoints:    f.protocolBps,
		CoinCreatorFeeBasisPoints: f.creatorBps,
	}

	if f.creator != "" {
		creator, err := parsePubkey("creator", f.creator)
		if err != nil {
			return pumpswap.PoolState{}, err
		}
		state.CoinCreator = creator
	}

	return state, nil
}

// slippageFor returns the command's slippage flag, falling back to the
// configured default when the flag was not set.
func slippageFor(cmd *cobra.Command, opts *globalOpts, flagValue uint8) uint8 {
	if cmd.Flags().Changed("slippage") {
		return flagValue
	}
	return opts.cfg.SlippagePercent
}

func newQuoteCmd(opts *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Price swaps and liquidity changes offline or against a live pool",
	}
	cmd.AddCommand(
		newQuoteBuyCmd(opts),
		newQuoteSellCmd(opts),
		newQuoteDepositCmd(opts),
		newQuoteWithdrawCmd(opts),
	)
	return cmd
}

func newQuoteBuyCmd(opts *globalOpts) *cobra.Command {
	var (
		state         poolStateFlags
		baseOut       uint64
		quoteIn       uint64
		slippage      uint8
		baseDecimals  uint8
		quoteDecimals uint8
	)
	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Price a buy, by exact base out or exact quote in",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
			defer cancel()

			if (baseOut == 0) == (quoteIn == 0) {
				return fmt.Errorf("exactly one of --base-out and --quote-in is required")
			}

			pool, err := state.resolve(ctx, opts)
			if err != nil {
				return err
			}
			tolerance := slippageFor(cmd, opts, slippage)

			out := cmd.OutOrStdout()
			if baseOut != 0 {
				res, err := pumpswap.BuyBaseOut(pool, baseOut, tolerance)
				if err != nil {
					return err
				}
				printAmount(out, "raw quote in", res.RawQuoteIn, quoteDecimals)
				printAmount(out, "quote in (with fees)", res.QuoteIn, quoteDecimals)
				printAmount(out, "max quote in", res.MaxQuoteIn, quoteDecimals)
				return nil
			}

			res, err := pumpswap.BuyQuoteIn(pool, quoteIn, tolerance)
			if err != nil {
				return err
			}
			printAmount(out, "effective quote in", res.EffectiveQuoteIn, quoteDecimals)
			printAmount(out, "base out", res.BaseOut, baseDecimals)
			printAmount(out, "max quote in", res.MaxQuoteIn, quoteDecimals)
			return nil
		},
	}

	registerPoolStateFlags(cmd, &state)
	cmd.Flags().Uint64Var(&baseOut, "base-out", 0, "exact base amount to receive, raw units")
	cmd.Flags().Uint64Var(&quoteIn, "quote-in", 0, "exact quote amount to spend, lamports")
	cmd.Flags().Uint8Var(&slippage, "slippage", 1, "slippage tolerance, whole percent")
	cmd.Flags().Uint8Var(&baseDecimals, "base-decimals", pumpswap.PumpTokenDecimals, "base mint decimals for display")
	cmd.Flags().Uint8Var(&quoteDecimals, "quote-decimals", pumpswap.WSOLDecimals, "quote mint decimals for display")

	return cmd
}

func newQuoteSellCmd(opts *globalOpts) *cobra.Command {
	var (
		state         poolStateFlags
		baseIn        uint64
		quoteOut      uint64
		slippage      uint8
		baseDecimals  uint8
		quoteDecimals uint8
	)
	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Price a sell, by exact base in or exact quote out",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
			defer cancel()

			if (baseIn == 0) == (quoteOut == 0) {
				return fmt.Errorf("exactly one of --base-in and --quote-out is required")
			}

			pool, err := state.resolve(ctx, opts)
			if err != nil {
				return err
			}
			tolerance := slippageFor(cmd, opts, slippage)

			out := cmd.OutOrStdout()
			if baseIn != 0 {
				res, err := pumpswap.SellBaseIn(pool, baseIn, tolerance)
				if err != nil {
					return err
				}
				printAmount(out, "raw quote out", res.RawQuoteOut, quoteDecimals)
				printAmount(out, "quote out (after fees)", res.QuoteOut, quoteDecimals)
				printAmount(out, "min quote out", res.MinQuoteOut, quoteDecimals)
				return nil
			}

			res, err := pumpswap.SellQuoteOut(pool, quoteOut, tolerance)
			if err != nil {
				return err
			}
			printAmount(out, "raw quote out", res.RawQuoteOut, quoteDecimals)
			printAmount(out, "base in", res.BaseIn, baseDecimals)
			printAmount(out, "min quote out", res.MinQuoteOut, quoteDecimals)
			return nil
		},
	}

	registerPoolStateFlags(cmd, &state)
	cmd.Flags().Uint64Var(&baseIn, "base-in", 0, "exact base amount to sell, raw units")
	cmd.Flags().Uint64Var(&quoteOut, "quote-out", 0, "exact quote amount to receive after fees, lamports")
	cmd.Flags().Uint8Var(&slippage, "slippage", 1, "slippage tolerance, whole percent")
	cmd.Flags().Uint8Var(&baseDecimals, "base-decimals", pumpswap.PumpTokenDecimals, "base mint decimals for display")
	cmd.Flags().Uint8Var(&quoteDecimals, "quote-decimals", pumpswap.WSOLDecimals, "quote mint decimals for display")

	return cmd
}

func newQuoteDepositCmd(opts *globalOpts) *cobra.Command {
	var (
		state         poolStateFlags
		lpOut         uint64
		baseIn        uint64
		slippage      uint8
		baseDecimals  uint8
		quoteDecimals uint8
	)
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Price a liquidity deposit, by exact LP out or exact base in",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
			defer cancel()

			if lpOut != 0 && baseIn != 0 {
				return fmt.Errorf("--lp-out and --base-in are mutually exclusive")
			}

			pool, err := state.resolve(ctx, opts)
			if err != nil {
				return err
			}
			tolerance := slippageFor(cmd, opts, slippage)

			out := cmd.OutOrStdout()
			if baseIn != 0 {
				res, err := pumpswap.DepositBaseIn(pool, baseIn, tolerance)
				if err != nil {
					return err
				}
				printAmount(out, "quote in", res.QuoteIn, quoteDecimals)
				printAmount(out, "lp out", res.LPOut, baseDecimals)
				printAmount(out, "max base in", res.MaxBaseIn, baseDecimals)
				printAmount(out, "max quote in", res.MaxQuoteIn, quoteDecimals)
				return nil
			}

			// An exact-LP quote of zero is legal and prices to zero.
			res, err := pumpswap.DepositLPOut(pool, lpOut, tolerance)
			if err != nil {
				return err
			}
			printAmount(out, "base in", res.BaseIn, baseDecimals)
			printAmount(out, "quote in", res.QuoteIn, quoteDecimals)
			printAmount(out, "max base in", res.MaxBaseIn, baseDecimals)
			printAmount(out, "max quote in", res.MaxQuoteIn, quoteDecimals)
			return nil
		},
	}

	registerPoolStateFlags(cmd, &state)
	cmd.Flags().Uint64Var(&lpOut, "lp-out", 0, "exact LP amount to mint, raw units")
	cmd.Flags().Uint64Var(&baseIn, "base-in", 0, "exact base amount to add, raw units")
	cmd.Flags().Uint8Var(&slippage, "slippage", 1, "slippage tolerance, whole percent")
	cmd.Flags().Uint8Var(&baseDecimals, "base-decimals", pumpswap.PumpTokenDecimals, "base mint decimals for display")
	cmd.Flags().Uint8Var(&quoteDecimals, "quote-decimals", pumpswap.WSOLDecimals, "quote mint decimals for display")

	return cmd
}

func newQuoteWithdrawCmd(opts *globalOpts) *cobra.Command {
	var (
		state         poolStateFlags
		lpIn          uint64
		slippage      uint8
		baseDecimals  uint8
		quoteDecimals uint8
	)
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Price a liquidity withdrawal for an exact LP amount",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 20*time.Second)
			defer cancel()

			pool, err := state.resolve(ctx, opts)
			if err != nil {
				return err
			}
			tolerance := slippageFor(cmd, opts, slippage)

			res, err := pumpswap.WithdrawLPIn(pool, lpIn, tolerance)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printAmount(out, "base out", res.BaseOut, baseDecimals)
			printAmount(out, "quote out", res.QuoteOut, quoteDecimals)
			printAmount(out, "min base out", res.MinBaseOut, baseDecimals)
			printAmount(out, "min quote out", res.MinQuoteOut, quoteDecimals)
			return nil
		},
	}

	registerPoolStateFlags(cmd, &state)
	cmd.Flags().Uint64Var(&lpIn, "lp-in", 0, "exact LP amount to burn, raw units")
	cmd.Flags().Uint8Var(&slippage, "slippage", 1, "slippage tolerance, whole percent")
	cmd.Flags().Uint8Var(&baseDecimals, "base-decimals", pumpswap.PumpTokenDecimals, "base mint decimals for display")
	cmd.Flags().Uint8Var(&quoteDecimals, "quote-decimals", pumpswap.WSOLDecimals, "quote mint decimals for display")
	_ = cmd.MarkFlagRequired("lp-in")

	return cmd
}
