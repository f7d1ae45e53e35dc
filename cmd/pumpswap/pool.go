package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rovshanmuradov/pumpswap-go/internal/chain"
	"github.com/rovshanmuradov/pumpswap-go/pumpswap"
)

func newPoolCmd(opts *globalOpts) *cobra.Command {
	var (
		address       string
		mint          string
		baseMint      string
		quoteMint     string
		baseDecimals  uint8
		quoteDecimals uint8
	)
	cmd := &cobra.Command{
		Use:   "pool",
		Short: "Inspect a pool by address, by token mint, or by mint pair",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			service := newPoolService(opts)

			snapshot, err := lookupPool(ctx, service, opts, address, mint, baseMint, quoteMint)
			if err != nil {
				return err
			}

			printPoolSnapshot(cmd, snapshot, baseDecimals, quoteDecimals)
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "pool address")
	cmd.Flags().StringVar(&mint, "mint", "", "token mint, resolves the canonical WSOL pool")
	cmd.Flags().StringVar(&baseMint, "base", "", "base mint, searched together with --quote")
	cmd.Flags().StringVar(&quoteMint, "quote", "", "quote mint for --base (defaults to the configured quote mint)")
	cmd.Flags().Uint8Var(&baseDecimals, "base-decimals", pumpswap.PumpTokenDecimals, "base mint decimals for display")
	cmd.Flags().Uint8Var(&quoteDecimals, "quote-decimals", pumpswap.WSOLDecimals, "quote mint decimals for display")

	return cmd
}

// lookupPool resolves the one lookup mode the flags select
func lookupPool(ctx context.Context, service *chain.Service, opts *globalOpts, address, mint, baseMint, quoteMint string) (*chain.PoolSnapshot, error) {
	switch {
	case address != "":
		pk, err := parsePubkey("address", address)
		if err != nil {
			return nil, err
		}
		return service.LoadWithRetry(ctx, pk)

	case mint != "":
		pk, err := parsePubkey("mint", mint)
		if err != nil {
			return nil, err
		}
		return service.CanonicalPool(ctx, pk)

	case baseMint != "":
		base, err := parsePubkey("base", baseMint)
		if err != nil {
			return nil, err
		}

		if quoteMint == "" {
			quoteMint = opts.cfg.QuoteMint
		}
		quote, err := parsePubkey("quote", quoteMint)
		if err != nil {
			return nil, err
		}
		return service.FindPoolWithRetry(ctx, base, quote)

	default:
		return nil, fmt.Errorf("one of --address, --mint or --base is required")
	}
}

// printPoolSnapshot renders a loaded pool and its fee schedule
func printPoolSnapshot(cmd *cobra.Command, snapshot *chain.PoolSnapshot, baseDecimals, quoteDecimals uint8) {
	out := cmd.OutOrStdout()
	pool := snapshot.Pool

	fmt.Fprintf(out, "%-24s %s\n", "pool", pool.Address)
	fmt.Fprintf(out, "%-24s %d\n", "index", pool.Index)
	fmt.Fprintf(out, "%-24s %s\n", "creator", pool.Creator)
	fmt.Fprintf(out, "%-24s %s\n", "base mint", pool.BaseMint)
	fmt.Fprintf(out, "%-24s %s\n", "quote mint", pool.QuoteMint)
	fmt.Fprintf(out, "%-24s %s\n", "lp mint", pool.LPMint)
	fmt.Fprintf(out, "%-24s %s\n", "base token account", pool.PoolBaseTokenAccount)
	fmt.Fprintf(out, "%-24s %s\n", "quote token account", pool.PoolQuoteTokenAccount)

	printAmount(out, "base reserve", snapshot.BaseReserve, baseDecimals)
	printAmount(out, "quote reserve", snapshot.QuoteReserve, quoteDecimals)
	printAmount(out, "lp supply", pool.LPSupply, baseDecimals)

	state := snapshot.State()
	fmt.Fprintf(out, "%-24s %d bps\n", "lp fee", state.LPFeeBasisPoints)
	fmt.Fprintf(out, "%-24s %d bps\n", "protocol fee", state.ProtocolFeeBasisPoints)
	if state.CoinCreator.IsZero() {
		fmt.Fprintf(out, "%-24s none\n", "creator fee")
	} else {
		fmt.Fprintf(out, "%-24s %d bps to %s\n", "creator fee", state.CoinCreatorFeeBasisPoints, state.CoinCreator)
	}

	if price, err := pumpswap.PoolPrice(state, baseDecimals, quoteDecimals); err == nil {
		fmt.Fprintf(out, "%-24s %s\n", "spot price", price.String())
	}

	if snapshot.NeedsExtend() {
		fmt.Fprintf(out, "%-24s account holds %d bytes and needs an extend_account before trading\n",
			"warning", snapshot.DataSize)
	}
}
