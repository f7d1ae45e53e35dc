package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/pumpswap-go/internal/chain"
	"github.com/rovshanmuradov/pumpswap-go/internal/config"
	"github.com/rovshanmuradov/pumpswap-go/internal/logger"
	"github.com/rovshanmuradov/pumpswap-go/pumpswap"
)

// globalOpts carries the root flags and the runtime pieces every
// command shares.
type globalOpts struct {
	configPath string
	rpcURL     string
	debug      bool

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &globalOpts{}

	cmd := &cobra.Command{
		Use:          "pumpswap",
		Short:        "Quote, derive and decode helpers for the pump.fun AMM",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if opts.rpcURL != "" {
				cfg.RPCEndpoint = opts.rpcURL
			}
			if opts.debug {
				cfg.DebugLogging = true
			}

			log, err := logger.Init(cfg.DebugLogging, cfg.LogFile)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			opts.cfg = cfg
			opts.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	cmd.PersistentFlags().StringVar(&opts.rpcURL, "rpc", "", "RPC endpoint override")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(
		newQuoteCmd(opts),
		newPoolCmd(opts),
		newDeriveCmd(opts),
		newDecodeCmd(opts),
		newEventsCmd(opts),
	)

	return cmd
}

// newPoolService wires an RPC-backed pool service from the resolved
// config.
func newPoolService(opts *globalOpts) *chain.Service {
	client := chain.NewClient(opts.cfg.RPCEndpoint, chain.Commitment(opts.cfg.Commitment), opts.log)

	serviceOpts := chain.DefaultServiceOptions()
	serviceOpts.MaxRetries = opts.cfg.Retries

	return chain.NewService(client, opts.log, serviceOpts)
}

// parsePubkey parses a base58 public key flag value
func parsePubkey(name, value string) (solana.PublicKey, error) {
	pk, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	return pk, nil
}

// printAmount prints a raw amount with its human-readable form
func printAmount(w io.Writer, label string, amount uint64, decimals uint8) {
	fmt.Fprintf(w, "%-24s %d (%s)\n", label, amount, pumpswap.AmountToDecimal(amount, decimals).String())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
