package main

import (
	"fmt"
	"io"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/rovshanmuradov/pumpswap-go/pumpswap"
)

func newDeriveCmd(opts *globalOpts) *cobra.Command {
	var (
		mint    string
		user    string
		creator string
		owner   string
		index   uint16
	)
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive the program addresses for a token mint",
		RunE: func(cmd *cobra.Command, args []string) error {
			mintKey, err := parsePubkey("mint", mint)
			if err != nil {
				return err
			}

			quoteKey, err := parsePubkey("quote mint", opts.cfg.QuoteMint)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-28s %s\n", "amm program", pumpswap.ProgramID)

			if err := printDerived(out, "global config", pumpswap.DeriveGlobalConfigAddress); err != nil {
				return err
			}
			if err := printDerived(out, "event authority", pumpswap.DeriveEventAuthorityAddress); err != nil {
				return err
			}
			if err := printDerived(out, "global volume accumulator", pumpswap.DeriveGlobalVolumeAccumulatorAddress); err != nil {
				return err
			}

			if err := printDerived(out, "pool authority", func() (solana.PublicKey, uint8, error) {
				return pumpswap.DerivePoolAuthorityAddress(mintKey)
			}); err != nil {
				return err
			}

			canonical, _, err := pumpswap.DeriveCanonicalPoolAddress(mintKey)
			if err != nil {
				return err
			}
			if err := printDerived(out, "canonical pool", func() (solana.PublicKey, uint8, error) {
				return pumpswap.DeriveCanonicalPoolAddress(mintKey)
			}); err != nil {
				return err
			}
			if err := printDerived(out, "canonical lp mint", func() (solana.PublicKey, uint8, error) {
				return pumpswap.DeriveLPMintAddress(canonical)
			}); err != nil {
				return err
			}

			if owner != "" {
				ownerKey, err := parsePubkey("owner", owner)
				if err != nil {
					return err
				}
				if err := printDerived(out, fmt.Sprintf("pool (owner, index %d)", index), func() (solana.PublicKey, uint8, error) {
					return pumpswap.DerivePoolAddress(index, ownerKey, mintKey, quoteKey)
				}); err != nil {
					return err
				}
			}

			if user != "" {
				userKey, err := parsePubkey("user", user)
				if err != nil {
					return err
				}
				if err := printDerived(out, "user volume accumulator", func() (solana.PublicKey, uint8, error) {
					return pumpswap.DeriveUserVolumeAccumulatorAddress(userKey)
				}); err != nil {
					return err
				}
				if err := printDerived(out, "user base ata", func() (solana.PublicKey, uint8, error) {
					return pumpswap.DeriveAssociatedTokenAddress(userKey, mintKey, solana.TokenProgramID)
				}); err != nil {
					return err
				}
				if err := printDerived(out, "user quote ata", func() (solana.PublicKey, uint8, error) {
					return pumpswap.DeriveAssociatedTokenAddress(userKey, quoteKey, solana.TokenProgramID)
				}); err != nil {
					return err
				}
			}

			if creator != "" {
				creatorKey, err := parsePubkey("creator", creator)
				if err != nil {
					return err
				}

				vault, _, err := pumpswap.DeriveCoinCreatorVaultAuthorityAddress(creatorKey)
				if err != nil {
					return err
				}
				if err := printDerived(out, "creator vault authority", func() (solana.PublicKey, uint8, error) {
					return pumpswap.DeriveCoinCreatorVaultAuthorityAddress(creatorKey)
				}); err != nil {
					return err
				}
				if err := printDerived(out, "creator vault quote ata", func() (solana.PublicKey, uint8, error) {
					return pumpswap.DeriveAssociatedTokenAddress(vault, quoteKey, solana.TokenProgramID)
				}); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&mint, "mint", "", "token mint")
	cmd.Flags().StringVar(&user, "user", "", "optional user, adds volume accumulator and token accounts")
	cmd.Flags().StringVar(&creator, "creator", "", "optional coin creator, adds the fee vault addresses")
	cmd.Flags().StringVar(&owner, "owner", "", "optional pool owner, adds the owner's pool address")
	cmd.Flags().Uint16Var(&index, "index", 0, "pool index for --owner")
	_ = cmd.MarkFlagRequired("mint")

	return cmd
}

// printDerived prints one derived address with its bump seed
func printDerived(w io.Writer, label string, derive func() (solana.PublicKey, uint8, error)) error {
	address, bump, err := derive()
	if err != nil {
		return fmt.Errorf("derive %s: %w", label, err)
	}
	fmt.Fprintf(w, "%-28s %s (bump %d)\n", label, address, bump)
	return nil
}
