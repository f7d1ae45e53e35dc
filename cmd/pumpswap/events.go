package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rovshanmuradov/pumpswap-go/internal/export"
	"github.com/rovshanmuradov/pumpswap-go/internal/stream"
	"github.com/rovshanmuradov/pumpswap-go/pumpswap"
)

func newEventsCmd(opts *globalOpts) *cobra.Command {
	var (
		filePath   string
		kinds      []string
		exportPath string
		exportMint string
		exportSide string
	)
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Stream decoded events from a program log file or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			subscribed, err := parseEventKinds(kinds)
			if err != nil {
				return err
			}

			var exportFormat export.Format
			if exportPath != "" {
				if exportFormat, err = export.FormatFromPath(exportPath); err != nil {
					return err
				}
			}
			if exportSide != "" && exportSide != "buy" && exportSide != "sell" {
				return fmt.Errorf("--export-side must be buy or sell, got %q", exportSide)
			}

			var source io.Reader = cmd.InOrStdin()
			if filePath != "" && filePath != "-" {
				file, err := os.Open(filePath)
				if err != nil {
					return err
				}
				defer file.Close()
				source = file
			}

			out := cmd.OutOrStdout()

			dispatcher := stream.NewDispatcher(opts.log, 256)
			for _, kind := range subscribed {
				dispatcher.SubscribeFunc(kind, func(_ context.Context, record *stream.Record) error {
					printEvent(out, record.Event)
					return nil
				})
			}

			// Trades are captured on the delivery worker, so the slice
			// needs no locking.
			var captured []*stream.Record
			if exportPath != "" {
				dispatcher.SubscribeFunc(pumpswap.EventKindTrade, func(_ context.Context, record *stream.Record) error {
					captured = append(captured, record)
					return nil
				})
			}

			// Interrupts just end the stream.
			feed := stream.NewFeed(dispatcher, opts.log)
			if err := feed.Run(cmd.Context(), source); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			// Drain whatever the delivery worker still holds.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := dispatcher.Shutdown(shutdownCtx); err != nil {
				return err
			}

			if exportPath != "" {
				if err := writeExport(opts, out, exportPath, captured, export.Options{
					Format: exportFormat,
					Mint:   exportMint,
					Side:   exportSide,
				}); err != nil {
					return err
				}
			}

			stats := feed.Stats()
			fmt.Fprintf(out, "\n%d lines scanned, %d events, %d unknown, %d undecodable, %d dropped\n",
				stats.Lines, stats.Records, stats.Unknown, stats.Failures, stats.Dropped)
			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "-", "program log file, - for stdin")
	cmd.Flags().StringSliceVar(&kinds, "kind", nil, "event kinds to print: create, trade, complete, set_params (default all)")
	cmd.Flags().StringVar(&exportPath, "export", "", "write seen trades to a .csv or .json file")
	cmd.Flags().StringVar(&exportMint, "export-mint", "", "only export trades for this mint")
	cmd.Flags().StringVar(&exportSide, "export-side", "", "only export buy or sell trades")

	return cmd
}

// writeExport dumps the captured trades once the stream has drained.
func writeExport(opts *globalOpts, out io.Writer, path string, records []*stream.Record, exportOpts export.Options) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	count, exportErr := export.NewExporter(opts.log).Export(file, records, exportOpts)
	if closeErr := file.Close(); exportErr == nil {
		exportErr = closeErr
	}
	if exportErr != nil {
		return exportErr
	}

	fmt.Fprintf(out, "exported %d trades to %s\n", count, path)
	return nil
}

// parseEventKinds maps the --kind values onto event kinds, defaulting
// to all of them.
func parseEventKinds(names []string) ([]pumpswap.EventKind, error) {
	all := []pumpswap.EventKind{
		pumpswap.EventKindCreate,
		pumpswap.EventKindTrade,
		pumpswap.EventKindComplete,
		pumpswap.EventKindSetParams,
	}

	if len(names) == 0 {
		return all, nil
	}

	kinds := make([]pumpswap.EventKind, 0, len(names))
	for _, name := range names {
		kind := pumpswap.EventKind(name)

		known := false
		for _, candidate := range all {
			if kind == candidate {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("unknown event kind %q", name)
		}

		kinds = append(kinds, kind)
	}
	return kinds, nil
}
