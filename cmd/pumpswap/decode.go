package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rovshanmuradov/pumpswap-go/pumpswap"
)

func newDecodeCmd(opts *globalOpts) *cobra.Command {
	var filePath string
	cmd := &cobra.Command{
		Use:   "decode [payload...]",
		Short: "Decode base64 event payloads or program log lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			if filePath == "" && len(args) == 0 {
				return fmt.Errorf("provide payloads as arguments or --file")
			}

			out := cmd.OutOrStdout()

			for _, arg := range args {
				event, err := decodeInput(arg)
				if err != nil {
					return err
				}
				printEvent(out, event)
			}

			if filePath != "" {
				file, err := os.Open(filePath)
				if err != nil {
					return err
				}
				defer file.Close()

				scanner := bufio.NewScanner(file)
				for scanner.Scan() {
					// Transaction logs mix event records with plain
					// log lines, so non-events are skipped.
					data, ok := pumpswap.ExtractEventData(scanner.Text())
					if !ok {
						continue
					}

					event, err := pumpswap.DecodeEvent("", data)
					if err != nil {
						if pumpswap.IsUnknownEvent(err) {
							continue
						}
						fmt.Fprintf(out, "undecodable record: %v\n", err)
						continue
					}
					printEvent(out, event)
				}
				return scanner.Err()
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "decode every event record in a log file")

	return cmd
}

// decodeInput decodes one explicit payload, either a full log line or
// a bare base64 record.
func decodeInput(input string) (pumpswap.Event, error) {
	if strings.Contains(input, "Program data: ") {
		return pumpswap.DecodeEventFromLog("", input)
	}
	return pumpswap.DecodeEvent("", input)
}

// printEvent renders one decoded event
func printEvent(w io.Writer, event pumpswap.Event) {
	switch e := event.(type) {
	case *pumpswap.CreateEvent:
		fmt.Fprintf(w, "create  %s (%s) mint=%s curve=%s creator=%s time=%s\n",
			e.Name, e.Symbol, e.Mint, e.BondingCurve, e.Creator, formatTimestamp(e.Timestamp))
		fmt.Fprintf(w, "        virtual sol=%d virtual tokens=%d real sol=%d real tokens=%d\n",
			e.VirtualSolReserves, e.VirtualTokenReserves, e.RealSolReserves, e.RealTokenReserves)

	case *pumpswap.TradeEvent:
		side := "buy"
		if !e.IsBuy {
			side = "sell"
		}
		fmt.Fprintf(w, "trade   %s mint=%s sol=%d tokens=%d user=%s time=%s\n",
			side, e.Mint, e.SolAmount, e.TokenAmount, e.User, formatTimestamp(e.Timestamp))
		fmt.Fprintf(w, "        fee=%d (%d bps) creator fee=%d (%d bps)\n",
			e.Fee, e.FeeBasisPoints, e.CreatorFee, e.CreatorFeeBasisPoints)

	case *pumpswap.CompleteEvent:
		fmt.Fprintf(w, "complete mint=%s curve=%s user=%s time=%s\n",
			e.Mint, e.BondingCurve, e.User, formatTimestamp(e.Timestamp))

	case *pumpswap.SetParamsEvent:
		fmt.Fprintf(w, "set_params fee=%d bps recipient=%s\n",
			e.FeeBasisPoints, e.FeeRecipient)

	default:
		fmt.Fprintf(w, "%s event\n", event.Kind())
	}
}

// formatTimestamp renders a unix timestamp from an event
func formatTimestamp(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(time.RFC3339)
}
