// Package export writes decoded trade events to CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/pumpswap-go/internal/stream"
	"github.com/rovshanmuradov/pumpswap-go/pumpswap"
)

// Format is the export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch filepath.Ext(path) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("cannot infer export format from %q, use a .csv or .json path", path)
	}
}

// Options narrows which trades an export includes.
type Options struct {
	Format Format
	Start  time.Time // zero means no lower bound
	End    time.Time // zero means no upper bound
	Mint   string    // base58 mint, empty matches all
	Side   string    // "buy", "sell" or empty for both
}

// Row is one exported trade.
type Row struct {
	Signature   string    `json:"signature,omitempty"`
	Time        time.Time `json:"time"`
	Mint        string    `json:"mint"`
	Side        string    `json:"side"`
	SolAmount   uint64    `json:"sol_amount"`
	TokenAmount uint64    `json:"token_amount"`
	User        string    `json:"user"`
	Fee         uint64    `json:"fee"`
	CreatorFee  uint64    `json:"creator_fee"`
}

func (r Row) csv() []string {
	return []string{
		r.Signature,
		r.Time.Format(time.RFC3339),
		r.Mint,
		r.Side,
		strconv.FormatUint(r.SolAmount, 10),
		strconv.FormatUint(r.TokenAmount, 10),
		r.User,
		strconv.FormatUint(r.Fee, 10),
		strconv.FormatUint(r.CreatorFee, 10),
	}
}

func csvHeaders() []string {
	return []string{"signature", "time", "mint", "side", "sol_amount", "token_amount", "user", "fee", "creator_fee"}
}

// Summary aggregates the exported trades.
type Summary struct {
	Trades      int       `json:"trades"`
	Buys        int       `json:"buys"`
	Sells       int       `json:"sells"`
	UniqueMints int       `json:"unique_mints"`
	BuyVolume   uint64    `json:"buy_volume_lamports"`
	SellVolume  uint64    `json:"sell_volume_lamports"`
	TotalFees   uint64    `json:"total_fees_lamports"`
	FirstTrade  time.Time `json:"first_trade"`
	LastTrade   time.Time `json:"last_trade"`
}

// Exporter turns streamed records into trade export files.
type Exporter struct {
	logger *zap.Logger
}

// NewExporter creates a trade exporter.
func NewExporter(logger *zap.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// Export writes the trade events among records to w and returns how many
// it wrote. Records that are not trades, or that fail the filters, are
// skipped.
func (e *Exporter) Export(w io.Writer, records []*stream.Record, opts Options) (int, error) {
	rows := e.filter(records, opts)
	if len(rows) == 0 {
		return 0, fmt.Errorf("no trades match the export filters")
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Time.Before(rows[j].Time)
	})

	var err error
	switch opts.Format {
	case FormatCSV:
		err = e.writeCSV(w, rows)
	case FormatJSON:
		err = e.writeJSON(w, rows)
	default:
		err = fmt.Errorf("unsupported format: %s", opts.Format)
	}
	if err != nil {
		return 0, err
	}

	e.logger.Info("trades exported",
		zap.Int("count", len(rows)),
		zap.String("format", string(opts.Format)))

	return len(rows), nil
}

func (e *Exporter) filter(records []*stream.Record, opts Options) []Row {
	var rows []Row

	for _, record := range records {
		trade, ok := record.Event.(*pumpswap.TradeEvent)
		if !ok {
			continue
		}

		row := Row{
			Signature:   record.Signature,
			Time:        time.Unix(trade.Timestamp, 0).UTC(),
			Mint:        trade.Mint.String(),
			Side:        "sell",
			SolAmount:   trade.SolAmount,
			TokenAmount: trade.TokenAmount,
			User:        trade.User.String(),
			Fee:         trade.Fee,
			CreatorFee:  trade.CreatorFee,
		}
		if trade.IsBuy {
			row.Side = "buy"
		}

		if !opts.Start.IsZero() && row.Time.Before(opts.Start) {
			continue
		}
		if !opts.End.IsZero() && row.Time.After(opts.End) {
			continue
		}
		if opts.Mint != "" && row.Mint != opts.Mint {
			continue
		}
		if opts.Side != "" && row.Side != opts.Side {
			continue
		}

		rows = append(rows, row)
	}

	return rows
}

func (e *Exporter) writeCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeaders()); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row.csv()); err != nil {
			return fmt.Errorf("write trade row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func (e *Exporter) writeJSON(w io.Writer, rows []Row) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	payload := struct {
		ExportTime time.Time `json:"export_time"`
		TradeCount int       `json:"trade_count"`
		Summary    Summary   `json:"summary"`
		Trades     []Row     `json:"trades"`
	}{
		ExportTime: time.Now().UTC(),
		TradeCount: len(rows),
		Summary:    summarize(rows),
		Trades:     rows,
	}

	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

func summarize(rows []Row) Summary {
	summary := Summary{Trades: len(rows)}
	if len(rows) == 0 {
		return summary
	}

	summary.FirstTrade = rows[0].Time
	summary.LastTrade = rows[len(rows)-1].Time

	mints := make(map[string]struct{})
	for _, row := range rows {
		mints[row.Mint] = struct{}{}
		summary.TotalFees += row.Fee + row.CreatorFee

		if row.Side == "buy" {
			summary.Buys++
			summary.BuyVolume += row.SolAmount
		} else {
			summary.Sells++
			summary.SellVolume += row.SolAmount
		}
	}
	summary.UniqueMints = len(mints)

	return summary
}
