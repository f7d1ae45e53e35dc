package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/pumpswap-go/internal/stream"
	"github.com/rovshanmuradov/pumpswap-go/pumpswap"
)

var (
	testMintA = solana.PublicKey{0xAA}
	testMintB = solana.PublicKey{0xBB}
	testBase  = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
)

func tradeRecord(sig string, mint solana.PublicKey, isBuy bool, sol uint64, at time.Time) *stream.Record {
	return &stream.Record{
		Signature: sig,
		Event: &pumpswap.TradeEvent{
			Mint:        mint,
			SolAmount:   sol,
			TokenAmount: sol * 100,
			IsBuy:       isBuy,
			User:        solana.PublicKey{0x01},
			Timestamp:   at.Unix(),
			Fee:         sol / 100,
			CreatorFee:  sol / 2000,
		},
	}
}

func generateTestRecords() []*stream.Record {
	// Deliberately out of order so exports must sort by time.
	return []*stream.Record{
		tradeRecord("sig3", testMintB, false, 3_000_000_000, testBase.Add(30*time.Minute)),
		tradeRecord("sig1", testMintA, true, 1_000_000_000, testBase),
		{Signature: "sig-create", Event: &pumpswap.CreateEvent{Name: "Test", Symbol: "TST"}},
		tradeRecord("sig2", testMintA, false, 2_000_000_000, testBase.Add(10*time.Minute)),
		tradeRecord("sig4", testMintB, true, 4_000_000_000, testBase.Add(45*time.Minute)),
	}
}

func TestExportCSV(t *testing.T) {
	exporter := NewExporter(zap.NewNop())

	var buf bytes.Buffer
	n, err := exporter.Export(&buf, generateTestRecords(), Options{Format: FormatCSV})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if n != 4 {
		t.Errorf("expected 4 exported trades, got %d", n)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse exported csv: %v", err)
	}

	// Header plus four trades, the create event is skipped.
	if len(rows) != 5 {
		t.Fatalf("expected 5 csv rows, got %d", len(rows))
	}
	if rows[0][0] != "signature" || rows[0][3] != "side" {
		t.Errorf("unexpected header row: %v", rows[0])
	}

	// Rows come out sorted by timestamp.
	wantOrder := []string{"sig1", "sig2", "sig3", "sig4"}
	for i, want := range wantOrder {
		if rows[i+1][0] != want {
			t.Errorf("row %d: expected %s, got %s", i, want, rows[i+1][0])
		}
	}
}

func TestExportJSON(t *testing.T) {
	exporter := NewExporter(zap.NewNop())

	var buf bytes.Buffer
	if _, err := exporter.Export(&buf, generateTestRecords(), Options{Format: FormatJSON}); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var payload struct {
		TradeCount int     `json:"trade_count"`
		Summary    Summary `json:"summary"`
		Trades     []Row   `json:"trades"`
	}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("parse exported json: %v", err)
	}

	if payload.TradeCount != 4 {
		t.Errorf("expected 4 trades, got %d", payload.TradeCount)
	}
	if payload.Summary.Buys != 2 || payload.Summary.Sells != 2 {
		t.Errorf("unexpected summary counts: %+v", payload.Summary)
	}
	if payload.Summary.UniqueMints != 2 {
		t.Errorf("expected 2 unique mints, got %d", payload.Summary.UniqueMints)
	}
	if payload.Summary.BuyVolume != 5_000_000_000 {
		t.Errorf("expected buy volume 5000000000, got %d", payload.Summary.BuyVolume)
	}
	if !payload.Summary.FirstTrade.Equal(testBase) {
		t.Errorf("expected first trade at %s, got %s", testBase, payload.Summary.FirstTrade)
	}
}

func TestExportFilters(t *testing.T) {
	exporter := NewExporter(zap.NewNop())
	records := generateTestRecords()

	cases := []struct {
		name     string
		opts     Options
		wantSigs []string
	}{
		{
			name:     "side",
			opts:     Options{Format: FormatCSV, Side: "buy"},
			wantSigs: []string{"sig1", "sig4"},
		},
		{
			name:     "mint",
			opts:     Options{Format: FormatCSV, Mint: testMintA.String()},
			wantSigs: []string{"sig1", "sig2"},
		},
		{
			name: "time window",
			opts: Options{
				Format: FormatCSV,
				Start:  testBase.Add(5 * time.Minute),
				End:    testBase.Add(40 * time.Minute),
			},
			wantSigs: []string{"sig2", "sig3"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			n, err := exporter.Export(&buf, records, tc.opts)
			if err != nil {
				t.Fatalf("export failed: %v", err)
			}
			if n != len(tc.wantSigs) {
				t.Errorf("expected %d exported trades, got %d", len(tc.wantSigs), n)
			}

			rows, err := csv.NewReader(&buf).ReadAll()
			if err != nil {
				t.Fatalf("parse exported csv: %v", err)
			}
			if len(rows)-1 != len(tc.wantSigs) {
				t.Fatalf("expected %d trades, got %d", len(tc.wantSigs), len(rows)-1)
			}
			for i, want := range tc.wantSigs {
				if rows[i+1][0] != want {
					t.Errorf("row %d: expected %s, got %s", i, want, rows[i+1][0])
				}
			}
		})
	}
}

func TestExportNoMatches(t *testing.T) {
	exporter := NewExporter(zap.NewNop())

	var buf bytes.Buffer
	_, err := exporter.Export(&buf, generateTestRecords(), Options{
		Format: FormatCSV,
		Mint:   solana.PublicKey{0xFF}.String(),
	})
	if err == nil {
		t.Fatal("expected an error when no trades match")
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written on a failed export, got %d bytes", buf.Len())
	}
}

func TestFormatFromPath(t *testing.T) {
	cases := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "trades.csv", want: FormatCSV},
		{path: "out/day.json", want: FormatJSON},
		{path: "dump.txt", wantErr: true},
		{path: "trades", wantErr: true},
	}

	for _, tc := range cases {
		format, err := FormatFromPath(tc.path)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%s: expected an error", tc.path)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.path, err)
			continue
		}
		if format != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.path, tc.want, format)
		}
	}
}
