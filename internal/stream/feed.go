// =====================================
// File: internal/stream/feed.go
// =====================================
package stream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/pumpswap-go/pumpswap"
)

// FeedStats counts what a feed has seen so far.
type FeedStats struct {
	// Lines is the number of log lines scanned.
	Lines uint64
	// Records is the number of events decoded and handed to the
	// dispatcher.
	Records uint64
	// Unknown is the number of payloads skipped for an unrecognized
	// discriminator, usually CPI events from other programs.
	Unknown uint64
	// Failures is the number of payloads that failed to decode.
	Failures uint64
	// Dropped is the number of records the dispatcher refused.
	Dropped uint64
}

// Feed scans program log lines, decodes the AMM events they carry and
// publishes them to a dispatcher. Lines without event payloads and
// payloads from other programs are skipped; the feed never aborts on a
// bad record.
type Feed struct {
	dispatcher *Dispatcher
	logger     *zap.Logger

	lines    atomic.Uint64
	records  atomic.Uint64
	unknown  atomic.Uint64
	failures atomic.Uint64
	dropped  atomic.Uint64
}

// NewFeed creates a feed publishing into the given dispatcher.
func NewFeed(dispatcher *Dispatcher, logger *zap.Logger) *Feed {
	return &Feed{
		dispatcher: dispatcher,
		logger:     logger.Named("feed"),
	}
}

// Run scans r line by line until EOF or context cancellation.
func (f *Feed) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		f.ProcessLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan log lines: %w", err)
	}
	return nil
}

// ProcessLine decodes a single log line and publishes whatever event it
// carries.
func (f *Feed) ProcessLine(line string) {
	f.lines.Add(1)

	data, ok := pumpswap.ExtractEventData(line)
	if !ok {
		return
	}

	event, err := pumpswap.DecodeEvent("", data)
	if err != nil {
		if pumpswap.IsUnknownEvent(err) {
			f.unknown.Add(1)
			return
		}
		f.failures.Add(1)
		f.logger.Debug("undecodable program data", zap.Error(err))
		return
	}

	if err := f.dispatcher.Publish(&Record{Event: event}); err != nil {
		f.dropped.Add(1)
		return
	}
	f.records.Add(1)
}

// Stats returns a snapshot of the feed's counters.
func (f *Feed) Stats() FeedStats {
	return FeedStats{
		Lines:    f.lines.Load(),
		Records:  f.records.Load(),
		Unknown:  f.unknown.Load(),
		Failures: f.failures.Load(),
		Dropped:  f.dropped.Load(),
	}
}
