// =====================================
// File: pumpswap/events.go
// =====================================
package pumpswap

import (
	"bytes"
	"encoding/base64"
	"strings"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// programDataPrefix marks log lines that carry a base64 event record.
const programDataPrefix = "Program data: "

// Event discriminators, the first eight bytes of a decoded record.
var (
	createEventDiscriminator    = []byte{27, 114, 169, 77, 222, 235, 99, 118}
	tradeEventDiscriminator     = []byte{189, 219, 127, 211, 78, 230, 97, 238}
	completeEventDiscriminator  = []byte{95, 114, 97, 156, 212, 46, 152, 8}
	setParamsEventDiscriminator = []byte{223, 195, 159, 246, 62, 48, 143, 131}
)

// EventKind names the record type behind an Event.
type EventKind string

const (
	EventKindCreate    EventKind = "create"
	EventKindTrade     EventKind = "trade"
	EventKindComplete  EventKind = "complete"
	EventKindSetParams EventKind = "set_params"
)

// Event is any decoded program event record.
type Event interface {
	Kind() EventKind
}

// CreateEvent announces a new token launch on the bonding curve.
type CreateEvent struct {
	Name                 string
	Symbol               string
	URI                  string
	Mint                 solana.PublicKey
	BondingCurve         solana.PublicKey
	User                 solana.PublicKey
	Creator              solana.PublicKey
	Timestamp            int64
	VirtualSolReserves   uint64
	VirtualTokenReserves uint64
	RealSolReserves      uint64
	RealTokenReserves    uint64
}

func (*CreateEvent) Kind() EventKind { return EventKindCreate }

// TradeEvent reports one executed swap together with the reserves after
// it settled.
type TradeEvent struct {
	Mint                  solana.PublicKey
	SolAmount             uint64
	TokenAmount           uint64
	IsBuy                 bool
	User                  solana.PublicKey
	Timestamp             int64
	VirtualSolReserves    uint64
	VirtualTokenReserves  uint64
	RealSolReserves       uint64
	RealTokenReserves     uint64
	FeeRecipient          solana.PublicKey
	FeeBasisPoints        uint64
	Fee                   uint64
	Creator               solana.PublicKey
	CreatorFeeBasisPoints uint64
	CreatorFee            uint64
}

func (*TradeEvent) Kind() EventKind { return EventKindTrade }

// CompleteEvent reports a bonding curve that filled and is ready to
// graduate into an AMM pool.
type CompleteEvent struct {
	User         solana.PublicKey
	Mint         solana.PublicKey
	BondingCurve solana.PublicKey
	Timestamp    int64
}

func (*CompleteEvent) Kind() EventKind { return EventKindComplete }

// SetParamsEvent reports an update of the launchpad's curve parameters.
type SetParamsEvent struct {
	FeeRecipient                solana.PublicKey
	InitialVirtualTokenReserves uint64
	InitialVirtualSolReserves   uint64
	InitialRealTokenReserves    uint64
	TokenTotalSupply            uint64
	FeeBasisPoints              uint64
}

func (*SetParamsEvent) Kind() EventKind { return EventKindSetParams }

// ExtractEventData strips the program-data marker from a log line and
// returns the base64 payload. The second return is false for log lines
// that carry no event record.
func ExtractEventData(logLine string) (string, bool) {
	return strings.CutPrefix(logLine, programDataPrefix)
}

// DecodeEvent decodes one base64 event payload. The signature is only
// used to annotate errors and may be empty. Unknown discriminators
// produce an error satisfying IsUnknownEvent; well-formed records decode
// into the matching typed event.
func DecodeEvent(signature, data string) (Event, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, &DecodeError{Signature: signature, Data: []byte(data), Err: err}
	}
	if len(raw) < 8 {
		return nil, &DecodeError{Signature: signature, Data: raw, Err: ErrEventTooShort}
	}

	discriminator, body := raw[:8], raw[8:]
	switch {
	case bytes.Equal(discriminator, createEventDiscriminator):
		event := new(CreateEvent)
		if err := bin.NewBorshDecoder(body).Decode(event); err != nil {
			return nil, &DecodeError{Signature: signature, Record: "create", Data: raw, Err: err}
		}
		return event, nil

	case bytes.Equal(discriminator, tradeEventDiscriminator):
		event := new(TradeEvent)
		if err := bin.NewBorshDecoder(body).Decode(event); err != nil {
			return nil, &DecodeError{Signature: signature, Record: "trade", Data: raw, Err: err}
		}
		return event, nil

	case bytes.Equal(discriminator, completeEventDiscriminator):
		event := new(CompleteEvent)
		if err := bin.NewBorshDecoder(body).Decode(event); err != nil {
			return nil, &DecodeError{Signature: signature, Record: "complete", Data: raw, Err: err}
		}
		return event, nil

	case bytes.Equal(discriminator, setParamsEventDiscriminator):
		event := new(SetParamsEvent)
		if err := bin.NewBorshDecoder(body).Decode(event); err != nil {
			return nil, &DecodeError{Signature: signature, Record: "set_params", Data: raw, Err: err}
		}
		return event, nil

	default:
		return nil, &DecodeError{Signature: signature, Data: raw, Err: ErrUnknownEvent}
	}
}

// DecodeEventFromLog extracts and decodes the event carried by one log
// line. Lines without program data fail with ErrNotProgramData.
func DecodeEventFromLog(signature, logLine string) (Event, error) {
	payload, ok := ExtractEventData(logLine)
	if !ok {
		return nil, &DecodeError{Signature: signature, Err: ErrNotProgramData}
	}
	return DecodeEvent(signature, payload)
}
