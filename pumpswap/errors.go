package pumpswap

import (
	"errors"
	"fmt"
)

// Arithmetic failures. Every quoting path checks its intermediate math
// and surfaces these instead of wrapping around.
var (
	ErrMultiplicationOverflow = errors.New("multiplication overflow")
	ErrAdditionOverflow       = errors.New("addition overflow")
	ErrSubtractionUnderflow   = errors.New("subtraction underflow")
	ErrDivisionByZero         = errors.New("division by zero")
)

// Input validation failures.
var (
	ErrZeroBaseAmount     = errors.New("base amount cannot be zero")
	ErrZeroQuoteAmount    = errors.New("quote amount cannot be zero")
	ErrZeroLPAmount       = errors.New("lp token amount cannot be zero")
	ErrZeroReserves       = errors.New("pool reserves cannot be zero")
	ErrZeroLPSupply       = errors.New("lp token supply cannot be zero")
	ErrPoolDepleted       = errors.New("swap would deplete pool reserves")
	ErrSlippageOutOfRange = errors.New("slippage must be between 0 and 100 percent")
)

// Event decoding failures.
var (
	ErrEventTooShort    = errors.New("event data shorter than discriminator")
	ErrUnknownEvent     = errors.New("unknown event discriminator")
	ErrNotProgramData   = errors.New("log line carries no program data")
	ErrAccountTooShort  = errors.New("account data too short")
	ErrBadDiscriminator = errors.New("unexpected account discriminator")
)

// DecodeError reports a program log entry that could not be decoded into
// an event, together with the transaction it came from.
type DecodeError struct {
	Signature string
	Record    string
	Data      []byte
	Err       error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Record != "" && e.Signature != "":
		return fmt.Sprintf("decode %s event from tx %s: %v", e.Record, e.Signature, e.Err)
	case e.Record != "":
		return fmt.Sprintf("decode %s event: %v", e.Record, e.Err)
	case e.Signature != "":
		return fmt.Sprintf("decode event from tx %s: %v", e.Signature, e.Err)
	default:
		return fmt.Sprintf("decode event: %v", e.Err)
	}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsUnknownEvent reports whether err was caused by an unrecognized event
// discriminator. Streams usually skip those records instead of failing.
func IsUnknownEvent(err error) bool {
	return errors.Is(err, ErrUnknownEvent)
}
