package valuation

import (
	"fmt"
	"regexp"
)

// symbolRegex checks the broker symbol format: uppercase alphanumeric with
// optional '.', '-' or '/' separators (e.g. "AAPL", "BRK.B", "ES/Z5").
var symbolRegex = regexp.MustCompile(`^[A-Z0-9][A-Z0-9./-]*$`)

// InstrumentType classifies an instrument for valuation purposes.
type InstrumentType int

const (
	// Equity is a plain share: one unit of PnL per unit of price move.
	Equity InstrumentType = iota
	// Option is an option contract, valued with its contract multiplier.
	Option
	// Future is a futures contract, valued with its contract multiplier.
	Future
)

func (t InstrumentType) String() string {
	switch t {
	case Equity:
		return "equity"
	case Option:
		return "option"
	case Future:
		return "future"
	default:
		return "unknown"
	}
}

// ParseInstrumentType parses a string into an InstrumentType.
func ParseInstrumentType(s string) (InstrumentType, error) {
	switch s {
	case "equity":
		return Equity, nil
	case "option":
		return Option, nil
	case "future":
		return Future, nil
	default:
		return 0, fmt.Errorf("unknown instrument type: %q", s)
	}
}

// Instrument is the identity and valuation metadata of a tradeable asset.
// It is immutable once created.
type Instrument struct {
	symbol     string
	typ        InstrumentType
	currency   string
	multiplier Quantity // contract multiplier, 1 for equities
}

// NewInstrument validates and creates an Instrument. The multiplier must be
// positive; equities conventionally use 1.
func NewInstrument(symbol string, typ InstrumentType, currency string, multiplier Quantity) (Instrument, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return Instrument{}, err
	}
	if !multiplier.IsPositive() {
		return Instrument{}, fmt.Errorf("invalid multiplier for %q: must be positive, got %s", symbol, multiplier)
	}
	return Instrument{symbol: symbol, typ: typ, currency: currency, multiplier: multiplier}, nil
}

// NewEquity creates an equity Instrument with a multiplier of 1.
func NewEquity(symbol, currency string) (Instrument, error) {
	return NewInstrument(symbol, Equity, currency, Q(1))
}

// ValidateSymbol checks if a string is a validly formatted broker symbol.
// It returns nil if valid, or a descriptive error if invalid.
func ValidateSymbol(symbol string) error {
	if symbol == "" {
		return fmt.Errorf("invalid symbol: must not be empty")
	}
	if !symbolRegex.MatchString(symbol) {
		return fmt.Errorf("invalid symbol %q: must be uppercase alphanumeric with optional '.', '-' or '/'", symbol)
	}
	return nil
}

func (i Instrument) Symbol() string       { return i.symbol }
func (i Instrument) Type() InstrumentType { return i.typ }
func (i Instrument) Currency() string     { return i.currency }

// Multiplier returns the contract multiplier, or 1 when none was set so that
// zero-value instruments still value like plain shares.
func (i Instrument) Multiplier() Quantity {
	if i.multiplier.IsZero() {
		return Q(1)
	}
	return i.multiplier
}

// Derivative reports whether PnL must be scaled by the contract multiplier.
func (i Instrument) Derivative() bool { return i.typ == Option || i.typ == Future }
