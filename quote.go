package valuation

import (
	"fmt"
	"strings"
	"time"
)

// Session is the market-hours classification of a quote. It governs which
// price fields are trustworthy: outside regular trading hours the last trade
// may be hours old and is never used as a mark.
type Session int

const (
	// SessionUnknown means the quote did not carry a session; the Book
	// substitutes its configured default.
	SessionUnknown Session = iota
	// RTH is regular trading hours.
	RTH
	// ETH is extended (pre/after market) trading hours.
	ETH
	// Closed means the market is closed.
	Closed
)

func (s Session) String() string {
	switch s {
	case RTH:
		return "rth"
	case ETH:
		return "eth"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// ParseSession parses a string into a Session. It is lenient and accepts the
// usual broker spellings ("regular", "extended", "after-hours", ...).
func ParseSession(s string) (Session, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rth", "regular", "regular_hours", "market":
		return RTH, nil
	case "eth", "extended", "after", "after_hours", "after-hours", "pre", "pre_market":
		return ETH, nil
	case "closed", "close":
		return Closed, nil
	default:
		return SessionUnknown, fmt.Errorf("unknown session: %q", s)
	}
}

// Quote is the latest market data known for a symbol. Price fields are
// float64 with NaN meaning "unknown" (a missing value is never zero).
// UpdatedAt is always an unambiguous UTC instant: timezone-less inputs are
// treated as UTC at decode time.
type Quote struct {
	Symbol        string
	Bid           float64
	Ask           float64
	Last          float64
	PreviousClose float64
	Session       Session
	UpdatedAt     time.Time
}

// DecodeQuote decodes one raw quote record, as supplied by a broker feed or a
// CSV/JSON export, into a typed Quote. This is the single ingestion boundary:
// past this point the core never touches open-ended mappings.
//
// Price fields that fail numeric coercion are left unknown, not fatal. The
// session is optional. The only hard failure is a record with no recognized
// timestamp (ErrMissingTimestamp) or no symbol.
func DecodeQuote(raw map[string]any) (Quote, error) {
	symbol, _ := raw["symbol"].(string)
	if symbol == "" {
		return Quote{}, fmt.Errorf("quote record has no symbol")
	}

	updatedAt, err := TickTime(raw)
	if err != nil {
		return Quote{}, fmt.Errorf("quote record for %q: %w", symbol, err)
	}

	q := Quote{
		Symbol:        symbol,
		Bid:           coerceField(raw, "bid"),
		Ask:           coerceField(raw, "ask"),
		Last:          coerceField(raw, "last"),
		PreviousClose: coerceField(raw, "previous_close"),
		Session:       SessionUnknown,
		UpdatedAt:     updatedAt,
	}
	if s, ok := raw["session"].(string); ok {
		// an unparseable session is treated as absent, like any malformed field.
		q.Session, _ = ParseSession(s)
	}
	return q, nil
}

// Mid returns the bid/ask midpoint, or NaN when either side is unknown.
func (q Quote) Mid() float64 {
	if !present(q.Bid) || !present(q.Ask) {
		return absent()
	}
	return (q.Bid + q.Ask) / 2
}
