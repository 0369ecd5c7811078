package valuation

import (
	"errors"
	"testing"
	"time"
)

func TestDecodeQuote(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		raw := map[string]any{
			"symbol":         "AAPL",
			"bid":            189.5,
			"ask":            190.5,
			"last":           190.0,
			"previous_close": 185.0,
			"session":        "rth",
			"quote_ts":       "2023-11-14T22:13:20Z",
		}
		q, err := DecodeQuote(raw)
		if err != nil {
			t.Fatalf("DecodeQuote() error = %v", err)
		}
		if q.Symbol != "AAPL" || q.Bid != 189.5 || q.Ask != 190.5 || q.Last != 190.0 || q.PreviousClose != 185.0 {
			t.Errorf("DecodeQuote() = %+v, fields do not match the record", q)
		}
		if q.Session != RTH {
			t.Errorf("Session = %s, want rth", q.Session)
		}
		if want := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC); !q.UpdatedAt.Equal(want) {
			t.Errorf("UpdatedAt = %v, want %v", q.UpdatedAt, want)
		}
		if q.Mid() != 190.0 {
			t.Errorf("Mid() = %v, want 190", q.Mid())
		}
	})

	t.Run("malformed numeric fields are unknown, not fatal", func(t *testing.T) {
		raw := map[string]any{
			"symbol": "AAPL",
			"bid":    "n/a",
			"last":   42.0,
			"ts":     1_700_000_000,
		}
		q, err := DecodeQuote(raw)
		if err != nil {
			t.Fatalf("DecodeQuote() error = %v", err)
		}
		if present(q.Bid) {
			t.Errorf("Bid = %v, want unknown", q.Bid)
		}
		if q.Last != 42.0 {
			t.Errorf("Last = %v, want 42", q.Last)
		}
		if present(q.Mid()) {
			t.Errorf("Mid() = %v, want unknown when one side is missing", q.Mid())
		}
	})

	t.Run("unknown session is not fatal", func(t *testing.T) {
		q, err := DecodeQuote(map[string]any{"symbol": "AAPL", "session": "lunch-break", "ts": 1})
		if err != nil {
			t.Fatalf("DecodeQuote() error = %v", err)
		}
		if q.Session != SessionUnknown {
			t.Errorf("Session = %s, want unknown", q.Session)
		}
	})

	t.Run("no timestamp is the one hard error", func(t *testing.T) {
		_, err := DecodeQuote(map[string]any{"symbol": "AAPL", "last": 42.0})
		if !errors.Is(err, ErrMissingTimestamp) {
			t.Errorf("DecodeQuote() error = %v, want ErrMissingTimestamp", err)
		}
	})

	t.Run("no symbol", func(t *testing.T) {
		if _, err := DecodeQuote(map[string]any{"ts": 1_700_000_000}); err == nil {
			t.Error("DecodeQuote() accepted a record without a symbol")
		}
	})
}

func TestParseSession(t *testing.T) {
	tests := []struct {
		in   string
		want Session
	}{
		{"rth", RTH},
		{"Regular", RTH},
		{"eth", ETH},
		{"after-hours", ETH},
		{"pre", ETH},
		{"closed", Closed},
		{" CLOSED ", Closed},
	}
	for _, tc := range tests {
		got, err := ParseSession(tc.in)
		if err != nil || got != tc.want {
			t.Errorf("ParseSession(%q) = (%s, %v), want %s", tc.in, got, err, tc.want)
		}
	}

	if _, err := ParseSession("brunch"); err == nil {
		t.Error("ParseSession accepted an unknown session")
	}
}
