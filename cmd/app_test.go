package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/etnz/valuation"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDecodePositions(t *testing.T) {
	path := writeFile(t, "positions.json", `[
		{"symbol": "AAPL", "currency": "USD", "quantity": "200", "avg_cost": "10"},
		{"symbol": "AAPL240621C00190000", "type": "option", "currency": "USD", "multiplier": 100, "quantity": 2, "avg_cost": 3.5}
	]`)

	positions, err := DecodePositions(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(positions) != 2 {
		t.Fatalf("got %d positions, want 2", len(positions))
	}

	t.Run("equity defaults", func(t *testing.T) {
		p := positions[0]
		if p.Symbol() != "AAPL" {
			t.Errorf("symbol = %q", p.Symbol())
		}
		if p.Instrument.Type() != valuation.Equity {
			t.Errorf("type = %v, want equity", p.Instrument.Type())
		}
		if !p.Instrument.Multiplier().Equal(valuation.Q(1)) {
			t.Errorf("multiplier = %v, want 1", p.Instrument.Multiplier())
		}
		if !p.Quantity.Equal(valuation.Q(200)) {
			t.Errorf("quantity = %v, want 200", p.Quantity)
		}
		if !p.AvgCost.Equal(valuation.M(10, "USD")) {
			t.Errorf("avg cost = %v, want USD 10", p.AvgCost)
		}
	})

	t.Run("option record", func(t *testing.T) {
		p := positions[1]
		if p.Instrument.Type() != valuation.Option {
			t.Errorf("type = %v, want option", p.Instrument.Type())
		}
		if !p.Instrument.Multiplier().Equal(valuation.Q(100)) {
			t.Errorf("multiplier = %v, want 100", p.Instrument.Multiplier())
		}
		if !p.AvgCost.Equal(valuation.M(3.5, "USD")) {
			t.Errorf("avg cost = %v, want USD 3.50", p.AvgCost)
		}
	})
}

func TestDecodePositions_rejectsBadRecords(t *testing.T) {
	t.Run("bad symbol", func(t *testing.T) {
		path := writeFile(t, "positions.json", `[{"symbol": "aapl", "currency": "USD", "quantity": 1, "avg_cost": 1}]`)
		if _, err := DecodePositions(path); err == nil {
			t.Error("expected an error for a lowercase symbol")
		}
	})
	t.Run("bad type", func(t *testing.T) {
		path := writeFile(t, "positions.json", `[{"symbol": "AAPL", "type": "warrant", "currency": "USD", "quantity": 1, "avg_cost": 1}]`)
		if _, err := DecodePositions(path); err == nil {
			t.Error("expected an error for an unknown instrument type")
		}
	})
}

func TestDecodeQuoteRecords(t *testing.T) {
	path := writeFile(t, "quotes.json", `[
		{"symbol": "AAPL", "last": 189.5, "session": "rth", "ts": 1700000000},
		{"symbol": "MSFT", "bid": "330,1", "ask": 330.5, "quote_ts": "2023-11-14T22:13:20Z"},
		{"last": 10.0, "ts": 1700000000}
	]`)

	quotes, err := DecodeQuoteRecords(path)
	if err != nil {
		t.Fatal(err)
	}
	// The symbol-less record is skipped, not fatal.
	if len(quotes) != 2 {
		t.Fatalf("got %d quotes, want 2", len(quotes))
	}

	want := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)
	if !quotes[0].UpdatedAt.Equal(want) {
		t.Errorf("AAPL updated at %v, want %v", quotes[0].UpdatedAt, want)
	}
	if quotes[0].Session != valuation.RTH {
		t.Errorf("AAPL session = %v, want RTH", quotes[0].Session)
	}
	if got := quotes[1].Bid; got != 330.1 {
		t.Errorf("MSFT bid = %v, want 330.1", got)
	}
}
