package valuation

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestDecodeTick(t *testing.T) {
	t.Run("typed snapshot from a messy record", func(t *testing.T) {
		raw := map[string]any{
			"last":       190.5,
			"mid":        json.Number("190.25"),
			"model":      "189,9", // comma decimal separator
			"yahoo":      "junk",
			"last_close": math.Inf(1),
			"ts":         1_700_000_000,
			"ignored":    "extra fields are fine",
		}
		tick := DecodeTick(raw)
		if tick.Last != 190.5 {
			t.Errorf("Last = %v, want 190.5", tick.Last)
		}
		if tick.Mid != 190.25 {
			t.Errorf("Mid = %v, want 190.25", tick.Mid)
		}
		if tick.Model != 189.9 {
			t.Errorf("Model = %v, want 189.9", tick.Model)
		}
		if present(tick.Yahoo) {
			t.Errorf("Yahoo = %v, want absent for a non-numeric value", tick.Yahoo)
		}
		if present(tick.LastClose) {
			t.Errorf("LastClose = %v, want absent for an infinite value", tick.LastClose)
		}
		if want := time.Unix(1_700_000_000, 0).UTC(); !tick.Time.Equal(want) {
			t.Errorf("Time = %v, want %v", tick.Time, want)
		}
	})

	t.Run("no timestamp leaves freshness unknown", func(t *testing.T) {
		tick := DecodeTick(map[string]any{"last": 1.0})
		if !tick.Time.IsZero() {
			t.Errorf("Time = %v, want zero", tick.Time)
		}
		if tick.Last != 1.0 {
			t.Errorf("Last = %v, want 1.0", tick.Last)
		}
	})

	t.Run("empty record is all absent", func(t *testing.T) {
		tick := DecodeTick(map[string]any{})
		for name, v := range map[string]float64{
			"Last": tick.Last, "Mid": tick.Mid, "Model": tick.Model,
			"Yahoo": tick.Yahoo, "LastClose": tick.LastClose,
		} {
			if present(v) {
				t.Errorf("%s = %v, want absent", name, v)
			}
		}
	})
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   float64
		wantOK bool
	}{
		{"float64", 1.5, 1.5, true},
		{"int", 42, 42, true},
		{"json number", json.Number("3.25"), 3.25, true},
		{"plain string", "10.5", 10.5, true},
		{"comma string", "1 234,5", 1234.5, true},
		{"garbage string", "./.", 0, false},
		{"NaN is not a value", math.NaN(), 0, false},
		{"infinity is not a value", math.Inf(-1), 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := coerce(tc.in)
			if ok != tc.wantOK || (ok && got != tc.want) {
				t.Errorf("coerce(%v) = (%v, %t), want (%v, %t)", tc.in, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}
