package valuation

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Tick is the closed, typed form of a raw price snapshot: one optional
// candidate price per recognized source, plus the tick's own timestamp.
// Absent candidates are NaN; the zero value is NOT an empty tick (its zeroes
// would read as real prices), use NewTick or DecodeTick.
type Tick struct {
	Last      float64
	Mid       float64
	Model     float64
	Yahoo     float64
	LastClose float64
	Time      time.Time // zero when the snapshot carried no parseable timestamp
}

// NewTick returns a tick with every candidate price unknown.
func NewTick() Tick {
	nan := absent()
	return Tick{Last: nan, Mid: nan, Model: nan, Yahoo: nan, LastClose: nan}
}

// DecodeTick decodes a raw price snapshot into a Tick. Recognized keys are
// "last", "mid", "model", "yahoo" and "last_close"; any value that fails
// numeric coercion, or is not finite, is simply unknown. The timestamp fields
// follow the TickTime rules, and an unparseable timestamp leaves Time zero
// rather than failing: a tick without a time is merely of unknown freshness.
func DecodeTick(raw map[string]any) Tick {
	t := NewTick()
	t.Last = coerceField(raw, "last")
	t.Mid = coerceField(raw, "mid")
	t.Model = coerceField(raw, "model")
	t.Yahoo = coerceField(raw, "yahoo")
	t.LastClose = coerceField(raw, "last_close")
	if ts, err := TickTime(raw); err == nil {
		t.Time = ts
	}
	return t
}

// absent returns the "unknown value" sentinel for price fields.
func absent() float64 { return math.NaN() }

// present reports whether a price field holds a usable finite value.
func present(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// coerceField coerces the named field of a raw record, returning NaN when the
// field is missing or unusable.
func coerceField(raw map[string]any, key string) float64 {
	v, ok := raw[key]
	if !ok {
		return absent()
	}
	f, ok := coerce(v)
	if !ok {
		return absent()
	}
	return f
}

// coerce converts a dynamic JSON-ish value to a finite float64. It accepts
// the number representations brokers actually send: Go numerics, json.Number,
// and numeric strings with a comma decimal separator.
func coerce(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", ".")
		s = strings.ReplaceAll(s, " ", "")
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
