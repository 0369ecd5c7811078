package valuation

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// ErrMissingTimestamp is returned when a raw record carries none of the
// recognized timestamp fields. It is the only hard error of the core: the
// ingestion layer decides whether to drop or default such a record.
var ErrMissingTimestamp = errors.New("no recognized timestamp field")

// millisThreshold: a raw numeric at or above this is necessarily a
// millisecond epoch (1e12 seconds is past year 33000).
const millisThreshold = 1e12

// TickTime resolves the timestamp of a raw quote-like record into a single
// UTC instant. Candidate fields are checked in priority order, first
// parseable one wins:
//
//  1. "ts": numeric Unix epoch seconds, integer or float.
//  2. "quote_ts": ISO-8601 string with a 'Z' or explicit offset.
//  3. "timestamp": digit string, epoch milliseconds when 13+ digits (or the
//     value is too large to be seconds), epoch seconds otherwise.
//  4. "tick.ts": nested mapping, same numeric epoch-seconds rule as "ts".
//
// A candidate whose value fails coercion is skipped, not fatal. Fractional
// seconds are preserved. When no candidate parses, ErrMissingTimestamp is
// returned (wrapped).
func TickTime(raw map[string]any) (time.Time, error) {
	if v, ok := raw["ts"]; ok {
		if sec, ok := coerce(v); ok {
			return epochToTime(sec), nil
		}
	}

	if v, ok := raw["quote_ts"].(string); ok {
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return t.UTC(), nil
		}
	}

	if v, ok := raw["timestamp"].(string); ok {
		if sec, ok := coerce(v); ok {
			if len(digitsOf(v)) >= 13 || sec >= millisThreshold {
				sec /= 1000
			}
			return epochToTime(sec), nil
		}
	}

	// nested "tick.ts", the shape some streaming feeds use.
	if jval, err := jsonpath.Get("$.tick.ts", any(raw)); err == nil {
		// jsonpath is never clear about whether it returns a list of one
		// answer or a single answer, keep the first one if any.
		if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
			jval = jlist[0]
		}
		if sec, ok := coerce(jval); ok {
			return epochToTime(sec), nil
		}
	}

	return time.Time{}, fmt.Errorf("record keys %v: %w", keysOf(raw), ErrMissingTimestamp)
}

// epochToTime converts fractional Unix epoch seconds to a UTC instant.
func epochToTime(sec float64) time.Time {
	whole := math.Floor(sec)
	nanos := math.Round((sec - whole) * 1e9)
	return time.Unix(int64(whole), int64(nanos)).UTC()
}

// digitsOf strips everything but digits, so "1700000000123.5" measures its
// integral length only.
func digitsOf(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			break
		}
		if s[i] >= '0' && s[i] <= '9' {
			b = append(b, s[i])
		}
	}
	return string(b)
}

// keysOf lists the record's keys for error reporting.
func keysOf(raw map[string]any) []string {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	return keys
}
