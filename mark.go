package valuation

import "time"

// MarkSource tags which candidate price was selected as the mark.
type MarkSource string

const (
	SourceLast      MarkSource = "LAST"
	SourceMid       MarkSource = "MID"
	SourceModel     MarkSource = "MODEL"
	SourceYahoo     MarkSource = "YAHOO"
	SourceLastClose MarkSource = "LAST_CLOSE"
)

// MarkResult is the outcome of routing a tick to a single authoritative
// price. Price is NaN when no candidate at all was usable: callers must treat
// that as "no mark", never as zero.
type MarkResult struct {
	Price  float64
	Source MarkSource
	Stale  time.Duration // non-negative; 0 when the tick's freshness is unknown
}

// Usable reports whether the result holds an actual price.
func (r MarkResult) Usable() bool { return present(r.Price) }

// StaleSeconds returns the staleness truncated to whole seconds.
func (r MarkResult) StaleSeconds() int64 { return int64(r.Stale / time.Second) }

// ChooseMark selects the authoritative price from a tick for the given
// trading session.
//
// During regular hours the last trade is the best mark, then the bid/ask
// midpoint, a model price, and a delayed Yahoo price. Outside regular hours
// the last trade may be hours old, so the priority starts at the midpoint.
// When no candidate is present the previous session's close is used, tagged
// LAST_CLOSE; when even that is missing the result carries a NaN price.
//
// Staleness is now minus the tick's timestamp, floored at zero. A tick
// without a timestamp reports zero staleness: freshness unknown, assume
// fresh, rather than erroring.
func ChooseMark(t Tick, session Session, now time.Time) MarkResult {
	type candidate struct {
		price  float64
		source MarkSource
	}

	var candidates []candidate
	if session == RTH {
		candidates = []candidate{
			{t.Last, SourceLast},
			{t.Mid, SourceMid},
			{t.Model, SourceModel},
			{t.Yahoo, SourceYahoo},
		}
	} else {
		candidates = []candidate{
			{t.Mid, SourceMid},
			{t.Model, SourceModel},
			{t.Yahoo, SourceYahoo},
		}
	}

	result := MarkResult{Price: t.LastClose, Source: SourceLastClose, Stale: staleness(t.Time, now)}
	if !present(t.LastClose) {
		result.Price = absent()
	}
	for _, c := range candidates {
		if present(c.price) {
			result.Price = c.price
			result.Source = c.source
			break
		}
	}
	return result
}

// staleness returns max(0, now-tickTime), with zero tick time meaning
// "freshness unknown".
func staleness(tickTime, now time.Time) time.Duration {
	if tickTime.IsZero() {
		return 0
	}
	d := now.Sub(tickTime)
	if d < 0 {
		return 0
	}
	return d
}
