package valuation

// PositionRow is one rendering-ready line of the equities payload. The
// consumer (CSV, JSON, HTML renderers) takes it as-is; the core performs no
// layout.
type PositionRow struct {
	Symbol string
	// Mark is the chosen valuation price, NaN when no usable mark exists.
	Mark       float64
	MarkSource MarkSource
	DayPnL     Money
	TotalPnL   Money
	// DayPnLPercent and TotalPnLPercent are nil when their denominator is
	// zero or undefined. nil is not 0%: it means no meaningful percentage.
	DayPnLPercent   *Percent
	TotalPnLPercent *Percent
	StaleSeconds    int64 // whole seconds, never negative
}

// HasMark reports whether the row carries an actual valuation price.
func (r PositionRow) HasMark() bool { return present(r.Mark) }

// MarshalJSON writes the row with a stable field order. The mark and the
// percentages are explicit nulls when undefined, so a renderer can tell
// "unknown" apart from zero.
func (r PositionRow) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", r.Symbol)
	if r.HasMark() {
		w.Append("mark", r.Mark)
	} else {
		w.Nullable("mark", (*float64)(nil))
	}
	w.Append("mark_source", string(r.MarkSource))
	w.Append("day_pnl", r.DayPnL)
	w.Append("total_pnl", r.TotalPnL)
	w.Nullable("day_pnl_percent", r.DayPnLPercent)
	w.Nullable("total_pnl_percent", r.TotalPnLPercent)
	w.Append("stale_seconds", r.StaleSeconds)
	return w.MarshalJSON()
}
