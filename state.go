package valuation

import (
	"sync"
	"time"
)

// Book is the process-local aggregate of the last refreshed positions and
// quotes. Refresh replaces its whole content atomically; the read accessors
// never mutate it. A refresh fully happens-before any read that observes it.
type Book struct {
	cfg Config

	mu        sync.RWMutex
	positions []Position
	quotes    map[string]Quote
	updatedAt time.Time // snapshot as-of; zero when no quotes were ever supplied
}

// NewBook creates an empty Book.
func NewBook(cfg Config) *Book {
	return &Book{cfg: cfg.withDefaults(), quotes: make(map[string]Quote)}
}

// Refresh atomically replaces the held positions and quotes. There is no
// incremental merge: a position absent from the new set is gone.
//
// Quotes are indexed by symbol; when several quotes share a symbol the one
// with the latest UpdatedAt wins, regardless of slice order.
//
// The snapshot as-of instant becomes snapshotAt when non-zero, else the
// maximum UpdatedAt across the supplied quotes, else none.
func (b *Book) Refresh(positions []Position, quotes []Quote, snapshotAt time.Time) {
	held := make([]Position, len(positions))
	copy(held, positions)

	index := make(map[string]Quote, len(quotes))
	var latest time.Time
	for _, q := range quotes {
		if prev, ok := index[q.Symbol]; ok && prev.UpdatedAt.After(q.UpdatedAt) {
			continue
		}
		index[q.Symbol] = q
		if q.UpdatedAt.After(latest) {
			latest = q.UpdatedAt
		}
	}

	updatedAt := latest
	if !snapshotAt.IsZero() {
		updatedAt = snapshotAt.UTC()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.positions = held
	b.quotes = index
	b.updatedAt = updatedAt
}

// SnapshotUpdatedAt returns the cached snapshot instant, in UTC. The second
// return is false when no quotes (and no override) were ever supplied.
func (b *Book) SnapshotUpdatedAt() (time.Time, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.updatedAt, !b.updatedAt.IsZero()
}

// EquitiesPayload values every held position and returns the rendering-ready
// rows, in position input order. A position with no quote still gets a row,
// with degraded values, never dropped: the user-visible failure mode of the
// whole core is "some rows show degraded values".
func (b *Book) EquitiesPayload(now time.Time) []PositionRow {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rows := make([]PositionRow, 0, len(b.positions))
	for _, p := range b.positions {
		rows = append(rows, b.valueOne(p, now))
	}
	return rows
}

// valueOne joins one position with its quote and computes the row.
func (b *Book) valueOne(p Position, now time.Time) PositionRow {
	tick := NewTick()
	session := Closed // a symbol with no quote at all is valued as if closed
	var prevClose float64 = absent()

	if q, ok := b.quotes[p.Symbol()]; ok {
		tick.Last = q.Last
		tick.Mid = q.Mid()
		tick.LastClose = q.PreviousClose
		tick.Time = q.UpdatedAt
		prevClose = q.PreviousClose
		session = q.Session
		if session == SessionUnknown {
			session = b.cfg.DefaultSession
		}
	}

	mark := ChooseMark(tick, session, now)

	// a position carrying no currency at all falls back to the configured one.
	if pnlCurrency(p) == "" {
		p.AvgCost = Money{value: p.AvgCost.value, cur: b.cfg.Currency}
	}

	var pnl PnL
	if p.Instrument.Derivative() {
		pnl = OptionPnL(p, mark.Price, prevClose)
	} else {
		pnl = EquityPnL(p, mark.Price, prevClose)
	}

	multiplier := p.Instrument.Multiplier()
	row := PositionRow{
		Symbol:       p.Symbol(),
		Mark:         mark.Price,
		MarkSource:   mark.Source,
		DayPnL:       pnl.Day,
		TotalPnL:     pnl.Total,
		StaleSeconds: mark.StaleSeconds(),
	}
	if present(prevClose) {
		base := M(prevClose, pnl.Day.Currency()).Mul(p.Quantity.Abs()).Mul(multiplier)
		row.DayPnLPercent = pnlPercent(pnl.Day, base)
	}
	costBase := p.AvgCost.Mul(p.Quantity.Abs()).Mul(multiplier)
	row.TotalPnLPercent = pnlPercent(pnl.Total, costBase)
	return row
}

// pnlPercent computes amount/base as a percentage, or nil when the base is
// zero or undefined. nil is a hard invariant here: it distinguishes "no
// meaningful percentage" from a 0% return.
func pnlPercent(amount, base Money) *Percent {
	if base.IsZero() {
		return nil
	}
	p := Percent(amount.value.Div(base.value).Mul(newDecimal(100)).InexactFloat64())
	return &p
}
