package valuation

// PnL is a day/total profit-and-loss pair. Both values are always defined:
// when price data is insufficient they degrade to exact zero, never to an
// error or NaN, because a report must always render a number.
type PnL struct {
	Day   Money
	Total Money
}

// EquityPnL values a plain share position against a chosen mark.
//
//	total = (mark - avg_cost) x quantity   when the mark is known
//	day   = (mark - prev_close) x quantity when mark and previous close are known
//
// The float candidates are converted to exact decimal once on entry; all
// arithmetic after that is exact.
func EquityPnL(p Position, mark, prevClose float64) PnL {
	currency := pnlCurrency(p)
	result := PnL{Day: M(0, currency), Total: M(0, currency)}
	if !present(mark) {
		return result
	}
	markMoney := M(mark, currency)
	result.Total = markMoney.Sub(p.AvgCost).Mul(p.Quantity)
	if present(prevClose) {
		result.Day = markMoney.Sub(M(prevClose, currency)).Mul(p.Quantity)
	}
	return result
}

// OptionPnL values a derivative position: same as EquityPnL scaled by the
// instrument's contract multiplier.
func OptionPnL(p Position, mark, prevClose float64) PnL {
	pnl := EquityPnL(p, mark, prevClose)
	multiplier := p.Instrument.Multiplier()
	return PnL{Day: pnl.Day.Mul(multiplier), Total: pnl.Total.Mul(multiplier)}
}

// pnlCurrency picks the currency PnL amounts are denominated in.
func pnlCurrency(p Position) string {
	if c := p.AvgCost.Currency(); c != "" {
		return c
	}
	return p.Instrument.Currency()
}
