package valuation

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// mustInstrument unwraps instrument constructors in test fixtures.
func mustInstrument(i Instrument, err error) Instrument {
	if err != nil {
		panic(err)
	}
	return i
}

var (
	aapl = mustInstrument(NewEquity("AAPL", "USD"))
	msft = mustInstrument(NewEquity("MSFT", "USD"))
	// a call option with the standard US contract multiplier.
	aaplCall = mustInstrument(NewInstrument("AAPL240119C00190000", Option, "USD", Q(100)))
)

// equityPosition is a shorthand for the most common test fixture.
func equityPosition(i Instrument, qty, avgCost float64) Position {
	return NewPosition(i, Q(qty), M(avgCost, i.Currency()))
}
