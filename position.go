package valuation

// Position is a holding of a single instrument: a signed exact quantity and
// the average cost paid per unit. The valuation core never mutates positions,
// it only reads them for the duration of one refresh.
type Position struct {
	Instrument Instrument
	Quantity   Quantity // signed, fractional; negative for shorts
	AvgCost    Money    // cost basis per unit, in the instrument's currency
}

// NewPosition creates a Position. The average cost currency defaults to the
// instrument's currency when unset.
func NewPosition(instrument Instrument, quantity Quantity, avgCost Money) Position {
	if avgCost.Currency() == "" {
		avgCost = M(avgCost.value, instrument.Currency())
	}
	return Position{Instrument: instrument, Quantity: quantity, AvgCost: avgCost}
}

// Symbol returns the symbol of the held instrument.
func (p Position) Symbol() string { return p.Instrument.Symbol() }
