// Package valuation aggregates brokerage positions and live market quotes
// into one consistent valuation snapshot. For every held instrument it
// selects an authoritative mark price, computes day and total
// profit-and-loss, derives percentage returns, and reports how stale the
// underlying quote is.
//
// The core functionalities include:
//   - Timestamp Normalization: resolving the heterogeneous time encodings
//     found in real quote feeds into unambiguous UTC instants.
//   - Mark Routing: selecting the one price a position is valued at, by a
//     session-dependent priority order with graceful degradation.
//   - PnL Calculation: exact-decimal day and total profit-and-loss, aware of
//     contract multipliers for derivatives.
//   - Positions Book: an atomically refreshed join of positions and quotes,
//     exposing a rendering-ready payload and a single snapshot-as-of instant.
//
// The package is the computational core of the `pvs` command-line tool; it
// performs no I/O and no serialization beyond marshalling its own payload
// rows. Bad market data degrades individual values, it never aborts a
// snapshot: percentages become nil, PnL becomes exact zero, and a missing
// mark is a tagged NaN sentinel.
package valuation
