// Package greeks derives Black-Scholes risk sensitivities (delta, gamma,
// theta, vega) for normalized option snapshot rows.
package greeks

import (
	"math"

	"github.com/contactkeval/option-greeks/internal/logger"
	"github.com/contactkeval/option-greeks/internal/pricing"
	"github.com/contactkeval/option-greeks/internal/snapshot"
)

// Kind discriminates a batch of contracts as calls or puts. The source
// feed lists the two sides separately, so kind is a property of the batch
// rather than of each row.
type Kind string

const (
	Call Kind = "call"
	Put  Kind = "put"
)

// Letter returns the single-character form used in sheet names.
func (k Kind) Letter() string {
	if k == Put {
		return "p"
	}
	return "c"
}

// IVFloor is the implied-volatility exclusion threshold. Volatility
// appears as a divisor in the formulas, so rows at or below this value
// are dropped before computing.
const IVFloor = 1e-5

// Row is a normalized snapshot row augmented with its time to expiry in
// years and the four computed greeks. Delta is rounded to 4 decimals and
// lies in [0,1] for calls and [-1,0] for puts; gamma and vega are
// non-negative; theta is quoted per calendar day.
type Row struct {
	snapshot.Row
	Time  float64 `csv:"time"`
	Delta float64 `csv:"delta"`
	Theta float64 `csv:"theta"`
	Gamma float64 `csv:"gamma"`
	Vega  float64 `csv:"vega"`
}

// Compute derives the greeks for every admissible row of a kind-homogeneous
// batch under the fixed continuously-compounded risk-free rate r.
//
// Rows with implied volatility <= IVFloor are excluded up front. Each
// surviving row is computed independently from its own spot, strike,
// volatility and DTE (t = dte/365), so output content does not depend on
// input order. Should a computation still produce a non-finite value, the
// row is logged and dropped; the engine degrades to fewer rows, never to a
// hard failure. An empty input or fully filtered batch yields an empty,
// non-error result.
func Compute(rows []snapshot.Row, kind Kind, r float64) []Row {
	isCall := kind != Put

	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		sigma := row.ImpliedVolatility
		if sigma <= IVFloor {
			logger.Tracef("excluding %s: iv=%g below floor", row.ContractSymbol, sigma)
			continue
		}

		t := float64(row.DTE) / 365.0
		delta := pricing.Delta(isCall, row.Spot, row.Strike, t, r, sigma)
		theta := pricing.Theta(isCall, row.Spot, row.Strike, t, r, sigma)
		gamma := pricing.Gamma(row.Spot, row.Strike, t, r, sigma)
		vega := pricing.Vega(row.Spot, row.Strike, t, r, sigma)

		if !finite(delta, theta, gamma, vega) {
			logger.Errorf("non-finite greeks for %s (S=%g K=%g iv=%g dte=%d), dropping row",
				row.ContractSymbol, row.Spot, row.Strike, sigma, row.DTE)
			continue
		}

		out = append(out, Row{
			Row:   row,
			Time:  t,
			Delta: round4(delta),
			Theta: round4(theta),
			Gamma: round4(gamma),
			Vega:  round4(vega),
		})
	}
	return out
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}
