// Package snapshot normalizes raw option-chain quotes into a uniform table
// ready for risk computation: strike-band filtering, expiry cutoff, and
// days-to-expiry stamping against a single capture instant.
package snapshot

import (
	"math"
	"time"

	"github.com/contactkeval/option-greeks/internal/data"
	"github.com/contactkeval/option-greeks/internal/logger"
)

// Row is a raw quote augmented with the capture context: the underlying
// spot price at capture, the capture timestamp (timezone-aware), and the
// integer days-to-expiry. Rows are read-only once constructed; every Row
// has DTE > 0.
type Row struct {
	data.RawQuote
	DownloadedAt time.Time `csv:"downloaded_at"`
	Spot         float64   `csv:"underlying_price"`
	DTE          int       `csv:"dte"`
}

// Normalize filters quotes to the strike band and expiry window and stamps
// the survivors with capture context.
//
// The strike band is [round(spot*(1-bound)), round(spot*(1+bound))],
// inclusive, rounded to the nearest whole currency unit. Quotes expiring
// strictly after captureAt + maxDTE calendar days are excluded. DTE is the
// calendar-day difference between expiry and the capture date plus one, so
// a contract expiring on the capture date has DTE 1; rows with DTE <= 0
// are dropped. One consistent capture instant drives both the cutoff and
// the DTE computation.
//
// An empty result is not an error: it means no quotes matched the filters.
func Normalize(quotes []data.RawQuote, spot float64, captureAt time.Time, bound float64, maxDTE int) []Row {
	lo := math.Round(spot * (1 - bound))
	hi := math.Round(spot * (1 + bound))
	captureDay := dateOf(captureAt)
	cutoff := captureDay.AddDate(0, 0, maxDTE)

	logger.Debugf("normalizing %d quotes: band [%.0f, %.0f], cutoff %s",
		len(quotes), lo, hi, cutoff.Format("2006-01-02"))

	spotRounded := math.Round(spot*100) / 100

	out := make([]Row, 0, len(quotes))
	for _, q := range quotes {
		if q.Strike < lo || q.Strike > hi {
			continue
		}
		expiryDay := dateOf(q.Expiry)
		if expiryDay.After(cutoff) {
			continue
		}
		dte := int(expiryDay.Sub(captureDay).Hours()/24) + 1
		if dte <= 0 {
			logger.Tracef("dropping %s: dte=%d", q.ContractSymbol, dte)
			continue
		}
		out = append(out, Row{
			RawQuote:     q,
			Spot:         spotRounded,
			DownloadedAt: captureAt,
			DTE:          dte,
		})
	}
	return out
}

// dateOf strips the time-of-day component, keeping the calendar date in
// the timestamp's own zone so day arithmetic follows the capture session.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
