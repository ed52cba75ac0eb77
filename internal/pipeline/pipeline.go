// Package pipeline wires the snapshot provider, normalizer, greeks engine
// and sheet sink into one linear run over every ticker × kind batch.
package pipeline

import (
	"fmt"
	"time"

	"github.com/contactkeval/option-greeks/internal/config"
	"github.com/contactkeval/option-greeks/internal/data"
	"github.com/contactkeval/option-greeks/internal/greeks"
	"github.com/contactkeval/option-greeks/internal/logger"
	"github.com/contactkeval/option-greeks/internal/snapshot"
)

// Sink accepts one named greeks table per batch. Name collisions replace
// the previous table of that name.
type Sink interface {
	WriteTable(name string, rows []greeks.Row) error
}

// BatchStatus classifies the outcome of one ticker × kind batch.
type BatchStatus string

const (
	// StatusOK: rows were computed and persisted.
	StatusOK BatchStatus = "ok"
	// StatusEmpty: retrieval failed or every quote was filtered out;
	// nothing was written, processing continued.
	StatusEmpty BatchStatus = "empty"
	// StatusFailed: rows were computed but the sink rejected the write.
	StatusFailed BatchStatus = "failed"
)

// BatchResult reports one batch outcome. A retrieval failure is recovered
// locally into StatusEmpty; only sink failures carry an Err upward.
type BatchResult struct {
	Ticker string
	Kind   greeks.Kind
	Sheet  string
	Rows   []greeks.Row
	Status BatchStatus
	Err    error
}

// Pipeline runs fetch → normalize → greeks → sink for each configured
// ticker × kind combination.
type Pipeline struct {
	cfg  *config.Config
	prov data.Provider
	sink Sink

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

func New(cfg *config.Config, prov data.Provider, sink Sink) *Pipeline {
	return &Pipeline{cfg: cfg, prov: prov, sink: sink, now: time.Now}
}

// Run processes every batch to completion, never aborting siblings on a
// single failure. The returned error is non-nil if any sink write failed,
// after all batches have been attempted.
func (p *Pipeline) Run() ([]BatchResult, error) {
	captureAt := p.now().Truncate(time.Second)
	stamp := captureAt.Format("2006-01-02_1504")

	var results []BatchResult
	totalRows := 0
	failed := 0

	for _, ticker := range p.cfg.Tickers {
		for _, kindName := range p.cfg.Kinds {
			kind := greeks.Kind(kindName)
			res := p.runBatch(ticker, kind, captureAt, stamp)
			if res.Status == StatusFailed {
				failed++
			}
			totalRows += len(res.Rows)
			results = append(results, res)
		}
	}

	logger.Infof("collection complete: %d batches, %d rows", len(results), totalRows)
	if failed > 0 {
		return results, fmt.Errorf("%d of %d batches failed to persist", failed, len(results))
	}
	return results, nil
}

func (p *Pipeline) runBatch(ticker string, kind greeks.Kind, captureAt time.Time, stamp string) BatchResult {
	sheetName := fmt.Sprintf("%s_%s_%s", ticker, kind.Letter(), stamp)
	res := BatchResult{Ticker: ticker, Kind: kind, Sheet: sheetName}

	logger.Infof("fetching %ss for %s", kind, ticker)

	quotes, spot, err := p.collect(ticker, kind, captureAt)
	if err != nil {
		// retrieval failure degrades to an empty batch so siblings keep going
		logger.Errorf("fetching options for %s: %v", ticker, err)
		res.Status = StatusEmpty
		return res
	}

	rows := snapshot.Normalize(quotes, spot, captureAt, p.cfg.Bound, p.cfg.MaxDTE)
	out := greeks.Compute(rows, kind, p.cfg.RiskFreeRate)
	if len(out) == 0 {
		logger.Infof("%s %ss: no rows matched filters", ticker, kind)
		res.Status = StatusEmpty
		return res
	}

	if err := p.sink.WriteTable(sheetName, out); err != nil {
		logger.Errorf("writing sheet %s: %v", sheetName, err)
		res.Status = StatusFailed
		res.Err = err
		return res
	}

	res.Rows = out
	res.Status = StatusOK
	return res
}

// collect gathers the raw quotes of one side of the chain across all
// expiries inside the DTE window. Expiries past the cutoff are skipped at
// fetch time to avoid pointless chain requests; the normalizer enforces
// the same cutoff on whatever comes back.
func (p *Pipeline) collect(ticker string, kind greeks.Kind, captureAt time.Time) ([]data.RawQuote, float64, error) {
	spot, err := p.prov.GetSpot(ticker)
	if err != nil {
		return nil, 0, err
	}

	expiries, err := p.prov.GetExpiries(ticker)
	if err != nil {
		return nil, 0, err
	}

	cutoff := captureAt.AddDate(0, 0, p.cfg.MaxDTE)
	var quotes []data.RawQuote
	for _, expiry := range expiries {
		if expiry.After(cutoff) {
			continue
		}
		chain, err := p.prov.GetChain(ticker, expiry)
		if err != nil {
			return nil, 0, err
		}
		if kind == greeks.Put {
			quotes = append(quotes, chain.Puts...)
		} else {
			quotes = append(quotes, chain.Calls...)
		}
	}
	return quotes, spot, nil
}
