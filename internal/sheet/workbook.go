// Package sheet persists greeks tables into an xlsx workbook, one sheet
// per ticker × kind × run.
package sheet

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/contactkeval/option-greeks/internal/greeks"
	"github.com/contactkeval/option-greeks/internal/logger"
)

// MaxSheetName is the xlsx format limit on sheet name length.
const MaxSheetName = 31

// header is the fixed column order of every written table.
var header = []string{
	"contractSymbol", "strike", "lastPrice", "bid", "ask",
	"impliedVolatility", "symbol", "expiry", "downloaded_at",
	"underlying_price", "dte", "time", "delta", "theta", "gamma", "vega",
}

// Workbook is a sheet sink backed by a single xlsx file on disk.
type Workbook struct {
	Path string
}

func NewWorkbook(path string) *Workbook {
	return &Workbook{Path: path}
}

// Ensure creates an empty workbook at the configured path if none exists.
func (wb *Workbook) Ensure() error {
	if _, err := os.Stat(wb.Path); err == nil {
		logger.Infof("using existing workbook: %s", wb.Path)
		return nil
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SaveAs(wb.Path); err != nil {
		return fmt.Errorf("creating workbook %s: %w", wb.Path, err)
	}
	logger.Infof("created new workbook: %s", wb.Path)
	return nil
}

// WriteTable appends the rows as a named sheet. Names longer than the
// format limit are truncated; a name collision replaces the existing sheet
// rather than erroring.
func (wb *Workbook) WriteTable(name string, rows []greeks.Row) error {
	name = TruncateName(name)

	f, err := excelize.OpenFile(wb.Path)
	if err != nil {
		return fmt.Errorf("opening workbook %s: %w", wb.Path, err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(name); err == nil && idx >= 0 {
		logger.Debugf("sheet %s exists, replacing", name)
		if err := f.DeleteSheet(name); err != nil {
			return fmt.Errorf("replacing sheet %s: %w", name, err)
		}
	}
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("creating sheet %s: %w", name, err)
	}

	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("writing header to %s: %w", name, err)
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{
			row.ContractSymbol,
			row.Strike,
			row.LastPrice,
			row.Bid,
			row.Ask,
			row.ImpliedVolatility,
			row.Underlying,
			row.Expiry.Format("2006-01-02"),
			row.DownloadedAt.Format("2006-01-02 15:04:05 -0700"),
			row.Spot,
			row.DTE,
			row.Time,
			row.Delta,
			row.Theta,
			row.Gamma,
			row.Vega,
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("writing row %d to %s: %w", i, name, err)
		}
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("saving workbook %s: %w", wb.Path, err)
	}
	logger.Infof("%-31s rows=%4d", name, len(rows))
	return nil
}

// TruncateName enforces the xlsx sheet-name length limit.
func TruncateName(name string) string {
	if len(name) > MaxSheetName {
		return name[:MaxSheetName]
	}
	return name
}
