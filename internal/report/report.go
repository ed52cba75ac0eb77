package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/olekukonko/tablewriter"

	"github.com/contactkeval/option-greeks/internal/greeks"
	"github.com/contactkeval/option-greeks/internal/pipeline"
)

// WriteCSV exports one batch table as <name>.csv in outdir, using the same
// column order as the workbook sheets.
func WriteCSV(rows []greeks.Row, outdir, name string) error {
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(outdir, name+".csv"))
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(&rows, f)
}

// PrintSummary renders the per-batch run outcome as a console table.
func PrintSummary(w io.Writer, results []pipeline.BatchResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Sheet", "Status", "Rows"})
	for _, res := range results {
		table.Append([]string{res.Sheet, string(res.Status), fmt.Sprintf("%d", len(res.Rows))})
	}
	table.Render()
}
