package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeval/option-greeks/internal/data"
	"github.com/contactkeval/option-greeks/internal/greeks"
	"github.com/contactkeval/option-greeks/internal/pipeline"
	"github.com/contactkeval/option-greeks/internal/snapshot"
)

func sampleRows() []greeks.Row {
	expiry := time.Date(2024, 1, 19, 0, 0, 0, 0, time.UTC)
	return []greeks.Row{{
		Row: snapshot.Row{
			RawQuote: data.RawQuote{
				ContractSymbol:    "SPY240119C00470000",
				Strike:            470,
				LastPrice:         2.5,
				Bid:               2.45,
				Ask:               2.55,
				ImpliedVolatility: 0.18,
				Underlying:        "SPY",
				Expiry:            expiry,
			},
			Spot:         470.12,
			DownloadedAt: time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC),
			DTE:          18,
		},
		Time:  18.0 / 365.0,
		Delta: 0.5612,
		Theta: -0.0712,
		Gamma: 0.0231,
		Vega:  0.2511,
	}}
}

func TestWriteCSV(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteCSV(sampleRows(), dir, "SPY_c_2024-01-02_0930"))

	raw, err := os.ReadFile(filepath.Join(dir, "SPY_c_2024-01-02_0930.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "contractSymbol,strike,lastPrice,bid,ask,impliedVolatility,symbol,expiry"),
		"unexpected header: %s", lines[0])
	assert.Contains(t, lines[1], "SPY240119C00470000")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, []pipeline.BatchResult{
		{Sheet: "SPY_c_2024-01-02_0930", Status: pipeline.StatusOK, Rows: sampleRows()},
		{Sheet: "SPY_p_2024-01-02_0930", Status: pipeline.StatusEmpty},
	})

	out := buf.String()
	assert.Contains(t, out, "SPY_c_2024-01-02_0930")
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "empty")
}
