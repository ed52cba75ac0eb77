package sheet

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/contactkeval/option-greeks/internal/data"
	"github.com/contactkeval/option-greeks/internal/greeks"
	"github.com/contactkeval/option-greeks/internal/snapshot"
)

func sampleRow(strike float64) greeks.Row {
	expiry := time.Date(2024, 1, 19, 0, 0, 0, 0, time.UTC)
	return greeks.Row{
		Row: snapshot.Row{
			RawQuote: data.RawQuote{
				ContractSymbol:    data.OptionSymbolFromParts("SPY", expiry, "call", strike),
				Strike:            strike,
				LastPrice:         2.50,
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
	}
}

func testWorkbook(t *testing.T) *Workbook {
	t.Helper()
	wb := NewWorkbook(filepath.Join(t.TempDir(), "data_file.xlsx"))
	require.NoError(t, wb.Ensure())
	return wb
}

func TestWorkbookEnsureIdempotent(t *testing.T) {
	wb := testWorkbook(t)
	// second call must leave the existing file alone
	require.NoError(t, wb.Ensure())
}

func TestWorkbookWriteTable(t *testing.T) {
	wb := testWorkbook(t)

	rows := []greeks.Row{sampleRow(460), sampleRow(465), sampleRow(470)}
	require.NoError(t, wb.WriteTable("SPY_c_2024-01-02_0930", rows))

	f, err := excelize.OpenFile(wb.Path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("SPY_c_2024-01-02_0930")
	require.NoError(t, err)
	require.Len(t, got, 4, "header plus three data rows")

	assert.Equal(t, header, got[0])
	assert.Equal(t, rows[0].ContractSymbol, got[1][0])
	assert.Equal(t, "2024-01-19", got[1][7])
}

func TestWorkbookOverwritesExistingSheet(t *testing.T) {
	wb := testWorkbook(t)

	require.NoError(t, wb.WriteTable("SPY_c_x", []greeks.Row{sampleRow(460), sampleRow(465), sampleRow(470)}))
	require.NoError(t, wb.WriteTable("SPY_c_x", []greeks.Row{sampleRow(480)}))

	f, err := excelize.OpenFile(wb.Path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("SPY_c_x")
	require.NoError(t, err)
	assert.Len(t, got, 2, "replacement wipes the previous region")
}

func TestWorkbookTruncatesLongNames(t *testing.T) {
	wb := testWorkbook(t)

	long := "SOMEVERYLONGTICKER_c_2024-01-02_0930"
	require.Greater(t, len(long), MaxSheetName)
	require.NoError(t, wb.WriteTable(long, []greeks.Row{sampleRow(100)}))

	f, err := excelize.OpenFile(wb.Path)
	require.NoError(t, err)
	defer f.Close()

	idx, err := f.GetSheetIndex(long[:MaxSheetName])
	require.NoError(t, err)
	assert.GreaterOrEqual(t, idx, 0)
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "short", TruncateName("short"))

	long := strings.Repeat("x", 40)
	assert.Len(t, TruncateName(long), MaxSheetName)
}
