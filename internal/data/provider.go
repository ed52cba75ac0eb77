package data

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Provider supplies option-chain market data for a single underlying:
// the latest spot price, the available expiry dates, and the per-expiry
// call/put chains.
type Provider interface {
	Secondary() Provider
	GetSpot(underlying string) (float64, error)
	GetExpiries(underlying string) ([]time.Time, error)
	GetChain(underlying string, expiry time.Time) (Chain, error)
}

// RawQuote is one exchange-quoted option contract as captured from the
// provider. Implied volatility is taken as supplied; stale or illiquid
// quotes may carry zero or near-zero values and are filtered downstream.
type RawQuote struct {
	ContractSymbol    string    `csv:"contractSymbol"`
	Strike            float64   `csv:"strike"`
	LastPrice         float64   `csv:"lastPrice"`
	Bid               float64   `csv:"bid"`
	Ask               float64   `csv:"ask"`
	ImpliedVolatility float64   `csv:"impliedVolatility"`
	Underlying        string    `csv:"symbol"`
	Expiry            time.Time `csv:"expiry"`
}

// Chain holds both sides of an option chain for one expiry.
type Chain struct {
	Calls []RawQuote
	Puts  []RawQuote
}

// OptionSymbolFromParts: OCC-like contract symbol formatter (best-effort)
func OptionSymbolFromParts(underlying string, expiryDate time.Time, optionType string, strike float64) string {
	// OCC: <root><YYMMDD><C|P><strike*1000 padded to 8 digits>
	expDt := expiryDate.UTC().Format("060102")
	optType := "C"
	if strings.ToLower(optionType) == "put" || strings.ToLower(optionType) == "p" {
		optType = "P"
	}
	strikeInt := int(math.Round(strike * 1000))
	return fmt.Sprintf("%s%s%s%08d", strings.ToUpper(underlying), expDt, optType, strikeInt)
}
