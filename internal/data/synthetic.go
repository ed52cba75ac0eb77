package data

import (
	"math"
	"math/rand"
	"time"

	"github.com/contactkeval/option-greeks/internal/pricing"
)

// synthDataProvider implements Provider generating synthetic option chains.
// Useful for offline runs and tests where no market feed is available.
type synthDataProvider struct {
	secondary Provider
	rng       *rand.Rand
	spots     map[string]float64
}

func NewSyntheticProvider(seed int64) Provider {
	return &synthDataProvider{
		rng:   rand.New(rand.NewSource(seed)),
		spots: make(map[string]float64),
	}
}

func (synthDataProv *synthDataProvider) Secondary() Provider {
	return synthDataProv.secondary
}

// GetSpot returns a random but per-symbol stable spot price.
func (synthDataProv *synthDataProvider) GetSpot(underlying string) (float64, error) {
	if synthDataProv.secondary != nil {
		return synthDataProv.secondary.GetSpot(underlying)
	}
	if spot, ok := synthDataProv.spots[underlying]; ok {
		return spot, nil
	}
	spot := 100.0 + float64(synthDataProv.rng.Intn(400))
	synthDataProv.spots[underlying] = spot
	return spot, nil
}

// GetExpiries returns the next eight weekly Friday expiries.
func (synthDataProv *synthDataProvider) GetExpiries(underlying string) ([]time.Time, error) {
	if synthDataProv.secondary != nil {
		return synthDataProv.secondary.GetExpiries(underlying)
	}
	cur := time.Now().UTC().Truncate(24 * time.Hour)
	for cur.Weekday() != time.Friday {
		cur = cur.AddDate(0, 0, 1)
	}
	var out []time.Time
	for i := 0; i < 8; i++ {
		out = append(out, cur)
		cur = cur.AddDate(0, 0, 7)
	}
	return out, nil
}

// GetChain generates a chain of strikes around spot with a volatility
// smile and Black-Scholes premiums. Every thirteenth contract carries a
// zero implied volatility to mimic stale quotes seen on real feeds.
func (synthDataProv *synthDataProvider) GetChain(underlying string, expiry time.Time) (Chain, error) {
	if synthDataProv.secondary != nil {
		return synthDataProv.secondary.GetChain(underlying, expiry)
	}

	spot, err := synthDataProv.GetSpot(underlying)
	if err != nil {
		return Chain{}, err
	}

	years := time.Until(expiry).Hours() / 24 / 365
	if years <= 0 {
		years = 1.0 / 365
	}

	step := strikeStep(spot)
	lo := math.Round(spot*0.7/step) * step
	hi := math.Round(spot*1.3/step) * step

	var chain Chain
	i := 0
	for strike := lo; strike <= hi; strike += step {
		moneyness := math.Log(strike / spot)
		iv := 0.15 + 0.4*math.Abs(moneyness) + synthDataProv.rng.Float64()*0.02
		if i%13 == 12 {
			iv = 0 // stale quote
		}
		i++

		for _, optType := range []string{"call", "put"} {
			isCall := optType == "call"
			mid := pricing.Price(isCall, spot, strike, years, 0.045, math.Max(iv, 0.10))
			spread := 0.01 + mid*0.02
			q := RawQuote{
				ContractSymbol:    OptionSymbolFromParts(underlying, expiry, optType, strike),
				Strike:            strike,
				LastPrice:         math.Round(mid*100) / 100,
				Bid:               math.Max(0, math.Round((mid-spread)*100)/100),
				Ask:               math.Round((mid+spread)*100) / 100,
				ImpliedVolatility: iv,
				Underlying:        underlying,
				Expiry:            expiry,
			}
			if isCall {
				chain.Calls = append(chain.Calls, q)
			} else {
				chain.Puts = append(chain.Puts, q)
			}
		}
	}
	return chain, nil
}

func strikeStep(spot float64) float64 {
	switch {
	case spot >= 200:
		return 5
	case spot >= 50:
		return 1
	default:
		return 0.5
	}
}
