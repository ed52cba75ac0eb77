// Package data provides market data provider implementations.
//
// This file contains a Yahoo Finance-backed Provider implementation that
// retrieves the underlying spot price, available expiries, and per-expiry
// option chains via the public options endpoint.
//
// Design notes:
//   - Uses raw HTTP calls instead of a vendor SDK
//   - BaseURL and Client are injectable so tests can point the provider at
//     an httptest server
//   - Logging is intentionally verbose at Debug/Trace levels for diagnostics
package data

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/contactkeval/option-greeks/internal/logger"
)

// yahooProvider implements the Provider interface using the Yahoo Finance
// options endpoint (the same source the v7 chart/options clients consume).
type yahooProvider struct {
	// Client is the HTTP client used to make API requests.
	Client *http.Client

	// BaseURL is the root endpoint (e.g. https://query2.finance.yahoo.com).
	BaseURL string

	// secondary is an optional fallback provider.
	secondary Provider
}

// yahooQuote models one contract row of a Yahoo option chain.
type yahooQuote struct {
	ContractSymbol    string  `json:"contractSymbol"`
	Strike            float64 `json:"strike"`
	LastPrice         float64 `json:"lastPrice"`
	Bid               float64 `json:"bid"`
	Ask               float64 `json:"ask"`
	ImpliedVolatility float64 `json:"impliedVolatility"`
	Expiration        int64   `json:"expiration"`
}

// yahooChainResp models the envelope returned by /v7/finance/options/<sym>.
type yahooChainResp struct {
	OptionChain struct {
		Result []struct {
			UnderlyingSymbol string  `json:"underlyingSymbol"`
			ExpirationDates  []int64 `json:"expirationDates"`
			Quote            struct {
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"quote"`
			Options []struct {
				ExpirationDate int64        `json:"expirationDate"`
				Calls          []yahooQuote `json:"calls"`
				Puts           []yahooQuote `json:"puts"`
			} `json:"options"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"optionChain"`
}

// NewYahooProvider constructs a Yahoo Finance-backed data provider with an
// HTTP client configured for connection reuse and sane timeouts.
func NewYahooProvider() *yahooProvider {
	logger.Infof("initializing Yahoo data provider")

	return &yahooProvider{
		Client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 20 * time.Second,
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		BaseURL: "https://query2.finance.yahoo.com",
	}
}

// Secondary returns the configured secondary Provider, if any.
func (yahooDataProv *yahooProvider) Secondary() Provider {
	return yahooDataProv.secondary
}

// GetSpot returns the most recent regular-market price of the underlying.
func (yahooDataProv *yahooProvider) GetSpot(underlying string) (float64, error) {
	body, err := yahooDataProv.fetchChain(underlying, nil)
	if err != nil {
		if yahooDataProv.secondary != nil {
			logger.Tracef("delegating spot lookup to secondary provider")
			return yahooDataProv.secondary.GetSpot(underlying)
		}
		return 0, err
	}

	spot := body.OptionChain.Result[0].Quote.RegularMarketPrice
	if spot <= 0 {
		return 0, fmt.Errorf("no market price for %s", underlying)
	}

	logger.Debugf("spot %s = %.2f", underlying, spot)
	return spot, nil
}

// GetExpiries returns the available option expiry dates for the underlying,
// normalized to UTC calendar dates.
func (yahooDataProv *yahooProvider) GetExpiries(underlying string) ([]time.Time, error) {
	body, err := yahooDataProv.fetchChain(underlying, nil)
	if err != nil {
		if yahooDataProv.secondary != nil {
			logger.Tracef("delegating expiry lookup to secondary provider")
			return yahooDataProv.secondary.GetExpiries(underlying)
		}
		return nil, err
	}

	res := body.OptionChain.Result[0]
	out := make([]time.Time, 0, len(res.ExpirationDates))
	for _, ts := range res.ExpirationDates {
		out = append(out, time.Unix(ts, 0).UTC().Truncate(24*time.Hour))
	}

	logger.Debugf("%s has %d listed expiries", underlying, len(out))
	return out, nil
}

// GetChain returns the call and put quotes for one expiry of the underlying.
func (yahooDataProv *yahooProvider) GetChain(underlying string, expiry time.Time) (Chain, error) {
	body, err := yahooDataProv.fetchChain(underlying, &expiry)
	if err != nil {
		if yahooDataProv.secondary != nil {
			logger.Tracef("delegating chain fetch to secondary provider")
			return yahooDataProv.secondary.GetChain(underlying, expiry)
		}
		return Chain{}, err
	}

	res := body.OptionChain.Result[0]
	if len(res.Options) == 0 {
		return Chain{}, fmt.Errorf("no chain for %s expiry %s", underlying, expiry.Format("2006-01-02"))
	}

	opt := res.Options[0]
	chain := Chain{
		Calls: toRawQuotes(opt.Calls, underlying, expiry),
		Puts:  toRawQuotes(opt.Puts, underlying, expiry),
	}

	logger.Tracef("chain %s %s: %d calls, %d puts",
		underlying, expiry.Format("2006-01-02"), len(chain.Calls), len(chain.Puts))
	return chain, nil
}

// fetchChain performs one request against the options endpoint. A nil
// expiry fetches the summary document (spot + expiry list + front chain);
// a non-nil expiry selects that expiry's chain via the date parameter.
func (yahooDataProv *yahooProvider) fetchChain(underlying string, expiry *time.Time) (*yahooChainResp, error) {
	endpoint, err := url.Parse(yahooDataProv.BaseURL + "/v7/finance/options/" + url.PathEscape(underlying))
	if err != nil {
		return nil, err
	}
	if expiry != nil {
		query := endpoint.Query()
		query.Set("date", fmt.Sprintf("%d", expiry.UTC().Unix()))
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	// the endpoint rejects the default Go user agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64)")
	req.Header.Set("Accept", "application/json")

	resp, err := yahooDataProv.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("options request for %s: %w", underlying, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("options request for %s: status %d", underlying, resp.StatusCode)
	}

	var body yahooChainResp
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding chain for %s: %w", underlying, err)
	}
	if body.OptionChain.Error != nil {
		return nil, fmt.Errorf("chain error for %s: %s", underlying, body.OptionChain.Error.Description)
	}
	if len(body.OptionChain.Result) == 0 {
		return nil, fmt.Errorf("empty chain result for %s", underlying)
	}
	return &body, nil
}

func toRawQuotes(quotes []yahooQuote, underlying string, fallbackExpiry time.Time) []RawQuote {
	out := make([]RawQuote, 0, len(quotes))
	for _, q := range quotes {
		exp := fallbackExpiry
		if q.Expiration > 0 {
			exp = time.Unix(q.Expiration, 0).UTC().Truncate(24 * time.Hour)
		}
		out = append(out, RawQuote{
			ContractSymbol:    q.ContractSymbol,
			Strike:            q.Strike,
			LastPrice:         q.LastPrice,
			Bid:               q.Bid,
			Ask:               q.Ask,
			ImpliedVolatility: q.ImpliedVolatility,
			Underlying:        underlying,
			Expiry:            exp,
		})
	}
	return out
}
