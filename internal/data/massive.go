// Massive-backed Provider implementation retrieving spot prices and option
// quotes over the Massive HTTP APIs.
//
// Design notes:
//   - Uses raw HTTP calls instead of an SDK
//   - Retries per-minute rate limits (429) by sleeping to the minute boundary
//   - Logging is verbose at Debug/Trace levels for diagnostics
package data

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/contactkeval/option-pricer/internal/logger"
)

// massiveDataProvider implements the Provider interface using Massive APIs.
type massiveDataProvider struct {
	// APIKey used for authenticating requests with Massive.
	APIKey string

	// Client is the HTTP client used to make API requests.
	Client *http.Client

	// BaseURL is the root endpoint for Massive APIs.
	BaseURL string

	// secondary is an optional fallback provider.
	secondary Provider
}

// NewMassiveDataProvider constructs a Massive-backed quote provider with
// timeout, pooling, and gzip defaults suitable for the Massive endpoints.
func NewMassiveDataProvider(apiKey string) *massiveDataProvider {
	logger.Infof("initializing Massive data provider")

	return &massiveDataProvider{
		APIKey: apiKey,
		Client: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 30 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
				DisableCompression:    false, // must be false to enable gzip auto-decompression
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		BaseURL: "https://api.massive.com",
	}
}

// Secondary returns the configured secondary Provider, if any.
func (massiveDataProv *massiveDataProvider) Secondary() Provider {
	return massiveDataProv.secondary
}

// SetSecondary installs a fallback provider consulted when Massive cannot
// serve a request.
func (massiveDataProv *massiveDataProvider) SetSecondary(p Provider) {
	massiveDataProv.secondary = p
}

// GetSpot returns the most recent daily close for the underlying.
func (massiveDataProv *massiveDataProvider) GetSpot(underlying string) (float64, error) {
	url := fmt.Sprintf(
		"%s/v2/aggs/ticker/%s/prev?adjusted=true&apiKey=%s",
		massiveDataProv.BaseURL, underlying, massiveDataProv.APIKey,
	)
	logger.Debugf("spot request: %s", underlying)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := massiveDataProv.processGetRequest(req)
	if err != nil {
		if massiveDataProv.secondary != nil {
			logger.Infof("massive spot failed (%v), trying secondary", err)
			return massiveDataProv.secondary.GetSpot(underlying)
		}
		return 0, fmt.Errorf("massive api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("massive prev close status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	var body struct {
		Results []struct {
			Close float64 `json:"c"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode: %w", err)
	}
	if len(body.Results) == 0 || body.Results[0].Close <= 0 {
		return 0, fmt.Errorf("no usable close price for %s", underlying)
	}

	logger.Tracef("spot %s = %.2f", underlying, body.Results[0].Close)
	return body.Results[0].Close, nil
}

// GetOptionQuote fetches the option snapshot for the contract and returns
// its bid/ask/last quote.
func (massiveDataProv *massiveDataProvider) GetOptionQuote(
	underlying string,
	strike float64,
	expiryDate time.Time,
	optionType string,
) (Quote, error) {

	symbol := OptionSymbolFromParts(underlying, expiryDate, optionType, strike)
	url := fmt.Sprintf(
		"%s/v3/snapshot/options/%s/%s?apiKey=%s",
		massiveDataProv.BaseURL, underlying, symbol, massiveDataProv.APIKey,
	)
	logger.Debugf("option quote request: %s", symbol)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return Quote{}, err
	}

	resp, err := massiveDataProv.processGetRequest(req)
	if err != nil {
		if massiveDataProv.secondary != nil {
			logger.Infof("massive quote failed (%v), trying secondary", err)
			return massiveDataProv.secondary.GetOptionQuote(underlying, strike, expiryDate, optionType)
		}
		return Quote{}, fmt.Errorf("massive api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return Quote{}, fmt.Errorf("massive option snapshot status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	var body struct {
		Results struct {
			LastQuote struct {
				Bid float64 `json:"bid"`
				Ask float64 `json:"ask"`
			} `json:"last_quote"`
			LastTrade struct {
				Price float64 `json:"price"`
			} `json:"last_trade"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Quote{}, fmt.Errorf("decode: %w", err)
	}

	q := Quote{
		Bid:  decimal.NewFromFloat(body.Results.LastQuote.Bid),
		Ask:  decimal.NewFromFloat(body.Results.LastQuote.Ask),
		Last: decimal.NewFromFloat(body.Results.LastTrade.Price),
		Time: time.Now(),
	}
	if q.Mid() <= 0 {
		return Quote{}, fmt.Errorf("no usable option quote for %s", symbol)
	}

	logger.Tracef("quote %s bid=%s ask=%s last=%s", symbol, q.Bid, q.Ask, q.Last)
	return q, nil
}

// processGetRequest executes the request, sleeping through per-minute rate
// limits (429) until the next minute boundary.
func (massiveDataProv *massiveDataProvider) processGetRequest(
	req *http.Request,
) (*http.Response, error) {

	req.Header.Set("Authorization", "Bearer "+massiveDataProv.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "massive-client/1.0")

	for {
		resp, err := massiveDataProv.Client.Do(req)
		if err != nil {
			return nil, err
		}

		// Success
		if resp.StatusCode < 400 {
			return resp, nil
		}

		// Handle per-minute rate limit (commonly 429)
		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()

			now := time.Now()
			sleepDuration := time.Until(
				now.Truncate(time.Minute).Add(time.Minute),
			)

			logger.Infof("rate limit hit, sleeping for %s", sleepDuration)
			time.Sleep(sleepDuration)
			continue
		}

		return resp, nil
	}
}
