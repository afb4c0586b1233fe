package rates

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/contactkeval/option-pricer/internal/logger"
)

// TreasuryClient resolves the risk-free rate from the most recent Treasury
// Bill average interest rate published by the fiscaldata.treasury.gov API.
//
// The last successfully fetched rate is cached so a flaky network does not
// leave callers without any rate at all.
type TreasuryClient struct {
	// Client is the HTTP client used to call the fiscaldata API.
	Client *http.Client

	// BaseURL is the fiscaldata service root. Overridable for tests.
	BaseURL string

	lastKnownRate float64
	lastFetchTime time.Time
}

type treasuryResponse struct {
	Data []treasuryRate `json:"data"`
	Meta struct {
		Count int `json:"count"`
	} `json:"meta"`
}

type treasuryRate struct {
	RecordDate            string `json:"record_date"`
	AvgInterestRateAmount string `json:"avg_interest_rate_amt"`
}

// NewTreasuryClient constructs a TreasuryClient with sensible HTTP defaults.
func NewTreasuryClient() *TreasuryClient {
	return &TreasuryClient{
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
		BaseURL: "https://api.fiscaldata.treasury.gov/services/api/fiscal_service",
	}
}

// RiskFreeRate fetches the latest Treasury Bill rate, updating the cached
// last-known rate on success.
func (tc *TreasuryClient) RiskFreeRate() (float64, error) {
	rate, err := tc.fetch()
	if err != nil {
		return 0, err
	}

	tc.lastKnownRate = rate
	tc.lastFetchTime = time.Now()
	logger.Debugf("treasury bill rate %.3f%% (%.6f decimal)", rate*100, rate)
	return rate, nil
}

// RiskFreeRateWithLastKnown tries a fresh fetch and falls back to the cached
// rate when the API is unreachable. Returns defaultRate if nothing was ever
// fetched.
func (tc *TreasuryClient) RiskFreeRateWithLastKnown(defaultRate float64) float64 {
	if rate, err := tc.RiskFreeRate(); err == nil {
		return rate
	}
	if tc.lastFetchTime.IsZero() {
		logger.Infof("treasury API unavailable and no cached rate, using default %.4f", defaultRate)
		return defaultRate
	}
	age := time.Since(tc.lastFetchTime)
	logger.Infof("treasury API unavailable, using rate %.6f cached %v ago", tc.lastKnownRate, age.Round(time.Minute))
	return tc.lastKnownRate
}

func (tc *TreasuryClient) fetch() (float64, error) {
	url := fmt.Sprintf(
		"%s/v2/accounting/od/avg_interest_rates?fields=avg_interest_rate_amt,record_date&filter=security_desc:eq:Treasury%%20Bills&sort=-record_date&page[size]=1",
		tc.BaseURL)

	resp, err := tc.Client.Get(url)
	if err != nil {
		return 0, fmt.Errorf("fetching treasury rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("treasury API returned status %d", resp.StatusCode)
	}

	var body treasuryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decoding treasury response: %w", err)
	}
	if len(body.Data) == 0 {
		return 0, fmt.Errorf("no treasury rate data returned")
	}

	rate, err := strconv.ParseFloat(body.Data[0].AvgInterestRateAmount, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing rate %q: %w", body.Data[0].AvgInterestRateAmount, err)
	}

	// API reports percentages: "3.983" means 3.983%
	return rate / 100.0, nil
}
