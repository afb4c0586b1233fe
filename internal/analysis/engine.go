// Package analysis runs implied-volatility and greek computations across a
// configured list of option contracts, joining the market data, rates, and
// pricing layers.
package analysis

import (
	"fmt"
	"time"

	"github.com/contactkeval/option-pricer/internal/calendar"
	"github.com/contactkeval/option-pricer/internal/data"
	"github.com/contactkeval/option-pricer/internal/logger"
	"github.com/contactkeval/option-pricer/internal/pricing"
	"github.com/contactkeval/option-pricer/internal/rates"
)

// Config struct
type Config struct {
	Underlying   string         `json:"underlying"`               // e.g. "AAPL"
	Contracts    []ContractSpec `json:"contracts"`                // contracts to analyze
	RiskFreeRate *float64       `json:"risk_free_rate,omitempty"` // fixed rate; nil = ask the rates provider
	DateLayout   string         `json:"date_layout,omitempty"`    // expiry parse layout, default "1/2/2006"
	Digits       *int           `json:"digits,omitempty"`         // implied vol rounding digits; nil = default 5
	ReportDir    string         `json:"report_dir,omitempty"`     // report directory
	Verbosity    int            `json:"verbosity,omitempty"`      // 0=errors,1=info,2=debug,3=trace
}

// ContractSpec names one option contract to analyze.
type ContractSpec struct {
	Strike float64 `json:"strike"`
	Expiry string  `json:"expiry"` // date string parsed with Config.DateLayout
	Type   string  `json:"type"`   // "call" or "put"
}

// Row is the analysis output for one contract.
type Row struct {
	Underlying    string          `json:"underlying"`
	Strike        float64         `json:"strike"`
	Expiry        string          `json:"expiry"`
	Type          string          `json:"type"`
	Spot          float64         `json:"spot"`
	YearsToExpiry float64         `json:"years_to_expiry"`
	RiskFreeRate  float64         `json:"risk_free_rate"`
	Quote         float64         `json:"quote"`
	ImpliedVol    float64         `json:"implied_vol,omitempty"`
	Premium       float64         `json:"premium,omitempty"` // model premium at the solved vol
	Greeks        *pricing.Greeks `json:"greeks,omitempty"`  // nil when the row failed
	Error         string          `json:"error,omitempty"`   // per-contract failure, run continues
}

// Result collects all analyzed rows.
type Result struct {
	Underlying string    `json:"underlying"`
	AsOf       time.Time `json:"as_of"`
	Rows       []Row     `json:"rows"`
}

type Engine struct {
	cfg    *Config
	prov   data.Provider
	rates  rates.Provider
	solver *pricing.Solver
	now    func() time.Time
}

func NewEngine(cfg *Config, prov data.Provider, ratesProv rates.Provider) *Engine {
	return &Engine{
		cfg:    cfg,
		prov:   prov,
		rates:  ratesProv,
		solver: pricing.NewSolver(),
		now:    time.Now,
	}
}

// Run analyzes every configured contract: fetch the quote, solve implied
// volatility, evaluate the greek set at the solved volatility.
//
// Per-contract failures (expired contract, unattainable quote, missing
// market data) land in the row's Error field; the run only fails as a whole
// when the spot price or risk-free rate cannot be resolved.
func (e *Engine) Run() (*Result, error) {
	cfg := e.cfg
	// fill defaults
	if cfg.ReportDir == "" {
		cfg.ReportDir = "./out"
	}
	if cfg.Verbosity < 0 || cfg.Verbosity > 3 {
		cfg.Verbosity = 1
	}
	logger.SetVerbosity(cfg.Verbosity)
	if cfg.Digits != nil {
		e.solver.SetDigits(*cfg.Digits)
	}

	rate, err := e.resolveRate()
	if err != nil {
		return nil, fmt.Errorf("resolving risk-free rate: %w", err)
	}
	logger.Infof("risk-free rate = %.4f", rate)

	spot, err := e.prov.GetSpot(cfg.Underlying)
	if err != nil {
		return nil, fmt.Errorf("fetching spot for %s: %w", cfg.Underlying, err)
	}
	logger.Infof("%s spot = %.2f", cfg.Underlying, spot)

	now := e.now()
	res := &Result{Underlying: cfg.Underlying, AsOf: now}
	for _, spec := range cfg.Contracts {
		res.Rows = append(res.Rows, e.analyze(spec, spot, rate, now))
	}
	return res, nil
}

func (e *Engine) analyze(spec ContractSpec, spot, rate float64, now time.Time) Row {
	row := Row{
		Underlying:   e.cfg.Underlying,
		Strike:       spec.Strike,
		Expiry:       spec.Expiry,
		Type:         spec.Type,
		Spot:         spot,
		RiskFreeRate: rate,
	}

	expiry, err := calendar.ParseExpiry(spec.Expiry, e.cfg.DateLayout)
	if err != nil {
		row.Error = err.Error()
		return row
	}
	T := calendar.YearsBetween(now, expiry)
	row.YearsToExpiry = T
	if T <= 0 {
		row.Error = fmt.Sprintf("contract expired %.1f days ago", -T*365)
		return row
	}

	quote, err := e.prov.GetOptionQuote(e.cfg.Underlying, spec.Strike, expiry, spec.Type)
	if err != nil {
		row.Error = err.Error()
		return row
	}
	row.Quote = quote.Mid()

	typ := pricing.OptionType(spec.Type)
	iv, err := e.solver.ImpliedVol(row.Quote, spot, spec.Strike, T, rate, typ)
	if err != nil {
		logger.Debugf("implied vol solve failed for %s %v %s: %v", spec.Expiry, spec.Strike, spec.Type, err)
		row.Error = err.Error()
		return row
	}
	row.ImpliedVol = iv

	premium, err := pricing.Price(iv, spot, spec.Strike, T, rate, typ)
	if err != nil {
		row.Error = err.Error()
		return row
	}
	row.Premium = premium

	greeks, err := pricing.AllGreeks(iv, spot, spec.Strike, T, rate, typ)
	if err != nil {
		row.Error = err.Error()
		return row
	}
	row.Greeks = &greeks

	logger.Debugf("%s %v %s: iv=%.5f delta=%.4f", spec.Expiry, spec.Strike, spec.Type, iv, greeks.Delta)
	return row
}

func (e *Engine) resolveRate() (float64, error) {
	if e.cfg.RiskFreeRate != nil {
		return *e.cfg.RiskFreeRate, nil
	}
	if e.rates == nil {
		return 0, fmt.Errorf("no fixed rate configured and no rates provider installed")
	}
	return e.rates.RiskFreeRate()
}
