package data

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/contactkeval/option-pricer/internal/calendar"
	"github.com/contactkeval/option-pricer/internal/pricing"
)

// synthDataProvider manufactures quotes from the pricing kernel itself at a
// fixed volatility, so offline runs exercise the full solve path and recover
// a known volatility.
type synthDataProvider struct {
	secondary Provider

	// Spot is the fixed underlying price quoted for every symbol.
	Spot float64

	// Vol is the flat volatility all synthetic quotes are priced at.
	Vol float64

	// Rate is the risk-free rate used for synthetic pricing.
	Rate float64

	// Spread is the relative bid/ask spread around the model mid.
	Spread float64

	now func() time.Time
}

// NewSyntheticProvider returns a Provider quoting every contract off the
// Black-Scholes model at a flat 20% volatility.
func NewSyntheticProvider() *synthDataProvider {
	return &synthDataProvider{
		Spot:   100.0,
		Vol:    0.20,
		Rate:   0.05,
		Spread: 0.02,
		now:    time.Now,
	}
}

// NewSyntheticProviderAt is NewSyntheticProvider with an explicit clock, for
// deterministic callers and tests.
func NewSyntheticProviderAt(clock func() time.Time) *synthDataProvider {
	p := NewSyntheticProvider()
	p.now = clock
	return p
}

func (synthDataProv *synthDataProvider) Secondary() Provider {
	return synthDataProv.secondary
}

func (synthDataProv *synthDataProvider) GetSpot(underlying string) (float64, error) {
	if synthDataProv.secondary != nil {
		return synthDataProv.secondary.GetSpot(underlying)
	}
	return synthDataProv.Spot, nil
}

func (synthDataProv *synthDataProvider) GetOptionQuote(
	underlying string,
	strike float64,
	expiryDate time.Time,
	optionType string,
) (Quote, error) {

	if synthDataProv.secondary != nil {
		return synthDataProv.secondary.GetOptionQuote(underlying, strike, expiryDate, optionType)
	}

	T := calendar.YearsBetween(synthDataProv.now(), expiryDate)
	if T <= 0 {
		return Quote{}, fmt.Errorf("synthetic quote: contract %s %s expired", underlying, expiryDate.Format("2006-01-02"))
	}

	typ := pricing.Call
	if optionType == "put" || optionType == "p" {
		typ = pricing.Put
	}
	mid, err := pricing.Price(synthDataProv.Vol, synthDataProv.Spot, strike, T, synthDataProv.Rate, typ)
	if err != nil {
		return Quote{}, fmt.Errorf("synthetic quote: %w", err)
	}

	half := mid * synthDataProv.Spread / 2
	return Quote{
		Bid:  decimal.NewFromFloat(mid - half),
		Ask:  decimal.NewFromFloat(mid + half),
		Last: decimal.NewFromFloat(mid),
		Time: synthDataProv.now(),
	}, nil
}
