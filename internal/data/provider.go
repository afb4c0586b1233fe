// Package data provides market quote providers feeding the implied
// volatility solver with observed option prices.
package data

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Provider supplies market data: the underlying spot price and observed
// option quotes.
type Provider interface {
	// Secondary returns an optional fallback provider.
	Secondary() Provider

	// GetSpot returns the current price of the underlying.
	GetSpot(underlying string) (float64, error)

	// GetOptionQuote returns the observed market quote for one contract.
	GetOptionQuote(underlying string, strike float64, expiryDate time.Time, optionType string) (Quote, error)
}

// Quote is an observed option market quote. Prices stay decimal at the data
// boundary; Mid collapses to the float64 premium the solver consumes.
type Quote struct {
	Bid  decimal.Decimal `json:"bid"`
	Ask  decimal.Decimal `json:"ask"`
	Last decimal.Decimal `json:"last"`
	Time time.Time       `json:"time"`
}

var two = decimal.NewFromInt(2)

// Mid returns the bid/ask midpoint, falling back to the last trade when one
// side of the book is empty.
func (q Quote) Mid() float64 {
	if q.Bid.IsPositive() && q.Ask.IsPositive() {
		return q.Bid.Add(q.Ask).Div(two).InexactFloat64()
	}
	return q.Last.InexactFloat64()
}

// OptionSymbolFromParts formats an OCC-style option ticker:
// <root><YYMMDD><C|P><strike*1000 padded to 8 digits>.
func OptionSymbolFromParts(underlying string, expiryDate time.Time, optionType string, strike float64) string {
	expDt := expiryDate.UTC().Format("060102")
	optType := "C"
	if strings.ToLower(optionType) == "put" || strings.ToLower(optionType) == "p" {
		optType = "P"
	}
	strikeInt := int(math.Round(strike * 1000))
	return fmt.Sprintf("O:%s%s%s%08d", strings.ToUpper(underlying), expDt, optType, strikeInt)
}
