// Package pricing implements the Black-Scholes pricing kernel for European
// options, a bracketed implied-volatility solver, and the greek
// sensitivities of the premium.
//
// All functions in this package are pure: no internal state, no I/O, safe to
// call concurrently for independent inputs.
package pricing

import (
	"math"
)

// OptionType selects the call or put branch of the model.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// Contract bundles the model inputs for one European option. Values are not
// mutated after construction.
type Contract struct {
	S    float64    `json:"underlying_price"` // spot price of the underlying
	K    float64    `json:"strike"`           // strike price
	T    float64    `json:"years_to_expiry"`  // time to expiry in years
	R    float64    `json:"risk_free_rate"`   // annualized risk-free rate
	Type OptionType `json:"type"`
}

// Price returns the Black-Scholes premium of the contract at volatility sigma.
func (c Contract) Price(sigma float64) (float64, error) {
	return Price(sigma, c.S, c.K, c.T, c.R, c.Type)
}

// Price calculates the Black-Scholes premium of a European option.
//
// Parameters:
//   - sigma: annualized volatility, must be > 0
//   - S: spot price of the underlying, must be > 0
//   - K: strike price, must be > 0
//   - T: time to expiry in years, must be > 0
//   - r: annualized risk-free rate
//   - typ: Call or Put
//
// The put premium is derived from the call via put-call parity, never priced
// independently, so the identity call - put = S - K*exp(-r*T) holds exactly
// for any valid input.
//
// Non-positive sigma, S, K or T return a *DomainError: T or sigma at zero
// divide by zero inside d1, and the model has nothing sensible to say about
// them. Inputs that drive exp/log or the normal CDF into NaN or Inf return
// a *NumericError instead of a silently clamped premium.
func Price(sigma, S, K, T, r float64, typ OptionType) (float64, error) {
	if err := checkDomain(sigma, S, K, T); err != nil {
		return 0, err
	}

	d1, d2 := dValues(sigma, S, K, T, r)
	call := normCDF(d1)*S - normCDF(d2)*K*math.Exp(-r*T)

	premium := call
	if typ == Put {
		premium = K*math.Exp(-r*T) - S + call
	}

	if math.IsNaN(premium) || math.IsInf(premium, 0) {
		return 0, &NumericError{Op: "price", Value: premium}
	}
	return premium, nil
}

// dValues computes the d1/d2 statistics shared by the premium and every
// greek. Callers must have validated the domain first.
func dValues(sigma, S, K, T, r float64) (d1, d2 float64) {
	sqrtT := math.Sqrt(T)
	d1 = (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	d2 = d1 - sigma*sqrtT
	return d1, d2
}

func checkDomain(sigma, S, K, T float64) error {
	if sigma <= 0 {
		return &DomainError{Param: "sigma", Value: sigma}
	}
	return checkContract(S, K, T)
}

func checkContract(S, K, T float64) error {
	switch {
	case S <= 0:
		return &DomainError{Param: "S", Value: S}
	case K <= 0:
		return &DomainError{Param: "K", Value: K}
	case T <= 0:
		return &DomainError{Param: "T", Value: T}
	}
	return nil
}
