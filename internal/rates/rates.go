// Package rates supplies the risk-free rate used as the model's r input.
package rates

// Provider returns an annualized risk-free rate as a decimal
// (0.05 for 5%).
type Provider interface {
	RiskFreeRate() (float64, error)
}

// Static is a Provider pinned to a fixed rate, for offline runs and tests.
type Static struct {
	Rate float64
}

func (s Static) RiskFreeRate() (float64, error) {
	return s.Rate, nil
}
