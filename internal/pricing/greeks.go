package pricing

import "math"

// Greeks collects the partial derivatives of the premium with respect to the
// model inputs, up to second order for the gamma/vanna/charm cross terms.
//
// Sign convention: every derivative is taken with respect to the parameter
// as passed to Price. Theta is dPremium/dT, the sensitivity to the
// years-to-expiry input, so it is positive for typical contracts; traders
// wanting per-day decay should negate and divide by 365 themselves.
type Greeks struct {
	Delta float64 `json:"delta"` // dP/dS
	Gamma float64 `json:"gamma"` // d2P/dS2
	Theta float64 `json:"theta"` // dP/dT
	Vega  float64 `json:"vega"`  // dP/dsigma
	Vanna float64 `json:"vanna"` // d2P/dsigma dS
	Charm float64 `json:"charm"` // d2P/dT dS
}

// Delta returns dPremium/dS: Phi(d1) for calls, Phi(d1)-1 for puts.
func Delta(sigma, S, K, T, r float64, typ OptionType) (float64, error) {
	if err := checkDomain(sigma, S, K, T); err != nil {
		return 0, err
	}
	d1, _ := dValues(sigma, S, K, T, r)
	delta := normCDF(d1)
	if typ == Put {
		delta -= 1
	}
	return finite("delta", delta)
}

// Gamma returns d2Premium/dS2. Identical for calls and puts, since the
// parity difference S - K*exp(-r*T) is linear in S.
func Gamma(sigma, S, K, T, r float64, typ OptionType) (float64, error) {
	if err := checkDomain(sigma, S, K, T); err != nil {
		return 0, err
	}
	d1, _ := dValues(sigma, S, K, T, r)
	return finite("gamma", normPDF(d1)/(S*sigma*math.Sqrt(T)))
}

// Theta returns dPremium/dT, the derivative with respect to years-to-expiry.
func Theta(sigma, S, K, T, r float64, typ OptionType) (float64, error) {
	if err := checkDomain(sigma, S, K, T); err != nil {
		return 0, err
	}
	d1, d2 := dValues(sigma, S, K, T, r)
	decay := S * normPDF(d1) * sigma / (2 * math.Sqrt(T))
	carry := r * K * math.Exp(-r*T)
	if typ == Put {
		return finite("theta", decay-carry*normCDF(-d2))
	}
	return finite("theta", decay+carry*normCDF(d2))
}

// Vega returns dPremium/dsigma, per unit of volatility. Identical for calls
// and puts.
func Vega(sigma, S, K, T, r float64, typ OptionType) (float64, error) {
	if err := checkDomain(sigma, S, K, T); err != nil {
		return 0, err
	}
	d1, _ := dValues(sigma, S, K, T, r)
	return finite("vega", S*normPDF(d1)*math.Sqrt(T))
}

// Vanna returns d2Premium/dsigma dS, the volatility sensitivity of delta.
// Identical for calls and puts.
func Vanna(sigma, S, K, T, r float64, typ OptionType) (float64, error) {
	if err := checkDomain(sigma, S, K, T); err != nil {
		return 0, err
	}
	d1, d2 := dValues(sigma, S, K, T, r)
	return finite("vanna", -normPDF(d1)*d2/sigma)
}

// Charm returns d2Premium/dT dS, the expiry sensitivity of delta. Identical
// for calls and puts.
func Charm(sigma, S, K, T, r float64, typ OptionType) (float64, error) {
	if err := checkDomain(sigma, S, K, T); err != nil {
		return 0, err
	}
	d1, d2 := dValues(sigma, S, K, T, r)
	sqrtT := math.Sqrt(T)
	charm := normPDF(d1) * (2*r*T - d2*sigma*sqrtT) / (2 * T * sigma * sqrtT)
	return finite("charm", charm)
}

// AllGreeks evaluates the full sensitivity set in one call. The d1/d2
// statistics are computed once and shared.
func AllGreeks(sigma, S, K, T, r float64, typ OptionType) (Greeks, error) {
	if err := checkDomain(sigma, S, K, T); err != nil {
		return Greeks{}, err
	}

	d1, d2 := dValues(sigma, S, K, T, r)
	sqrtT := math.Sqrt(T)
	pdf1 := normPDF(d1)
	carry := r * K * math.Exp(-r*T)

	g := Greeks{
		Delta: normCDF(d1),
		Gamma: pdf1 / (S * sigma * sqrtT),
		Theta: S*pdf1*sigma/(2*sqrtT) + carry*normCDF(d2),
		Vega:  S * pdf1 * sqrtT,
		Vanna: -pdf1 * d2 / sigma,
		Charm: pdf1 * (2*r*T - d2*sigma*sqrtT) / (2 * T * sigma * sqrtT),
	}
	if typ == Put {
		g.Delta -= 1
		g.Theta = S*pdf1*sigma/(2*sqrtT) - carry*normCDF(-d2)
	}

	for _, v := range []float64{g.Delta, g.Gamma, g.Theta, g.Vega, g.Vanna, g.Charm} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Greeks{}, &NumericError{Op: "greeks", Value: v}
		}
	}
	return g, nil
}

func finite(op string, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &NumericError{Op: op, Value: v}
	}
	return v, nil
}
