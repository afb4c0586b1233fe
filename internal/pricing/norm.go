package pricing

import "gonum.org/v1/gonum/stat/distuv"

// stdNormal is the standard normal distribution backing the Phi/phi terms in
// the model.
var stdNormal = distuv.UnitNormal

// normCDF returns Phi(x), the probability that a standard normal variable is
// less than or equal to x.
func normCDF(x float64) float64 {
	return stdNormal.CDF(x)
}

// normPDF returns phi(x), the standard normal density at x.
func normPDF(x float64) float64 {
	return stdNormal.Prob(x)
}
