package pricing

import "fmt"

// DomainError reports a kernel precondition violation: a parameter that must
// be strictly positive was not.
type DomainError struct {
	Param string
	Value float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("pricing: %s must be positive, got %g", e.Param, e.Value)
}

// ConvergenceError reports a failed implied-volatility solve. Lo/Hi and
// FLo/FHi carry the last bracket and its objective values, Residual the
// objective at the best estimate, so callers can see how far off the quote
// was from the attainable price range.
type ConvergenceError struct {
	Lo, Hi     float64
	FLo, FHi   float64
	Iterations int
	Residual   float64
}

func (e *ConvergenceError) Error() string {
	if e.Iterations == 0 {
		return fmt.Sprintf(
			"pricing: no sign change over bracket [%g, %g] (f(lo)=%g, f(hi)=%g): price not attainable",
			e.Lo, e.Hi, e.FLo, e.FHi)
	}
	return fmt.Sprintf(
		"pricing: root finding did not converge after %d iterations (bracket [%g, %g], residual %g)",
		e.Iterations, e.Lo, e.Hi, e.Residual)
}

// NumericError reports overflow, underflow, or NaN propagation out of the
// kernel's exp/log/CDF evaluation.
type NumericError struct {
	Op    string
	Value float64
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("pricing: %s produced non-finite value %g", e.Op, e.Value)
}
