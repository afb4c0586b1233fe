package pricing

import (
	"github.com/shopspring/decimal"
)

const (
	// Volatility bracket searched by the solver: 0% to 1000% annualized,
	// the practical range for liquid option markets. The lower edge is an
	// epsilon above zero because sigma = 0 is outside the kernel's domain.
	bracketLo = 1e-9
	bracketHi = 10.0

	// DefaultMaxIterations caps the Brent loop so a bad quote fails fast
	// instead of looping.
	DefaultMaxIterations = 100

	// DefaultAccuracy is the root tolerance on sigma.
	DefaultAccuracy = 1e-10

	// DefaultDigits is the number of decimal digits the solved volatility
	// is rounded to before being returned. Rounding happens inside the
	// solver rather than being left to the caller; Solver makes it
	// configurable.
	DefaultDigits = 5
)

// Solver inverts the pricing kernel to back out implied volatility from an
// observed market premium. The zero value is not usable; construct with
// NewSolver.
type Solver struct {
	maxIterations int
	accuracy      float64
	digits        int32
}

// NewSolver returns a Solver with the default iteration cap, accuracy, and
// rounding policy.
func NewSolver() *Solver {
	return &Solver{
		maxIterations: DefaultMaxIterations,
		accuracy:      DefaultAccuracy,
		digits:        DefaultDigits,
	}
}

func (s *Solver) MaxIterations() int { return s.maxIterations }

func (s *Solver) SetMaxIterations(maxIterations int) {
	if maxIterations > 0 {
		s.maxIterations = maxIterations
	} else {
		s.maxIterations = 1
	}
}

func (s *Solver) Accuracy() float64 { return s.accuracy }

func (s *Solver) SetAccuracy(accuracy float64) {
	if accuracy > 0 {
		s.accuracy = accuracy
	}
}

func (s *Solver) Digits() int { return int(s.digits) }

// SetDigits changes how many decimal digits the result is rounded to.
// Negative values disable rounding entirely.
func (s *Solver) SetDigits(digits int) {
	s.digits = int32(digits)
}

// ImpliedVol solves price(sigma, S, K, T, r, typ) = P for sigma over the
// bracket (0, 10].
//
// The kernel is monotonically increasing in sigma (positive vega), so the
// objective has at most one root. Existence requires P to lie strictly
// between the sigma->0 limit and the price at the bracket's upper edge; a
// quote outside that range has no sign change and fails with a
// *ConvergenceError rather than extrapolating.
func (s *Solver) ImpliedVol(P, S, K, T, r float64, typ OptionType) (float64, error) {
	if P < 0 {
		return 0, &DomainError{Param: "P", Value: P}
	}
	if err := checkContract(S, K, T); err != nil {
		return 0, err
	}

	objective := func(sigma float64) (float64, error) {
		premium, err := Price(sigma, S, K, T, r, typ)
		if err != nil {
			return 0, err
		}
		return premium - P, nil
	}

	iv, err := brentq(objective, bracketLo, bracketHi, s.accuracy, s.maxIterations)
	if err != nil {
		return 0, err
	}
	return s.round(iv), nil
}

func (s *Solver) round(x float64) float64 {
	if s.digits < 0 {
		return x
	}
	return decimal.NewFromFloat(x).Round(s.digits).InexactFloat64()
}

// ImpliedVol solves for implied volatility with the default solver settings:
// 100 iterations, 1e-10 accuracy, result rounded to 5 decimal digits.
func ImpliedVol(P, S, K, T, r float64, typ OptionType) (float64, error) {
	return NewSolver().ImpliedVol(P, S, K, T, r, typ)
}
