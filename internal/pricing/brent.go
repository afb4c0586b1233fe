package pricing

import "math"

// brentq finds a root of f on [lo, hi] with Brent's method: bisection
// combined with secant and inverse quadratic interpolation steps, keeping
// bisection's guarantee of convergence whenever the bracket has a sign
// change.
//
// Returns a *ConvergenceError when f(lo) and f(hi) have the same sign or the
// iteration cap is reached, and propagates any error from f itself.
func brentq(f func(float64) (float64, error), lo, hi, tol float64, maxIter int) (float64, error) {
	const eps = 2.220446049250313e-16 // float64 machine epsilon

	a, b := lo, hi
	fa, err := f(a)
	if err != nil {
		return 0, err
	}
	fb, err := f(b)
	if err != nil {
		return 0, err
	}

	if (fa > 0) == (fb > 0) {
		return 0, &ConvergenceError{
			Lo: a, Hi: b, FLo: fa, FHi: fb,
			Residual: math.Min(math.Abs(fa), math.Abs(fb)),
		}
	}

	c, fc := b, fb
	var d, e float64

	for iter := 0; iter < maxIter; iter++ {
		if (fb > 0) == (fc > 0) {
			// root no longer between b and c, rebracket with a
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol1 := 2*eps*math.Abs(b) + 0.5*tol
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol1 || fb == 0 {
			return b, nil
		}

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			// interpolation step: secant when a == c, inverse quadratic
			// otherwise
			var p, q float64
			s := fb / fa
			if a == c {
				p = 2 * xm * s
				q = 1 - s
			} else {
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)

			min1 := 3*xm*q - math.Abs(tol1*q)
			min2 := math.Abs(e * q)
			if 2*p < math.Min(min1, min2) {
				// interpolation acceptable
				e = d
				d = p / q
			} else {
				// falls back to bisection
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		fb, err = f(b)
		if err != nil {
			return 0, err
		}
	}

	return 0, &ConvergenceError{
		Lo: math.Min(b, c), Hi: math.Max(b, c),
		FLo: fb, FHi: fc,
		Iterations: maxIter,
		Residual:   math.Abs(fb),
	}
}
