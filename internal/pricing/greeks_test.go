package pricing

import (
	"math"
	"testing"
)

// The closed-form greeks must agree with finite differences of the kernel.
// This is the drift check: if the pricing formula changes, hand-written
// derivative formulas that were not updated fail here.
func TestGreeksMatchFiniteDifferences(t *testing.T) {
	type scenario struct {
		sigma, S, K, T, r float64
		typ               OptionType
	}
	cases := []scenario{
		{0.20, 100, 100, 1, 0.05, Call},
		{0.20, 100, 100, 1, 0.05, Put},
		{0.35, 120, 100, 0.5, 0.02, Call},
		{0.35, 80, 100, 0.5, 0.02, Put},
		{0.90, 50, 60, 2, 0.00, Call},
		{0.10, 200, 180, 0.25, 0.04, Put},
	}

	price := func(sigma, S, T float64, c scenario) float64 {
		p, err := Price(sigma, S, c.K, T, c.r, c.typ)
		if err != nil {
			t.Fatalf("price error: %v", err)
		}
		return p
	}

	for _, c := range cases {
		hS := c.S * 1e-4
		hV := c.sigma * 1e-4
		hT := c.T * 1e-4

		fdDelta := (price(c.sigma, c.S+hS, c.T, c) - price(c.sigma, c.S-hS, c.T, c)) / (2 * hS)
		fdGamma := (price(c.sigma, c.S+hS, c.T, c) - 2*price(c.sigma, c.S, c.T, c) + price(c.sigma, c.S-hS, c.T, c)) / (hS * hS)
		fdTheta := (price(c.sigma, c.S, c.T+hT, c) - price(c.sigma, c.S, c.T-hT, c)) / (2 * hT)
		fdVega := (price(c.sigma+hV, c.S, c.T, c) - price(c.sigma-hV, c.S, c.T, c)) / (2 * hV)
		fdVanna := (price(c.sigma+hV, c.S+hS, c.T, c) - price(c.sigma+hV, c.S-hS, c.T, c) -
			price(c.sigma-hV, c.S+hS, c.T, c) + price(c.sigma-hV, c.S-hS, c.T, c)) / (4 * hV * hS)
		fdCharm := (price(c.sigma, c.S+hS, c.T+hT, c) - price(c.sigma, c.S-hS, c.T+hT, c) -
			price(c.sigma, c.S+hS, c.T-hT, c) + price(c.sigma, c.S-hS, c.T-hT, c)) / (4 * hT * hS)

		g, err := AllGreeks(c.sigma, c.S, c.K, c.T, c.r, c.typ)
		if err != nil {
			t.Fatalf("AllGreeks error: %v", err)
		}

		checks := []struct {
			name    string
			got, fd float64
		}{
			{"delta", g.Delta, fdDelta},
			{"gamma", g.Gamma, fdGamma},
			{"theta", g.Theta, fdTheta},
			{"vega", g.Vega, fdVega},
			{"vanna", g.Vanna, fdVanna},
			{"charm", g.Charm, fdCharm},
		}
		for _, ch := range checks {
			tol := 1e-4 * math.Max(1, math.Abs(ch.fd))
			if math.Abs(ch.got-ch.fd) > tol {
				t.Errorf("%s for %+v: closed form %v vs finite difference %v", ch.name, c, ch.got, ch.fd)
			}
		}
	}
}

// Individual greek functions agree with the aggregate evaluation.
func TestGreeksIndividualMatchAggregate(t *testing.T) {
	const sigma, S, K, T, r = 0.25, 105, 100, 0.75, 0.03
	for _, typ := range []OptionType{Call, Put} {
		g, err := AllGreeks(sigma, S, K, T, r, typ)
		if err != nil {
			t.Fatalf("AllGreeks error: %v", err)
		}
		singles := []struct {
			name string
			fn   func(sigma, S, K, T, r float64, typ OptionType) (float64, error)
			want float64
		}{
			{"delta", Delta, g.Delta},
			{"gamma", Gamma, g.Gamma},
			{"theta", Theta, g.Theta},
			{"vega", Vega, g.Vega},
			{"vanna", Vanna, g.Vanna},
			{"charm", Charm, g.Charm},
		}
		for _, s := range singles {
			got, err := s.fn(sigma, S, K, T, r, typ)
			if err != nil {
				t.Fatalf("%s error: %v", s.name, err)
			}
			if math.Abs(got-s.want) > 1e-12 {
				t.Fatalf("%s(%s): %v vs aggregate %v", s.name, typ, got, s.want)
			}
		}
	}
}

func TestDeltaBounds(t *testing.T) {
	for _, K := range []float64{50, 90, 100, 110, 200} {
		for _, sigma := range []float64{0.05, 0.2, 1.0} {
			cd, err := Delta(sigma, 100, K, 0.5, 0.03, Call)
			if err != nil {
				t.Fatalf("call delta error: %v", err)
			}
			if cd < 0 || cd > 1 {
				t.Fatalf("call delta out of [0,1]: %f (K=%v sigma=%v)", cd, K, sigma)
			}
			pd, err := Delta(sigma, 100, K, 0.5, 0.03, Put)
			if err != nil {
				t.Fatalf("put delta error: %v", err)
			}
			if pd < -1 || pd > 0 {
				t.Fatalf("put delta out of [-1,0]: %f (K=%v sigma=%v)", pd, K, sigma)
			}
			// parity difference is linear in S, so its gamma is zero
			cg, _ := Gamma(sigma, 100, K, 0.5, 0.03, Call)
			pg, _ := Gamma(sigma, 100, K, 0.5, 0.03, Put)
			if cg != pg {
				t.Fatalf("gamma differs across types: %v vs %v", cg, pg)
			}
		}
	}
}

func TestGreeksKnownScenario(t *testing.T) {
	// sigma=0.20, S=K=100, T=1, r=0.05: d1=0.35, d2=0.15
	g, err := AllGreeks(0.20, 100, 100, 1, 0.05, Call)
	if err != nil {
		t.Fatalf("AllGreeks error: %v", err)
	}
	want := Greeks{
		Delta: 0.636831,
		Gamma: 0.018762,
		Theta: 6.414028,
		Vega:  37.524035,
		Vanna: -0.281430,
		Charm: 0.065667,
	}
	checks := []struct {
		name      string
		got, want float64
	}{
		{"delta", g.Delta, want.Delta},
		{"gamma", g.Gamma, want.Gamma},
		{"theta", g.Theta, want.Theta},
		{"vega", g.Vega, want.Vega},
		{"vanna", g.Vanna, want.Vanna},
		{"charm", g.Charm, want.Charm},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 1e-3 {
			t.Errorf("%s: got %f, want %f", c.name, c.got, c.want)
		}
	}
}

func TestGreeksDomainError(t *testing.T) {
	if _, err := AllGreeks(0, 100, 100, 1, 0.05, Call); err == nil {
		t.Fatal("expected domain error for zero sigma")
	}
	if _, err := Vanna(0.2, 100, 100, 0, 0.05, Put); err == nil {
		t.Fatal("expected domain error for zero expiry")
	}
}
