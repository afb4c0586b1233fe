package data

import (
	"math"
	"testing"
	"time"

	"github.com/contactkeval/option-pricer/internal/pricing"
)

func fixedClock() time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
}

func TestSyntheticQuoteMatchesKernel(t *testing.T) {
	prov := NewSyntheticProvider()
	prov.now = fixedClock

	expiry := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	q, err := prov.GetOptionQuote("SPY", 100, expiry, "call")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	T := 365.0 / 365.0
	want, err := pricing.Price(prov.Vol, prov.Spot, 100, T, prov.Rate, pricing.Call)
	if err != nil {
		t.Fatalf("price error: %v", err)
	}
	if math.Abs(q.Mid()-want) > 1e-9 {
		t.Fatalf("mid %v differs from kernel price %v", q.Mid(), want)
	}
	if !q.Bid.LessThan(q.Ask) {
		t.Fatalf("bid %s not below ask %s", q.Bid, q.Ask)
	}
}

func TestSyntheticQuoteExpiredContract(t *testing.T) {
	prov := NewSyntheticProvider()
	prov.now = fixedClock

	expired := time.Date(2024, 1, 19, 0, 0, 0, 0, time.UTC)
	if _, err := prov.GetOptionQuote("SPY", 100, expired, "put"); err == nil {
		t.Fatal("expected error for expired contract")
	}
}

func TestSyntheticSpot(t *testing.T) {
	prov := NewSyntheticProvider()
	spot, err := prov.GetSpot("SPY")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spot != prov.Spot {
		t.Fatalf("got %v, want %v", spot, prov.Spot)
	}
}

func TestOptionSymbolFromParts(t *testing.T) {
	expiry := time.Date(2022, 1, 21, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		underlying string
		optType    string
		strike     float64
		want       string
	}{
		{"aapl", "call", 150, "O:AAPL220121C00150000"},
		{"SPY", "put", 447.5, "O:SPY220121P00447500"},
		{"spy", "p", 447.5, "O:SPY220121P00447500"},
	}
	for _, c := range cases {
		got := OptionSymbolFromParts(c.underlying, expiry, c.optType, c.strike)
		if got != c.want {
			t.Fatalf("got %s, want %s", got, c.want)
		}
	}
}
