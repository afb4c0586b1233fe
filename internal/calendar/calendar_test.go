package calendar

import (
	"math"
	"testing"
	"time"
)

func TestYearsToExpiryAt(t *testing.T) {
	now := time.Date(2025, 1, 21, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		datestring string
		layout     string
		want       float64
	}{
		{"one year out", "1/21/2026", "", 1.0},
		{"half year out", "7/22/2025", "", 182.0 / 365},
		{"iso layout", "2025-04-21", "2006-01-02", 90.0 / 365},
		// Jan 21 2024 to Jan 21 2025 spans leap day Feb 29 2024: 366 real
		// days under the fixed 365-day year convention.
		{"already expired", "1/21/2024", "", -366.0 / 365},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := YearsToExpiryAt(c.datestring, c.layout, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestYearsToExpiryBadInput(t *testing.T) {
	if _, err := YearsToExpiry("not-a-date", ""); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := YearsToExpiry("1/21/2026", "2006-01-02"); err == nil {
		t.Fatal("expected layout mismatch error")
	}
}

func TestParseExpiryDefaultLayout(t *testing.T) {
	got, err := ParseExpiry("1/21/2022", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2022, 1, 21, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
