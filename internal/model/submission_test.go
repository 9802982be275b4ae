package model

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestProfitMargin(t *testing.T) {
	tests := []struct {
		name     string
		revenue  string
		expenses string
		want     string
	}{
		{"example", "100000", "60000", "40"},
		{"default form values", "100000", "75000", "25"},
		{"loss", "1000", "1500", "-50"},
		{"rounds to cents", "3", "2", "33.33"},
		{"no expenses", "500", "0", "100"},
		{"zero revenue", "0", "1000", "0"},
		{"zero everything", "0", "0", "0"},
		{"clamped", "1", "100", "-999.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProfitMargin(decimal.RequireFromString(tt.revenue), decimal.RequireFromString(tt.expenses))
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("ProfitMargin(%s, %s) = %s, want %s", tt.revenue, tt.expenses, got, tt.want)
			}
		})
	}
}

func TestProfitMarginMatchesFormula(t *testing.T) {
	for r := 1.0; r <= 200_000; r *= 3.7 {
		for _, frac := range []float64{0, 0.1, 0.5, 0.99, 1, 1.7} {
			e := math.Round(r*frac*100) / 100
			rev := decimal.NewFromFloat(r).Round(2)
			exp := decimal.NewFromFloat(e)

			got, _ := ProfitMargin(rev, exp).Float64()
			rf, _ := rev.Float64()
			want := (rf - e) / rf * 100
			if want < -999.99 {
				want = -999.99
			}
			if math.Abs(got-want) > 0.005+1e-9 {
				t.Fatalf("margin(%v, %v) = %v, want %v", rf, e, got, want)
			}
		}
	}
}

func TestMarginConsistent(t *testing.T) {
	s := Submission{
		Revenue:      decimal.NewFromInt(100000),
		Expenses:     decimal.NewFromInt(60000),
		ProfitMargin: decimal.NewFromInt(40),
	}
	if !s.MarginConsistent() {
		t.Fatal("expected stored margin 40 to be consistent")
	}
	s.ProfitMargin = decimal.NewFromInt(41)
	if s.MarginConsistent() {
		t.Fatal("expected margin 41 to be reported inconsistent")
	}
	if !s.Profit().Equal(decimal.NewFromInt(40000)) {
		t.Fatalf("Profit = %s, want 40000", s.Profit())
	}
}
