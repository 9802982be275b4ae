package cli

import (
	"testing"
	"time"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{12.5, "$12.50"},
		{100000, "$100,000.00"},
		{1234567.891, "$1,234,567.89"},
		{-40000, "-$40,000.00"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.in); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{950, "$950"},
		{1234, "$1.2K"},
		{1_500_000, "$1.5M"},
		{-2_000_000_000, "-$2.0B"},
	}
	for _, tt := range tests {
		if got := FormatCompact(tt.in); got != tt.want {
			t.Errorf("FormatCompact(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[int64]string{0: "0", 999: "999", 1000: "1,000", 1234567: "1,234,567", -1234: "-1,234"}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatMarginAndAge(t *testing.T) {
	if got := FormatMargin(40); got != "40.00%" {
		t.Errorf("FormatMargin(40) = %q", got)
	}
	if got := FormatMargin(-12.345); got != "-12.35%" && got != "-12.34%" {
		t.Errorf("FormatMargin(-12.345) = %q", got)
	}
	if got := FormatAge(125 * time.Second); got != "2m 5s" {
		t.Errorf("FormatAge(125s) = %q", got)
	}
	if got := FormatAge(0); got != "0s" {
		t.Errorf("FormatAge(0) = %q", got)
	}
	if got := FormatDate(time.Time{}); got != "-" {
		t.Errorf("FormatDate(zero) = %q", got)
	}
}
