// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatCompact formats an amount with human-readable suffixes.
// e.g., 1234 -> "$1.2K", 1234567 -> "$1.2M", 1234567890 -> "$1.2B"
func FormatCompact(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	switch {
	case v >= 1_000_000_000:
		return fmt.Sprintf("%s$%.1fB", sign, v/1_000_000_000)
	case v >= 1_000_000:
		return fmt.Sprintf("%s$%.1fM", sign, v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%s$%.1fK", sign, v/1_000)
	default:
		return fmt.Sprintf("%s$%.0f", sign, v)
	}
}

// FormatCurrency formats a USD amount with separators and cents.
// e.g., 1234567.5 -> "$1,234,567.50"
func FormatCurrency(v float64) string {
	cents := int64(math.Round(math.Abs(v) * 100))
	s := fmt.Sprintf("$%s.%02d", FormatNumber(cents/100), cents%100)
	if v < 0 && cents != 0 {
		return "-" + s
	}
	return s
}

// FormatDecimal formats a stored DECIMAL currency value.
func FormatDecimal(d decimal.Decimal) string {
	return FormatCurrency(d.InexactFloat64())
}

// FormatMargin formats a margin already expressed in percent.
// e.g., 40 -> "40.00%"
func FormatMargin(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatAge formats how long ago something happened.
// e.g., 3725s -> "1h 2m", 125s -> "2m 5s", 45s -> "45s"
func FormatAge(d time.Duration) string {
	secs := int64(d.Round(time.Second) / time.Second)
	if secs <= 0 {
		return "0s"
	}

	hours := secs / 3600
	mins := (secs % 3600) / 60
	rem := secs % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	if mins > 0 {
		return fmt.Sprintf("%dm %ds", mins, rem)
	}
	return fmt.Sprintf("%ds", secs)
}

// FormatDate formats a submission timestamp in local time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
