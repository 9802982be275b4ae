package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/finportal/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Slice is one wedge of a donut chart.
type Slice struct {
	Label  string
	Value  float64
	Series int
}

// DonutHole is the inner radius as a fraction of the outer radius.
const DonutHole = 0.4

// DonutChart renders slices as a ring radius rows tall on each side of the
// centre, clockwise from twelve o'clock, with a legend on the right.
// Terminal cells are about twice as tall as wide, so each row spans two
// columns.
func DonutChart(slices []Slice, radius int) string {
	total := 0.0
	for _, s := range slices {
		if s.Value > 0 {
			total += s.Value
		}
	}
	if total == 0 {
		return ""
	}
	if radius < 3 {
		radius = 3
	}
	t := theme.Active

	// Cumulative fraction at the end of each slice.
	ends := make([]float64, len(slices))
	acc := 0.0
	for i, s := range slices {
		if s.Value > 0 {
			acc += s.Value / total
		}
		ends[i] = acc
	}

	rows := 2*radius + 1
	cols := 2 * rows
	outer := float64(radius) + 0.5
	inner := outer * DonutHole
	space := lipgloss.NewStyle().Background(t.Surface)

	var ring strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := (float64(c)+0.5)/2 - outer
			y := float64(r) + 0.5 - outer
			d := math.Hypot(x, y)
			if d > outer || d < inner {
				ring.WriteString(space.Render(" "))
				continue
			}
			angle := math.Atan2(x, -y)
			if angle < 0 {
				angle += 2 * math.Pi
			}
			frac := angle / (2 * math.Pi)
			idx := len(slices) - 1
			for i, e := range ends {
				if frac < e {
					idx = i
					break
				}
			}
			style := lipgloss.NewStyle().Foreground(t.SeriesColor(slices[idx].Series)).Background(t.Surface)
			ring.WriteString(style.Render("█"))
		}
		if r < rows-1 {
			ring.WriteString("\n")
		}
	}

	labelW := 0
	for _, s := range slices {
		if w := lipgloss.Width(s.Label); w > labelW {
			labelW = w
		}
	}
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var legend strings.Builder
	for i, s := range slices {
		dot := lipgloss.NewStyle().Foreground(t.SeriesColor(s.Series)).Background(t.Surface).Render("■")
		legend.WriteString(space.Render("  "))
		legend.WriteString(dot)
		legend.WriteString(space.Render(" "))
		legend.WriteString(textStyle.Render(fmt.Sprintf("%-*s", labelW, s.Label)))
		legend.WriteString(dimStyle.Render(fmt.Sprintf(" %4.0f  %5.1f%%", s.Value, s.Value/total*100)))
		if i < len(slices)-1 {
			legend.WriteString("\n")
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, ring.String(), legend.String())
}
