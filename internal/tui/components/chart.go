package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/finportal/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Bar is one category of a BarChart.
type Bar struct {
	Label  string
	Value  float64
	Series int // palette index, see theme.SeriesColor
}

// BarChart renders one vertical bar per category on a shared y axis with
// "nice" tick labels. Negative values are drawn as empty bars. Labels are
// centred under their bar and cut to the bar width.
func BarChart(bars []Bar, width, height int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active

	maxVal := 0.0
	for _, b := range bars {
		maxVal = math.Max(maxVal, b.Value)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	if width < 20 || height < 4 {
		labels := make([]string, len(bars))
		values := make([]float64, len(bars))
		for i, b := range bars {
			labels[i], values[i] = b.Label, b.Value
		}
		return HBarChart(labels, values, formatChartLabel, func(float64) lipgloss.Color { return t.Blue }, width)
	}

	// Y axis: widen the step until the ticks fit in the height.
	tickStep := chartTickStep(maxVal)
	maxTicks := max(2, height/2)
	for int(math.Ceil(maxVal/tickStep)) > maxTicks {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	ticks := max(1, int(math.Round(ceiling/tickStep)))
	rowsPerTick := max(2, height/ticks)
	plotH := rowsPerTick * ticks

	yLabelW := max(4, len(formatChartLabel(ceiling))+1)
	tickAt := make(map[int]string, ticks)
	for i := 1; i <= ticks; i++ {
		tickAt[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	n := len(bars)
	plotW := max(n*3+n-1, width-yLabelW-1)
	barW := min(12, max(3, (plotW-(n-1))/n))
	gap := 1
	if n > 1 {
		gap = max(1, min(4, (plotW-n*barW)/(n-1)))
	}
	axisLen := n*barW + (n-1)*gap

	eighths := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var sb strings.Builder
	for row := plotH; row >= 1; row-- {
		top := ceiling * float64(row) / float64(plotH)
		bottom := ceiling * float64(row-1) / float64(plotH)

		sb.WriteString(axisStyle.Render(fmt.Sprintf("%*s│", yLabelW, tickAt[row])))
		for i, b := range bars {
			if i > 0 {
				sb.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			style := lipgloss.NewStyle().Foreground(t.SeriesColor(b.Series)).Background(t.Surface)
			switch {
			case b.Value >= top:
				sb.WriteString(style.Render(strings.Repeat("█", barW)))
			case b.Value > bottom:
				idx := min(8, max(1, int((b.Value-bottom)/(top-bottom)*8)))
				sb.WriteString(style.Render(strings.Repeat(string(eighths[idx]), barW)))
			default:
				sb.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(axisStyle.Render(fmt.Sprintf("%*s└", yLabelW, "0")))
	sb.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))
	sb.WriteString("\n")

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	sb.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
	for i, b := range bars {
		if i > 0 {
			sb.WriteString(blank.Render(strings.Repeat(" ", gap)))
		}
		sb.WriteString(labelStyle.Render(centerLabel(b.Label, barW)))
	}
	return sb.String()
}

// centerLabel fits s into exactly w columns.
func centerLabel(s string, w int) string {
	s = truncLabel(s, w)
	pad := w - lipgloss.Width(s)
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	if v < 0 {
		return "-" + formatChartLabel(-v)
	}
	switch {
	case v >= 1e9:
		if v == math.Trunc(v/1e9)*1e9 {
			return fmt.Sprintf("%.0fB", v/1e9)
		}
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1 || v == 0:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// HBarChart renders one labelled horizontal bar per value. Negative values
// extend left of a shared zero axis. colorFn picks each bar's colour and
// format renders the trailing value.
func HBarChart(labels []string, values []float64, format func(float64) string, colorFn func(float64) lipgloss.Color, width int) string {
	if len(values) == 0 || len(labels) != len(values) {
		return ""
	}
	t := theme.Active

	labelW := 0
	for _, l := range labels {
		if w := lipgloss.Width(l); w > labelW {
			labelW = w
		}
	}
	if labelW > width/3 {
		labelW = width / 3
	}
	valW := 0
	maxNeg, maxPos := 0.0, 0.0
	for _, v := range values {
		if w := len(format(v)); w > valW {
			valW = w
		}
		if v < 0 && -v > maxNeg {
			maxNeg = -v
		}
		if v > maxPos {
			maxPos = v
		}
	}

	barArea := width - labelW - valW - 3 // spaces + axis
	if barArea < 4 {
		barArea = 4
	}
	span := maxNeg + maxPos
	if span == 0 {
		span = 1
	}
	negW := int(math.Round(maxNeg / span * float64(barArea)))
	posW := barArea - negW

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	valStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for i, v := range values {
		barStyle := lipgloss.NewStyle().Foreground(colorFn(v)).Background(t.Surface)

		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncLabel(labels[i], labelW))))
		b.WriteString(space.Render(" "))

		if negW > 0 {
			n := 0
			if v < 0 {
				n = int(math.Round(-v / span * float64(barArea)))
				if n > negW {
					n = negW
				}
			}
			b.WriteString(space.Render(strings.Repeat(" ", negW-n)))
			b.WriteString(barStyle.Render(strings.Repeat("█", n)))
		}
		b.WriteString(axisStyle.Render("│"))

		n := 0
		if v > 0 {
			n = int(math.Round(v / span * float64(barArea)))
			if n > posW {
				n = posW
			}
		}
		b.WriteString(barStyle.Render(strings.Repeat("█", n)))
		b.WriteString(space.Render(strings.Repeat(" ", posW-n+1)))
		b.WriteString(valStyle.Render(fmt.Sprintf("%*s", valW, format(v))))
		if i < len(values)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func truncLabel(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}
