package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/finportal/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// ScatterPoint is one plotted sample. Series selects the palette colour and
// Weight selects the marker size.
type ScatterPoint struct {
	X, Y   float64
	Weight float64
	Series int
}

var scatterMarkers = []rune{'·', '•', '●'}

// ScatterPlot plots points on a width x height character grid with the
// origin at the bottom left. Later points overwrite earlier ones that land
// in the same cell.
func ScatterPlot(points []ScatterPoint, width, height int) string {
	if len(points) == 0 {
		return ""
	}
	t := theme.Active

	maxX, maxY := 0.0, 0.0
	minW, maxW := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
		minW = math.Min(minW, p.Weight)
		maxW = math.Max(maxW, p.Weight)
	}
	if maxX == 0 {
		maxX = 1
	}
	if maxY == 0 {
		maxY = 1
	}
	stepY := chartTickStep(maxY)
	ceilY := math.Ceil(maxY/stepY) * stepY
	stepX := chartTickStep(maxX)
	ceilX := math.Ceil(maxX/stepX) * stepX

	yLabelW := len(formatChartLabel(ceilY)) + 1
	if yLabelW < 4 {
		yLabelW = 4
	}
	plotW := width - yLabelW - 1
	if plotW < 10 {
		plotW = 10
	}
	if height < 4 {
		height = 4
	}

	type cell struct {
		marker rune
		series int
	}
	grid := make([][]cell, height)
	for r := range grid {
		grid[r] = make([]cell, plotW)
	}

	for _, p := range points {
		col := int(p.X / ceilX * float64(plotW-1))
		row := height - 1 - int(p.Y/ceilY*float64(height-1))
		col = clampInt(col, 0, plotW-1)
		row = clampInt(row, 0, height-1)

		m := 1
		if maxW > minW {
			m = int((p.Weight - minW) / (maxW - minW) * float64(len(scatterMarkers)-1))
			m = clampInt(m, 0, len(scatterMarkers)-1)
		}
		grid[row][col] = cell{marker: scatterMarkers[m], series: p.Series}
	}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for r, line := range grid {
		label := ""
		switch r {
		case 0:
			label = formatChartLabel(ceilY)
		case height / 2:
			label = formatChartLabel(ceilY / 2)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))

		run := 0
		for _, c := range line {
			if c.marker == 0 {
				run++
				continue
			}
			if run > 0 {
				b.WriteString(space.Render(strings.Repeat(" ", run)))
				run = 0
			}
			style := lipgloss.NewStyle().Foreground(t.SeriesColor(c.series)).Background(t.Surface)
			b.WriteString(style.Render(string(c.marker)))
		}
		if run > 0 {
			b.WriteString(space.Render(strings.Repeat(" ", run)))
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", plotW)))
	b.WriteString("\n")

	mid := formatChartLabel(ceilX / 2)
	right := formatChartLabel(ceilX)
	axis := []byte(strings.Repeat(" ", plotW))
	copy(axis[0:], "0")
	if pos := plotW/2 - len(mid)/2; pos > 2 && pos+len(mid) < plotW-len(right)-1 {
		copy(axis[pos:], mid)
	}
	if pos := plotW - len(right); pos > 1 {
		copy(axis[pos:], right)
	}
	b.WriteString(space.Render(strings.Repeat(" ", yLabelW+1)))
	b.WriteString(axisStyle.Render(string(axis)))

	return b.String()
}

// LegendEntry names one plotted series.
type LegendEntry struct {
	Label  string
	Series int
}

// Legend renders coloured series names on one line, wrapping at width.
func Legend(entries []LegendEntry, width int) string {
	t := theme.Active
	textStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	var lines []string
	var line strings.Builder
	lineW := 0
	for _, e := range entries {
		dot := lipgloss.NewStyle().Foreground(t.SeriesColor(e.Series)).Background(t.Surface).Render("●")
		entry := dot + space.Render(" ") + textStyle.Render(e.Label)
		ew := lipgloss.Width(entry)
		if lineW > 0 && lineW+2+ew > width {
			lines = append(lines, line.String())
			line.Reset()
			lineW = 0
		}
		if lineW > 0 {
			line.WriteString(space.Render("  "))
			lineW += 2
		}
		line.WriteString(entry)
		lineW += ew
	}
	if lineW > 0 {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
