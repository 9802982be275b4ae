package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/finportal/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Box is one row of a box plot.
type Box struct {
	Label                    string
	Min, Q1, Median, Q3, Max float64
	N                        int
	Series                   int
}

// BoxPlot renders horizontal box-and-whisker rows on a shared scale:
// ├── whiskers, ▒ box from Q1 to Q3, ┃ median. A dotted column marks zero
// when it falls inside the range.
func BoxPlot(boxes []Box, width int, format func(float64) string) string {
	if len(boxes) == 0 {
		return ""
	}
	t := theme.Active

	lo, hi := math.Inf(1), math.Inf(-1)
	labelW := 0
	for _, bx := range boxes {
		lo = math.Min(lo, bx.Min)
		hi = math.Max(hi, bx.Max)
		if w := lipgloss.Width(bx.Label); w > labelW {
			labelW = w
		}
	}
	if labelW > width/3 {
		labelW = width / 3
	}
	if hi == lo {
		lo, hi = lo-1, hi+1
	}

	trackW := width - labelW - 1
	if trackW < 10 {
		trackW = 10
	}
	pos := func(v float64) int {
		return clampInt(int(math.Round((v-lo)/(hi-lo)*float64(trackW-1))), 0, trackW-1)
	}
	zero := -1
	if lo < 0 && hi > 0 {
		zero = pos(0)
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	for _, bx := range boxes {
		track := make([]rune, trackW)
		for i := range track {
			track[i] = ' '
		}
		if zero >= 0 {
			track[zero] = '┆'
		}
		pMin, pQ1, pMed, pQ3, pMax := pos(bx.Min), pos(bx.Q1), pos(bx.Median), pos(bx.Q3), pos(bx.Max)
		for i := pMin; i <= pMax; i++ {
			track[i] = '─'
		}
		for i := pQ1; i <= pQ3; i++ {
			track[i] = '▒'
		}
		track[pMin] = '├'
		track[pMax] = '┤'
		track[pMed] = '┃'

		boxStyle := lipgloss.NewStyle().Foreground(t.SeriesColor(bx.Series)).Background(t.Surface)
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncLabel(bx.Label, labelW))))
		b.WriteString(axisStyle.Render(" "))
		b.WriteString(boxStyle.Render(string(track)))
		b.WriteString("\n")
	}

	loL, hiL := format(lo), format(hi)
	axis := []byte(strings.Repeat(" ", trackW))
	copy(axis, loL)
	if p := trackW - len(hiL); p > len(loL) {
		copy(axis[p:], hiL)
	}
	if zero >= 0 && zero > len(loL)+1 && zero < trackW-len(hiL)-2 {
		axis[zero] = '0'
	}
	b.WriteString(axisStyle.Render(strings.Repeat(" ", labelW+1)))
	b.WriteString(axisStyle.Render(string(axis)))
	return b.String()
}
