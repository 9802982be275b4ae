package tui

import (
	"strings"

	"github.com/theirongolddev/finportal/internal/cli"
	"github.com/theirongolddev/finportal/internal/tui/components"
	"github.com/theirongolddev/finportal/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderMarginsTab(cw int) string {
	t := theme.Active
	if len(a.rows) == 0 {
		return components.EmptyState("Margins", welcomeText, cw)
	}

	labels := make([]string, len(a.units))
	avg := make([]float64, len(a.units))
	boxes := make([]components.Box, len(a.units))
	for i, u := range a.units {
		labels[i] = u.BusinessUnit
		avg[i] = u.AvgMargin
		boxes[i] = components.Box{
			Label:  u.BusinessUnit,
			Min:    u.Margins.Min,
			Q1:     u.Margins.Q1,
			Median: u.Margins.Median,
			Q3:     u.Margins.Q3,
			Max:    u.Margins.Max,
			N:      u.Margins.N,
			Series: a.unitSeries(u.BusinessUnit),
		}
	}

	var left, right string
	halves := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		halves = []int{cw, cw}
	}

	left = components.ContentCard(
		"Average Profit Margin by Business Unit",
		components.HBarChart(labels, avg, cli.FormatMargin,
			func(v float64) lipgloss.Color { return t.MarginColor(v) },
			components.CardInnerWidth(halves[0])),
		halves[0],
	)
	right = components.ContentCard(
		"Profit Margin Distribution",
		components.BoxPlot(boxes, components.CardInnerWidth(halves[1]), func(v float64) string {
			return cli.FormatMargin(v)
		}),
		halves[1],
	)

	var b strings.Builder
	if a.isCompactLayout() {
		b.WriteString(left)
		b.WriteString("\n")
		b.WriteString(right)
	} else {
		b.WriteString(components.CardRow([]string{left, right}))
	}
	return b.String()
}
