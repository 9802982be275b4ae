package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finportal/internal/cli"
	"github.com/theirongolddev/finportal/internal/pipeline"
	"github.com/theirongolddev/finportal/internal/tui/components"
)

func (a App) renderRevenueTab(cw int) string {
	if len(a.rows) == 0 {
		return components.EmptyState("Revenue", welcomeText, cw)
	}
	var b strings.Builder

	// Total revenue by business unit.
	bars := make([]components.Bar, len(a.units))
	for i, u := range a.units {
		bars[i] = components.Bar{Label: u.BusinessUnit, Value: u.TotalRevenue, Series: a.unitSeries(u.BusinessUnit)}
	}
	chartH := 10
	if a.isCompactLayout() {
		chartH = 7
	}
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Total Revenue by Business Unit (%s)", cli.FormatCompact(a.stats.TotalRevenue)),
		components.BarChart(bars, components.CardInnerWidth(cw), chartH),
		cw,
	))
	b.WriteString("\n")

	// Expenses against revenue, one marker per submission.
	pts := pipeline.ScatterPoints(a.rows)
	scatter := make([]components.ScatterPoint, len(pts))
	for i, p := range pts {
		scatter[i] = components.ScatterPoint{X: p.X, Y: p.Y, Weight: p.Weight, Series: a.unitSeries(p.Group)}
	}
	innerW := components.CardInnerWidth(cw)
	body := components.ScatterPlot(scatter, innerW, chartH) + "\n" +
		components.Legend(a.legendUnits(), innerW)
	b.WriteString(components.ContentCard("Revenue vs Expenses (x: expenses, y: revenue, size: margin)", body, cw))

	return b.String()
}

// legendUnits lists the units present in the data, in configured order.
func (a App) legendUnits() []components.LegendEntry {
	present := make(map[string]bool, len(a.units))
	for _, u := range a.units {
		present[u.BusinessUnit] = true
	}
	var out []components.LegendEntry
	for _, u := range a.submitter.Spec.Units() {
		if present[u] {
			out = append(out, components.LegendEntry{Label: u, Series: a.unitSeries(u)})
			delete(present, u)
		}
	}
	for _, u := range a.units {
		if present[u.BusinessUnit] {
			out = append(out, components.LegendEntry{Label: u.BusinessUnit, Series: a.unitSeries(u.BusinessUnit)})
		}
	}
	return out
}
