package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finportal/internal/cli"
	"github.com/theirongolddev/finportal/internal/tui/components"
	"github.com/theirongolddev/finportal/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderUnitsTab(cw int) string {
	if len(a.rows) == 0 {
		return components.EmptyState("Business Units", welcomeText, cw)
	}

	slices := make([]components.Slice, len(a.units))
	for i, u := range a.units {
		slices[i] = components.Slice{
			Label:  u.BusinessUnit,
			Value:  float64(u.Submissions),
			Series: a.unitSeries(u.BusinessUnit),
		}
	}
	radius := 6
	if a.isCompactLayout() {
		radius = 4
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Submissions by Business Unit", components.DonutChart(slices, radius), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Summary Statistics", a.unitSummaryTable(components.CardInnerWidth(cw)), cw))
	return b.String()
}

func (a App) unitSummaryTable(innerW int) string {
	t := theme.Active

	headStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	cellStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	const unitW, countW, moneyW, marginW = 14, 6, 18, 10
	shareW := innerW - unitW - countW - 2*moneyW - marginW - 5
	showShare := shareW >= 16

	var b strings.Builder
	header := fmt.Sprintf("%-*s %*s %*s %*s %*s", unitW, "Business Unit", countW, "Count",
		moneyW, "Total Revenue", moneyW, "Total Expenses", marginW, "Avg Margin")
	if showShare {
		header += " Share"
	}
	b.WriteString(headStyle.Render(header))

	for _, u := range a.units {
		b.WriteString("\n")
		b.WriteString(cellStyle.Render(fmt.Sprintf("%-*s %*d %*s %*s ",
			unitW, truncStr(u.BusinessUnit, unitW),
			countW, u.Submissions,
			moneyW, cli.FormatCurrency(u.TotalRevenue),
			moneyW, cli.FormatCurrency(u.TotalExpenses),
		)))
		ms := lipgloss.NewStyle().Foreground(t.MarginColor(u.AvgMargin)).Background(t.Surface)
		b.WriteString(ms.Render(fmt.Sprintf("%*s", marginW, cli.FormatMargin(u.AvgMargin))))
		if showShare {
			b.WriteString(space.Render(" "))
			b.WriteString(components.ShareBar("", u.SharePercent/100, a.unitSeries(u.BusinessUnit), 0, shareW-8))
		}
	}

	s := a.stats
	b.WriteString("\n")
	b.WriteString(headStyle.Render(fmt.Sprintf("%-*s %*d %*s %*s %*s",
		unitW, "All units",
		countW, s.Submissions,
		moneyW, cli.FormatCurrency(s.TotalRevenue),
		moneyW, cli.FormatCurrency(s.TotalExpenses),
		marginW, cli.FormatMargin(s.AvgMargin),
	)))
	return b.String()
}
