package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finportal/internal/cli"
	"github.com/theirongolddev/finportal/internal/tui/components"
	"github.com/theirongolddev/finportal/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const welcomeText = "No submissions yet. Press [n] to open the form and submit the first record."

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	stats := a.stats
	var b strings.Builder

	units := "no business units"
	if stats.BusinessUnits > 0 {
		units = fmt.Sprintf("%d business units", stats.BusinessUnits)
	}
	profitDelta := "profit " + cli.FormatCompact(stats.TotalProfit)
	cards := []components.Metric{
		{Label: "Total Revenue", Value: cli.FormatCurrency(stats.TotalRevenue), Delta: profitDelta, Color: t.GreenBright},
		{Label: "Total Expenses", Value: cli.FormatCurrency(stats.TotalExpenses), Delta: units},
		{
			Label: "Avg Profit Margin",
			Value: cli.FormatMargin(stats.AvgMargin),
			Delta: "overall " + cli.FormatMargin(stats.OverallMargin),
			Color: t.MarginColor(stats.AvgMargin),
		},
		{Label: "Total Submissions", Value: cli.FormatNumber(int64(stats.Submissions)), Delta: a.dateRange()},
	}
	if a.isCompactLayout() {
		b.WriteString(components.MetricCardRow(cards[:2], cw))
		b.WriteString("\n")
		b.WriteString(components.MetricCardRow(cards[2:], cw))
	} else {
		b.WriteString(components.MetricCardRow(cards, cw))
	}
	b.WriteString("\n")

	if len(a.rows) == 0 {
		msg := welcomeText
		if a.loadErr != nil {
			msg = describeError(a.loadErr)
		}
		b.WriteString(components.EmptyState("Welcome", msg, cw))
		return b.String()
	}

	b.WriteString(components.ContentCard(
		fmt.Sprintf("Recent Submissions (%d of %d)", len(a.recent), len(a.rows)),
		a.recentTable(components.CardInnerWidth(cw)),
		cw,
	))
	b.WriteString("\n")

	// Cache window: how much of the TTL the on-screen data has used.
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	barW := max(10, components.CardInnerWidth(cw)-34)
	cacheBody := mutedStyle.Render(fmt.Sprintf("%-9s", a.loader.State().String())+" ") +
		components.CacheBar(a.loader.Age(), a.loader.TTL(), barW)
	b.WriteString(components.ContentCard("Cache Window", cacheBody, cw))

	return b.String()
}

func (a App) dateRange() string {
	s := a.stats
	if s.FirstSubmission.IsZero() {
		return ""
	}
	first := s.FirstSubmission.Local().Format("Jan 2")
	last := s.LastSubmission.Local().Format("Jan 2")
	if first == last {
		return first
	}
	return first + " – " + last
}

// recentTable renders the newest submissions as aligned columns.
func (a App) recentTable(innerW int) string {
	t := theme.Active

	headStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	cellStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	// id, unit, date, revenue, expenses, margin; submitter takes the rest
	fixed := []int{12, 12, 16, 16, 16, 9}
	used := len(fixed) // separators
	for _, w := range fixed {
		used += w
	}
	byW := innerW - used
	showBy := byW >= 8
	showID := true
	if innerW < used {
		showID = false
	}

	row := func(style lipgloss.Style, id, unit, date, rev, exp, margin, by string, marginStyle lipgloss.Style) string {
		var parts []string
		if showID {
			parts = append(parts, dimStyle.Render(fmt.Sprintf("%-12s", truncStr(id, 12))))
		}
		parts = append(parts,
			style.Render(fmt.Sprintf("%-12s", truncStr(unit, 12))),
			style.Render(fmt.Sprintf("%-16s", date)),
			style.Render(fmt.Sprintf("%16s", rev)),
			style.Render(fmt.Sprintf("%16s", exp)),
			marginStyle.Render(fmt.Sprintf("%9s", margin)),
		)
		if showBy {
			parts = append(parts, style.Render(truncStr(by, byW)))
		}
		return strings.Join(parts, dimStyle.Render(" "))
	}

	var b strings.Builder
	b.WriteString(row(headStyle, "ID", "Unit", "Date", "Revenue", "Expenses", "Margin", "Submitted By", headStyle))
	for _, s := range a.recent {
		margin := s.ProfitMargin.InexactFloat64()
		ms := lipgloss.NewStyle().Foreground(t.MarginColor(margin)).Background(t.Surface)
		b.WriteString("\n")
		b.WriteString(row(cellStyle,
			s.SubmissionID,
			s.BusinessUnit,
			cli.FormatDate(s.SubmissionDate),
			cli.FormatDecimal(s.Revenue),
			cli.FormatDecimal(s.Expenses),
			cli.FormatMargin(margin),
			s.SubmittedBy,
			ms,
		))
	}
	return b.String()
}
