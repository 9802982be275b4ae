// Package components provides reusable TUI widgets for the finportal dashboard.
package components

import (
	"strings"

	"github.com/theirongolddev/finportal/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Metric is one KPI tile.
type Metric struct {
	Label string
	Value string
	Delta string
	Color lipgloss.Color // optional value colour
}

// LayoutRow splits totalWidth into n widths summing to totalWidth. The
// leftmost columns take the remainder.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	widths := make([]int, n)
	for i := range widths {
		widths[i] = totalWidth / n
		if i < totalWidth%n {
			widths[i]++
		}
	}
	return widths
}

// frame is the rounded, surface-filled box every card is drawn in.
func frame(outerWidth int) lipgloss.Style {
	t := theme.Active
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		BorderBackground(t.Background).
		Background(t.Surface).
		Width(max(outerWidth-2, 10)).
		Padding(0, 1)
}

// on returns a style drawing fg over the card surface.
func on(fg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(fg).Background(theme.Active.Surface)
}

// MetricCard renders a KPI tile: label, bold value, optional delta line.
func MetricCard(m Metric, outerWidth int) string {
	t := theme.Active
	valueColor := t.TextPrimary
	if m.Color != "" {
		valueColor = m.Color
	}

	lines := []string{
		on(t.TextMuted).Render(m.Label),
		on(valueColor).Bold(true).Render(m.Value),
	}
	if m.Delta != "" {
		lines = append(lines, on(t.TextDim).Render(m.Delta))
	}
	return frame(outerWidth).Render(strings.Join(lines, "\n"))
}

// MetricCardRow lays out tiles across exactly totalWidth columns.
func MetricCardRow(cards []Metric, totalWidth int) string {
	if len(cards) == 0 {
		return ""
	}
	widths := LayoutRow(totalWidth, len(cards))
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = MetricCard(c, widths[i])
	}
	return CardRow(rendered)
}

// ContentCard renders body in a card of outerWidth columns, headed by title
// when it is non-empty.
func ContentCard(title, body string, outerWidth int) string {
	if title != "" {
		body = on(theme.Active.TextMuted).Bold(true).Render(title) + "\n" + body
	}
	return frame(outerWidth).Render(body)
}

// CardRow joins pre-rendered card strings horizontally. Shorter cards are
// padded with background-filled lines so the row has no unstyled holes.
func CardRow(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	t := theme.Active

	tallest := 0
	for _, c := range cards {
		tallest = max(tallest, lipgloss.Height(c))
	}

	padded := make([]string, len(cards))
	for i, c := range cards {
		h := lipgloss.Height(c)
		if h == tallest {
			padded[i] = c
			continue
		}
		w := lipgloss.Width(c)
		filler := lipgloss.NewStyle().Background(t.Background).Render(strings.Repeat(" ", w))
		padded[i] = c + strings.Repeat("\n"+filler, tallest-h)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, padded...)
}

// CardInnerWidth is the text width inside a ContentCard of outerWidth.
func CardInnerWidth(outerWidth int) int {
	return max(outerWidth-4, 10)
}

// EmptyState renders the centred notice shown when there is nothing to plot.
func EmptyState(title, message string, outerWidth int) string {
	style := on(theme.Active.TextMuted).
		Width(CardInnerWidth(outerWidth)).
		Align(lipgloss.Center).
		Padding(1, 0)
	return ContentCard(title, style.Render(message), outerWidth)
}
