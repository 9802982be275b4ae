package components

import (
	"fmt"
	"time"

	"github.com/theirongolddev/finportal/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// CacheBar shows how much of the cache window has elapsed, followed by
// "age / ttl". The bar turns orange in the last fifth of the window and red
// once the data is stale.
func CacheBar(age, ttl time.Duration, width int) string {
	t := theme.Active

	pct := 0.0
	if ttl > 0 {
		pct = float64(age) / float64(ttl)
	}
	color := t.Cyan
	switch {
	case pct >= 1:
		color = t.Red
		pct = 1
	case pct >= 0.8:
		color = t.Orange
	}

	bar := newBar(color, width)
	label := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true).
		Render(fmt.Sprintf(" %s / %s", age.Truncate(time.Second), ttl))
	return bar.ViewAs(pct) + label
}

// ShareBar renders a labelled share-of-total bar in the series colour.
func ShareBar(label string, pct float64, series, labelW, barWidth int) string {
	t := theme.Active

	pct = min(1, max(0, pct))
	color := t.SeriesColor(series)
	bar := newBar(color, barWidth)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncLabel(label, labelW))) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", pct*100))
}

func newBar(color lipgloss.Color, width int) progress.Model {
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.Full = '█'
	bar.Empty = '░'
	bar.EmptyColor = string(theme.Active.TextDim)
	return bar
}
