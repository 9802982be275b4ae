package components

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/finportal/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Status is what the bottom bar reports about the dashboard data.
type Status struct {
	DataAge     string // "" when nothing is loaded
	TTL         string
	Driver      string
	State       string
	Refreshing  bool
	AutoRefresh bool
	Notice      string
	NoticeIsErr bool
}

// RenderStatusBar renders the bottom status bar.
func RenderStatusBar(width int, s Status) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	noticeStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	if s.NoticeIsErr {
		noticeStyle = noticeStyle.Foreground(t.Red)
	}

	left := base.Render(" ") + keyStyle.Render("[?]") + base.Render("help  ") +
		keyStyle.Render("[r]") + base.Render("efresh  ") +
		keyStyle.Render("[q]") + base.Render("uit")
	if s.Notice != "" {
		left += base.Render("  ") + noticeStyle.Render(s.Notice)
	}

	var right []string
	switch {
	case s.Refreshing:
		right = append(right, "refreshing…")
	case s.DataAge != "":
		right = append(right, fmt.Sprintf("data %s old", s.DataAge))
	case s.State != "":
		right = append(right, s.State)
	}
	if s.TTL != "" {
		ttl := "ttl " + s.TTL
		if s.AutoRefresh {
			ttl += " auto"
		}
		right = append(right, ttl)
	}
	if s.Driver != "" {
		right = append(right, s.Driver)
	}
	rightStr := base.Render(strings.Join(right, " · ") + " ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(rightStr)
	if padding < 0 {
		padding = 0
	}

	return left + base.Render(strings.Repeat(" ", padding)) + rightStr
}
