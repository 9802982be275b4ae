package components

import (
	"strings"

	"github.com/theirongolddev/finportal/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Revenue", Key: 'v', KeyPos: 2},
	{Name: "Margins", Key: 'm', KeyPos: 0},
	{Name: "Units", Key: 'u', KeyPos: 0},
	{Name: "Submit", Key: 'n', KeyPos: -1}, // n is not in "Submit"
	{Name: "Settings", Key: 'x', KeyPos: -1},
}

// TabVisualWidth returns the rendered column width of a tab, including its
// one-column padding on each side.
func TabVisualWidth(tab Tab, active bool) int {
	w := lipgloss.Width(tab.Name) + 2
	if !active && !tab.hasInlineKey() {
		w += 3
	}
	return w
}

// hasInlineKey reports whether the shortcut letter appears in the name.
func (tab Tab) hasInlineKey() bool {
	return tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name)
}

// label renders an inactive tab with its shortcut highlighted, inline when
// the letter is part of the name and as a "[k]" suffix otherwise.
func (tab Tab) label() string {
	t := theme.Active
	text := on(t.TextMuted)
	key := on(t.Accent).Bold(true)
	if tab.hasInlineKey() {
		return text.Render(tab.Name[:tab.KeyPos]) +
			key.Render(tab.Name[tab.KeyPos:tab.KeyPos+1]) +
			text.Render(tab.Name[tab.KeyPos+1:])
	}
	return text.Render(tab.Name+"[") + key.Render(string(tab.Key)) + text.Render("]")
}

// RenderTabBar renders the tab strip with activeIdx highlighted.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active
	active := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, 1)
	space := on(t.Surface).Render(" ")

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		if i == activeIdx {
			parts[i] = active.Render(tab.Name)
		} else {
			parts[i] = space + tab.label() + space
		}
	}
	bar := strings.Join(parts, on(t.Border).Render("│"))
	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(bar)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
