package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Plain-terminal palette. The dashboard has its own themes; CLI output
// always uses these.
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorText).Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(ColorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorTextMuted)
	moneyStyle  = lipgloss.NewStyle().Foreground(ColorGreen)
	warnStyle   = lipgloss.NewStyle().Foreground(ColorOrange)
	ruleStyle   = lipgloss.NewStyle().Foreground(ColorTextDim)
)

// Align selects how a table column is padded.
type Align int

const (
	AlignAuto Align = iota // left for the first column, right otherwise
	AlignLeft
	AlignRight
)

// SeparatorRow is a table row that renders as a horizontal rule.
const SeparatorRow = "---"

// Table is a bordered text table. Cells may carry ANSI styling; widths are
// measured on the visible text.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Align   []Align // per column, AlignAuto when missing
	Widths  []int   // optional fixed widths
}

func (t Table) columns() int {
	n := len(t.Headers)
	for _, row := range t.Rows {
		if isSeparator(row) {
			continue
		}
		n = max(n, len(row))
	}
	return n
}

func (t Table) widths(n int) []int {
	w := make([]int, n)
	if t.Widths != nil {
		copy(w, t.Widths)
		return w
	}
	for i, h := range t.Headers {
		w[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		if isSeparator(row) {
			continue
		}
		for i, cell := range row {
			w[i] = max(w[i], lipgloss.Width(cell))
		}
	}
	return w
}

func (t Table) alignOf(col int) Align {
	if col < len(t.Align) && t.Align[col] != AlignAuto {
		return t.Align[col]
	}
	if col == 0 {
		return AlignLeft
	}
	return AlignRight
}

func isSeparator(row []string) bool {
	return len(row) == 1 && row[0] == SeparatorRow
}

// pad fits s into width visible cells.
func pad(s string, width int, a Align) string {
	gap := max(0, width-lipgloss.Width(s))
	if a == AlignRight {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// rule draws one horizontal border line using the given corner and
// junction glyphs.
func rule(widths []int, left, mid, right string) string {
	segs := make([]string, len(widths))
	for i, w := range widths {
		segs[i] = strings.Repeat("─", w+2)
	}
	return ruleStyle.Render(left+strings.Join(segs, mid)+right) + "\n"
}

// RenderTitle renders a centered title in a rounded box.
func RenderTitle(title string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)
	return box.Render(titleStyle.Render(title))
}

// RenderTable renders t with rounded borders. A row holding only
// SeparatorRow becomes a rule.
func RenderTable(t Table) string {
	n := t.columns()
	if n == 0 {
		return ""
	}
	widths := t.widths(n)
	bar := ruleStyle.Render("│")

	line := func(cells []string, style lipgloss.Style, header bool) string {
		var b strings.Builder
		b.WriteString(bar)
		for i := 0; i < n; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			a := t.alignOf(i)
			if header {
				a = AlignLeft
			}
			b.WriteString(style.Render(" " + pad(cell, widths[i], a) + " "))
			b.WriteString(bar)
		}
		b.WriteString("\n")
		return b.String()
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}
	b.WriteString(rule(widths, "╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(line(t.Headers, headerStyle, true))
		b.WriteString(rule(widths, "├", "┼", "┤"))
	}
	for _, row := range t.Rows {
		if isSeparator(row) {
			b.WriteString(rule(widths, "├", "┼", "┤"))
			continue
		}
		b.WriteString(line(row, valueStyle, false))
	}
	b.WriteString(rule(widths, "╰", "┴", "╯"))
	return b.String()
}

// RenderKV renders aligned "label  value" lines.
func RenderKV(pairs [][2]string) string {
	w := 0
	for _, p := range pairs {
		w = max(w, len(p[0]))
	}
	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "  %s  %s\n", mutedStyle.Render(fmt.Sprintf("%-*s", w, p[0])), moneyStyle.Render(p[1]))
	}
	return b.String()
}

// RenderViolations lists rejected form fields in the given order.
func RenderViolations(fields []string, messages map[string]string) string {
	var b strings.Builder
	b.WriteString(warnStyle.Render("  Submission rejected:") + "\n")
	for _, f := range fields {
		b.WriteString(ruleStyle.Render("    - ") + valueStyle.Render(messages[f]) + "\n")
	}
	return b.String()
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// RenderSparkline maps values onto block glyphs between the series min and
// max, so negative values are drawn too.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	top := len(sparkBlocks) - 1
	out := make([]rune, len(values))
	for i, v := range values {
		idx := int((v - lo) / span * float64(top))
		out[i] = sparkBlocks[min(max(idx, 0), top)]
	}
	return string(out)
}

// RenderHorizontalBar renders |value| scaled against maxValue in at most
// maxWidth cells. Negative values draw in the warning colour.
func RenderHorizontalBar(value, maxValue float64, maxWidth int) string {
	if maxValue <= 0 || maxWidth <= 0 {
		return ""
	}
	n := min(int(math.Abs(value)/maxValue*float64(maxWidth)), maxWidth)
	bar := strings.Repeat("█", n)
	if value < 0 {
		return warnStyle.Render(bar)
	}
	return moneyStyle.Render(bar)
}
