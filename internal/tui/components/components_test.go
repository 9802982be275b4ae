package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/finportal/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, tc := range []struct{ total, n int }{{100, 3}, {81, 4}, {7, 7}} {
		sum := 0
		for _, w := range LayoutRow(tc.total, tc.n) {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	if shortLines >= tallLines {
		t.Fatal("test setup error: short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")
	if len(lines) != tallLines {
		t.Errorf("joined height = %d, want %d", len(lines), tallLines)
	}
	for i, line := range lines {
		if i >= shortLines && !strings.Contains(line, "\x1b[") {
			t.Errorf("line %d has no ANSI codes, padding would be unstyled", i)
		}
		if w := lipgloss.Width(line); w != 44 {
			t.Errorf("line %d width = %d, want 44", i, w)
		}
	}
}

func TestTabVisualWidthMatchesRender(t *testing.T) {
	for active := range Tabs {
		bar := RenderTabBar(active, 200)
		want := 0
		for i, tab := range Tabs {
			want += TabVisualWidth(tab, i == active)
		}
		want += len(Tabs) - 1 // separators

		// The bar is padded to the full width; compare the trimmed text.
		got := lipgloss.Width(strings.TrimRight(stripANSI(bar), " "))
		if got > want || got < want-1 {
			t.Errorf("active=%d: rendered width %d, want %d", active, got, want)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('n'); got != 4 {
		t.Errorf("TabIdxByKey('n') = %d, want 4", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestBarChartOneBarPerUnit(t *testing.T) {
	out := BarChart([]Bar{
		{Label: "Sales", Value: 100000, Series: 0},
		{Label: "HR", Value: 50000, Series: 1},
	}, 40, 6)
	lines := strings.Split(out, "\n")
	if len(lines) != 8 { // 6 plot rows + axis + labels
		t.Fatalf("got %d lines, want 8:\n%s", len(lines), stripANSI(out))
	}
	plain := stripANSI(out)
	if !strings.Contains(stripANSI(lines[7]), "Sales") {
		t.Errorf("missing Sales label:\n%s", plain)
	}
	if !strings.Contains(stripANSI(lines[7]), "HR") {
		t.Errorf("missing HR label:\n%s", plain)
	}
	if !strings.Contains(plain, "120k") {
		t.Errorf("expected a 120k ceiling tick:\n%s", plain)
	}
	if BarChart(nil, 40, 6) != "" {
		t.Error("empty chart should render nothing")
	}
}

func TestHBarChartSigned(t *testing.T) {
	out := HBarChart(
		[]string{"Sales", "HR"},
		[]float64{40, -25},
		func(v float64) string { return formatChartLabel(v) + "%" },
		func(float64) lipgloss.Color { return theme.Active.Green },
		60,
	)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	plain := stripANSI(out)
	if !strings.Contains(plain, "Sales") || !strings.Contains(plain, "-25%") {
		t.Errorf("missing labels:\n%s", plain)
	}
	// The negative bar sits left of the axis, the positive one right of it.
	hr := stripANSI(lines[1])
	if strings.Index(hr, "█") > strings.Index(hr, "│") {
		t.Errorf("negative bar drawn right of axis: %q", hr)
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w > 60 {
			t.Errorf("line %d width %d exceeds 60", i, w)
		}
	}
}

func TestScatterPlotDimensions(t *testing.T) {
	out := ScatterPlot([]ScatterPoint{
		{X: 60000, Y: 100000, Weight: 40, Series: 0},
		{X: 50000, Y: 50000, Weight: 0, Series: 1},
	}, 50, 8)
	lines := strings.Split(out, "\n")
	if len(lines) != 10 { // 8 plot rows + axis + labels
		t.Fatalf("got %d lines, want 10", len(lines))
	}
	plain := stripANSI(out)
	if strings.Count(plain, "●")+strings.Count(plain, "·")+strings.Count(plain, "•") != 2 {
		t.Errorf("expected two markers:\n%s", plain)
	}
	if ScatterPlot(nil, 50, 8) != "" {
		t.Error("empty scatter should render nothing")
	}
}

func TestBoxPlotMarksMedian(t *testing.T) {
	out := BoxPlot([]Box{
		{Label: "Sales", Min: 10, Q1: 20, Median: 30, Q3: 40, Max: 50, N: 5},
		{Label: "HR", Min: -10, Q1: -5, Median: 0, Q3: 5, Max: 10, N: 5, Series: 1},
	}, 60, func(v float64) string { return formatChartLabel(v) })
	plain := stripANSI(out)
	if strings.Count(plain, "┃") != 2 {
		t.Errorf("expected one median marker per row:\n%s", plain)
	}
	if !strings.Contains(plain, "├") || !strings.Contains(plain, "┤") {
		t.Errorf("missing whiskers:\n%s", plain)
	}
}

func TestDonutChart(t *testing.T) {
	out := DonutChart([]Slice{{Label: "Sales", Value: 3}, {Label: "HR", Value: 1, Series: 1}}, 4)
	plain := stripANSI(out)
	if !strings.Contains(plain, "75.0%") || !strings.Contains(plain, "25.0%") {
		t.Errorf("legend missing shares:\n%s", plain)
	}
	if lipgloss.Height(out) != 9 {
		t.Errorf("height = %d, want 9", lipgloss.Height(out))
	}
	// The centre cell sits inside the hole.
	centre := strings.Split(plain, "\n")[4]
	if []rune(centre)[9] != ' ' {
		t.Errorf("donut centre is filled: %q", centre)
	}
	if DonutChart([]Slice{{Label: "x", Value: 0}}, 4) != "" {
		t.Error("all-zero donut should render nothing")
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := map[float64]string{0: "0", 5: "5", 1500: "1.5k", 2000: "2k", 3e6: "3M", -2000: "-2k", 0.5: "0.50"}
	for in, want := range tests {
		if got := formatChartLabel(in); got != want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", in, got, want)
		}
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
