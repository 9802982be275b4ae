package cli

import (
	"strings"
	"testing"
)

func TestRenderTableLayout(t *testing.T) {
	out := RenderTable(Table{
		Title:   "By Business Unit",
		Headers: []string{"Unit", "Revenue"},
		Rows: [][]string{
			{"Sales", "$100,000.00"},
			{"---"},
			{"Total", "$100,000.00"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// title, top, header, header sep, row, sep, row, bottom
	if len(lines) != 8 {
		t.Fatalf("got %d lines, want 8:\n%s", len(lines), out)
	}
	if !strings.Contains(out, "Sales") || !strings.Contains(out, "$100,000.00") {
		t.Errorf("missing cell content:\n%s", out)
	}
	if RenderTable(Table{}) != "" {
		t.Error("empty table should render nothing")
	}
}

func TestRenderSparklineHandlesNegatives(t *testing.T) {
	got := []rune(RenderSparkline([]float64{-10, 0, 10}))
	if len(got) != 3 || got[0] != '▁' || got[2] != '█' {
		t.Errorf("RenderSparkline = %q", string(got))
	}
}

func TestRenderViolations(t *testing.T) {
	out := RenderViolations([]string{"submitted_by"}, map[string]string{"submitted_by": "Submitted By is required"})
	if !strings.Contains(out, "Submitted By is required") {
		t.Errorf("RenderViolations = %q", out)
	}
}

func TestRenderTableAlignment(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"ID", "By"},
		Rows:    [][]string{{"a", "Jo"}, {"bbbb", "Alexandra"}},
		Align:   []Align{AlignAuto, AlignLeft},
	})
	if !strings.Contains(out, " Jo        ") {
		t.Errorf("left-aligned column not padded on the right:\n%s", out)
	}

	out = RenderTable(Table{
		Headers: []string{"Unit", "Count"},
		Rows:    [][]string{{"HR", "7"}},
	})
	if !strings.Contains(out, "     7 ") {
		t.Errorf("numeric column should right-align:\n%s", out)
	}
}

func TestRenderHorizontalBar(t *testing.T) {
	if got := RenderHorizontalBar(5, 0, 10); got != "" {
		t.Errorf("zero max should render nothing, got %q", got)
	}
	if got := strings.Count(RenderHorizontalBar(50, 100, 10), "█"); got != 5 {
		t.Errorf("half bar = %d cells, want 5", got)
	}
	if got := strings.Count(RenderHorizontalBar(-500, 100, 10), "█"); got != 10 {
		t.Errorf("overflow bar = %d cells, want 10", got)
	}
}
