package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/finportal/internal/config"
	"github.com/theirongolddev/finportal/internal/form"
	"github.com/theirongolddev/finportal/internal/model"
	"github.com/theirongolddev/finportal/internal/pipeline"
	"github.com/theirongolddev/finportal/internal/warehouse"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type stubSource struct {
	rows []model.Submission
	err  error
}

func (s *stubSource) LoadSubmissions(context.Context, int) ([]model.Submission, error) {
	return s.rows, s.err
}

type stubInserter struct{ n int }

func (s *stubInserter) Insert(context.Context, *model.Submission) error {
	s.n++
	return nil
}

func newTestApp(src pipeline.Source) App {
	cfg := config.DefaultConfig()
	loader := pipeline.NewLoader(src, 100, time.Minute, nil, zerolog.Nop())
	sub := &form.Submitter{
		Spec:        form.NewSpec(cfg.Form),
		Inserter:    &stubInserter{},
		Invalidator: loader,
		Log:         zerolog.Nop(),
	}
	a := NewApp(Deps{Config: cfg, Loader: loader, Submitter: sub, Target: "sqlite test.db", Log: zerolog.Nop()})
	a.width, a.height = 140, 40
	return a
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	names := []string{"Overview", "Revenue", "Margins", "Units", "Submit", "Settings"}
	for active := range names {
		a := App{activeTab: active}
		pos := 0

		for i, name := range names {
			w := len(name) + 2
			if i != active && i >= 4 {
				w += 3 // Submit and Settings show "[k]" when inactive
			}
			x := pos + w/2
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w
			if i < len(names)-1 {
				pos++
			}
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Errorf("active=%d: x past last tab = %d, want -1", active, got)
		}
	}
}

func TestDataLoadedKeepsRowsOnEmptyFailure(t *testing.T) {
	a := newTestApp(&stubSource{})
	rows := []model.Submission{{
		SubmissionID: "sub_00000001",
		BusinessUnit: "Sales",
		Revenue:      decimal.NewFromInt(100000),
		Expenses:     decimal.NewFromInt(60000),
		ProfitMargin: decimal.NewFromInt(40),
	}}

	m, _ := a.Update(DataLoadedMsg{Snapshot: pipeline.Snapshot{Rows: rows}})
	a = m.(App)
	if a.stats.Submissions != 1 {
		t.Fatalf("Submissions = %d, want 1", a.stats.Submissions)
	}

	m, _ = a.Update(DataLoadedMsg{Err: fmt.Errorf("%w: dial tcp: refused", warehouse.ErrConnect)})
	a = m.(App)
	if len(a.rows) != 1 {
		t.Errorf("rows = %d after failed refresh, want 1", len(a.rows))
	}
	if !a.noticeErr || !strings.Contains(a.notice, "Cannot reach the warehouse") {
		t.Errorf("notice = %q (err=%v)", a.notice, a.noticeErr)
	}
}

func TestHandleSubmitDoneSuccess(t *testing.T) {
	a := newTestApp(&stubSource{})
	a.activeTab = tabSubmit
	a.submit.submitting = true

	m, cmd := a.handleSubmitDone(SubmitDoneMsg{Submission: model.Submission{SubmissionID: "sub_abcdef12"}})
	a = m.(App)

	if a.submit.submitting {
		t.Error("still submitting")
	}
	if a.submit.lastID != "sub_abcdef12" {
		t.Errorf("lastID = %q", a.submit.lastID)
	}
	if a.noticeErr || a.notice != "Submitted sub_abcdef12" {
		t.Errorf("notice = %q (err=%v)", a.notice, a.noticeErr)
	}
	if !a.refreshing || cmd == nil {
		t.Error("expected a dashboard reload after submit")
	}
	if a.submit.form == nil {
		t.Fatal("form not rebuilt")
	}
	if a.submit.vals.Unit != "Sales" || a.submit.vals.SubmittedBy != "Demo User" {
		t.Errorf("form not reset to defaults: %+v", *a.submit.vals)
	}
}

func TestHandleSubmitDoneValidationKeepsValues(t *testing.T) {
	a := newTestApp(&stubSource{})
	a.activeTab = tabSubmit
	a.submit.vals.SubmittedBy = ""
	a.submit.vals.Revenue = "5000"

	err := &form.ValidationError{Violations: form.Violations{form.FieldSubmittedBy: "Submitted By is required"}}
	m, _ := a.handleSubmitDone(SubmitDoneMsg{Err: err})
	a = m.(App)

	if !a.noticeErr {
		t.Error("expected an error notice")
	}
	if a.submit.violations[form.FieldSubmittedBy] == "" {
		t.Errorf("violations = %v", a.submit.violations)
	}
	if a.submit.vals.Revenue != "5000" {
		t.Errorf("typed revenue lost: %q", a.submit.vals.Revenue)
	}
	if a.submit.lastID != "" {
		t.Errorf("lastID = %q, want empty", a.submit.lastID)
	}
}

func TestSwitchTabBuildsSubmitForm(t *testing.T) {
	a := newTestApp(&stubSource{})
	m, cmd := a.switchTab(tabSubmit)
	a = m.(App)
	if a.submit.form == nil {
		t.Fatal("form not built")
	}
	if cmd == nil {
		t.Error("expected form init command")
	}
	if out := a.renderSubmitTab(a.contentWidth()); !strings.Contains(out, "Profit Margin Preview") {
		t.Error("submit tab missing margin preview")
	}
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: %w", warehouse.ErrQuery, errors.New("no such table")), "Warehouse query failed: no such table"},
		{fmt.Errorf("%w: %w", warehouse.ErrConnect, errors.New("timeout")), "Cannot reach the warehouse: timeout"},
		{errors.New("boom"), "boom"},
	}
	for _, tt := range tests {
		if got := describeError(tt.err); got != tt.want {
			t.Errorf("describeError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
