package form

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/finportal/internal/config"
	"github.com/theirongolddev/finportal/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type fakeInserter struct {
	calls []model.Submission
	err   error
}

func (f *fakeInserter) Insert(_ context.Context, s *model.Submission) error {
	f.calls = append(f.calls, *s)
	if f.err != nil {
		return f.err
	}
	s.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return nil
}

type countingInvalidator struct{ n int }

func (c *countingInvalidator) Invalidate() { c.n++ }

func testSpec() Spec {
	return NewSpec(config.DefaultConfig().Form)
}

func validInput() Input {
	return Input{BusinessUnit: "Sales", Revenue: "100000", Expenses: "60000", SubmittedBy: "Demo User"}
}

func TestNewSpecDefaults(t *testing.T) {
	spec := testSpec()
	if got := spec.Units(); len(got) != 6 || got[0] != "Sales" || got[5] != "HR" {
		t.Errorf("Units() = %v", got)
	}
	d := spec.Defaults()
	if d.BusinessUnit != "Sales" || d.Revenue != "100000.00" || d.Expenses != "75000.00" || d.SubmittedBy != "Demo User" {
		t.Errorf("Defaults() = %+v", d)
	}
	if len(spec.Order) != len(spec.Fields) {
		t.Errorf("Order has %d fields, Fields has %d", len(spec.Order), len(spec.Fields))
	}
}

func TestValidate(t *testing.T) {
	spec := testSpec()
	tests := []struct {
		name      string
		mutate    func(*Input)
		wantField string
	}{
		{"valid", func(*Input) {}, ""},
		{"empty submitter", func(in *Input) { in.SubmittedBy = "   " }, FieldSubmittedBy},
		{"empty unit", func(in *Input) { in.BusinessUnit = "" }, FieldBusinessUnit},
		{"unknown unit", func(in *Input) { in.BusinessUnit = "Legal" }, FieldBusinessUnit},
		{"empty revenue", func(in *Input) { in.Revenue = "" }, FieldRevenue},
		{"negative revenue", func(in *Input) { in.Revenue = "-1" }, FieldRevenue},
		{"non-numeric expenses", func(in *Input) { in.Expenses = "lots" }, FieldExpenses},
		{"too large expenses", func(in *Input) { in.Expenses = "99999999999999" }, FieldExpenses},
		{"bad date", func(in *Input) { in.SubmissionDate = "03/01/2025" }, FieldSubmissionDate},
		{"formatted amounts", func(in *Input) { in.Revenue = "$100,000.00" }, ""},
		{"zero revenue", func(in *Input) { in.Revenue = "0" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := Validate(spec, in)

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if _, ok := ve.Violations[tt.wantField]; !ok {
				t.Errorf("violations %v missing %q", ve.Violations, tt.wantField)
			}
		})
	}
}

func TestValidateParsesDate(t *testing.T) {
	in := validInput()
	in.SubmissionDate = "2025-03-01"
	d, err := Validate(testSpec(), in)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC); !d.SubmissionDate.Equal(want) {
		t.Errorf("SubmissionDate = %v, want %v", d.SubmissionDate, want)
	}
}

func TestSubmitEmptyNameMakesNoInsert(t *testing.T) {
	ins := &fakeInserter{}
	inv := &countingInvalidator{}
	s := &Submitter{Spec: testSpec(), Inserter: ins, Invalidator: inv, Log: zerolog.New(io.Discard)}

	in := validInput()
	in.SubmittedBy = ""
	_, err := s.Submit(context.Background(), in)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if len(ins.calls) != 0 {
		t.Errorf("Insert called %d times, want 0", len(ins.calls))
	}
	if inv.n != 0 {
		t.Errorf("cache invalidated %d times, want 0", inv.n)
	}
}

func TestSubmitComputesMarginAndInvalidates(t *testing.T) {
	ins := &fakeInserter{}
	inv := &countingInvalidator{}
	now := time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)
	s := &Submitter{
		Spec:        testSpec(),
		Inserter:    ins,
		Invalidator: inv,
		Log:         zerolog.New(io.Discard),
		Now:         func() time.Time { return now },
		NewID:       func() string { return "sub_deadbeef" },
	}

	got, err := s.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(ins.calls) != 1 {
		t.Fatalf("Insert called %d times, want 1", len(ins.calls))
	}
	if !got.ProfitMargin.Equal(decimal.NewFromInt(40)) {
		t.Errorf("margin = %s, want 40.00", got.ProfitMargin.StringFixed(2))
	}
	if got.SubmissionID != "sub_deadbeef" || !got.SubmissionDate.Equal(now) {
		t.Errorf("got %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt from the inserter was not kept")
	}
	if inv.n != 1 {
		t.Errorf("cache invalidated %d times, want 1", inv.n)
	}
}

func TestSubmitInsertFailureSurfaces(t *testing.T) {
	boom := errors.New("connection refused")
	ins := &fakeInserter{err: boom}
	inv := &countingInvalidator{}
	s := &Submitter{Spec: testSpec(), Inserter: ins, Invalidator: inv, Log: zerolog.New(io.Discard)}

	_, err := s.Submit(context.Background(), validInput())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	if inv.n != 0 {
		t.Error("cache should not be invalidated after a failed insert")
	}
}

func TestNewID(t *testing.T) {
	re := regexp.MustCompile(`^sub_[0-9a-f]{8}$`)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		id := NewID()
		if !re.MatchString(id) {
			t.Fatalf("NewID() = %q", id)
		}
		seen[id] = true
	}
	if len(seen) < 199 {
		t.Errorf("only %d distinct ids out of 200", len(seen))
	}
}

func TestMarginPreview(t *testing.T) {
	tests := []struct {
		revenue, expenses, want string
	}{
		{"100000", "75000", "25.00%"},
		{"100000", "60000", "40.00%"},
		{"0", "500", "0.00%"},
		{"abc", "1", "-"},
	}
	for _, tt := range tests {
		got := MarginPreview(tt.revenue, tt.expenses)
		if !strings.HasSuffix(got, tt.want) {
			t.Errorf("MarginPreview(%q, %q) = %q, want suffix %q", tt.revenue, tt.expenses, got, tt.want)
		}
	}
}
