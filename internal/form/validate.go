package form

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/finportal/internal/model"

	"github.com/shopspring/decimal"
)

// Input holds raw field values as typed by the user.
type Input struct {
	BusinessUnit   string `json:"business_unit"`
	Revenue        string `json:"revenue"`
	Expenses       string `json:"expenses"`
	SubmittedBy    string `json:"submitted_by"`
	SubmissionDate string `json:"submission_date,omitempty"`
}

// Draft is a validated Input ready to become a Submission.
type Draft struct {
	BusinessUnit   string
	Revenue        decimal.Decimal
	Expenses       decimal.Decimal
	SubmittedBy    string
	SubmissionDate time.Time // zero when not given
}

// Violations maps a field name to what is wrong with it.
type Violations map[string]string

// Empty reports whether no field failed.
func (v Violations) Empty() bool { return len(v) == 0 }

// ValidationError is returned when the form must not be submitted.
type ValidationError struct {
	Violations Violations
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f := range e.Violations {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, e.Violations[f])
	}
	return "invalid submission: " + strings.Join(parts, "; ")
}

// Validate checks in against spec. It never touches the warehouse.
func Validate(spec Spec, in Input) (Draft, error) {
	v := Violations{}
	var d Draft

	unitSpec := spec.Fields[FieldBusinessUnit]
	d.BusinessUnit = strings.TrimSpace(in.BusinessUnit)
	switch {
	case d.BusinessUnit == "":
		v[FieldBusinessUnit] = unitSpec.Label + " is required"
	case len(unitSpec.Choices) > 0 && !slices.Contains(unitSpec.Choices, d.BusinessUnit):
		v[FieldBusinessUnit] = fmt.Sprintf("%s must be one of %s", unitSpec.Label, strings.Join(unitSpec.Choices, ", "))
	}

	d.Revenue = money(spec.Fields[FieldRevenue], FieldRevenue, in.Revenue, v)
	d.Expenses = money(spec.Fields[FieldExpenses], FieldExpenses, in.Expenses, v)

	d.SubmittedBy = strings.TrimSpace(in.SubmittedBy)
	if d.SubmittedBy == "" {
		v[FieldSubmittedBy] = spec.Fields[FieldSubmittedBy].Label + " is required"
	}

	if raw := strings.TrimSpace(in.SubmissionDate); raw != "" {
		t, err := ParseDate(raw)
		if err != nil {
			v[FieldSubmissionDate] = fmt.Sprintf("%s must look like %s", spec.Fields[FieldSubmissionDate].Label, DateLayout)
		} else {
			d.SubmissionDate = t
		}
	}

	if !v.Empty() {
		return Draft{}, &ValidationError{Violations: v}
	}
	return d, nil
}

func money(fs FieldSpec, name, raw string, v Violations) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if fs.Required {
			v[name] = fs.Label + " is required"
		}
		return decimal.Zero
	}
	d, err := ParseMoney(raw)
	if err != nil {
		v[name] = fs.Label + " must be a number"
		return decimal.Zero
	}
	if fs.Min != nil && d.LessThan(*fs.Min) {
		v[name] = fmt.Sprintf("%s must be at least %s", fs.Label, fs.Min.StringFixed(2))
	}
	if fs.Max != nil && d.GreaterThan(*fs.Max) {
		v[name] = fmt.Sprintf("%s must be at most %s", fs.Label, fs.Max.StringFixed(2))
	}
	return d
}

// ParseMoney accepts "100000", "100,000.50" or "$1,000" and rounds to cents.
func ParseMoney(raw string) (decimal.Decimal, error) {
	clean := strings.NewReplacer(",", "", "$", "", "_", "", " ", "").Replace(strings.TrimSpace(raw))
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", raw, err)
	}
	return d.Round(2), nil
}

// ParseDate parses a submission date as YYYY-MM-DD or RFC 3339.
func ParseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", raw, err)
	}
	return t.UTC(), nil
}

// MarginPreview renders the live margin shown under the form. Unparsable
// input previews as a dash.
func MarginPreview(revenue, expenses string) string {
	r, err := ParseMoney(revenue)
	if err != nil {
		return "Profit Margin Preview: -"
	}
	e, err := ParseMoney(expenses)
	if err != nil {
		return "Profit Margin Preview: -"
	}
	return "Profit Margin Preview: " + model.ProfitMargin(r, e).StringFixed(2) + "%"
}
