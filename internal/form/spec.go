// Package form defines the submission form: its field configuration,
// validation, margin preview and the submit operation.
package form

import (
	"github.com/theirongolddev/finportal/internal/config"

	"github.com/shopspring/decimal"
)

// Field names, shared by the TUI form, CLI flags and JSON payloads.
const (
	FieldBusinessUnit   = "business_unit"
	FieldRevenue        = "revenue"
	FieldExpenses       = "expenses"
	FieldSubmittedBy    = "submitted_by"
	FieldSubmissionDate = "submission_date"
)

// FieldType is the input kind of a field.
type FieldType int

const (
	TypeText FieldType = iota
	TypeChoice
	TypeMoney
	TypeDate
)

// FieldSpec constrains one form field.
type FieldSpec struct {
	Type        FieldType
	Label       string
	Required    bool
	Min         *decimal.Decimal // money fields only
	Max         *decimal.Decimal
	Choices     []string
	Default     string
	Placeholder string
}

// Spec enumerates every field of the form.
type Spec struct {
	Fields map[string]FieldSpec
	Order  []string
}

// DateLayout is the accepted format of the optional submission date.
const DateLayout = "2006-01-02"

// maxMoney is the largest value a DECIMAL(15,2) column holds.
var maxMoney = decimal.RequireFromString("9999999999999.99")

// NewSpec builds the form configuration from the [form] config section.
func NewSpec(fc config.FormConfig) Spec {
	units := fc.BusinessUnits
	if len(units) == 0 {
		units = config.DefaultBusinessUnits
	}
	zero := decimal.Zero
	top := maxMoney

	return Spec{
		Order: []string{FieldBusinessUnit, FieldRevenue, FieldExpenses, FieldSubmittedBy, FieldSubmissionDate},
		Fields: map[string]FieldSpec{
			FieldBusinessUnit: {
				Type:     TypeChoice,
				Label:    "Business Unit",
				Required: true,
				Choices:  append([]string(nil), units...),
				Default:  units[0],
			},
			FieldRevenue: {
				Type:        TypeMoney,
				Label:       "Revenue ($)",
				Required:    true,
				Min:         &zero,
				Max:         &top,
				Default:     decimal.NewFromFloat(fc.DefaultRevenue).StringFixed(2),
				Placeholder: "100000.00",
			},
			FieldExpenses: {
				Type:        TypeMoney,
				Label:       "Expenses ($)",
				Required:    true,
				Min:         &zero,
				Max:         &top,
				Default:     decimal.NewFromFloat(fc.DefaultExpenses).StringFixed(2),
				Placeholder: "75000.00",
			},
			FieldSubmittedBy: {
				Type:        TypeText,
				Label:       "Submitted By",
				Required:    true,
				Default:     fc.DefaultSubmitter,
				Placeholder: "Your name",
			},
			FieldSubmissionDate: {
				Type:        TypeDate,
				Label:       "Submission Date",
				Placeholder: "YYYY-MM-DD (blank for now)",
			},
		},
	}
}

// Units returns the business unit choice set.
func (s Spec) Units() []string {
	return s.Fields[FieldBusinessUnit].Choices
}

// Defaults returns an Input pre-filled with every field's default.
func (s Spec) Defaults() Input {
	return Input{
		BusinessUnit: s.Fields[FieldBusinessUnit].Default,
		Revenue:      s.Fields[FieldRevenue].Default,
		Expenses:     s.Fields[FieldExpenses].Default,
		SubmittedBy:  s.Fields[FieldSubmittedBy].Default,
	}
}
