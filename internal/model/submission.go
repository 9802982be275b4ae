// Package model defines domain types for financial submissions and their aggregates.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Column ranges for the stored DECIMAL(5,2) margin.
var (
	MaxMargin = decimal.RequireFromString("999.99")
	MinMargin = decimal.RequireFromString("-999.99")
)

var hundred = decimal.NewFromInt(100)

// Submission is one financial record as stored in the warehouse.
// Records are immutable once inserted.
type Submission struct {
	SubmissionID   string          `json:"submission_id"`
	BusinessUnit   string          `json:"business_unit"`
	SubmissionDate time.Time       `json:"submission_date"`
	Revenue        decimal.Decimal `json:"revenue"`
	Expenses       decimal.Decimal `json:"expenses"`
	ProfitMargin   decimal.Decimal `json:"profit_margin"`
	SubmittedBy    string          `json:"submitted_by"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ProfitMargin returns (revenue - expenses) / revenue * 100 rounded to two
// places. Zero or negative revenue yields 0. The result is clamped to the
// range of the stored column.
func ProfitMargin(revenue, expenses decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	m := revenue.Sub(expenses).Div(revenue).Mul(hundred).Round(2)
	if m.GreaterThan(MaxMargin) {
		return MaxMargin
	}
	if m.LessThan(MinMargin) {
		return MinMargin
	}
	return m
}

// MarginConsistent reports whether the stored margin matches a recompute
// from revenue and expenses.
func (s Submission) MarginConsistent() bool {
	return s.ProfitMargin.Equal(ProfitMargin(s.Revenue, s.Expenses))
}

// Profit returns revenue minus expenses.
func (s Submission) Profit() decimal.Decimal {
	return s.Revenue.Sub(s.Expenses)
}
