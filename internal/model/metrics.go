package model

import "time"

// SummaryStats holds the top-level KPIs across all loaded submissions.
type SummaryStats struct {
	Submissions   int
	BusinessUnits int

	TotalRevenue  float64
	TotalExpenses float64
	TotalProfit   float64

	// OverallMargin is computed from the totals; AvgMargin is the mean of
	// the stored per-row margins.
	OverallMargin float64
	AvgMargin     float64

	FirstSubmission time.Time
	LastSubmission  time.Time
}

// UnitStats holds aggregated metrics for a single business unit.
type UnitStats struct {
	BusinessUnit  string
	Submissions   int
	TotalRevenue  float64
	TotalExpenses float64
	AvgMargin     float64
	OverallMargin float64
	SharePercent  float64 // of all submissions
	Margins       BoxStats
}

// BoxStats is the five-number summary drawn by the box plot.
type BoxStats struct {
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
	N      int
}

// Point is one scatter plot sample.
type Point struct {
	X, Y   float64
	Group  string
	Weight float64
}
