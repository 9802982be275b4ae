// Package pipeline loads submissions through the dashboard cache and
// aggregates them into the KPI and chart data sets.
package pipeline

import (
	"math"
	"sort"
	"time"

	"github.com/theirongolddev/finportal/internal/model"
)

// Aggregate computes the KPI tiles from the loaded submissions.
func Aggregate(subs []model.Submission) model.SummaryStats {
	var stats model.SummaryStats
	units := make(map[string]struct{})
	var marginSum float64

	for _, s := range subs {
		stats.Submissions++
		stats.TotalRevenue += s.Revenue.InexactFloat64()
		stats.TotalExpenses += s.Expenses.InexactFloat64()
		marginSum += s.ProfitMargin.InexactFloat64()
		units[s.BusinessUnit] = struct{}{}

		if !s.SubmissionDate.IsZero() {
			if stats.FirstSubmission.IsZero() || s.SubmissionDate.Before(stats.FirstSubmission) {
				stats.FirstSubmission = s.SubmissionDate
			}
			if s.SubmissionDate.After(stats.LastSubmission) {
				stats.LastSubmission = s.SubmissionDate
			}
		}
	}

	stats.BusinessUnits = len(units)
	stats.TotalProfit = stats.TotalRevenue - stats.TotalExpenses
	if stats.TotalRevenue > 0 {
		stats.OverallMargin = stats.TotalProfit / stats.TotalRevenue * 100
	}
	if stats.Submissions > 0 {
		stats.AvgMargin = marginSum / float64(stats.Submissions)
	}
	return stats
}

// AggregateUnits computes per-business-unit statistics, sorted by total
// revenue descending.
func AggregateUnits(subs []model.Submission) []model.UnitStats {
	unitMap := make(map[string]*model.UnitStats)
	margins := make(map[string][]float64)

	for _, s := range subs {
		us, ok := unitMap[s.BusinessUnit]
		if !ok {
			us = &model.UnitStats{BusinessUnit: s.BusinessUnit}
			unitMap[s.BusinessUnit] = us
		}
		us.Submissions++
		us.TotalRevenue += s.Revenue.InexactFloat64()
		us.TotalExpenses += s.Expenses.InexactFloat64()
		margins[s.BusinessUnit] = append(margins[s.BusinessUnit], s.ProfitMargin.InexactFloat64())
	}

	units := make([]model.UnitStats, 0, len(unitMap))
	for name, us := range unitMap {
		ms := margins[name]
		var sum float64
		for _, m := range ms {
			sum += m
		}
		us.AvgMargin = sum / float64(len(ms))
		if us.TotalRevenue > 0 {
			us.OverallMargin = (us.TotalRevenue - us.TotalExpenses) / us.TotalRevenue * 100
		}
		if len(subs) > 0 {
			us.SharePercent = float64(us.Submissions) / float64(len(subs)) * 100
		}
		us.Margins = Quartiles(ms)
		units = append(units, *us)
	}

	sort.Slice(units, func(i, j int) bool {
		if units[i].TotalRevenue != units[j].TotalRevenue {
			return units[i].TotalRevenue > units[j].TotalRevenue
		}
		return units[i].BusinessUnit < units[j].BusinessUnit
	})
	return units
}

// Quartiles returns the five-number summary of values using linear
// interpolation between closest ranks. values is not modified.
func Quartiles(values []float64) model.BoxStats {
	if len(values) == 0 {
		return model.BoxStats{}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	return model.BoxStats{
		Min:    sorted[0],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
		N:      len(sorted),
	}
}

func quantile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[i]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// ScatterPoints maps submissions to (expenses, revenue) samples grouped by
// business unit and weighted by margin.
func ScatterPoints(subs []model.Submission) []model.Point {
	pts := make([]model.Point, 0, len(subs))
	for _, s := range subs {
		pts = append(pts, model.Point{
			X:      s.Expenses.InexactFloat64(),
			Y:      s.Revenue.InexactFloat64(),
			Group:  s.BusinessUnit,
			Weight: s.ProfitMargin.InexactFloat64(),
		})
	}
	return pts
}

// Recent returns the n newest submissions.
func Recent(subs []model.Submission, n int) []model.Submission {
	sorted := append([]model.Submission(nil), subs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SubmissionDate.After(sorted[j].SubmissionDate)
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// FilterByTime returns submissions dated within [since, until). A zero
// bound is open.
func FilterByTime(subs []model.Submission, since, until time.Time) []model.Submission {
	var out []model.Submission
	for _, s := range subs {
		if !since.IsZero() && s.SubmissionDate.Before(since) {
			continue
		}
		if !until.IsZero() && !s.SubmissionDate.Before(until) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FilterByUnit returns submissions of one business unit. An empty unit
// returns subs unchanged.
func FilterByUnit(subs []model.Submission, unit string) []model.Submission {
	if unit == "" {
		return subs
	}
	var out []model.Submission
	for _, s := range subs {
		if s.BusinessUnit == unit {
			out = append(out, s)
		}
	}
	return out
}
