package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/theirongolddev/finportal/internal/cli"
	"github.com/theirongolddev/finportal/internal/form"
	"github.com/theirongolddev/finportal/internal/model"
	"github.com/theirongolddev/finportal/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagSince     string
	flagDays      int
	flagUnitScope string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "KPIs and per-unit breakdown of submitted financials",
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&flagSince, "since", "", "Only submissions on or after this date (YYYY-MM-DD)")
	summaryCmd.Flags().IntVarP(&flagDays, "days", "n", 0, "Only the last N days (overrides --since)")
	summaryCmd.Flags().StringVarP(&flagUnitScope, "unit", "u", "", "Only one business unit")
	rootCmd.AddCommand(summaryCmd)
}

// loadRows runs the dashboard query and applies --since/--days/--unit.
func loadRows(e *env) ([]model.Submission, error) {
	progress("Querying %s...", e.conn.Describe())
	snap, err := e.loader.Load(context.Background())
	if err != nil {
		return nil, err
	}

	rows := snap.Rows
	var since time.Time
	switch {
	case flagDays > 0:
		since = time.Now().AddDate(0, 0, -flagDays)
	case flagSince != "":
		since, err = form.ParseDate(flagSince)
		if err != nil {
			return nil, err
		}
	}
	rows = pipeline.FilterByTime(rows, since, time.Time{})
	return pipeline.FilterByUnit(rows, flagUnitScope), nil
}

func runSummary(_ *cobra.Command, _ []string) error {
	e, err := setup(nil)
	if err != nil {
		return err
	}
	rows, err := loadRows(e)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		fmt.Println("\n  No financial data yet.")
		fmt.Println("  Run `finportal submit` to add the first submission.")
		return nil
	}

	stats := pipeline.Aggregate(rows)
	units := pipeline.AggregateUnits(rows)

	title := "FINANCIAL SUMMARY"
	if flagUnitScope != "" {
		title += "  " + flagUnitScope
	}
	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()

	kpis := cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Submissions", cli.FormatNumber(int64(stats.Submissions))},
			{"Business Units", cli.FormatNumber(int64(stats.BusinessUnits))},
			{cli.SeparatorRow},
			{"Total Revenue", cli.FormatCurrency(stats.TotalRevenue)},
			{"Total Expenses", cli.FormatCurrency(stats.TotalExpenses)},
			{"Total Profit", cli.FormatCurrency(stats.TotalProfit)},
			{cli.SeparatorRow},
			{"Overall Margin", cli.FormatMargin(stats.OverallMargin)},
			{"Average Margin", cli.FormatMargin(stats.AvgMargin)},
			{"Date Range", cli.FormatDate(stats.FirstSubmission) + " to " + cli.FormatDate(stats.LastSubmission)},
		},
	}
	fmt.Print(cli.RenderTable(kpis))
	fmt.Println()

	var topRevenue float64
	for _, u := range units {
		topRevenue = max(topRevenue, u.TotalRevenue)
	}
	unitRows := make([][]string, 0, len(units))
	for _, u := range units {
		unitRows = append(unitRows, []string{
			u.BusinessUnit,
			cli.FormatNumber(int64(u.Submissions)),
			cli.FormatCurrency(u.TotalRevenue),
			cli.FormatCurrency(u.TotalExpenses),
			cli.FormatMargin(u.AvgMargin),
			cli.FormatPercent(u.SharePercent / 100),
			cli.RenderHorizontalBar(u.TotalRevenue, topRevenue, 16),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "By Business Unit",
		Headers: []string{"Unit", "Count", "Revenue", "Expenses", "Avg Margin", "Share", ""},
		Align:   []cli.Align{cli.AlignAuto, cli.AlignAuto, cli.AlignAuto, cli.AlignAuto, cli.AlignAuto, cli.AlignAuto, cli.AlignLeft},
		Rows:    unitRows,
	}))

	// Oldest to newest so the sparkline reads left to right.
	recent := pipeline.Recent(rows, 0)
	revenue := make([]float64, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		revenue = append(revenue, recent[i].Revenue.InexactFloat64())
	}
	fmt.Printf("\n  Revenue trend  %s\n\n", cli.RenderSparkline(revenue))
	return nil
}
