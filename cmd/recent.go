package cmd

import (
	"fmt"

	"github.com/theirongolddev/finportal/internal/cli"
	"github.com/theirongolddev/finportal/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagLimit int

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the newest submissions",
	RunE:  runRecent,
}

func init() {
	recentCmd.Flags().IntVarP(&flagLimit, "limit", "l", 10, "Number of submissions to show")
	recentCmd.Flags().StringVarP(&flagUnitScope, "unit", "u", "", "Only one business unit")
	recentCmd.Flags().StringVar(&flagSince, "since", "", "Only submissions on or after this date (YYYY-MM-DD)")
	rootCmd.AddCommand(recentCmd)
}

func runRecent(_ *cobra.Command, _ []string) error {
	e, err := setup(nil)
	if err != nil {
		return err
	}
	rows, err := loadRows(e)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("\n  No submissions found.")
		return nil
	}

	recent := pipeline.Recent(rows, flagLimit)
	out := make([][]string, 0, len(recent))
	for _, s := range recent {
		out = append(out, []string{
			cli.FormatDate(s.SubmissionDate),
			s.SubmissionID,
			s.BusinessUnit,
			cli.FormatDecimal(s.Revenue),
			cli.FormatDecimal(s.Expenses),
			cli.FormatMargin(s.ProfitMargin.InexactFloat64()),
			s.SubmittedBy,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Recent Submissions (%d of %d)", len(recent), len(rows)),
		Headers: []string{"Date", "ID", "Unit", "Revenue", "Expenses", "Margin", "By"},
		Align:   []cli.Align{cli.AlignLeft, cli.AlignLeft, cli.AlignLeft, cli.AlignRight, cli.AlignRight, cli.AlignRight, cli.AlignLeft},
		Rows:    out,
	}))
	fmt.Println()
	return nil
}
