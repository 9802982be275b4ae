package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/finportal/internal/cli"
	"github.com/theirongolddev/finportal/internal/form"
	"github.com/theirongolddev/finportal/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var (
	flagUnit     string
	flagRevenue  string
	flagExpenses string
	flagBy       string
	flagDate     string
	flagJSON     bool
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit one business unit's revenue and expenses",
	Long: "Submit one record. When --unit, --revenue, --expenses or --by is missing\n" +
		"an interactive form is shown, pre-filled with whatever flags were given.",
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringVarP(&flagUnit, "unit", "u", "", "Business unit")
	submitCmd.Flags().StringVar(&flagRevenue, "revenue", "", "Revenue in dollars")
	submitCmd.Flags().StringVar(&flagExpenses, "expenses", "", "Expenses in dollars")
	submitCmd.Flags().StringVar(&flagBy, "by", "", "Submitter name")
	submitCmd.Flags().StringVar(&flagDate, "date", "", "Submission date, YYYY-MM-DD (default now)")
	submitCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the stored record as JSON")
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(_ *cobra.Command, _ []string) error {
	e, err := setup(nil)
	if err != nil {
		return err
	}

	in := form.Input{
		BusinessUnit:   flagUnit,
		Revenue:        flagRevenue,
		Expenses:       flagExpenses,
		SubmittedBy:    flagBy,
		SubmissionDate: flagDate,
	}

	if in.BusinessUnit == "" || in.Revenue == "" || in.Expenses == "" || in.SubmittedBy == "" {
		in, err = promptSubmission(e.submitter.Spec, in)
		if err != nil {
			return err
		}
	}

	progress("Submitting to %s...", e.conn.Describe())
	sub, err := e.submitter.Submit(context.Background(), in)
	if err != nil {
		if printViolations(os.Stderr, e.submitter.Spec, err) {
			return errors.New("submission rejected")
		}
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sub)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SUBMITTED  " + sub.SubmissionID))
	fmt.Println()
	fmt.Print(cli.RenderKV([][2]string{
		{"Business Unit", sub.BusinessUnit},
		{"Revenue", cli.FormatDecimal(sub.Revenue)},
		{"Expenses", cli.FormatDecimal(sub.Expenses)},
		{"Profit Margin", cli.FormatMargin(sub.ProfitMargin.InexactFloat64())},
		{"Submitted By", sub.SubmittedBy},
		{"Date", cli.FormatDate(sub.SubmissionDate)},
	}))
	fmt.Println()
	return nil
}

// promptSubmission fills the missing fields with the interactive form.
func promptSubmission(spec form.Spec, in form.Input) (form.Input, error) {
	d := spec.Defaults()
	vals := &tui.SubmitValues{
		Unit:        firstNonEmpty(in.BusinessUnit, d.BusinessUnit),
		Revenue:     firstNonEmpty(in.Revenue, d.Revenue),
		Expenses:    firstNonEmpty(in.Expenses, d.Expenses),
		SubmittedBy: firstNonEmpty(in.SubmittedBy, d.SubmittedBy),
		Date:        in.SubmissionDate,
	}
	if err := tui.NewSubmitForm(spec, vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return in, errors.New("submission cancelled")
		}
		return in, fmt.Errorf("form: %w", err)
	}
	return vals.Input(), nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
