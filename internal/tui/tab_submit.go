package tui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/theirongolddev/finportal/internal/cli"
	"github.com/theirongolddev/finportal/internal/form"
	"github.com/theirongolddev/finportal/internal/tui/components"
	"github.com/theirongolddev/finportal/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// SubmitValues backs the submission form fields. It is held by pointer so the
// bindings survive App being copied on every Update.
type SubmitValues struct {
	Unit        string
	Revenue     string
	Expenses    string
	SubmittedBy string
	Date        string
}

func (v *SubmitValues) Input() form.Input {
	return form.Input{
		BusinessUnit:   v.Unit,
		Revenue:        v.Revenue,
		Expenses:       v.Expenses,
		SubmittedBy:    v.SubmittedBy,
		SubmissionDate: v.Date,
	}
}

// submitState tracks the Submit tab.
type submitState struct {
	form       *huh.Form
	vals       *SubmitValues
	submitting bool
	lastID     string
	violations form.Violations
	err        error
}

func newSubmitState(spec form.Spec) submitState {
	d := spec.Defaults()
	return submitState{vals: &SubmitValues{
		Unit:        d.BusinessUnit,
		Revenue:     d.Revenue,
		Expenses:    d.Expenses,
		SubmittedBy: d.SubmittedBy,
	}}
}

// NewSubmitForm builds the submission form bound to vals. It is shared by
// the dashboard and `finportal submit`.
func NewSubmitForm(spec form.Spec, vals *SubmitValues) *huh.Form {
	f := spec.Fields
	moneyCheck := func(label string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", label)
			}
			if _, err := form.ParseMoney(s); err != nil {
				return fmt.Errorf("%s must be a number", label)
			}
			return nil
		}
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(f[form.FieldBusinessUnit].Label).
				Options(huh.NewOptions(spec.Units()...)...).
				Value(&vals.Unit),
			huh.NewInput().
				Title(f[form.FieldRevenue].Label).
				Placeholder(f[form.FieldRevenue].Placeholder).
				Validate(moneyCheck(f[form.FieldRevenue].Label)).
				Value(&vals.Revenue),
			huh.NewInput().
				Title(f[form.FieldExpenses].Label).
				Placeholder(f[form.FieldExpenses].Placeholder).
				Validate(moneyCheck(f[form.FieldExpenses].Label)).
				Value(&vals.Expenses),
			huh.NewNote().
				Title("Profit Margin").
				DescriptionFunc(func() string {
					return form.MarginPreview(vals.Revenue, vals.Expenses)
				}, vals),
			huh.NewInput().
				Title(f[form.FieldSubmittedBy].Label).
				Placeholder(f[form.FieldSubmittedBy].Placeholder).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}).
				Value(&vals.SubmittedBy),
			huh.NewInput().
				Title(f[form.FieldSubmissionDate].Label).
				Placeholder(f[form.FieldSubmissionDate].Placeholder).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := form.ParseDate(strings.TrimSpace(s))
					return err
				}).
				Value(&vals.Date),
		),
	).WithShowHelp(true).WithTheme(huh.ThemeBase16())
}

func (a App) formWidth() int {
	w := a.contentWidth()/2 - 4
	if a.isCompactLayout() {
		w = a.contentWidth() - 6
	}
	if w < 40 {
		w = 40
	}
	return w
}

// resetSubmitForm builds a fresh form pre-filled from in.
func (a App) resetSubmitForm(in form.Input) (tea.Model, tea.Cmd) {
	a.submit.vals = &SubmitValues{
		Unit:        in.BusinessUnit,
		Revenue:     in.Revenue,
		Expenses:    in.Expenses,
		SubmittedBy: in.SubmittedBy,
		Date:        in.SubmissionDate,
	}
	a.submit.form = NewSubmitForm(a.submitter.Spec, a.submit.vals).WithWidth(a.formWidth())
	return a, a.submit.form.Init()
}

func (a App) updateSubmitForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.submit.submitting {
		return a, nil
	}
	model, cmd := a.submit.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		a.submit.form = f
	}

	switch a.submit.form.State {
	case huh.StateCompleted:
		a.submit.submitting = true
		a.submit.err = nil
		a.submit.violations = nil
		return a, tea.Batch(submitCmd(a.submitter, a.submit.vals.Input()), a.spinner.Tick)
	case huh.StateAborted:
		// Keep what was typed; leaving the tab is the only way out.
		return a.resetSubmitForm(a.submit.vals.Input())
	}
	return a, cmd
}

func (a App) handleSubmitDone(msg SubmitDoneMsg) (tea.Model, tea.Cmd) {
	a.submit.submitting = false

	if msg.Err != nil {
		a.submit.err = msg.Err
		var ve *form.ValidationError
		if errors.As(msg.Err, &ve) {
			a.submit.violations = ve.Violations
		}
		a.setNotice(describeError(msg.Err), true)
		// Nothing was stored; give the user their values back.
		return a.resetSubmitForm(a.submit.vals.Input())
	}

	a.submit.lastID = msg.Submission.SubmissionID
	a.setNotice("Submitted "+msg.Submission.SubmissionID, false)

	// The submitter invalidated the cache; reload and clear the form.
	next, cmd := a.resetSubmitForm(a.submitter.Spec.Defaults())
	app := next.(App)
	app.refreshing = true
	return app, tea.Batch(cmd, loadDataCmd(app.loader, false))
}

func (a App) renderSubmitTab(cw int) string {
	t := theme.Active

	var formView string
	switch {
	case a.submit.submitting:
		formView = a.spinner.View() + " Submitting to " + a.target + "…"
	case a.submit.form != nil:
		formView = a.submit.form.View()
	}

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Bold(true)
	warnStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	var side strings.Builder
	side.WriteString(mutedStyle.Render(form.MarginPreview(a.submit.vals.Revenue, a.submit.vals.Expenses)))
	side.WriteString("\n\n")
	if a.submit.lastID != "" {
		side.WriteString(greenStyle.Render("✓ Submitted " + a.submit.lastID))
		side.WriteString("\n")
	}
	if a.submit.err != nil {
		if len(a.submit.violations) > 0 {
			side.WriteString(warnStyle.Render("Submission rejected:"))
			fields := make([]string, 0, len(a.submit.violations))
			for f := range a.submit.violations {
				fields = append(fields, f)
			}
			sort.Strings(fields)
			for _, f := range fields {
				side.WriteString("\n")
				side.WriteString(warnStyle.Render("  • " + a.submit.violations[f]))
			}
		} else {
			side.WriteString(warnStyle.Render(describeError(a.submit.err)))
		}
		side.WriteString("\n")
	}
	side.WriteString("\n")
	side.WriteString(mutedStyle.Render("Target:       ") + valueStyle.Render(a.target) + "\n")
	side.WriteString(mutedStyle.Render("Rows loaded:  ") + valueStyle.Render(cli.FormatNumber(int64(len(a.rows)))) + "\n")
	side.WriteString(mutedStyle.Render("[enter] next/submit  [esc] leave form"))

	if a.isCompactLayout() {
		return components.ContentCard("Submit Financial Data", formView, cw) + "\n" +
			components.ContentCard("Status", side.String(), cw)
	}
	halves := components.LayoutRow(cw, 2)
	return components.CardRow([]string{
		components.ContentCard("Submit Financial Data", formView, halves[0]),
		components.ContentCard("Status", side.String(), halves[1]),
	})
}
