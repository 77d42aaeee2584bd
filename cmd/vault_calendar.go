package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Storrado98/gastosapp/internal/ledger"
	"github.com/Storrado98/gastosapp/internal/ui"
	"github.com/spf13/cobra"
)

var (
	calendarStart      string
	calendarDays       int
	calendarCarryPrior bool
)

func init() {
	calendarCmd.Flags().StringVar(&calendarStart, "start", "", "first day (YYYY-MM-DD, default: today)")
	calendarCmd.Flags().IntVar(&calendarDays, "days", 0, "number of days (default: calendar.days from config.toml)")
	calendarCmd.Flags().BoolVar(&calendarCarryPrior, "carry-prior", false, "include movements dated before --start in the starting balance")
}

// resetCalendarCommandState resets the calendar command's global state for testing.
func resetCalendarCommandState() {
	calendarStart = ""
	calendarDays = 0
	calendarCarryPrior = false
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show daily account balances",
	Long: `Projects the daily balance of every account over a window of days.

Each account is projected in its own currency, or in its first sub-currency
for multi-currency accounts. Days before an account's opening date show 0.

By default only movements inside the window move the balances. Use
--carry-prior (or calendar.carry_prior in config.toml) to start each account
from its opening balance plus every movement before the window.

Examples:
  gastos vault calendar
  gastos vault calendar --start 2024-01-01 --days 14 --carry-prior`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting calendar command")
		spinner, cleanup := startSpinner("Projecting balances...", verbose, debug)
		defer cleanup()

		start, err := parseDate("start", calendarStart)
		if err != nil {
			return handleError(spinner, err)
		}
		if start.IsZero() {
			start = ledger.Today()
		}

		days := cliConfig.Calendar.Days
		if cmd.Flags().Changed("days") {
			days = calendarDays
		}
		opts := ledger.ProjectOptions{CarryPrior: cliConfig.Calendar.CarryPrior}
		if cmd.Flags().Changed("carry-prior") {
			opts.CarryPrior = calendarCarryPrior
		}
		Logger.Debugf("Projecting %d days from %s, carry prior: %t", days, start, opts.CarryPrior)

		res, err := unlockVault(cmd, spinner)
		if err != nil {
			return handleError(spinner, err)
		}
		defer res.Session.Lock()

		cal, err := res.Session.Project(cmd.Context(), start, days, opts)
		if err != nil {
			return handleError(spinner, err)
		}

		spinner.FinalMSG = formatCalendar(cal)
		return nil
	},
}

// formatCalendar renders one line per day and one column per account.
func formatCalendar(cal *ledger.Calendar) string {
	if len(cal.Rows) == 0 {
		return ui.Info.Sprint("→") + " No accounts yet. Add one with " + ui.Code.Sprint("gastos vault account add")
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := []string{"Date"}
	for _, row := range cal.Rows {
		header = append(header, fmt.Sprintf("%s (%s)", row.AccountName, row.Currency))
	}
	fmt.Fprintln(w, strings.Join(header, "\t")+"\t")

	for i, day := range cal.Dates() {
		cells := []string{day.String()}
		for _, row := range cal.Rows {
			cells = append(cells, row.Balances[i].String())
		}
		fmt.Fprintln(w, strings.Join(cells, "\t")+"\t")
	}
	w.Flush()

	return b.String()
}
