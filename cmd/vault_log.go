package cmd

import (
	"fmt"
	"strings"

	"github.com/Storrado98/gastosapp/internal/audit"
	"github.com/Storrado98/gastosapp/internal/ui"
	"github.com/Storrado98/gastosapp/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit      int
	logReverse    bool
	logOperations string
	logAllUsers   bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 0, "show only the most recent N entries")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show the most recent entries first")
	logCmd.Flags().StringVar(&logOperations, "op", "", "comma-separated operations to show (unlock, provision, adopt, save, export, import, reset)")
	logCmd.Flags().BoolVar(&logAllUsers, "all-users", false, "show entries for every user")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logOperations = ""
	logAllUsers = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the audit trail of vault operations",
	Long: `Shows when vaults were unlocked, saved, exported, imported or reset on
this device. No PIN is needed: the audit trail holds no vault contents.

Examples:
  gastos vault log --limit 10 --reverse
  gastos vault log --op export,import`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting log command")

		opts := workflows.LogOptions{
			Operations: logOperations,
			Limit:      logLimit,
			Reverse:    logReverse,
		}
		if !logAllUsers {
			store, err := openStore()
			if err != nil {
				return Logger.ErrorfAndReturn("failed to open vault storage: %w", err)
			}
			userID, err := resolveUser(cmd.Context(), store)
			if err != nil {
				return Logger.ErrorfAndReturn("%w", err)
			}
			opts.User = userID
		}

		result, err := workflows.Log(cmd.Context(), opts)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read audit log: %w", err)
		}

		fmt.Print(formatLogEntries(result.Entries))
		return nil
	},
}

func formatLogEntries(entries []audit.Entry) string {
	if len(entries) == 0 {
		return ui.Info.Sprint("→") + " No audit entries found\n"
	}

	var b strings.Builder
	for _, e := range entries {
		line := fmt.Sprintf("%s  %-9s %s", e.Timestamp, e.Operation, ui.Highlight.Sprint(e.User))
		if e.Record != "" {
			line += " " + e.Record
		}
		if e.OutputPath != "" {
			line += " → " + ui.Path.Sprint(e.OutputPath)
		}
		if e.InputPath != "" {
			line += " ← " + ui.Path.Sprint(e.InputPath)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
