package cmd

import (
	"github.com/Storrado98/gastosapp/internal/ui"
	"github.com/Storrado98/gastosapp/internal/workflows"
	"github.com/spf13/cobra"
)

var resetConfirmed bool

func init() {
	resetCmd.Flags().BoolVar(&resetConfirmed, "yes", false, "confirm that the vault should be deleted")
}

// resetResetCommandState resets the reset command's global state for testing.
func resetResetCommandState() {
	resetConfirmed = false
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete your vault",
	Long: `Deletes your vault. This cannot be undone and is the only way out of a
forgotten PIN. The next unlock creates a new, empty vault.

No PIN is needed. Pass --yes to confirm.

Examples:
  gastos vault reset --user alice --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting reset command")
		spinner, cleanup := startSpinner("Deleting vault...", verbose, debug)
		defer cleanup()

		store, err := openStore()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open vault storage: %w", err)
		}
		userID, err := resolveUser(cmd.Context(), store)
		if err != nil {
			return Logger.ErrorfAndReturn("%w", err)
		}

		if !resetConfirmed {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " This deletes the vault of " + ui.Highlight.Sprint(userID) + " and cannot be undone\n" +
				ui.Info.Sprint("→") + " Run again with " + ui.Flag.Sprint("--yes") + " to confirm"
			return nil
		}

		exists, err := store.Exists(cmd.Context(), userID)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to check vault: %w", err)
		}
		if !exists {
			spinner.FinalMSG = ui.Info.Sprint("→") + " No vault found for " + ui.Highlight.Sprint(userID)
			return nil
		}

		if err := workflows.Reset(cmd.Context(), store, userID); err != nil {
			return handleError(spinner, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Deleted the vault of " + ui.Highlight.Sprint(userID)
		return nil
	},
}
