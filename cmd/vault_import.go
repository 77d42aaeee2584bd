package cmd

import (
	"fmt"

	"github.com/Storrado98/gastosapp/internal/ui"
	"github.com/Storrado98/gastosapp/internal/workflows"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace your vault with an exported file",
	Long: `Replaces your vault with the one in a .gastosapp file.

The file must decrypt with your current PIN and belong to the same user.
Otherwise nothing is changed. A successful import discards everything
recorded since the file was exported.

Examples:
  gastos vault import gastosapp_alice_2024-06-01T08-00-00-000Z.gastosapp`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting import command")
		spinner, cleanup := startSpinner("Importing vault...", verbose, debug)
		defer cleanup()

		res, err := unlockVault(cmd, spinner)
		if err != nil {
			return handleError(spinner, err)
		}
		defer res.Session.Lock()

		result, err := workflows.Import(cmd.Context(), res.Session, workflows.ImportOptions{InputPath: args[0]})
		if err != nil {
			Logger.Debugf("Import failed")
			return handleError(spinner, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Imported " + ui.Path.Sprint(args[0]) + "\n\n" +
			fmt.Sprintf("  %d currencies\n  %d accounts\n  %d movements", result.Currencies, result.Accounts, result.Movements)
		return nil
	},
}
