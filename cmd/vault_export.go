package cmd

import (
	"fmt"

	"github.com/Storrado98/gastosapp/internal/ui"
	"github.com/Storrado98/gastosapp/internal/workflows"
	"github.com/spf13/cobra"
)

var exportOutputPath string

func init() {
	exportCmd.Flags().StringVarP(&exportOutputPath, "output", "o", "", "output file (default: gastosapp_<user>_<timestamp>.gastosapp)")
}

// resetExportCommandState resets the export command's global state for testing.
func resetExportCommandState() {
	exportOutputPath = ""
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export your encrypted vault to a file",
	Long: `Saves your vault and copies its encrypted form to a .gastosapp file.

The file is encrypted with your current PIN and can only be imported back
into the same user's vault with the same PIN. It never contains plaintext.

Without -o, the file is written to export.directory from config.toml, or the
current directory, as gastosapp_<user>_<timestamp>.gastosapp.

Examples:
  gastos vault export
  gastos vault export -o ~/backups/gastos.gastosapp`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting export command")
		spinner, cleanup := startSpinner("Exporting vault...", verbose, debug)
		defer cleanup()

		res, err := unlockVault(cmd, spinner)
		if err != nil {
			return handleError(spinner, err)
		}
		defer res.Session.Lock()

		result, err := workflows.Export(cmd.Context(), res.Session, workflows.ExportOptions{
			OutputPath: exportOutputPath,
			Directory:  cliConfig.Export.Directory,
		})
		if err != nil {
			return handleError(spinner, err)
		}
		Logger.Infof("Export written to %s", result.OutputPath)

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Exported vault to " + ui.Path.Sprint(result.OutputPath) + "\n\n" +
			fmt.Sprintf("  %d currencies\n  %d accounts\n  %d movements\n\n", result.Currencies, result.Accounts, result.Movements) +
			ui.Info.Sprint("Note:") + " The file is encrypted with your current PIN."
		return nil
	},
}
