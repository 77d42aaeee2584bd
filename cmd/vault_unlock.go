package cmd

import (
	"fmt"

	"github.com/Storrado98/gastosapp/internal/ui"
	"github.com/spf13/cobra"
)

var unlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Unlock your vault, creating it on first use",
	Long: `Unlocks your vault with your PIN and prints a summary of its contents.

The first time a user unlocks, a new vault is created with the default
currencies (ARS, USD, BTC, ETH, DOGE) and encrypted with the PIN given.

Examples:
  # Unlock the vault of the last user
  gastos vault unlock

  # Unlock a specific user's vault with the PIN on stdin
  echo 1234 | gastos vault unlock --user alice --pin-stdin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting unlock command")
		spinner, cleanup := startSpinner("Unlocking vault...", verbose, debug)
		defer cleanup()

		res, err := unlockVault(cmd, spinner)
		if err != nil {
			return handleError(spinner, err)
		}
		session := res.Session
		defer session.Lock()

		v, err := session.Vault(cmd.Context())
		if err != nil {
			return handleError(spinner, err)
		}
		currencies, accounts, movements := v.Counts()

		finalMessage := ui.Success.Sprint("✓") + " Unlocked vault for " + ui.Highlight.Sprint(session.UserID())
		switch {
		case res.Adopted:
			finalMessage += "\n" + ui.Info.Sprint("→") + " Moved it out of the shared legacy slot"
		case res.Provisioned:
			finalMessage = ui.Success.Sprint("✓") + " Created a new vault for " + ui.Highlight.Sprint(session.UserID()) + "\n" +
				ui.Warning.Sprint("⚠") + " There is no way to recover a forgotten PIN"
		}
		finalMessage += fmt.Sprintf("\n\n  %d currencies\n  %d accounts\n  %d movements", currencies, accounts, movements)

		spinner.FinalMSG = finalMessage
		return nil
	},
}
