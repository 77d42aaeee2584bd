package cmd

import (
	"github.com/Storrado98/gastosapp/internal/configs"
	logger "github.com/Storrado98/gastosapp/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// PINEnv names the environment variable the CLI reads the PIN from.
const PINEnv = "GASTOS_PIN"

var (
	verbose  bool
	debug    bool
	userFlag string
	pinStdin bool
	Logger   logger.Logger

	// cliConfig is the loaded config.toml, set before every vault command.
	cliConfig *configs.Config

	VaultCmd = &cobra.Command{
		Use:   "vault",
		Short: "Manage your encrypted ledger vault",
		Long: `Unlocks your vault with your PIN and manages the currencies, accounts and
movements stored in it.

The vault is encrypted with a key derived from a 4-digit PIN. There is no
way to recover a forgotten PIN: the only way out is 'gastos vault reset'.

The PIN is read from $GASTOS_PIN, from stdin with --pin-stdin, or from a
hidden terminal prompt.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing vault command with verbose=%t, debug=%t", verbose, debug)

			if err := configs.InitSettings(); err != nil {
				return Logger.ErrorfAndReturn("failed to resolve settings: %w", err)
			}
			config, err := configs.LoadConfig(configs.GastosSettings.ConfigFile())
			if err != nil {
				return Logger.ErrorfAndReturn("failed to load config: %w", err)
			}
			cliConfig = config
			return nil
		},
	}
)

func init() {
	VaultCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	VaultCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	VaultCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "user id (default: last user, then your OS username)")
	VaultCmd.PersistentFlags().BoolVar(&pinStdin, "pin-stdin", false, "read the PIN from the first line of stdin")

	VaultCmd.AddCommand(unlockCmd)
	VaultCmd.AddCommand(currencyCmd)
	VaultCmd.AddCommand(accountCmd)
	VaultCmd.AddCommand(movementCmd)
	VaultCmd.AddCommand(calendarCmd)
	VaultCmd.AddCommand(exportCmd)
	VaultCmd.AddCommand(importCmd)
	VaultCmd.AddCommand(resetCmd)
	VaultCmd.AddCommand(logCmd)
}

// GetVaultCmd returns the VaultCmd for mounting on the root command.
func GetVaultCmd() *cobra.Command {
	return VaultCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	userFlag = ""
	pinStdin = false
	cliConfig = nil
	resetCurrencyCommandState()
	resetAccountCommandState()
	resetMovementCommandState()
	resetCalendarCommandState()
	resetExportCommandState()
	resetResetCommandState()
	resetLogCommandState()
	resetCobraFlagState(VaultCmd)
}

// resetCobraFlagState clears the Changed mark of every flag under root.
func resetCobraFlagState(root *cobra.Command) {
	root.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	root.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
	})
	for _, c := range root.Commands() {
		resetCobraFlagState(c)
	}
}
