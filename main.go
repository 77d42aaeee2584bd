package main

import (
	"fmt"
	"os"

	"github.com/Storrado98/gastosapp/cmd"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gastos",
	Short: "gastos - an encrypted personal ledger for your terminal.",
	Long: `gastos keeps your currencies, accounts and movements in a vault encrypted
with your PIN, on this device only.

Usage:
  gastos <command> [flags]

Available Commands:
  vault     Unlock your vault and manage its contents
  config    Manage configuration

Run 'gastos help <command>' for more details on a specific command.
`,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to gastos! Run 'gastos --help' to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.GetVaultCmd())
	rootCmd.AddCommand(cmd.GetConfigCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
