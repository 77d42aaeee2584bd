package cmd

import (
	"fmt"
	"strings"

	"github.com/Storrado98/gastosapp/internal/ledger"
	"github.com/Storrado98/gastosapp/internal/ui"
	"github.com/spf13/cobra"
)

var (
	currencyIsCrypto bool
	currencyRate     string
)

func init() {
	currencyAddCmd.Flags().BoolVar(&currencyIsCrypto, "crypto", false, "mark the currency as a cryptocurrency")
	currencyAddCmd.Flags().StringVar(&currencyRate, "rate", "", "reference exchange rate")

	currencyCmd.AddCommand(currencyAddCmd)
	currencyCmd.AddCommand(currencyListCmd)
}

// resetCurrencyCommandState resets the currency commands' global state for testing.
func resetCurrencyCommandState() {
	currencyIsCrypto = false
	currencyRate = ""
}

var currencyCmd = &cobra.Command{
	Use:   "currency",
	Short: "Manage the currencies in your vault",
}

var currencyAddCmd = &cobra.Command{
	Use:   "add <code> <name>",
	Short: "Add a currency",
	Long: `Adds a currency to your vault. Codes are stored in upper case and must be
unique.

Examples:
  gastos vault currency add EUR Euro --rate 1100.5
  gastos vault currency add SOL Solana --crypto`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting currency add command")
		spinner, cleanup := startSpinner("Adding currency...", verbose, debug)
		defer cleanup()

		in := ledger.CurrencyInput{
			Code:        args[0],
			DisplayName: args[1],
			IsCrypto:    currencyIsCrypto,
		}
		if currencyRate != "" {
			rate, err := parseAmount("rate", currencyRate)
			if err != nil {
				return handleError(spinner, err)
			}
			in.Rate = &rate
		}

		res, err := unlockVault(cmd, spinner)
		if err != nil {
			return handleError(spinner, err)
		}
		defer res.Session.Lock()

		c, err := res.Session.AddCurrency(cmd.Context(), in)
		if err != nil {
			return handleError(spinner, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Added currency " + ui.Highlight.Sprint(c.Code) + " " + ui.Muted.Sprint(c.DisplayName)
		return nil
	},
}

var currencyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the currencies in your vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting currency list command")
		spinner, cleanup := startSpinner("Unlocking vault...", verbose, debug)
		defer cleanup()

		res, err := unlockVault(cmd, spinner)
		if err != nil {
			return handleError(spinner, err)
		}
		defer res.Session.Lock()

		v, err := res.Session.Vault(cmd.Context())
		if err != nil {
			return handleError(spinner, err)
		}

		spinner.FinalMSG = formatCurrencies(v.Currencies)
		return nil
	},
}

func formatCurrencies(currencies []ledger.Currency) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Currencies (%d):\n", len(currencies)))
	for _, c := range currencies {
		line := fmt.Sprintf("  %-6s %s", c.Code, c.DisplayName)
		if c.IsCrypto {
			line += " " + ui.Muted.Sprint("crypto")
		}
		if c.Rate != nil {
			line += "  rate " + c.Rate.String()
		} else if !c.IsCrypto {
			line += "  rate " + ui.Muted.Sprint("unset")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
