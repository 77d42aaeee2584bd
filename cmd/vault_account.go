package cmd

import (
	"fmt"
	"strings"

	"github.com/Storrado98/gastosapp/internal/ledger"
	"github.com/Storrado98/gastosapp/internal/ui"
	"github.com/spf13/cobra"
)

var (
	accountKind           string
	accountCurrency       string
	accountSubCurrencies  string
	accountCashBox        bool
	accountOpeningBalance string
	accountOpeningDate    string
)

func init() {
	accountAddCmd.Flags().StringVar(&accountKind, "kind", "", "free-form account type, e.g. cash, bank, broker")
	accountAddCmd.Flags().StringVarP(&accountCurrency, "currency", "c", "", "currency of a single-currency account")
	accountAddCmd.Flags().StringVar(&accountSubCurrencies, "sub-currencies", "", "comma-separated currencies of a multi-currency account")
	accountAddCmd.Flags().BoolVar(&accountCashBox, "cash-box", false, "include the account in the cash box")
	accountAddCmd.Flags().StringVar(&accountOpeningBalance, "opening-balance", "", "balance on the opening date")
	accountAddCmd.Flags().StringVar(&accountOpeningDate, "opening-date", "", "opening date (YYYY-MM-DD), required with --opening-balance")

	accountCmd.AddCommand(accountAddCmd)
	accountCmd.AddCommand(accountListCmd)
}

// resetAccountCommandState resets the account commands' global state for testing.
func resetAccountCommandState() {
	accountKind = ""
	accountCurrency = ""
	accountSubCurrencies = ""
	accountCashBox = false
	accountOpeningBalance = ""
	accountOpeningDate = ""
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the accounts in your vault",
}

var accountAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an account",
	Long: `Adds an account to your vault. An account holds a single currency
(--currency) or several (--sub-currencies). The balance calendar projects a
multi-currency account in its first sub-currency.

Examples:
  gastos vault account add Caja --currency ARS --cash-box --opening-balance 1000 --opening-date 2024-01-01
  gastos vault account add Broker --kind broker --sub-currencies USD,BTC`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting account add command")
		spinner, cleanup := startSpinner("Adding account...", verbose, debug)
		defer cleanup()

		in := ledger.AccountInput{
			Name:            args[0],
			Kind:            accountKind,
			IncludesCashBox: accountCashBox,
			Currency:        accountCurrency,
		}
		if subs := splitList(accountSubCurrencies); len(subs) > 0 {
			in.IsMultiCurrency = true
			in.SubCurrencies = subs
			in.Currency = ""
		}
		if accountOpeningBalance != "" {
			balance, err := parseAmount("openingBalance", accountOpeningBalance)
			if err != nil {
				return handleError(spinner, err)
			}
			in.OpeningBalance = &balance
		}
		if accountOpeningDate != "" {
			date, err := parseDate("openingDate", accountOpeningDate)
			if err != nil {
				return handleError(spinner, err)
			}
			in.OpeningDate = &date
		}

		res, err := unlockVault(cmd, spinner)
		if err != nil {
			return handleError(spinner, err)
		}
		defer res.Session.Lock()

		a, err := res.Session.AddAccount(cmd.Context(), in)
		if err != nil {
			return handleError(spinner, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Added account " + ui.Highlight.Sprint(a.Name) + " " + ui.Muted.Sprint(a.ID)
		return nil
	},
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the accounts in your vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting account list command")
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

		spinner.FinalMSG = formatAccounts(v.Accounts)
		return nil
	},
}

func formatAccounts(accounts []ledger.Account) string {
	if len(accounts) == 0 {
		return ui.Info.Sprint("→") + " No accounts yet. Add one with " + ui.Code.Sprint("gastos vault account add")
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Accounts (%d):\n", len(accounts)))
	for _, a := range accounts {
		currencies := strings.Join(a.SubCurrencies, ",")
		if a.Currency != nil {
			currencies = *a.Currency
		}
		line := fmt.Sprintf("  %s  %s [%s]", ui.Highlight.Sprint(a.Name), ui.Muted.Sprint(a.ID), currencies)
		if a.Kind != "" {
			line += " " + a.Kind
		}
		if a.IncludesCashBox {
			line += " " + ui.Info.Sprint("cash box")
		}
		if a.OpeningDate != nil {
			balance := "0"
			if a.OpeningBalance != nil {
				balance = a.OpeningBalance.String()
			}
			line += fmt.Sprintf("  opened %s with %s", a.OpeningDate, balance)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
