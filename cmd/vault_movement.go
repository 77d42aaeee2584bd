package cmd

import (
	"fmt"
	"strings"

	"github.com/Storrado98/gastosapp/internal/ledger"
	"github.com/Storrado98/gastosapp/internal/ui"
	"github.com/spf13/cobra"
)

// defaultMovementListLimit matches the number of recent movements the
// dashboard shows.
const defaultMovementListLimit = 20

var (
	movementDate        string
	movementDescription string
	movementAmount      string
	movementCurrency    string
	movementDebit       string
	movementCredit      string
	movementCategory    string
	movementTag         string
	movementListLimit   int
)

func init() {
	movementAddCmd.Flags().StringVar(&movementDate, "date", "", "movement date (YYYY-MM-DD, default: today)")
	movementAddCmd.Flags().StringVar(&movementDescription, "desc", "", "description")
	movementAddCmd.Flags().StringVar(&movementAmount, "amount", "", "positive amount")
	movementAddCmd.Flags().StringVarP(&movementCurrency, "currency", "c", "", "currency code")
	movementAddCmd.Flags().StringVar(&movementDebit, "debit", "", "debit account id or name")
	movementAddCmd.Flags().StringVar(&movementCredit, "credit", "", "credit account id or name")
	movementAddCmd.Flags().StringVar(&movementCategory, "category", "", "category")
	movementAddCmd.Flags().StringVar(&movementTag, "tag", "", "tag")

	movementListCmd.Flags().IntVarP(&movementListLimit, "limit", "n", defaultMovementListLimit, "number of recent movements to show (0 for all)")

	movementCmd.AddCommand(movementAddCmd)
	movementCmd.AddCommand(movementListCmd)
}

// resetMovementCommandState resets the movement commands' global state for testing.
func resetMovementCommandState() {
	movementDate = ""
	movementDescription = ""
	movementAmount = ""
	movementCurrency = ""
	movementDebit = ""
	movementCredit = ""
	movementCategory = ""
	movementTag = ""
	movementListLimit = defaultMovementListLimit
}

var movementCmd = &cobra.Command{
	Use:   "movement",
	Short: "Record and list movements",
}

var movementAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a movement between two accounts",
	Long: `Records a movement of an amount from the debit account to the credit
account. In the balance calendar the credit account gains the amount and the
debit account loses it.

Examples:
  gastos vault movement add --desc Sueldo --amount 200 --currency ARS --debit Banco --credit Caja
  gastos vault movement add --date 2024-01-03 --desc Compra --amount 0.01 -c BTC --debit Caja --credit Broker --category inversion`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting movement add command")
		spinner, cleanup := startSpinner("Recording movement...", verbose, debug)
		defer cleanup()

		date, err := parseDate("date", movementDate)
		if err != nil {
			return handleError(spinner, err)
		}
		amount, err := parseAmount("amount", movementAmount)
		if err != nil {
			return handleError(spinner, err)
		}

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

		m, err := session.AddMovement(cmd.Context(), ledger.MovementInput{
			Date:          date,
			Description:   movementDescription,
			Amount:        amount,
			Currency:      movementCurrency,
			DebitAccount:  resolveAccount(v, movementDebit),
			CreditAccount: resolveAccount(v, movementCredit),
			Category:      movementCategory,
			Tag:           movementTag,
		})
		if err != nil {
			return handleError(spinner, err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Recorded " + ui.Highlight.Sprint(m.Description) +
			" " + ui.Amount(m.Amount, m.Currency) + " on " + m.Date.String()
		return nil
	},
}

var movementListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent movements, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting movement list command")
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

		spinner.FinalMSG = formatMovements(v, v.RecentMovements(movementListLimit))
		return nil
	},
}

func formatMovements(v *ledger.Vault, movements []ledger.Movement) string {
	if len(movements) == 0 {
		return ui.Info.Sprint("→") + " No movements yet. Record one with " + ui.Code.Sprint("gastos vault movement add")
	}

	accountName := func(id string) string {
		if a, ok := v.Account(id); ok {
			return a.Name
		}
		return id
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Movements (%d of %d):\n", len(movements), len(v.Movements)))
	for _, m := range movements {
		line := fmt.Sprintf("  %s  %s  %s  %s → %s", m.Date, m.Description, ui.Amount(m.Amount, m.Currency),
			accountName(m.DebitAccount), accountName(m.CreditAccount))
		var labels []string
		if m.Category != "" {
			labels = append(labels, m.Category)
		}
		if m.Tag != "" {
			labels = append(labels, "#"+m.Tag)
		}
		if len(labels) > 0 {
			line += " " + ui.Muted.Sprint(strings.Join(labels, " "))
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
