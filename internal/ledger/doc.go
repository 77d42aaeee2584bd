// Package ledger holds the in-memory financial ledger stored inside a vault:
// currencies, accounts and movements, the validation rules applied when
// they are added, and the balance calendar projected over them.
//
// A Vault is the root aggregate. It is owned by exactly one user id and is
// always persisted as a whole; this package never touches storage. Callers
// mutate a Vault through AddCurrency, AddAccount and AddMovement and must
// save it afterwards.
//
// # Amounts
//
// Amounts, rates and balances are shopspring/decimal values. They are
// written to the vault document as JSON numbers.
//
// # Calendar
//
// Project computes one balance per account per day:
//
//	cal, err := ledger.Project(v, ledger.MustParseDate("2024-01-01"), 30, ledger.ProjectOptions{})
//	for _, row := range cal.Rows {
//	    fmt.Println(row.AccountName, row.Balances)
//	}
package ledger
