package ledger

import (
	"fmt"

	kerrors "github.com/Storrado98/gastosapp/internal/errors"
	"github.com/shopspring/decimal"
)

// MaxProjectionDays bounds the calendar window to roughly ten years.
const MaxProjectionDays = 3660

// ProjectOptions tunes Project.
type ProjectOptions struct {
	// CarryPrior folds movements dated between an account's opening date
	// and the window start into the starting balance. When false, only
	// movements inside the window move the balance.
	CarryPrior bool
}

// CalendarRow holds one account's daily balances.
type CalendarRow struct {
	AccountID   string
	AccountName string
	Currency    string
	Balances    []decimal.Decimal
}

// Calendar is the balance table returned by Project.
type Calendar struct {
	Start Date
	Days  int
	Rows  []CalendarRow
}

// Dates returns the days covered by c in ascending order.
func (c *Calendar) Dates() []Date {
	dates := make([]Date, c.Days)
	for i := range dates {
		dates[i] = c.Start.Add(i)
	}
	return dates
}

// Row returns the row for accountID.
func (c *Calendar) Row(accountID string) (*CalendarRow, bool) {
	for i := range c.Rows {
		if c.Rows[i].AccountID == accountID {
			return &c.Rows[i], true
		}
	}
	return nil, false
}

// Balance returns the balance of accountID on the given day. Days outside
// the window and unknown accounts yield zero.
func (c *Calendar) Balance(accountID string, on Date) decimal.Decimal {
	row, ok := c.Row(accountID)
	if !ok {
		return decimal.Zero
	}
	i := on.Sub(c.Start)
	if i < 0 || i >= len(row.Balances) {
		return decimal.Zero
	}
	return row.Balances[i]
}

// signedAmount is m's effect on accountID: +amount on the credit side,
// -amount on the debit side, zero otherwise.
func signedAmount(m *Movement, accountID string) (decimal.Decimal, bool) {
	switch accountID {
	case m.CreditAccount:
		return m.Amount, true
	case m.DebitAccount:
		return m.Amount.Neg(), true
	}
	return decimal.Zero, false
}

// Project computes days daily balances per account starting at start.
//
// Balances before an account's opening date are zero. From the opening
// date on, the balance starts at the opening balance and carries forward,
// adding each day's movements in the account's projection currency.
// Accounts are returned in stored order.
func Project(v *Vault, start Date, days int, opts ProjectOptions) (*Calendar, error) {
	if days <= 0 {
		return nil, kerrors.Validation("days", "must be greater than zero")
	}
	if days > MaxProjectionDays {
		return nil, kerrors.Validation("days", fmt.Sprintf("must be at most %d", MaxProjectionDays))
	}
	if start.IsZero() {
		return nil, kerrors.Validation("start", "is required")
	}

	end := start.Add(days - 1)
	cal := &Calendar{Start: start, Days: days, Rows: make([]CalendarRow, 0, len(v.Accounts))}

	for i := range v.Accounts {
		account := &v.Accounts[i]
		currency := account.ProjectionCurrency()

		net := make([]decimal.Decimal, days)
		prior := decimal.Zero
		for j := range v.Movements {
			m := &v.Movements[j]
			if m.Currency != currency {
				continue
			}
			delta, ok := signedAmount(m, account.ID)
			if !ok {
				continue
			}
			switch {
			case !m.Date.Before(start) && !m.Date.After(end):
				k := m.Date.Sub(start)
				net[k] = net[k].Add(delta)
			case opts.CarryPrior && m.Date.Before(start):
				if account.OpeningDate == nil || !m.Date.Before(*account.OpeningDate) {
					prior = prior.Add(delta)
				}
			}
		}

		row := CalendarRow{
			AccountID:   account.ID,
			AccountName: account.Name,
			Currency:    currency,
			Balances:    make([]decimal.Decimal, days),
		}

		balance := decimal.Zero
		opened := false
		for k := 0; k < days; k++ {
			on := start.Add(k)
			if account.OpeningDate != nil && on.Before(*account.OpeningDate) {
				row.Balances[k] = decimal.Zero
				continue
			}
			if !opened {
				if account.OpeningBalance != nil {
					balance = *account.OpeningBalance
				}
				balance = balance.Add(prior)
				opened = true
			}
			balance = balance.Add(net[k])
			row.Balances[k] = balance
		}

		cal.Rows = append(cal.Rows, row)
	}

	return cal, nil
}
