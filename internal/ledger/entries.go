package ledger

import (
	"strings"

	kerrors "github.com/Storrado98/gastosapp/internal/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CurrencyInput is the form data for AddCurrency.
type CurrencyInput struct {
	Code        string
	DisplayName string
	IsCrypto    bool
	Rate        *decimal.Decimal
}

// AccountInput is the form data for AddAccount.
type AccountInput struct {
	Name            string
	Kind            string
	IsMultiCurrency bool
	IncludesCashBox bool
	Currency        string
	SubCurrencies   []string
	OpeningBalance  *decimal.Decimal
	OpeningDate     *Date
}

// MovementInput is the form data for AddMovement. A zero Date means today.
type MovementInput struct {
	Date          Date
	Description   string
	Amount        decimal.Decimal
	Currency      string
	DebitAccount  string
	CreditAccount string
	Category      string
	Tag           string
}

func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// AddCurrency validates in and appends a new currency.
func (v *Vault) AddCurrency(in CurrencyInput) (*Currency, error) {
	code := normalizeCode(in.Code)
	name := strings.TrimSpace(in.DisplayName)

	if code == "" {
		return nil, kerrors.Validation("code", "is required")
	}
	if name == "" {
		return nil, kerrors.Validation("displayName", "is required")
	}
	if _, exists := v.Currency(code); exists {
		return nil, kerrors.Validation("code", "currency "+code+" already exists")
	}
	if in.Rate != nil && !in.Rate.IsPositive() {
		return nil, kerrors.Validation("rate", "must be greater than zero when set")
	}

	v.Currencies = append(v.Currencies, Currency{
		Code:        code,
		DisplayName: name,
		IsCrypto:    in.IsCrypto,
		Rate:        in.Rate,
	})
	return &v.Currencies[len(v.Currencies)-1], nil
}

// AddAccount validates in and appends a new account with a fresh id.
func (v *Vault) AddAccount(in AccountInput) (*Account, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, kerrors.Validation("name", "is required")
	}

	account := Account{
		ID:              newID("cta"),
		Name:            name,
		Kind:            strings.TrimSpace(in.Kind),
		IsMultiCurrency: in.IsMultiCurrency,
		IncludesCashBox: in.IncludesCashBox,
		SubCurrencies:   []string{},
		OpeningBalance:  in.OpeningBalance,
		OpeningDate:     in.OpeningDate,
	}

	if in.IsMultiCurrency {
		seen := make(map[string]bool)
		for _, raw := range in.SubCurrencies {
			code := normalizeCode(raw)
			if code == "" || seen[code] {
				continue
			}
			if _, ok := v.Currency(code); !ok {
				return nil, kerrors.Validation("subCurrencies", "unknown currency "+code)
			}
			seen[code] = true
			account.SubCurrencies = append(account.SubCurrencies, code)
		}
		if len(account.SubCurrencies) == 0 {
			return nil, kerrors.Validation("subCurrencies", "a multi-currency account needs at least one sub-currency")
		}
	} else {
		code := normalizeCode(in.Currency)
		if code == "" {
			return nil, kerrors.Validation("currency", "is required")
		}
		if _, ok := v.Currency(code); !ok {
			return nil, kerrors.Validation("currency", "unknown currency "+code)
		}
		account.Currency = &code
	}

	if in.OpeningBalance != nil && in.OpeningDate == nil {
		return nil, kerrors.Validation("openingDate", "is required when an opening balance is set")
	}

	v.Accounts = append(v.Accounts, account)
	return &v.Accounts[len(v.Accounts)-1], nil
}

// AddMovement validates in and appends a new movement with a fresh id.
func (v *Vault) AddMovement(in MovementInput) (*Movement, error) {
	description := strings.TrimSpace(in.Description)
	currency := normalizeCode(in.Currency)

	if description == "" {
		return nil, kerrors.Validation("description", "is required")
	}
	if !in.Amount.IsPositive() {
		return nil, kerrors.Validation("amount", "must be greater than zero")
	}
	if currency == "" {
		return nil, kerrors.Validation("currency", "is required")
	}
	if _, ok := v.Currency(currency); !ok {
		return nil, kerrors.Validation("currency", "unknown currency "+currency)
	}
	if in.DebitAccount == "" || in.CreditAccount == "" {
		return nil, kerrors.Validation("accounts", "select both a debit and a credit account")
	}
	if in.DebitAccount == in.CreditAccount {
		return nil, kerrors.Validation("accounts", "debit and credit accounts must differ")
	}
	if _, ok := v.Account(in.DebitAccount); !ok {
		return nil, kerrors.Validation("debitAccount", "unknown account "+in.DebitAccount)
	}
	if _, ok := v.Account(in.CreditAccount); !ok {
		return nil, kerrors.Validation("creditAccount", "unknown account "+in.CreditAccount)
	}

	date := in.Date
	if date.IsZero() {
		date = Today()
	}

	v.Movements = append(v.Movements, Movement{
		ID:            newID("mov"),
		Date:          date,
		Description:   description,
		Amount:        in.Amount,
		Currency:      currency,
		DebitAccount:  in.DebitAccount,
		CreditAccount: in.CreditAccount,
		Category:      strings.TrimSpace(in.Category),
		Tag:           strings.TrimSpace(in.Tag),
	})
	return &v.Movements[len(v.Movements)-1], nil
}

// Validate checks the invariants of a whole vault, as needed before
// accepting one from outside (an imported file).
func (v *Vault) Validate() error {
	if v.User.ID == "" {
		return kerrors.Validation("user.id", "is required")
	}

	codes := make(map[string]bool)
	for _, c := range v.Currencies {
		if c.Code == "" {
			return kerrors.Validation("currencies", "currency without code")
		}
		if codes[c.Code] {
			return kerrors.Validation("currencies", "duplicate currency "+c.Code)
		}
		codes[c.Code] = true
	}

	ids := make(map[string]bool)
	for _, a := range v.Accounts {
		if a.ID == "" || ids[a.ID] {
			return kerrors.Validation("accounts", "missing or duplicate account id "+a.ID)
		}
		ids[a.ID] = true

		if a.IsMultiCurrency {
			if a.Currency != nil || len(a.SubCurrencies) == 0 {
				return kerrors.Validation("accounts", "multi-currency account "+a.Name+" needs sub-currencies and no currency")
			}
		} else {
			if a.Currency == nil || !codes[*a.Currency] || len(a.SubCurrencies) > 0 {
				return kerrors.Validation("accounts", "account "+a.Name+" needs exactly one known currency")
			}
		}
		if a.OpeningBalance != nil && a.OpeningDate == nil {
			return kerrors.Validation("accounts", "account "+a.Name+" has an opening balance without a date")
		}
	}

	for _, m := range v.Movements {
		if !m.Amount.IsPositive() {
			return kerrors.Validation("movements", "movement "+m.ID+" has a non-positive amount")
		}
		if m.DebitAccount == m.CreditAccount {
			return kerrors.Validation("movements", "movement "+m.ID+" debits and credits the same account")
		}
	}

	return nil
}
