package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// SchemaVersion is the version of the vault document written by this package.
const SchemaVersion = 4

type Meta struct {
	CreatedAt     time.Time `json:"createdAt"`
	SchemaVersion int       `json:"schemaVersion"`
}

type User struct {
	ID            string `json:"id"`
	PINConfigured bool   `json:"pinConfigured"`
}

// Currency is a unit movements and accounts are denominated in.
type Currency struct {
	Code        string           `json:"code"`
	DisplayName string           `json:"displayName"`
	IsCrypto    bool             `json:"isCrypto"`
	Rate        *decimal.Decimal `json:"rate"`
}

// Account is a place money sits in. A multi-currency account keeps one
// balance per sub-currency and has no single Currency.
type Account struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Kind            string           `json:"kind"`
	IsMultiCurrency bool             `json:"isMultiCurrency"`
	IncludesCashBox bool             `json:"includesCashBox"`
	Currency        *string          `json:"currency"`
	SubCurrencies   []string         `json:"subCurrencies"`
	OpeningBalance  *decimal.Decimal `json:"openingBalance"`
	OpeningDate     *Date            `json:"openingDate"`
}

// ProjectionCurrency is the single currency the calendar projects for a.
// Multi-currency accounts project their first sub-currency only.
func (a *Account) ProjectionCurrency() string {
	if a.IsMultiCurrency {
		if len(a.SubCurrencies) == 0 {
			return ""
		}
		return a.SubCurrencies[0]
	}
	if a.Currency == nil {
		return ""
	}
	return *a.Currency
}

// Movement moves Amount from DebitAccount to CreditAccount.
type Movement struct {
	ID            string          `json:"id"`
	Date          Date            `json:"date"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	DebitAccount  string          `json:"debitAccount"`
	CreditAccount string          `json:"creditAccount"`
	Category      string          `json:"category"`
	Tag           string          `json:"tag"`
}

// Vault is the root aggregate persisted for one user.
type Vault struct {
	Meta       Meta       `json:"meta"`
	User       User       `json:"user"`
	Currencies []Currency `json:"currencies"`
	Accounts   []Account  `json:"accounts"`
	Movements  []Movement `json:"movements"`
}

func rate(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// DefaultCurrencies returns the currency set every new vault starts with.
func DefaultCurrencies() []Currency {
	return []Currency{
		{Code: "ARS", DisplayName: "Pesos", IsCrypto: false, Rate: rate(1)},
		{Code: "USD", DisplayName: "Dólares", IsCrypto: false},
		{Code: "BTC", DisplayName: "Bitcoin", IsCrypto: true},
		{Code: "ETH", DisplayName: "Ethereum", IsCrypto: true},
		{Code: "DOGE", DisplayName: "Dogecoin", IsCrypto: true},
	}
}

// NewVault returns the vault provisioned the first time userID unlocks.
func NewVault(userID string, now time.Time) *Vault {
	return &Vault{
		Meta:       Meta{CreatedAt: now.UTC(), SchemaVersion: SchemaVersion},
		User:       User{ID: userID, PINConfigured: true},
		Currencies: DefaultCurrencies(),
		Accounts:   []Account{},
		Movements:  []Movement{},
	}
}

// Currency returns the currency with the given code.
func (v *Vault) Currency(code string) (*Currency, bool) {
	for i := range v.Currencies {
		if v.Currencies[i].Code == code {
			return &v.Currencies[i], true
		}
	}
	return nil, false
}

// Account returns the account with the given id.
func (v *Vault) Account(id string) (*Account, bool) {
	for i := range v.Accounts {
		if v.Accounts[i].ID == id {
			return &v.Accounts[i], true
		}
	}
	return nil, false
}

// AccountByName returns the first account whose name is name.
func (v *Vault) AccountByName(name string) (*Account, bool) {
	for i := range v.Accounts {
		if v.Accounts[i].Name == name {
			return &v.Accounts[i], true
		}
	}
	return nil, false
}

// RecentMovements returns up to n movements, newest first.
func (v *Vault) RecentMovements(n int) []Movement {
	if n <= 0 || n > len(v.Movements) {
		n = len(v.Movements)
	}
	out := make([]Movement, 0, n)
	for i := len(v.Movements) - 1; i >= len(v.Movements)-n; i-- {
		out = append(out, v.Movements[i])
	}
	return out
}

// Clone returns a deep copy of v sharing no slices or pointers with it.
func (v *Vault) Clone() *Vault {
	c := *v

	c.Currencies = make([]Currency, len(v.Currencies))
	for i, cur := range v.Currencies {
		cur.Rate = cloneDecimal(cur.Rate)
		c.Currencies[i] = cur
	}

	c.Accounts = make([]Account, len(v.Accounts))
	for i, a := range v.Accounts {
		if a.Currency != nil {
			code := *a.Currency
			a.Currency = &code
		}
		a.SubCurrencies = append([]string{}, a.SubCurrencies...)
		a.OpeningBalance = cloneDecimal(a.OpeningBalance)
		if a.OpeningDate != nil {
			d := *a.OpeningDate
			a.OpeningDate = &d
		}
		c.Accounts[i] = a
	}

	c.Movements = append([]Movement{}, v.Movements...)
	return &c
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

// Counts returns the number of currencies, accounts and movements.
func (v *Vault) Counts() (currencies, accounts, movements int) {
	return len(v.Currencies), len(v.Accounts), len(v.Movements)
}
