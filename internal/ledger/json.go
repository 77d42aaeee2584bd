package ledger

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Amounts are JSON numbers in the vault document. decimal.Decimal encodes
// as a quoted string unless the package-wide MarshalJSONWithoutQuotes is
// set, so each type carrying amounts encodes them itself. Decoding needs
// nothing: decimal.Decimal accepts numbers and strings.

func jsonNumber(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func jsonNumberPtr(d *decimal.Decimal) *json.Number {
	if d == nil {
		return nil
	}
	n := jsonNumber(*d)
	return &n
}

func (c Currency) MarshalJSON() ([]byte, error) {
	type plain Currency
	return json.Marshal(struct {
		plain
		Rate *json.Number `json:"rate"`
	}{plain(c), jsonNumberPtr(c.Rate)})
}

func (a Account) MarshalJSON() ([]byte, error) {
	type plain Account
	return json.Marshal(struct {
		plain
		OpeningBalance *json.Number `json:"openingBalance"`
	}{plain(a), jsonNumberPtr(a.OpeningBalance)})
}

func (m Movement) MarshalJSON() ([]byte, error) {
	type plain Movement
	return json.Marshal(struct {
		plain
		Amount json.Number `json:"amount"`
	}{plain(m), jsonNumber(m.Amount)})
}

var (
	_ json.Marshaler = Currency{}
	_ json.Marshaler = Account{}
	_ json.Marshaler = Movement{}
)
