package ledger

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountsEncodeAsNumbers(t *testing.T) {
	v := newTestVault(t)
	caja, err := v.AddAccount(AccountInput{
		Name:           "Caja",
		Currency:       "ARS",
		OpeningBalance: decPtr("1000.50"),
		OpeningDate:    datePtr("2024-01-01"),
	})
	require.NoError(t, err)
	banco, err := v.AddAccount(AccountInput{Name: "Banco", Currency: "ARS"})
	require.NoError(t, err)
	_, err = v.AddMovement(MovementInput{
		Date:          MustParseDate("2024-01-03"),
		Description:   "Sueldo",
		Amount:        decimal.RequireFromString("200.25"),
		Currency:      "ARS",
		DebitAccount:  banco.ID,
		CreditAccount: caja.ID,
	})
	require.NoError(t, err)

	data, err := json.Marshal(v)
	require.NoError(t, err)
	doc := string(data)

	assert.False(t, decimal.MarshalJSONWithoutQuotes, "encoding must not depend on the package-wide decimal setting")
	assert.Contains(t, doc, `"amount":200.25`)
	assert.Contains(t, doc, `"openingBalance":1000.5`)
	assert.Contains(t, doc, `"openingBalance":null`)
	assert.Contains(t, doc, `"rate":1`)
	assert.Contains(t, doc, `"rate":null`)
	assert.Contains(t, doc, `"date":"2024-01-03"`)

	var decoded Vault
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Movements, 1)
	assert.True(t, decoded.Movements[0].Amount.Equal(decimal.RequireFromString("200.25")))
	require.NotNil(t, decoded.Accounts[0].OpeningBalance)
	assert.True(t, decoded.Accounts[0].OpeningBalance.Equal(decimal.RequireFromString("1000.5")))
	assert.Nil(t, decoded.Accounts[1].OpeningBalance)
}
