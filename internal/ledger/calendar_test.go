package ledger

import (
	"testing"

	kerrors "github.com/Storrado98/gastosapp/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func balanceStrings(balances []decimal.Decimal) []string {
	out := make([]string, len(balances))
	for i, b := range balances {
		out[i] = b.String()
	}
	return out
}

// calendarFixture: "Caja" opens with 1000 ARS on 2024-01-01 and receives
// 200 ARS from "Banco" on 2024-01-03.
func calendarFixture(t *testing.T) (v *Vault, cajaID, bancoID string) {
	t.Helper()
	v = newTestVault(t)

	caja, err := v.AddAccount(AccountInput{
		Name:           "Caja",
		Currency:       "ARS",
		OpeningBalance: decPtr("1000"),
		OpeningDate:    datePtr("2024-01-01"),
	})
	require.NoError(t, err)
	cajaID = caja.ID

	banco, err := v.AddAccount(AccountInput{Name: "Banco", Currency: "ARS"})
	require.NoError(t, err)
	bancoID = banco.ID

	_, err = v.AddMovement(MovementInput{
		Date:          MustParseDate("2024-01-03"),
		Description:   "Extracción",
		Amount:        dec("200"),
		Currency:      "ARS",
		DebitAccount:  bancoID,
		CreditAccount: cajaID,
	})
	require.NoError(t, err)
	return v, cajaID, bancoID
}

func TestProject_OpeningBalanceScenario(t *testing.T) {
	v, cajaID, bancoID := calendarFixture(t)

	cal, err := Project(v, MustParseDate("2024-01-01"), 5, ProjectOptions{})
	require.NoError(t, err)
	require.Len(t, cal.Rows, 2)

	caja := cal.Rows[0]
	assert.Equal(t, cajaID, caja.AccountID)
	assert.Equal(t, "ARS", caja.Currency)
	assert.Equal(t, []string{"1000", "1000", "1200", "1200", "1200"}, balanceStrings(caja.Balances))

	banco := cal.Rows[1]
	assert.Equal(t, bancoID, banco.AccountID)
	assert.Equal(t, []string{"0", "0", "-200", "-200", "-200"}, balanceStrings(banco.Balances))

	dates := cal.Dates()
	require.Len(t, dates, 5)
	assert.Equal(t, "2024-01-01", dates[0].String())
	assert.Equal(t, "2024-01-05", dates[4].String())
}

func TestProject_BeforeOpeningIsZero(t *testing.T) {
	v, cajaID, _ := calendarFixture(t)

	cal, err := Project(v, MustParseDate("2023-12-31"), 4, ProjectOptions{})
	require.NoError(t, err)

	row, ok := cal.Row(cajaID)
	require.True(t, ok)
	assert.Equal(t, []string{"0", "1000", "1000", "1200"}, balanceStrings(row.Balances))
	assert.True(t, cal.Balance(cajaID, MustParseDate("2023-12-31")).IsZero())
	assert.True(t, cal.Balance(cajaID, MustParseDate("2024-01-03")).Equal(dec("1200")))
}

func TestProject_PriorMovementsIgnoredByDefault(t *testing.T) {
	v, cajaID, _ := calendarFixture(t)

	cal, err := Project(v, MustParseDate("2024-01-04"), 2, ProjectOptions{})
	require.NoError(t, err)

	row, _ := cal.Row(cajaID)
	assert.Equal(t, []string{"1000", "1000"}, balanceStrings(row.Balances))
}

func TestProject_CarryPrior(t *testing.T) {
	v, cajaID, bancoID := calendarFixture(t)

	cal, err := Project(v, MustParseDate("2024-01-04"), 2, ProjectOptions{CarryPrior: true})
	require.NoError(t, err)

	caja, _ := cal.Row(cajaID)
	assert.Equal(t, []string{"1200", "1200"}, balanceStrings(caja.Balances))

	banco, _ := cal.Row(bancoID)
	assert.Equal(t, []string{"-200", "-200"}, balanceStrings(banco.Balances))
}

func TestProject_CarryPriorSkipsMovementsBeforeOpening(t *testing.T) {
	v, cajaID, bancoID := calendarFixture(t)
	_, err := v.AddMovement(MovementInput{
		Date:          MustParseDate("2023-12-20"),
		Description:   "Antes de abrir",
		Amount:        dec("50"),
		Currency:      "ARS",
		DebitAccount:  bancoID,
		CreditAccount: cajaID,
	})
	require.NoError(t, err)

	cal, err := Project(v, MustParseDate("2024-01-10"), 1, ProjectOptions{CarryPrior: true})
	require.NoError(t, err)

	assert.True(t, cal.Balance(cajaID, MustParseDate("2024-01-10")).Equal(dec("1200")))
	assert.True(t, cal.Balance(bancoID, MustParseDate("2024-01-10")).Equal(dec("-250")))
}

func TestProject_CurrencyMismatchIgnored(t *testing.T) {
	v, cajaID, bancoID := calendarFixture(t)
	_, err := v.AddMovement(MovementInput{
		Date:          MustParseDate("2024-01-02"),
		Description:   "Dólares",
		Amount:        dec("10"),
		Currency:      "USD",
		DebitAccount:  bancoID,
		CreditAccount: cajaID,
	})
	require.NoError(t, err)

	cal, err := Project(v, MustParseDate("2024-01-01"), 3, ProjectOptions{})
	require.NoError(t, err)

	row, _ := cal.Row(cajaID)
	assert.Equal(t, []string{"1000", "1000", "1200"}, balanceStrings(row.Balances))
}

func TestProject_MultiCurrencyUsesFirstSubCurrency(t *testing.T) {
	v := newTestVault(t)
	broker, err := v.AddAccount(AccountInput{Name: "Broker", IsMultiCurrency: true, SubCurrencies: []string{"USD", "BTC"}})
	require.NoError(t, err)
	brokerID := broker.ID
	wallet, err := v.AddAccount(AccountInput{Name: "Wallet", Currency: "BTC"})
	require.NoError(t, err)
	walletID := wallet.ID

	for _, in := range []MovementInput{
		{Date: MustParseDate("2024-05-01"), Description: "Depósito", Amount: dec("100"), Currency: "USD", DebitAccount: walletID, CreditAccount: brokerID},
		{Date: MustParseDate("2024-05-01"), Description: "Compra", Amount: dec("0.5"), Currency: "BTC", DebitAccount: walletID, CreditAccount: brokerID},
	} {
		_, err := v.AddMovement(in)
		require.NoError(t, err)
	}

	cal, err := Project(v, MustParseDate("2024-05-01"), 2, ProjectOptions{})
	require.NoError(t, err)

	row, _ := cal.Row(brokerID)
	assert.Equal(t, "USD", row.Currency)
	assert.Equal(t, []string{"100", "100"}, balanceStrings(row.Balances))

	walletRow, _ := cal.Row(walletID)
	assert.Equal(t, []string{"-0.5", "-0.5"}, balanceStrings(walletRow.Balances))
}

func TestProject_InvalidWindow(t *testing.T) {
	v := newTestVault(t)

	_, err := Project(v, MustParseDate("2024-01-01"), 0, ProjectOptions{})
	assert.ErrorIs(t, err, kerrors.ErrValidation)

	_, err = Project(v, Date{}, 3, ProjectOptions{})
	assert.ErrorIs(t, err, kerrors.ErrValidation)

	_, err = Project(v, MustParseDate("2024-01-01"), MaxProjectionDays+1, ProjectOptions{})
	var verr *kerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "days", verr.Field)

	cal, err := Project(v, MustParseDate("2024-01-01"), MaxProjectionDays, ProjectOptions{})
	require.NoError(t, err)
	assert.Equal(t, MaxProjectionDays, cal.Days)
}

func TestCalendarBalanceOutsideWindow(t *testing.T) {
	v, cajaID, _ := calendarFixture(t)
	cal, err := Project(v, MustParseDate("2024-01-01"), 2, ProjectOptions{})
	require.NoError(t, err)

	assert.True(t, cal.Balance(cajaID, MustParseDate("2024-02-01")).IsZero())
	assert.True(t, cal.Balance("cta_unknown", MustParseDate("2024-01-01")).IsZero())
}
