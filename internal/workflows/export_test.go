package workflows

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Storrado98/gastosapp/internal/audit"
	kerrors "github.com/Storrado98/gastosapp/internal/errors"
	"github.com/Storrado98/gastosapp/internal/ledger"
	"github.com/Storrado98/gastosapp/internal/vault"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportFileName(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 30, 15, 250_000_000, time.FixedZone("ART", -3*60*60))
	assert.Equal(t, "gastosapp_ana-mara_2024-06-01T11-30-15-250Z.gastosapp", ExportFileName("Ana María", now))
	assert.Equal(t, "gastosapp_etcpasswd_2024-06-01T11-30-15-250Z.gastosapp", ExportFileName("../etc/passwd", now))
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	store, slots := newStore(t)
	s := unlock(t, store, "alice", testPIN)

	_, err := s.AddAccount(ctx, ledger.AccountInput{Name: "Caja", Currency: "ARS"})
	require.NoError(t, err)

	dir := t.TempDir()
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	result, err := Export(ctx, s, ExportOptions{Directory: dir, Now: func() time.Time { return now }})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "gastosapp_alice_2024-06-01T08-00-00-000Z.gastosapp"), result.OutputPath)
	assert.Equal(t, 1, result.Accounts)
	assert.Equal(t, 5, result.Currencies)

	exported, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	stored, err := slots.Get(ctx, vault.SlotKey("alice"))
	require.NoError(t, err)
	assert.Equal(t, stored, exported, "export must be byte-identical to the stored slot")
	assert.Equal(t, len(exported), result.Size)

	info, err := os.Stat(result.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	_, err = Export(ctx, s, ExportOptions{OutputPath: result.OutputPath})
	assert.Error(t, err, "an existing export must not be overwritten")

	entries, err := audit.ReadEntries()
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	last := entries[len(entries)-1]
	assert.Equal(t, audit.OpExport, last.Operation)
	assert.Equal(t, result.OutputPath, last.OutputPath)
}

func exportTo(t *testing.T, s *Session) string {
	t.Helper()
	result, err := Export(context.Background(), s, ExportOptions{OutputPath: filepath.Join(t.TempDir(), "vault.gastosapp")})
	require.NoError(t, err)
	return result.OutputPath
}

func TestImport_RestoresExport(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t)
	s := unlock(t, store, "alice", testPIN)

	caja, err := s.AddAccount(ctx, ledger.AccountInput{Name: "Caja", Currency: "ARS"})
	require.NoError(t, err)
	banco, err := s.AddAccount(ctx, ledger.AccountInput{Name: "Banco", Currency: "ARS"})
	require.NoError(t, err)
	path := exportTo(t, s)

	_, err = s.AddMovement(ctx, ledger.MovementInput{Description: "after export", Amount: decimal.NewFromInt(5), Currency: "ARS", DebitAccount: caja.ID, CreditAccount: banco.ID})
	require.NoError(t, err)

	result, err := Import(ctx, s, ImportOptions{InputPath: path})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Accounts)
	assert.Equal(t, 0, result.Movements)

	v, err := s.Vault(ctx)
	require.NoError(t, err)
	assert.Empty(t, v.Movements)

	reopened := unlock(t, store, "alice", testPIN)
	v, err = reopened.Vault(ctx)
	require.NoError(t, err)
	assert.Empty(t, v.Movements)
}

func TestImport_Rejections(t *testing.T) {
	ctx := context.Background()
	store, slots := newStore(t)

	alice := unlock(t, store, "alice", testPIN)
	_, err := alice.AddAccount(ctx, ledger.AccountInput{Name: "Caja", Currency: "ARS"})
	require.NoError(t, err)
	before, err := slots.Get(ctx, vault.SlotKey("alice"))
	require.NoError(t, err)

	t.Run("ForeignPIN", func(t *testing.T) {
		other := unlock(t, store, "alice-other-pin", "9999")
		path := exportTo(t, other)
		_, err := Import(ctx, alice, ImportOptions{InputPath: path})
		assert.ErrorIs(t, err, kerrors.ErrImport)
		assert.ErrorIs(t, err, kerrors.ErrAuthentication)
	})

	t.Run("OtherUserSamePIN", func(t *testing.T) {
		bob := unlock(t, store, "bob", testPIN)
		path := exportTo(t, bob)
		_, err := Import(ctx, alice, ImportOptions{InputPath: path})
		assert.ErrorIs(t, err, kerrors.ErrImport)
		assert.ErrorIs(t, err, kerrors.ErrIdentityMismatch)
	})

	t.Run("NotAnEnvelope", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "junk.gastosapp")
		require.NoError(t, os.WriteFile(path, []byte(`{"hello":"world"}`), 0600))
		_, err := Import(ctx, alice, ImportOptions{InputPath: path})
		assert.ErrorIs(t, err, kerrors.ErrImport)
		assert.ErrorIs(t, err, kerrors.ErrInvalidEnvelope)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := Import(ctx, alice, ImportOptions{InputPath: filepath.Join(t.TempDir(), "missing.gastosapp")})
		assert.ErrorIs(t, err, kerrors.ErrImport)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("InvalidVault", func(t *testing.T) {
		broken := ledger.NewVault("alice", time.Now())
		broken.Movements = append(broken.Movements, ledger.Movement{ID: "mov_x", Date: ledger.MustParseDate("2024-01-01"), Currency: "ARS", Amount: decimal.NewFromInt(-1), DebitAccount: "a", CreditAccount: "b"})
		env, err := vault.Encrypt(broken, testPIN)
		require.NoError(t, err)
		raw, err := env.Marshal()
		require.NoError(t, err)

		err = alice.ImportBlob(ctx, raw)
		assert.ErrorIs(t, err, kerrors.ErrImport)
		assert.ErrorIs(t, err, kerrors.ErrValidation)
	})

	after, err := slots.Get(ctx, vault.SlotKey("alice"))
	require.NoError(t, err)
	assert.Equal(t, before, after, "rejected imports must leave the slot untouched")

	v, err := alice.Vault(ctx)
	require.NoError(t, err)
	assert.Len(t, v.Accounts, 1)
}
