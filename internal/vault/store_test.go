package vault

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	kerrors "github.com/Storrado98/gastosapp/internal/errors"
	"github.com/Storrado98/gastosapp/internal/ledger"
	logger "github.com/Storrado98/gastosapp/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *MemorySlots) {
	t.Helper()
	slots := NewMemorySlots()
	store := NewStore(slots, logger.Logger{})
	store.Now = func() time.Time { return time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC) }
	return store, slots
}

func TestSlotKey(t *testing.T) {
	assert.Equal(t, SlotKey("alice"), SlotKey("alice"))
	assert.NotEqual(t, SlotKey("alice"), SlotKey("bob"))
	assert.True(t, strings.HasPrefix(SlotKey("../../etc/passwd"), "gastosapp_vault_"))
	assert.Regexp(t, `^[a-z0-9_]+$`, SlotKey("Ünïcode user"))
}

func TestStore_FirstUseProvisioning(t *testing.T) {
	ctx := context.Background()
	store, slots := newTestStore(t)

	exists, err := store.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)

	v, err := store.Load(ctx, "alice", testPIN)
	require.NoError(t, err)
	assert.Equal(t, "alice", v.User.ID)
	assert.True(t, v.User.PINConfigured)

	var codes []string
	for _, c := range v.Currencies {
		codes = append(codes, c.Code)
	}
	assert.ElementsMatch(t, []string{"ARS", "USD", "BTC", "ETH", "DOGE"}, codes)

	assert.Contains(t, slots.Keys(), SlotKey("alice"))
	last, err := store.LastUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", last)

	again, err := store.Load(ctx, "alice", testPIN)
	require.NoError(t, err)
	assertSameVault(t, v, again)
}

func TestStore_SaveAndReload(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	v := sampleVault(t, "alice")
	require.NoError(t, store.Save(ctx, v, testPIN))

	first, err := store.Envelope(ctx, "alice")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, v, testPIN))
	second, err := store.Envelope(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, first, second, "every save must use a fresh salt and IV")

	loaded, err := store.Load(ctx, "alice", testPIN)
	require.NoError(t, err)
	assertSameVault(t, v, loaded)
}

func TestStore_WrongPIN(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	_, err := store.Load(ctx, "alice", testPIN)
	require.NoError(t, err)

	_, err = store.Load(ctx, "alice", "0000")
	assert.ErrorIs(t, err, kerrors.ErrAuthentication)
	assert.True(t, kerrors.IsUnlockFailure(err))
}

func TestStore_IdentityIsolation(t *testing.T) {
	ctx := context.Background()
	store, slots := newTestStore(t)

	require.NoError(t, store.Save(ctx, sampleVault(t, "alice"), testPIN))

	// Bob's slot ends up holding alice's envelope, encrypted with the same PIN.
	aliceEnvelope, err := slots.Get(ctx, SlotKey("alice"))
	require.NoError(t, err)
	require.NoError(t, slots.Put(ctx, SlotKey("bob"), aliceEnvelope))

	_, err = store.Load(ctx, "bob", testPIN)
	assert.ErrorIs(t, err, kerrors.ErrIdentityMismatch)
	assert.True(t, kerrors.IsUnlockFailure(err))
}

func TestStore_CorruptedSlot(t *testing.T) {
	ctx := context.Background()
	store, slots := newTestStore(t)

	require.NoError(t, slots.Put(ctx, SlotKey("alice"), []byte("{not json")))

	_, err := store.Load(ctx, "alice", testPIN)
	assert.ErrorIs(t, err, kerrors.ErrInvalidEnvelope)
	assert.True(t, kerrors.IsUnlockFailure(err))
}

func TestStore_EmptyUser(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Load(context.Background(), "  ", testPIN)
	assert.ErrorIs(t, err, kerrors.ErrValidation)
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	v, err := store.Load(ctx, "alice", testPIN)
	require.NoError(t, err)
	_, err = v.AddAccount(ledger.AccountInput{Name: "Caja", Currency: "ARS"})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, v, testPIN))

	require.NoError(t, store.Reset(ctx, "alice"))

	exists, err := store.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)

	last, err := store.LastUser(ctx)
	require.NoError(t, err)
	assert.Empty(t, last)

	// A different PIN now provisions a brand new vault.
	fresh, err := store.Load(ctx, "alice", "5678")
	require.NoError(t, err)
	assert.Empty(t, fresh.Accounts)

	require.NoError(t, store.Reset(ctx, "nobody"))
}

// putLegacy stores doc, sealed with pin, in the shared legacy slot.
func putLegacy(t *testing.T, slots *MemorySlots, doc, pin string) {
	t.Helper()
	env, err := Seal([]byte(doc), pin)
	require.NoError(t, err)
	raw, err := env.Marshal()
	require.NoError(t, err)
	require.NoError(t, slots.Put(context.Background(), LegacySlotKey, raw))
}

func TestStore_AdoptsLegacySlot(t *testing.T) {
	ctx := context.Background()
	store, slots := newTestStore(t)
	putLegacy(t, slots, legacyV2, testPIN)

	t.Run("OtherUserProvisionsFresh", func(t *testing.T) {
		opened, err := store.Open(ctx, "carol", testPIN)
		require.NoError(t, err)
		assert.Equal(t, OriginProvisioned, opened.Origin)
		assert.Equal(t, "carol", opened.Vault.User.ID)
		assert.Empty(t, opened.Vault.Accounts)
	})

	t.Run("OwnerAdoptsLegacyVault", func(t *testing.T) {
		opened, err := store.Open(ctx, "alice", testPIN)
		require.NoError(t, err)
		assert.Equal(t, OriginAdopted, opened.Origin)
		assert.Equal(t, ledger.SchemaVersion, opened.Vault.Meta.SchemaVersion)
		assert.Len(t, opened.Vault.Accounts, 2)
		assert.Len(t, opened.Vault.Movements, 1)

		exists, err := store.Exists(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, exists)

		_, err = slots.Get(ctx, LegacySlotKey)
		assert.ErrorIs(t, err, kerrors.ErrSlotNotFound)
	})

	t.Run("LaterUnlocksReadOwnSlot", func(t *testing.T) {
		opened, err := store.Open(ctx, "alice", testPIN)
		require.NoError(t, err)
		assert.Equal(t, OriginStored, opened.Origin)
		assert.Len(t, opened.Vault.Accounts, 2)
	})
}

func TestStore_LegacySlotWrongPIN(t *testing.T) {
	ctx := context.Background()
	store, slots := newTestStore(t)
	putLegacy(t, slots, legacyV2, testPIN)

	_, err := store.Load(ctx, "alice", "9999")
	assert.ErrorIs(t, err, kerrors.ErrAuthentication)

	exists, err := store.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists, "a mistyped PIN must not provision a vault")

	v, err := store.Load(ctx, "alice", testPIN)
	require.NoError(t, err)
	assert.Len(t, v.Accounts, 2)
	assert.Len(t, v.Movements, 1)
}

func TestStore_CorruptLegacySlot(t *testing.T) {
	ctx := context.Background()
	store, slots := newTestStore(t)
	require.NoError(t, slots.Put(ctx, LegacySlotKey, []byte("not an envelope")))

	_, err := store.Load(ctx, "alice", testPIN)
	assert.True(t, kerrors.IsUnlockFailure(err))

	// Reset is the way out of an unreadable legacy vault.
	require.NoError(t, store.Reset(ctx, "alice"))
	opened, err := store.Open(ctx, "alice", testPIN)
	require.NoError(t, err)
	assert.Equal(t, OriginProvisioned, opened.Origin)
}

func TestFileSlots(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "vaults")

	slots, err := NewFileSlots(dir)
	require.NoError(t, err)

	_, err = slots.Get(ctx, "gastosapp_last_user")
	assert.ErrorIs(t, err, kerrors.ErrSlotNotFound)

	require.NoError(t, slots.Put(ctx, "gastosapp_last_user", []byte("alice")))
	require.NoError(t, slots.Put(ctx, "gastosapp_last_user", []byte("bob")))

	got, err := slots.Get(ctx, "gastosapp_last_user")
	require.NoError(t, err)
	assert.Equal(t, "bob", string(got))

	info, err := os.Stat(filepath.Join(dir, "gastosapp_last_user"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")

	require.NoError(t, slots.Delete(ctx, "gastosapp_last_user"))
	require.NoError(t, slots.Delete(ctx, "gastosapp_last_user"))
	_, err = slots.Get(ctx, "gastosapp_last_user")
	assert.ErrorIs(t, err, kerrors.ErrSlotNotFound)

	assert.Error(t, slots.Put(ctx, "../escape", []byte("x")))
}

func TestFileSlots_StoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	slots, err := NewFileSlots(t.TempDir())
	require.NoError(t, err)
	store := NewStore(slots, logger.Logger{})

	v := sampleVault(t, "alice")
	require.NoError(t, store.Save(ctx, v, testPIN))

	loaded, err := store.Load(ctx, "alice", testPIN)
	require.NoError(t, err)
	assertSameVault(t, v, loaded)
}
