package vault

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	kerrors "github.com/Storrado98/gastosapp/internal/errors"
	"github.com/Storrado98/gastosapp/internal/ledger"
	logger "github.com/Storrado98/gastosapp/internal/logging"
)

const (
	slotPrefix = "gastosapp_vault_"

	// LegacySlotKey is the single shared slot used before vaults were keyed per user.
	LegacySlotKey = "gastosapp_vault"

	// LastUserKey holds the most recently saved user id.
	LastUserKey = "gastosapp_last_user"
)

// SlotKey returns the slot key of userID's vault.
func SlotKey(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return slotPrefix + hex.EncodeToString(sum[:])
}

// Store loads and saves vaults in Slots.
type Store struct {
	slots  Slots
	Logger logger.Logger

	// Now stamps newly provisioned vaults. Defaults to time.Now.
	Now func() time.Time
}

func NewStore(slots Slots, log logger.Logger) *Store {
	return &Store{slots: slots, Logger: log, Now: time.Now}
}

func (s *Store) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// Exists reports whether userID already has a vault slot.
func (s *Store) Exists(ctx context.Context, userID string) (bool, error) {
	_, err := s.slots.Get(ctx, SlotKey(userID))
	if errors.Is(err, kerrors.ErrSlotNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Origin tells how Open obtained a vault.
type Origin int

const (
	// OriginStored is a vault read from the user's own slot.
	OriginStored Origin = iota
	// OriginAdopted is a vault moved out of the shared legacy slot.
	OriginAdopted
	// OriginProvisioned is a fresh default vault created on first use.
	OriginProvisioned
)

func (o Origin) String() string {
	switch o {
	case OriginStored:
		return "stored"
	case OriginAdopted:
		return "adopted"
	case OriginProvisioned:
		return "provisioned"
	default:
		return fmt.Sprintf("Origin(%d)", int(o))
	}
}

// Opened is a vault returned by Open with where it came from.
type Opened struct {
	Vault  *ledger.Vault
	Origin Origin
}

// Load opens userID's vault with pin. See Open.
func (s *Store) Load(ctx context.Context, userID, pin string) (*ledger.Vault, error) {
	opened, err := s.Open(ctx, userID, pin)
	if err != nil {
		return nil, err
	}
	return opened.Vault, nil
}

// Open opens userID's vault with pin.
//
// A user without a slot adopts the shared legacy vault when one exists and
// names them. If the legacy vault names another user, or there is none, a
// fresh default vault is provisioned and saved. A legacy vault that does
// not open with pin is an unlock failure: nothing is provisioned, so a
// mistyped PIN never hides the legacy data behind a new vault.
func (s *Store) Open(ctx context.Context, userID, pin string) (*Opened, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, kerrors.Validation("userId", "is required")
	}

	raw, err := s.slots.Get(ctx, SlotKey(userID))
	if errors.Is(err, kerrors.ErrSlotNotFound) {
		v, err := s.adoptLegacy(ctx, userID, pin)
		if err != nil {
			return nil, err
		}
		if v != nil {
			return &Opened{Vault: v, Origin: OriginAdopted}, nil
		}

		s.Logger.Debugf("No vault slot found, provisioning a new vault")
		v = ledger.NewVault(userID, s.now())
		if err := s.Save(ctx, v, pin); err != nil {
			return nil, fmt.Errorf("provisioning vault: %w", err)
		}
		return &Opened{Vault: v, Origin: OriginProvisioned}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading vault slot: %w", err)
	}

	v, err := s.open(raw, userID, pin)
	if err != nil {
		return nil, err
	}
	return &Opened{Vault: v, Origin: OriginStored}, nil
}

// open decrypts raw envelope bytes and checks they belong to userID.
func (s *Store) open(raw []byte, userID, pin string) (*ledger.Vault, error) {
	env, err := ParseEnvelope(raw)
	if err != nil {
		return nil, err
	}
	v, err := Decrypt(env, pin)
	if err != nil {
		return nil, err
	}
	if v.User.ID != userID {
		return nil, kerrors.ErrIdentityMismatch
	}
	return v, nil
}

// adoptLegacy moves the vault in the shared pre-v4 slot into userID's slot
// and removes the legacy slot. It returns nil and no error when there is
// no legacy slot or the legacy vault names another user.
func (s *Store) adoptLegacy(ctx context.Context, userID, pin string) (*ledger.Vault, error) {
	raw, err := s.slots.Get(ctx, LegacySlotKey)
	if errors.Is(err, kerrors.ErrSlotNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading legacy vault slot: %w", err)
	}

	v, err := s.open(raw, userID, pin)
	if errors.Is(err, kerrors.ErrIdentityMismatch) {
		s.Logger.Debugf("Legacy vault slot belongs to another user")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.Save(ctx, v, pin); err != nil {
		return nil, fmt.Errorf("moving legacy vault: %w", err)
	}
	if err := s.slots.Delete(ctx, LegacySlotKey); err != nil {
		s.Logger.Warnf("Failed to remove legacy vault slot: %v", err)
	}
	s.Logger.Infof("Moved legacy vault into a per-user slot")
	return v, nil
}

// Save encrypts v with a fresh salt and IV and replaces its owner's slot.
func (s *Store) Save(ctx context.Context, v *ledger.Vault, pin string) error {
	if v.User.ID == "" {
		return kerrors.Validation("user.id", "is required")
	}

	env, err := Encrypt(v, pin)
	if err != nil {
		return fmt.Errorf("encrypting vault: %w", err)
	}
	data, err := env.Marshal()
	if err != nil {
		return fmt.Errorf("encoding envelope: %w", err)
	}

	if err := s.slots.Put(ctx, SlotKey(v.User.ID), data); err != nil {
		return fmt.Errorf("writing vault slot: %w", err)
	}
	if err := s.slots.Put(ctx, LastUserKey, []byte(v.User.ID)); err != nil {
		s.Logger.Warnf("Failed to remember last user: %v", err)
	}
	s.Logger.Debugf("Saved vault (%d bytes)", len(data))
	return nil
}

// Envelope returns the raw envelope bytes stored for userID.
func (s *Store) Envelope(ctx context.Context, userID string) ([]byte, error) {
	return s.slots.Get(ctx, SlotKey(userID))
}

// Replace overwrites userID's slot with raw envelope bytes. Callers must
// have verified the envelope first.
func (s *Store) Replace(ctx context.Context, userID string, raw []byte) error {
	if err := s.slots.Put(ctx, SlotKey(userID), raw); err != nil {
		return fmt.Errorf("replacing vault slot: %w", err)
	}
	return nil
}

// LastUser returns the most recently saved user id, or "" if none.
func (s *Store) LastUser(ctx context.Context) (string, error) {
	raw, err := s.slots.Get(ctx, LastUserKey)
	if errors.Is(err, kerrors.ErrSlotNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

// Reset deletes userID's vault slot and any unadopted legacy slot. It
// cannot be undone.
func (s *Store) Reset(ctx context.Context, userID string) error {
	if err := s.slots.Delete(ctx, SlotKey(userID)); err != nil {
		return fmt.Errorf("deleting vault slot: %w", err)
	}
	if err := s.slots.Delete(ctx, LegacySlotKey); err != nil {
		return fmt.Errorf("deleting legacy vault slot: %w", err)
	}
	last, err := s.LastUser(ctx)
	if err == nil && last == userID {
		if err := s.slots.Delete(ctx, LastUserKey); err != nil {
			s.Logger.Warnf("Failed to forget last user: %v", err)
		}
	}
	return nil
}
