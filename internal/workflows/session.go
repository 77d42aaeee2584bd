package workflows

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Storrado98/gastosapp/internal/audit"
	kerrors "github.com/Storrado98/gastosapp/internal/errors"
	"github.com/Storrado98/gastosapp/internal/ledger"
	logger "github.com/Storrado98/gastosapp/internal/logging"
	"github.com/Storrado98/gastosapp/internal/vault"
)

// Session is one unlocked vault. All of its operations are serialized by
// an internal mutex, so two saves of the same vault never interleave.
// A Session is unusable after Lock or Reset.
type Session struct {
	mu     sync.Mutex
	store  *vault.Store
	log    logger.Logger
	userID string
	pin    string
	vault  *ledger.Vault
	closed bool
}

// UnlockOptions configures Unlock.
type UnlockOptions struct {
	UserID string
	PIN    string
	Logger logger.Logger
}

// UnlockResult contains the outcome of Unlock.
type UnlockResult struct {
	Session *Session

	// Provisioned is true when no vault existed and a default one was
	// created and saved.
	Provisioned bool

	// Adopted is true when the vault was moved out of the shared legacy
	// slot.
	Adopted bool
}

// Unlock opens the vault of opts.UserID with opts.PIN. On first use it
// adopts the user's vault from the shared legacy slot, or else provisions
// a default vault.
//
// Returns ErrValidation if the user id or PIN is empty.
// Returns an error satisfying errors.IsUnlockFailure when the PIN is wrong,
// the slot is corrupt, or the vault belongs to someone else.
func Unlock(ctx context.Context, store *vault.Store, opts UnlockOptions) (*UnlockResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	userID := strings.TrimSpace(opts.UserID)
	if userID == "" {
		return nil, kerrors.Validation("userId", "is required")
	}
	if opts.PIN == "" {
		return nil, kerrors.Validation("pin", "is required")
	}

	opened, err := store.Open(ctx, userID, opts.PIN)
	if err != nil {
		return nil, err
	}
	v := opened.Vault

	op := audit.OpUnlock
	switch opened.Origin {
	case vault.OriginProvisioned:
		op = audit.OpProvision
		opts.Logger.Infof("Provisioned a new vault for %s", userID)
	case vault.OriginAdopted:
		op = audit.OpAdopt
		opts.Logger.Infof("Moved the legacy vault of %s into its own slot", userID)
	}
	logEntry(op, v)

	return &UnlockResult{
		Session: &Session{
			store:  store,
			log:    opts.Logger,
			userID: userID,
			pin:    opts.PIN,
			vault:  v,
		},
		Provisioned: opened.Origin == vault.OriginProvisioned,
		Adopted:     opened.Origin == vault.OriginAdopted,
	}, nil
}

// logEntry records op with the vault's current size.
func logEntry(op string, v *ledger.Vault) {
	entry := audit.Entry{User: v.User.ID, Operation: op}
	entry.Currencies, entry.Accounts, entry.Movements = v.Counts()
	audit.Log(entry)
}

// begin locks s and checks it is still open and ctx is live. The caller
// must call s.mu.Unlock.
func (s *Session) begin(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return kerrors.ErrSessionClosed
	}
	if err := ctx.Err(); err != nil {
		s.mu.Unlock()
		return err
	}
	return nil
}

// UserID returns the id of the unlocked user.
func (s *Session) UserID() string {
	return s.userID
}

// Vault returns a deep copy of the unlocked vault. Changing it does not
// touch the session.
func (s *Session) Vault(ctx context.Context) (*ledger.Vault, error) {
	if err := s.begin(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	return s.vault.Clone(), nil
}

// save persists the vault. On failure, rollback restores the in-memory
// state so the vault never claims a change that is not on disk.
func (s *Session) save(ctx context.Context, record string, rollback func()) error {
	if err := s.store.Save(ctx, s.vault, s.pin); err != nil {
		rollback()
		return fmt.Errorf("saving vault: %w", err)
	}
	entry := audit.Entry{User: s.userID, Operation: audit.OpSave, Record: record}
	entry.Currencies, entry.Accounts, entry.Movements = s.vault.Counts()
	audit.Log(entry)
	return nil
}

// AddCurrency validates in, appends the currency and saves the vault.
func (s *Session) AddCurrency(ctx context.Context, in ledger.CurrencyInput) (*ledger.Currency, error) {
	if err := s.begin(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	n := len(s.vault.Currencies)
	c, err := s.vault.AddCurrency(in)
	if err != nil {
		return nil, err
	}
	added := *c

	if err := s.save(ctx, "currency", func() { s.vault.Currencies = s.vault.Currencies[:n] }); err != nil {
		return nil, err
	}
	s.log.Debugf("Added currency %s", added.Code)
	return &added, nil
}

// AddAccount validates in, appends the account and saves the vault.
func (s *Session) AddAccount(ctx context.Context, in ledger.AccountInput) (*ledger.Account, error) {
	if err := s.begin(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	n := len(s.vault.Accounts)
	a, err := s.vault.AddAccount(in)
	if err != nil {
		return nil, err
	}
	added := *a

	if err := s.save(ctx, "account", func() { s.vault.Accounts = s.vault.Accounts[:n] }); err != nil {
		return nil, err
	}
	s.log.Debugf("Added account %s", added.ID)
	return &added, nil
}

// AddMovement validates in, appends the movement and saves the vault.
func (s *Session) AddMovement(ctx context.Context, in ledger.MovementInput) (*ledger.Movement, error) {
	if err := s.begin(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	n := len(s.vault.Movements)
	m, err := s.vault.AddMovement(in)
	if err != nil {
		return nil, err
	}
	added := *m

	if err := s.save(ctx, "movement", func() { s.vault.Movements = s.vault.Movements[:n] }); err != nil {
		return nil, err
	}
	s.log.Debugf("Added movement %s", added.ID)
	return &added, nil
}

// Project computes the balance calendar of the unlocked vault.
func (s *Session) Project(ctx context.Context, start ledger.Date, days int, opts ledger.ProjectOptions) (*ledger.Calendar, error) {
	if err := s.begin(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	return ledger.Project(s.vault, start, days, opts)
}

// ExportBlob saves the vault and returns the stored envelope bytes, the
// exact content of an export file.
func (s *Session) ExportBlob(ctx context.Context) ([]byte, error) {
	if err := s.begin(ctx); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	if err := s.store.Save(ctx, s.vault, s.pin); err != nil {
		return nil, fmt.Errorf("saving vault: %w", err)
	}
	raw, err := s.store.Envelope(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("reading vault slot: %w", err)
	}
	return raw, nil
}

// ImportBlob replaces the vault with the one in raw. The envelope must
// decrypt with the session PIN, belong to the session user and pass
// validation; otherwise ErrImport is returned and the stored vault is left
// untouched.
func (s *Session) ImportBlob(ctx context.Context, raw []byte) error {
	if err := s.begin(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	imported, err := s.verifyImport(raw)
	if err != nil {
		s.log.Debugf("Rejected import")
		return fmt.Errorf("%w: %w", kerrors.ErrImport, err)
	}

	if err := s.store.Replace(ctx, s.userID, raw); err != nil {
		return fmt.Errorf("%w: %w", kerrors.ErrImport, err)
	}

	reloaded, err := s.store.Load(ctx, s.userID, s.pin)
	if err != nil {
		// The slot already holds the verified import.
		s.log.Warnf("Reloading imported vault failed, using decoded copy: %v", err)
		reloaded = imported
	}
	s.vault = reloaded
	return nil
}

func (s *Session) verifyImport(raw []byte) (*ledger.Vault, error) {
	env, err := vault.ParseEnvelope(raw)
	if err != nil {
		return nil, err
	}
	v, err := vault.Decrypt(env, s.pin)
	if err != nil {
		return nil, err
	}
	if v.User.ID != s.userID {
		return nil, kerrors.ErrIdentityMismatch
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// Reset deletes the session user's vault and closes the session.
func (s *Session) Reset(ctx context.Context) error {
	if err := s.begin(ctx); err != nil {
		return err
	}
	defer s.mu.Unlock()

	if err := Reset(ctx, s.store, s.userID); err != nil {
		return err
	}
	s.close()
	return nil
}

// Lock forgets the PIN and vault. Further operations return
// ErrSessionClosed. Locking twice is a no-op.
func (s *Session) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.close()
}

func (s *Session) close() {
	s.closed = true
	s.pin = ""
	s.vault = nil
}

// Reset deletes userID's vault without unlocking it. It cannot be undone.
func Reset(ctx context.Context, store *vault.Store, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return kerrors.Validation("userId", "is required")
	}

	if err := store.Reset(ctx, userID); err != nil {
		return err
	}
	audit.Log(audit.Entry{User: userID, Operation: audit.OpReset})
	return nil
}
