package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"

	kerrors "github.com/Storrado98/gastosapp/internal/errors"
	"github.com/Storrado98/gastosapp/internal/ledger"
	"golang.org/x/crypto/pbkdf2"
)

// Key derivation and AEAD parameters. Changing any of them makes existing
// vaults undecryptable.
const (
	SaltSize   = 16
	IVSize     = 12
	KeySize    = 32 // AES-256
	Iterations = 150000
)

// DeriveKey derives the vault key from a PIN with PBKDF2-HMAC-SHA256.
func DeriveKey(pin string, salt []byte) []byte {
	return pbkdf2.Key([]byte(pin), salt, Iterations, KeySize, sha256.New)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}
	return gcm, nil
}

// Seal encrypts plaintext under pin with a fresh salt and IV.
func Seal(plaintext []byte, pin string) (*Envelope, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}
	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, fmt.Errorf("generating iv: %w", err)
	}

	gcm, err := newGCM(DeriveKey(pin, salt))
	if err != nil {
		return nil, err
	}

	return &Envelope{
		IV:      iv,
		Salt:    salt,
		Payload: gcm.Seal(nil, iv, plaintext, nil),
	}, nil
}

// Open decrypts env with pin. Any failure to authenticate, including a
// malformed salt or IV, is reported as ErrAuthentication.
func Open(env *Envelope, pin string) ([]byte, error) {
	if len(env.Salt) != SaltSize || len(env.IV) != IVSize {
		return nil, kerrors.ErrAuthentication
	}

	gcm, err := newGCM(DeriveKey(pin, env.Salt))
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, env.IV, env.Payload, nil)
	if err != nil {
		return nil, kerrors.ErrAuthentication
	}
	return plaintext, nil
}

// Encrypt serializes and seals v.
func Encrypt(v *ledger.Vault, pin string) (*Envelope, error) {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("serializing vault: %w", err)
	}
	return Seal(plaintext, pin)
}

// Decrypt opens env and decodes the vault inside, upgrading older schemas.
func Decrypt(env *Envelope, pin string) (*ledger.Vault, error) {
	plaintext, err := Open(env, pin)
	if err != nil {
		return nil, err
	}
	return Decode(plaintext)
}

// Decode migrates a plaintext vault document and unmarshals it.
func Decode(doc []byte) (*ledger.Vault, error) {
	migrated, err := Migrate(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrMalformedData, err)
	}

	var v ledger.Vault
	if err := json.Unmarshal(migrated, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrMalformedData, err)
	}
	if v.Currencies == nil {
		v.Currencies = []ledger.Currency{}
	}
	if v.Accounts == nil {
		v.Accounts = []ledger.Account{}
	}
	if v.Movements == nil {
		v.Movements = []ledger.Movement{}
	}
	for i := range v.Accounts {
		if v.Accounts[i].SubCurrencies == nil {
			v.Accounts[i].SubCurrencies = []string{}
		}
	}
	return &v, nil
}
