package errors

import (
	"errors"
	"fmt"
)

// Unlock errors indicate the vault could not be opened with the given credentials.
var (
	// ErrAuthentication indicates the PIN is wrong or the ciphertext was altered.
	// The two causes are deliberately indistinguishable.
	ErrAuthentication = errors.New("vault authentication failed")

	// ErrIdentityMismatch indicates the decrypted vault belongs to another user.
	ErrIdentityMismatch = errors.New("vault belongs to a different user")

	// ErrInvalidEnvelope indicates the stored envelope is not valid envelope JSON.
	ErrInvalidEnvelope = errors.New("invalid vault envelope")
)

// Data errors indicate the decrypted document could not be turned into a vault.
var (
	// ErrMalformedData indicates deserialization failed after a successful decrypt.
	ErrMalformedData = errors.New("vault data is malformed")

	// ErrUnsupportedSchema indicates the document was written by a newer schema.
	ErrUnsupportedSchema = errors.New("unsupported vault schema version")
)

// Ledger errors indicate caller-supplied data violates a model invariant.
var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
)

// Transfer errors indicate an import was rejected before anything was written.
var (
	// ErrImport indicates the imported file could not be decrypted or verified.
	ErrImport = errors.New("import rejected")
)

// Session and storage errors.
var (
	// ErrSessionClosed indicates the session was locked or reset.
	ErrSessionClosed = errors.New("session is closed")

	// ErrSlotNotFound indicates no value is stored under a slot key.
	ErrSlotNotFound = errors.New("storage slot not found")

	// ErrInvalidConfig indicates the configuration file is malformed.
	ErrInvalidConfig = errors.New("configuration is invalid")
)

// ValidationError reports which field of an add-operation was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

// Validation returns a *ValidationError for field.
func Validation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) true for any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// IsUnlockFailure reports whether err is one of the failures that must be
// shown to the user as a single "invalid user or PIN" message.
func IsUnlockFailure(err error) bool {
	return errors.Is(err, ErrAuthentication) ||
		errors.Is(err, ErrIdentityMismatch) ||
		errors.Is(err, ErrInvalidEnvelope) ||
		errors.Is(err, ErrMalformedData)
}
