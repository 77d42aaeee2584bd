// Package errors provides typed error values for the gastosapp vault.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Unlock errors: the vault could not be opened (ErrAuthentication,
//     ErrIdentityMismatch, ErrInvalidEnvelope)
//   - Data errors: the decrypted document is unusable (ErrMalformedData,
//     ErrUnsupportedSchema)
//   - Ledger errors: form data violates a model invariant (ErrValidation)
//   - Transfer errors: an imported file was rejected (ErrImport)
//   - Session and storage errors (ErrSessionClosed, ErrSlotNotFound,
//     ErrInvalidConfig)
//
// # Presenting unlock failures
//
// A wrong PIN, a corrupted slot and a slot owned by another user must look
// identical to the person at the keyboard. Use IsUnlockFailure in the CLI
// layer and print one message for all of them:
//
//	res, err := workflows.Unlock(ctx, store, workflows.UnlockOptions{UserID: userID, PIN: pin})
//	if kerrors.IsUnlockFailure(err) {
//	    // "invalid user or PIN"
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("loading vault for %s: %w", userID, errors.ErrAuthentication)
package errors
