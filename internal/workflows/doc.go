// Package workflows provides the operations behind gastosapp commands.
//
// Workflows coordinate the vault store, the ledger model and the audit
// trail to implement complete user-facing features, independent of CLI
// concerns like flag parsing, spinners and output formatting.
//
// # Sessions
//
// Unlock opens (or provisions) a user's vault and returns a Session. Every
// Session operation holds the session's mutex for its whole duration:
//
//	res, err := workflows.Unlock(ctx, store, workflows.UnlockOptions{UserID: "alice", PIN: pin})
//	if errors.IsUnlockFailure(err) {
//	    // Show a single "invalid user or PIN" message
//	}
//	defer res.Session.Lock()
//	_, err = res.Session.AddMovement(ctx, in)
//
// Mutations are saved before they return. A mutation whose save fails is
// rolled back in memory.
//
// # Available Workflows
//
//   - Unlock: opens or provisions a vault and starts a Session
//   - Export: writes the stored envelope to a .gastosapp file
//   - Import: verifies a .gastosapp file and replaces the vault with it
//   - Reset: deletes a user's vault
//   - Log: reads the audit trail
//
// # Error Handling
//
// Workflows return sentinel errors from internal/errors, wrapped with
// context. Use errors.Is to check for specific conditions.
//
// # Context Usage
//
// All workflows accept a context.Context. It is checked before work
// starts; a save in progress is never interrupted.
package workflows
