// Package vault encrypts ledger vaults with a PIN and keeps them in durable
// per-user storage slots.
//
// # Envelope
//
// A vault is serialized to JSON, sealed with AES-256-GCM under a key derived
// from the PIN with PBKDF2-HMAC-SHA256, and stored as an Envelope:
//
//	{"iv": [12 ints], "salt": [16 ints], "payload": [ints]}
//
// Every Encrypt call draws a fresh salt and IV. A wrong PIN and a modified
// byte both surface as ErrAuthentication; callers must not try to tell them
// apart.
//
// # Storage
//
// Store maps a user id to a slot in a Slots implementation (FileSlots on
// disk, MemorySlots in tests). A slot holds the envelope JSON and is always
// replaced whole. Loading a slot verifies that the decrypted vault belongs
// to the requested user.
//
// # Schema migration
//
// Documents are upgraded to ledger.SchemaVersion by Migrate before they are
// decoded, one explicit step per version.
package vault
