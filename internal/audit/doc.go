// Package audit keeps a local trail of vault operations.
//
// Unlock, provisioning, saves, export, import and reset each append one
// JSON object per line to audit.jsonl in the data directory. Entries name
// the user, the operation and how many currencies, accounts and movements
// the vault held afterwards. PINs and amounts are never recorded.
//
// Audit logging is best-effort. A failure to write the log never fails
// the operation that triggered it.
//
//	audit.Log(audit.Entry{User: "alice", Operation: audit.OpExport, OutputPath: path})
package audit
