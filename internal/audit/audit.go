package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/Storrado98/gastosapp/internal/configs"
)

// Operation names recorded in the audit log.
const (
	OpUnlock    = "unlock"
	OpProvision = "provision"
	OpAdopt     = "adopt"
	OpSave      = "save"
	OpExport    = "export"
	OpImport    = "import"
	OpReset     = "reset"
)

// Entry represents a single audit log entry. It never carries PINs or
// amounts.
type Entry struct {
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	User      string `json:"user"`
	Operation string `json:"op"`

	// Vault size after the operation.
	Currencies int `json:"currencies,omitempty"`
	Accounts   int `json:"accounts,omitempty"`
	Movements  int `json:"movements,omitempty"`

	Record     string `json:"record,omitempty"`      // For save: "currency", "account" or "movement".
	OutputPath string `json:"output_path,omitempty"` // For export.
	InputPath  string `json:"input_path,omitempty"`  // For import.
}

// Log appends an entry to the audit log.
// If logging fails, it returns without an error. Operations should not
// fail just because audit logging failed.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the audit log file.
// Returns empty string if settings are not initialized.
func LogPath() string {
	if configs.GastosSettings == nil || configs.GastosSettings.DataPath == "" {
		return ""
	}
	return configs.GastosSettings.AuditLogFile()
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data), nil
}

// ForUser returns the entries recorded for user, oldest first.
func ForUser(entries []Entry, user string) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.User == user {
			out = append(out, e)
		}
	}
	return out
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are skipped so a torn final write does not hide the rest.
func ParseEntries(data []byte) []Entry {
	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries
}
