package workflows

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Storrado98/gastosapp/internal/audit"
	"github.com/Storrado98/gastosapp/internal/utils"
)

// ExportExtension is the extension of exported vault files.
const ExportExtension = ".gastosapp"

// ExportOptions configures the export workflow.
type ExportOptions struct {
	// OutputPath is the file to write. If empty, a timestamped name is
	// generated inside Directory.
	OutputPath string

	// Directory holds generated export files. Defaults to the working
	// directory.
	Directory string

	// Now stamps the generated file name. Defaults to time.Now.
	Now func() time.Time
}

// ExportResult contains the outcome of an export operation.
type ExportResult struct {
	OutputPath string
	Size       int

	Currencies int
	Accounts   int
	Movements  int
}

// ExportFileName returns gastosapp_<user>_<timestamp>.gastosapp, where the
// timestamp is UTC RFC 3339 with ':' and '.' replaced by '-'.
func ExportFileName(userID string, now time.Time) string {
	stamp := now.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	return fmt.Sprintf("gastosapp_%s_%s%s", utils.SanitizeFileComponent(userID), stamp, ExportExtension)
}

// Export saves the session's vault and writes its envelope, byte for byte,
// to a new file readable only by its owner. An existing file is never
// overwritten.
func Export(ctx context.Context, s *Session, opts ExportOptions) (*ExportResult, error) {
	raw, err := s.ExportBlob(ctx)
	if err != nil {
		return nil, err
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		outputPath = filepath.Join(opts.Directory, ExportFileName(s.UserID(), now()))
	}
	outputPath, err = utils.ExpandHome(outputPath)
	if err != nil {
		return nil, err
	}

	if err := utils.WritePrivateFile(outputPath, raw); err != nil {
		return nil, fmt.Errorf("writing export file: %w", err)
	}

	v, err := s.Vault(ctx)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{OutputPath: outputPath, Size: len(raw)}
	result.Currencies, result.Accounts, result.Movements = v.Counts()

	audit.Log(audit.Entry{
		User:       s.UserID(),
		Operation:  audit.OpExport,
		Currencies: result.Currencies,
		Accounts:   result.Accounts,
		Movements:  result.Movements,
		OutputPath: outputPath,
	})

	return result, nil
}
