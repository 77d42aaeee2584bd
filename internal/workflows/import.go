package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/Storrado98/gastosapp/internal/audit"
	kerrors "github.com/Storrado98/gastosapp/internal/errors"
)

// maxImportSize bounds the export files Import is willing to read.
const maxImportSize = 64 << 20

// ImportOptions configures the import workflow.
type ImportOptions struct {
	// InputPath is the .gastosapp file to import.
	InputPath string
}

// ImportResult contains the outcome of an import operation.
type ImportResult struct {
	Currencies int
	Accounts   int
	Movements  int
}

// Import replaces the session's vault with the one exported to
// opts.InputPath.
//
// Returns ErrImport, wrapping the cause, if the file cannot be read, does
// not decrypt with the session PIN, belongs to another user or holds an
// invalid vault. The stored vault is unchanged in that case.
func Import(ctx context.Context, s *Session, opts ImportOptions) (*ImportResult, error) {
	info, err := os.Stat(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrImport, err)
	}
	if info.Size() > maxImportSize {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", kerrors.ErrImport, opts.InputPath, maxImportSize)
	}

	raw, err := os.ReadFile(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrImport, err)
	}

	if err := s.ImportBlob(ctx, raw); err != nil {
		return nil, err
	}

	v, err := s.Vault(ctx)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	result.Currencies, result.Accounts, result.Movements = v.Counts()

	audit.Log(audit.Entry{
		User:       s.UserID(),
		Operation:  audit.OpImport,
		Currencies: result.Currencies,
		Accounts:   result.Accounts,
		Movements:  result.Movements,
		InputPath:  opts.InputPath,
	})

	return result, nil
}
