package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Storrado98/gastosapp/internal/configs"
	kerrors "github.com/Storrado98/gastosapp/internal/errors"
	"github.com/Storrado98/gastosapp/internal/ledger"
	"github.com/Storrado98/gastosapp/internal/ui"
	"github.com/Storrado98/gastosapp/internal/utils"
	"github.com/Storrado98/gastosapp/internal/vault"
	"github.com/Storrado98/gastosapp/internal/workflows"
	"github.com/briandowns/spinner"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// openStore returns the file-backed vault store for the configured
// storage directory.
func openStore() (*vault.Store, error) {
	dir, err := configs.GastosSettings.StoragePath(cliConfig)
	if err != nil {
		return nil, err
	}
	Logger.Debugf("Vault storage directory: %s", dir)

	slots, err := vault.NewFileSlots(dir)
	if err != nil {
		return nil, err
	}
	return vault.NewStore(slots, Logger), nil
}

// resolveUser picks the user id: --user, then the last user to save a
// vault, then the OS username.
func resolveUser(ctx context.Context, store *vault.Store) (string, error) {
	if u := strings.TrimSpace(userFlag); u != "" {
		return u, nil
	}

	last, err := store.LastUser(ctx)
	if err != nil {
		Logger.Warnf("Failed to read last user: %v", err)
	}
	if last != "" {
		Logger.Debugf("Using last user")
		return last, nil
	}

	if u := configs.GastosSettings.Username; u != "" {
		return u, nil
	}
	return "", fmt.Errorf("no user given: pass %s", ui.Flag.Sprint("--user"))
}

// readPIN reads the PIN from $GASTOS_PIN, stdin (--pin-stdin) or a hidden
// prompt, and checks it is four digits.
func readPIN(cmd *cobra.Command, userID string) (string, error) {
	var pin string
	switch {
	case os.Getenv(PINEnv) != "":
		Logger.Debugf("Reading PIN from %s", PINEnv)
		pin = os.Getenv(PINEnv)
	case pinStdin:
		Logger.Debugf("Reading PIN from stdin")
		line, err := utils.ReadLine(cmd.InOrStdin())
		if err != nil {
			return "", err
		}
		pin = line
	default:
		raw, err := utils.ReadPassphrase(fmt.Sprintf("PIN for %s: ", userID))
		if err != nil {
			return "", fmt.Errorf("%w (hint: set %s or use --pin-stdin)", err, PINEnv)
		}
		pin = string(raw)
	}

	pin = strings.TrimSpace(pin)
	if !utils.IsValidPIN(pin) {
		return "", kerrors.Validation("pin", "must be exactly 4 digits")
	}
	return pin, nil
}

// unlockVault resolves the user, reads the PIN and unlocks the vault while
// s spins. Callers must Lock the returned session.
func unlockVault(cmd *cobra.Command, s *spinner.Spinner) (*workflows.UnlockResult, error) {
	ctx := cmd.Context()

	store, err := openStore()
	if err != nil {
		return nil, err
	}
	userID, err := resolveUser(ctx, store)
	if err != nil {
		return nil, err
	}

	// The prompt must not be drawn over by the spinner.
	s.Stop()
	pin, err := readPIN(cmd, userID)
	if err != nil {
		return nil, err
	}
	if !verbose && !debug {
		s.Start()
	}

	Logger.Infof("Unlocking vault for %s", userID)
	return workflows.Unlock(ctx, store, workflows.UnlockOptions{
		UserID: userID,
		PIN:    pin,
		Logger: Logger,
	})
}

// failureMessage renders err for the user. Unlock failures share one
// message so it never reveals which check failed.
func failureMessage(err error) string {
	var validation *kerrors.ValidationError
	switch {
	case errors.Is(err, kerrors.ErrImport):
		return ui.Error.Sprint("✗") + " Could not import (wrong PIN or file)"
	case kerrors.IsUnlockFailure(err):
		return ui.Error.Sprint("✗") + " Invalid user or PIN"
	case errors.Is(err, kerrors.ErrSessionClosed):
		return ui.Error.Sprint("✗") + " The vault is locked"
	case errors.As(err, &validation):
		return ui.Error.Sprint("✗") + " Invalid " + ui.Highlight.Sprint(validation.Field) + ": " + validation.Reason
	case errors.Is(err, kerrors.ErrInvalidConfig):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Check " + ui.Path.Sprint(configs.GastosSettings.ConfigFile())
	default:
		return ""
	}
}

// handleError sets the spinner's final message for expected failures and
// returns nil, or returns err for cobra to print.
func handleError(s *spinner.Spinner, err error) error {
	if msg := failureMessage(err); msg != "" {
		Logger.Debugf("Command failed: %s", msg)
		s.FinalMSG = msg
		return nil
	}
	return Logger.ErrorfAndReturn("%w", err)
}

// parseAmount parses a positive or negative decimal flag value.
func parseAmount(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, kerrors.Validation(field, "is not a number")
	}
	return d, nil
}

// parseDate parses an optional YYYY-MM-DD flag value. Empty yields the
// zero Date.
func parseDate(field, value string) (ledger.Date, error) {
	if strings.TrimSpace(value) == "" {
		return ledger.Date{}, nil
	}
	d, err := ledger.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return ledger.Date{}, kerrors.Validation(field, "must be a date like 2024-01-31")
	}
	return d, nil
}

// resolveAccount accepts an account id or name.
func resolveAccount(v *ledger.Vault, ref string) string {
	ref = strings.TrimSpace(ref)
	if _, ok := v.Account(ref); ok {
		return ref
	}
	if a, ok := v.AccountByName(ref); ok {
		return a.ID
	}
	return ref
}

// splitList splits a comma-separated flag value, dropping empty items.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
